// Package save persists the cross-session state: currency, best score and
// upgrade levels. The on-disk form is a flat key=value file, one entry per
// line.
package save

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/tomz197/neonrush/internal/upgrade"
)

const (
	keyCurrency = "currency"
	keyBest     = "best"
)

// Record is everything that survives between sessions.
type Record struct {
	Currency int
	Best     int
	Levels   [upgrade.NumCategories]int
}

// Store loads and saves a Record.
type Store interface {
	Load() (Record, error)
	Save(Record) error
}

// FileStore keeps the record in a single file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the record. A missing file yields the zero record. Lines that
// fail to parse, and values that are not integers, leave their field at zero
// without affecting the rest of the file.
func (s *FileStore) Load() (Record, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("read save %s: %w", s.Path, err)
	}
	return Decode(data), nil
}

// Save overwrites the file with r, creating parent directories as needed.
func (s *FileStore) Save(r Record) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create save dir: %w", err)
		}
	}
	if err := godotenv.Write(Encode(r), s.Path); err != nil {
		return fmt.Errorf("write save %s: %w", s.Path, err)
	}
	return nil
}

// Decode parses the key=value form. Each line is parsed on its own so a
// broken line only costs its own field.
func Decode(data []byte) Record {
	fields := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		kv, err := godotenv.Unmarshal(sc.Text())
		if err != nil {
			continue
		}
		for k, v := range kv {
			fields[k] = v
		}
	}

	var r Record
	r.Currency = intField(fields, keyCurrency)
	r.Best = intField(fields, keyBest)
	for c := upgrade.Category(0); c < upgrade.NumCategories; c++ {
		r.Levels[c] = intField(fields, c.Key())
	}
	return r
}

// Encode returns the key=value map for r.
func Encode(r Record) map[string]string {
	m := map[string]string{
		keyCurrency: strconv.Itoa(r.Currency),
		keyBest:     strconv.Itoa(r.Best),
	}
	for c := upgrade.Category(0); c < upgrade.NumCategories; c++ {
		m[c.Key()] = strconv.Itoa(r.Levels[c])
	}
	return m
}

func intField(fields map[string]string, key string) int {
	v, ok := fields[key]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// NopStore never persists anything.
type NopStore struct{}

// Load returns an empty record.
func (NopStore) Load() (Record, error) { return Record{}, nil }

// Save discards the record.
func (NopStore) Save(Record) error { return nil }
