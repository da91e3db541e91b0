package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/neonrush/internal/config"
	"github.com/tomz197/neonrush/internal/loop"
	"github.com/tomz197/neonrush/internal/save"
)

const defaultSavePath = "neonrush_save.txt"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "ignoring .env: %v\n", err)
	}

	// Logs go to stderr; redirect it to keep them out of the game screen.
	logger := config.NewLogger(os.Stderr, config.GetEnv("NEONRUSH_LOG_LEVEL", "error"), "neonrush")

	if err := run(logger); err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	savePath := config.GetEnv("NEONRUSH_SAVE", defaultSavePath)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(reader, os.Stdout, loop.Options{
		Store:  save.NewFileStore(savePath),
		Logger: logger,
		Seed:   config.GetEnvUint64("NEONRUSH_SEED", 0),
	})
}
