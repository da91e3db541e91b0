package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Terminal control sequences.
const (
	clearScreenSeq = "\033[H\033[2J"
	clearLineSeq   = "\033[2K"
	hideCursorSeq  = "\033[?25l"
	showCursorSeq  = "\033[?25h"
)

// ChunkWriter collects one frame of terminal output and sends it in writes
// of at most maxChunkSize bytes, which keeps SSH packets small. Positions
// passed to the *At methods are 1-based and relative to the canvas origin,
// so the HUD above the canvas uses rows below 1. Canvas.Render writes into
// it through io.Writer.
type ChunkWriter struct {
	frame   []byte
	out     io.Writer
	originX int // Terminal columns left of the canvas
	originY int // Terminal rows above the canvas
}

var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter creates a writer for w with the canvas origin at the given
// 0-based terminal offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		frame:   make([]byte, 0, 16<<10),
		out:     w,
		originX: offsetCol,
		originY: offsetRow,
	}
}

// SetOffset moves the canvas origin, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.originX = offsetCol
	cw.originY = offsetRow
}

func (cw *ChunkWriter) moveTo(col, row int) {
	cw.frame = append(cw.frame, "\033["...)
	cw.frame = strconv.AppendInt(cw.frame, int64(row+cw.originY), 10)
	cw.frame = append(cw.frame, ';')
	cw.frame = strconv.AppendInt(cw.frame, int64(col+cw.originX), 10)
	cw.frame = append(cw.frame, 'H')
}

// Write appends raw bytes to the frame.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.frame = append(cw.frame, p...)
	return len(p), nil
}

// WriteString appends raw text or escape sequences to the frame.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame = append(cw.frame, s...)
}

// WriteAt places s at a canvas-relative position.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.moveTo(col, row)
	cw.frame = append(cw.frame, s...)
}

// WriteStyledAt places s at a canvas-relative position in the given style
// and resets attributes after it.
func (cw *ChunkWriter) WriteStyledAt(col, row int, style, s string) {
	cw.moveTo(col, row)
	cw.frame = append(cw.frame, style...)
	cw.frame = append(cw.frame, s...)
	cw.frame = append(cw.frame, Reset...)
}

// ClearScreen queues a full terminal clear.
func (cw *ChunkWriter) ClearScreen() {
	cw.frame = append(cw.frame, clearScreenSeq...)
}

// ClearLine queues erasing the whole terminal line containing row.
func (cw *ChunkWriter) ClearLine(row int) {
	cw.moveTo(1-cw.originX, row)
	cw.frame = append(cw.frame, clearLineSeq...)
}

// Flush sends the frame and starts a new one.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame
	cw.frame = cw.frame[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedSize returns a TermSizeFunc reporting a constant size.
func FixedSize(width, height int) TermSizeFunc {
	return func() (int, int, error) { return width, height, nil }
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearScreenSeq)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, hideCursorSeq)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, showCursorSeq)
}
