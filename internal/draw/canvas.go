package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/tomz197/neonrush/internal/physics"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters. It scales from logical playfield coordinates to
// terminal sub-pixels.
type Canvas struct {
	termWidth      int     // Render area columns
	termHeight     int     // Render area rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x], None if unset

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside the terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	prev        []Color // Pixels as of the last Render
	dirty       []bool  // Cells to repaint regardless of prev: [row * termWidth + col]
	forceRedraw bool

	renderBuf strings.Builder // Buffer for batching render output
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the simulation.
// termWidth/Height are the render area dimensions in cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new render dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.prev = nil // Next Render repaints everything
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// At returns the color of a sub-pixel, or None when out of range.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return None
	}
	return c.pixels[y*c.termWidth+x]
}

// toPixel scales a logical point to sub-pixel coordinates.
func (c *Canvas) toPixel(p physics.Vec2) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// Set sets a pixel using logical coordinates.
func (c *Canvas) Set(p physics.Vec2, col Color) {
	x, y := c.toPixel(p)
	c.setPixel(x, y, col)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 physics.Vec2, col Color) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillCircle fills a disc of logical radius r. Discs smaller than a pixel
// still set their center pixel.
func (c *Canvas) FillCircle(center physics.Vec2, r float64, col Color) {
	c.circle(center, r, 0, col)
}

// StrokeCircle draws a ring of logical radius r about one pixel thick.
func (c *Canvas) StrokeCircle(center physics.Vec2, r float64, col Color) {
	c.circle(center, r, 1, col)
}

// circle rasterizes in pixel space. thickness 0 fills the disc.
func (c *Canvas) circle(center physics.Vec2, r, thickness float64, col Color) {
	cx := center.X * c.scaleX
	cy := center.Y * c.scaleY
	rx := r * c.scaleX
	ry := r * c.scaleY
	if rx < 0.5 || ry < 0.5 {
		c.setPixel(int(math.Round(cx)), int(math.Round(cy)), col)
		return
	}

	inner := 0.0
	if thickness > 0 {
		// Normalized inner edge so the ring stays about one pixel wide.
		inner = max(1-thickness/min(rx, ry), 0)
	}

	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		ny := (float64(y) - cy) / ry
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			nx := (float64(x) - cx) / rx
			d := nx*nx + ny*ny
			if d <= 1 && d >= inner*inner {
				c.setPixel(x, y, col)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using colored half-block characters.
// Only cells that changed since the previous Render (or were marked dirty by
// text overlays) are written; cells that became empty are blanked.
func (c *Canvas) Render(w io.Writer) {
	if len(c.prev) != len(c.pixels) {
		c.prev = make([]Color, len(c.pixels))
		c.dirty = make([]bool, c.termWidth*c.termHeight)
		c.forceRedraw = true
	}

	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 16) // Estimate ~16 bytes per cell

	var fg, bg Color // None means terminal default
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cell := row*c.termWidth + col
			wasDirty := c.dirty[cell]
			c.dirty[cell] = false

			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			if !c.forceRedraw && !wasDirty && top == c.prev[topOffset+col] && bottom == c.prev[bottomOffset+col] {
				continue
			}

			var ch rune
			wantFg, wantBg := top, None
			switch {
			case top == None && bottom == None:
				if c.forceRedraw && !wasDirty {
					continue // Terminal was cleared already
				}
				ch = ' '
			case top == bottom:
				ch = BlockFull
			case bottom == None:
				ch = BlockUpperHalf
			case top == None:
				ch = BlockLowerHalf
				wantFg = bottom
			default:
				ch = BlockUpperHalf
				wantBg = bottom
			}

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			if wantFg != fg {
				writeFg(&c.renderBuf, wantFg)
				fg = wantFg
			}
			if wantBg != bg {
				writeBg(&c.renderBuf, wantBg)
				bg = wantBg
			}
			c.renderBuf.WriteRune(ch)
		}
	}
	if fg != None || bg != None {
		c.renderBuf.WriteString(Reset)
	}
	copy(c.prev, c.pixels)
	c.forceRedraw = false

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// ForceRedraw makes the next Render repaint every non-empty cell. Call it
// after clearing the terminal.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// MarkTextDirty flags n cells starting at the 1-based canvas position so the
// next Render repaints them, erasing text drawn over the canvas.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	if len(c.dirty) != c.termWidth*c.termHeight || row < 1 || row > c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.dirty[(row-1)*c.termWidth+x] = true
	}
}

// RenderBorder frames the canvas with a rounded box. Sides without a free
// terminal row or column next to the canvas are left out.
func (c *Canvas) RenderBorder(w io.Writer) {
	left, top := c.offsetCol, c.offsetRow
	right, bottom := left+c.termWidth+1, top+c.termHeight+1
	hasSides := left >= 1
	hasEnds := top >= 1

	var b strings.Builder
	b.WriteString(BorderStyle)
	if hasEnds {
		bar := strings.Repeat("─", c.termWidth)
		if hasSides {
			fmt.Fprintf(&b, "\033[%d;%dH╭%s╮\033[%d;%dH╰%s╯", top, left, bar, bottom, left, bar)
		} else {
			fmt.Fprintf(&b, "\033[%d;%dH%s\033[%d;%dH%s", top, left+1, bar, bottom, left+1, bar)
		}
	}
	if hasSides {
		for row := top + 1; row < bottom; row++ {
			fmt.Fprintf(&b, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
	b.WriteString(Reset)
	io.WriteString(w, b.String())
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(p physics.Vec2) (col, row int) {
	px, py := c.toPixel(p)
	return px + 1, py/2 + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
