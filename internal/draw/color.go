package draw

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an xterm 256-color palette index. The zero value means unset.
type Color uint8

// Named palette entries.
const (
	None  Color = 0
	White Color = 231
	Gray  Color = 244
)

// ANSI style sequences used by overlays.
const (
	Reset       = "\033[0m"
	Bold        = "\033[1m"
	BorderStyle = "\033[38;5;60m"
)

// Hue maps a hue in [0, 1) and a brightness in [0, 1] to the nearest color
// of the 6x6x6 cube. The result is never None.
func Hue(h, value float64) Color {
	h -= float64(int(h))
	if h < 0 {
		h++
	}
	r, g, b := colorful.Hsv(h*360, 0.85, value).Clamped().RGB255()
	return cube(r, g, b)
}

// cube quantizes an RGB triple onto palette entries 16..231.
func cube(r, g, b uint8) Color {
	q := func(v uint8) int { return (int(v)*5 + 127) / 255 }
	return Color(16 + 36*q(r) + 6*q(g) + q(b))
}

// Fg returns the escape sequence selecting c as the foreground color.
func Fg(c Color) string {
	var b strings.Builder
	writeFg(&b, c)
	return b.String()
}

func writeFg(b *strings.Builder, c Color) {
	if c == None {
		b.WriteString("\033[39m")
		return
	}
	b.WriteString("\033[38;5;")
	b.WriteString(strconv.Itoa(int(c)))
	b.WriteByte('m')
}

func writeBg(b *strings.Builder, c Color) {
	if c == None {
		b.WriteString("\033[49m")
		return
	}
	b.WriteString("\033[48;5;")
	b.WriteString(strconv.Itoa(int(c)))
	b.WriteByte('m')
}
