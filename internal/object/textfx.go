package object

import "github.com/tomz197/neonrush/internal/physics"

// Floating label tuning.
const (
	TextRise = 40.0 // Upward speed of floating labels
	TextLife = 0.8
)

// TextFx is a floating label such as "+7" or "near!".
type TextFx struct {
	Pos  Vec2
	Vel  Vec2
	Life float64
	Text string
	Hue  float64
}

// NewTextFx creates a rising label at pos.
func NewTextFx(pos Vec2, text string, hue float64) TextFx {
	return TextFx{Pos: pos, Vel: physics.V(0, -TextRise), Life: TextLife, Text: text, Hue: hue}
}

// Alive reports whether the label should stay in its pool.
func (t *TextFx) Alive() bool {
	return t.Life > 0
}

// Update moves and fades the label. Expired labels are left untouched.
func (t *TextFx) Update(dt float64) {
	if !t.Alive() {
		return
	}
	t.Pos = t.Pos.Add(t.Vel.Scale(dt))
	t.Life -= dt
}
