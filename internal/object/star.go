package object

import (
	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/rng"
)

// Star is a background dot scrolling right across the playfield.
type Star struct {
	Pos   Vec2
	Speed float64
	Size  int // 1..3
	Hue   float64
}

// Update scrolls the star, re-entering on the left at a random height.
func (s *Star) Update(dt float64, field Playfield, r rng.Source) {
	s.Pos.X += s.Speed * dt
	if s.Pos.X > field.Width+10 {
		s.Pos.X = -10
		s.Pos.Y = rng.Range(r, 0, field.Height)
	}
}

// FillStars replaces the content of pool with a fresh starfield sized to
// field.
func FillStars(pool *Pool[Star], field Playfield, r rng.Source) {
	pool.Clear()
	n := int(max(field.Width*field.Height/15000, 40))
	for i := 0; i < n; i++ {
		pool.Add(Star{
			Pos:   physics.V(rng.Range(r, 0, field.Width), rng.Range(r, 0, field.Height)),
			Speed: rng.Range(r, 40, 140),
			Size:  1 + r.IntN(3),
			Hue:   r.Float64(),
		})
	}
}
