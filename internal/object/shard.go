package object

import (
	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/rng"
)

// ShardRadius is the pickup radius of every shard.
const ShardRadius = 9.0

// Shard is a collectible awarding score and currency. It never expires.
type Shard struct {
	Pos    Vec2
	Radius float64
	Phase  float64 // Cosmetic animation offset
}

// NewShard creates a shard at pos.
func NewShard(pos Vec2, r rng.Source) Shard {
	return Shard{Pos: pos, Radius: ShardRadius, Phase: rng.Angle(r)}
}

// Attract drifts the shard toward target at speed when it lies within
// radius. Coincident shards stay put.
func (s *Shard) Attract(target Vec2, radius, speed, dt float64) {
	d := target.Sub(s.Pos)
	dist2 := d.LenSq()
	if dist2 >= radius*radius || dist2 == 0 {
		return
	}
	s.Pos = s.Pos.Add(d.Normalize().Scale(speed * dt))
}

// ShardInField creates a shard at a random point inset from the edges.
func ShardInField(field Playfield, inset float64, r rng.Source) Shard {
	pos := physics.V(
		rng.Range(r, inset, field.Width-inset),
		rng.Range(r, inset, field.Height-inset),
	)
	return NewShard(pos, r)
}
