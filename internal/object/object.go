// Package object defines the simulation entities, their per-tick update
// rules and the pool type that owns them.
package object

import (
	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/rng"
)

// Vec2 is an alias for the physics package's vector type.
type Vec2 = physics.Vec2

// Playfield is the bounded area the player is confined to.
type Playfield struct {
	Width  float64
	Height float64
}

// Bounds returns the playfield rectangle.
func (f Playfield) Bounds() physics.Rect {
	return physics.Rect{Max: physics.V(f.Width, f.Height)}
}

// Center returns the playfield midpoint.
func (f Playfield) Center() Vec2 {
	return physics.V(f.Width/2, f.Height/2)
}

// BulletSpawner receives bullets emitted during an update pass.
type BulletSpawner interface {
	SpawnBullet(b Bullet)
}

// SteerContext provides everything enemy steering needs for one tick.
// Target is a copy of the player position; AI never sees the player itself.
type SteerContext struct {
	Dt      float64
	Time    float64 // Simulation time in seconds, seeds orbiter noise
	Target  Vec2
	Field   Playfield
	Rand    rng.Source
	Bullets BulletSpawner
}

// ShouldRenderBlink returns true if an object with remaining protection
// should be rendered this frame. Always true once remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
