package object

import "github.com/tomz197/neonrush/internal/physics"

// Bullet is a projectile. Hostile bullets harm the player.
type Bullet struct {
	Pos     Vec2
	Vel     Vec2
	Radius  float64
	Life    float64 // Seconds remaining before removal
	Hostile bool
}

// NewBullet creates a bullet at pos traveling with vel.
func NewBullet(pos, vel Vec2, radius, life float64, hostile bool) Bullet {
	return Bullet{
		Pos:     pos,
		Vel:     vel,
		Radius:  radius,
		Life:    life,
		Hostile: hostile,
	}
}

// Update moves the bullet and decrements its lifetime. Returns false once
// the bullet expired or left cull.
func (b *Bullet) Update(dt float64, cull physics.Rect) bool {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	b.Life -= dt
	if b.Life <= 0 {
		return false
	}
	return cull.Contains(b.Pos)
}
