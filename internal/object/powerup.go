package object

import (
	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/rng"
)

// PowerUpKind selects the buff granted on pickup.
type PowerUpKind int

const (
	PowerInvuln    PowerUpKind = iota // Timed invulnerability
	PowerMagnet                       // Larger, faster shard magnet
	PowerExtraDash                    // Second dash slot
	powerUpKinds
)

// PowerUpRadius is the pickup radius of every power-up.
const PowerUpRadius = 11.0

// String returns the HUD label of the kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerInvuln:
		return "shield"
	case PowerMagnet:
		return "magnet"
	case PowerExtraDash:
		return "dash+"
	default:
		return "?"
	}
}

// PowerUp is a pickup that sets a timed buff.
type PowerUp struct {
	Pos    Vec2
	Radius float64
	Kind   PowerUpKind
	Spin   float64 // Cosmetic rotation
}

// Update advances the cosmetic spin.
func (p *PowerUp) Update(dt float64) {
	p.Spin += 2.4 * dt
}

// PowerUpInField creates a power-up of random kind inset from the edges.
func PowerUpInField(field Playfield, inset float64, r rng.Source) PowerUp {
	pos := physics.V(
		rng.Range(r, inset, field.Width-inset),
		rng.Range(r, inset, field.Height-inset),
	)
	return PowerUp{
		Pos:    pos,
		Radius: PowerUpRadius,
		Kind:   PowerUpKind(r.IntN(int(powerUpKinds))),
		Spin:   rng.Angle(r),
	}
}
