package object

import (
	"github.com/tomz197/neonrush/internal/physics"
)

// Player tuning.
const (
	PlayerRadius   = 15.0
	DashSpeed      = 920.0 // Velocity magnitude while dashing
	TrailMax       = 42    // Trail entries kept before the oldest is evicted
	TrailFade      = 0.35  // Seconds a trail entry stays visible
	DefaultDashMax = 1
)

// PlayerStats are the post-upgrade scalars the controller is driven with.
type PlayerStats struct {
	MoveSpeed    float64
	DashDuration float64
	DashCooldown float64 // Total cooldown started when the last charge is spent
	DashesMax    int
}

// TrailPoint is one fading afterimage of the avatar.
type TrailPoint struct {
	Pos  Vec2
	Fade float64 // Seconds remaining
}

// Player is the avatar: position, dash charge state machine and
// invulnerability window.
type Player struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64

	DashCooldown float64 // Seconds until charges refill
	DashTime     float64 // Seconds of dash remaining
	Invuln       float64 // Seconds of invulnerability remaining
	Dashes       int     // Charges available, within [0, DashesMax]

	Trail []TrailPoint // Oldest first
}

// NewPlayer creates a player at pos with one dash charge.
func NewPlayer(pos Vec2) *Player {
	return &Player{
		Pos:    pos,
		Radius: PlayerRadius,
		Dashes: DefaultDashMax,
		Trail:  make([]TrailPoint, 0, TrailMax+1),
	}
}

// IsDashing reports whether a dash is in progress.
func (p *Player) IsDashing() bool {
	return p.DashTime > 0
}

// Update advances the controller by dt. intent must already be unit length
// or zero. The player is clamped inside bounds inset by its radius.
func (p *Player) Update(dt float64, intent Vec2, stats PlayerStats, bounds physics.Rect) {
	if p.IsDashing() {
		// Dash velocity persists; input is ignored until it ends.
		p.DashTime -= dt
		if p.DashTime < 0 {
			p.DashTime = 0
		}
	} else {
		p.Vel = intent.Scale(stats.MoveSpeed)
		if p.DashCooldown > 0 {
			p.DashCooldown -= dt
			if p.DashCooldown <= 0 {
				p.DashCooldown = 0
				p.Dashes = stats.DashesMax
			}
		}
	}

	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Pos = bounds.Inset(p.Radius).ClampPoint(p.Pos)

	if p.Invuln > 0 {
		p.Invuln -= dt
		if p.Invuln < 0 {
			p.Invuln = 0
		}
	}

	p.updateTrail(dt)
}

// updateTrail appends the current position, evicts the oldest entry past
// TrailMax and drops faded entries.
func (p *Player) updateTrail(dt float64) {
	p.Trail = append(p.Trail, TrailPoint{Pos: p.Pos, Fade: TrailFade})
	if len(p.Trail) > TrailMax {
		copy(p.Trail, p.Trail[1:])
		p.Trail = p.Trail[:len(p.Trail)-1]
	}

	kept := p.Trail[:0]
	for _, tp := range p.Trail {
		tp.Fade -= dt
		if tp.Fade > 0 {
			kept = append(kept, tp)
		}
	}
	p.Trail = kept
}

// TryDash starts a dash if a charge is available and no dash is running.
// Returns true on success so callers can trigger feedback.
func (p *Player) TryDash(stats PlayerStats) bool {
	if p.Dashes <= 0 || p.IsDashing() {
		return false
	}

	dir := physics.V(1, 0)
	if !p.Vel.IsZero() {
		dir = p.Vel.Normalize()
	}
	p.Vel = dir.Scale(DashSpeed)
	p.DashTime = stats.DashDuration
	p.Invuln = stats.DashDuration
	p.Dashes--
	if p.Dashes == 0 {
		p.DashCooldown = stats.DashCooldown
	}
	return true
}

// GrantDash adds one charge, capped at limit.
func (p *Player) GrantDash(limit int) {
	if p.Dashes < limit {
		p.Dashes++
	}
}

// ClampDashes lowers the charge count to limit, e.g. when a bonus slot expires.
func (p *Player) ClampDashes(limit int) {
	if p.Dashes > limit {
		p.Dashes = limit
	}
	if p.Dashes < 0 {
		p.Dashes = 0
	}
}

// CooldownFraction returns the refill progress in [0, 1]; 1 means ready.
func (p *Player) CooldownFraction(total float64) float64 {
	if p.DashCooldown <= 0 || total <= 0 {
		return 1
	}
	return 1 - physics.Clamp(p.DashCooldown/total, 0, 1)
}
