package object

import (
	"math"

	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/rng"
)

// EnemyKind selects the steering behavior, fixed for the enemy's lifetime.
type EnemyKind int

const (
	EnemyOrbiter EnemyKind = iota // Drifts around the playfield center
	EnemyChaser                   // Heads straight for the player
	EnemyFlanker                  // Pursues a point circling the player
	EnemyShooter                  // Flanks and fires aimed bullets
)

// Enemy tuning.
const (
	EnemyBaseSpeed     = 120.0
	EnemySpeedPerKind  = 0.15
	EnemyRadius        = 12.0
	FlankerRadius      = 10.0
	FlankOffset        = 120.0 // Distance of the flank point from the player
	FlankAngularSpeed  = 2.5   // Radians per second
	OrbiterCenterPull  = 0.2
	OrbiterNoiseWeight = 120.0
	ShooterCooldownMin = 1.4
	ShooterCooldownMax = 2.6
	EnemyBulletSpeed   = 260.0
	EnemyBulletRadius  = 5.0
	EnemyBulletLife    = 4.0
)

// String returns the kind name.
func (k EnemyKind) String() string {
	switch k {
	case EnemyOrbiter:
		return "orbiter"
	case EnemyChaser:
		return "chaser"
	case EnemyFlanker:
		return "flanker"
	case EnemyShooter:
		return "shooter"
	default:
		return "unknown"
	}
}

// Enemy is a hostile entity. Angle is only advanced by flanking kinds and
// FireCooldown is only used by shooters.
type Enemy struct {
	Pos          Vec2
	Kind         EnemyKind
	Radius       float64
	Angle        float64
	Speed        float64
	FireCooldown float64
}

// NewEnemy creates an enemy of the given kind at pos.
func NewEnemy(pos Vec2, kind EnemyKind, r rng.Source) Enemy {
	e := Enemy{
		Pos:    pos,
		Kind:   kind,
		Radius: EnemyRadius,
		Angle:  rng.Angle(r),
		Speed:  EnemyBaseSpeed * (1 + EnemySpeedPerKind*float64(kind)),
	}
	switch kind {
	case EnemyFlanker:
		e.Radius = FlankerRadius
	case EnemyShooter:
		e.FireCooldown = rng.Range(r, ShooterCooldownMin, ShooterCooldownMax)
	}
	return e
}

// Steer returns the desired unit heading for this tick (or zero) and
// advances the flank angle for kinds that use it.
func (e *Enemy) Steer(ctx SteerContext) Vec2 {
	switch e.Kind {
	case EnemyOrbiter:
		toCenter := ctx.Field.Center().Sub(e.Pos).Scale(OrbiterCenterPull)
		noise := physics.V(
			math.Cos(ctx.Time*1.7+e.Pos.X*0.01),
			math.Sin(ctx.Time*1.3+e.Pos.Y*0.01),
		)
		return toCenter.Add(noise.Scale(OrbiterNoiseWeight)).Normalize()
	case EnemyChaser:
		return ctx.Target.Sub(e.Pos).Normalize()
	case EnemyFlanker, EnemyShooter:
		offset := physics.FromAngle(e.Angle).Scale(FlankOffset)
		dir := ctx.Target.Add(offset).Sub(e.Pos).Normalize()
		e.Angle += FlankAngularSpeed * ctx.Dt
		return dir
	default:
		return physics.Zero
	}
}

// Update steers, integrates position and runs the fire cooldown.
func (e *Enemy) Update(ctx SteerContext) {
	dir := e.Steer(ctx)
	e.Pos = e.Pos.Add(dir.Scale(e.Speed * ctx.Dt))

	if e.Kind != EnemyShooter {
		return
	}
	e.FireCooldown -= ctx.Dt
	if e.FireCooldown > 0 {
		return
	}
	e.FireCooldown = rng.Range(ctx.Rand, ShooterCooldownMin, ShooterCooldownMax)
	if ctx.Bullets == nil {
		return
	}
	aim := ctx.Target.Sub(e.Pos).Normalize()
	if aim.IsZero() {
		aim = physics.V(1, 0)
	}
	ctx.Bullets.SpawnBullet(NewBullet(e.Pos, aim.Scale(EnemyBulletSpeed), EnemyBulletRadius, EnemyBulletLife, true))
}

// EnemyAtEdge creates an enemy just outside a random playfield edge.
func EnemyAtEdge(field Playfield, kind EnemyKind, margin float64, r rng.Source) Enemy {
	var pos Vec2
	switch r.IntN(4) {
	case 0: // Top
		pos = physics.V(rng.Range(r, 0, field.Width), -margin)
	case 1: // Bottom
		pos = physics.V(rng.Range(r, 0, field.Width), field.Height+margin)
	case 2: // Left
		pos = physics.V(-margin, rng.Range(r, 0, field.Height))
	default: // Right
		pos = physics.V(field.Width+margin, rng.Range(r, 0, field.Height))
	}
	return NewEnemy(pos, kind, r)
}
