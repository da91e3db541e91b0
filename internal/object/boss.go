package object

import (
	"math"

	"github.com/tomz197/neonrush/internal/physics"
)

// Boss tuning.
const (
	BossRadius       = 34.0
	BossDuration     = 15.0 // Seconds the encounter lasts
	BossY            = 110.0
	BossSwayBand     = 0.35 // Fraction of the playfield width swept each side
	BossSwayRate     = 0.8
	BossRingPeriod   = 1.6
	BossRingCount    = 16
	BossRingSpeed    = 200.0
	BossAimPeriod    = 0.6
	BossAimSpeed     = 320.0
	BossBulletLife   = 5.0
	BossBulletRadius = 6.0
)

// BossTriggers reports which attack patterns fire on a tick.
type BossTriggers struct {
	Ring  bool
	Aimed bool
}

// Boss is the timed singleton encounter.
type Boss struct {
	Pos       Vec2
	Radius    float64
	Countdown float64 // Seconds until despawn
	Phase     float64 // Seconds since spawn; drives sway and attack timing
}

// NewBoss creates a boss at the top band of field.
func NewBoss(field Playfield) *Boss {
	b := &Boss{Radius: BossRadius, Countdown: BossDuration}
	b.Pos = b.swayPosition(field)
	return b
}

func (b *Boss) swayPosition(field Playfield) Vec2 {
	x := field.Width/2 + field.Width*BossSwayBand*math.Sin(b.Phase*BossSwayRate)
	return physics.V(x, BossY)
}

// Update advances the phase and countdown. A trigger fires when its period
// boundary was crossed during this tick, which tolerates variable dt.
func (b *Boss) Update(dt float64, field Playfield) BossTriggers {
	b.Phase += dt
	b.Countdown -= dt
	b.Pos = b.swayPosition(field)
	return BossTriggers{
		Ring:  math.Mod(b.Phase, BossRingPeriod) < dt,
		Aimed: math.Mod(b.Phase, BossAimPeriod) < dt,
	}
}

// Expired reports whether the countdown ran out.
func (b *Boss) Expired() bool {
	return b.Countdown <= 0
}

// RingBurst returns BossRingCount hostile bullets fanned evenly around the
// boss. The ring rotates with the phase so consecutive bursts interleave.
func (b *Boss) RingBurst() []Bullet {
	bullets := make([]Bullet, 0, BossRingCount)
	for i := 0; i < BossRingCount; i++ {
		angle := b.Phase + float64(i)*2*math.Pi/BossRingCount
		vel := physics.FromAngle(angle).Scale(BossRingSpeed)
		bullets = append(bullets, NewBullet(b.Pos, vel, BossBulletRadius, BossBulletLife, true))
	}
	return bullets
}

// AimedShot returns one hostile bullet aimed at target.
func (b *Boss) AimedShot(target Vec2) Bullet {
	dir := target.Sub(b.Pos).Normalize()
	if dir.IsZero() {
		dir = physics.V(0, 1)
	}
	return NewBullet(b.Pos, dir.Scale(BossAimSpeed), BossBulletRadius, BossBulletLife, true)
}
