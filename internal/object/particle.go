package object

import (
	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/rng"
)

// ParticleShrink is how fast particle size decays per second.
const ParticleShrink = 18.0

// Particle is a short-lived visual effect. It has no gameplay effect but
// is decayed by the same pipeline as gameplay timers.
type Particle struct {
	Pos  Vec2
	Vel  Vec2
	Life float64 // Seconds remaining
	Size float64
	Hue  float64 // Cosmetic color, 0..1
}

// Alive reports whether the particle should stay in its pool.
func (p *Particle) Alive() bool {
	return p.Life > 0 && p.Size > 0
}

// Update moves, fades and shrinks the particle. Expired particles are left
// untouched so a decay pass can never bring one back.
func (p *Particle) Update(dt float64) {
	if !p.Alive() {
		return
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Life -= dt
	p.Size -= ParticleShrink * dt
	if p.Size < 0 {
		p.Size = 0
	}
}

// SpawnBurst adds amount particles flying out of pos in random directions
// at up to speed.
func SpawnBurst(pool *Pool[Particle], pos Vec2, hue float64, amount int, speed float64, r rng.Source) {
	for i := 0; i < amount; i++ {
		angle := rng.Angle(r)
		spd := r.Float64() * speed
		pool.Add(Particle{
			Pos:  pos,
			Vel:  physics.FromAngle(angle).Scale(spd),
			Life: 0.6 + r.Float64()*0.6,
			Size: 6 + r.Float64()*6,
			Hue:  hue,
		})
	}
}
