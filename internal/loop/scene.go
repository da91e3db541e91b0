package loop

import (
	"math"

	"github.com/tomz197/neonrush/internal/draw"
	"github.com/tomz197/neonrush/internal/object"
	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/sim"
)

// Palette hues, 0..1.
const (
	huePlayer = 0.52
	hueShield = 0.58
	hueShard  = 0.55
	hueBullet = 0.0
	hueBoss   = 0.83
)

func enemyHue(k object.EnemyKind) float64 {
	switch k {
	case object.EnemyOrbiter:
		return 0.96
	case object.EnemyChaser:
		return 0.08
	case object.EnemyFlanker:
		return 0.75
	case object.EnemyShooter:
		return 0.15
	default:
		return 0
	}
}

func powerUpHue(k object.PowerUpKind) float64 {
	switch k {
	case object.PowerInvuln:
		return hueShield
	case object.PowerMagnet:
		return 0.33
	case object.PowerExtraDash:
		return 0.12
	default:
		return 0
	}
}

// drawScene rasterizes a snapshot onto the canvas. shake offsets everything
// but the starfield.
func drawScene(c *draw.Canvas, snap *sim.Snapshot, shake physics.Vec2) {
	for _, st := range snap.Stars {
		c.Set(st.Pos, draw.Hue(st.Hue, 0.25+0.1*float64(st.Size)))
	}

	for _, sh := range snap.Shards {
		pulse := 1 + 0.15*math.Sin(snap.Time*4+sh.Phase)
		c.FillCircle(sh.Pos.Add(shake), sh.Radius*pulse, draw.Hue(hueShard, 1))
	}

	for _, p := range snap.PowerUps {
		pos := p.Pos.Add(shake)
		col := draw.Hue(powerUpHue(p.Kind), 1)
		c.StrokeCircle(pos, p.Radius, col)
		c.FillCircle(pos.Add(physics.FromAngle(p.Spin).Scale(p.Radius*0.5)), p.Radius*0.3, col)
	}

	for _, e := range snap.Enemies {
		c.FillCircle(e.Pos.Add(shake), e.Radius, draw.Hue(enemyHue(e.Kind), 1))
	}

	if snap.Boss.Active {
		pos := snap.Boss.Pos.Add(shake)
		pulse := 1 + 0.06*math.Sin(snap.Time*6)
		c.FillCircle(pos, snap.Boss.Radius*pulse, draw.Hue(hueBoss, 0.45))
		c.StrokeCircle(pos, snap.Boss.Radius*pulse, draw.Hue(hueBoss, 1))
	}

	for _, b := range snap.Bullets {
		c.FillCircle(b.Pos.Add(shake), b.Radius, draw.Hue(hueBullet, 1))
	}

	drawPlayer(c, snap.Player, shake)

	for _, p := range snap.Particles {
		c.FillCircle(p.Pos.Add(shake), p.Size/2, draw.Hue(p.Hue, physics.Clamp(p.Life, 0.3, 1)))
	}
}

func drawPlayer(c *draw.Canvas, p sim.PlayerView, shake physics.Vec2) {
	for i := 1; i < len(p.Trail); i++ {
		from, to := p.Trail[i-1], p.Trail[i]
		c.DrawLine(from.Pos.Add(shake), to.Pos.Add(shake), draw.Hue(huePlayer, 0.2+to.Fade/object.TrailFade*0.6))
	}
	if !p.Visible {
		return
	}
	pos := p.Pos.Add(shake)
	col := draw.Hue(huePlayer, 1)
	if p.Dashing {
		col = draw.White
	}
	c.FillCircle(pos, p.Radius, col)
	if p.Invulnerable && !p.Dashing {
		c.StrokeCircle(pos, p.Radius+6, draw.Hue(hueShield, 1))
	}
}
