package desktop

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/neonrush/internal/object"
	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/sim"
)

// Debug font cell size in pixels.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var background = color.RGBA{R: 6, G: 6, B: 14, A: 255}

// hue converts a 0..1 hue and a brightness to an opaque colour.
func hue(h, value float64) color.RGBA {
	r, g, b := colorful.Hsv(h*360, 0.85, physics.Clamp(value, 0, 1)).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

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
		return 0.58
	case object.PowerMagnet:
		return 0.33
	case object.PowerExtraDash:
		return 0.12
	default:
		return 0
	}
}

func fillCircle(dst *ebiten.Image, p physics.Vec2, r float64, clr color.Color) {
	vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), float32(r), clr, true)
}

func strokeCircle(dst *ebiten.Image, p physics.Vec2, r, width float64, clr color.Color) {
	vector.StrokeCircle(dst, float32(p.X), float32(p.Y), float32(r), float32(width), clr, true)
}

// Draw renders the latest simulation snapshot.
func (a *App) Draw(screen *ebiten.Image) {
	snap := a.game.Snapshot()
	screen.Fill(background)

	var shake physics.Vec2
	if snap.Shake > 0 {
		shake = physics.V((a.fx.Float64()*2-1)*snap.Shake, (a.fx.Float64()*2-1)*snap.Shake)
	}

	for _, st := range snap.Stars {
		size := float32(st.Size)
		vector.DrawFilledRect(screen, float32(st.Pos.X), float32(st.Pos.Y), size, size, hue(st.Hue, 0.35+0.15*float64(st.Size)), false)
	}

	for _, sh := range snap.Shards {
		pulse := 1 + 0.15*math.Sin(snap.Time*4+sh.Phase)
		fillCircle(screen, sh.Pos.Add(shake), sh.Radius*pulse, hue(0.55, 1))
	}

	for _, p := range snap.PowerUps {
		pos := p.Pos.Add(shake)
		clr := hue(powerUpHue(p.Kind), 1)
		strokeCircle(screen, pos, p.Radius, 2, clr)
		fillCircle(screen, pos.Add(physics.FromAngle(p.Spin).Scale(p.Radius*0.5)), p.Radius*0.3, clr)
	}

	for _, e := range snap.Enemies {
		fillCircle(screen, e.Pos.Add(shake), e.Radius, hue(enemyHue(e.Kind), 1))
	}

	if snap.Boss.Active {
		pos := snap.Boss.Pos.Add(shake)
		r := snap.Boss.Radius * (1 + 0.06*math.Sin(snap.Time*6))
		fillCircle(screen, pos, r, hue(0.83, 0.45))
		strokeCircle(screen, pos, r, 3, hue(0.83, 1))
	}

	for _, b := range snap.Bullets {
		fillCircle(screen, b.Pos.Add(shake), b.Radius, hue(0, 1))
	}

	a.drawPlayer(screen, snap.Player, shake)

	for _, p := range snap.Particles {
		fillCircle(screen, p.Pos.Add(shake), p.Size/2, hue(p.Hue, physics.Clamp(p.Life, 0.3, 1)))
	}

	for _, t := range snap.Texts {
		pos := t.Pos.Add(shake)
		ebitenutil.DebugPrintAt(screen, t.Text, int(pos.X)-len(t.Text)*glyphWidth/2, int(pos.Y)-glyphHeight/2)
	}

	drawHUD(screen, snap)
	drawOverlay(screen, snap)
}

func (a *App) drawPlayer(screen *ebiten.Image, p sim.PlayerView, shake physics.Vec2) {
	for _, tp := range p.Trail {
		alpha := tp.Fade / object.TrailFade
		base := hue(0.52, 1)
		clr := color.NRGBA{R: base.R, G: base.G, B: base.B, A: uint8(160 * physics.Clamp(alpha, 0, 1))}
		fillCircle(screen, tp.Pos.Add(shake), p.Radius*0.6, clr)
	}
	if !p.Visible {
		return
	}
	pos := p.Pos.Add(shake)
	var clr color.Color = hue(0.52, 1)
	if p.Dashing {
		clr = color.White
	}
	fillCircle(screen, pos, p.Radius, clr)
	if p.Invulnerable && !p.Dashing {
		strokeCircle(screen, pos, p.Radius+6, 2, hue(0.58, 1))
	}
}

func drawHUD(screen *ebiten.Image, snap *sim.Snapshot) {
	status := fmt.Sprintf("Score %d   x%.1f   Best %d   Currency %d", snap.Score, snap.Combo, snap.Best, snap.Currency)
	ebitenutil.DebugPrintAt(screen, status, 8, 4)

	var parts []string
	if snap.Boss.Active {
		parts = append(parts, fmt.Sprintf("BOSS %.0fs", snap.Boss.Countdown))
	}
	if snap.Buffs.Invuln > 0 {
		parts = append(parts, fmt.Sprintf("shield %.1f", snap.Buffs.Invuln))
	}
	if snap.Buffs.Magnet > 0 {
		parts = append(parts, fmt.Sprintf("magnet %.1f", snap.Buffs.Magnet))
	}
	if snap.Buffs.ExtraDash > 0 {
		parts = append(parts, fmt.Sprintf("dash+ %.1f", snap.Buffs.ExtraDash))
	}
	parts = append(parts, fmt.Sprintf("dash %3.0f%% %d/%d", snap.Player.DashReady*100, snap.Player.Dashes, snap.Player.DashesMax))
	right := strings.Join(parts, "   ")
	ebitenutil.DebugPrintAt(screen, right, int(snap.Field.Width)-8-len(right)*glyphWidth, 4)

	// Dash cooldown bar under the HUD line
	barW := float32(120)
	x := float32(snap.Field.Width) - 8 - barW
	vector.DrawFilledRect(screen, x, 22, barW, 4, hue(0.52, 0.25), false)
	vector.DrawFilledRect(screen, x, 22, barW*float32(snap.Player.DashReady), 4, hue(0.52, 1), false)
}

func drawOverlay(screen *ebiten.Image, snap *sim.Snapshot) {
	if len(snap.Overlay) == 0 {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, float32(snap.Field.Width), float32(snap.Field.Height), color.RGBA{A: 150}, false)

	top := int(snap.Field.Height)/2 - len(snap.Overlay)*glyphHeight/2
	for i, line := range snap.Overlay {
		line = strings.ReplaceAll(line, "•", "-") // Not in the debug font
		n := len([]rune(line))
		ebitenutil.DebugPrintAt(screen, line, int(snap.Field.Width)/2-n*glyphWidth/2, top+i*glyphHeight)
	}
}
