package sim

import (
	"fmt"

	"github.com/tomz197/neonrush/internal/object"
	"github.com/tomz197/neonrush/internal/upgrade"
)

// PlayerView is the render-facing copy of the player.
type PlayerView struct {
	Pos          object.Vec2
	Radius       float64
	Dashing      bool
	Invulnerable bool
	Visible      bool // False on the off phase of the shield blink
	Dashes       int
	DashesMax    int
	DashReady    float64 // Cooldown progress in [0, 1]; 1 means ready
	Trail        []object.TrailPoint
}

// BossView is the render-facing copy of the boss.
type BossView struct {
	Active    bool
	Pos       object.Vec2
	Radius    float64
	Countdown float64
}

// ShopRow describes one purchasable upgrade.
type ShopRow struct {
	Key        int // Number key that buys it
	Category   upgrade.Category
	Label      string
	Level      int
	Cost       int
	Maxed      bool
	Affordable bool
}

// Snapshot is a read-only copy of everything a renderer needs for one
// frame. Slices are reused: a snapshot stays valid until the second
// Snapshot call after the one that returned it.
type Snapshot struct {
	Field  object.Playfield
	Time   float64
	Player PlayerView
	Boss   BossView

	Enemies   []object.Enemy
	Shards    []object.Shard
	Bullets   []object.Bullet
	PowerUps  []object.PowerUp
	Particles []object.Particle
	Texts     []object.TextFx
	Stars     []object.Star

	Score    int
	Currency int
	Best     int
	Combo    float64 // Display multiplier, 1 + combo
	Buffs    Buffs
	Shake    float64

	Paused   bool
	Over     bool
	ShopOpen bool
	Overlay  []string // Centered message lines, empty when none
	Shop     []ShopRow
}

// Snapshot fills the back buffer from the current state and swaps it to
// the front.
func (g *Game) Snapshot() *Snapshot {
	back := 1 - g.front
	s := &g.snaps[back]

	stats := g.stats()
	p := g.player
	s.Field = g.field
	s.Time = g.time
	s.Player = PlayerView{
		Pos:          p.Pos,
		Radius:       p.Radius,
		Dashing:      p.IsDashing(),
		Invulnerable: g.invulnerable(),
		Visible:      !g.over && object.ShouldRenderBlink(g.buffs.Invuln, PlayerBlinkFrequency),
		Dashes:       p.Dashes,
		DashesMax:    stats.DashesMax,
		DashReady:    p.CooldownFraction(stats.DashCooldown),
		Trail:        append(s.Player.Trail[:0], p.Trail...),
	}

	s.Boss = BossView{}
	if g.boss != nil {
		s.Boss = BossView{Active: true, Pos: g.boss.Pos, Radius: g.boss.Radius, Countdown: g.boss.Countdown}
	}

	s.Enemies = g.enemies.AppendTo(s.Enemies[:0])
	s.Shards = g.shards.AppendTo(s.Shards[:0])
	s.Bullets = g.bullets.AppendTo(s.Bullets[:0])
	s.PowerUps = g.powerUps.AppendTo(s.PowerUps[:0])
	s.Particles = g.particles.AppendTo(s.Particles[:0])
	s.Texts = g.texts.AppendTo(s.Texts[:0])
	s.Stars = g.stars.AppendTo(s.Stars[:0])

	s.Score = g.score
	s.Currency = g.currency
	s.Best = g.best
	s.Combo = 1 + g.combo
	s.Buffs = g.buffs
	s.Shake = g.shake

	s.Paused = g.paused
	s.Over = g.over
	s.ShopOpen = g.shopOpen
	s.Overlay = g.overlay(s.Overlay[:0])
	s.Shop = g.shopRows(s.Shop[:0])

	g.front = back
	return s
}

// overlay appends the centered message lines for the current screen.
func (g *Game) overlay(lines []string) []string {
	switch {
	case g.over:
		lines = append(lines,
			fmt.Sprintf("Game Over  •  Score %d  •  Best %d", g.score, g.best),
			"Press R to restart",
		)
	case g.shopOpen:
		lines = append(lines, fmt.Sprintf("Upgrades  •  Currency %d", g.currency))
		for c := upgrade.Category(0); c < upgrade.NumCategories; c++ {
			if g.ledger.Maxed(c) {
				lines = append(lines, fmt.Sprintf("%d  %-14s Lv %2d  MAX", int(c)+1, c, g.ledger.Level(c)))
				continue
			}
			lines = append(lines, fmt.Sprintf("%d  %-14s Lv %2d  cost %d", int(c)+1, c, g.ledger.Level(c), g.ledger.Cost(c)))
		}
		lines = append(lines, "Press 1-5 to buy, U to close")
	case g.paused:
		lines = append(lines, "Paused  •  press P to resume")
	}
	return lines
}

// shopRows appends one row per upgrade category.
func (g *Game) shopRows(rows []ShopRow) []ShopRow {
	for c := upgrade.Category(0); c < upgrade.NumCategories; c++ {
		cost := g.ledger.Cost(c)
		maxed := g.ledger.Maxed(c)
		rows = append(rows, ShopRow{
			Key:        int(c) + 1,
			Category:   c,
			Label:      c.String(),
			Level:      g.ledger.Level(c),
			Cost:       cost,
			Maxed:      maxed,
			Affordable: !maxed && g.currency >= cost,
		})
	}
	return rows
}
