package sim

import (
	"fmt"

	"github.com/tomz197/neonrush/internal/object"
	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/rng"
)

// resolveNearMisses gives each enemy grazing the player an independent
// chance per tick to pay a small bonus. Never while invulnerable.
func (g *Game) resolveNearMisses() {
	if g.invulnerable() {
		return
	}
	p := g.player
	for _, e := range g.enemies.Items() {
		if !physics.InRing(e.Pos, p.Pos, p.Radius, NearMissDist) {
			continue
		}
		if rng.Chance(g.rand, NearMissChance) {
			g.score += NearMissBonus
			g.currency += NearMissCurrency
			g.texts.Add(object.NewTextFx(e.Pos, "near!", 0.1))
		}
	}
}

// resolveEnemyContacts removes every enemy touching the player. While
// invulnerable each one is a kill; otherwise the round ends after the scan.
func (g *Game) resolveEnemyContacts() {
	p := g.player
	invuln := g.invulnerable()
	var drops []object.Vec2

	g.enemies.Retain(func(e *object.Enemy) bool {
		if !physics.CirclesTouch(p.Pos, p.Radius, e.Pos, e.Radius) {
			return true
		}
		if invuln {
			object.SpawnBurst(g.particles, e.Pos, 0.96, 32, 360, g.rand)
			g.bumpScore(EnemyKillScore)
			g.currency += EnemyKillCurrency
			if rng.Chance(g.rand, ShardDropChance) {
				drops = append(drops, e.Pos)
			}
		} else {
			g.terminate = true
		}
		return false
	})

	for _, pos := range drops {
		g.shards.Add(object.NewShard(pos, g.rand))
	}
}

// resolveBossContact ends the round when the player touches the boss
// outside of invulnerability.
func (g *Game) resolveBossContact() {
	if g.boss == nil || g.invulnerable() {
		return
	}
	p := g.player
	if physics.CirclesTouch(p.Pos, p.Radius, g.boss.Pos, g.boss.Radius) {
		g.terminate = true
	}
}

// resolveShards collects touched shards and pulls the rest toward the
// player when inside the magnet radius.
func (g *Game) resolveShards(dt float64) {
	p := g.player
	radius, speed := g.magnet()

	g.shards.Retain(func(s *object.Shard) bool {
		if physics.CirclesTouch(p.Pos, p.Radius, s.Pos, s.Radius) {
			bonus := int(ShardBaseValue * (1 + g.combo))
			g.bumpScore(bonus)
			g.currency += 1 + g.ledger.ShardBonus()
			g.texts.Add(object.NewTextFx(s.Pos, fmt.Sprintf("+%d", bonus), 0.55))
			object.SpawnBurst(g.particles, s.Pos, 0.55, 22, 280, g.rand)
			return false
		}
		s.Attract(p.Pos, radius, speed, dt)
		s.Phase += dt
		return true
	})
}

// magnet returns the current shard pull radius and speed.
func (g *Game) magnet() (radius, speed float64) {
	radius = MagnetRadius
	speed = MagnetSpeed * g.ledger.MagnetMultiplier()
	if g.buffs.Magnet > 0 {
		radius = MagnetBuffRadius
		speed *= MagnetBuffSpeedFactor
	}
	return radius, speed
}

// resolvePowerUps applies touched power-ups. A repeated pickup refreshes
// the timer instead of stacking.
func (g *Game) resolvePowerUps() {
	p := g.player
	g.powerUps.Retain(func(u *object.PowerUp) bool {
		if !physics.CirclesTouch(p.Pos, p.Radius, u.Pos, u.Radius) {
			return true
		}
		switch u.Kind {
		case object.PowerInvuln:
			g.buffs.Invuln = BuffInvulnSeconds
		case object.PowerMagnet:
			g.buffs.Magnet = BuffMagnetSeconds
		case object.PowerExtraDash:
			g.buffs.ExtraDash = BuffExtraDashSeconds
			g.player.GrantDash(ExtraDashMax)
		}
		g.texts.Add(object.NewTextFx(u.Pos, u.Kind.String(), 0.3))
		object.SpawnBurst(g.particles, u.Pos, 0.3, 16, 220, g.rand)
		return false
	})
}

// resolveBullets integrates bullets, culls the dead ones and resolves
// hostile hits on the player.
func (g *Game) resolveBullets(dt float64) {
	p := g.player
	cull := g.cullBounds()
	invuln := g.invulnerable()

	g.bullets.Retain(func(b *object.Bullet) bool {
		if !b.Update(dt, cull) {
			return false
		}
		if !b.Hostile || !physics.CirclesTouch(p.Pos, p.Radius, b.Pos, b.Radius) {
			return true
		}
		if invuln {
			object.SpawnBurst(g.particles, b.Pos, 0.6, 6, 160, g.rand)
		} else {
			g.terminate = true
		}
		return false
	})
}
