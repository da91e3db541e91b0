package sim

import (
	"github.com/tomz197/neonrush/internal/object"
	"github.com/tomz197/neonrush/internal/physics"
)

// Update advances the simulation by dt seconds. While paused or in the shop
// nothing moves. After game over only cosmetic effects keep running.
func (g *Game) Update(dt float64) {
	if dt <= 0 || g.quit || g.paused || g.shopOpen {
		return
	}
	if g.over {
		g.updateStars(dt)
		g.decayTransients(dt)
		g.decayShake(dt)
		return
	}

	g.time += dt

	g.player.Update(dt, g.intent, g.stats(), g.field.Bounds())
	g.updateStars(dt)
	g.updateSpawners(dt)
	g.updateEnemies(dt)
	g.updateBoss(dt)
	g.flushSpawned()
	g.powerUps.Each(func(p *object.PowerUp) { p.Update(dt) })

	g.resolveNearMisses()
	g.resolveEnemyContacts()
	g.resolveBossContact()
	g.resolveShards(dt)
	g.resolvePowerUps()
	g.resolveBullets(dt)
	if g.terminate {
		g.gameOver()
	}

	g.decayCombo(dt)
	g.decayTransients(dt)
	g.tickBuffs(dt)
	g.decayShake(dt)
}

// updateStars scrolls the background.
func (g *Game) updateStars(dt float64) {
	g.stars.Each(func(s *object.Star) { s.Update(dt, g.field, g.rand) })
}

// updateSpawners runs the enemy, shard and power-up timers.
func (g *Game) updateSpawners(dt float64) {
	g.rateBoost += dt * EnemyRateBoost

	g.enemyTimer -= dt
	if g.enemyTimer <= 0 {
		g.spawnEnemy()
		g.enemyTimer = max(EnemySpawnStart-g.rateBoost, EnemySpawnMin)
	}

	g.shardTimer -= dt
	if g.shardTimer <= 0 {
		g.shards.Add(object.ShardInField(g.field, ShardInset, g.rand))
		g.shardTimer = ShardSpawnRate
	}

	g.powerTimer -= dt
	if g.powerTimer <= 0 {
		if g.powerUps.Len() < PowerUpMaxLive {
			g.powerUps.Add(object.PowerUpInField(g.field, PowerUpInset, g.rand))
		}
		g.powerTimer = PowerUpSpawnRate
	}
}

// spawnEnemy adds one enemy at a random edge. Shooters join the draw once
// the round score reaches ShooterUnlockScore.
func (g *Game) spawnEnemy() {
	kinds := int(object.EnemyFlanker) + 1
	if g.score >= ShooterUnlockScore {
		kinds = int(object.EnemyShooter) + 1
	}
	kind := object.EnemyKind(g.rand.IntN(kinds))
	g.enemies.Add(object.EnemyAtEdge(g.field, kind, EnemySpawnMargin, g.rand))
}

// updateEnemies steers every enemy against a copy of the player position.
func (g *Game) updateEnemies(dt float64) {
	ctx := object.SteerContext{
		Dt:      dt,
		Time:    g.time,
		Target:  g.player.Pos,
		Field:   g.field,
		Rand:    g.rand,
		Bullets: g,
	}
	g.enemies.Each(func(e *object.Enemy) { e.Update(ctx) })
}

// tickBuffs counts the power-up timers down. The extra dash slot is taken
// away when its buff ends.
func (g *Game) tickBuffs(dt float64) {
	g.buffs.Invuln = max(g.buffs.Invuln-dt, 0)
	g.buffs.Magnet = max(g.buffs.Magnet-dt, 0)
	if g.buffs.ExtraDash > 0 {
		g.buffs.ExtraDash = max(g.buffs.ExtraDash-dt, 0)
		if g.buffs.ExtraDash == 0 {
			g.player.ClampDashes(object.DefaultDashMax)
		}
	}
}

// decayTransients moves and fades particles and floating text, dropping
// the expired ones.
func (g *Game) decayTransients(dt float64) {
	g.particles.Retain(func(p *object.Particle) bool {
		p.Update(dt)
		return p.Alive()
	})
	g.texts.Retain(func(t *object.TextFx) bool {
		t.Update(dt)
		return t.Alive()
	})
}

func (g *Game) decayShake(dt float64) {
	g.shake = max(g.shake-ShakeDecay*dt, 0)
}

// cullBounds is the area outside of which bullets are removed.
func (g *Game) cullBounds() physics.Rect {
	return g.field.Bounds().Inset(-BulletCullMargin)
}
