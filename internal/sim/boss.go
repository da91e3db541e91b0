package sim

import (
	"github.com/tomz197/neonrush/internal/object"
)

// updateBoss spawns the boss once the score crosses the threshold, runs its
// attack patterns and pays out when the countdown expires.
func (g *Game) updateBoss(dt float64) {
	if g.boss == nil {
		if g.score >= g.bossThreshold {
			g.boss = object.NewBoss(g.field)
			g.texts.Add(object.NewTextFx(g.boss.Pos, "BOSS", 0.0))
			g.logger.Info("boss spawned", "score", g.score, "threshold", g.bossThreshold)
		}
		return
	}

	trig := g.boss.Update(dt, g.field)
	if trig.Ring {
		for _, b := range g.boss.RingBurst() {
			g.SpawnBullet(b)
		}
	}
	if trig.Aimed {
		g.SpawnBullet(g.boss.AimedShot(g.player.Pos))
	}

	if g.boss.Expired() {
		pos := g.boss.Pos
		g.boss = nil
		g.bumpScore(BossRewardScore)
		g.currency += BossRewardCurrency
		g.bossThreshold += BossThresholdStep
		object.SpawnBurst(g.particles, pos, 0.8, 60, 380, g.rand)
		g.texts.Add(object.NewTextFx(pos, "boss survived!", 0.8))
		g.logger.Info("boss survived", "score", g.score, "next", g.bossThreshold)
	}
}

// BossActive reports whether a boss encounter is running.
func (g *Game) BossActive() bool { return g.boss != nil }
