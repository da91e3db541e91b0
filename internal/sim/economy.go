package sim

import (
	"github.com/tomz197/neonrush/internal/object"
	"github.com/tomz197/neonrush/internal/save"
	"github.com/tomz197/neonrush/internal/upgrade"
)

// bumpScore adds base to the score and extends the combo.
func (g *Game) bumpScore(base int) {
	g.score += base
	g.combo += ComboInc
	g.comboTimer = ComboTime
}

// decayCombo drops the combo one step when its timer runs out. The timer
// then stays idle until the next bump.
func (g *Game) decayCombo(dt float64) {
	if g.comboTimer <= 0 {
		return
	}
	g.comboTimer -= dt
	if g.comboTimer <= 0 {
		g.comboTimer = 0
		g.combo = max(g.combo-ComboDecay, 0)
	}
}

// gameOver ends the round once: burst, shake, best score and save.
func (g *Game) gameOver() {
	g.terminate = false
	if g.over {
		return
	}
	g.over = true
	g.shake = ShakeGameOver
	object.SpawnBurst(g.particles, g.player.Pos, 0.0, 80, 420, g.rand)
	g.best = max(g.best, g.score)
	g.persist()
	g.logger.Info("game over", "score", g.score, "best", g.best, "currency", g.currency)
}

// Purchase buys one level of c and saves immediately on success. Front ends
// only route buy keys here while the shop is open.
func (g *Game) Purchase(c upgrade.Category) bool {
	left, ok := g.ledger.Purchase(c, g.currency)
	if !ok {
		g.logger.Debug("purchase refused", "upgrade", c, "currency", g.currency)
		return false
	}
	g.currency = left
	g.persist()
	g.logger.Info("upgrade bought", "upgrade", c, "level", g.ledger.Level(c), "currency", g.currency)
	return true
}

// record returns the persistent part of the state.
func (g *Game) record() save.Record {
	return save.Record{
		Currency: g.currency,
		Best:     g.best,
		Levels:   g.ledger.Levels(),
	}
}

// persist writes the record. Failures never interrupt play.
func (g *Game) persist() {
	if err := g.store.Save(g.record()); err != nil {
		g.logger.Warn("save failed", "err", err)
	}
}

// Ledger returns a copy of the upgrade levels.
func (g *Game) Ledger() upgrade.Ledger { return g.ledger }
