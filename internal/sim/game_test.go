package sim

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tomz197/neonrush/internal/input"
	"github.com/tomz197/neonrush/internal/object"
	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/rng"
	"github.com/tomz197/neonrush/internal/save"
	"github.com/tomz197/neonrush/internal/upgrade"
)

const tick = 1.0 / 60

// memStore records saves in memory and can be told to fail.
type memStore struct {
	rec   save.Record
	saves int
	err   error
}

func (m *memStore) Load() (save.Record, error) { return m.rec, nil }

func (m *memStore) Save(r save.Record) error {
	m.saves++
	if m.err != nil {
		return m.err
	}
	m.rec = r
	return nil
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rng.New(1)
	}
	return New(opts)
}

func press(mod func(*input.Snapshot)) input.Snapshot {
	in := input.None()
	mod(&in)
	return in
}

func TestNewLoadsRecord(t *testing.T) {
	store := &memStore{rec: save.Record{Currency: 42, Best: 900}}
	store.rec.Levels[upgrade.Magnet] = 3

	g := newTestGame(t, Options{Store: store})
	if g.Currency() != 42 || g.Best() != 900 {
		t.Fatalf("currency=%d best=%d, want 42/900", g.Currency(), g.Best())
	}
	l := g.Ledger()
	if l.Level(upgrade.Magnet) != 3 {
		t.Fatalf("magnet level = %d, want 3", l.Level(upgrade.Magnet))
	}
	if g.stars.Len() < 40 {
		t.Fatalf("stars = %d, want at least 40", g.stars.Len())
	}
	if g.player.Pos != g.field.Center() {
		t.Fatalf("player starts at %v, want center", g.player.Pos)
	}
}

func TestDashFromRest(t *testing.T) {
	g := newTestGame(t, Options{})

	g.HandleInput(press(func(in *input.Snapshot) { in.Dash = true }))

	p := g.player
	if math.Abs(p.Vel.X-object.DashSpeed) > 1e-9 || p.Vel.Y != 0 {
		t.Fatalf("dash velocity = %v, want (920,0)", p.Vel)
	}
	if p.Dashes != 0 {
		t.Fatalf("dashes = %d, want 0", p.Dashes)
	}
	if math.Abs(p.DashCooldown-PlayerDashCooldown) > 1e-9 {
		t.Fatalf("cooldown = %f, want %f", p.DashCooldown, PlayerDashCooldown)
	}
	if g.particles.Len() != 40 {
		t.Fatalf("dash burst = %d particles, want 40", g.particles.Len())
	}
	if g.shake != ShakeDash {
		t.Fatalf("shake = %f, want %f", g.shake, ShakeDash)
	}

	// A refused dash gives no feedback.
	g.particles.Clear()
	g.HandleInput(press(func(in *input.Snapshot) { in.Dash = true }))
	if g.particles.Len() != 0 {
		t.Fatal("refused dash spawned particles")
	}
}

func TestInvulnerableEnemyContactRewards(t *testing.T) {
	// Rolls of 0.9 never drop a shard, which would otherwise be collected
	// on the same tick.
	g := newTestGame(t, Options{Rand: &rng.Fixed{Values: []float64{0.9}}})
	g.player.Invuln = 1
	// Just inside the contact distance.
	g.enemies.Add(object.NewEnemy(g.player.Pos.Add(physics.V(object.PlayerRadius+object.EnemyRadius-1e-9, 0)), object.EnemyChaser, g.rand))

	g.Update(tick)

	if g.Over() {
		t.Fatal("invulnerable contact must not end the round")
	}
	if g.score != EnemyKillScore {
		t.Fatalf("score = %d, want %d", g.score, EnemyKillScore)
	}
	if g.currency != EnemyKillCurrency {
		t.Fatalf("currency = %d, want %d", g.currency, EnemyKillCurrency)
	}
	if g.enemies.Len() != 0 {
		t.Fatalf("enemies = %d, want 0", g.enemies.Len())
	}
	if math.Abs(g.combo-ComboInc) > 1e-9 {
		t.Fatalf("combo = %f, want %f", g.combo, ComboInc)
	}
}

func TestShardPickupUsesCombo(t *testing.T) {
	g := newTestGame(t, Options{})
	g.combo = 0.5
	g.shards.Add(object.NewShard(g.player.Pos, g.rand))

	g.Update(tick)

	if g.score != 7 {
		t.Fatalf("score = %d, want 7", g.score)
	}
	if g.currency != 1 {
		t.Fatalf("currency = %d, want 1", g.currency)
	}
	if math.Abs(g.combo-0.6) > 1e-9 {
		t.Fatalf("combo = %f, want 0.6", g.combo)
	}
	if g.shards.Len() != 0 {
		t.Fatal("shard not consumed")
	}
	if g.texts.Len() != 1 || g.texts.Items()[0].Text != "+7" {
		t.Fatalf("texts = %+v, want one +7 label", g.texts.Items())
	}
}

func TestShardValueUpgradeAddsCurrency(t *testing.T) {
	store := &memStore{}
	store.rec.Levels[upgrade.ShardValue] = 3
	g := newTestGame(t, Options{Store: store})
	g.shards.Add(object.NewShard(g.player.Pos, g.rand))

	g.Update(tick)

	if g.currency != 4 {
		t.Fatalf("currency = %d, want 4", g.currency)
	}
}

func TestContactEndsRoundOnce(t *testing.T) {
	store := &memStore{rec: save.Record{Best: 5}}
	g := newTestGame(t, Options{Store: store})
	g.score = 30
	g.enemies.Add(object.NewEnemy(g.player.Pos, object.EnemyOrbiter, g.rand))
	g.enemies.Add(object.NewEnemy(g.player.Pos.Add(physics.V(-5, 0)), object.EnemyChaser, g.rand))

	g.Update(tick)

	if !g.Over() {
		t.Fatal("round should be over")
	}
	if g.enemies.Len() != 0 {
		t.Fatalf("enemies = %d, want touching enemies removed", g.enemies.Len())
	}
	if g.score != 30 {
		t.Fatalf("score = %d, vulnerable contact must not reward", g.score)
	}
	if g.Best() != 30 || store.rec.Best != 30 {
		t.Fatalf("best = %d saved %d, want 30", g.Best(), store.rec.Best)
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}
	if math.Abs(g.shake-(ShakeGameOver-ShakeDecay*tick)) > 1e-9 {
		t.Fatalf("shake = %f", g.shake)
	}

	g.enemies.Add(object.NewEnemy(g.player.Pos, object.EnemyChaser, g.rand))
	for i := 0; i < 10; i++ {
		g.Update(tick)
	}
	if store.saves != 1 {
		t.Fatalf("game over ran again: saves = %d", store.saves)
	}
}

func TestGameOverFreezesGameplay(t *testing.T) {
	g := newTestGame(t, Options{})
	g.over = true
	far := physics.V(100, 100)
	g.enemies.Add(object.NewEnemy(far, object.EnemyChaser, g.rand))
	object.SpawnBurst(g.particles, far, 0, 5, 100, g.rand)
	before := g.particles.Items()[0].Life

	g.Update(tick)

	if g.enemies.Items()[0].Pos != far {
		t.Fatal("enemy moved after game over")
	}
	if g.time != 0 {
		t.Fatal("round clock advanced after game over")
	}
	if g.particles.Items()[0].Life >= before {
		t.Fatal("particles should keep decaying after game over")
	}
}

func TestNearMiss(t *testing.T) {
	tests := []struct {
		name   string
		roll   float64
		invuln float64
		score  int
	}{
		{"hit", 0.01, 0, NearMissBonus},
		{"roll misses", 0.5, 0, 0},
		{"invulnerable", 0.01, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, Options{Rand: &rng.Fixed{Values: []float64{tt.roll}}})
			g.player.Invuln = tt.invuln
			g.enemies.Add(object.NewEnemy(g.player.Pos.Add(physics.V(30, 0)), object.EnemyOrbiter, g.rand))

			g.resolveNearMisses()

			if g.score != tt.score {
				t.Fatalf("score = %d, want %d", g.score, tt.score)
			}
			if tt.score > 0 {
				if g.currency != NearMissCurrency {
					t.Fatalf("currency = %d, want %d", g.currency, NearMissCurrency)
				}
				if g.texts.Len() != 1 || g.texts.Items()[0].Text != "near!" {
					t.Fatal("missing near! label")
				}
				if g.combo != 0 {
					t.Fatal("near miss must not touch the combo")
				}
			}
		})
	}
}

func TestNearMissIgnoresOutsideRing(t *testing.T) {
	g := newTestGame(t, Options{Rand: &rng.Fixed{Values: []float64{0}}})
	g.enemies.Add(object.NewEnemy(g.player.Pos.Add(physics.V(NearMissDist, 0)), object.EnemyOrbiter, g.rand))
	g.enemies.Add(object.NewEnemy(g.player.Pos.Add(physics.V(g.player.Radius, 0)), object.EnemyOrbiter, g.rand))

	g.resolveNearMisses()

	if g.score != 0 {
		t.Fatalf("score = %d, ring edges are exclusive", g.score)
	}
}

func TestComboDecay(t *testing.T) {
	g := newTestGame(t, Options{})
	g.bumpScore(1)
	g.bumpScore(1)

	g.decayCombo(1.0)
	if math.Abs(g.combo-0.2) > 1e-9 {
		t.Fatalf("combo decayed early: %f", g.combo)
	}
	g.decayCombo(1.3)
	if g.combo != 0 || g.comboTimer != 0 {
		t.Fatalf("combo=%f timer=%f, want both 0", g.combo, g.comboTimer)
	}
	g.decayCombo(5)
	if g.combo < 0 {
		t.Fatal("combo went negative")
	}

	for i := 0; i < 10; i++ {
		g.bumpScore(1)
	}
	g.decayCombo(ComboTime + 0.1)
	if math.Abs(g.combo-0.5) > 1e-9 {
		t.Fatalf("combo = %f, want 0.5 after one decay step", g.combo)
	}
	g.decayCombo(ComboTime)
	if math.Abs(g.combo-0.5) > 1e-9 {
		t.Fatal("idle timer must not decay again")
	}
}

func TestHostileBullet(t *testing.T) {
	t.Run("absorbed while invulnerable", func(t *testing.T) {
		g := newTestGame(t, Options{})
		g.buffs.Invuln = 2
		g.bullets.Add(object.NewBullet(g.player.Pos, physics.Zero, 5, 4, true))

		g.Update(tick)

		if g.Over() {
			t.Fatal("absorbed bullet ended the round")
		}
		if g.bullets.Len() != 0 {
			t.Fatal("absorbed bullet should be removed")
		}
	})
	t.Run("fatal otherwise", func(t *testing.T) {
		g := newTestGame(t, Options{})
		g.bullets.Add(object.NewBullet(g.player.Pos, physics.Zero, 5, 4, true))

		g.Update(tick)

		if !g.Over() {
			t.Fatal("hostile bullet should end the round")
		}
		if g.bullets.Len() != 0 {
			t.Fatal("bullet should be removed on hit")
		}
	})
}

func TestBulletsCulledOutsideExpandedField(t *testing.T) {
	g := newTestGame(t, Options{})
	g.bullets.Add(object.NewBullet(physics.V(-BulletCullMargin+1, 50), physics.V(-120, 0), 5, 4, true))
	g.bullets.Add(object.NewBullet(physics.V(-BulletCullMargin+10, 50), physics.V(-120, 0), 5, 4, true))

	g.resolveBullets(tick)

	if g.bullets.Len() != 1 {
		t.Fatalf("bullets = %d, want 1", g.bullets.Len())
	}
}

func TestBossLifecycle(t *testing.T) {
	g := newTestGame(t, Options{})
	g.player.Pos = physics.V(100, 600)

	g.updateBoss(tick)
	if g.BossActive() {
		t.Fatal("boss spawned below the threshold")
	}

	g.score = BossFirstThreshold
	g.updateBoss(tick)
	if !g.BossActive() {
		t.Fatal("boss should spawn at the threshold")
	}

	for i := 0; i < 100; i++ {
		g.updateBoss(tick)
	}
	g.flushSpawned()
	if want := object.BossRingCount + 2; g.bullets.Len() != want {
		t.Fatalf("boss bullets after 100 ticks = %d, want %d", g.bullets.Len(), want)
	}

	currency := g.currency
	g.boss.Countdown = tick / 2
	g.updateBoss(tick)

	if g.BossActive() {
		t.Fatal("boss should despawn on expiry")
	}
	if g.score != BossFirstThreshold+BossRewardScore {
		t.Fatalf("score = %d", g.score)
	}
	if g.currency != currency+BossRewardCurrency {
		t.Fatalf("currency = %d", g.currency)
	}
	if g.bossThreshold != BossFirstThreshold+BossThresholdStep {
		t.Fatalf("threshold = %d", g.bossThreshold)
	}
}

func TestBossContactEndsRound(t *testing.T) {
	g := newTestGame(t, Options{})
	g.boss = object.NewBoss(g.field)
	g.player.Pos = g.boss.Pos

	g.resolveBossContact()
	if !g.terminate {
		t.Fatal("boss contact should schedule termination")
	}

	g.terminate = false
	g.buffs.Invuln = 1
	g.resolveBossContact()
	if g.terminate {
		t.Fatal("boss contact while invulnerable is harmless")
	}
}

func TestPowerUps(t *testing.T) {
	g := newTestGame(t, Options{})
	at := g.player.Pos
	g.powerUps.Add(object.PowerUp{Pos: at, Radius: object.PowerUpRadius, Kind: object.PowerExtraDash})
	g.powerUps.Add(object.PowerUp{Pos: at, Radius: object.PowerUpRadius, Kind: object.PowerMagnet})

	g.resolvePowerUps()

	if g.buffs.ExtraDash != BuffExtraDashSeconds || g.buffs.Magnet != BuffMagnetSeconds {
		t.Fatalf("buffs = %+v", g.buffs)
	}
	if g.player.Dashes != ExtraDashMax {
		t.Fatalf("dashes = %d, want %d", g.player.Dashes, ExtraDashMax)
	}

	// Refresh, not additive.
	g.buffs.Magnet = 1
	g.powerUps.Add(object.PowerUp{Pos: at, Radius: object.PowerUpRadius, Kind: object.PowerMagnet})
	g.resolvePowerUps()
	if g.buffs.Magnet != BuffMagnetSeconds {
		t.Fatalf("magnet = %f, want refreshed to %f", g.buffs.Magnet, BuffMagnetSeconds)
	}

	g.tickBuffs(BuffExtraDashSeconds + 1)
	if g.player.Dashes != object.DefaultDashMax {
		t.Fatalf("dashes = %d after the buff ended, want %d", g.player.Dashes, object.DefaultDashMax)
	}
	if g.buffs != (Buffs{}) {
		t.Fatalf("buffs = %+v, want all expired", g.buffs)
	}
}

func TestMagnetBuffWidensPull(t *testing.T) {
	g := newTestGame(t, Options{})
	start := g.player.Pos.Add(physics.V(250, 0))
	g.shards.Add(object.NewShard(start, g.rand))

	g.resolveShards(0.1)
	if g.shards.Items()[0].Pos != start {
		t.Fatal("shard outside the magnet radius moved")
	}

	g.buffs.Magnet = 1
	g.resolveShards(0.1)
	got := start.X - g.shards.Items()[0].Pos.X
	if want := MagnetSpeed * MagnetBuffSpeedFactor * 0.1; math.Abs(got-want) > 1e-9 {
		t.Fatalf("shard moved %f, want %f", got, want)
	}
}

func TestShooterLockedBelowThreshold(t *testing.T) {
	g := newTestGame(t, Options{Rand: rng.New(7)})
	for i := 0; i < 200; i++ {
		g.spawnEnemy()
	}
	for _, e := range g.enemies.Items() {
		if e.Kind == object.EnemyShooter {
			t.Fatal("shooter spawned below the unlock score")
		}
	}

	g.enemies.Clear()
	g.score = ShooterUnlockScore
	for i := 0; i < 200; i++ {
		g.spawnEnemy()
	}
	found := false
	for _, e := range g.enemies.Items() {
		if e.Kind == object.EnemyShooter {
			found = true
		}
	}
	if !found {
		t.Fatal("no shooter in 200 spawns after unlock")
	}
}

func TestSpawnIntervalShrinks(t *testing.T) {
	g := newTestGame(t, Options{})
	g.rateBoost = 10
	g.enemyTimer = 0

	g.updateSpawners(tick)

	if g.enemyTimer != EnemySpawnMin {
		t.Fatalf("interval = %f, want floor %f", g.enemyTimer, EnemySpawnMin)
	}
	if g.enemies.Len() != 1 {
		t.Fatalf("enemies = %d, want 1", g.enemies.Len())
	}
}

func TestPowerUpSpawnCap(t *testing.T) {
	g := newTestGame(t, Options{})
	for i := 0; i < 5; i++ {
		g.powerTimer = 0
		g.updateSpawners(tick)
	}
	if g.powerUps.Len() != PowerUpMaxLive {
		t.Fatalf("power-ups = %d, want %d", g.powerUps.Len(), PowerUpMaxLive)
	}
}

func TestPauseFreezes(t *testing.T) {
	g := newTestGame(t, Options{})
	g.HandleInput(press(func(in *input.Snapshot) { in.Pause = true; in.Right = true }))
	if !g.Paused() {
		t.Fatal("not paused")
	}
	pos := g.player.Pos
	timer := g.enemyTimer

	for i := 0; i < 30; i++ {
		g.Update(tick)
	}
	if g.player.Pos != pos || g.enemyTimer != timer || g.time != 0 {
		t.Fatal("paused game advanced")
	}

	g.HandleInput(press(func(in *input.Snapshot) { in.Dash = true }))
	if g.player.IsDashing() {
		t.Fatal("dash accepted while paused")
	}

	g.HandleInput(press(func(in *input.Snapshot) { in.Pause = true; in.Right = true }))
	g.Update(tick)
	if g.player.Pos.X <= pos.X {
		t.Fatal("unpaused player should move right")
	}
}

func TestShopPurchase(t *testing.T) {
	store := &memStore{rec: save.Record{Currency: 60}}
	g := newTestGame(t, Options{Store: store})
	buy := func(i int) {
		g.HandleInput(press(func(in *input.Snapshot) { in.Buy = i }))
	}

	buy(int(upgrade.Speed))
	if store.saves != 0 {
		t.Fatal("buy key acted with the shop closed")
	}

	g.HandleInput(press(func(in *input.Snapshot) { in.Shop = true }))
	if !g.ShopOpen() {
		t.Fatal("shop not open")
	}

	buy(int(upgrade.Speed))
	l := g.Ledger()
	if l.Level(upgrade.Speed) != 1 || g.Currency() != 0 {
		t.Fatalf("level=%d currency=%d, want 1/0", l.Level(upgrade.Speed), g.Currency())
	}
	if store.saves != 1 || store.rec.Levels[upgrade.Speed] != 1 {
		t.Fatalf("purchase not saved: %+v (%d saves)", store.rec, store.saves)
	}

	buy(int(upgrade.Speed))
	buy(7)
	l = g.Ledger()
	if l.Level(upgrade.Speed) != 1 || store.saves != 1 {
		t.Fatal("refused purchases must be no-ops")
	}

	stats := g.stats()
	if math.Abs(stats.MoveSpeed-PlayerSpeed*1.08) > 1e-9 {
		t.Fatalf("move speed = %f", stats.MoveSpeed)
	}
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	store := &memStore{rec: save.Record{Currency: 100}, err: errors.New("disk full")}
	g := newTestGame(t, Options{Store: store})

	g.shopOpen = true
	if !g.Purchase(upgrade.Magnet) {
		t.Fatal("purchase should succeed despite the failing store")
	}
	if g.Currency() != 50 {
		t.Fatalf("currency = %d, want 50", g.Currency())
	}

	g.shopOpen = false
	g.bullets.Add(object.NewBullet(g.player.Pos, physics.Zero, 5, 4, true))
	g.Update(tick)
	if !g.Over() {
		t.Fatal("game over should still happen")
	}
	if store.saves != 2 {
		t.Fatalf("saves attempted = %d, want 2", store.saves)
	}
}

func TestQuitPersists(t *testing.T) {
	store := &memStore{}
	g := newTestGame(t, Options{Store: store})
	g.currency = 12

	if !g.HandleInput(press(func(in *input.Snapshot) { in.Quit = true })) {
		t.Fatal("quit not reported")
	}
	if store.saves != 1 || store.rec.Currency != 12 {
		t.Fatalf("quit did not save: %+v", store.rec)
	}
	if !g.HandleInput(input.None()) {
		t.Fatal("quit must be sticky")
	}
}

func TestResetKeepsPersistentState(t *testing.T) {
	g := newTestGame(t, Options{})
	g.currency = 50
	g.best = 300
	g.score = 100
	g.combo = 1.5
	g.over = true
	g.enemies.Add(object.NewEnemy(physics.Zero, object.EnemyChaser, g.rand))
	g.boss = object.NewBoss(g.field)

	g.HandleInput(press(func(in *input.Snapshot) { in.Reset = true }))

	if g.score != 0 || g.combo != 0 || g.Over() || g.BossActive() || g.enemies.Len() != 0 {
		t.Fatal("round state survived reset")
	}
	if g.currency != 50 || g.best != 300 {
		t.Fatal("persistent state lost on reset")
	}
	if g.bossThreshold != BossFirstThreshold {
		t.Fatalf("threshold = %d", g.bossThreshold)
	}
}

func TestSnapshotDoubleBuffered(t *testing.T) {
	g := newTestGame(t, Options{})
	g.enemies.Add(object.NewEnemy(physics.V(1, 2), object.EnemyFlanker, g.rand))

	a := g.Snapshot()
	b := g.Snapshot()
	if a == b {
		t.Fatal("consecutive snapshots share a buffer")
	}
	if len(a.Enemies) != 1 || a.Enemies[0].Pos != physics.V(1, 2) {
		t.Fatalf("enemies = %+v", a.Enemies)
	}

	g.enemies.At(0).Pos = physics.V(9, 9)
	if a.Enemies[0].Pos != physics.V(1, 2) {
		t.Fatal("snapshot aliases live state")
	}
	if c := g.Snapshot(); c != a {
		t.Fatal("third snapshot should reuse the first buffer")
	}
	if len(g.Snapshot().Shop) != int(upgrade.NumCategories) {
		t.Fatal("shop rows missing")
	}
}

func TestSnapshotOverlay(t *testing.T) {
	g := newTestGame(t, Options{})
	if len(g.Snapshot().Overlay) != 0 {
		t.Fatal("overlay shown while playing")
	}

	g.paused = true
	if s := g.Snapshot(); len(s.Overlay) != 1 || !strings.HasPrefix(s.Overlay[0], "Paused") {
		t.Fatalf("pause overlay = %q", s.Overlay)
	}

	g.paused = false
	g.over = true
	g.score = 12
	g.best = 40
	s := g.Snapshot()
	if len(s.Overlay) != 2 || s.Overlay[0] != "Game Over  •  Score 12  •  Best 40" || s.Overlay[1] != "Press R to restart" {
		t.Fatalf("game over overlay = %q", s.Overlay)
	}
	if s.Combo != 1 {
		t.Fatalf("combo display = %f, want 1", s.Combo)
	}
}

func TestLongRunKeepsInvariants(t *testing.T) {
	g := newTestGame(t, Options{Rand: rng.New(42)})
	bounds := g.field.Bounds().Inset(g.player.Radius)

	for i := 0; i < 60*60; i++ {
		in := input.None()
		in.Right = i%240 < 120
		in.Left = !in.Right
		in.Up = i%90 < 45
		in.Dash = i%50 == 0
		g.HandleInput(in)
		g.Update(tick)

		if g.Over() {
			g.ResetRound()
		}
		p := g.player
		if p.Dashes < 0 || p.Dashes > g.stats().DashesMax {
			t.Fatalf("tick %d: dashes = %d", i, p.Dashes)
		}
		if !bounds.Contains(p.Pos) {
			t.Fatalf("tick %d: player escaped to %v", i, p.Pos)
		}
		if g.combo < 0 {
			t.Fatalf("tick %d: combo = %f", i, g.combo)
		}
		for _, pt := range g.particles.Items() {
			if !pt.Alive() {
				t.Fatalf("tick %d: dead particle kept", i)
			}
		}
	}
}
