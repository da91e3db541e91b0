// Package sim is the per-frame simulation of a Neon Rush session: player
// motion and dash state, enemy and boss AI, projectiles, pickups, the
// scoring economy and transient effects. A Game is single-threaded; front
// ends call HandleInput once per frame, Update one or more times with a
// fixed step and then read a Snapshot.
package sim

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/neonrush/internal/input"
	"github.com/tomz197/neonrush/internal/object"
	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/rng"
	"github.com/tomz197/neonrush/internal/save"
	"github.com/tomz197/neonrush/internal/upgrade"
)

// Options configures a new Game. Zero values pick sensible defaults.
type Options struct {
	Field  object.Playfield // Defaults to DefaultWidth x DefaultHeight
	Store  save.Store       // Defaults to save.NopStore
	Logger *log.Logger      // Defaults to a discarding logger
	Rand   rng.Source       // Overrides Seed when set
	Seed   uint64           // 0 means time based
}

// Buffs holds the remaining seconds of each timed power-up effect.
type Buffs struct {
	Invuln    float64
	Magnet    float64
	ExtraDash float64
}

// Game owns every pool and all round and persistent state of one session.
type Game struct {
	field  object.Playfield
	rand   rng.Source
	store  save.Store
	logger *log.Logger

	player    *object.Player
	intent    physics.Vec2
	enemies   *object.Pool[object.Enemy]
	shards    *object.Pool[object.Shard]
	bullets   *object.Pool[object.Bullet]
	powerUps  *object.Pool[object.PowerUp]
	particles *object.Pool[object.Particle]
	texts     *object.Pool[object.TextFx]
	stars     *object.Pool[object.Star]
	boss      *object.Boss
	toSpawn   []object.Bullet // Bullets emitted during the AI pass

	// Persistent
	ledger   upgrade.Ledger
	currency int
	best     int

	// Round
	score         int
	combo         float64
	comboTimer    float64
	bossThreshold int
	buffs         Buffs
	time          float64
	enemyTimer    float64
	shardTimer    float64
	powerTimer    float64
	rateBoost     float64
	shake         float64
	terminate     bool

	paused   bool
	shopOpen bool
	over     bool
	quit     bool

	snaps [2]Snapshot
	front int
}

// New creates a game and loads the persisted record from opts.Store. A
// failed load is logged and the session starts from zero.
func New(opts Options) *Game {
	if opts.Field.Width <= 0 || opts.Field.Height <= 0 {
		opts.Field = object.Playfield{Width: DefaultWidth, Height: DefaultHeight}
	}
	if opts.Store == nil {
		opts.Store = save.NopStore{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Rand == nil {
		opts.Rand = rng.New(opts.Seed)
	}

	g := &Game{
		field:     opts.Field,
		rand:      opts.Rand,
		store:     opts.Store,
		logger:    opts.Logger,
		enemies:   object.NewPool[object.Enemy](64),
		shards:    object.NewPool[object.Shard](32),
		bullets:   object.NewPool[object.Bullet](128),
		powerUps:  object.NewPool[object.PowerUp](PowerUpMaxLive),
		particles: object.NewPool[object.Particle](512),
		texts:     object.NewPool[object.TextFx](16),
		stars:     object.NewPool[object.Star](128),
	}

	rec, err := g.store.Load()
	if err != nil {
		g.logger.Warn("load save failed, starting fresh", "err", err)
		rec = save.Record{}
	}
	g.ledger = upgrade.NewLedger(rec.Levels)
	g.currency = max(rec.Currency, 0)
	g.best = max(rec.Best, 0)

	g.ResetRound()
	return g
}

// ResetRound clears every round-scoped value. Currency, best and upgrade
// levels are kept.
func (g *Game) ResetRound() {
	g.player = object.NewPlayer(g.field.Center())
	g.intent = physics.Zero
	g.enemies.Clear()
	g.shards.Clear()
	g.bullets.Clear()
	g.powerUps.Clear()
	g.particles.Clear()
	g.texts.Clear()
	g.boss = nil
	g.toSpawn = g.toSpawn[:0]

	g.score = 0
	g.combo = 0
	g.comboTimer = 0
	g.bossThreshold = BossFirstThreshold
	g.buffs = Buffs{}
	g.time = 0
	g.enemyTimer = EnemySpawnStart
	g.shardTimer = ShardSpawnRate
	g.powerTimer = PowerUpSpawnRate
	g.rateBoost = 0
	g.shake = 0
	g.terminate = false

	g.paused = false
	g.shopOpen = false
	g.over = false

	object.FillStars(g.stars, g.field, g.rand)
	g.logger.Debug("round started", "currency", g.currency, "best", g.best)
}

// HandleInput applies one frame of input. Edge signals act at most once;
// the movement intent is kept for the following Update calls. Returns true
// once the player asked to quit, after persisting.
func (g *Game) HandleInput(in input.Snapshot) bool {
	if g.quit {
		return true
	}
	if in.Quit {
		g.quit = true
		g.persist()
		g.logger.Info("session quit", "score", g.score, "best", g.best)
		return true
	}

	g.intent = in.Intent()

	if in.Reset {
		g.ResetRound()
		return false
	}
	if in.Shop && !g.over {
		g.shopOpen = !g.shopOpen
	}
	if in.Pause && !g.over && !g.shopOpen {
		g.paused = !g.paused
	}
	if g.shopOpen && in.Buy != input.NoBuy {
		g.Purchase(upgrade.Category(in.Buy))
	}
	if in.Dash && g.running() {
		if g.player.TryDash(g.stats()) {
			object.SpawnBurst(g.particles, g.player.Pos, 0.52, 40, 400, g.rand)
			g.shake = max(g.shake, ShakeDash)
		}
	}
	return false
}

// running reports whether gameplay advances this frame.
func (g *Game) running() bool {
	return !g.paused && !g.shopOpen && !g.over
}

// stats derives the player's post-upgrade, post-buff scalars.
func (g *Game) stats() object.PlayerStats {
	dashes := object.DefaultDashMax
	if g.buffs.ExtraDash > 0 {
		dashes = ExtraDashMax
	}
	return object.PlayerStats{
		MoveSpeed:    PlayerSpeed * g.ledger.SpeedMultiplier(),
		DashDuration: PlayerDashTime * g.ledger.DashDurationMultiplier(),
		DashCooldown: PlayerDashCooldown * g.ledger.DashCooldownMultiplier(),
		DashesMax:    dashes,
	}
}

// invulnerable reports whether contacts are currently harmless.
func (g *Game) invulnerable() bool {
	return g.player.Invuln > 0 || g.buffs.Invuln > 0
}

// SpawnBullet queues a bullet emitted during the AI pass.
// Implements object.BulletSpawner.
func (g *Game) SpawnBullet(b object.Bullet) {
	g.toSpawn = append(g.toSpawn, b)
}

// flushSpawned moves queued bullets into the bullet pool.
func (g *Game) flushSpawned() {
	for _, b := range g.toSpawn {
		g.bullets.Add(b)
	}
	g.toSpawn = g.toSpawn[:0]
}

// Field returns the playfield dimensions.
func (g *Game) Field() object.Playfield { return g.field }

// Over reports whether the round has ended.
func (g *Game) Over() bool { return g.over }

// Paused reports whether the simulation is paused by the player.
func (g *Game) Paused() bool { return g.paused }

// ShopOpen reports whether the upgrade shop overlay is open.
func (g *Game) ShopOpen() bool { return g.shopOpen }

// Score returns the round score.
func (g *Game) Score() int { return g.score }

// Currency returns the persistent currency balance.
func (g *Game) Currency() int { return g.currency }

// Best returns the best score across sessions.
func (g *Game) Best() int { return g.best }
