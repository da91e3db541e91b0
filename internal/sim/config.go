package sim

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Playfield
const (
	DefaultWidth  = 1280.0
	DefaultHeight = 720.0
)

// Player
const (
	PlayerSpeed          = 360.0
	PlayerDashTime       = 0.16 // Seconds, before upgrades
	PlayerDashCooldown   = 0.9  // Seconds, before upgrades
	PlayerBlinkFrequency = 10.0 // Hz
)

// Spawning
const (
	EnemySpawnStart    = 1.15 // Seconds between enemies at round start
	EnemySpawnMin      = 0.26
	EnemyRateBoost     = 0.03 // Interval reduction per survived second
	EnemySpawnMargin   = 24.0
	ShooterUnlockScore = 60 // Round score from which shooters may spawn
	ShardSpawnRate     = 1.1
	ShardInset         = 40.0
	PowerUpSpawnRate   = 9.0
	PowerUpMaxLive     = 3
	PowerUpInset       = 60.0
)

// Scoring and economy
const (
	ShardBaseValue     = 5
	ShardDropChance    = 0.5
	EnemyKillScore     = 10
	EnemyKillCurrency  = 2
	NearMissDist       = 36.0
	NearMissBonus      = 3
	NearMissCurrency   = 1
	NearMissChance     = 0.02 // Per enemy per tick
	ComboTime          = 2.2  // Seconds a combo survives without a bump
	ComboInc           = 0.1
	ComboDecay         = 0.5
	BossFirstThreshold = 250
	BossThresholdStep  = 400
	BossRewardScore    = 120
	BossRewardCurrency = 30
)

// Magnet
const (
	MagnetRadius          = 180.0
	MagnetBuffRadius      = 320.0
	MagnetSpeed           = 120.0
	MagnetBuffSpeedFactor = 2.5
)

// Buffs
const (
	BuffInvulnSeconds    = 3.0
	BuffMagnetSeconds    = 6.0
	BuffExtraDashSeconds = 8.0
	ExtraDashMax         = 2
)

// Bullets
const (
	BulletCullMargin = 40.0 // Bullets die this far outside the playfield
)

// Screen shake
const (
	ShakeDash     = 10.0
	ShakeGameOver = 20.0
	ShakeDecay    = 18.0 // Per second
)
