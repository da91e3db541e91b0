// Package upgrade tracks the permanent upgrade levels bought with currency
// and converts them into gameplay stat multipliers.
package upgrade

import (
	"fmt"
	"math"
)

// Category identifies one upgrade track.
type Category int

const (
	Speed Category = iota
	DashCooldown
	DashDuration
	ShardValue
	Magnet
	NumCategories
)

// MaxLevel caps every category.
const MaxLevel = 10

// catalog entry: cost = Base + level*Step.
type track struct {
	key   string // Persisted field name
	label string // Shop label
	base  int
	step  int
}

var catalog = [NumCategories]track{
	Speed:        {key: "speed", label: "Speed", base: 60, step: 40},
	DashCooldown: {key: "dash_cd", label: "Dash cooldown", base: 80, step: 50},
	DashDuration: {key: "dash_time", label: "Dash duration", base: 70, step: 45},
	ShardValue:   {key: "shard_value", label: "Shard value", base: 100, step: 75},
	Magnet:       {key: "magnet", label: "Magnet", base: 50, step: 35},
}

// Valid reports whether c names a real category.
func (c Category) Valid() bool {
	return c >= 0 && c < NumCategories
}

// Key returns the persisted field name of c.
func (c Category) Key() string {
	if !c.Valid() {
		return ""
	}
	return catalog[c].key
}

// String returns the display label of c.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return catalog[c].label
}

// Ledger holds the five levels. Levels never decrease and are not reset
// between rounds.
type Ledger struct {
	levels [NumCategories]int
}

// NewLedger builds a ledger from persisted levels. Negative and over-cap
// values are clamped.
func NewLedger(levels [NumCategories]int) Ledger {
	var l Ledger
	for i, v := range levels {
		l.levels[i] = min(max(v, 0), MaxLevel)
	}
	return l
}

// Level returns the current level of c, or 0 for an unknown category.
func (l *Ledger) Level(c Category) int {
	if !c.Valid() {
		return 0
	}
	return l.levels[c]
}

// Levels returns a copy of all levels.
func (l *Ledger) Levels() [NumCategories]int {
	return l.levels
}

// Cost returns the price of the next level of c.
func (l *Ledger) Cost(c Category) int {
	if !c.Valid() {
		return 0
	}
	t := catalog[c]
	return t.base + l.levels[c]*t.step
}

// Maxed reports whether c reached MaxLevel.
func (l *Ledger) Maxed(c Category) bool {
	return c.Valid() && l.levels[c] >= MaxLevel
}

// Purchase buys one level of c if currency covers the cost. It returns the
// remaining currency and whether the purchase happened. Unknown categories,
// capped categories and insufficient funds are no-ops.
func (l *Ledger) Purchase(c Category, currency int) (int, bool) {
	if !c.Valid() || l.Maxed(c) {
		return currency, false
	}
	cost := l.Cost(c)
	if currency < cost {
		return currency, false
	}
	l.levels[c]++
	return currency - cost, true
}

// SpeedMultiplier scales the player's move speed.
func (l *Ledger) SpeedMultiplier() float64 {
	return 1 + 0.08*float64(l.levels[Speed])
}

// DashCooldownMultiplier shrinks the dash cooldown geometrically.
func (l *Ledger) DashCooldownMultiplier() float64 {
	return math.Pow(0.92, float64(l.levels[DashCooldown]))
}

// DashDurationMultiplier stretches the dash.
func (l *Ledger) DashDurationMultiplier() float64 {
	return 1 + 0.10*float64(l.levels[DashDuration])
}

// ShardBonus is the extra currency earned per shard.
func (l *Ledger) ShardBonus() int {
	return l.levels[ShardValue]
}

// MagnetMultiplier scales the shard pull speed.
func (l *Ledger) MagnetMultiplier() float64 {
	return 1 + 0.20*float64(l.levels[Magnet])
}
