// Package rng provides the uniform random source used by spawners and AI.
package rng

import (
	"math"
	"math/rand/v2"
	"time"
)

// Source samples uniform values. Implementations need not be safe for
// concurrent use; each game session owns its own Source.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). n must be > 0.
	IntN(n int) int
}

// Range returns a value in [lo, hi).
func Range(s Source, lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// Angle returns a random angle in [0, 2π).
func Angle(s Source) float64 {
	return s.Float64() * 2 * math.Pi
}

// Chance reports true with probability p.
func Chance(s Source, p float64) bool {
	return s.Float64() < p
}

// New returns a deterministic PCG-backed source. A zero seed picks one from
// the clock.
func New(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Fixed replays a scripted sequence of Float64 values, cycling when
// exhausted. IntN derives from the same sequence. Intended for tests that
// need to force Bernoulli outcomes.
type Fixed struct {
	Values []float64
	i      int
}

// Float64 returns the next scripted value.
func (f *Fixed) Float64() float64 {
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.i%len(f.Values)]
	f.i++
	return v
}

// IntN maps the next scripted value onto [0, n).
func (f *Fixed) IntN(n int) int {
	v := int(f.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
