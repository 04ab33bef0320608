// Package rng provides the randomness abstraction used by round scaling,
// combat and shop effects.
//
// Every engine draws from a Source in a fixed order, so a seeded Source
// replays a whole game deterministically.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source is the randomness provider for the game engines.
type Source interface {
	// IntRange returns a uniform int in [lo, hi], both ends inclusive.
	IntRange(lo, hi int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// PCG is a Source backed by a seeded PCG generator.
type PCG struct {
	r *rand.Rand
}

// New returns a PCG source. Seed 0 picks a time-based seed.
func New(seed uint64) *PCG {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &PCG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntRange returns a uniform int in [lo, hi].
// If hi < lo the bounds are swapped.
func (p *PCG) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + p.r.IntN(hi-lo+1)
}

// Float64 returns a uniform float in [0, 1).
func (p *PCG) Float64() float64 {
	return p.r.Float64()
}
