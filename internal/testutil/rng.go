package testutil

import (
	"fmt"
	"testing"
)

// ScriptedRNG is an rng.Source that replays fixed draws in order.
// Running out of draws fails the test.
type ScriptedRNG struct {
	tb     testing.TB
	ints   []int
	floats []float64
	calls  []string
}

// NewScriptedRNG returns a source that yields ints in order from IntRange.
func NewScriptedRNG(tb testing.TB, ints ...int) *ScriptedRNG {
	return &ScriptedRNG{tb: tb, ints: ints}
}

// WithFloats queues values returned by Float64.
func (s *ScriptedRNG) WithFloats(f ...float64) *ScriptedRNG {
	s.floats = append(s.floats, f...)
	return s
}

// IntRange returns the next scripted int. The value must lie in [lo, hi].
func (s *ScriptedRNG) IntRange(lo, hi int) int {
	s.tb.Helper()
	if len(s.ints) == 0 {
		s.tb.Fatalf("ScriptedRNG: unexpected IntRange(%d, %d), no draws left", lo, hi)
		return lo
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < lo || v > hi {
		s.tb.Fatalf("ScriptedRNG: scripted %d outside IntRange(%d, %d)", v, lo, hi)
	}
	s.calls = append(s.calls, fmt.Sprintf("int[%d,%d]=%d", lo, hi, v))
	return v
}

// Float64 returns the next scripted float.
func (s *ScriptedRNG) Float64() float64 {
	s.tb.Helper()
	if len(s.floats) == 0 {
		s.tb.Fatalf("ScriptedRNG: unexpected Float64, no draws left")
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	s.calls = append(s.calls, fmt.Sprintf("float=%g", v))
	return v
}

// Remaining reports how many scripted draws were not consumed.
func (s *ScriptedRNG) Remaining() int {
	return len(s.ints) + len(s.floats)
}

// Calls returns a log of the draws made, in order.
func (s *ScriptedRNG) Calls() []string {
	return s.calls
}
