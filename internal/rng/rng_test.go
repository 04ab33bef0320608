package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPCG_IntRangeBounds(t *testing.T) {
	t.Parallel()

	src := New(42)
	for range 10_000 {
		v := src.IntRange(-10, 30)
		assert.GreaterOrEqual(t, v, -10)
		assert.LessOrEqual(t, v, 30)
	}
}

func TestPCG_IntRangeSwapsBounds(t *testing.T) {
	t.Parallel()

	src := New(7)
	for range 1000 {
		v := src.IntRange(95, 5)
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 95)
	}
}

func TestPCG_SingleValueRange(t *testing.T) {
	t.Parallel()

	src := New(1)
	assert.Equal(t, 3, src.IntRange(3, 3))
}

func TestPCG_SameSeedSameSequence(t *testing.T) {
	t.Parallel()

	a, b := New(1234), New(1234)
	for range 100 {
		assert.Equal(t, a.IntRange(1, 100), b.IntRange(1, 100))
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestPCG_Float64Range(t *testing.T) {
	t.Parallel()

	src := New(99)
	for range 1000 {
		f := src.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}
