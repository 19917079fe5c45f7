package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestV2Normalize(t *testing.T) {
	n := V2Normalize(V2(3, 4))
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)
	assert.InDelta(t, 1.0, V2Mag(n), 1e-12)

	// Zero vector stays zero instead of producing NaN
	z := V2Normalize(Vec2{})
	assert.True(t, z.IsZero())
}

func TestV2Distance(t *testing.T) {
	assert.InDelta(t, 5.0, V2Distance(V2(1, 1), V2(4, 5)), 1e-12)
}

func TestApproachNeverOvershoots(t *testing.T) {
	for _, k := range []float64{0.01, 0.08, 0.3, 0.99, 1.0, 1.5} {
		current := 0.0
		for i := 0; i < 200; i++ {
			next := Approach(current, 1, k)
			assert.GreaterOrEqual(t, next, current, "k=%v step %d", k, i)
			assert.LessOrEqual(t, next, 1.0, "k=%v step %d", k, i)
			current = next
		}
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 3.0, Clamp(1, 3, 10))
	assert.Equal(t, 10.0, Clamp(80, 3, 10))
	assert.Equal(t, 5.5, Clamp(5.5, 3, 10))
}

func TestRandRange(t *testing.T) {
	assert.Equal(t, 2.0, RandRange(0, 2, 6))
	assert.InDelta(t, 4.0, RandRange(0.5, 6, 2), 1e-12)
	assert.False(t, math.IsNaN(RandRange(0.999, 1, 1)))
}
