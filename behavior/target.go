package behavior

import (
	"math/rand"

	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/physics"
	"github.com/lixenwraith/desk-duck/vmath"
)

// WalkTarget is the destination of the current walk
type WalkTarget struct {
	Target vmath.Vec2
}

// PickNewTarget samples a uniform point inside the viewport margins, rejecting points
// closer than WalkMinTargetDistance to from; after WalkTargetAttempts it returns the
// farthest candidate seen, which is still in bounds
func PickNewTarget(rng *rand.Rand, from vmath.Vec2, bounds core.Bounds, size float64) vmath.Vec2 {
	minX, maxX := sampleRange(bounds.Width, size)
	minY, maxY := sampleRange(bounds.Height, size)

	var best vmath.Vec2
	bestDist := -1.0
	for i := 0; i < constant.WalkTargetAttempts; i++ {
		c := vmath.V2(
			vmath.RandRange(rng.Float64(), minX, maxX),
			vmath.RandRange(rng.Float64(), minY, maxY),
		)
		d := vmath.V2Distance(c, from)
		if d >= constant.WalkMinTargetDistance {
			return c
		}
		if d > bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// ClampTarget pulls a walk target back inside the sampling area for bounds
func ClampTarget(target vmath.Vec2, bounds core.Bounds, size float64) vmath.Vec2 {
	minX, maxX := sampleRange(bounds.Width, size)
	minY, maxY := sampleRange(bounds.Height, size)
	return vmath.V2(vmath.Clamp(target.X, minX, maxX), vmath.Clamp(target.Y, minY, maxY))
}

// sampleRange returns the anchor range inside margins, collapsing to the
// middle of the physics limits when the viewport is too small for margins
func sampleRange(dim, size float64) (lo, hi float64) {
	lo = constant.WalkMargin
	hi = dim - size - constant.WalkMargin
	if hi >= lo {
		return lo, hi
	}
	pLo, pHi := physics.Limits(dim, size)
	mid := vmath.Clamp((dim-size)/2, pLo, pHi)
	return mid, mid
}
