package physics

import (
	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/vmath"
)

// Integrate advances one tick: friction, micro-drift cutoff, position, wall collisions
// Returns one BounceEvent per edge hit; caller must not integrate while dragging
func Integrate(s *core.DuckState, dt, friction, bounceDamping float64, bounds core.Bounds) []core.BounceEvent {
	ApplyFriction(s, friction)

	s.Position.X += s.Velocity.X * dt
	s.Position.Y += s.Velocity.Y * dt

	var events []core.BounceEvent
	if ev, ok := ReflectBoundsX(s, bounds.Width, bounceDamping); ok {
		events = append(events, ev)
	}
	if ev, ok := ReflectBoundsY(s, bounds.Height, bounceDamping); ok {
		events = append(events, ev)
	}
	return events
}

// ApplyFriction scales velocity by friction and zeroes axes below MinVelocity
func ApplyFriction(s *core.DuckState, friction float64) {
	s.Velocity = vmath.V2Scale(s.Velocity, friction)
	if abs(s.Velocity.X) < constant.MinVelocity {
		s.Velocity.X = 0
	}
	if abs(s.Velocity.Y) < constant.MinVelocity {
		s.Velocity.Y = 0
	}
}

// Limits returns the allowed position range for one axis of the given viewport dimension
func Limits(dim, size float64) (lo, hi float64) {
	lo = -size / 2
	hi = dim - size/2
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// ReflectBoundsX handles left/right wall collision, returns the bounce if one occurred
// Horizontal hits squash wide and short
func ReflectBoundsX(s *core.DuckState, width, damping float64) (core.BounceEvent, bool) {
	lo, hi := Limits(width, s.Size)
	var edge core.Edge
	switch {
	case s.Position.X < lo:
		s.Position.X = lo
		edge = core.EdgeLeft
	case s.Position.X > hi:
		s.Position.X = hi
		edge = core.EdgeRight
	default:
		return core.BounceEvent{}, false
	}

	speed := abs(s.Velocity.X)
	s.Velocity.X *= -damping
	s.SquashX.Target = constant.SquashWide
	s.SquashY.Target = constant.SquashNarrow
	return core.BounceEvent{Axis: core.AxisX, Edge: edge, VelocityMagnitude: speed}, true
}

// ReflectBoundsY handles top/bottom wall collision, returns the bounce if one occurred
// Vertical hits squash narrow and tall
func ReflectBoundsY(s *core.DuckState, height, damping float64) (core.BounceEvent, bool) {
	lo, hi := Limits(height, s.Size)
	var edge core.Edge
	switch {
	case s.Position.Y < lo:
		s.Position.Y = lo
		edge = core.EdgeTop
	case s.Position.Y > hi:
		s.Position.Y = hi
		edge = core.EdgeBottom
	default:
		return core.BounceEvent{}, false
	}

	speed := abs(s.Velocity.Y)
	s.Velocity.Y *= -damping
	s.SquashX.Target = constant.SquashNarrow
	s.SquashY.Target = constant.SquashWide
	return core.BounceEvent{Axis: core.AxisY, Edge: edge, VelocityMagnitude: speed}, true
}

// ClampToBounds pulls the duck back inside after a viewport shrink, without bouncing
func ClampToBounds(s *core.DuckState, bounds core.Bounds) {
	lo, hi := Limits(bounds.Width, s.Size)
	s.Position.X = vmath.Clamp(s.Position.X, lo, hi)
	lo, hi = Limits(bounds.Height, s.Size)
	s.Position.Y = vmath.Clamp(s.Position.Y, lo, hi)
}

// BounceVolume maps impact speed to the bounce sound volume multiplier
func BounceVolume(speed float64) float64 {
	return vmath.Clamp(speed/constant.BounceVolumeDivisor, constant.BounceVolumeMin, constant.BounceVolumeMax)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
