package core

import (
	"github.com/lixenwraith/desk-duck/vmath"
)

// DampedPair is a visual value exponentially smoothed toward its target
type DampedPair struct {
	Current float64
	Target  float64
}

// Pair returns a pair at rest on v
func Pair(v float64) DampedPair {
	return DampedPair{Current: v, Target: v}
}

// Step moves Current toward Target by fraction k, k clamped to [0, 1]
func (p *DampedPair) Step(k float64) {
	p.Current = vmath.Approach(p.Current, p.Target, k)
}

// Snap sets Current to Target
func (p *DampedPair) Snap() {
	p.Current = p.Target
}

// DuckState is the per-instance simulation state, written once per tick by its controller
type DuckState struct {
	// Position is the top-left anchor in viewport pixels
	Position vmath.Vec2
	// Velocity is in pixels per second
	Velocity vmath.Vec2
	// Size is the diameter, half of it is the collision margin
	Size float64

	Scale   DampedPair
	Squeeze DampedPair
	SquashX DampedPair
	SquashY DampedPair
	// ScaleX is the horizontal flip factor, -1..1
	ScaleX DampedPair

	Mode      BehaviorMode
	IsFlipped bool

	// Orthogonal to Mode
	Speaking      bool
	ShowingBubble bool
}

// NewDuckState returns a resting duck at pos
func NewDuckState(pos vmath.Vec2, size float64) DuckState {
	return DuckState{
		Position: pos,
		Size:     size,
		Scale:    Pair(1),
		Squeeze:  Pair(0),
		SquashX:  Pair(1),
		SquashY:  Pair(1),
		ScaleX:   Pair(1),
		Mode:     ModeIdle,
	}
}

// Center returns the midpoint of the duck's box
func (s *DuckState) Center() vmath.Vec2 {
	return vmath.V2(s.Position.X+s.Size/2, s.Position.Y+s.Size/2)
}

// Speed returns velocity magnitude
func (s *DuckState) Speed() float64 {
	return vmath.V2Mag(s.Velocity)
}

// StandingStill reports whether both velocity axes are below min
func (s *DuckState) StandingStill(min float64) bool {
	return abs(s.Velocity.X) < min && abs(s.Velocity.Y) < min
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
