package physics

import (
	"time"

	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/vmath"
)

// DragTracker follows the pointer while the duck is gripped and measures throw velocity
type DragTracker struct {
	// Offset is pointer minus duck position at grab time
	Offset vmath.Vec2

	lastPointer vmath.Vec2
	lastTime    time.Time
	lastMove    time.Time
	active      bool
}

// Grab starts tracking at pointer p, zeroing velocity
func (d *DragTracker) Grab(s *core.DuckState, p vmath.Vec2, now time.Time) {
	d.Offset = vmath.V2Sub(p, s.Position)
	d.lastPointer = p
	d.lastTime = now
	d.lastMove = time.Time{}
	d.active = true
	s.Velocity = vmath.Vec2{}
}

// Move drives position directly from the pointer and records velocity as delta/dt
func (d *DragTracker) Move(s *core.DuckState, p vmath.Vec2, now time.Time) {
	if !d.active {
		return
	}

	dt := now.Sub(d.lastTime).Seconds()
	if dt <= 0 {
		dt = constant.NominalFrameSeconds
	}
	delta := vmath.V2Sub(p, d.lastPointer)

	s.Position = vmath.V2Sub(p, d.Offset)
	s.Velocity = vmath.V2Scale(delta, 1/dt)

	d.lastPointer = p
	d.lastTime = now
	if !delta.IsZero() {
		d.lastMove = now
	}
}

// Release ends the drag: a recent move throws with velocity scaled by multiplier, otherwise the duck drops still
// Returns true if the duck was thrown
func (d *DragTracker) Release(s *core.DuckState, now time.Time, multiplier float64) bool {
	if !d.active {
		return false
	}
	d.active = false

	if d.lastMove.IsZero() || now.Sub(d.lastMove) > constant.ThrowWindow {
		s.Velocity = vmath.Vec2{}
		return false
	}

	s.Velocity = vmath.V2Scale(s.Velocity, multiplier)
	return !s.Velocity.IsZero()
}

// Active reports whether a drag is in progress
func (d *DragTracker) Active() bool {
	return d.active
}

// Cancel drops tracking without changing velocity
func (d *DragTracker) Cancel() {
	d.active = false
}
