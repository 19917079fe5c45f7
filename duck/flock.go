package duck

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/desk-duck/config"
	"github.com/lixenwraith/desk-duck/input"
)

// Flock ticks several ducks together, keyed by instance id
// Pointer gestures go to the topmost duck under the press until release
type Flock struct {
	order []uuid.UUID
	ducks map[uuid.UUID]*Controller

	captured uuid.UUID
	frames   []Frame
}

// NewFlock creates an empty flock
func NewFlock() *Flock {
	return &Flock{
		ducks: make(map[uuid.UUID]*Controller),
	}
}

// Add inserts c on top, replacing any duck with the same id
func (f *Flock) Add(c *Controller) {
	if _, ok := f.ducks[c.ID()]; ok {
		f.Remove(c.ID())
	}
	f.ducks[c.ID()] = c
	f.order = append(f.order, c.ID())
}

// Remove drops a duck, returning false if it was not present
func (f *Flock) Remove(id uuid.UUID) bool {
	if _, ok := f.ducks[id]; !ok {
		return false
	}
	delete(f.ducks, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	if f.captured == id {
		f.captured = uuid.Nil
	}
	return true
}

// Get returns the duck with id
func (f *Flock) Get(id uuid.UUID) (*Controller, bool) {
	c, ok := f.ducks[id]
	return c, ok
}

// Len returns the number of ducks
func (f *Flock) Len() int {
	return len(f.order)
}

// Primary returns the first added duck, nil when empty
func (f *Flock) Primary() *Controller {
	if len(f.order) == 0 {
		return nil
	}
	return f.ducks[f.order[0]]
}

// ApplySettings pushes a config snapshot to every duck
func (f *Flock) ApplySettings(s config.Settings) {
	for _, id := range f.order {
		f.ducks[id].ApplySettings(s)
	}
}

// HandleInput routes one event: pointer gestures to the duck they started on,
// host events to every duck, keyboard speech to the primary duck
func (f *Flock) HandleInput(ev input.Event) {
	switch ev.Type {
	case input.EventPointerDown:
		f.captured = uuid.Nil
		if c := f.topmost(ev); c != nil {
			f.captured = c.ID()
			c.HandleInput(ev)
		}

	case input.EventPointerMove:
		if c, ok := f.ducks[f.captured]; ok {
			c.HandleInput(ev)
		}

	case input.EventPointerUp:
		if c, ok := f.ducks[f.captured]; ok {
			c.HandleInput(ev)
		}
		f.captured = uuid.Nil

	case input.EventDoubleTap:
		if c := f.topmost(ev); c != nil {
			c.HandleInput(ev)
		}

	case input.EventSpeak:
		if c := f.Primary(); c != nil {
			c.HandleInput(ev)
		}

	default:
		for _, id := range f.order {
			f.ducks[id].HandleInput(ev)
		}
	}
}

// Tick advances every duck and returns their frames in draw order
// The returned slice is reused by the next call
func (f *Flock) Tick(now time.Time, dt float64) []Frame {
	f.frames = f.frames[:0]
	for _, id := range f.order {
		f.frames = append(f.frames, f.ducks[id].Tick(now, dt))
	}
	return f.frames
}

func (f *Flock) topmost(ev input.Event) *Controller {
	for i := len(f.order) - 1; i >= 0; i-- {
		c := f.ducks[f.order[i]]
		if c.Hit(ev.Pos) {
			return c
		}
	}
	return nil
}
