package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/desk-duck/constant"
)

// ManualClock is a Clock that only moves when told to, for tests and replays
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set jumps to t, which may be earlier than the current reading
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new reading
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Frames advances by n nominal frame intervals
func (c *ManualClock) Frames(n int) time.Time {
	return c.Advance(time.Duration(n) * constant.FrameUpdateInterval)
}
