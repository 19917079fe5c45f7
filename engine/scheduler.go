package engine

import (
	"slices"
	"time"
)

// Timer is a one-shot delayed callback owned by a Scheduler
// Callbacks run on the tick goroutine inside Scheduler.Run
type Timer struct {
	seq      uint64
	deadline time.Time
	fn       func(now time.Time)
	done     bool // fired or cancelled
}

// Cancel stops the timer, no-op if already fired or cancelled
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.done = true
}

// Pending reports whether the timer will still fire
func (t *Timer) Pending() bool {
	return t != nil && !t.done
}

// Deadline returns the scheduled fire time
func (t *Timer) Deadline() time.Time {
	return t.deadline
}

// Scheduler holds tick-driven one-shot timers
// Not safe for concurrent use, owned by the single tick writer
type Scheduler struct {
	timers []*Timer
	seq    uint64
	due    []*Timer
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: make([]*Timer, 0, 8),
	}
}

// At schedules fn at the absolute deadline
func (s *Scheduler) At(deadline time.Time, fn func(now time.Time)) *Timer {
	s.seq++
	t := &Timer{seq: s.seq, deadline: deadline, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// After schedules fn d after now
func (s *Scheduler) After(now time.Time, d time.Duration, fn func(now time.Time)) *Timer {
	return s.At(now.Add(d), fn)
}

// Run fires every timer due at now in deadline order, returns fired count
// Timers scheduled by callbacks fire on a later Run
func (s *Scheduler) Run(now time.Time) int {
	s.due = s.due[:0]
	remaining := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.done:
		case !t.deadline.After(now):
			s.due = append(s.due, t)
		default:
			remaining = append(remaining, t)
		}
	}
	// Clear tail to release dropped timers
	for i := len(remaining); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = remaining

	slices.SortFunc(s.due, func(a, b *Timer) int {
		if c := a.deadline.Compare(b.deadline); c != 0 {
			return c
		}
		return int(a.seq) - int(b.seq)
	})

	fired := 0
	for _, t := range s.due {
		// An earlier callback in this batch may have cancelled it
		if t.done {
			continue
		}
		t.done = true
		t.fn(now)
		fired++
	}
	return fired
}

// Len returns pending timer count
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// CancelAll cancels every pending timer
func (s *Scheduler) CancelAll() {
	for _, t := range s.timers {
		t.done = true
	}
	s.timers = s.timers[:0]
}
