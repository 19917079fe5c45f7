package engine

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSchedulerFiresInDeadlineOrder(t *testing.T) {
	s := NewScheduler()
	start := time.Unix(0, 0)
	var order []string

	s.After(start, 300*time.Millisecond, func(time.Time) { order = append(order, "c") })
	s.After(start, 100*time.Millisecond, func(time.Time) { order = append(order, "a") })
	s.After(start, 200*time.Millisecond, func(time.Time) { order = append(order, "b") })

	assert.Equal(t, 0, s.Run(start.Add(50*time.Millisecond)))
	assert.Equal(t, 2, s.Run(start.Add(250*time.Millisecond)))
	assert.Equal(t, 1, s.Run(start.Add(time.Second)))

	if diff := cmp.Diff([]string{"a", "b", "c"}, order); diff != "" {
		t.Errorf("fire order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, s.Len())
}

func TestTimerCancelIdempotent(t *testing.T) {
	s := NewScheduler()
	start := time.Unix(0, 0)
	fired := 0

	tm := s.After(start, 10*time.Millisecond, func(time.Time) { fired++ })
	assert.True(t, tm.Pending())

	tm.Cancel()
	tm.Cancel()
	assert.False(t, tm.Pending())

	s.Run(start.Add(time.Second))
	assert.Equal(t, 0, fired)

	// Cancelling after fire is a no-op
	tm2 := s.After(start, 0, func(time.Time) { fired++ })
	s.Run(start)
	tm2.Cancel()
	assert.Equal(t, 1, fired)

	// Nil timer cancel is safe
	var nilTimer *Timer
	nilTimer.Cancel()
	assert.False(t, nilTimer.Pending())
}

func TestTimerCancelledBySiblingInSameRun(t *testing.T) {
	s := NewScheduler()
	start := time.Unix(0, 0)
	var second *Timer
	secondFired := false

	s.After(start, 10*time.Millisecond, func(time.Time) { second.Cancel() })
	second = s.After(start, 20*time.Millisecond, func(time.Time) { secondFired = true })

	assert.Equal(t, 1, s.Run(start.Add(time.Second)))
	assert.False(t, secondFired)
}

func TestTimerScheduledFromCallbackFiresNextRun(t *testing.T) {
	s := NewScheduler()
	start := time.Unix(0, 0)
	count := 0

	s.At(start, func(now time.Time) {
		count++
		s.At(now, func(time.Time) { count++ })
	})

	assert.Equal(t, 1, s.Run(start))
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, s.Run(start))
	assert.Equal(t, 2, count)
}

func TestSchedulerCancelAll(t *testing.T) {
	s := NewScheduler()
	start := time.Unix(0, 0)
	tm := s.After(start, time.Second, func(time.Time) { t.Fatal("should not fire") })
	s.CancelAll()
	assert.False(t, tm.Pending())
	assert.Equal(t, 0, s.Run(start.Add(time.Hour)))
}
