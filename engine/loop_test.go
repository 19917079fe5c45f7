package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lixenwraith/desk-duck/constant"
)

func TestLoopStepDrainsBeforeTick(t *testing.T) {
	clock := NewManualClock(time.Unix(100, 0))
	var log []string
	var dts []float64

	l := NewLoop(clock, 0, 4,
		func(ev string) { log = append(log, ev) },
		func(now time.Time, dt float64) {
			log = append(log, "tick")
			dts = append(dts, dt)
		})

	require.True(t, l.Submit("a"))
	require.True(t, l.Submit("b"))
	l.Step(clock.Now())
	l.Step(clock.Advance(20 * time.Millisecond))
	require.True(t, l.Submit("c"))
	l.Step(clock.Advance(5 * time.Second))

	assert.Equal(t, []string{"a", "b", "tick", "tick", "c", "tick"}, log)
	require.Len(t, dts, 3)
	assert.InDelta(t, constant.NominalFrameSeconds, dts[0], 1e-12)
	assert.InDelta(t, 0.02, dts[1], 1e-9)
	assert.InDelta(t, constant.MaxFrameSeconds, dts[2], 1e-12)
	assert.Equal(t, uint64(3), l.Ticks())
}

func TestLoopRunsAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	var handled []int
	ticked := make(chan struct{}, 1)

	l := NewLoop(NewTimeProvider(), time.Millisecond, 8,
		func(ev int) {
			mu.Lock()
			handled = append(handled, ev)
			mu.Unlock()
		},
		func(time.Time, float64) {
			select {
			case ticked <- struct{}{}:
			default:
			}
		})

	l.Start()
	l.Start()
	for i := 0; i < 3; i++ {
		require.True(t, l.Submit(i))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(handled) == 3
	}, time.Second, time.Millisecond)
	<-ticked

	l.Stop()
	l.Stop()
	assert.False(t, l.Submit(9))

	mu.Lock()
	assert.Equal(t, []int{0, 1, 2}, handled)
	mu.Unlock()
}

func TestLoopRunReturnsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLoop[int](NewTimeProvider(), time.Millisecond, 1, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	require.Eventually(t, func() bool { return l.Ticks() > 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
