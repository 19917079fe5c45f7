package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/desk-duck/constant"
)

// Loop owns the fixed tick and the input queue of one simulation
// Input submitted from any goroutine is drained at the start of each tick,
// so handle and tick never run concurrently
type Loop[E any] struct {
	clock    Clock
	interval time.Duration

	input  chan E
	handle func(E)
	tick   func(now time.Time, dt float64)

	// Tick-goroutine state
	last time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	tickCount atomic.Uint64
}

// NewLoop creates a loop ticking at interval with a queue of queueSize events
func NewLoop[E any](clock Clock, interval time.Duration, queueSize int, handle func(E), tick func(now time.Time, dt float64)) *Loop[E] {
	if interval <= 0 {
		interval = constant.FrameUpdateInterval
	}
	if queueSize <= 0 {
		queueSize = constant.InputQueueSize
	}
	return &Loop[E]{
		clock:    clock,
		interval: interval,
		input:    make(chan E, queueSize),
		handle:   handle,
		tick:     tick,
		stopChan: make(chan struct{}),
	}
}

// Submit queues an event, blocking while the queue is full
// Returns false once the loop is stopped
func (l *Loop[E]) Submit(ev E) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}
	select {
	case l.input <- ev:
		return true
	case <-l.stopChan:
		return false
	}
}

// Start begins ticking on a new goroutine, no-op if already running
func (l *Loop[E]) Start() {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	l.wg.Add(1)
	Go(func() {
		defer l.wg.Done()
		l.run()
	})
}

// Stop halts the loop and waits for the tick goroutine to exit
// A stopped loop cannot be restarted
func (l *Loop[E]) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
	l.wg.Wait()
	l.running.Store(false)
}

// Run starts the loop and blocks until ctx is done or Stop is called
func (l *Loop[E]) Run(ctx context.Context) error {
	l.Start()
	select {
	case <-ctx.Done():
	case <-l.stopChan:
	}
	l.Stop()
	return nil
}

// Step drains queued input and runs one tick at now
// Called by the tick goroutine, or directly by callers that never Start the loop
func (l *Loop[E]) Step(now time.Time) {
	l.drain()

	dt := constant.NominalFrameSeconds
	if !l.last.IsZero() {
		dt = now.Sub(l.last).Seconds()
		if dt < 0 {
			dt = 0
		}
		if dt > constant.MaxFrameSeconds {
			dt = constant.MaxFrameSeconds
		}
	}
	l.last = now

	if l.tick != nil {
		l.tick(now, dt)
	}
	l.tickCount.Add(1)
}

// Ticks returns the number of completed ticks
func (l *Loop[E]) Ticks() uint64 {
	return l.tickCount.Load()
}

// drain handles at most the events queued when the tick began
func (l *Loop[E]) drain() {
	for n := len(l.input); n > 0; n-- {
		ev := <-l.input
		if l.handle != nil {
			l.handle(ev)
		}
	}
}

func (l *Loop[E]) run() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.Step(l.clock.Now())
		}
	}
}
