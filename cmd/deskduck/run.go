package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/desk-duck/audio"
	"github.com/lixenwraith/desk-duck/config"
	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/duck"
	"github.com/lixenwraith/desk-duck/engine"
	"github.com/lixenwraith/desk-duck/input"
	"github.com/lixenwraith/desk-duck/parameter"
	"github.com/lixenwraith/desk-duck/render"
	"github.com/lixenwraith/desk-duck/speech"
	"github.com/lixenwraith/desk-duck/vmath"
)

// run owns the terminal until the user quits or a signal arrives
func run(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := openStore(environ())
	if err != nil {
		return err
	}
	if mute {
		_ = store.Set(config.KeyAudioEnabled, "false")
	}
	settings := store.Settings()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	source := speech.NewSource(speechPath, logger)

	backend, err := audio.Open(audioBackend, logger)
	if err != nil {
		logger.Warn("sound disabled", zap.Error(err))
	}
	synth := audio.NewSynthesizer(backend, duck.AudioSettings(settings), rng, logger.Named("audio"))
	defer synth.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.HideCursor()
	engine.RegisterCrashHandler(screen, logger)
	defer engine.RegisterCrashHandler(nil, nil)

	clock := engine.NewTimeProvider()
	viewport := render.NewScreenViewport(screen, constant.CellWidthPx, constant.CellHeightPx)
	renderer := render.NewTerminalRenderer(screen, constant.CellWidthPx, constant.CellHeightPx)

	flock := duck.NewFlock()
	for i, pos := range spawnPositions(core.BoundsOf(viewport), settings.Size, count) {
		opts := duck.Options{
			Position: pos,
			Settings: settings,
			Viewport: viewport,
			Speech:   source,
			Synth:    synth,
			Rand:     rng,
			Logger:   logger,
			Now:      clock.Now(),
		}
		// Host diagnostics surface on the first duck only
		if i == 0 {
			opts.Diagnostics = mailbox
		}
		flock.Add(duck.NewController(opts))
	}

	// Settings changes arrive from the watcher goroutine; the tick picks up the latest
	var pending atomic.Pointer[config.Settings]
	unsubscribe := store.OnChange(func(s config.Settings) {
		pending.Store(&s)
	})
	defer unsubscribe()

	handle := func(ev input.Event) {
		switch ev.Type {
		case input.EventQuit:
			cancel()
		case input.EventToggleMute:
			on := store.Settings().AudioEnabled
			if err := store.Set(config.KeyAudioEnabled, strconv.FormatBool(!on)); err != nil {
				logger.Warn("mute toggle failed", zap.Error(err))
			}
		case input.EventResize:
			screen.Sync()
			flock.HandleInput(ev)
		default:
			flock.HandleInput(ev)
		}
	}

	tick := func(now time.Time, dt float64) {
		if s := pending.Swap(nil); s != nil {
			flock.HandleInput(input.SettingsChanged(*s, now))
		}
		frames := flock.Tick(now, dt)
		muted := !flock.Primary().Settings().AudioEnabled
		renderer.SetStatus(parameter.StatusHelp, muted)
		renderer.Render(frames)
	}

	loop := engine.NewLoop(clock, constant.FrameUpdateInterval, constant.InputQueueSize, handle, tick)

	watcher, err := config.NewWatcher(config.DefaultDebounce, logger)
	if err != nil {
		return err
	}
	if configPath != "" {
		if err := watcher.Add(configPath, func() error { return store.LoadFile(configPath) }); err != nil {
			logger.Warn("config file will not be reloaded", zap.Error(err))
		}
	}
	if speechPath != "" {
		if err := watcher.Add(speechPath, source.Reload); err != nil {
			logger.Warn("speech file will not be reloaded", zap.Error(err))
		}
	}

	logger.Debug("started",
		zap.Int("ducks", flock.Len()),
		zap.String("audio", backend.Name()),
		zap.String("speech", source.Path()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(gctx)
	})
	g.Go(func() error {
		return watcher.Run(gctx)
	})
	g.Go(func() error {
		pollInput(gctx, screen, input.NewMachine(), loop, clock)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// Unblocks PollEvent
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})

	err = g.Wait()
	if n := mailbox.Dropped(); n > 0 {
		logger.Debug("diagnostics overflowed", zap.Uint64("dropped", n))
	}
	return err
}

// pollInput translates terminal events and feeds the loop until ctx ends
func pollInput(ctx context.Context, screen tcell.Screen, m *input.Machine, loop *engine.Loop[input.Event], clock engine.Clock) {
	var buf []input.Event
	for {
		ev := screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}
		buf = m.Process(buf[:0], ev, clock.Now())
		for _, e := range buf {
			if !loop.Submit(e) {
				return
			}
		}
	}
}

// spawnPositions spreads n ducks of size across the middle of bounds
func spawnPositions(bounds core.Bounds, size float64, n int) []vmath.Vec2 {
	out := make([]vmath.Vec2, 0, n)
	for i := 0; i < n; i++ {
		x := bounds.Width*float64(i+1)/float64(n+1) - size/2
		y := bounds.Height/2 - size/2
		out = append(out, vmath.V2(x, y))
	}
	return out
}
