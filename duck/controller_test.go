package duck

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixenwraith/desk-duck/audio"
	"github.com/lixenwraith/desk-duck/bubble"
	"github.com/lixenwraith/desk-duck/config"
	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/input"
	"github.com/lixenwraith/desk-duck/vmath"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// resizable is a viewport whose size tests can change between ticks
type resizable struct {
	w, h float64
}

func (v *resizable) Width() float64  { return v.w }
func (v *resizable) Height() float64 { return v.h }

func quietSettings() config.Settings {
	s := config.Defaults()
	s.SpeechEnabled = false
	s.AutoWalkEnabled = false
	s.WobbleEnabled = false
	s.AudioEnabled = true
	s.BounceSoundEnabled = true
	s.WordSoundEnabled = true
	s.Friction = 0.95
	s.BounceDamping = 0.7
	s.AccelerationMultiplier = 1
	s.Size = 100
	return s
}

type harness struct {
	t       *testing.T
	c       *Controller
	backend *audio.NullBackend
	view    *resizable
	now     time.Time
}

func newHarness(t *testing.T, s config.Settings, pos vmath.Vec2) *harness {
	t.Helper()
	backend := &audio.NullBackend{}
	rng := rand.New(rand.NewSource(7))
	synth := audio.NewSynthesizer(backend, AudioSettings(s), rng, zap.NewNop())
	view := &resizable{w: 1920, h: 1080}
	c := NewController(Options{
		Position: pos,
		Settings: s,
		Viewport: view,
		Synth:    synth,
		Rand:     rng,
		Now:      epoch,
	})
	return &harness{t: t, c: c, backend: backend, view: view, now: epoch}
}

func (h *harness) at(d time.Duration) time.Time {
	return epoch.Add(d)
}

func (h *harness) pointer(typ input.EventType, x, y float64, at time.Duration) {
	h.c.HandleInput(input.Event{Type: typ, Pos: vmath.V2(x, y), Time: h.at(at)})
}

func (h *harness) tick() Frame {
	h.now = h.now.Add(constant.FrameUpdateInterval)
	return h.c.Tick(h.now, constant.NominalFrameSeconds)
}

func countSound(f Frame, sound core.SoundType) int {
	n := 0
	for _, s := range f.Sounds {
		if s == sound {
			n++
		}
	}
	return n
}

func TestThrowIntoCornerBouncesBothAxes(t *testing.T) {
	h := newHarness(t, quietSettings(), vmath.V2(500, 500))

	h.pointer(input.EventPointerDown, 550, 550, 0)
	require.Equal(t, core.ModeDragging, h.c.State().Mode)

	h.pointer(input.EventPointerMove, 70, 70, 100*time.Millisecond)
	h.pointer(input.EventPointerMove, 60, 60, 125*time.Millisecond)
	h.pointer(input.EventPointerUp, 60, 60, 135*time.Millisecond)

	st := h.c.State()
	assert.InDelta(t, 10.0, st.Position.X, 1e-9)
	assert.InDelta(t, 10.0, st.Position.Y, 1e-9)
	assert.InDelta(t, -400.0, st.Velocity.X, 1e-6)
	assert.InDelta(t, -400.0, st.Velocity.Y, 1e-6)
	assert.Equal(t, core.ModeThrown, st.Mode)
	assert.EqualValues(t, 2, h.backend.Played(), "squeeze out and in")

	h.now = h.at(135 * time.Millisecond)
	for i := 0; i < 120; i++ {
		before := h.c.State().Velocity
		played := h.backend.Played()
		f := h.tick()

		bounces := countSound(f, core.SoundBounce)
		if bounces == 0 {
			continue
		}

		assert.Equal(t, 2, bounces)
		assert.EqualValues(t, 2, h.backend.Played()-played)

		st = h.c.State()
		assert.Equal(t, -50.0, st.Position.X)
		assert.Equal(t, -50.0, st.Position.Y)
		assert.InDelta(t, -before.X*0.95*0.7, st.Velocity.X, 1e-9)
		assert.InDelta(t, -before.Y*0.95*0.7, st.Velocity.Y, 1e-9)
		assert.Greater(t, st.Velocity.X, 0.0)
		return
	}
	t.Fatal("duck never reached the corner")
}

func TestBubblePressDismissesInsteadOfGrabbing(t *testing.T) {
	h := newHarness(t, quietSettings(), vmath.V2(500, 500))

	h.c.ReportError("disk", "disk full on volume one")
	f := h.tick()
	require.True(t, f.HasBubble)
	assert.Equal(t, core.BubbleError, f.Bubble.Entry.Kind)
	assert.Equal(t, bubble.StateRevealing, f.Bubble.Phase)

	r := f.BubbleRect
	h.pointer(input.EventPointerDown, r.X+r.W/2, r.Y+r.H/2, 20*time.Millisecond)

	assert.Equal(t, core.ModeIdle, h.c.State().Mode)
	assert.Equal(t, bubble.StateDwelling, h.c.Queue().Phase())
	assert.Zero(t, countSound(h.tick(), core.SoundSqueezeOut))
}

func TestDuplicateDiagnosticsCollapse(t *testing.T) {
	h := newHarness(t, quietSettings(), vmath.V2(500, 500))

	h.c.ReportError("x", "same")
	h.c.ReportError("x", "same")
	h.c.ReportWarning("y", "other")
	h.tick()

	assert.Equal(t, 1, h.c.Queue().Pending())
	v, ok := h.c.Queue().Visible()
	require.True(t, ok)
	assert.Equal(t, "x", v.Entry.Title)
}

func TestWordTicksSilentWhileDragging(t *testing.T) {
	h := newHarness(t, quietSettings(), vmath.V2(500, 500))

	h.pointer(input.EventPointerDown, 550, 550, 0)
	h.c.ReportWarning("w", "one two three four five six seven eight")

	for i := 0; i < 20; i++ {
		f := h.tick()
		assert.Zero(t, countSound(f, core.SoundWordTick))
	}
	v, ok := h.c.Queue().Visible()
	require.True(t, ok)
	assert.NotEmpty(t, v.Text)

	h.c.HandleInput(input.Event{Type: input.EventPointerUp, Time: h.now})
	ticks := 0
	for i := 0; i < 30; i++ {
		ticks += countSound(h.tick(), core.SoundWordTick)
	}
	assert.Positive(t, ticks)
}

func TestHiddenDuckIgnoresPointerAndStops(t *testing.T) {
	h := newHarness(t, quietSettings(), vmath.V2(500, 500))

	h.c.HandleInput(input.Event{Type: input.EventToggleVisibility, Time: epoch})
	h.pointer(input.EventPointerDown, 550, 550, 0)
	assert.Equal(t, core.ModeIdle, h.c.State().Mode)

	f := h.tick()
	assert.False(t, f.Visible)
	assert.False(t, f.HasBubble)
	assert.Empty(t, f.Sounds)

	h.c.HandleInput(input.Event{Type: input.EventToggleVisibility, Time: h.now})
	assert.True(t, h.tick().Visible)
}

func TestHidingMidDragReleases(t *testing.T) {
	h := newHarness(t, quietSettings(), vmath.V2(500, 500))

	h.pointer(input.EventPointerDown, 550, 550, 0)
	h.c.SetVisible(false, h.at(50*time.Millisecond))

	assert.Equal(t, core.ModeIdle, h.c.State().Mode)
	assert.False(t, h.c.Visible())
}

func TestResizeClampsPosition(t *testing.T) {
	h := newHarness(t, quietSettings(), vmath.V2(500, 500))

	h.view.w, h.view.h = 300, 200
	h.tick()

	st := h.c.State()
	assert.Equal(t, 250.0, st.Position.X)
	assert.Equal(t, 150.0, st.Position.Y)
}

func TestSettingsChangedReachesComponents(t *testing.T) {
	h := newHarness(t, quietSettings(), vmath.V2(500, 500))

	s := quietSettings()
	s.Size = 150
	s.Skin = "goose"
	s.Opacity = 0.5
	s.AudioEnabled = false
	h.c.HandleInput(input.SettingsChanged(s, epoch))

	assert.Equal(t, 150.0, h.c.State().Size)
	f := h.tick()
	assert.Equal(t, "goose", f.Skin)
	assert.Equal(t, 0.5, f.Opacity)

	played := h.backend.Played()
	h.pointer(input.EventPointerDown, 560, 560, time.Second)
	assert.Equal(t, played, h.backend.Played(), "muted synth plays nothing")
	assert.Equal(t, 1, countSound(h.tick(), core.SoundSqueezeOut))
}

func TestDoubleTapSpeaks(t *testing.T) {
	s := quietSettings()
	h := newHarness(t, s, vmath.V2(500, 500))

	h.pointer(input.EventDoubleTap, 550, 550, 0)
	f := h.tick()
	require.True(t, f.HasBubble)
	assert.Equal(t, core.BubbleSpeech, f.Bubble.Entry.Kind)
	assert.True(t, h.c.State().Speaking)
}

func TestBubbleRectStaysOnScreen(t *testing.T) {
	h := newHarness(t, quietSettings(), vmath.V2(0, 20))
	h.tick()

	r := h.c.BubbleRect()
	assert.GreaterOrEqual(t, r.X, 0.0)
	assert.GreaterOrEqual(t, r.Y, 0.0)
	assert.False(t, r.Empty())
}

func TestWalkEndsAfterViewportShrinks(t *testing.T) {
	s := quietSettings()
	s.AutoWalkEnabled = true
	s.WalkWaitMin = time.Second
	s.WalkWaitMax = time.Second
	h := newHarness(t, s, vmath.V2(500, 500))

	for i := 0; i < 200 && h.c.State().Mode != core.ModeWalking; i++ {
		h.tick()
	}
	require.Equal(t, core.ModeWalking, h.c.State().Mode)

	h.view.w, h.view.h = 400, 300
	bounces := 0
	for i := 0; i < 1200 && h.c.State().Mode == core.ModeWalking; i++ {
		bounces += countSound(h.tick(), core.SoundBounce)
	}
	assert.Equal(t, core.ModeIdle, h.c.State().Mode)
	assert.Less(t, bounces, 5)

	st := h.c.State()
	assert.LessOrEqual(t, st.Position.X, 350.0)
	assert.LessOrEqual(t, st.Position.Y, 250.0)
}

func TestShowingPopsIn(t *testing.T) {
	h := newHarness(t, quietSettings(), vmath.V2(500, 500))
	rest := h.tick().Transform.ScaleY
	require.Positive(t, rest)

	h.c.SetVisible(false, h.now)
	h.tick()
	h.c.SetVisible(true, h.now)

	first := h.tick().Transform.ScaleY
	assert.InDelta(t, rest*constant.ScaleSmoothing, first, 1e-9)

	prev := first
	for i := 0; i < 60; i++ {
		y := h.tick().Transform.ScaleY
		assert.GreaterOrEqual(t, y, prev)
		prev = y
	}
	assert.InDelta(t, rest, prev, 1e-3)
}
