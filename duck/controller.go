package duck

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/desk-duck/animation"
	"github.com/lixenwraith/desk-duck/audio"
	"github.com/lixenwraith/desk-duck/behavior"
	"github.com/lixenwraith/desk-duck/bubble"
	"github.com/lixenwraith/desk-duck/config"
	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/diagnostics"
	"github.com/lixenwraith/desk-duck/engine"
	"github.com/lixenwraith/desk-duck/input"
	"github.com/lixenwraith/desk-duck/physics"
	"github.com/lixenwraith/desk-duck/speech"
	"github.com/lixenwraith/desk-duck/vmath"
)

// squeezeThreshold is the squeeze level still counted as squeezing for walk gating
const squeezeThreshold = 0.05

// diagnosticsCapacity bounds reports waiting for the next tick
const diagnosticsCapacity = 64

// Options configures a new controller; zero values select defaults
type Options struct {
	ID       uuid.UUID
	Position vmath.Vec2
	Settings config.Settings
	Viewport core.Viewport
	Speech   speech.Provider
	// Synth may be shared by several controllers, nil plays nothing
	Synth *audio.Synthesizer
	// Diagnostics receives host reports; a private mailbox is created when nil
	Diagnostics *diagnostics.Mailbox
	Rand        *rand.Rand
	Logger      *zap.Logger
	Now         time.Time
}

// Frame is everything the renderer needs for one duck after a tick
type Frame struct {
	ID       uuid.UUID
	Visible  bool
	Position vmath.Vec2
	Size     float64
	Mode     core.BehaviorMode
	Flipped  bool

	Transform   animation.VisualTransform
	Opacity     float64
	Skin        string
	ColorFilter string

	Bubble     bubble.View
	HasBubble  bool
	BubbleRect core.Rect

	// Sounds requested since the previous frame, after gating
	Sounds []core.SoundType
}

// Controller owns one duck: its state and every component that acts on it
// Not safe for concurrent use except ReportError and ReportWarning; input and ticks come from one goroutine
type Controller struct {
	id     uuid.UUID
	logger *zap.Logger

	viewport core.Viewport
	settings config.Settings

	sched    *engine.Scheduler
	state    core.DuckState
	drag     physics.DragTracker
	blender  *animation.Blender
	behavior *behavior.Machine
	queue    *bubble.Queue
	synth    *audio.Synthesizer
	mailbox  *diagnostics.Mailbox

	visible bool
	bounds  core.Bounds
	now     time.Time

	sounds []core.SoundType
}

// NewController creates an idle duck at opts.Position
func NewController(opts Options) *Controller {
	if opts.ID == uuid.Nil {
		opts.ID = uuid.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Viewport == nil {
		opts.Viewport = core.StaticViewport{}
	}
	if opts.Speech == nil {
		opts.Speech = speech.Default()
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = diagnostics.NewMailbox(diagnosticsCapacity)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Settings == (config.Settings{}) {
		opts.Settings = config.Defaults()
	}

	logger := opts.Logger.With(zap.Stringer("duck", opts.ID))
	c := &Controller{
		id:       opts.ID,
		logger:   logger,
		viewport: opts.Viewport,
		settings: opts.Settings,
		sched:    engine.NewScheduler(),
		state:    core.NewDuckState(opts.Position, opts.Settings.Size),
		synth:    opts.Synth,
		mailbox:  opts.Diagnostics,
		visible:  true,
		bounds:   core.BoundsOf(opts.Viewport),
		now:      opts.Now,
	}

	c.blender = animation.NewBlender(animationSettings(opts.Settings), c.sched)
	c.behavior = behavior.NewMachine(&c.state, behaviorSettings(opts.Settings), opts.Rand, opts.Now, logger.Named("behavior"))
	picker := speech.NewPicker(opts.Speech, opts.Rand)
	c.queue = bubble.NewQueue(bubbleSettings(opts.Settings), picker, opts.Rand, opts.Now, logger.Named("bubble"))
	c.queue.SetWordHook(c.onWord)

	return c
}

// ID returns the instance id
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// State returns a copy of the current duck state
func (c *Controller) State() core.DuckState {
	return c.state
}

// Settings returns the applied config snapshot
func (c *Controller) Settings() config.Settings {
	return c.settings
}

// Visible reports whether the duck is shown
func (c *Controller) Visible() bool {
	return c.visible
}

// Queue exposes the bubble queue for hosts that enqueue directly
func (c *Controller) Queue() *bubble.Queue {
	return c.queue
}

// ReportError implements diagnostics.Sink, safe from any goroutine
func (c *Controller) ReportError(title, text string) {
	c.mailbox.ReportError(title, text)
}

// ReportWarning implements diagnostics.Sink, safe from any goroutine
func (c *Controller) ReportWarning(title, text string) {
	c.mailbox.ReportWarning(title, text)
}

// DuckRect returns the duck's box
func (c *Controller) DuckRect() core.Rect {
	return core.Rect{X: c.state.Position.X, Y: c.state.Position.Y, W: c.state.Size, H: c.state.Size}
}

// BubbleRect returns the bubble's box, centred above the duck and kept inside the viewport
func (c *Controller) BubbleRect() core.Rect {
	center := c.state.Center()
	r := core.Rect{
		X: center.X - constant.BubbleWidthPx/2,
		Y: c.state.Position.Y - constant.BubbleHeightPx - constant.BubbleGapPx,
		W: constant.BubbleWidthPx,
		H: constant.BubbleHeightPx,
	}
	if c.bounds.Width > r.W {
		r.X = vmath.Clamp(r.X, 0, c.bounds.Width-r.W)
	}
	// No room above: show it below
	if r.Y < 0 {
		r.Y = c.state.Position.Y + c.state.Size + constant.BubbleGapPx
	}
	return r
}

// Hit reports whether p is on the duck or its visible bubble
func (c *Controller) Hit(p vmath.Vec2) bool {
	if !c.visible {
		return false
	}
	if _, ok := c.queue.Visible(); ok && c.BubbleRect().Contains(p.X, p.Y) {
		return true
	}
	return c.DuckRect().Contains(p.X, p.Y)
}

// HandleInput applies one input event; called between ticks on the tick goroutine
func (c *Controller) HandleInput(ev input.Event) {
	now := ev.Time
	if now.IsZero() {
		now = c.now
	}

	switch ev.Type {
	case input.EventPointerDown:
		c.press(ev.Pos, now)

	case input.EventPointerMove:
		c.drag.Move(&c.state, ev.Pos, now)

	case input.EventPointerUp:
		c.release(now)

	case input.EventDoubleTap, input.EventSpeak:
		if c.visible {
			c.queue.Speak(now)
		}

	case input.EventToggleVisibility:
		c.SetVisible(!c.visible, now)

	case input.EventSettingsChanged:
		c.ApplySettings(ev.Settings)

	case input.EventResize:
		c.bounds = ev.Bounds
	}
}

// SetVisible shows or hides the duck, a hidden duck drops any drag in progress
func (c *Controller) SetVisible(visible bool, now time.Time) {
	if c.visible == visible {
		return
	}
	if !visible && c.drag.Active() {
		c.release(now)
	}
	if visible {
		// Grow back into view
		c.state.Scale.Current = 0
	}
	c.visible = visible
	c.logger.Debug("visibility changed", zap.Bool("visible", visible))
}

// ApplySettings pushes a config snapshot into every component
func (c *Controller) ApplySettings(s config.Settings) {
	c.settings = s
	c.state.Size = s.Size
	c.blender.SetSettings(animationSettings(s))
	c.behavior.SetSettings(behaviorSettings(s))
	c.queue.SetSettings(bubbleSettings(s))
	if c.synth != nil {
		c.synth.SetSettings(AudioSettings(s))
	}
}

func (c *Controller) press(p vmath.Vec2, now time.Time) {
	if !c.visible {
		return
	}
	if _, ok := c.queue.Visible(); ok && c.BubbleRect().Contains(p.X, p.Y) {
		c.queue.Dismiss(now)
		return
	}
	if !c.DuckRect().Contains(p.X, p.Y) {
		return
	}

	c.drag.Grab(&c.state, p, now)
	c.apply(c.behavior.Press(&c.state, now), now)
	c.play(core.SoundSqueezeOut, core.SoundParams{})
}

func (c *Controller) release(now time.Time) {
	if !c.drag.Active() {
		return
	}
	thrown := c.drag.Release(&c.state, now, c.settings.AccelerationMultiplier)
	c.apply(c.behavior.Release(&c.state, c.currentBounds(), now, thrown), now)
	c.play(core.SoundSqueezeIn, core.SoundParams{})
}

// Tick advances the duck one frame at now, dt seconds after the previous one
func (c *Controller) Tick(now time.Time, dt float64) Frame {
	c.now = now

	c.sched.Run(now)
	c.mailbox.Drain(func(r diagnostics.Report) {
		if !c.queue.Enqueue(r.Kind, r.Title, r.Text, now) {
			c.logger.Debug("duplicate diagnostic dropped", zap.String("title", r.Title))
		}
	})

	if !c.visible {
		return c.frame(animation.VisualTransform{})
	}

	bounds := c.currentBounds()
	dragging := c.state.Mode == core.ModeDragging

	if !dragging && bounds.Width > 0 && bounds.Height > 0 {
		physics.ClampToBounds(&c.state, bounds)

		friction := c.settings.Friction
		if c.state.Mode == core.ModeWalking {
			// Walking velocity is steered, not decayed
			friction = 1
		}
		for _, ev := range physics.Integrate(&c.state, dt, friction, c.settings.BounceDamping, bounds) {
			c.play(core.SoundBounce, core.SoundParams{VolumeMultiplier: physics.BounceVolume(ev.VelocityMagnitude)})
		}
	}

	squeezing := c.drag.Active() || c.state.Squeeze.Current > squeezeThreshold
	step := time.Duration(dt * float64(time.Second))
	c.apply(c.behavior.Update(&c.state, bounds, now, step, squeezing), now)

	transform := c.blender.Blend(&c.state, dt, c.drag.Active())

	c.queue.Tick(now)
	_, c.state.ShowingBubble = c.queue.Visible()
	c.state.Speaking = c.queue.Revealing()

	return c.frame(transform)
}

func (c *Controller) frame(t animation.VisualTransform) Frame {
	f := Frame{
		ID:          c.id,
		Visible:     c.visible,
		Position:    c.state.Position,
		Size:        c.state.Size,
		Mode:        c.state.Mode,
		Flipped:     c.state.IsFlipped,
		Transform:   t,
		Opacity:     c.settings.Opacity,
		Skin:        c.settings.Skin,
		ColorFilter: c.settings.ColorFilter,
	}
	if len(c.sounds) > 0 {
		f.Sounds = append([]core.SoundType(nil), c.sounds...)
		c.sounds = c.sounds[:0]
	}
	if c.visible {
		f.Bubble, f.HasBubble = c.queue.Visible()
		if f.HasBubble {
			f.BubbleRect = c.BubbleRect()
		}
	}
	return f
}

// currentBounds queries the viewport, falling back to the last resize event
func (c *Controller) currentBounds() core.Bounds {
	b := core.BoundsOf(c.viewport)
	if b.Width <= 0 || b.Height <= 0 {
		return c.bounds
	}
	c.bounds = b
	return b
}

func (c *Controller) apply(d behavior.Decision, now time.Time) {
	if d.Face {
		c.blender.SetFacing(&c.state, d.Flipped, now)
	}
}

// onWord plays the typewriter tick, silent while dragged or hidden
func (c *Controller) onWord(string) {
	if c.state.Mode == core.ModeDragging || !c.visible {
		return
	}
	c.play(core.SoundWordTick, core.SoundParams{})
}

func (c *Controller) play(sound core.SoundType, params core.SoundParams) {
	if sound == core.SoundBounce && c.state.Mode == core.ModeDragging {
		return
	}
	c.sounds = append(c.sounds, sound)
	if c.synth != nil {
		c.synth.Play(sound, params)
	}
}
