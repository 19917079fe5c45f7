package bubble

import (
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/engine"
	"github.com/lixenwraith/desk-duck/engine/fsm"
	"github.com/lixenwraith/desk-duck/parameter"
	"github.com/lixenwraith/desk-duck/speech"
)

// Display phases
const (
	StateIdle fsm.StateID = iota
	StateRevealing
	StateDwelling
	StateHiding
)

// Settings holds speech tunables
type Settings struct {
	SpeechEnabled bool
	MinDelay      time.Duration
	MaxDelay      time.Duration
	TypeSpeed     time.Duration
	Personality   bool
	Skin          string
}

// DefaultSettings returns the documented defaults
func DefaultSettings() Settings {
	return Settings{
		SpeechEnabled: parameter.SpeechEnabled,
		MinDelay:      parameter.SpeechMinDelay,
		MaxDelay:      parameter.SpeechMaxDelay,
		TypeSpeed:     parameter.SpeechTypeSpeed,
		Personality:   parameter.PersonalityEnabled,
		Skin:          parameter.Skin,
	}
}

// View is the visible bubble as the renderer sees it
type View struct {
	Entry core.BubbleEntry
	// Text is the revealed prefix
	Text  string
	Phase fsm.StateID
	// Scale shrinks 1 -> 0 while hiding
	Scale float64
}

// Queue shows at most one bubble at a time, urgent entries first, FIFO within a class
// Ambient speech is scheduled only while nothing is queued or visible
type Queue struct {
	fsm      *fsm.Machine[*Queue]
	sched    *engine.Scheduler
	settings Settings
	picker   *speech.Picker
	rng      *rand.Rand
	logger   *zap.Logger
	onWord   func(word string)

	now      time.Time
	lastTick time.Time

	pending []core.BubbleEntry
	visible *core.BubbleEntry
	words   []string
	shown   int

	nextWordAt time.Time
	dwellUntil time.Time
	hideAt     time.Time
	hideUntil  time.Time
	skipped    bool
	preempted  bool

	ambient *engine.Timer
}

// NewQueue creates an idle queue and schedules the first ambient line
func NewQueue(settings Settings, picker *speech.Picker, rng *rand.Rand, now time.Time, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	q := &Queue{
		fsm:      fsm.NewMachine[*Queue](),
		sched:    engine.NewScheduler(),
		settings: settings,
		picker:   picker,
		rng:      rng,
		logger:   logger,
		now:      now,
		lastTick: now,
	}
	q.build()
	q.fsm.OnTransition = func(from, to fsm.StateID) {
		q.logger.Debug("bubble phase",
			zap.String("from", phaseName(from)),
			zap.String("to", phaseName(to)))
	}
	_ = q.fsm.Init(q, StateIdle)
	return q
}

func (q *Queue) build() {
	q.fsm.AddState(StateIdle, "idle").
		Enter((*Queue).enterIdle).
		When(func(q *Queue) bool { return len(q.pending) > 0 }, StateRevealing)

	q.fsm.AddState(StateRevealing, "revealing").
		Enter((*Queue).enterRevealing).
		Update((*Queue).reveal).
		When(func(q *Queue) bool { return q.preempted }, StateHiding).
		When(func(q *Queue) bool { return q.shown >= len(q.words) }, StateDwelling)

	q.fsm.AddState(StateDwelling, "dwelling").
		Enter((*Queue).enterDwelling).
		When(func(q *Queue) bool { return q.preempted }, StateHiding).
		When(func(q *Queue) bool { return !q.now.Before(q.dwellUntil) }, StateHiding)

	q.fsm.AddState(StateHiding, "hiding").
		Enter(func(q *Queue) {
			q.hideAt = q.now
			q.hideUntil = q.now.Add(constant.BubbleHideDuration)
		}).
		Exit(func(q *Queue) {
			q.visible = nil
			q.words = nil
			q.shown = 0
			q.skipped = false
			q.preempted = false
		}).
		When(func(q *Queue) bool { return !q.now.Before(q.hideUntil) }, StateIdle)
}

// SetWordHook registers the per-word typewriter callback
func (q *Queue) SetWordHook(fn func(word string)) {
	q.onWord = fn
}

// SetSettings applies speech settings, starting or stopping the ambient timer
func (q *Queue) SetSettings(settings Settings) {
	prev := q.settings
	q.settings = settings
	if !settings.SpeechEnabled {
		q.ambient.Cancel()
		q.ambient = nil
		return
	}
	if !prev.SpeechEnabled || prev.MinDelay != settings.MinDelay || prev.MaxDelay != settings.MaxDelay {
		q.ambient.Cancel()
		q.ambient = nil
		q.scheduleAmbient()
	}
}

// Settings returns current speech settings
func (q *Queue) Settings() Settings {
	return q.settings
}

// Enqueue adds an entry, dropping it if the same kind and text is already queued
// An urgent entry pre-empts a visible speech bubble
func (q *Queue) Enqueue(kind core.BubbleKind, title, text string, now time.Time) bool {
	for _, e := range q.pending {
		if e.Kind == kind && e.Text == text {
			return false
		}
	}

	entry := core.BubbleEntry{Kind: kind, Title: title, Text: text, EnqueuedAt: now}
	if kind.Urgent() {
		// After the last urgent entry, ahead of all speech
		i := 0
		for i < len(q.pending) && q.pending[i].Kind.Urgent() {
			i++
		}
		q.pending = append(q.pending, core.BubbleEntry{})
		copy(q.pending[i+1:], q.pending[i:])
		q.pending[i] = entry

		q.ambient.Cancel()
		q.ambient = nil
		if q.visible != nil && !q.visible.Kind.Urgent() && q.Phase() != StateHiding {
			q.preempted = true
		}
	} else {
		q.pending = append(q.pending, entry)
	}
	return true
}

// Speak shows an ambient line now unless an urgent entry is queued or visible
func (q *Queue) Speak(now time.Time) bool {
	if q.hasUrgent() || q.picker == nil {
		return false
	}
	line, ok := q.picker.Pick(q.settings.Personality, q.settings.Skin)
	if !ok {
		return false
	}
	q.ambient.Cancel()
	q.ambient = nil
	return q.Enqueue(core.BubbleSpeech, line.Topic, line.Text, now)
}

// Dismiss skips a reveal to full text, or hides a dwelling bubble
// Returns false when nothing was visible to act on
func (q *Queue) Dismiss(now time.Time) bool {
	q.now = now
	switch q.fsm.Current() {
	case StateRevealing:
		q.shown = len(q.words)
		q.skipped = true
		q.fsm.ForceTransition(q, StateDwelling)
		return true
	case StateDwelling:
		q.fsm.ForceTransition(q, StateHiding)
		return true
	}
	return false
}

// Tick fires due timers and advances the display phase
func (q *Queue) Tick(now time.Time) {
	dt := now.Sub(q.lastTick)
	if dt < 0 {
		dt = 0
	}
	q.lastTick = now
	q.now = now

	q.sched.Run(now)
	q.fsm.Update(q, dt)
}

// Phase returns the current display phase
func (q *Queue) Phase() fsm.StateID {
	return q.fsm.Current()
}

// Pending returns the number of queued, not yet visible entries
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Visible returns the bubble on screen, if any
func (q *Queue) Visible() (View, bool) {
	if q.visible == nil {
		return View{}, false
	}
	v := View{
		Entry: *q.visible,
		Text:  q.revealedText(),
		Phase: q.fsm.Current(),
		Scale: 1,
	}
	if v.Phase == StateHiding {
		total := q.hideUntil.Sub(q.hideAt)
		if total > 0 {
			v.Scale = float64(q.hideUntil.Sub(q.now)) / float64(total)
		}
		if v.Scale < 0 {
			v.Scale = 0
		}
	}
	return v, true
}

// Revealing reports whether the typewriter is running
func (q *Queue) Revealing() bool {
	return q.fsm.Current() == StateRevealing
}

// AmbientDue returns when ambient speech is next scheduled
func (q *Queue) AmbientDue() (time.Time, bool) {
	if !q.ambient.Pending() {
		return time.Time{}, false
	}
	return q.ambient.Deadline(), true
}

func (q *Queue) enterIdle() {
	if len(q.pending) == 0 {
		q.scheduleAmbient()
	}
}

func (q *Queue) enterRevealing() {
	entry := q.pending[0]
	q.pending = q.pending[1:]
	q.visible = &entry
	q.words = strings.Fields(entry.Text)
	q.shown = 0
	q.skipped = false
	q.preempted = false
	q.nextWordAt = q.now
	q.ambient.Cancel()
	q.ambient = nil
	q.reveal()
}

// reveal appends one word per TypeSpeed interval
func (q *Queue) reveal() {
	step := q.settings.TypeSpeed
	if step < parameter.SpeechTypeSpeedMin {
		step = parameter.SpeechTypeSpeedMin
	}
	for q.shown < len(q.words) && !q.now.Before(q.nextWordAt) {
		word := q.words[q.shown]
		q.shown++
		q.nextWordAt = q.nextWordAt.Add(step)
		if q.onWord != nil {
			q.onWord(word)
		}
	}
}

func (q *Queue) enterDwelling() {
	if q.skipped {
		q.dwellUntil = q.now.Add(constant.BubbleSkipSettle)
		return
	}
	q.dwellUntil = q.now.Add(DwellFor(len(q.words)))
}

// DwellFor returns how long a fully revealed bubble of n words stays up
func DwellFor(words int) time.Duration {
	d := constant.BubbleDwellMin + time.Duration(words)*constant.BubbleDwellPerWord
	return min(max(d, constant.BubbleDwellMin), constant.BubbleDwellMax)
}

func (q *Queue) revealedText() string {
	if q.shown <= 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < q.shown && i < len(q.words); i++ {
		// Leading space per word
		b.WriteByte(' ')
		b.WriteString(q.words[i])
	}
	return b.String()
}

func (q *Queue) hasUrgent() bool {
	if q.visible != nil && q.visible.Kind.Urgent() {
		return true
	}
	for _, e := range q.pending {
		if e.Kind.Urgent() {
			return true
		}
	}
	return false
}

func (q *Queue) scheduleAmbient() {
	if !q.settings.SpeechEnabled || q.picker == nil || q.ambient.Pending() {
		return
	}
	lo, hi := q.settings.MinDelay, q.settings.MaxDelay
	if hi < lo {
		lo, hi = hi, lo
	}
	delay := lo
	if hi > lo {
		delay += time.Duration(q.rng.Int63n(int64(hi - lo)))
	}
	q.ambient = q.sched.After(q.now, delay, q.speakAmbient)
}

func (q *Queue) speakAmbient(now time.Time) {
	q.ambient = nil
	// Suspended: the next drain reschedules
	if q.hasUrgent() || q.visible != nil || len(q.pending) > 0 {
		return
	}
	line, ok := q.picker.Pick(q.settings.Personality, q.settings.Skin)
	if !ok {
		return
	}
	q.logger.Debug("ambient speech", zap.String("topic", line.Topic))
	q.Enqueue(core.BubbleSpeech, line.Topic, line.Text, now)
}

func phaseName(id fsm.StateID) string {
	switch id {
	case StateIdle:
		return "idle"
	case StateRevealing:
		return "revealing"
	case StateDwelling:
		return "dwelling"
	case StateHiding:
		return "hiding"
	}
	return "none"
}
