package behavior

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/engine/fsm"
	"github.com/lixenwraith/desk-duck/parameter"
	"github.com/lixenwraith/desk-duck/vmath"
)

// State IDs mirror core.BehaviorMode
const (
	StateIdle     = fsm.StateID(core.ModeIdle)
	StateDragging = fsm.StateID(core.ModeDragging)
	StateWalking  = fsm.StateID(core.ModeWalking)
	StateThrown   = fsm.StateID(core.ModeThrown)
)

// Pointer events
const (
	EventPress fsm.EventType = iota + 1
	EventRelease
)

// Settings holds auto-walk tunables
type Settings struct {
	AutoWalkEnabled bool
	WalkSpeed       float64 // px/s
	SpeedMultiplier float64
	WaitMin         time.Duration
	WaitMax         time.Duration
}

// DefaultSettings returns the documented defaults
func DefaultSettings() Settings {
	return Settings{
		AutoWalkEnabled: parameter.AutoWalkEnabled,
		WalkSpeed:       parameter.WalkSpeed,
		SpeedMultiplier: parameter.WalkSpeedMultiplier,
		WaitMin:         parameter.WalkWaitMin,
		WaitMax:         parameter.WalkWaitMax,
	}
}

// Decision is what the machine asks of its owner after a call
type Decision struct {
	// Face is set when facing should change to Flipped (true = facing left)
	Face    bool
	Flipped bool
	// Arrived is set on the tick a walk reached its target
	Arrived bool
}

// Machine owns the duck's behavior mode and the active walk target
// The duck state is bound only for the duration of each call
type Machine struct {
	fsm      *fsm.Machine[*Machine]
	settings Settings
	rng      *rand.Rand
	logger   *zap.Logger

	// Bound per call
	state     *core.DuckState
	bounds    core.Bounds
	now       time.Time
	squeezing bool
	decision  Decision

	thrown     bool
	arrived    bool
	lastDrag   time.Time
	nextWalkAt time.Time
	walk       *WalkTarget
}

// NewMachine builds the behavior graph and enters Idle
func NewMachine(s *core.DuckState, settings Settings, rng *rand.Rand, now time.Time, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Machine{
		fsm:      fsm.NewMachine[*Machine](),
		settings: settings,
		rng:      rng,
		logger:   logger,
	}
	m.build()
	m.scheduleNextWalk(now)

	m.fsm.OnTransition = func(from, to fsm.StateID) {
		m.logger.Debug("behavior transition",
			zap.Stringer("from", core.BehaviorMode(from)),
			zap.Stringer("to", core.BehaviorMode(to)))
	}

	m.bind(s, core.Bounds{}, now, false)
	defer m.unbind()
	// Graph is static and valid
	_ = m.fsm.Init(m, StateIdle)
	return m
}

func (m *Machine) build() {
	m.fsm.AddState(StateIdle, "idle").
		Enter(func(m *Machine) {
			m.setMode(core.ModeIdle)
			m.faceCenter()
		}).
		On(EventPress, StateDragging, nil).
		When((*Machine).moving, StateThrown).
		When((*Machine).canWalk, StateWalking)

	m.fsm.AddState(StateDragging, "dragging").
		Enter(func(m *Machine) { m.setMode(core.ModeDragging) }).
		Exit(func(m *Machine) { m.lastDrag = m.now }).
		On(EventRelease, StateThrown, func(m *Machine) bool { return m.thrown }).
		On(EventRelease, StateIdle, nil)

	m.fsm.AddState(StateThrown, "thrown").
		Enter(func(m *Machine) { m.setMode(core.ModeThrown) }).
		On(EventPress, StateDragging, nil).
		When(func(m *Machine) bool { return !m.moving() }, StateIdle)

	m.fsm.AddState(StateWalking, "walking").
		Enter((*Machine).startWalk).
		Update((*Machine).steer).
		Exit(func(m *Machine) { m.walk = nil }).
		On(EventPress, StateDragging, nil).
		When(func(m *Machine) bool { return m.arrived }, StateIdle).
		When(func(m *Machine) bool { return !m.settings.AutoWalkEnabled }, StateIdle)
}

// Update evaluates per-tick behavior after integration
func (m *Machine) Update(s *core.DuckState, bounds core.Bounds, now time.Time, dt time.Duration, squeezing bool) Decision {
	m.bind(s, bounds, now, squeezing)
	defer m.unbind()
	m.fsm.Update(m, dt)
	return m.decision
}

// Press grabs the duck from any mode
func (m *Machine) Press(s *core.DuckState, now time.Time) Decision {
	m.bind(s, m.bounds, now, true)
	defer m.unbind()
	m.fsm.HandleEvent(m, EventPress)
	return m.decision
}

// Release drops the duck; thrown reports whether release velocity is non-zero
func (m *Machine) Release(s *core.DuckState, bounds core.Bounds, now time.Time, thrown bool) Decision {
	m.bind(s, bounds, now, false)
	defer m.unbind()
	m.thrown = thrown
	m.fsm.HandleEvent(m, EventRelease)
	return m.decision
}

// SetSettings replaces walk tunables
func (m *Machine) SetSettings(settings Settings) {
	m.settings = settings
}

// Settings returns current tunables
func (m *Machine) Settings() Settings {
	return m.settings
}

// Mode returns the active mode
func (m *Machine) Mode() core.BehaviorMode {
	return core.BehaviorMode(m.fsm.Current())
}

// Target returns the active walk target, if walking
func (m *Machine) Target() (WalkTarget, bool) {
	if m.walk == nil {
		return WalkTarget{}, false
	}
	return *m.walk, true
}

// NextWalkAt returns when the next walk may start
func (m *Machine) NextWalkAt() time.Time {
	return m.nextWalkAt
}

// LastDrag returns the time of the last release
func (m *Machine) LastDrag() time.Time {
	return m.lastDrag
}

func (m *Machine) bind(s *core.DuckState, bounds core.Bounds, now time.Time, squeezing bool) {
	m.state = s
	if bounds.Width > 0 || bounds.Height > 0 {
		m.bounds = bounds
	}
	m.now = now
	m.squeezing = squeezing
	m.decision = Decision{}
}

func (m *Machine) unbind() {
	m.state = nil
}

func (m *Machine) setMode(mode core.BehaviorMode) {
	m.state.Mode = mode
}

// moving reports residual velocity from a release or bounce
func (m *Machine) moving() bool {
	return !m.state.StandingStill(constant.MinVelocity)
}

func (m *Machine) canWalk() bool {
	return m.settings.AutoWalkEnabled &&
		!m.squeezing &&
		!m.moving() &&
		m.now.Sub(m.lastDrag) > constant.WalkCooldownAfterDrag &&
		!m.now.Before(m.nextWalkAt) &&
		m.bounds.Width > 0 && m.bounds.Height > 0
}

func (m *Machine) startWalk() {
	m.setMode(core.ModeWalking)
	m.arrived = false
	target := PickNewTarget(m.rng, m.state.Position, m.bounds, m.state.Size)
	m.walk = &WalkTarget{Target: target}
	m.face(target.X - m.state.Position.X)
	m.logger.Debug("walk started",
		zap.Float64("x", target.X),
		zap.Float64("y", target.Y))
}

// steer pulls velocity toward the target and detects arrival
func (m *Machine) steer() {
	if m.walk == nil {
		m.arrived = true
		return
	}
	s := m.state
	// The viewport may have shrunk since the target was picked
	m.walk.Target = ClampTarget(m.walk.Target, m.bounds, s.Size)
	toTarget := vmath.V2Sub(m.walk.Target, s.Position)
	if vmath.V2Mag(toTarget) < constant.WalkArrivalDistance {
		s.Velocity = vmath.Vec2{}
		m.arrived = true
		m.decision.Arrived = true
		m.scheduleNextWalk(m.now)
		return
	}

	speed := m.settings.WalkSpeed * m.settings.SpeedMultiplier
	desired := vmath.V2Scale(vmath.V2Normalize(toTarget), speed)
	s.Velocity = vmath.V2Approach(s.Velocity, desired, constant.WalkSteering)
	m.face(toTarget.X)
}

// faceCenter turns toward the viewport centre, the idle facing policy
func (m *Machine) faceCenter() {
	if m.bounds.Width <= 0 {
		return
	}
	m.face(m.bounds.Width/2 - m.state.Center().X)
}

// face requests facing toward a horizontal offset, ignoring tiny offsets
func (m *Machine) face(dx float64) {
	if dx > -constant.FacingDeadzone && dx < constant.FacingDeadzone {
		return
	}
	flipped := dx < 0
	if flipped == m.state.IsFlipped && !m.decision.Face {
		return
	}
	m.decision.Face = true
	m.decision.Flipped = flipped
}

func (m *Machine) scheduleNextWalk(now time.Time) {
	lo, hi := m.settings.WaitMin, m.settings.WaitMax
	if hi < lo {
		lo, hi = hi, lo
	}
	wait := lo
	if hi > lo {
		wait += time.Duration(m.rng.Int63n(int64(hi - lo)))
	}
	m.nextWalkAt = now.Add(wait)
}
