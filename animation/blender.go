package animation

import (
	"math"
	"time"

	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/engine"
	"github.com/lixenwraith/desk-duck/parameter"
	"github.com/lixenwraith/desk-duck/vmath"
)

// Settings holds the user-tunable blend parameters
type Settings struct {
	SqueezeEnabled   bool
	SqueezeAmount    float64
	SqueezeOutSpeed  float64
	SqueezeInSpeed   float64
	SquashDecaySpeed float64

	WobbleEnabled   bool
	WobbleAmplitude float64 // degrees
	WobbleFrequency float64 // radians per second

	BaseScale float64
}

// DefaultSettings returns the documented defaults
func DefaultSettings() Settings {
	return Settings{
		SqueezeEnabled:   parameter.SqueezeEnabled,
		SqueezeAmount:    parameter.SqueezeAmount,
		SqueezeOutSpeed:  parameter.SqueezeOutSpeed,
		SqueezeInSpeed:   parameter.SqueezeInSpeed,
		SquashDecaySpeed: parameter.SquashDecaySpeed,
		WobbleEnabled:    parameter.WobbleEnabled,
		WobbleAmplitude:  parameter.WobbleAmplitude,
		WobbleFrequency:  parameter.WobbleFrequency,
		BaseScale:        parameter.BaseScale,
	}
}

// VisualTransform is the composed render transform for one frame
type VisualTransform struct {
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // degrees
}

// Blender smooths the duck's visual pairs toward their targets every frame
type Blender struct {
	settings Settings
	sched    *engine.Scheduler

	elapsed float64 // seconds, drives wobble phase

	flipTimer     *engine.Timer
	pendingFacing bool
	flipReady     bool
}

// NewBlender creates a blender whose flip delay runs on sched
func NewBlender(settings Settings, sched *engine.Scheduler) *Blender {
	return &Blender{
		settings: settings,
		sched:    sched,
	}
}

// SetSettings replaces blend parameters
func (b *Blender) SetSettings(settings Settings) {
	b.settings = settings
}

// Settings returns current parameters
func (b *Blender) Settings() Settings {
	return b.settings
}

// SetFacing requests a facing direction; a change collapses ScaleX to zero and
// swaps the sign FlipPhaseDelay later so the mirror happens at zero width
func (b *Blender) SetFacing(s *core.DuckState, flipped bool, now time.Time) {
	want := s.IsFlipped
	if b.flipTimer.Pending() || b.flipReady {
		want = b.pendingFacing
	}
	if flipped == want {
		return
	}

	// Reverting before the sign changed: reopen in the current direction
	if b.flipTimer.Pending() || b.flipReady {
		b.flipTimer.Cancel()
		b.flipReady = false
		s.ScaleX.Target = facingSign(s.IsFlipped)
		return
	}

	b.pendingFacing = flipped
	s.ScaleX.Target = 0
	b.flipTimer = b.sched.After(now, constant.FlipPhaseDelay, func(time.Time) {
		b.flipReady = true
	})
}

// Flipping reports whether a flip is in progress
func (b *Blender) Flipping() bool {
	return b.flipTimer.Pending() || b.flipReady
}

// Blend advances every damped pair one tick and composes the transform
// gripped drives squeeze toward 1 at the fast rate, release relaxes it at the slow rate
func (b *Blender) Blend(s *core.DuckState, dt float64, gripped bool) VisualTransform {
	b.elapsed += dt
	cfg := b.settings

	s.Scale.Target = 1
	if gripped {
		s.Scale.Target = constant.GripScale
	}
	s.Scale.Step(constant.ScaleSmoothing)

	if gripped && cfg.SqueezeEnabled {
		s.Squeeze.Target = 1
		s.Squeeze.Step(cfg.SqueezeOutSpeed)
	} else {
		s.Squeeze.Target = 0
		s.Squeeze.Step(cfg.SqueezeInSpeed)
	}

	// Squash targets always relax toward rest so bounces recover without a timer
	s.SquashX.Target = vmath.Approach(s.SquashX.Target, 1, cfg.SquashDecaySpeed)
	s.SquashY.Target = vmath.Approach(s.SquashY.Target, 1, cfg.SquashDecaySpeed)
	s.SquashX.Step(constant.SquashSmoothing)
	s.SquashY.Step(constant.SquashSmoothing)

	if b.flipReady {
		b.flipReady = false
		sign := facingSign(b.pendingFacing)
		s.IsFlipped = b.pendingFacing
		s.ScaleX.Current = sign * math.Abs(s.ScaleX.Current)
		s.ScaleX.Target = sign
	}
	s.ScaleX.Step(constant.FlipSmoothing)

	return b.compose(s)
}

// compose builds the transform from current pair values
func (b *Blender) compose(s *core.DuckState) VisualTransform {
	cfg := b.settings
	squeezeX := 1 - s.Squeeze.Current*cfg.SqueezeAmount
	squeezeY := 1 + s.Squeeze.Current*cfg.SqueezeAmount*constant.SqueezeHeightRatio

	base := cfg.BaseScale * s.Scale.Current
	t := VisualTransform{
		ScaleX: base * squeezeX * s.SquashX.Current * s.ScaleX.Current,
		ScaleY: base * squeezeY * s.SquashY.Current,
	}

	if cfg.WobbleEnabled && s.Mode != core.ModeDragging && s.Mode != core.ModeWalking {
		amplitude := cfg.WobbleAmplitude * (1 + s.Speed()/constant.WobbleSpeedDivisor)
		t.Rotation = amplitude * math.Sin(b.elapsed*cfg.WobbleFrequency)
	}
	return t
}

func facingSign(flipped bool) float64 {
	if flipped {
		return -1
	}
	return 1
}
