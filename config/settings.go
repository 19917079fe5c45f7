package config

import (
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/lixenwraith/desk-duck/vmath"
)

// Settings is a typed snapshot of the store with defaults applied and ranges clamped
type Settings struct {
	Size                   float64
	Opacity                float64
	Friction               float64
	BounceDamping          float64
	AccelerationMultiplier float64

	SqueezeEnabled   bool
	SqueezeAmount    float64
	SqueezeOutSpeed  float64
	SqueezeInSpeed   float64
	SquashDecaySpeed float64
	WobbleEnabled    bool
	WobbleAmplitude  float64
	WobbleFrequency  float64
	BaseScale        float64
	Skin             string
	ColorFilter      string

	AutoWalkEnabled     bool
	WalkSpeed           float64
	WalkSpeedMultiplier float64
	WalkWaitMin         time.Duration
	WalkWaitMax         time.Duration

	SpeechEnabled      bool
	SpeechMinDelay     time.Duration
	SpeechMaxDelay     time.Duration
	SpeechTypeSpeed    time.Duration
	PersonalityEnabled bool

	AudioEnabled       bool
	SqueezeOutVolume   float64
	SqueezeInVolume    float64
	SqueezeOutPitch    float64
	SqueezeInPitch     float64
	BounceSoundEnabled bool
	WordSoundEnabled   bool
}

// Defaults returns settings from an empty store
func Defaults() Settings {
	return resolve(nil)
}

// resolve builds typed settings from raw values; bad values fall back to defaults
func resolve(values map[string]string) Settings {
	r := reader{values: values}
	s := Settings{
		Size:                   r.float(KeySize),
		Opacity:                r.float(KeyOpacity),
		Friction:               r.float(KeyFriction),
		BounceDamping:          r.float(KeyBounceDamping),
		AccelerationMultiplier: r.float(KeyAccelerationMultiplier),

		SqueezeEnabled:   r.bool(KeySqueezeEnabled),
		SqueezeAmount:    r.float(KeySqueezeAmount),
		SqueezeOutSpeed:  r.float(KeySqueezeOutSpeed),
		SqueezeInSpeed:   r.float(KeySqueezeInSpeed),
		SquashDecaySpeed: r.float(KeySquashDecaySpeed),
		WobbleEnabled:    r.bool(KeyWobbleEnabled),
		WobbleAmplitude:  r.float(KeyWobbleAmplitude),
		WobbleFrequency:  r.float(KeyWobbleFrequency),
		BaseScale:        r.float(KeyBaseScale),
		Skin:             r.enum(KeySkin),
		ColorFilter:      r.enum(KeyColorFilter),

		AutoWalkEnabled:     r.bool(KeyAutoWalk),
		WalkSpeed:           r.float(KeyWalkSpeed),
		WalkSpeedMultiplier: r.float(KeyWalkSpeedMultiplier),
		WalkWaitMin:         r.duration(KeyWalkWaitMin),
		WalkWaitMax:         r.duration(KeyWalkWaitMax),

		SpeechEnabled:      r.bool(KeySpeechEnabled),
		SpeechMinDelay:     r.duration(KeySpeechMinDelay),
		SpeechMaxDelay:     r.duration(KeySpeechMaxDelay),
		SpeechTypeSpeed:    r.duration(KeySpeechTypeSpeed),
		PersonalityEnabled: r.bool(KeyPersonality),

		AudioEnabled:       r.bool(KeyAudioEnabled),
		SqueezeOutVolume:   r.float(KeySqueezeOutVolume),
		SqueezeInVolume:    r.float(KeySqueezeInVolume),
		SqueezeOutPitch:    r.float(KeySqueezeOutPitch),
		SqueezeInPitch:     r.float(KeySqueezeInPitch),
		BounceSoundEnabled: r.bool(KeyBounceSound),
		WordSoundEnabled:   r.bool(KeyWordSound),
	}

	// Swapped bounds are reordered rather than rejected
	if s.WalkWaitMax < s.WalkWaitMin {
		s.WalkWaitMin, s.WalkWaitMax = s.WalkWaitMax, s.WalkWaitMin
	}
	if s.SpeechMaxDelay < s.SpeechMinDelay {
		s.SpeechMinDelay, s.SpeechMaxDelay = s.SpeechMaxDelay, s.SpeechMinDelay
	}
	return s
}

type reader struct {
	values map[string]string
}

func (r reader) raw(key string) (string, definition) {
	def := registry[key]
	if v, ok := r.values[key]; ok {
		return v, def
	}
	return def.def, def
}

func (r reader) float(key string) float64 {
	v, def := r.raw(key)
	f, ok := parseFloat(v)
	if !ok {
		f, _ = parseFloat(def.def)
	}
	return vmath.Clamp(f, def.min, def.max)
}

func (r reader) bool(key string) bool {
	v, def := r.raw(key)
	b, err := strconv.ParseBool(v)
	if err != nil {
		b, _ = strconv.ParseBool(def.def)
	}
	return b
}

func (r reader) duration(key string) time.Duration {
	v, def := r.raw(key)
	d, ok := parseDuration(v)
	if !ok {
		d, _ = parseDuration(def.def)
	}
	return time.Duration(vmath.Clamp(float64(d), def.min, def.max))
}

func (r reader) enum(key string) string {
	v, def := r.raw(key)
	if slices.Contains(def.allowed, v) {
		return v
	}
	return def.def
}

func parseFloat(v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// parseDuration accepts Go durations ("1.5s") or bare seconds ("20")
func parseDuration(v string) (time.Duration, bool) {
	if f, ok := parseFloat(v); ok {
		return time.Duration(f * float64(time.Second)), true
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
