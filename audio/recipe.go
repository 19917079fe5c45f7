package audio

import (
	"time"

	"github.com/lixenwraith/desk-duck/constant"
	"github.com/lixenwraith/desk-duck/core"
	"github.com/lixenwraith/desk-duck/parameter"
)

// Waveform is an oscillator shape
type Waveform uint8

const (
	WaveSine Waveform = iota
	WaveSquare
)

// FilterType selects the state-variable filter output
type FilterType uint8

const (
	FilterLowPass FilterType = iota
	FilterBandPass
	FilterHighPass
)

// Partial is an extra oscillator tracking the primary at a frequency ratio
type Partial struct {
	Waveform Waveform
	Ratio    float64
	Gain     float64
}

// FilterSweep is an exponential cutoff ramp over the sound's duration
type FilterSweep struct {
	Type  FilterType
	Start float64 // Hz
	End   float64 // Hz
	Q     float64
}

// Recipe is an immutable sound description; random variation is applied by BuildGraph
type Recipe struct {
	Sound              core.SoundType
	Waveform           Waveform
	BaseFrequency      float64
	FrequencyVariation float64
	// SweepEnd is the end/start frequency ratio of the pitch ramp
	SweepEnd          float64
	Partials          []Partial
	Duration          time.Duration
	DurationVariation time.Duration
	Attack            time.Duration
	// Release of zero decays from the end of attack
	Release     time.Duration
	Volume      float64
	FilterSweep FilterSweep
	NoiseMix    float64
}

// Settings holds user sound preferences
type Settings struct {
	Enabled            bool
	SqueezeOutVolume   float64
	SqueezeInVolume    float64
	SqueezeOutPitch    float64
	SqueezeInPitch     float64
	BounceSoundEnabled bool
	WordSoundEnabled   bool
}

// DefaultSettings returns the documented defaults
func DefaultSettings() Settings {
	return Settings{
		Enabled:            parameter.AudioEnabled,
		SqueezeOutVolume:   parameter.SqueezeOutVolume,
		SqueezeInVolume:    parameter.SqueezeInVolume,
		SqueezeOutPitch:    parameter.SqueezeOutPitch,
		SqueezeInPitch:     parameter.SqueezeInPitch,
		BounceSoundEnabled: parameter.BounceSoundEnabled,
		WordSoundEnabled:   parameter.WordSoundEnabled,
	}
}

// Allows reports whether settings permit playing sound
func (s Settings) Allows(sound core.SoundType) bool {
	if !s.Enabled {
		return false
	}
	switch sound {
	case core.SoundBounce:
		return s.BounceSoundEnabled
	case core.SoundWordTick:
		return s.WordSoundEnabled
	}
	return true
}

// RecipeFor returns the recipe for a sound under the given settings
func RecipeFor(sound core.SoundType, s Settings, params core.SoundParams) Recipe {
	mult := params.VolumeMultiplier
	if mult <= 0 {
		mult = 1
	}

	switch sound {
	case core.SoundSqueezeOut:
		// Toy squeak: square, sharp attack, pitch falls by half
		return Recipe{
			Sound:              sound,
			Waveform:           WaveSquare,
			BaseFrequency:      s.SqueezeOutPitch,
			FrequencyVariation: constant.SqueezeOutVariation,
			SweepEnd:           constant.SqueezeOutSweepEnd,
			Partials:           []Partial{{Waveform: WaveSine, Ratio: 2, Gain: 0.3}},
			Duration:           constant.SqueezeOutDuration,
			Attack:             constant.SqueezeOutAttack,
			Release:            constant.SqueezeOutRelease,
			Volume:             s.SqueezeOutVolume * mult,
			FilterSweep:        FilterSweep{Type: FilterLowPass, Start: 3000, End: 900, Q: 0.8},
			NoiseMix:           constant.NoiseBurstLevel,
		}

	case core.SoundSqueezeIn:
		// Re-inflate: sine, slow swell, rising pitch
		return Recipe{
			Sound:              sound,
			Waveform:           WaveSine,
			BaseFrequency:      s.SqueezeInPitch,
			FrequencyVariation: constant.SqueezeInVariation,
			SweepEnd:           constant.SqueezeInSweepEnd,
			Partials: []Partial{
				{Waveform: WaveSine, Ratio: 1.5, Gain: 0.2},
				{Waveform: WaveSquare, Ratio: 0.5, Gain: 0.05},
			},
			Duration:    constant.SqueezeInDuration,
			Attack:      constant.SqueezeInAttack,
			Release:     constant.SqueezeInRelease,
			Volume:      s.SqueezeInVolume * mult,
			FilterSweep: FilterSweep{Type: FilterBandPass, Start: 500, End: 1800, Q: 1.2},
			NoiseMix:    constant.NoiseBurstLevel / 2,
		}

	case core.SoundBounce:
		vol := min(constant.BounceBaseVolume, constant.BounceVolumeCapPct*s.SqueezeOutVolume)
		return Recipe{
			Sound:              sound,
			Waveform:           WaveSine,
			BaseFrequency:      constant.BounceFrequency,
			FrequencyVariation: constant.BounceVariation,
			SweepEnd:           constant.BounceSweepEnd,
			Duration:           constant.BounceDurationMin,
			DurationVariation:  constant.BounceDurationMax - constant.BounceDurationMin,
			Attack:             constant.BounceAttack,
			Volume:             vol * mult,
			FilterSweep:        FilterSweep{Type: FilterLowPass, Start: 1200, End: 400, Q: 0.8},
		}

	case core.SoundWordTick:
		return Recipe{
			Sound:              sound,
			Waveform:           WaveSquare,
			BaseFrequency:      constant.WordTickFrequency,
			FrequencyVariation: constant.WordTickVariation,
			SweepEnd:           1,
			Duration:           constant.WordTickDuration,
			Attack:             constant.WordTickAttack,
			Release:            constant.WordTickRelease,
			Volume:             constant.WordTickVolume * mult,
			FilterSweep:        FilterSweep{Type: FilterLowPass, Start: 2500, End: 1800, Q: 0.8},
		}
	}
	return Recipe{Sound: sound}
}
