package config

import (
	"strings"
	"time"
	"unicode"

	"github.com/lixenwraith/desk-duck/parameter"
)

// Keys of the flat settings bag
const (
	KeySize                   = "size"
	KeyOpacity                = "opacity"
	KeyFriction               = "friction"
	KeyBounceDamping          = "bounceDamping"
	KeyAccelerationMultiplier = "accelerationMultiplier"

	KeySqueezeEnabled   = "squeezeEnabled"
	KeySqueezeAmount    = "squeezeAmount"
	KeySqueezeOutSpeed  = "squeezeOutSpeed"
	KeySqueezeInSpeed   = "squeezeInSpeed"
	KeySquashDecaySpeed = "squashDecaySpeed"
	KeyWobbleEnabled    = "wobbleEnabled"
	KeyWobbleAmplitude  = "wobbleAmplitude"
	KeyWobbleFrequency  = "wobbleFrequency"
	KeyBaseScale        = "baseScale"
	KeySkin             = "skin"
	KeyColorFilter      = "colorFilter"

	KeyAutoWalk            = "autoWalk"
	KeyWalkSpeed           = "walkSpeed"
	KeyWalkSpeedMultiplier = "walkSpeedMultiplier"
	KeyWalkWaitMin         = "walkWaitMin"
	KeyWalkWaitMax         = "walkWaitMax"

	KeySpeechEnabled   = "speechEnabled"
	KeySpeechMinDelay  = "speechMinDelay"
	KeySpeechMaxDelay  = "speechMaxDelay"
	KeySpeechTypeSpeed = "speechTypeSpeed"
	KeyPersonality     = "personality"

	KeyAudioEnabled     = "audioEnabled"
	KeySqueezeOutVolume = "squeezeOutVolume"
	KeySqueezeInVolume  = "squeezeInVolume"
	KeySqueezeOutPitch  = "squeezeOutPitch"
	KeySqueezeInPitch   = "squeezeInPitch"
	KeyBounceSound      = "bounceSound"
	KeyWordSound        = "wordSound"
)

// Skins and ColorFilters are the accepted presentation values
var (
	Skins        = []string{"duck", "goose", "robot"}
	ColorFilters = []string{"none", "grayscale", "sepia", "invert"}
)

type kind uint8

const (
	kindBool kind = iota
	kindFloat
	kindDuration
	kindEnum
)

// definition describes one key: its kind, default and accepted range
type definition struct {
	kind    kind
	def     string
	min     float64
	max     float64
	allowed []string
}

func boolDef(v bool) definition {
	if v {
		return definition{kind: kindBool, def: "true"}
	}
	return definition{kind: kindBool, def: "false"}
}

func floatDef(v, lo, hi float64) definition {
	return definition{kind: kindFloat, def: formatFloat(v), min: lo, max: hi}
}

func durationDef(v, lo, hi time.Duration) definition {
	return definition{kind: kindDuration, def: v.String(), min: float64(lo), max: float64(hi)}
}

func enumDef(v string, allowed []string) definition {
	return definition{kind: kindEnum, def: v, allowed: allowed}
}

var registry = map[string]definition{
	KeySize:                   floatDef(parameter.DuckSize, parameter.DuckSizeMin, parameter.DuckSizeMax),
	KeyOpacity:                floatDef(parameter.Opacity, 0.1, 1),
	KeyFriction:               floatDef(parameter.Friction, parameter.FrictionMin, parameter.FrictionMax),
	KeyBounceDamping:          floatDef(parameter.BounceDamping, parameter.BounceDampingMin, parameter.BounceDampingMax),
	KeyAccelerationMultiplier: floatDef(parameter.AccelerationMultiplier, parameter.AccelerationMultiplierMin, parameter.AccelerationMultiplierMax),

	KeySqueezeEnabled:   boolDef(parameter.SqueezeEnabled),
	KeySqueezeAmount:    floatDef(parameter.SqueezeAmount, 0, parameter.SqueezeAmountMax),
	KeySqueezeOutSpeed:  floatDef(parameter.SqueezeOutSpeed, 0.01, 1),
	KeySqueezeInSpeed:   floatDef(parameter.SqueezeInSpeed, 0.01, 1),
	KeySquashDecaySpeed: floatDef(parameter.SquashDecaySpeed, 0.01, 1),
	KeyWobbleEnabled:    boolDef(parameter.WobbleEnabled),
	KeyWobbleAmplitude:  floatDef(parameter.WobbleAmplitude, 0, 30),
	KeyWobbleFrequency:  floatDef(parameter.WobbleFrequency, 0, 20),
	KeyBaseScale:        floatDef(parameter.BaseScale, 0.25, 4),
	KeySkin:             enumDef(parameter.Skin, Skins),
	KeyColorFilter:      enumDef(parameter.ColorFilter, ColorFilters),

	KeyAutoWalk:            boolDef(parameter.AutoWalkEnabled),
	KeyWalkSpeed:           floatDef(parameter.WalkSpeed, 10, 1000),
	KeyWalkSpeedMultiplier: floatDef(parameter.WalkSpeedMultiplier, parameter.WalkSpeedMultiplierMin, parameter.WalkSpeedMultiplierMax),
	KeyWalkWaitMin:         durationDef(parameter.WalkWaitMin, 0, 10*time.Minute),
	KeyWalkWaitMax:         durationDef(parameter.WalkWaitMax, 0, 10*time.Minute),

	KeySpeechEnabled:   boolDef(parameter.SpeechEnabled),
	KeySpeechMinDelay:  durationDef(parameter.SpeechMinDelay, time.Second, time.Hour),
	KeySpeechMaxDelay:  durationDef(parameter.SpeechMaxDelay, time.Second, time.Hour),
	KeySpeechTypeSpeed: durationDef(parameter.SpeechTypeSpeed, parameter.SpeechTypeSpeedMin, 2*time.Second),
	KeyPersonality:     boolDef(parameter.PersonalityEnabled),

	KeyAudioEnabled:     boolDef(parameter.AudioEnabled),
	KeySqueezeOutVolume: floatDef(parameter.SqueezeOutVolume, parameter.VolumeMin, parameter.VolumeMax),
	KeySqueezeInVolume:  floatDef(parameter.SqueezeInVolume, parameter.VolumeMin, parameter.VolumeMax),
	KeySqueezeOutPitch:  floatDef(parameter.SqueezeOutPitch, parameter.PitchMin, parameter.PitchMax),
	KeySqueezeInPitch:   floatDef(parameter.SqueezeInPitch, parameter.PitchMin, parameter.PitchMax),
	KeyBounceSound:      boolDef(parameter.BounceSoundEnabled),
	KeyWordSound:        boolDef(parameter.WordSoundEnabled),
}

// EnvName maps a key to its environment override, e.g. bounceDamping -> DESKDUCK_BOUNCE_DAMPING
func EnvName(key string) string {
	var b strings.Builder
	b.WriteString(EnvPrefix)
	for i, r := range key {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// EnvPrefix prefixes every environment override
const EnvPrefix = "DESKDUCK_"
