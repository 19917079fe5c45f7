package duck

import (
	"github.com/lixenwraith/desk-duck/animation"
	"github.com/lixenwraith/desk-duck/audio"
	"github.com/lixenwraith/desk-duck/behavior"
	"github.com/lixenwraith/desk-duck/bubble"
	"github.com/lixenwraith/desk-duck/config"
)

// Component settings projected from one config snapshot

func animationSettings(s config.Settings) animation.Settings {
	return animation.Settings{
		SqueezeEnabled:   s.SqueezeEnabled,
		SqueezeAmount:    s.SqueezeAmount,
		SqueezeOutSpeed:  s.SqueezeOutSpeed,
		SqueezeInSpeed:   s.SqueezeInSpeed,
		SquashDecaySpeed: s.SquashDecaySpeed,
		WobbleEnabled:    s.WobbleEnabled,
		WobbleAmplitude:  s.WobbleAmplitude,
		WobbleFrequency:  s.WobbleFrequency,
		BaseScale:        s.BaseScale,
	}
}

func behaviorSettings(s config.Settings) behavior.Settings {
	return behavior.Settings{
		AutoWalkEnabled: s.AutoWalkEnabled,
		WalkSpeed:       s.WalkSpeed,
		SpeedMultiplier: s.WalkSpeedMultiplier,
		WaitMin:         s.WalkWaitMin,
		WaitMax:         s.WalkWaitMax,
	}
}

func bubbleSettings(s config.Settings) bubble.Settings {
	return bubble.Settings{
		SpeechEnabled: s.SpeechEnabled,
		MinDelay:      s.SpeechMinDelay,
		MaxDelay:      s.SpeechMaxDelay,
		TypeSpeed:     s.SpeechTypeSpeed,
		Personality:   s.PersonalityEnabled,
		Skin:          s.Skin,
	}
}

// AudioSettings projects sound preferences for a shared synthesizer
func AudioSettings(s config.Settings) audio.Settings {
	return audio.Settings{
		Enabled:            s.AudioEnabled,
		SqueezeOutVolume:   s.SqueezeOutVolume,
		SqueezeInVolume:    s.SqueezeInVolume,
		SqueezeOutPitch:    s.SqueezeOutPitch,
		SqueezeInPitch:     s.SqueezeInPitch,
		BounceSoundEnabled: s.BounceSoundEnabled,
		WordSoundEnabled:   s.WordSoundEnabled,
	}
}
