package parameter

import "time"

// Ambient speech
const (
	SpeechEnabled = true

	// SpeechMinDelay and SpeechMaxDelay bound the wait before unprompted speech
	SpeechMinDelay = 20 * time.Second
	SpeechMaxDelay = 60 * time.Second

	// SpeechTypeSpeed is the per-word typewriter interval
	SpeechTypeSpeed    = 100 * time.Millisecond
	SpeechTypeSpeedMin = 10 * time.Millisecond

	PersonalityEnabled = false
)
