package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate    = 44100
	AudioChannels      = 2
	AudioBitDepth      = 16
	AudioBytesPerFrame = AudioChannels * (AudioBitDepth / 8) // 4 bytes
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines latency and mixer tick rate
	AudioBufferDuration = 20 * time.Millisecond

	// AudioBufferSamples is frames per mixer tick at 44.1kHz
	AudioBufferSamples = (AudioSampleRate * 20) / 1000 // 882

	// AudioPlayQueueSize bounds pending play requests before dropping
	AudioPlayQueueSize = 32

	// AudioMaxActive bounds simultaneously mixed sounds
	AudioMaxActive = 16
)

// Squeeze Out
const (
	SqueezeOutDuration  = 180 * time.Millisecond
	SqueezeOutAttack    = 4 * time.Millisecond
	SqueezeOutRelease   = 90 * time.Millisecond
	SqueezeOutSweepEnd  = 0.5
	SqueezeOutVariation = 40.0
)

// Squeeze In
const (
	SqueezeInDuration  = 450 * time.Millisecond
	SqueezeInAttack    = 120 * time.Millisecond
	SqueezeInRelease   = 200 * time.Millisecond
	SqueezeInSweepEnd  = 1.6
	SqueezeInVariation = 30.0
)

// Bounce
const (
	BounceDurationMin  = 80 * time.Millisecond
	BounceDurationMax  = 150 * time.Millisecond
	BounceAttack       = 2 * time.Millisecond
	BounceFrequency    = 220.0
	BounceVariation    = 60.0
	BounceSweepEnd     = 0.6
	BounceBaseVolume   = 0.02
	BounceVolumeCapPct = 0.8
)

// Word Tick
const (
	WordTickDuration  = 50 * time.Millisecond
	WordTickAttack    = 2 * time.Millisecond
	WordTickRelease   = 25 * time.Millisecond
	WordTickFrequency = 400.0
	WordTickVariation = 100.0
	WordTickVolume    = 0.08
)

// Noise burst ("air" texture)
const (
	NoiseBurstLevel = 0.08
)
