package parameter

// Sound settings
const (
	AudioEnabled = true

	SqueezeOutVolume = 0.3
	SqueezeInVolume  = 0.25

	// SqueezeOutPitch and SqueezeInPitch are recipe base frequencies in Hz
	SqueezeOutPitch = 600.0
	SqueezeInPitch  = 300.0

	BounceSoundEnabled = true
	WordSoundEnabled   = true

	VolumeMin = 0.0
	VolumeMax = 1.0

	PitchMin = 50.0
	PitchMax = 4000.0
)
