package parameter

// Squeeze
const (
	SqueezeEnabled = true

	// SqueezeAmount is the maximum width narrowing at full squeeze
	SqueezeAmount    = 0.15
	SqueezeAmountMax = 0.5

	// SqueezeOutSpeed is the smoothing rate toward full squeeze while gripped
	SqueezeOutSpeed = 0.3

	// SqueezeInSpeed is the smoothing rate back to rest after release
	SqueezeInSpeed = 0.08

	// SquashDecaySpeed relaxes bounce squash targets back to 1 per tick
	SquashDecaySpeed = 0.1
)

// Idle wobble
const (
	WobbleEnabled = true

	// WobbleAmplitude is the rotation amplitude in degrees
	WobbleAmplitude = 3.0

	// WobbleFrequency is the angular frequency in radians per second
	WobbleFrequency = 2.0
)

// Presentation
const (
	BaseScale   = 1.0
	Opacity     = 1.0
	Skin        = "duck"
	ColorFilter = "none"
)
