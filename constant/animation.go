package constant

import "time"

// Blender smoothing rates (fraction of remaining distance per tick)
const (
	ScaleSmoothing  = 0.2
	SquashSmoothing = 0.1
	FlipSmoothing   = 0.08
)

// Scale
const (
	// GripScale is the scale target while the duck is held
	GripScale = 1.08
)

// Squeeze shape
const (
	// SqueezeHeightRatio stretches height relative to the width narrowing
	SqueezeHeightRatio = 1.3
)

// Flip
const (
	// FlipPhaseDelay is the hold at zero width before the facing sign changes
	FlipPhaseDelay = 250 * time.Millisecond
)

// Wobble
const (
	// WobbleSpeedDivisor scales wobble amplitude by current speed (1 + speed/divisor)
	WobbleSpeedDivisor = 50.0
)
