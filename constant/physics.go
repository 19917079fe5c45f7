package constant

import "time"

// Motion Integrator
const (
	// MinVelocity is the per-axis speed below which velocity snaps to zero
	MinVelocity = 0.1

	// ThrowWindow is how recent the last pointer move must be for a release to throw
	ThrowWindow = 100 * time.Millisecond

	// BounceVolumeDivisor maps axis speed to the bounce volume multiplier
	BounceVolumeDivisor = 5.0

	// BounceVolumeMin and BounceVolumeMax clamp the bounce volume multiplier
	BounceVolumeMin = 3.0
	BounceVolumeMax = 10.0
)

// Bounce squash targets, applied opposite to the impact axis
const (
	SquashWide   = 1.3
	SquashNarrow = 0.7
)
