package parameter

import "time"

// Auto walk
const (
	AutoWalkEnabled = true

	// WalkSpeed is the base walking speed in pixels per second
	WalkSpeed = 120.0

	// WalkSpeedMultiplier is the user speed scale
	WalkSpeedMultiplier    = 1.0
	WalkSpeedMultiplierMin = 0.1
	WalkSpeedMultiplierMax = 5.0

	// WalkWaitMin and WalkWaitMax bound the rest between walks
	WalkWaitMin = 5 * time.Second
	WalkWaitMax = 15 * time.Second
)
