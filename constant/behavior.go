package constant

import "time"

// Walking
const (
	// WalkCooldownAfterDrag is the standing-still time required after a drag before walking
	WalkCooldownAfterDrag = 2000 * time.Millisecond

	// WalkMinTargetDistance rejects targets closer than this to the current position
	WalkMinTargetDistance = 300.0

	// WalkTargetAttempts bounds target sampling
	WalkTargetAttempts = 300

	// WalkArrivalDistance ends the walk when the duck is this close to the target
	WalkArrivalDistance = 10.0

	// WalkSteering is the velocity interpolation factor toward desired walking velocity
	WalkSteering = 0.1

	// WalkMargin keeps walk targets away from viewport edges
	WalkMargin = 50.0

	// FacingDeadzone ignores facing changes for horizontal offsets below this
	FacingDeadzone = 1.0
)
