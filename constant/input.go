package constant

import "time"

// Terminal cell geometry, used to map cell coordinates onto the pixel viewport
const (
	CellWidthPx  = 8.0
	CellHeightPx = 16.0
)

// Pointer gestures
const (
	// DoubleTapWindow is the maximum gap between two presses of a double tap
	DoubleTapWindow = 400 * time.Millisecond

	// DoubleTapSlop is the maximum pixel distance between two presses of a double tap
	DoubleTapSlop = 16.0
)
