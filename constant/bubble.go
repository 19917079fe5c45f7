package constant

import "time"

// Bubble sequencing
const (
	// BubbleDwellMin and BubbleDwellMax bound the wait after full reveal
	BubbleDwellMin = 2 * time.Second
	BubbleDwellMax = 4 * time.Second

	// BubbleDwellPerWord extends dwell for longer text
	BubbleDwellPerWord = 100 * time.Millisecond

	// BubbleSkipSettle is the wait after a click skipped the reveal
	BubbleSkipSettle = 1500 * time.Millisecond

	// BubbleHideDuration is the scale-to-zero animation length
	BubbleHideDuration = 300 * time.Millisecond
)

// Bubble geometry, anchored above the duck
const (
	BubbleWidthPx  = 240.0
	BubbleHeightPx = 96.0
	BubbleGapPx    = 8.0
)
