package constant

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the tick interval for the simulation (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// NominalFrameSeconds is the fixed dt used when no measured frame delta exists
	NominalFrameSeconds = 1.0 / 60.0

	// MaxFrameSeconds caps measured dt after stalls (suspended terminal, debugger)
	MaxFrameSeconds = 0.1

	// InputQueueSize is the buffered capacity of the loop input channel
	InputQueueSize = 256
)
