package loop

import "time"

// Frame timing. The simulation always advances in fixedStep increments; a
// slow frame runs at most maxStepsPerFrame steps and drops the rest.
const (
	targetFPS        = 60
	targetFrameTime  = time.Second / targetFPS
	fixedStep        = 1.0 / targetFPS
	maxStepsPerFrame = 5
)

// Render area limits in terminal cells.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 68
	hudRows       = 1 // Rows reserved above the playfield
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
