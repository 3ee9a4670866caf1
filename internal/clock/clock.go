package clock

import (
	"time"

	"SePushMonitor/internal/ports"
)

// System is the production wall-clock source.
type System struct{}

var _ ports.Clock = System{}

// Now returns the current wall-clock time.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant; used for deterministic tests and
// frozen-time demo mode.
type Fixed struct {
	Instant time.Time
}

var _ ports.Clock = Fixed{}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time {
	return f.Instant
}
