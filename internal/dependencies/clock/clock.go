package clock

import "time"

// Clock provides time operations that can be mocked for testing.
// Implementations must return UTC times; stored timestamps round-trip
// through the document form, which normalizes to UTC.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time in UTC
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}
