package scheduler

import "time"

// Clock provides time for the scheduler. The default implementation uses
// system time. Tests inject a fake clock to control timer expiry
// deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock uses system time.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time { return time.Now() }
