package testing

import (
	"time"

	"github.com/go-drift/scrollview/pkg/scheduler"
)

// Loop pairs a FakeClock with a Scheduler so tests can move time forward
// and observe every timer fire at its own deadline.
type Loop struct {
	Clock     *FakeClock
	Scheduler *scheduler.Scheduler
	start     time.Time
}

// NewLoop creates a loop starting at the FakeClock epoch.
func NewLoop() *Loop {
	clk := NewFakeClock()
	return &Loop{
		Clock:     clk,
		Scheduler: scheduler.New(clk),
		start:     clk.Now(),
	}
}

// Elapsed returns the fake time passed since the loop was created.
func (l *Loop) Elapsed() time.Duration {
	return l.Clock.Now().Sub(l.start)
}

// Flush runs posted callbacks and due timers without moving time.
func (l *Loop) Flush() {
	l.Scheduler.Step()
}

// Advance moves time forward by d. Timers due within the window fire in
// order, each with the clock set to its deadline.
func (l *Loop) Advance(d time.Duration) {
	target := l.Clock.Now().Add(d)
	for {
		l.Scheduler.Step()
		next, ok := l.Scheduler.NextDeadline()
		if !ok || next.After(target) {
			break
		}
		if next.After(l.Clock.Now()) {
			l.Clock.Set(next)
		}
	}
	l.Clock.Set(target)
	l.Scheduler.Step()
}

// AdvanceTo moves time forward until Elapsed reaches d. It does nothing
// if d is already in the past.
func (l *Loop) AdvanceTo(d time.Duration) {
	if remaining := d - l.Elapsed(); remaining > 0 {
		l.Advance(remaining)
	}
}
