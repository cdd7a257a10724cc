// Package throttle limits how often a callback runs while never losing the
// most recent value.
package throttle

import (
	"time"

	"github.com/go-drift/scrollview/pkg/scheduler"
)

// Throttler wraps a callback so it runs at most once per interval.
//
// The first call in an idle period runs immediately. Calls arriving inside
// the current window are collapsed into a single trailing call, scheduled for
// the end of the window, that carries the most recent value. A throttler with
// a non-positive interval or a nil callback is inert and drops every value.
//
// Throttler is not safe for concurrent use; call it from the scheduler loop.
type Throttler[T any] struct {
	sched    *scheduler.Scheduler
	interval time.Duration
	fn       func(T)

	lastFire  time.Time
	hasFired  bool
	latest    T
	trailing  *scheduler.Timer
	cancelled bool
}

// New creates a throttler that runs fn on sched at most once per interval.
func New[T any](sched *scheduler.Scheduler, interval time.Duration, fn func(T)) *Throttler[T] {
	if sched == nil {
		sched = scheduler.Default
	}
	return &Throttler[T]{
		sched:    sched,
		interval: interval,
		fn:       fn,
	}
}

// Inert reports whether the throttler drops every value.
func (t *Throttler[T]) Inert() bool {
	return t == nil || t.interval <= 0 || t.fn == nil
}

// Interval returns the configured interval.
func (t *Throttler[T]) Interval() time.Duration {
	return t.interval
}

// Call offers a value to the throttler.
func (t *Throttler[T]) Call(v T) {
	if t.Inert() || t.cancelled {
		return
	}
	t.latest = v
	now := t.sched.Now()
	if !t.hasFired || now.Sub(t.lastFire) >= t.interval {
		if t.trailing != nil {
			t.trailing.Stop()
			t.trailing = nil
		}
		t.fire(now)
		return
	}
	if t.trailing != nil {
		return
	}
	wait := t.interval - now.Sub(t.lastFire)
	t.trailing = t.sched.AfterFunc(wait, func() {
		t.trailing = nil
		if t.cancelled {
			return
		}
		t.fire(t.sched.Now())
	})
}

// Func returns Call as a plain function value, or nil when the throttler is
// inert, so callers can skip registering listeners that would do nothing.
func (t *Throttler[T]) Func() func(T) {
	if t.Inert() {
		return nil
	}
	return t.Call
}

// Pending reports whether a trailing call is scheduled.
func (t *Throttler[T]) Pending() bool {
	return t != nil && t.trailing != nil
}

// Cancel drops any pending trailing call. Later calls are ignored.
func (t *Throttler[T]) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
	if t.trailing != nil {
		t.trailing.Stop()
		t.trailing = nil
	}
}

func (t *Throttler[T]) fire(now time.Time) {
	t.lastFire = now
	t.hasFired = true
	t.fn(t.latest)
}
