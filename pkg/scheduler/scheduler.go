// Package scheduler provides the cooperative event loop that the scroll view
// core runs on.
//
// All scroll, layout and refresh callbacks execute on the goroutine that
// calls [Scheduler.Step] (or [Scheduler.Run]). Nothing in the core is
// preemptively concurrent: timers are one-shot callbacks that fire during a
// step once their deadline has passed, and work that completes on another
// goroutine re-enters the loop through [Scheduler.Post].
//
// # Driving the loop
//
// Applications call Run with a context:
//
//	sched := scheduler.New(scheduler.RealClock{})
//	go sched.Run(ctx)
//
// Tests use a fake clock and step manually:
//
//	clk := drifttest.NewFakeClock()
//	sched := scheduler.New(clk)
//	sched.AfterFunc(time.Second, fire)
//	clk.Advance(time.Second)
//	sched.Step()
package scheduler

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Default is the process-wide scheduler driven by the real clock. Nothing
// runs it implicitly: the application must call Default.Run.
var Default = New(RealClock{})

// Scheduler runs posted callbacks and expired timers on a single goroutine.
type Scheduler struct {
	clock Clock

	mu     sync.Mutex
	timers map[*Timer]struct{}
	seq    uint64
	posted []func()
	wake   chan struct{}

	running atomic.Bool
}

// Timer is a one-shot callback registered with a Scheduler.
type Timer struct {
	sched    *Scheduler
	deadline time.Time
	seq      uint64
	fn       func()
}

// New creates a scheduler reading time from clock. A nil clock uses system time.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{
		clock:  clock,
		timers: make(map[*Timer]struct{}),
		wake:   make(chan struct{}, 1),
	}
}

// Now returns the current time from the scheduler's clock.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// AfterFunc schedules fn to run on the loop once d has elapsed.
// A non-positive d fires on the next step.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	s.seq++
	t := &Timer{
		sched:    s,
		deadline: s.clock.Now().Add(d),
		seq:      s.seq,
		fn:       fn,
	}
	s.timers[t] = struct{}{}
	s.mu.Unlock()
	s.signal()
	return t
}

// Stop cancels the timer. It reports whether the call prevented the timer
// from firing. Stopping a nil, fired or already stopped timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || t.sched == nil {
		return false
	}
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timers[t]; !ok {
		return false
	}
	delete(s.timers, t)
	return true
}

// Deadline returns the time the timer is due.
func (t *Timer) Deadline() time.Time {
	return t.deadline
}

// Post schedules fn to run on the loop during the next step. It is safe to
// call from any goroutine. Returns false if fn is nil.
func (s *Scheduler) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
	s.signal()
	return true
}

// PendingTimers returns the number of timers that have not fired or been stopped.
func (s *Scheduler) PendingTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Step runs all posted callbacks, then every timer whose deadline has passed,
// earliest first. Timers that become due while stepping (including ones
// scheduled by callbacks with a zero delay) also run before Step returns.
func (s *Scheduler) Step() {
	for {
		s.mu.Lock()
		posted := s.posted
		s.posted = nil
		s.mu.Unlock()

		for _, fn := range posted {
			fn()
		}

		t := s.popDue()
		if t == nil {
			s.mu.Lock()
			idle := len(s.posted) == 0
			s.mu.Unlock()
			if idle {
				return
			}
			continue
		}
		if t.fn != nil {
			t.fn()
		}
	}
}

// popDue removes and returns the earliest due timer, or nil.
func (s *Scheduler) popDue() *Timer {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	var due []*Timer
	for t := range s.timers {
		if !t.deadline.After(now) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	delete(s.timers, due[0])
	return due[0]
}

// NextDeadline returns the earliest pending timer deadline, if any.
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var next time.Time
	found := false
	for t := range s.timers {
		if !found || t.deadline.Before(next) {
			next = t.deadline
			found = true
		}
	}
	return next, found
}

func (s *Scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Running reports whether Run is currently driving the loop.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Run steps the loop until ctx is done, sleeping until the next timer
// deadline or the next Post. Run must only be used with a clock that tracks
// wall time.
func (s *Scheduler) Run(ctx context.Context) error {
	s.running.Store(true)
	defer s.running.Store(false)
	idle := time.NewTimer(time.Hour)
	defer idle.Stop()
	for {
		s.Step()

		wait := time.Hour
		if next, ok := s.NextDeadline(); ok {
			wait = next.Sub(s.clock.Now())
			if wait < 0 {
				wait = 0
			}
		}
		if !idle.Stop() {
			select {
			case <-idle.C:
			default:
			}
		}
		idle.Reset(wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
		case <-idle.C:
		}
	}
}
