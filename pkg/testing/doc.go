// Package testing provides deterministic time for scroll view tests.
//
// # Controlling time
//
// [Loop] couples a [FakeClock] with a scheduler. Advancing the loop fires
// every timer at its own deadline, so throttle windows and minimum refresh
// durations can be asserted exactly:
//
//	loop := drifttest.NewLoop()
//	ctrl := scrollview.New(renderer, cfg, scrollview.WithScheduler(loop.Scheduler))
//	ctrl.Mount()
//	loop.Advance(200 * time.Millisecond)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drifttest "github.com/go-drift/scrollview/pkg/testing"
package testing
