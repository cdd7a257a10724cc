package throttle

import (
	"testing"
	"time"

	drifttest "github.com/go-drift/scrollview/pkg/testing"
)

type call struct {
	at    time.Duration
	value int
}

func record(loop *drifttest.Loop, calls *[]call) func(int) {
	return func(v int) {
		*calls = append(*calls, call{at: loop.Elapsed(), value: v})
	}
}

func TestThrottler_InertWhenUnconfigured(t *testing.T) {
	loop := drifttest.NewLoop()
	called := false
	cases := []struct {
		name     string
		interval time.Duration
		fn       func(int)
	}{
		{"zero interval", 0, func(int) { called = true }},
		{"negative interval", -time.Second, func(int) { called = true }},
		{"nil callback", 16 * time.Millisecond, nil},
	}
	for _, tc := range cases {
		th := New(loop.Scheduler, tc.interval, tc.fn)
		if !th.Inert() {
			t.Errorf("%s: expected inert throttler", tc.name)
		}
		if th.Func() != nil {
			t.Errorf("%s: Func should be nil for an inert throttler", tc.name)
		}
		th.Call(1)
		loop.Advance(time.Second)
	}
	if called {
		t.Error("inert throttler invoked its callback")
	}
	if loop.Scheduler.PendingTimers() != 0 {
		t.Error("inert throttler scheduled timers")
	}
}

func TestThrottler_LeadingCallFiresImmediately(t *testing.T) {
	loop := drifttest.NewLoop()
	var calls []call
	th := New(loop.Scheduler, 100*time.Millisecond, record(loop, &calls))

	th.Call(1)
	if len(calls) != 1 || calls[0].value != 1 {
		t.Fatalf("calls = %v, want one immediate call with 1", calls)
	}
	if th.Pending() {
		t.Error("single call should not schedule a trailing call")
	}
	loop.Advance(time.Second)
	if len(calls) != 1 {
		t.Errorf("calls = %v, want no duplicate trailing call", calls)
	}
}

func TestThrottler_BurstDeliversLatestOnTrailingEdge(t *testing.T) {
	loop := drifttest.NewLoop()
	var calls []call
	th := New(loop.Scheduler, 100*time.Millisecond, record(loop, &calls))

	// Ten events 10ms apart: 0ms..90ms.
	for i := 1; i <= 10; i++ {
		th.Call(i)
		loop.Advance(10 * time.Millisecond)
	}
	loop.Advance(time.Second)

	if len(calls) != 2 {
		t.Fatalf("calls = %v, want leading + trailing", calls)
	}
	if calls[0].value != 1 || calls[0].at != 0 {
		t.Errorf("leading call = %+v, want value 1 at 0", calls[0])
	}
	if calls[1].value != 10 || calls[1].at != 100*time.Millisecond {
		t.Errorf("trailing call = %+v, want value 10 at 100ms", calls[1])
	}
}

func TestThrottler_AtMostOncePerInterval(t *testing.T) {
	intervals := []time.Duration{16 * time.Millisecond, 50 * time.Millisecond, 250 * time.Millisecond}
	for _, interval := range intervals {
		loop := drifttest.NewLoop()
		var calls []call
		th := New(loop.Scheduler, interval, record(loop, &calls))

		step := interval / 7
		if step == 0 {
			step = time.Millisecond
		}
		last := 0
		for i := 1; i <= 200; i++ {
			th.Call(i)
			last = i
			loop.Advance(step)
		}
		loop.Advance(2 * interval)

		if len(calls) < 2 {
			t.Fatalf("interval %v: calls = %v", interval, calls)
		}
		for i := 1; i < len(calls); i++ {
			if gap := calls[i].at - calls[i-1].at; gap < interval {
				t.Errorf("interval %v: calls %d and %d only %v apart", interval, i-1, i, gap)
			}
			if calls[i].value <= calls[i-1].value {
				t.Errorf("interval %v: values reordered: %v", interval, calls)
			}
		}
		if final := calls[len(calls)-1].value; final != last {
			t.Errorf("interval %v: final delivered value = %d, want %d", interval, final, last)
		}
	}
}

func TestThrottler_CallAfterQuietWindowFiresImmediately(t *testing.T) {
	loop := drifttest.NewLoop()
	var calls []call
	th := New(loop.Scheduler, 100*time.Millisecond, record(loop, &calls))

	th.Call(1)
	loop.Advance(150 * time.Millisecond)
	th.Call(2)

	if len(calls) != 2 || calls[1].at != 150*time.Millisecond {
		t.Fatalf("calls = %v, want second call immediately at 150ms", calls)
	}
}

func TestThrottler_CancelDropsTrailingCall(t *testing.T) {
	loop := drifttest.NewLoop()
	var calls []call
	th := New(loop.Scheduler, 100*time.Millisecond, record(loop, &calls))

	th.Call(1)
	loop.Advance(10 * time.Millisecond)
	th.Call(2)
	if !th.Pending() {
		t.Fatal("expected a pending trailing call")
	}
	th.Cancel()
	if loop.Scheduler.PendingTimers() != 0 {
		t.Errorf("PendingTimers = %d after Cancel", loop.Scheduler.PendingTimers())
	}
	loop.Advance(time.Second)
	th.Call(3)
	if len(calls) != 1 {
		t.Errorf("calls = %v, want only the leading call", calls)
	}
}
