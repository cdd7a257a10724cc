package testing

import (
	"testing"
	"time"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestLoop_AdvanceFiresAtDeadlines(t *testing.T) {
	loop := NewLoop()
	var seen []time.Duration
	loop.Scheduler.AfterFunc(300*time.Millisecond, func() {
		seen = append(seen, loop.Elapsed())
	})
	loop.Scheduler.AfterFunc(100*time.Millisecond, func() {
		seen = append(seen, loop.Elapsed())
		loop.Scheduler.AfterFunc(50*time.Millisecond, func() {
			seen = append(seen, loop.Elapsed())
		})
	})

	loop.Advance(time.Second)

	want := []time.Duration{100 * time.Millisecond, 150 * time.Millisecond, 300 * time.Millisecond}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("timer %d fired at %v, want %v", i, seen[i], want[i])
		}
	}
	if loop.Elapsed() != time.Second {
		t.Errorf("Elapsed = %v, want 1s", loop.Elapsed())
	}
}

func TestLoop_AdvanceTo(t *testing.T) {
	loop := NewLoop()
	loop.AdvanceTo(250 * time.Millisecond)
	loop.AdvanceTo(100 * time.Millisecond)
	if loop.Elapsed() != 250*time.Millisecond {
		t.Errorf("Elapsed = %v, want 250ms", loop.Elapsed())
	}
}
