package refresh

import (
	"testing"
	"time"

	"github.com/go-drift/scrollview/pkg/dom"
	"github.com/go-drift/scrollview/pkg/errors"
	drifttest "github.com/go-drift/scrollview/pkg/testing"
)

type hostSpy struct {
	refreshes int
	done      <-chan struct{}
}

func (h *hostSpy) onRefresh() <-chan struct{} {
	h.refreshes++
	return h.done
}

// enginePuller mimics an engine: triggering calls back into the coordinator
// and finishing reports a disarm.
type enginePuller struct {
	c        *Coordinator
	triggers int
	finishes int
	ignore   bool
}

func (p *enginePuller) TriggerPullToRefresh() {
	p.triggers++
	if !p.ignore {
		p.c.OnThresholdCrossed()
	}
}

func (p *enginePuller) FinishPullToRefresh() {
	p.finishes++
	p.c.OnDisarm()
}

// idleAt advances the loop in small steps and returns the elapsed time at
// which the coordinator first reports Idle.
func idleAt(t *testing.T, loop *drifttest.Loop, c *Coordinator, limit time.Duration) time.Duration {
	t.Helper()
	for loop.Elapsed() <= limit {
		if c.State() == Idle {
			return loop.Elapsed()
		}
		loop.Advance(10 * time.Millisecond)
	}
	t.Fatalf("coordinator still %v after %v", c.State(), limit)
	return 0
}

func TestHostDrivenRefresh_MinimumDuration(t *testing.T) {
	tests := []struct {
		name       string
		completeAt time.Duration
		wantIdleAt time.Duration
	}{
		{"fast refresh waits for timer", 200 * time.Millisecond, time.Second},
		{"slow refresh gates on completion", 1500 * time.Millisecond, 1500 * time.Millisecond},
		{"instant refresh", 0, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop := drifttest.NewLoop()
			host := &hostSpy{}
			ind := dom.NewIndicator(nil)
			spec := Spec{DistanceToRefresh: 50, OnRefresh: host.onRefresh}
			c := NewCoordinator(loop.Scheduler, spec, WithIndicator(ind))

			spec.Refreshing = true
			c.Update(spec)
			if c.State() != Loading {
				t.Fatalf("state = %v, want loading", c.State())
			}
			if host.refreshes != 1 {
				t.Fatalf("OnRefresh calls = %d, want 1", host.refreshes)
			}
			if !ind.State().Loading {
				t.Error("indicator should show loading")
			}

			loop.AdvanceTo(tt.completeAt)
			spec.Refreshing = false
			c.Update(spec)

			got := idleAt(t, loop, c, 3*time.Second)
			if got < tt.wantIdleAt || got > tt.wantIdleAt+10*time.Millisecond {
				t.Errorf("idle at %v, want %v", got, tt.wantIdleAt)
			}
			if ind.State() != (dom.IndicatorState{}) {
				t.Errorf("indicator = %+v after finish, want cleared", ind.State())
			}
			if host.refreshes != 1 {
				t.Errorf("OnRefresh calls = %d, want exactly 1", host.refreshes)
			}
			if loop.Scheduler.PendingTimers() != 0 {
				t.Errorf("PendingTimers = %d after finish", loop.Scheduler.PendingTimers())
			}
		})
	}
}

func TestGestureRefresh_HostFlagDoesNotRetrigger(t *testing.T) {
	loop := drifttest.NewLoop()
	host := &hostSpy{}
	ind := dom.NewIndicator(nil)
	spec := Spec{DistanceToRefresh: 50, OnRefresh: host.onRefresh}
	c := NewCoordinator(loop.Scheduler, spec, WithIndicator(ind))
	puller := &enginePuller{c: c}
	WithPuller(puller)(c)

	c.OnArm()
	if c.State() != Armed || !c.GestureDriven() {
		t.Fatalf("state = %v gesture=%v, want armed by gesture", c.State(), c.GestureDriven())
	}
	if !ind.State().Active {
		t.Error("indicator should be active when armed")
	}

	c.OnThresholdCrossed()
	// The host reacts to OnRefresh by raising its flag.
	spec.Refreshing = true
	c.Update(spec)
	if host.refreshes != 1 || puller.triggers != 0 {
		t.Fatalf("refreshes=%d triggers=%d, want 1/0", host.refreshes, puller.triggers)
	}

	loop.Advance(300 * time.Millisecond)
	spec.Refreshing = false
	c.Update(spec)
	if c.State() != Loading {
		t.Fatalf("state = %v before minimum duration, want loading", c.State())
	}
	loop.AdvanceTo(time.Second)
	if c.State() != Idle {
		t.Fatalf("state = %v, want idle", c.State())
	}
	if puller.finishes != 1 {
		t.Errorf("FinishPullToRefresh calls = %d, want 1", puller.finishes)
	}
	if c.GestureDriven() {
		t.Error("gesture flag should clear after finish")
	}

	want := []dom.IndicatorState{
		{Active: true},
		{Active: true, Loading: true},
		{Active: true},
		{},
	}
	got := ind.History()
	if len(got) != len(want) {
		t.Fatalf("indicator history = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("history[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDisarmFromArmed(t *testing.T) {
	loop := drifttest.NewLoop()
	host := &hostSpy{}
	c := NewCoordinator(loop.Scheduler, Spec{OnRefresh: host.onRefresh})

	c.OnArm()
	c.OnArm()
	c.OnDisarm()
	if c.State() != Idle || c.GestureDriven() {
		t.Errorf("state = %v gesture=%v, want idle", c.State(), c.GestureDriven())
	}
	if host.refreshes != 0 {
		t.Error("disarm should not refresh")
	}
}

func TestDisarmIgnoredWhileLoading(t *testing.T) {
	loop := drifttest.NewLoop()
	c := NewCoordinator(loop.Scheduler, Spec{OnRefresh: (&hostSpy{}).onRefresh})
	c.OnArm()
	c.OnThresholdCrossed()
	c.OnDisarm()
	if c.State() != Loading {
		t.Errorf("state = %v, want loading", c.State())
	}
}

func TestTrigger_GoesThroughPuller(t *testing.T) {
	loop := drifttest.NewLoop()
	host := &hostSpy{}
	c := NewCoordinator(loop.Scheduler, Spec{OnRefresh: host.onRefresh})
	puller := &enginePuller{c: c}
	WithPuller(puller)(c)

	c.Trigger()
	c.Trigger()
	if puller.triggers != 1 || host.refreshes != 1 || c.State() != Loading {
		t.Fatalf("triggers=%d refreshes=%d state=%v", puller.triggers, host.refreshes, c.State())
	}
	c.Complete()
	loop.Advance(time.Second)
	if c.State() != Idle || puller.finishes != 1 {
		t.Errorf("state=%v finishes=%d, want idle/1", c.State(), puller.finishes)
	}
}

func TestTrigger_FallsBackWhenPullerIgnores(t *testing.T) {
	loop := drifttest.NewLoop()
	host := &hostSpy{}
	var reported int
	prev := errors.SetHandler(&countingHandler{errs: &reported})
	defer errors.SetHandler(prev)

	c := NewCoordinator(loop.Scheduler, Spec{OnRefresh: host.onRefresh})
	WithPuller(&enginePuller{c: c, ignore: true})(c)
	c.Trigger()
	if c.State() != Loading || host.refreshes != 1 {
		t.Errorf("state=%v refreshes=%d, want loading/1", c.State(), host.refreshes)
	}
	if reported != 1 {
		t.Errorf("reported = %d, want 1", reported)
	}
}

func TestUpdate_FallingEdgeWithoutPendingIsNoop(t *testing.T) {
	loop := drifttest.NewLoop()
	host := &hostSpy{}
	c := NewCoordinator(loop.Scheduler, Spec{Refreshing: true, OnRefresh: host.onRefresh})
	c.Update(Spec{Refreshing: false, OnRefresh: host.onRefresh})
	if c.State() != Idle || host.refreshes != 0 {
		t.Errorf("state=%v refreshes=%d", c.State(), host.refreshes)
	}
}

func TestChannelCompletion(t *testing.T) {
	loop := drifttest.NewLoop()
	done := make(chan struct{})
	host := &hostSpy{done: done}
	c := NewCoordinator(loop.Scheduler, Spec{OnRefresh: host.onRefresh})

	c.Trigger()
	loop.Advance(time.Second)
	if c.State() != Loading {
		t.Fatalf("state = %v before channel closed, want loading", c.State())
	}

	close(done)
	deadline := time.Now().Add(2 * time.Second)
	for c.State() != Idle && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
		loop.Flush()
	}
	if c.State() != Idle {
		t.Errorf("state = %v after channel closed, want idle", c.State())
	}
}

func TestNilOnRefresh_CompletesAfterMinimumDuration(t *testing.T) {
	loop := drifttest.NewLoop()
	c := NewCoordinator(loop.Scheduler, Spec{})
	c.Trigger()
	loop.Advance(999 * time.Millisecond)
	if c.State() != Loading {
		t.Fatalf("state = %v, want loading", c.State())
	}
	loop.Advance(time.Millisecond)
	if c.State() != Idle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestPanickingOnRefresh_IsRecovered(t *testing.T) {
	loop := drifttest.NewLoop()
	var panics int
	var kind errors.ErrorKind
	prev := errors.SetHandler(&countingHandler{panics: &panics, lastKind: &kind})
	defer errors.SetHandler(prev)

	spec := Spec{OnRefresh: func() <-chan struct{} { panic("boom") }}
	c := NewCoordinator(loop.Scheduler, spec)
	c.Trigger()
	if panics != 1 {
		t.Fatalf("panics reported = %d, want 1", panics)
	}
	if kind != errors.KindCallback {
		t.Errorf("panic kind = %v, want %v", kind, errors.KindCallback)
	}
	c.Complete()
	loop.Advance(time.Second)
	if c.State() != Idle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestClose_DuringLoadingSilencesEverything(t *testing.T) {
	loop := drifttest.NewLoop()
	done := make(chan struct{})
	host := &hostSpy{done: done}
	ind := dom.NewIndicator(nil)
	spec := Spec{OnRefresh: host.onRefresh}
	c := NewCoordinator(loop.Scheduler, spec, WithIndicator(ind))
	puller := &enginePuller{c: c}
	WithPuller(puller)(c)

	spec.Refreshing = true
	c.Update(spec)
	historyAtClose := len(ind.History())

	c.Close()
	if loop.Scheduler.PendingTimers() != 0 {
		t.Errorf("PendingTimers = %d after Close", loop.Scheduler.PendingTimers())
	}
	close(done)
	c.Complete()
	c.Update(Spec{OnRefresh: host.onRefresh})
	c.OnArm()
	c.OnThresholdCrossed()
	c.Trigger()
	time.Sleep(5 * time.Millisecond)
	loop.Advance(2 * time.Second)

	if puller.finishes != 0 || puller.triggers != 1 {
		t.Errorf("puller calls after close: triggers=%d finishes=%d", puller.triggers, puller.finishes)
	}
	if host.refreshes != 1 {
		t.Errorf("OnRefresh calls = %d, want 1", host.refreshes)
	}
	if len(ind.History()) != historyAtClose {
		t.Errorf("indicator changed after close: %+v", ind.History())
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Armed.String() != "armed" || Loading.String() != "loading" {
		t.Error("unexpected state names")
	}
	if State(9).String() != "State(9)" {
		t.Errorf("State(9) = %q", State(9).String())
	}
}

type countingHandler struct {
	errs     *int
	panics   *int
	lastKind *errors.ErrorKind
}

func (h *countingHandler) HandleError(*errors.ScrollError) {
	if h.errs != nil {
		*h.errs++
	}
}

func (h *countingHandler) HandlePanic(err *errors.PanicError) {
	if h.panics != nil {
		*h.panics++
	}
	if h.lastKind != nil {
		*h.lastKind = err.Kind
	}
}
