// Package refresh implements the pull-to-refresh state machine.
//
// A [Coordinator] turns gesture callbacks from a scroll engine, and edges of
// the host's refreshing flag, into a refresh lifecycle:
//
//	        OnArm              OnThresholdCrossed / Trigger
//	Idle ───────────► Armed ─────────────────────────────► Loading
//	  ▲                 │                                      │
//	  └─── OnDisarm ────┘            completion + timer        │
//	  ▲                                                        │
//	  └────────────────────────────────────────────────────────┘
//
// Loading ends only after both the host's refresh has completed and
// [MinRefreshDuration] has elapsed, so the indicator stays visible long
// enough to be seen even when the refresh resolves instantly.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-drift/scrollview/pkg/errors"
	"github.com/go-drift/scrollview/pkg/logging"
	"github.com/go-drift/scrollview/pkg/scheduler"
)

// MinRefreshDuration is the shortest time a refresh stays in Loading.
const MinRefreshDuration = time.Second

// State is the refresh lifecycle state.
type State int

const (
	// Idle means no pull or refresh is in progress.
	Idle State = iota
	// Armed means a pull has passed the threshold but not been released.
	Armed
	// Loading means a refresh is running.
	Loading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Loading:
		return "loading"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Spec is the host's refresh configuration.
type Spec struct {
	// DistanceToRefresh is the pull distance that arms a refresh.
	DistanceToRefresh float64
	// OnRefresh starts a refresh. If it returns a non-nil channel, closing
	// the channel signals completion. With a nil channel completion is
	// signalled by Refreshing dropping to false, or by Coordinator.Complete.
	// A nil OnRefresh completes immediately, leaving only the minimum
	// duration.
	OnRefresh func() <-chan struct{}
	// Refreshing is the host's view of whether a refresh is running.
	Refreshing bool
}

// Puller is the pull-to-refresh part of a scroll engine.
type Puller interface {
	TriggerPullToRefresh()
	FinishPullToRefresh()
}

// Indicator is the refresh-indicator element supplied by the renderer.
type Indicator interface {
	SetActive(active bool)
	SetLoading(loading bool)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithPuller routes programmatic triggers and completion through an engine.
func WithPuller(p Puller) Option {
	return func(c *Coordinator) { c.puller = p }
}

// WithIndicator sets the indicator updated on state changes.
func WithIndicator(i Indicator) Option {
	return func(c *Coordinator) { c.indicator = i }
}

// WithLogger sets the logger for state transitions.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Coordinator) { c.logger = logging.Component(l, "refresh") }
}

// WithMinDuration overrides MinRefreshDuration.
func WithMinDuration(d time.Duration) Option {
	return func(c *Coordinator) { c.minDuration = d }
}

// Coordinator drives the pull-to-refresh lifecycle for one mount. All
// methods must be called from the scheduler loop.
type Coordinator struct {
	sched       *scheduler.Scheduler
	spec        Spec
	puller      Puller
	indicator   Indicator
	logger      zerolog.Logger
	minDuration time.Duration

	state         State
	gestureDriven bool

	generation  uint64
	join        *Join
	timer       *scheduler.Timer
	complete    func()
	stopWatcher context.CancelFunc

	closed bool
}

// NewCoordinator creates a coordinator in the Idle state.
func NewCoordinator(sched *scheduler.Scheduler, spec Spec, opts ...Option) *Coordinator {
	if sched == nil {
		sched = scheduler.Default
	}
	c := &Coordinator{
		sched:       sched,
		spec:        spec,
		logger:      logging.Nop(),
		minDuration: MinRefreshDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Coordinator) State() State {
	return c.state
}

// GestureDriven reports whether the current pull was started by the user,
// as opposed to the host raising its refreshing flag.
func (c *Coordinator) GestureDriven() bool {
	return c.gestureDriven
}

// Spec returns the latest spec seen by the coordinator.
func (c *Coordinator) Spec() Spec {
	return c.spec
}

// OnArm handles a pull passing the threshold.
func (c *Coordinator) OnArm() {
	if c.closed || c.state != Idle {
		return
	}
	c.state = Armed
	c.gestureDriven = true
	c.logger.Debug().Msg("armed")
	if c.indicator != nil {
		c.indicator.SetActive(true)
	}
}

// OnDisarm handles a pull falling back under the threshold, and the engine
// confirming a finished refresh.
func (c *Coordinator) OnDisarm() {
	if c.closed {
		return
	}
	if c.state == Loading && c.join != nil {
		c.logger.Debug().Msg("disarm ignored while loading")
		return
	}
	c.teardown()
}

// OnThresholdCrossed starts a refresh.
func (c *Coordinator) OnThresholdCrossed() {
	if c.closed || c.state == Loading {
		return
	}
	c.state = Loading
	c.generation++
	gen := c.generation
	c.logger.Debug().Bool("gesture", c.gestureDriven).Msg("refresh started")
	if c.indicator != nil {
		c.indicator.SetLoading(true)
	}

	join := NewJoin(func() { c.finish(gen) })
	hostDone := join.Add()
	timerDone := join.Add()
	c.join = join
	c.complete = hostDone
	c.timer = c.sched.AfterFunc(c.minDuration, timerDone)

	if c.spec.OnRefresh == nil {
		hostDone()
		return
	}
	var done <-chan struct{}
	errors.Guard("refresh.OnRefresh", func() {
		done = c.spec.OnRefresh()
	})
	if done == nil || c.closed || gen != c.generation {
		return
	}
	c.watch(done, hostDone)
}

// Trigger starts a refresh without a gesture.
func (c *Coordinator) Trigger() {
	if c.closed || c.state == Loading {
		return
	}
	if c.puller != nil {
		c.puller.TriggerPullToRefresh()
		if c.state == Loading || c.closed {
			return
		}
		errors.Report(&errors.ScrollError{
			Op:   "refresh.Trigger",
			Kind: errors.KindRefresh,
			Err:  fmt.Errorf("engine ignored trigger; starting refresh directly"),
		})
	}
	c.OnThresholdCrossed()
}

// Update applies a new spec, reacting to edges of the refreshing flag.
// A true→false edge completes a pending refresh. A false→true edge that the
// coordinator did not cause through a gesture triggers a refresh.
func (c *Coordinator) Update(next Spec) {
	if c.closed {
		return
	}
	prev := c.spec.Refreshing
	c.spec = next
	switch {
	case prev && !next.Refreshing:
		c.Complete()
	case !prev && next.Refreshing && !c.gestureDriven:
		c.Trigger()
	}
}

// Complete signals that the host's refresh has finished. It is a no-op when
// no refresh is pending.
func (c *Coordinator) Complete() {
	if c.complete != nil {
		c.complete()
	}
}

// Close cancels any pending timer, completion watcher and join. No callback
// fires after Close returns.
func (c *Coordinator) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.generation++
	c.clearPending()
	c.logger.Debug().Msg("closed")
}

func (c *Coordinator) watch(done <-chan struct{}, signal func()) {
	ctx, cancel := context.WithCancel(context.Background())
	c.stopWatcher = cancel
	go func() {
		defer errors.Recover("refresh.watch")
		select {
		case <-done:
			c.sched.Post(signal)
		case <-ctx.Done():
		}
	}()
}

func (c *Coordinator) finish(gen uint64) {
	if c.closed || gen != c.generation {
		return
	}
	c.clearPending()
	c.logger.Debug().Msg("refresh finished")
	if c.puller != nil {
		c.puller.FinishPullToRefresh()
	}
	c.teardown()
}

func (c *Coordinator) clearPending() {
	if c.join != nil {
		c.join.Cancel()
		c.join = nil
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.stopWatcher != nil {
		c.stopWatcher()
		c.stopWatcher = nil
	}
	c.complete = nil
}

func (c *Coordinator) teardown() {
	if c.closed {
		return
	}
	wasIdle := c.state == Idle
	c.state = Idle
	c.gestureDriven = false
	if c.indicator != nil {
		c.indicator.SetLoading(false)
		c.indicator.SetActive(false)
	}
	if !wasIdle {
		c.logger.Debug().Msg("idle")
	}
}
