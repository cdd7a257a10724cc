// Package scrollview orchestrates a scroll view's scroll source, scroll
// event throttling and pull-to-refresh across its mount lifecycle.
//
// A renderer creates a [Controller] with the host's [Config] and forwards
// lifecycle calls to it. Throttled scroll events and refresh completion are
// timers on the controller's scheduler, so that loop must be running and
// every controller call must be made on it:
//
//	go scheduler.Default.Run(ctx)
//
//	ctrl := scrollview.New(renderer, scrollview.Config{
//	    ScrollEventThrottle: 16 * time.Millisecond,
//	    OnScroll: func(ev scrollview.ScrollEvent) { ... },
//	})
//	scheduler.Default.Post(ctrl.Mount)
//	defer scheduler.Default.Post(ctrl.Unmount)
//
// Mounting on [scheduler.Default] while it is not running reports a
// KindConfig error, since no timer would ever fire.
//
// The scroll strategy is chosen once per mount. Changing StickyHeader,
// UseBodyScroll or UseEngineScroll on Update has no effect until the
// controller is unmounted and mounted again.
package scrollview

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-drift/scrollview/pkg/dom"
	"github.com/go-drift/scrollview/pkg/errors"
	"github.com/go-drift/scrollview/pkg/logging"
	"github.com/go-drift/scrollview/pkg/refresh"
	"github.com/go-drift/scrollview/pkg/scheduler"
	"github.com/go-drift/scrollview/pkg/scroller"
	"github.com/go-drift/scrollview/pkg/scrollsource"
	"github.com/go-drift/scrollview/pkg/throttle"
)

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler sets the loop timers and callbacks run on. Without it the
// controller uses scheduler.Default, which the application must Run.
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithViewport sets the global viewport used by sticky/body scrolling.
func WithViewport(v dom.Viewport) Option {
	return func(c *Controller) { c.viewport = v }
}

// WithEngineFactory sets how scroll engines are built.
func WithEngineFactory(f scrollsource.EngineFactory) Option {
	return func(c *Controller) { c.engineFactory = f }
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns one scroll view's scroll source and refresh coordinator.
// It must be used from the scheduler loop.
type Controller struct {
	renderer      Renderer
	cfg           Config
	sched         *scheduler.Scheduler
	viewport      dom.Viewport
	engineFactory scrollsource.EngineFactory
	logger        zerolog.Logger

	mounted     bool
	variant     scrollsource.Variant
	adapter     scrollsource.Adapter
	throttle    *throttle.Throttler[ScrollEvent]
	coordinator *refresh.Coordinator
}

// New creates an unmounted controller.
func New(renderer Renderer, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		renderer:      renderer,
		cfg:           cfg.Clone(),
		sched:         scheduler.Default,
		viewport:      dom.DefaultWindow,
		engineFactory: scroller.Factory,
		logger:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sched == nil {
		c.sched = scheduler.Default
	}
	c.logger = logging.Component(c.logger, "scrollview")
	return c
}

// Mount selects and attaches the scroll source and, if configured, starts
// the refresh coordinator. Mounting a mounted controller is a no-op.
func (c *Controller) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	cfg := c.cfg

	variant := cfg.Variant()
	if variant == scrollsource.VariantEngine && c.engineFactory == nil {
		errors.Report(&errors.ScrollError{
			Op:      "scrollview.Mount",
			Kind:    errors.KindConfig,
			Variant: variant.String(),
			Err:     fmt.Errorf("no engine factory; falling back to element scrolling"),
		})
		variant = scrollsource.VariantElement
	}
	c.variant = variant

	if c.sched == scheduler.Default && !c.sched.Running() && cfg.needsTimers() {
		errors.Report(&errors.ScrollError{
			Op:      "scrollview.Mount",
			Kind:    errors.KindConfig,
			Variant: variant.String(),
			Err:     fmt.Errorf("scheduler.Default is not running; scroll and refresh timers will not fire"),
		})
	}

	var onScroll func(ScrollEvent)
	if cfg.OnScroll != nil {
		onScroll = c.dispatchScroll
	}
	c.throttle = throttle.New(c.sched, cfg.ScrollEventThrottle, onScroll)
	handlers := scrollsource.Handlers{
		OnScroll: c.throttle.Func(),
		OnLayout: c.dispatchLayout,
	}

	var engineSource *scrollsource.EngineSource
	switch variant {
	case scrollsource.VariantWindow:
		c.adapter = scrollsource.NewWindowSource(c.viewport, handlers)
	case scrollsource.VariantEngine:
		engineSource = scrollsource.NewEngineSource(c.renderer.Content(), c.engineFactory, cfg.EngineOptions, handlers)
		c.adapter = engineSource
	default:
		c.adapter = scrollsource.NewElementSource(c.renderer.Container(), handlers)
	}
	c.adapter.Attach()

	var engine scrollsource.Engine
	if engineSource != nil {
		engine = engineSource.Engine()
		if engine == nil {
			errors.Report(&errors.ScrollError{
				Op:      "scrollview.Mount",
				Kind:    errors.KindAdapter,
				Variant: variant.String(),
				Err:     fmt.Errorf("engine factory returned nil"),
			})
		}
	}

	c.logger.Debug().
		Str("variant", variant.String()).
		Dur("throttle", cfg.ScrollEventThrottle).
		Bool("scrollEvents", !c.throttle.Inert()).
		Bool("refresh", cfg.RefreshControl != nil).
		Msg("mounted")

	if cfg.RefreshControl == nil {
		return
	}
	spec := *cfg.RefreshControl
	opts := []refresh.Option{refresh.WithLogger(c.logger)}
	if ind := c.renderer.RefreshIndicator(); ind != nil {
		opts = append(opts, refresh.WithIndicator(ind))
	}
	if engine != nil {
		opts = append(opts, refresh.WithPuller(engine))
	}
	c.coordinator = refresh.NewCoordinator(c.sched, spec, opts...)
	if engine != nil {
		engine.ActivatePullToRefresh(spec.DistanceToRefresh,
			c.coordinator.OnArm,
			c.coordinator.OnDisarm,
			c.coordinator.OnThresholdCrossed,
		)
	}
	if spec.Refreshing {
		c.coordinator.Trigger()
	}
}

// Update applies a new configuration. Only the refresh flag is acted on;
// callbacks take effect immediately because they are read at call time.
func (c *Controller) Update(next Config) {
	prev := c.cfg
	c.cfg = next.Clone()
	if !c.mounted {
		return
	}
	if prev.Variant() != next.Variant() {
		errors.Report(&errors.ScrollError{
			Op:      "scrollview.Update",
			Kind:    errors.KindConfig,
			Variant: c.variant.String(),
			Err:     fmt.Errorf("scroll strategy changed to %s; remount to apply", next.Variant()),
		})
	}
	if c.coordinator != nil && c.cfg.RefreshControl != nil {
		c.coordinator.Update(*c.cfg.RefreshControl)
	}
}

// Unmount cancels pending scroll events and refresh timers and detaches the
// scroll source. Nothing fires afterwards. Unmounting an unmounted
// controller is a no-op.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.throttle.Cancel()
	c.throttle = nil
	if c.coordinator != nil {
		c.coordinator.Close()
		c.coordinator = nil
	}
	c.adapter.Detach()
	c.adapter = nil
	c.logger.Debug().Str("variant", c.variant.String()).Msg("unmounted")
}

// ScrollTo scrolls the active source to (x, y). It is a no-op while unmounted.
func (c *Controller) ScrollTo(x, y float64) {
	if c.adapter != nil {
		c.adapter.ScrollTo(x, y)
	}
}

// Mounted reports whether the controller is mounted.
func (c *Controller) Mounted() bool {
	return c.mounted
}

// Variant returns the variant chosen at the last mount.
func (c *Controller) Variant() scrollsource.Variant {
	return c.variant
}

// Config returns a copy of the current configuration.
func (c *Controller) Config() Config {
	return c.cfg.Clone()
}

// Engine returns the scroll engine while mounted on the engine variant.
func (c *Controller) Engine() scrollsource.Engine {
	if src, ok := c.adapter.(*scrollsource.EngineSource); ok {
		return src.Engine()
	}
	return nil
}

// Coordinator returns the refresh coordinator while mounted with a
// RefreshControl, or nil.
func (c *Controller) Coordinator() *refresh.Coordinator {
	return c.coordinator
}

// RefreshState returns the coordinator state, or Idle without one.
func (c *Controller) RefreshState() refresh.State {
	if c.coordinator == nil {
		return refresh.Idle
	}
	return c.coordinator.State()
}

func (c *Controller) dispatchScroll(ev ScrollEvent) {
	if fn := c.cfg.OnScroll; fn != nil {
		errors.Guard("scrollview.OnScroll", func() { fn(ev) })
	}
}

func (c *Controller) dispatchLayout(ev LayoutEvent) {
	if fn := c.cfg.OnLayout; fn != nil {
		errors.Guard("scrollview.OnLayout", func() { fn(ev) })
	}
}
