package scrollview

import (
	"maps"
	"time"

	"github.com/go-drift/scrollview/pkg/refresh"
	"github.com/go-drift/scrollview/pkg/scrollsource"
)

// RefreshSpec configures pull-to-refresh. It is owned by the host; the
// controller only watches its Refreshing flag for edges.
type RefreshSpec = refresh.Spec

// ScrollEvent and LayoutEvent are re-exported for hosts.
type (
	ScrollEvent = scrollsource.ScrollEvent
	LayoutEvent = scrollsource.LayoutEvent
)

// Config is the host's scroll view configuration.
type Config struct {
	// UseEngineScroll delegates scrolling to an external scroll engine.
	UseEngineScroll bool
	// StickyHeader and UseBodyScroll make the page, not the container,
	// scroll. Either one selects the global viewport.
	StickyHeader  bool
	UseBodyScroll bool

	// ScrollEventThrottle is the minimum time between OnScroll calls.
	// Scroll events are dropped entirely unless both it and OnScroll are set.
	ScrollEventThrottle time.Duration
	OnScroll            func(ScrollEvent)
	// OnLayout receives viewport size changes (global viewport only).
	OnLayout func(LayoutEvent)

	// RefreshControl enables pull-to-refresh when non-nil.
	RefreshControl *RefreshSpec
	// EngineOptions are merged over the engine defaults; host keys win.
	EngineOptions map[string]any
}

// StickyOrBodyScroll reports whether the global viewport scrolls.
func (c Config) StickyOrBodyScroll() bool {
	return c.StickyHeader || c.UseBodyScroll
}

// Variant returns the scroll source variant this configuration selects.
func (c Config) Variant() scrollsource.Variant {
	return scrollsource.Select(c.StickyOrBodyScroll(), c.UseEngineScroll)
}

// Clone returns a copy that shares callbacks but not maps or the refresh spec.
func (c Config) Clone() Config {
	out := c
	out.EngineOptions = maps.Clone(c.EngineOptions)
	if c.RefreshControl != nil {
		spec := *c.RefreshControl
		out.RefreshControl = &spec
	}
	return out
}

// needsTimers reports whether the configuration schedules timers: a live
// scroll throttle or a refresh coordinator.
func (c Config) needsTimers() bool {
	return (c.ScrollEventThrottle > 0 && c.OnScroll != nil) || c.RefreshControl != nil
}
