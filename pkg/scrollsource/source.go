// Package scrollsource adapts the three mutually exclusive scrolling
// mechanisms (the global viewport, a plain scrolling element, and an external
// scroll engine) to one interface.
//
// Exactly one adapter is active per mount. [Select] is the single place the
// choice is made; everything downstream works against [Adapter].
package scrollsource

import "fmt"

// Variant identifies which scrolling mechanism an adapter drives.
type Variant int

const (
	// VariantElement listens to scroll events on the container element.
	VariantElement Variant = iota
	// VariantWindow listens to the global viewport; the container itself
	// does not scroll.
	VariantWindow
	// VariantEngine delegates scrolling to an external scroll engine.
	VariantEngine
)

func (v Variant) String() string {
	switch v {
	case VariantElement:
		return "element"
	case VariantWindow:
		return "window"
	case VariantEngine:
		return "engine"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Select picks the variant for a mount. Sticky/body scrolling wins over the
// engine, which wins over the plain element.
func Select(stickyOrBodyScroll, useEngine bool) Variant {
	switch {
	case stickyOrBodyScroll:
		return VariantWindow
	case useEngine:
		return VariantEngine
	default:
		return VariantElement
	}
}

// ScrollEvent is a scroll notification normalized across variants.
type ScrollEvent struct {
	Left    float64
	Top     float64
	Variant Variant
}

// LayoutEvent reports the viewport size after a resize.
type LayoutEvent struct {
	Width  float64
	Height float64
}

// Adapter is a scroll source bound to one mechanism for one mount.
type Adapter interface {
	// Attach registers listeners (or builds the engine). Calling it again
	// while attached is a no-op.
	Attach()
	// Detach removes everything Attach registered. It is idempotent and a
	// no-op before Attach.
	Detach()
	// ScrollTo moves the underlying mechanism to (x, y).
	ScrollTo(x, y float64)
	// Variant reports which mechanism the adapter drives.
	Variant() Variant
}

// Handlers are the callbacks an adapter forwards to. Either may be nil.
type Handlers struct {
	// OnScroll receives normalized scroll events. A nil OnScroll means no
	// scroll listener is registered at all.
	OnScroll func(ScrollEvent)
	// OnLayout receives viewport layout changes. Only the window variant
	// produces them.
	OnLayout func(LayoutEvent)
}
