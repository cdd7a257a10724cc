// Package dom defines the element and viewport abstractions the scroll view
// core attaches to, together with an in-memory implementation.
//
// The in-memory types dispatch events synchronously and expose listener
// counts, which makes attach/detach symmetry directly observable:
//
//	win := dom.NewWindow(375, 667)
//	remove := win.AddEventListener(dom.EventScroll, handler)
//	remove()
//	win.ListenerCount(dom.EventScroll) // 0
package dom

// Event types dispatched by the in-memory implementation.
const (
	EventScroll = "scroll"
	EventResize = "resize"
)

// Event is a dispatched DOM event.
type Event struct {
	// Type is the event type, such as EventScroll.
	Type string
	// Target is the object that dispatched the event.
	Target EventTarget
}

// Listener handles a dispatched event.
type Listener func(Event)

// EventTarget accepts event listeners.
type EventTarget interface {
	// AddEventListener registers listener for eventType and returns a
	// function that removes exactly that registration. The returned function
	// is safe to call more than once.
	AddEventListener(eventType string, listener Listener) (remove func())
}

// Viewport is the global scrolling viewport (the browser window).
type Viewport interface {
	EventTarget
	// ScrollTo scrolls the viewport to the given offsets.
	ScrollTo(x, y float64)
	// ScrollOffset returns the current viewport scroll offsets.
	ScrollOffset() (x, y float64)
	// InnerSize returns the viewport's inner width and height.
	InnerSize() (width, height float64)
}

// ScrollElement is an element with its own scroll offsets.
type ScrollElement interface {
	EventTarget
	ScrollLeft() float64
	ScrollTop() float64
	// SetScrollOffset moves both axes at once and dispatches at most one
	// scroll event.
	SetScrollOffset(left, top float64)
}
