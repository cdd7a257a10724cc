package dom

import "sync"

// DefaultWindow is the process-wide viewport. Listeners registered on it are
// global state and must be removed by whoever added them.
var DefaultWindow = NewWindow(375, 667)

// Window is an in-memory Viewport.
type Window struct {
	listeners listenerSet

	mu      sync.Mutex
	scrollX float64
	scrollY float64
	width   float64
	height  float64
}

// NewWindow creates a window with the given inner size.
func NewWindow(width, height float64) *Window {
	return &Window{width: width, height: height}
}

// AddEventListener registers a listener on the window.
func (w *Window) AddEventListener(eventType string, listener Listener) func() {
	return w.listeners.add(eventType, listener)
}

// ListenerCount returns the number of listeners registered for eventType.
func (w *Window) ListenerCount(eventType string) int {
	return w.listeners.count(eventType)
}

// TotalListeners returns the number of listeners across all event types.
func (w *Window) TotalListeners() int {
	return w.listeners.total()
}

// ScrollTo sets the scroll offsets and dispatches a scroll event if they
// changed. Negative offsets clamp to zero.
func (w *Window) ScrollTo(x, y float64) {
	x, y = max(x, 0), max(y, 0)
	w.mu.Lock()
	changed := w.scrollX != x || w.scrollY != y
	w.scrollX = x
	w.scrollY = y
	w.mu.Unlock()
	if changed {
		w.listeners.dispatch(Event{Type: EventScroll, Target: w})
	}
}

// ScrollOffset returns the current scroll offsets.
func (w *Window) ScrollOffset() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scrollX, w.scrollY
}

// InnerSize returns the inner width and height.
func (w *Window) InnerSize() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// Resize changes the inner size and dispatches a resize event.
func (w *Window) Resize(width, height float64) {
	w.mu.Lock()
	w.width = width
	w.height = height
	w.mu.Unlock()
	w.listeners.dispatch(Event{Type: EventResize, Target: w})
}
