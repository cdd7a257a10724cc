package dom

import "sync"

// Element is an in-memory ScrollElement.
type Element struct {
	// Name identifies the element in logs and test output.
	Name string

	listeners listenerSet

	mu         sync.Mutex
	scrollLeft float64
	scrollTop  float64
}

// NewElement creates an element with the given name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// AddEventListener registers a listener on the element.
func (e *Element) AddEventListener(eventType string, listener Listener) func() {
	return e.listeners.add(eventType, listener)
}

// ListenerCount returns the number of listeners registered for eventType.
func (e *Element) ListenerCount(eventType string) int {
	return e.listeners.count(eventType)
}

// TotalListeners returns the number of listeners across all event types.
func (e *Element) TotalListeners() int {
	return e.listeners.total()
}

// ScrollLeft returns the horizontal scroll offset.
func (e *Element) ScrollLeft() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrollLeft
}

// ScrollTop returns the vertical scroll offset.
func (e *Element) ScrollTop() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrollTop
}

// SetScrollLeft sets the horizontal offset and dispatches a scroll event if
// it changed.
func (e *Element) SetScrollLeft(v float64) {
	e.update(func() { e.scrollLeft = v })
}

// SetScrollTop sets the vertical offset and dispatches a scroll event if it
// changed.
func (e *Element) SetScrollTop(v float64) {
	e.update(func() { e.scrollTop = v })
}

// SetScrollOffset sets both offsets and dispatches a single scroll event if
// either changed.
func (e *Element) SetScrollOffset(left, top float64) {
	e.update(func() {
		e.scrollLeft = left
		e.scrollTop = top
	})
}

// update applies set under the lock and dispatches one scroll event if the
// offsets moved.
func (e *Element) update(set func()) {
	e.mu.Lock()
	left, top := e.scrollLeft, e.scrollTop
	set()
	changed := e.scrollLeft != left || e.scrollTop != top
	e.mu.Unlock()
	if changed {
		e.listeners.dispatch(Event{Type: EventScroll, Target: e})
	}
}

// Dispatch sends an arbitrary event to the element's listeners.
func (e *Element) Dispatch(eventType string) {
	e.listeners.dispatch(Event{Type: eventType, Target: e})
}
