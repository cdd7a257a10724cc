package scrollsource

import "github.com/go-drift/scrollview/pkg/dom"

// WindowSource observes the global viewport. It is used when the container
// does not scroll itself because the whole page does.
type WindowSource struct {
	viewport dom.Viewport
	handlers Handlers

	removeScroll func()
	removeResize func()
	attached     bool
}

// NewWindowSource creates an adapter over viewport.
func NewWindowSource(viewport dom.Viewport, handlers Handlers) *WindowSource {
	return &WindowSource{viewport: viewport, handlers: handlers}
}

// Variant returns VariantWindow.
func (s *WindowSource) Variant() Variant { return VariantWindow }

// Attach registers the scroll and resize listeners on the viewport.
func (s *WindowSource) Attach() {
	if s.attached || s.viewport == nil {
		return
	}
	s.attached = true
	if s.handlers.OnScroll != nil {
		s.removeScroll = s.viewport.AddEventListener(dom.EventScroll, s.handleScroll)
	}
	s.removeResize = s.viewport.AddEventListener(dom.EventResize, s.handleResize)
}

// Detach removes the listeners registered by Attach.
func (s *WindowSource) Detach() {
	if !s.attached {
		return
	}
	s.attached = false
	if s.removeScroll != nil {
		s.removeScroll()
		s.removeScroll = nil
	}
	if s.removeResize != nil {
		s.removeResize()
		s.removeResize = nil
	}
}

// ScrollTo scrolls the viewport.
func (s *WindowSource) ScrollTo(x, y float64) {
	if s.viewport != nil {
		s.viewport.ScrollTo(x, y)
	}
}

func (s *WindowSource) handleScroll(dom.Event) {
	if !s.attached {
		return
	}
	x, y := s.viewport.ScrollOffset()
	s.handlers.OnScroll(ScrollEvent{Left: x, Top: y, Variant: VariantWindow})
}

func (s *WindowSource) handleResize(dom.Event) {
	if !s.attached || s.handlers.OnLayout == nil {
		return
	}
	w, h := s.viewport.InnerSize()
	s.handlers.OnLayout(LayoutEvent{Width: w, Height: h})
}
