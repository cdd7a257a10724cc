package scrollsource

import "github.com/go-drift/scrollview/pkg/dom"

// ElementSource listens to scroll events on the container element.
type ElementSource struct {
	container dom.ScrollElement
	handlers  Handlers

	removeScroll func()
	attached     bool
}

// NewElementSource creates an adapter over container.
func NewElementSource(container dom.ScrollElement, handlers Handlers) *ElementSource {
	return &ElementSource{container: container, handlers: handlers}
}

// Variant returns VariantElement.
func (s *ElementSource) Variant() Variant { return VariantElement }

// Attach registers the scroll listener on the container.
func (s *ElementSource) Attach() {
	if s.attached || s.container == nil {
		return
	}
	s.attached = true
	if s.handlers.OnScroll != nil {
		s.removeScroll = s.container.AddEventListener(dom.EventScroll, s.handleScroll)
	}
}

// Detach removes the scroll listener.
func (s *ElementSource) Detach() {
	if !s.attached {
		return
	}
	s.attached = false
	if s.removeScroll != nil {
		s.removeScroll()
		s.removeScroll = nil
	}
}

// ScrollTo sets the container's scroll offsets directly.
func (s *ElementSource) ScrollTo(x, y float64) {
	if s.container == nil {
		return
	}
	s.container.SetScrollOffset(x, y)
}

func (s *ElementSource) handleScroll(dom.Event) {
	if !s.attached {
		return
	}
	s.handlers.OnScroll(ScrollEvent{
		Left:    s.container.ScrollLeft(),
		Top:     s.container.ScrollTop(),
		Variant: VariantElement,
	})
}
