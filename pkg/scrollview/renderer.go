package scrollview

import (
	"github.com/go-drift/scrollview/pkg/dom"
	"github.com/go-drift/scrollview/pkg/refresh"
)

// Renderer supplies the elements the controller attaches to. The renderer
// owns presentation and forwards lifecycle calls to the controller.
type Renderer interface {
	// Container is the outer scrolling element.
	Container() dom.ScrollElement
	// Content is the inner element an engine scrolls.
	Content() dom.ScrollElement
	// RefreshIndicator returns the indicator element, or nil when the
	// renderer draws none.
	RefreshIndicator() refresh.Indicator
}

// ElementRenderer is a Renderer over in-memory dom elements.
type ElementRenderer struct {
	ContainerElement *dom.Element
	ContentElement   *dom.Element
	Indicator        *dom.Indicator
}

// NewElementRenderer creates a renderer with fresh elements. withIndicator
// adds a refresh indicator.
func NewElementRenderer(withIndicator bool) *ElementRenderer {
	r := &ElementRenderer{
		ContainerElement: dom.NewElement("scrollview"),
		ContentElement:   dom.NewElement("scrollview-content"),
	}
	if withIndicator {
		r.Indicator = dom.NewIndicator(nil)
	}
	return r
}

// Container returns the container element.
func (r *ElementRenderer) Container() dom.ScrollElement {
	if r.ContainerElement == nil {
		return nil
	}
	return r.ContainerElement
}

// Content returns the content element.
func (r *ElementRenderer) Content() dom.ScrollElement {
	if r.ContentElement == nil {
		return nil
	}
	return r.ContentElement
}

// RefreshIndicator returns the indicator, or nil.
func (r *ElementRenderer) RefreshIndicator() refresh.Indicator {
	if r.Indicator == nil {
		return nil
	}
	return r.Indicator
}
