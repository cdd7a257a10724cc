package scrollsource

import (
	"maps"

	"github.com/go-drift/scrollview/pkg/dom"
)

// Engine is an external scroll-physics engine bound to a content element.
type Engine interface {
	// ScrollTo moves the engine's scroll position.
	ScrollTo(x, y float64)
	// Destroy releases the engine. No callbacks fire afterwards.
	Destroy()
	// ActivatePullToRefresh enables pull-to-refresh. onArm fires when a pull
	// passes threshold, onDisarm when it falls back under it (and when a
	// refresh finishes), onThresholdCrossed when the pull is released past
	// threshold or a refresh is triggered programmatically.
	ActivatePullToRefresh(threshold float64, onArm, onDisarm, onThresholdCrossed func())
	// TriggerPullToRefresh starts a refresh without a gesture.
	TriggerPullToRefresh()
	// FinishPullToRefresh ends a running refresh and restores the position.
	FinishPullToRefresh()
}

// EngineOptions configure an engine. Keys are engine specific.
type EngineOptions map[string]any

// EngineFactory constructs an engine over content. onScroll, if non-nil,
// receives the engine's scroll position whenever it changes.
type EngineFactory func(content dom.ScrollElement, opts EngineOptions, onScroll func(left, top float64)) Engine

// OptionScrollingX is the engine option key for horizontal scrolling.
const OptionScrollingX = "scrollingX"

// MergeEngineOptions returns the default engine options overlaid with host
// options. Host values win on conflicting keys; host is not modified.
func MergeEngineOptions(host map[string]any) EngineOptions {
	opts := EngineOptions{OptionScrollingX: false}
	maps.Copy(opts, host)
	return opts
}

// EngineSource drives scrolling through an external engine built over the
// inner content element.
type EngineSource struct {
	content  dom.ScrollElement
	factory  EngineFactory
	options  EngineOptions
	handlers Handlers

	engine   Engine
	attached bool
}

// NewEngineSource creates an adapter that builds its engine with factory on
// Attach. hostOptions are merged over the defaults.
func NewEngineSource(content dom.ScrollElement, factory EngineFactory, hostOptions map[string]any, handlers Handlers) *EngineSource {
	return &EngineSource{
		content:  content,
		factory:  factory,
		options:  MergeEngineOptions(hostOptions),
		handlers: handlers,
	}
}

// Variant returns VariantEngine.
func (s *EngineSource) Variant() Variant { return VariantEngine }

// Options returns the merged options the engine is built with.
func (s *EngineSource) Options() EngineOptions {
	return maps.Clone(s.options)
}

// Engine returns the engine while attached, or nil.
func (s *EngineSource) Engine() Engine {
	return s.engine
}

// Attach constructs the engine.
func (s *EngineSource) Attach() {
	if s.attached || s.factory == nil {
		return
	}
	var onScroll func(left, top float64)
	if s.handlers.OnScroll != nil {
		onScroll = s.handleScroll
	}
	engine := s.factory(s.content, maps.Clone(s.options), onScroll)
	if engine == nil {
		return
	}
	s.engine = engine
	s.attached = true
}

// Detach destroys the engine.
func (s *EngineSource) Detach() {
	if !s.attached {
		return
	}
	s.attached = false
	engine := s.engine
	s.engine = nil
	engine.Destroy()
}

// ScrollTo delegates to the engine.
func (s *EngineSource) ScrollTo(x, y float64) {
	if s.engine != nil {
		s.engine.ScrollTo(x, y)
	}
}

func (s *EngineSource) handleScroll(left, top float64) {
	if !s.attached {
		return
	}
	s.handlers.OnScroll(ScrollEvent{Left: left, Top: top, Variant: VariantEngine})
}
