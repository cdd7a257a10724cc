// Package scroller is a minimal in-memory scroll engine with a
// pull-to-refresh API.
//
// It tracks a scroll position clamped to the content extents, lets callers
// simulate drags, and implements the arm/disarm/start callbacks that
// pull-to-refresh coordinators depend on. It does not simulate inertia:
// releasing a drag snaps back into range immediately.
package scroller

import (
	"github.com/go-drift/scrollview/pkg/dom"
	"github.com/go-drift/scrollview/pkg/scrollsource"
)

// Scroller is an in-memory scroll engine bound to a content element.
type Scroller struct {
	content  dom.ScrollElement
	opts     Options
	onScroll func(left, top float64)

	left    float64
	top     float64
	maxLeft float64
	maxTop  float64

	dragging bool

	refreshHeight     float64
	refreshArm        func()
	refreshDisarm     func()
	refreshStart      func()
	refreshEnabled    bool
	refreshActive     bool
	refreshInProgress bool

	destroyed bool
}

var _ scrollsource.Engine = (*Scroller)(nil)

// New creates a scroller over content. onScroll, if non-nil, is called with
// the new position after every change.
func New(content dom.ScrollElement, opts Options, onScroll func(left, top float64)) *Scroller {
	s := &Scroller{
		content:  content,
		opts:     opts,
		onScroll: onScroll,
	}
	s.SetDimensions(opts.ClientWidth, opts.ClientHeight, opts.ContentWidth, opts.ContentHeight)
	return s
}

// Factory builds Scrollers for scrollsource.EngineSource.
func Factory(content dom.ScrollElement, opts scrollsource.EngineOptions, onScroll func(left, top float64)) scrollsource.Engine {
	return New(content, OptionsFromMap(opts), onScroll)
}

// SetDimensions updates the viewport and content sizes and re-clamps the
// current position.
func (s *Scroller) SetDimensions(clientWidth, clientHeight, contentWidth, contentHeight float64) {
	s.opts.ClientWidth = clientWidth
	s.opts.ClientHeight = clientHeight
	s.opts.ContentWidth = contentWidth
	s.opts.ContentHeight = contentHeight
	s.maxLeft = max(contentWidth-clientWidth, 0)
	s.maxTop = max(contentHeight-clientHeight, 0)
	if !s.dragging && !s.refreshInProgress {
		left, top := s.clamp(s.left, s.top)
		if left != s.left || top != s.top {
			s.publish(left, top)
		}
	}
}

// Offset returns the current scroll position.
func (s *Scroller) Offset() (left, top float64) {
	return s.left, s.top
}

// Options returns the active options.
func (s *Scroller) Options() Options {
	return s.opts
}

// Destroyed reports whether Destroy has been called.
func (s *Scroller) Destroyed() bool {
	return s.destroyed
}

// ScrollTo moves to (x, y), clamped to the content extents. Disabled axes
// keep their current value.
func (s *Scroller) ScrollTo(x, y float64) {
	if s.destroyed {
		return
	}
	if !s.opts.ScrollingX {
		x = s.left
	}
	if !s.opts.ScrollingY {
		y = s.top
	}
	x, y = s.clamp(x, y)
	s.publish(x, y)
}

// Destroy detaches the scroller. Later calls and pending callbacks are ignored.
func (s *Scroller) Destroy() {
	s.destroyed = true
	s.onScroll = nil
	s.refreshArm = nil
	s.refreshDisarm = nil
	s.refreshStart = nil
	s.refreshEnabled = false
}

// ActivatePullToRefresh enables pull-to-refresh at the given pull distance.
func (s *Scroller) ActivatePullToRefresh(threshold float64, onArm, onDisarm, onThresholdCrossed func()) {
	if s.destroyed {
		return
	}
	s.refreshHeight = threshold
	s.refreshArm = onArm
	s.refreshDisarm = onDisarm
	s.refreshStart = onThresholdCrossed
	s.refreshEnabled = true
}

// TriggerPullToRefresh moves to the refresh position and starts a refresh
// as if the user had pulled past the threshold.
func (s *Scroller) TriggerPullToRefresh() {
	if s.destroyed || !s.refreshEnabled || s.refreshInProgress {
		return
	}
	s.publish(s.left, -s.refreshHeight)
	s.refreshInProgress = true
	if s.refreshStart != nil {
		s.refreshStart()
	}
}

// FinishPullToRefresh ends a refresh and snaps back into range.
func (s *Scroller) FinishPullToRefresh() {
	if s.destroyed {
		return
	}
	s.refreshActive = false
	s.refreshInProgress = false
	if s.refreshDisarm != nil {
		s.refreshDisarm()
	}
	if s.destroyed {
		return
	}
	left, top := s.clamp(s.left, s.top)
	s.publish(left, top)
}

// Refreshing reports whether a refresh started by the scroller is running.
func (s *Scroller) Refreshing() bool {
	return s.refreshInProgress
}

// BeginDrag starts a simulated touch drag.
func (s *Scroller) BeginDrag() {
	if s.destroyed {
		return
	}
	s.dragging = true
}

// DragBy moves the content with the finger by (dx, dy). Positive dy pulls
// the content down. Past the edges movement is halved when bouncing and
// stopped otherwise.
func (s *Scroller) DragBy(dx, dy float64) {
	if s.destroyed || !s.dragging {
		return
	}
	left, top := s.left, s.top
	if s.opts.ScrollingX {
		left = s.applyDrag(left, -dx, s.maxLeft)
	}
	if s.opts.ScrollingY {
		top = s.applyDrag(top, -dy, s.maxTop)
	}
	s.publish(left, top)
	s.checkRefreshThreshold()
}

// EndDrag releases the simulated touch. A pull released past the threshold
// starts a refresh; otherwise the position snaps back into range.
func (s *Scroller) EndDrag() {
	if s.destroyed || !s.dragging {
		return
	}
	s.dragging = false
	if s.refreshActive && !s.refreshInProgress && s.refreshStart != nil {
		s.publish(s.left, -s.refreshHeight)
		s.refreshInProgress = true
		s.refreshStart()
		return
	}
	if s.refreshInProgress {
		s.publish(s.left, -s.refreshHeight)
		return
	}
	left, top := s.clamp(s.left, s.top)
	s.publish(left, top)
}

func (s *Scroller) applyDrag(value, delta, maxValue float64) float64 {
	next := value + delta
	if next >= 0 && next <= maxValue {
		return next
	}
	if !s.opts.Bouncing {
		return min(max(next, 0), maxValue)
	}
	return value + delta/2
}

func (s *Scroller) checkRefreshThreshold() {
	if !s.refreshEnabled || s.refreshInProgress {
		return
	}
	pulled := s.top <= -s.refreshHeight
	switch {
	case pulled && !s.refreshActive:
		s.refreshActive = true
		if s.refreshArm != nil {
			s.refreshArm()
		}
	case !pulled && s.refreshActive:
		s.refreshActive = false
		if s.refreshDisarm != nil {
			s.refreshDisarm()
		}
	}
}

func (s *Scroller) clamp(left, top float64) (float64, float64) {
	return min(max(left, 0), s.maxLeft), min(max(top, 0), s.maxTop)
}

func (s *Scroller) publish(left, top float64) {
	if left == s.left && top == s.top {
		return
	}
	s.left = left
	s.top = top
	if s.content != nil {
		s.content.SetScrollOffset(left, top)
	}
	if s.onScroll != nil {
		s.onScroll(left, top)
	}
}
