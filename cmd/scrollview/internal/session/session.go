// Package session hosts a scroll view controller over in-memory DOM for a
// scenario file and replays the scenario's steps against it.
//
// A Session plays the host: it owns the refreshing flag, answers OnRefresh
// and prints every event the controller delivers. All methods except Play
// must be called on the session's scheduler loop.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-drift/scrollview/cmd/scrollview/internal/config"
	"github.com/go-drift/scrollview/cmd/scrollview/internal/render"
	"github.com/go-drift/scrollview/pkg/dom"
	"github.com/go-drift/scrollview/pkg/scheduler"
	"github.com/go-drift/scrollview/pkg/scroller"
	"github.com/go-drift/scrollview/pkg/scrollsource"
	"github.com/go-drift/scrollview/pkg/scrollview"
	drifttest "github.com/go-drift/scrollview/pkg/testing"
)

// settleLimit bounds how far Simulate advances fake time after the last step.
const settleLimit = time.Minute

// Session is one mounted scenario.
type Session struct {
	sched    *scheduler.Scheduler
	file     *config.File
	window   *dom.Window
	renderer *scrollview.ElementRenderer
	ctrl     *scrollview.Controller
	printer  *render.Printer
	start    time.Time

	hostRefreshing bool
	hostTimer      *scheduler.Timer
}

// New creates an unmounted session.
func New(sched *scheduler.Scheduler, file *config.File, printer *render.Printer, logger zerolog.Logger) *Session {
	s := &Session{
		sched:   sched,
		file:    file,
		window:  dom.NewWindow(file.Viewport.Width, file.Viewport.Height),
		printer: printer,
		start:   sched.Now(),
	}
	s.renderer = &scrollview.ElementRenderer{
		ContainerElement: dom.NewElement("scrollview"),
		ContentElement:   dom.NewElement("scrollview-content"),
	}
	s.renderer.Indicator = dom.NewIndicator(s.onIndicator)
	if rc := file.RefreshControl; rc != nil {
		s.hostRefreshing = rc.Refreshing
	}
	s.ctrl = scrollview.New(s.renderer, s.config(),
		scrollview.WithScheduler(sched),
		scrollview.WithViewport(s.window),
		scrollview.WithLogger(logger),
	)
	return s
}

// Controller returns the hosted controller.
func (s *Session) Controller() *scrollview.Controller {
	return s.ctrl
}

// Window returns the session's global viewport.
func (s *Session) Window() *dom.Window {
	return s.window
}

// Renderer returns the session's elements.
func (s *Session) Renderer() *scrollview.ElementRenderer {
	return s.renderer
}

// HostRefreshing reports the host's refreshing flag.
func (s *Session) HostRefreshing() bool {
	return s.hostRefreshing
}

// Elapsed returns the scheduler time since the session was created.
func (s *Session) Elapsed() time.Duration {
	return s.sched.Now().Sub(s.start)
}

// Mount mounts the controller.
func (s *Session) Mount() {
	s.ctrl.Mount()
	s.printer.Step(s.Elapsed(), "mount", "variant="+s.ctrl.Variant().String())
}

// Unmount cancels the host's pending refresh and unmounts the controller.
func (s *Session) Unmount() {
	s.stopHostTimer()
	s.ctrl.Unmount()
	s.printer.Step(s.Elapsed(), "unmount", "")
}

// Reload applies a changed scenario file. The strategy flags only take
// effect on the next mount; the refreshing flag is applied as the host's.
func (s *Session) Reload(file *config.File) {
	s.file = file
	if rc := file.RefreshControl; rc != nil && rc.Refreshing != s.hostRefreshing {
		if !rc.Refreshing {
			s.stopHostTimer()
		}
		s.hostRefreshing = rc.Refreshing
	}
	s.printer.Step(s.Elapsed(), "reload", "")
	s.ctrl.Update(s.config())
}

// Apply performs one step. Wait steps are only printed; the caller moves
// time forward. A step that cannot run is printed as a warning and returned.
func (s *Session) Apply(step config.Step) error {
	s.printer.Step(s.Elapsed(), step.Action, describe(step))
	err := s.apply(step)
	if err != nil {
		s.printer.Warn(s.Elapsed(), err.Error())
	}
	return err
}

func (s *Session) apply(step config.Step) error {
	switch step.Action {
	case config.ActionScroll:
		return s.userScroll(step.X, step.Y)
	case config.ActionScrollTo:
		s.ctrl.ScrollTo(step.X, step.Y)
	case config.ActionResize:
		s.window.Resize(step.Width, step.Height)
	case config.ActionPull:
		engine, err := s.engine()
		if err != nil {
			return err
		}
		engine.BeginDrag()
		engine.DragBy(0, step.Distance)
	case config.ActionRelease:
		engine, err := s.engine()
		if err != nil {
			return err
		}
		engine.EndDrag()
	case config.ActionRefreshing:
		s.setHostRefreshing(step.Value)
	case config.ActionComplete:
		coord := s.ctrl.Coordinator()
		if coord == nil {
			return fmt.Errorf("no refresh control mounted")
		}
		coord.Complete()
	case config.ActionWait:
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}

// userScroll moves the active source the way a user would.
func (s *Session) userScroll(x, y float64) error {
	switch s.ctrl.Variant() {
	case scrollsource.VariantWindow:
		s.window.ScrollTo(x, y)
	case scrollsource.VariantEngine:
		engine, err := s.engine()
		if err != nil {
			return err
		}
		left, top := engine.Offset()
		engine.BeginDrag()
		engine.DragBy(left-x, top-y)
		engine.EndDrag()
	default:
		s.renderer.ContainerElement.SetScrollOffset(x, y)
	}
	return nil
}

func (s *Session) engine() (*scroller.Scroller, error) {
	engine, ok := s.ctrl.Engine().(*scroller.Scroller)
	if !ok {
		return nil, fmt.Errorf("no scroll engine mounted (variant %s)", s.ctrl.Variant())
	}
	return engine, nil
}

func (s *Session) config() scrollview.Config {
	cfg := s.file.ScrollConfig()
	cfg.OnScroll = s.onScroll
	cfg.OnLayout = s.onLayout
	if rc := cfg.RefreshControl; rc != nil {
		rc.OnRefresh = s.onRefresh
		rc.Refreshing = s.hostRefreshing
	}
	return cfg
}

func (s *Session) setHostRefreshing(v bool) {
	if !v {
		s.stopHostTimer()
	}
	s.hostRefreshing = v
	s.ctrl.Update(s.config())
}

func (s *Session) stopHostTimer() {
	if s.hostTimer != nil {
		s.hostTimer.Stop()
		s.hostTimer = nil
	}
}

func (s *Session) onScroll(ev scrollview.ScrollEvent) {
	s.printer.Scroll(s.Elapsed(), ev)
}

func (s *Session) onLayout(ev scrollview.LayoutEvent) {
	s.printer.Layout(s.Elapsed(), ev)
}

func (s *Session) onIndicator(state dom.IndicatorState) {
	s.printer.Indicator(s.Elapsed(), state)
}

// onRefresh mirrors the refresh in the host flag and, when the scenario
// gives a refresh duration, lowers the flag again after it.
func (s *Session) onRefresh() <-chan struct{} {
	s.printer.Refresh(s.Elapsed(), "started")
	if !s.hostRefreshing {
		s.setHostRefreshing(true)
	}
	var d time.Duration
	if rc := s.file.RefreshControl; rc != nil {
		d = time.Duration(rc.RefreshDuration) * time.Millisecond
	}
	if d > 0 {
		s.stopHostTimer()
		s.hostTimer = s.sched.AfterFunc(d, func() {
			s.hostTimer = nil
			s.printer.Refresh(s.Elapsed(), "host done")
			s.setHostRefreshing(false)
		})
	}
	return nil
}

// Simulate mounts a session on a fake clock, replays the file's steps and
// runs remaining timers. The session is left mounted.
func Simulate(file *config.File, printer *render.Printer, logger zerolog.Logger) *Session {
	loop := drifttest.NewLoop()
	s := New(loop.Scheduler, file, printer, logger)
	s.Mount()
	loop.Flush()
	for _, step := range file.Steps {
		_ = s.Apply(step)
		loop.Flush()
		if step.Action == config.ActionWait {
			loop.Advance(step.Wait())
		}
	}

	limit := loop.Elapsed() + settleLimit
	for {
		next, ok := loop.Scheduler.NextDeadline()
		if !ok {
			break
		}
		d := max(next.Sub(loop.Clock.Now()), 0)
		if loop.Elapsed()+d > limit {
			printer.Warn(loop.Elapsed(), "timers still pending after settling")
			break
		}
		loop.Advance(d)
	}
	return s
}

// Play replays steps in real time and may be called from any goroutine.
// Each step is posted to the session's loop; wait steps also sleep. It
// returns when the steps are exhausted or ctx is done.
func (s *Session) Play(ctx context.Context, steps []config.Step) error {
	for _, step := range steps {
		s.sched.Post(func() { _ = s.Apply(step) })
		if step.Action != config.ActionWait {
			continue
		}
		t := time.NewTimer(step.Wait())
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}

func describe(step config.Step) string {
	switch step.Action {
	case config.ActionScroll, config.ActionScrollTo:
		return fmt.Sprintf("x=%g y=%g", step.X, step.Y)
	case config.ActionResize:
		return fmt.Sprintf("%gx%g", step.Width, step.Height)
	case config.ActionPull:
		return fmt.Sprintf("distance=%g", step.Distance)
	case config.ActionRefreshing:
		return fmt.Sprintf("value=%t", step.Value)
	case config.ActionWait:
		return step.Wait().String()
	default:
		return ""
	}
}
