package session

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/scrollview/cmd/scrollview/internal/config"
	"github.com/go-drift/scrollview/cmd/scrollview/internal/render"
	"github.com/go-drift/scrollview/pkg/refresh"
	"github.com/go-drift/scrollview/pkg/scrollsource"
	drifttest "github.com/go-drift/scrollview/pkg/testing"
)

func parse(t *testing.T, src string) *config.File {
	t.Helper()
	f, err := config.Parse([]byte(src), config.FormatYAML)
	require.NoError(t, err)
	return f
}

func linesWith(out, label string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if fields := strings.Fields(line); len(fields) > 1 && fields[1] == label {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines
}

func TestSimulate_GesturePull(t *testing.T) {
	f := parse(t, `
useEngineScroll: true
scrollEventThrottle: 16
refreshControl:
  distanceToRefresh: 50
  refreshDuration: 300
content:
  height: 2000
steps:
  - action: pull
    distance: 120
  - action: release
  - action: wait
    duration: 2000
`)
	var buf bytes.Buffer
	s := Simulate(f, render.NewPrinter(&buf), zerolog.Nop())
	out := buf.String()

	assert.Equal(t, scrollsource.VariantEngine, s.Controller().Variant())
	assert.Equal(t, refresh.Idle, s.Controller().RefreshState())
	assert.False(t, s.HostRefreshing())

	assert.Equal(t, []string{
		"0ms  indicator ↓ armed",
		"0ms  indicator ⟳ loading",
		"1000ms  indicator ↓ armed",
		"1000ms  indicator · hidden",
	}, linesWith(out, "indicator"))
	assert.Equal(t, []string{
		"0ms  refresh   started",
		"300ms  refresh   host done",
	}, linesWith(out, "refresh"))
	assert.Equal(t, []string{
		"0ms  scroll    left=0 top=-60 (engine)",
		"16ms  scroll    left=0 top=-50 (engine)",
		"1000ms  scroll    left=0 top=0 (engine)",
	}, linesWith(out, "scroll"))
}

func TestSimulate_HostDrivenRefresh(t *testing.T) {
	f := parse(t, `
refreshControl:
  refreshing: true
steps:
  - action: wait
    duration: 200
  - action: refreshing
    value: false
`)
	var buf bytes.Buffer
	s := Simulate(f, render.NewPrinter(&buf), zerolog.Nop())

	assert.Equal(t, refresh.Idle, s.Controller().RefreshState())
	assert.Equal(t, []string{
		"0ms  indicator ⟳ loading",
		"1000ms  indicator · hidden",
	}, linesWith(buf.String(), "indicator"))
}

func TestSimulate_HostRefreshOutlastsMinimum(t *testing.T) {
	f := parse(t, `
refreshControl:
  refreshing: true
steps:
  - action: wait
    duration: 1500
  - action: complete
`)
	var buf bytes.Buffer
	Simulate(f, render.NewPrinter(&buf), zerolog.Nop())
	assert.Contains(t, linesWith(buf.String(), "indicator"), "1500ms  indicator · hidden")
}

func TestSimulate_BodyScrollAndResize(t *testing.T) {
	f := parse(t, `
useBodyScroll: true
scrollEventThrottle: 100
steps:
  - action: scroll
    y: 40
  - action: scrollTo
    y: 80
  - action: resize
    width: 1024
    height: 768
  - action: wait
    duration: 500
`)
	var buf bytes.Buffer
	s := Simulate(f, render.NewPrinter(&buf), zerolog.Nop())
	out := buf.String()

	assert.Equal(t, scrollsource.VariantWindow, s.Controller().Variant())
	assert.Equal(t, []string{
		"0ms  scroll    left=0 top=40 (window)",
		"100ms  scroll    left=0 top=80 (window)",
	}, linesWith(out, "scroll"))
	assert.Equal(t, []string{"0ms  layout    1024x768"}, linesWith(out, "layout"))
}

func TestSimulate_ElementScrollWithoutThrottle(t *testing.T) {
	f := parse(t, `
steps:
  - action: scroll
    y: 40
`)
	var buf bytes.Buffer
	s := Simulate(f, render.NewPrinter(&buf), zerolog.Nop())
	assert.Equal(t, scrollsource.VariantElement, s.Controller().Variant())
	assert.Empty(t, linesWith(buf.String(), "scroll"))
	assert.Equal(t, 40.0, s.Renderer().ContainerElement.ScrollTop())
}

func TestApply_PullWithoutEngineWarns(t *testing.T) {
	loop := drifttest.NewLoop()
	var buf bytes.Buffer
	f := &config.File{}
	f.ApplyDefaults()
	s := New(loop.Scheduler, f, render.NewPrinter(&buf), zerolog.Nop())
	s.Mount()

	err := s.Apply(config.Step{Action: config.ActionPull, Distance: 100})
	require.ErrorContains(t, err, "no scroll engine mounted")
	assert.Len(t, linesWith(buf.String(), "warn"), 1)

	err = s.Apply(config.Step{Action: config.ActionComplete})
	require.ErrorContains(t, err, "no refresh control")
}

func TestReload_AppliesRefreshingFlag(t *testing.T) {
	loop := drifttest.NewLoop()
	var buf bytes.Buffer
	f := parse(t, `
refreshControl:
  distanceToRefresh: 40
`)
	s := New(loop.Scheduler, f, render.NewPrinter(&buf), zerolog.Nop())
	s.Mount()

	next := parse(t, `
refreshControl:
  distanceToRefresh: 40
  refreshing: true
`)
	s.Reload(next)
	assert.Equal(t, refresh.Loading, s.Controller().RefreshState())
	assert.True(t, s.HostRefreshing())

	loop.Advance(1200 * time.Millisecond)
	assert.Equal(t, refresh.Loading, s.Controller().RefreshState(), "waits for the host")

	s.Reload(f)
	loop.Flush()
	assert.Equal(t, refresh.Idle, s.Controller().RefreshState())

	s.Unmount()
	assert.Zero(t, loop.Scheduler.PendingTimers())
}
