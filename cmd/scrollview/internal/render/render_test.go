package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/scrollview/pkg/dom"
	"github.com/go-drift/scrollview/pkg/scrollsource"
	"github.com/go-drift/scrollview/pkg/scrollview"
)

func TestIndicatorLabel(t *testing.T) {
	assert.Equal(t, "hidden", IndicatorLabel(dom.IndicatorState{}))
	assert.Equal(t, "armed", IndicatorLabel(dom.IndicatorState{Active: true}))
	assert.Equal(t, "loading", IndicatorLabel(dom.IndicatorState{Active: true, Loading: true}))
	assert.Equal(t, "loading", IndicatorLabel(dom.IndicatorState{Loading: true}))
}

func TestPrinter_Lines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Step(0, "pull", "distance=120")
	p.Scroll(16*time.Millisecond, scrollview.ScrollEvent{Left: 0, Top: -60, Variant: scrollsource.VariantEngine})
	p.Layout(20*time.Millisecond, scrollview.LayoutEvent{Width: 800, Height: 600})
	p.Indicator(1000*time.Millisecond, dom.IndicatorState{Active: true, Loading: true})
	p.Refresh(1000*time.Millisecond, "started")
	p.Warn(1200*time.Millisecond, "nothing to release")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "     0ms  step      pull distance=120", lines[0])
	assert.Equal(t, "    16ms  scroll    left=0 top=-60 (engine)", lines[1])
	assert.Equal(t, "    20ms  layout    800x600", lines[2])
	assert.Equal(t, "  1000ms  indicator ⟳ loading", lines[3])
	assert.Equal(t, "  1000ms  refresh   started", lines[4])
	assert.Equal(t, "  1200ms  warn      nothing to release", lines[5])
}
