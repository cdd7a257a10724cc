// Package render formats scroll view events for the terminal.
package render

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/scrollview/pkg/dom"
	"github.com/go-drift/scrollview/pkg/scrollview"
)

// Event labels.
const (
	LabelStep      = "step"
	LabelScroll    = "scroll"
	LabelLayout    = "layout"
	LabelIndicator = "indicator"
	LabelRefresh   = "refresh"
	LabelWarn      = "warn"
)

// IndicatorLabel names an indicator state.
func IndicatorLabel(s dom.IndicatorState) string {
	switch {
	case s.Loading:
		return "loading"
	case s.Active:
		return "armed"
	default:
		return "hidden"
	}
}

// indicatorGlyph is drawn before the indicator label.
func indicatorGlyph(s dom.IndicatorState) string {
	switch {
	case s.Loading:
		return "⟳"
	case s.Active:
		return "↓"
	default:
		return "·"
	}
}

type styles struct {
	time      lipgloss.Style
	label     lipgloss.Style
	detail    lipgloss.Style
	armed     lipgloss.Style
	loading   lipgloss.Style
	hidden    lipgloss.Style
	warn      lipgloss.Style
	refreshOn lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		time:      r.NewStyle().Foreground(lipgloss.Color("243")),
		label:     r.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		detail:    r.NewStyle(),
		armed:     r.NewStyle().Foreground(lipgloss.Color("214")),
		loading:   r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		hidden:    r.NewStyle().Foreground(lipgloss.Color("240")),
		warn:      r.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		refreshOn: r.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

// Printer writes one line per event. It is safe for concurrent use.
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	styles styles
}

// NewPrinter creates a printer writing to w. Colors are used only when w
// is a terminal that supports them.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, styles: newStyles(lipgloss.NewRenderer(w))}
}

// Step prints a replayed scenario step.
func (p *Printer) Step(at time.Duration, action, detail string) {
	p.line(at, LabelStep, p.styles.detail.Render(joinDetail(action, detail)))
}

// Scroll prints a delivered scroll event.
func (p *Printer) Scroll(at time.Duration, ev scrollview.ScrollEvent) {
	p.line(at, LabelScroll, p.styles.detail.Render(
		fmt.Sprintf("left=%s top=%s (%s)", formatFloat(ev.Left), formatFloat(ev.Top), ev.Variant)))
}

// Layout prints a delivered layout event.
func (p *Printer) Layout(at time.Duration, ev scrollview.LayoutEvent) {
	p.line(at, LabelLayout, p.styles.detail.Render(
		fmt.Sprintf("%sx%s", formatFloat(ev.Width), formatFloat(ev.Height))))
}

// Indicator prints a refresh indicator transition.
func (p *Printer) Indicator(at time.Duration, s dom.IndicatorState) {
	style := p.styles.hidden
	switch {
	case s.Loading:
		style = p.styles.loading
	case s.Active:
		style = p.styles.armed
	}
	p.line(at, LabelIndicator, style.Render(indicatorGlyph(s)+" "+IndicatorLabel(s)))
}

// Refresh prints a host-side refresh event.
func (p *Printer) Refresh(at time.Duration, msg string) {
	p.line(at, LabelRefresh, p.styles.refreshOn.Render(msg))
}

// Warn prints a problem that did not stop the scenario.
func (p *Printer) Warn(at time.Duration, msg string) {
	p.line(at, LabelWarn, p.styles.warn.Render(msg))
}

func (p *Printer) line(at time.Duration, label, detail string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s  %s %s\n",
		p.styles.time.Render(fmt.Sprintf("%6dms", at.Milliseconds())),
		p.styles.label.Render(fmt.Sprintf("%-9s", label)),
		detail)
}

func joinDetail(action, detail string) string {
	if detail == "" {
		return action
	}
	return action + " " + detail
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
