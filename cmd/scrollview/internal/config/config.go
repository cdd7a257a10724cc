// Package config loads scroll view scenario files for the scrollview CLI.
//
// A scenario describes one scroll view configuration plus a list of steps
// to replay against it. Files are YAML (.yaml, .yml) or TOML (.toml).
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/scrollview/pkg/scroller"
	"github.com/go-drift/scrollview/pkg/scrollview"
)

// Defaults applied by Load.
const (
	DefaultViewportWidth     = 375
	DefaultViewportHeight    = 667
	DefaultDistanceToRefresh = 50
)

// Step actions.
const (
	ActionScroll     = "scroll"
	ActionScrollTo   = "scrollTo"
	ActionResize     = "resize"
	ActionPull       = "pull"
	ActionRelease    = "release"
	ActionRefreshing = "refreshing"
	ActionComplete   = "complete"
	ActionWait       = "wait"
)

var knownActions = map[string]bool{
	ActionScroll:     true,
	ActionScrollTo:   true,
	ActionResize:     true,
	ActionPull:       true,
	ActionRelease:    true,
	ActionRefreshing: true,
	ActionComplete:   true,
	ActionWait:       true,
}

// File is a parsed scenario file.
type File struct {
	UseEngineScroll bool `yaml:"useEngineScroll" toml:"useEngineScroll"`
	StickyHeader    bool `yaml:"stickyHeader" toml:"stickyHeader"`
	UseBodyScroll   bool `yaml:"useBodyScroll" toml:"useBodyScroll"`

	// ScrollEventThrottle is in milliseconds.
	ScrollEventThrottle int `yaml:"scrollEventThrottle" toml:"scrollEventThrottle"`

	RefreshControl *RefreshControl `yaml:"refreshControl,omitempty" toml:"refreshControl,omitempty"`
	EngineOptions  map[string]any  `yaml:"engineOptions,omitempty" toml:"engineOptions,omitempty"`

	Viewport Size `yaml:"viewport" toml:"viewport"`
	Content  Size `yaml:"content" toml:"content"`

	Steps []Step `yaml:"steps" toml:"steps"`
}

// RefreshControl enables pull-to-refresh in a scenario.
type RefreshControl struct {
	DistanceToRefresh float64 `yaml:"distanceToRefresh" toml:"distanceToRefresh"`
	Refreshing        bool    `yaml:"refreshing" toml:"refreshing"`
	// RefreshDuration is how long the simulated host takes to refresh, in
	// milliseconds. Zero leaves completion to the scenario's steps.
	RefreshDuration int `yaml:"refreshDuration" toml:"refreshDuration"`
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Step is one scenario action. Which fields apply depends on Action.
type Step struct {
	Action   string  `yaml:"action" toml:"action"`
	X        float64 `yaml:"x,omitempty" toml:"x,omitempty"`
	Y        float64 `yaml:"y,omitempty" toml:"y,omitempty"`
	Distance float64 `yaml:"distance,omitempty" toml:"distance,omitempty"`
	Width    float64 `yaml:"width,omitempty" toml:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty" toml:"height,omitempty"`
	Value    bool    `yaml:"value,omitempty" toml:"value,omitempty"`
	// Duration is in milliseconds.
	Duration int `yaml:"duration,omitempty" toml:"duration,omitempty"`
}

// Wait returns the step duration.
func (s Step) Wait() time.Duration {
	return time.Duration(s.Duration) * time.Millisecond
}

// Format is a scenario file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor returns the format implied by the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported scenario file %q (use .yaml, .yml or .toml)", filepath.Base(path))
	}
}

// Load reads, defaults and validates a scenario file.
func Load(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return f, nil
}

// Parse decodes, defaults and validates scenario data.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	f.ApplyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// ApplyDefaults fills unset sizes and the refresh distance.
func (f *File) ApplyDefaults() {
	if f.Viewport.Width == 0 {
		f.Viewport.Width = DefaultViewportWidth
	}
	if f.Viewport.Height == 0 {
		f.Viewport.Height = DefaultViewportHeight
	}
	if f.Content.Width == 0 {
		f.Content.Width = f.Viewport.Width
	}
	if f.Content.Height == 0 {
		f.Content.Height = f.Viewport.Height
	}
	if f.RefreshControl != nil && f.RefreshControl.DistanceToRefresh == 0 {
		f.RefreshControl.DistanceToRefresh = DefaultDistanceToRefresh
	}
}

// EngineVariant reports whether the flags select engine scrolling.
func (f *File) EngineVariant() bool {
	return f.UseEngineScroll && !f.StickyHeader && !f.UseBodyScroll
}

// Validate checks values and steps. All problems are returned together.
func (f *File) Validate() error {
	var errs []error
	if f.ScrollEventThrottle < 0 {
		errs = append(errs, fmt.Errorf("scrollEventThrottle must not be negative"))
	}
	if rc := f.RefreshControl; rc != nil {
		if rc.DistanceToRefresh < 0 {
			errs = append(errs, fmt.Errorf("refreshControl.distanceToRefresh must not be negative"))
		}
		if rc.RefreshDuration < 0 {
			errs = append(errs, fmt.Errorf("refreshControl.refreshDuration must not be negative"))
		}
	}
	if f.Viewport.Width < 0 || f.Viewport.Height < 0 {
		errs = append(errs, fmt.Errorf("viewport size must not be negative"))
	}
	if f.Content.Width < 0 || f.Content.Height < 0 {
		errs = append(errs, fmt.Errorf("content size must not be negative"))
	}
	for i, step := range f.Steps {
		if err := f.validateStep(step); err != nil {
			errs = append(errs, fmt.Errorf("steps[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (f *File) validateStep(step Step) error {
	if !knownActions[step.Action] {
		return fmt.Errorf("unknown action %q", step.Action)
	}
	switch step.Action {
	case ActionPull, ActionRelease:
		if !f.EngineVariant() {
			return fmt.Errorf("%s requires engine scrolling", step.Action)
		}
		if step.Distance < 0 {
			return fmt.Errorf("pull distance must not be negative")
		}
	case ActionResize:
		if step.Width <= 0 || step.Height <= 0 {
			return fmt.Errorf("resize needs a positive width and height")
		}
	case ActionWait:
		if step.Duration < 0 {
			return fmt.Errorf("wait duration must not be negative")
		}
	case ActionRefreshing, ActionComplete:
		if f.RefreshControl == nil {
			return fmt.Errorf("%s requires refreshControl", step.Action)
		}
	}
	return nil
}

// ScrollConfig converts the file into a controller configuration. Callbacks
// are left for the caller to attach. For engine scrolling, viewport and
// content sizes become engine dimensions unless engineOptions sets them.
func (f *File) ScrollConfig() scrollview.Config {
	cfg := scrollview.Config{
		UseEngineScroll:     f.UseEngineScroll,
		StickyHeader:        f.StickyHeader,
		UseBodyScroll:       f.UseBodyScroll,
		ScrollEventThrottle: time.Duration(f.ScrollEventThrottle) * time.Millisecond,
	}
	if rc := f.RefreshControl; rc != nil {
		cfg.RefreshControl = &scrollview.RefreshSpec{
			DistanceToRefresh: rc.DistanceToRefresh,
			Refreshing:        rc.Refreshing,
		}
	}
	if f.UseEngineScroll {
		opts := map[string]any{
			scroller.KeyClientWidth:   f.Viewport.Width,
			scroller.KeyClientHeight:  f.Viewport.Height,
			scroller.KeyContentWidth:  f.Content.Width,
			scroller.KeyContentHeight: f.Content.Height,
		}
		maps.Copy(opts, f.EngineOptions)
		cfg.EngineOptions = opts
	} else if len(f.EngineOptions) > 0 {
		cfg.EngineOptions = f.EngineOptions
	}
	return cfg
}
