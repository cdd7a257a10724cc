package scroller

// Option keys understood by OptionsFromMap.
const (
	KeyScrollingX    = "scrollingX"
	KeyScrollingY    = "scrollingY"
	KeyBouncing      = "bouncing"
	KeyClientWidth   = "clientWidth"
	KeyClientHeight  = "clientHeight"
	KeyContentWidth  = "contentWidth"
	KeyContentHeight = "contentHeight"
)

// Options configure a Scroller.
type Options struct {
	// ScrollingX enables horizontal scrolling.
	ScrollingX bool
	// ScrollingY enables vertical scrolling.
	ScrollingY bool
	// Bouncing allows dragging past the edges with resistance.
	Bouncing bool

	ClientWidth   float64
	ClientHeight  float64
	ContentWidth  float64
	ContentHeight float64
}

// DefaultOptions returns options with both axes and bouncing enabled.
func DefaultOptions() Options {
	return Options{
		ScrollingX: true,
		ScrollingY: true,
		Bouncing:   true,
	}
}

// OptionsFromMap reads options from a loosely typed map, such as host
// configuration decoded from YAML or TOML. Unknown keys and values of the
// wrong type are ignored.
func OptionsFromMap(m map[string]any) Options {
	opts := DefaultOptions()
	readBool(m, KeyScrollingX, &opts.ScrollingX)
	readBool(m, KeyScrollingY, &opts.ScrollingY)
	readBool(m, KeyBouncing, &opts.Bouncing)
	readFloat(m, KeyClientWidth, &opts.ClientWidth)
	readFloat(m, KeyClientHeight, &opts.ClientHeight)
	readFloat(m, KeyContentWidth, &opts.ContentWidth)
	readFloat(m, KeyContentHeight, &opts.ContentHeight)
	return opts
}

func readBool(m map[string]any, key string, dst *bool) {
	if v, ok := m[key].(bool); ok {
		*dst = v
	}
}

func readFloat(m map[string]any, key string, dst *float64) {
	switch v := m[key].(type) {
	case float64:
		*dst = v
	case float32:
		*dst = float64(v)
	case int:
		*dst = float64(v)
	case int64:
		*dst = float64(v)
	case uint64:
		*dst = float64(v)
	}
}
