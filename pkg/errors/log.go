package errors

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/go-drift/scrollview/pkg/logging"
)

// LogHandler is an ErrorHandler that writes errors through a zerolog logger.
type LogHandler struct {
	// Verbose includes stack traces for recovered panics.
	Verbose bool

	logger zerolog.Logger
}

// NewLogHandler creates a LogHandler. A nil logger writes warnings and above
// to stderr.
func NewLogHandler(logger *zerolog.Logger) *LogHandler {
	if logger == nil {
		l := logging.New(os.Stderr, false)
		return &LogHandler{logger: l}
	}
	return &LogHandler{logger: *logger}
}

// HandleError logs a ScrollError at warn level.
func (h *LogHandler) HandleError(err *ScrollError) {
	if err == nil {
		return
	}
	ev := h.logger.Warn().
		Str("op", err.Op).
		Str("kind", err.Kind.String())
	if err.Variant != "" {
		ev = ev.Str("variant", err.Variant)
	}
	ev.Err(err.Err).Msg("scroll view error")
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.logger.Error().
		Str("op", err.Op).
		Str("kind", err.Kind.String()).
		Interface("value", err.Value)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("recovered panic")
}
