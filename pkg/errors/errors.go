// Package errors provides structured error reporting for the scroll view core.
//
// The core never returns errors to its host: misconfiguration degrades to a
// deterministic fallback and panics in host callbacks are recovered. Both are
// surfaced here instead, through a process-wide [ErrorHandler].
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a configuration that had to be corrected or ignored.
	KindConfig
	// KindAdapter indicates a scroll source could not be attached as requested.
	KindAdapter
	// KindRefresh indicates a pull-to-refresh lifecycle problem.
	KindRefresh
	// KindCallback indicates a host callback panicked.
	KindCallback
	// KindPanic indicates a panic recovered inside the core itself.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindAdapter:
		return "adapter"
	case KindRefresh:
		return "refresh"
	case KindCallback:
		return "callback"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ScrollError represents a structured error in the scroll view core.
type ScrollError struct {
	// Op is the operation that failed (e.g., "scrollview.Mount").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Variant is the scroll source variant in use, if applicable.
	Variant string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ScrollError) Error() string {
	if e.Variant != "" {
		return fmt.Sprintf("%s [%s] variant=%s: %v", e.Op, e.Kind, e.Variant, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ScrollError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "refresh.OnRefresh").
	Op string
	// Kind is KindCallback for a host callback and KindPanic otherwise.
	Kind ErrorKind
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the scroll view core.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ScrollError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
