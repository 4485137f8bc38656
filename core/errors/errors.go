// Package errors defines the typed error hierarchy that propagates from
// every pipeline stage to the JSON boundary. Nothing downstream of a
// pipeline stage ever sees a bare error — it is always one of these kinds.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies which of the error categories in spec.md §7 occurred.
type Kind string

const (
	KindInvalidInput    Kind = "InvalidInput"
	KindInfeasibleInput Kind = "InfeasibleInput"
	KindInfeasible      Kind = "Infeasible"
	KindEngineError     Kind = "EngineError"
	KindInternalError   Kind = "InternalError"
)

// Error is the typed error every pipeline stage returns on failure.
type Error struct {
	Kind       Kind
	Message    string
	Field      string         // optional, field-qualified context for InvalidInput
	Details    map[string]any // populated only in debug mode
	Traceback  string         // populated only in debug mode
	underlying error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.underlying
}

// WithDetails attaches debug-mode diagnostic details and returns the
// receiver for chaining.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// WithTraceback attaches a debug-mode traceback string and returns the
// receiver for chaining.
func (e *Error) WithTraceback(tb string) *Error {
	e.Traceback = tb
	return e
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// InvalidInput reports a field-qualified schema/typing/value violation.
func InvalidInput(field, format string, args ...any) *Error {
	e := newf(KindInvalidInput, format, args...)
	e.Field = field
	return e
}

// InfeasibleInput reports a structural impossibility discovered before
// solving even starts (e.g. an empty slot- or room-domain).
func InfeasibleInput(format string, args ...any) *Error {
	return newf(KindInfeasibleInput, format, args...)
}

// Infeasible reports that the solver proved the posted model UNSAT.
func Infeasible(format string, args ...any) *Error {
	return newf(KindInfeasible, format, args...)
}

// EngineErrorf reports that the constraint engine itself misbehaved
// (e.g. hit its wall-clock ceiling without reaching a verdict).
func EngineErrorf(format string, args ...any) *Error {
	return newf(KindEngineError, format, args...)
}

// Internal reports any uncaught bug, wrapping the originating error.
func Internal(err error) *Error {
	e := newf(KindInternalError, "internal error: %v", err)
	e.underlying = err
	return e
}

// As reports whether err is (or wraps) an *Error, returning it if so.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}
