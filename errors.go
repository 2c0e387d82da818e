package hostmedic

import (
	"errors"
	"fmt"
)

// Sentinel errors for common sweep error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrNoChecks indicates a sweep was constructed without any checks.
	ErrNoChecks = errors.New("no checks configured")

	// ErrInvalidConfig indicates the provided configuration is invalid or
	// incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors caused by absent tools or files.
	KindNotFound = "not_found"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindExecution represents errors that occur while running a check.
	KindExecution = "execution"

	// KindParse represents errors caused by unexpected tool output.
	KindParse = "parse"

	// KindTimeout represents errors related to check timeouts.
	KindTimeout = "timeout"

	// KindInternal represents internal engine errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// the operation that failed and the category of failure.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
type Error struct {
	// Op is the operation that failed (e.g. "Sweep.Run", "checks.firewall").
	Op string

	// Kind categorizes the error (e.g. KindValidation, KindTimeout).
	Kind string

	// Err is the underlying error that caused this error.
	Err error
}

// Error implements the error interface, returning a formatted message that
// includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("hostmedic: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("hostmedic: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching, allowing comparison based on the
// underlying error or on another *Error's Op and Kind.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}
