package sigcell

import "github.com/sigcell/sigcell/internal"

// Error kinds surfaced by the graph. The concrete types unwrap to their
// sentinel, so errors.Is works on either form.
var (
	// ErrTypeMismatch reports a value that violates a signal's declared
	// type constraint.
	ErrTypeMismatch = internal.ErrTypeMismatch

	// ErrComputeFailed reports a compute step that returned an error.
	ErrComputeFailed = internal.ErrComputeFailed

	// ErrNoOpenScope reports an Exit with no matching Enter on the
	// calling goroutine.
	ErrNoOpenScope = internal.ErrNoOpenScope
)

// TypeMismatchError carries the offending value and a description of the
// accepted ones. The signal keeps its previous value.
type TypeMismatchError = internal.TypeMismatchError

// ComputeError wraps the error raised by a signal function's compute step.
type ComputeError = internal.ComputeError
