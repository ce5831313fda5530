package internal

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch reports a value violating a signal's declared type constraint.
var ErrTypeMismatch = errors.New("type mismatch")

// ErrComputeFailed reports a compute step that returned an error.
var ErrComputeFailed = errors.New("compute step failed")

// ErrNoOpenScope reports an ExitScope call with no matching EnterScope on the
// calling goroutine.
var ErrNoOpenScope = errors.New("no open deferred scope")

// TypeMismatchError is raised at the point of assignment or computation when
// a value does not satisfy the signal's declared type. The signal keeps its
// previous value.
type TypeMismatchError struct {
	Doc   string // documentation of the signal, if any
	Value any    // the offending value
	Want  string // description of the accepted values
}

func (e *TypeMismatchError) Error() string {
	if e.Doc != "" {
		return fmt.Sprintf("%s: %v does not satisfy %s", e.Doc, e.Value, e.Want)
	}
	return fmt.Sprintf("%v does not satisfy %s", e.Value, e.Want)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// ComputeError wraps the error raised by a signal function's compute step.
// It surfaces to whichever write, read or flush triggered the wave.
type ComputeError struct {
	Doc string
	Err error
}

func (e *ComputeError) Error() string {
	if e.Doc != "" {
		return fmt.Sprintf("%s: %v", e.Doc, e.Err)
	}
	return e.Err.Error()
}

func (e *ComputeError) Unwrap() []error { return []error{ErrComputeFailed, e.Err} }
