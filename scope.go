package sigcell

import "github.com/sigcell/sigcell/internal"

// Enter opens a deferred-update scope on the calling goroutine. Until the
// matching outermost Exit, writes mark dependents dirty instead of
// recomputing them; a dirty function still recomputes on demand when read.
func Enter() { internal.Get().EnterScope() }

// Exit closes the innermost deferred scope. Closing the outermost one
// flushes every dirty function in dependency order, so no staleness leaks
// past the boundary; pair it with defer so the flush also runs when the
// scope body fails. Returns the first failure hit by the flush, or
// ErrNoOpenScope on an unbalanced call.
func Exit() error { return internal.Get().ExitScope() }

// Batch runs fn inside a deferred-update scope. The flush triggered by
// leaving the scope runs even when fn returns an error or panics; fn's
// error takes precedence over a flush error.
func Batch(fn func() error) (err error) {
	Enter()
	defer func() {
		ferr := Exit()
		if err == nil {
			err = ferr
		}
	}()
	return fn()
}
