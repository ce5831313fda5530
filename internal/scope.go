package internal

import "github.com/petermattis/goid"

// EnterScope opens a deferred-update scope on the calling goroutine. While
// at least one scope is open there, writes mark dependents dirty instead of
// recomputing them.
func (r *Runtime) EnterScope() {
	gid := goid.Get()
	r.mu.Lock()
	r.depths[gid]++
	r.mu.Unlock()
}

// ExitScope closes the innermost scope. Closing the outermost one flushes
// every dirty function in dependency order; inner exits only decrement the
// depth.
func (r *Runtime) ExitScope() error {
	gid := goid.Get()
	r.mu.Lock()
	defer r.mu.Unlock()

	switch d := r.depths[gid]; {
	case d == 0:
		return ErrNoOpenScope
	case d == 1:
		delete(r.depths, gid)
		return r.flushLocked()
	default:
		r.depths[gid] = d - 1
		return nil
	}
}

// deferring reports whether the calling goroutine has an open scope.
func (r *Runtime) deferring() bool {
	return r.depths[goid.Get()] > 0
}
