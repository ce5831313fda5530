package internal

import (
	"sync"
	"weak"
)

// Runtime is the shared propagation engine. One mutex guards the dependency
// edges and every node's value/dirty pair, so a concurrent reader never
// observes state belonging to two different waves.
type Runtime struct {
	mu sync.Mutex

	heap   *heightHeap
	depths map[int64]int            // open deferred scopes, per goroutine
	queued []weak.Pointer[Function] // dirty functions awaiting flush

	draining bool
}

var global = NewRuntime()

// Get returns the process-wide engine. The dependency graph is shared across
// goroutines; only the deferred-scope stack is per goroutine.
func Get() *Runtime { return global }

func NewRuntime() *Runtime {
	return &Runtime{
		heap:   newHeightHeap(),
		depths: make(map[int64]int),
	}
}

// readLocked returns the node's value, recomputing first when it belongs to
// a stale function. Under a deferred scope (or mid-wave) a recompute
// performed here marks the function's dependents dirty; on an eager read it
// brings them back in step right away.
func (r *Runtime) readLocked(n *Node) (any, error) {
	if f := n.owner; f != nil && f.has(flagDirty) {
		if err := r.recompute(f); err != nil {
			r.queueDirty(f) // still stale, retried by a later read or flush
			return nil, err
		}
		if r.deferring() || r.draining {
			r.markSubsDirty(&f.Node)
		} else {
			f.forEachSub(r.heap.insert)
			if err := r.drainWave(); err != nil {
				return nil, err
			}
		}
	}
	return n.value, nil
}

func (r *Runtime) writeLocked(v *Variable, val any) error {
	if !v.check.ok(val) {
		return &TypeMismatchError{Doc: v.doc, Value: val, Want: v.check.Want}
	}
	v.value = val
	return r.propagateFrom(&v.Node)
}

// propagateFrom notifies n's dependents that n changed: under an open
// deferred scope they are marked dirty, otherwise they are recomputed in
// height order before control returns to the writer.
func (r *Runtime) propagateFrom(n *Node) error {
	if r.deferring() {
		r.markSubsDirty(n)
		return nil
	}

	n.forEachSub(r.heap.insert)
	if r.draining {
		return nil // the active wave picks the entries up
	}
	return r.drainWave()
}

// markSubsDirty flags every dependent reachable from n as stale, so any
// in-scope read finds a dirty flag and recomputes instead of returning a
// value derived from pre-write inputs. The walk stops at nodes already
// dirty and at change detectors whose recorded value did not move (their
// dependents subscribe to the detector's variable, not its updater).
func (r *Runtime) markSubsDirty(n *Node) {
	n.forEachSub(func(f *Function) {
		if f.has(flagDirty) {
			return
		}
		f.set(flagDirty)
		r.queueDirty(f)
		r.markSubsDirty(&f.Node)
	})
}

func (r *Runtime) queueDirty(f *Function) {
	if f.has(flagQueued) {
		return
	}
	f.set(flagQueued)
	r.queued = append(r.queued, weak.Make(f))
}

// recompute evaluates f over the latest values of its dependencies,
// validates the result and stores it. Propagating the change is the caller's
// concern. On failure f keeps its previous value and stays dirty.
func (r *Runtime) recompute(f *Function) error {
	args, err := r.argsFor(f)
	if err != nil {
		return err
	}
	v, err := f.compute(args)
	if err != nil {
		return &ComputeError{Doc: f.doc, Err: err}
	}
	if !f.check.ok(v) {
		return &TypeMismatchError{Doc: f.doc, Value: v, Want: f.check.Want}
	}
	f.value = v
	f.clear(flagDirty)
	return nil
}

// drainWave recomputes every heaped function in height order. On failure the
// failing function and the untouched remainder of the wave are left dirty;
// functions already recomputed keep their new values.
func (r *Runtime) drainWave() error {
	r.draining = true
	defer func() { r.draining = false }()

	var failed error
	r.heap.drain(func(f *Function) {
		if failed != nil {
			f.set(flagDirty)
			r.queueDirty(f)
			return
		}
		if err := r.recompute(f); err != nil {
			failed = err
			f.set(flagDirty)
			r.queueDirty(f)
			return
		}
		f.forEachSub(r.heap.insert)
	})

	return failed
}

// flushLocked recomputes every function still dirty, in dependency order,
// so no staleness survives the outermost scope exit.
func (r *Runtime) flushLocked() error {
	queued := r.queued
	r.queued = nil

	for _, w := range queued {
		f := w.Value()
		if f == nil {
			continue
		}
		f.clear(flagQueued)
		if f.has(flagDirty) {
			r.heap.insert(f)
		}
	}

	return r.drainWave()
}
