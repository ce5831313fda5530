package internal

// NewChangeDetector builds the two halves of an on-change wrapper around
// src: a variable holding the last distinct value and an updater function
// that writes it only when eq reports a real change. The caller must keep
// the updater reachable for as long as the wrapper is in use.
func (r *Runtime) NewChangeDetector(src *Node, eq func(prev, next any) bool, doc string) (*Variable, *Function, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, err := r.readLocked(src)
	if err != nil {
		return nil, nil, err
	}

	out := &Variable{Node{
		value: cur,
		check: src.check,
		doc:   doc,
		// ordered after the updater so dependents of the wrapper recompute
		// only once the updater has settled
		height: src.height + 1,
	}}

	upd, err := r.newFunctionLocked(
		[]Dep{{Name: "source", Source: src}},
		func(args *Args) (any, error) {
			next := args.At(0)
			if eq(out.value, next) {
				return next, nil
			}
			if err := r.writeLocked(out, next); err != nil {
				return nil, err
			}
			return next, nil
		},
		src.check, doc,
	)
	if err != nil {
		return nil, nil, err
	}

	return out, upd, nil
}

// ReadDetector settles the updater and returns the detector variable's
// value in a single critical section, so the result always belongs to the
// wave the settle observed.
func (r *Runtime) ReadDetector(upd *Function, out *Variable) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.readLocked(&upd.Node); err != nil {
		return nil, err
	}
	return out.value, nil
}
