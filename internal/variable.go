package internal

// Variable is a signal whose value is set directly by outside code.
// It is never dirty.
type Variable struct {
	Node
}

// NewVariable validates initial against check and returns the variable.
// No graph edge exists until a function declares it as a dependency.
func NewVariable(initial any, check Checker, doc string) (*Variable, error) {
	if !check.ok(initial) {
		return nil, &TypeMismatchError{Doc: doc, Value: initial, Want: check.Want}
	}
	return &Variable{Node{value: initial, check: check, doc: doc}}, nil
}

// ReadVariable returns the variable's current value. No side effects.
func (r *Runtime) ReadVariable(v *Variable) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return v.value
}

// WriteVariable validates and stores val, then propagates to dependents
// according to the goroutine's current propagation mode. On a TypeMismatch
// the stored value is untouched; any other error is a failure surfaced by
// the recomputation wave the write triggered.
func (r *Runtime) WriteVariable(v *Variable, val any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked(v, val)
}
