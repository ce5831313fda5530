package internal

// Dep binds a name to the source signal a function reads it from.
type Dep struct {
	Name   string
	Source *Node
}

// Args carries the dependency values a compute step runs over, in
// declaration order.
type Args struct {
	names []string
	vals  []any
}

func (a *Args) Len() int { return len(a.vals) }

// At returns the value of the i-th declared dependency.
func (a *Args) At(i int) any { return a.vals[i] }

// Get returns the value bound to name, or nil when no such binding exists.
func (a *Args) Get(name string) any {
	for i, n := range a.names {
		if n == name {
			return a.vals[i]
		}
	}
	return nil
}

type nodeFlags uint8

const (
	flagDirty nodeFlags = 1 << iota
	flagInHeap
	flagQueued
)

// Function is a signal whose value derives from a fixed list of
// dependencies. The list never changes after construction.
type Function struct {
	Node

	deps    []Dep // strong references: dependencies outlive their dependents
	compute func(*Args) (any, error)
	flags   nodeFlags
}

func (f *Function) has(fl nodeFlags) bool { return f.flags&fl != 0 }
func (f *Function) set(fl nodeFlags)      { f.flags |= fl }
func (f *Function) clear(fl nodeFlags)    { f.flags &^= fl }

// NewFunction eagerly evaluates compute over the current dependency values,
// validates the result and registers f as a dependent of every distinct
// source. On failure no value is stored and no edge is created.
func (r *Runtime) NewFunction(deps []Dep, compute func(*Args) (any, error), check Checker, doc string) (*Function, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newFunctionLocked(deps, compute, check, doc)
}

func (r *Runtime) newFunctionLocked(deps []Dep, compute func(*Args) (any, error), check Checker, doc string) (*Function, error) {
	f := &Function{
		Node:    Node{check: check, doc: doc},
		deps:    deps,
		compute: compute,
	}
	f.owner = f
	for _, d := range deps {
		if d.Source.height >= f.height {
			f.height = d.Source.height + 1
		}
	}

	args, err := r.argsFor(f)
	if err != nil {
		return nil, err
	}
	v, err := compute(args)
	if err != nil {
		return nil, &ComputeError{Doc: doc, Err: err}
	}
	if !check.ok(v) {
		return nil, &TypeMismatchError{Doc: doc, Value: v, Want: check.Want}
	}
	f.value = v

	seen := make(map[*Node]bool, len(deps))
	for _, d := range deps {
		if seen[d.Source] {
			continue
		}
		seen[d.Source] = true
		d.Source.addSub(f)
	}

	return f, nil
}

// ReadFunction returns f's value, recomputing it first when it is stale.
func (r *Runtime) ReadFunction(f *Function) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readLocked(&f.Node)
}

func (r *Runtime) argsFor(f *Function) (*Args, error) {
	args := &Args{
		names: make([]string, len(f.deps)),
		vals:  make([]any, len(f.deps)),
	}
	for i, d := range f.deps {
		v, err := r.readLocked(d.Source)
		if err != nil {
			return nil, err
		}
		args.names[i] = d.Name
		args.vals[i] = v
	}
	return args, nil
}
