// Package sigcell provides fine-grained reactive state: signal variables
// written directly by outside code, and signal functions derived from an
// explicit, fixed list of dependencies. The dependency graph keeps every
// function consistent with its inputs automatically, either eagerly on each
// write or in a single batch when a deferred scope is open.
//
// Dependencies are always declared at construction time; nothing is inferred
// from read access. Compute steps are pure: they receive their dependency
// values and must not read or write other signals.
package sigcell

import (
	"reflect"

	"github.com/sigcell/sigcell/internal"
)

// Signal is a value cell participating in the dependency graph.
type Signal interface {
	node() *internal.Node
}

// Binding names the source signal a function dependency reads from.
type Binding struct {
	name   string
	source *internal.Node
}

// Bind declares a dependency on s under the given binding name.
func Bind(name string, s Signal) Binding {
	return Binding{name: name, source: s.node()}
}

// Values carries the dependency values a compute step runs over.
type Values struct {
	args *internal.Args
}

// Get returns the value bound to name, or nil when no such binding exists.
func (v Values) Get(name string) any { return v.args.Get(name) }

// At returns the value of the i-th declared dependency.
func (v Values) At(i int) any { return v.args.At(i) }

// Len returns the number of declared dependencies.
func (v Values) Len() int { return v.args.Len() }

// As converts a dependency value to its concrete type, mapping nil to the
// zero value.
func As[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

type options struct {
	doc    string
	refine func(internal.Checker) internal.Checker
}

// Option configures a signal at construction.
type Option func(*options)

// WithDoc attaches a documentation string to the signal. It is carried in
// error messages.
func WithDoc(doc string) Option {
	return func(o *options) { o.doc = doc }
}

// Check narrows the signal's declared type with an extra predicate. want
// describes the accepted values and is reported on TypeMismatch.
func Check[T any](want string, fn func(T) bool) Option {
	return func(o *options) {
		o.refine = func(c internal.Checker) internal.Checker {
			return c.Refine(want, func(v any) bool { return fn(As[T](v)) })
		}
	}
}

func buildOptions[T any](opts []Option) (internal.Checker, string) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	check := internal.CheckerFor(reflect.TypeOf((*T)(nil)).Elem())
	if o.refine != nil {
		check = o.refine(check)
	}
	return check, o.doc
}

// Var is a signal variable: a cell whose value outside code sets directly.
type Var[T any] struct {
	v *internal.Variable
}

// NewVar creates a signal variable holding initial. It fails with a
// TypeMismatch when initial violates the declared type, before any graph
// edge exists.
func NewVar[T any](initial T, opts ...Option) (*Var[T], error) {
	check, doc := buildOptions[T](opts)
	v, err := internal.NewVariable(initial, check, doc)
	if err != nil {
		return nil, err
	}
	return &Var[T]{v}, nil
}

func (v *Var[T]) node() *internal.Node { return &v.v.Node }

// Doc returns the documentation string the variable was declared with.
func (v *Var[T]) Doc() string { return v.v.Doc() }

// Read returns the current value. It never triggers recomputation.
func (v *Var[T]) Read() T {
	return As[T](internal.Get().ReadVariable(v.v))
}

// Write validates val, stores it and propagates to dependents: immediately
// outside a deferred scope, by dirty-marking inside one. The returned error
// is either the TypeMismatch (value untouched) or a failure surfaced by the
// triggered wave.
func (v *Var[T]) Write(val T) error {
	return internal.Get().WriteVariable(v.v, val)
}

// Update applies fn to the current value and writes the result back.
func (v *Var[T]) Update(fn func(T) T) error {
	return v.Write(fn(v.Read()))
}

// Func is a signal function: a cell derived from a fixed, explicitly
// declared list of dependencies.
type Func[T any] struct {
	f *internal.Function
}

// NewFunc creates a signal function over deps. The compute step runs once
// immediately, so the function is never observed in an unevaluated state;
// the dependency list cannot change afterwards.
func NewFunc[T any](deps []Binding, compute func(Values) (T, error), opts ...Option) (*Func[T], error) {
	check, doc := buildOptions[T](opts)

	ideps := make([]internal.Dep, len(deps))
	for i, d := range deps {
		ideps[i] = internal.Dep{Name: d.name, Source: d.source}
	}

	f, err := internal.Get().NewFunction(ideps, func(args *internal.Args) (any, error) {
		v, err := compute(Values{args})
		if err != nil {
			return nil, err
		}
		return v, nil
	}, check, doc)
	if err != nil {
		return nil, err
	}
	return &Func[T]{f}, nil
}

func (f *Func[T]) node() *internal.Node { return &f.f.Node }

// Doc returns the documentation string the function was declared with.
func (f *Func[T]) Doc() string { return f.f.Doc() }

// Read returns the current value, recomputing it first when a deferred
// scope left it stale.
func (f *Func[T]) Read() (T, error) {
	v, err := internal.Get().ReadFunction(f.f)
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](v), nil
}
