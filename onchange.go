package sigcell

import (
	"reflect"

	"github.com/sigcell/sigcell/internal"
)

// Changed is the signal returned by OnChange. Reading it yields the latest
// source value that actually differed from the previously recorded one.
type Changed[T any] struct {
	out *internal.Variable

	// keeps the updater from being collected while the wrapper is in use
	updater *internal.Function
}

type changeOptions[T any] struct {
	eq  func(a, b T) bool
	doc string
}

// ChangeOption configures an OnChange wrapper.
type ChangeOption[T any] func(*changeOptions[T])

// WithEqual overrides the structural equality test used to detect changes.
func WithEqual[T any](eq func(a, b T) bool) ChangeOption[T] {
	return func(o *changeOptions[T]) { o.eq = eq }
}

// WithChangeDoc attaches a documentation string to the wrapper.
func WithChangeDoc[T any](doc string) ChangeOption[T] {
	return func(o *changeOptions[T]) { o.doc = doc }
}

// OnChange wraps src so dependents only see updates when the value really
// changed under the configured equality test (reflect.DeepEqual by default).
// Writes of equal values propagate through src as usual but never reach the
// wrapper's dependents. The type parameter names src's value type, e.g.
// OnChange[int](counter).
func OnChange[T any](src Signal, opts ...ChangeOption[T]) (*Changed[T], error) {
	o := changeOptions[T]{
		eq: func(a, b T) bool { return reflect.DeepEqual(a, b) },
	}
	for _, opt := range opts {
		opt(&o)
	}

	out, updater, err := internal.Get().NewChangeDetector(src.node(), func(prev, next any) bool {
		return o.eq(As[T](prev), As[T](next))
	}, o.doc)
	if err != nil {
		return nil, err
	}
	return &Changed[T]{out: out, updater: updater}, nil
}

func (c *Changed[T]) node() *internal.Node { return &c.out.Node }

// Doc returns the documentation string the wrapper was declared with.
func (c *Changed[T]) Doc() string { return c.out.Doc() }

// Read settles the updater and returns the last distinct value.
func (c *Changed[T]) Read() (T, error) {
	v, err := internal.Get().ReadDetector(c.updater, c.out)
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](v), nil
}
