package internal

import "reflect"

// Checker is the value-type constraint declared on a signal. Every value
// written to or computed for the signal must pass it.
type Checker struct {
	// Want describes the accepted values, used in TypeMismatch errors.
	Want string

	// Fn reports whether v conforms. A nil Fn accepts everything.
	Fn func(v any) bool
}

func (c Checker) ok(v any) bool {
	if c.Fn == nil {
		return true
	}
	return c.Fn(v)
}

// CheckerFor builds a Checker accepting values assignable to t.
// A nil t accepts anything.
func CheckerFor(t reflect.Type) Checker {
	if t == nil {
		return Checker{Want: "any"}
	}
	return Checker{
		Want: t.String(),
		Fn: func(v any) bool {
			if v == nil {
				return nilable(t)
			}
			return reflect.TypeOf(v).AssignableTo(t)
		},
	}
}

// Refine narrows c with an extra predicate. want describes the refinement
// and replaces c's description in error messages.
func (c Checker) Refine(want string, fn func(v any) bool) Checker {
	base := c
	return Checker{
		Want: want,
		Fn: func(v any) bool {
			return base.ok(v) && fn(v)
		},
	}
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	}
	return false
}
