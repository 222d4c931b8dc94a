package types

import "github.com/cwbudde/go-cel/internal/cerr"

// ErrorValue adapts internal/cerr.Error into the Value sum type, making
// Error a distinguished sibling of Value as spec.md §3 requires ("Error. A
// distinguished sibling of Value..."). The carrier logic (message catalog,
// Kind classification, position formatting) lives in internal/cerr, which
// cannot itself depend on types (types already depends on cerr for
// conversion/arithmetic failures); ErrorValue is the seam that lets the
// evaluator, planner, and containers treat *cerr.Error as a Value without
// a import cycle.
type ErrorValue struct {
	*cerr.Error
}

// NewErrorValue wraps a *cerr.Error as a Value.
func NewErrorValue(e *cerr.Error) *ErrorValue {
	if e == nil {
		return nil
	}
	return &ErrorValue{Error: e}
}

func (*ErrorValue) Kind() Kind          { return KindError }
func (*ErrorValue) CELType() *TypeValue { return NewType(KindError) }
func (e *ErrorValue) String() string    { return e.Error.Error() }

// AsError reports whether v is an Error value, unwrapping it to the
// underlying *cerr.Error. This is the single predicate every operator uses
// to detect a propagated Error (spec.md §3: "Error is propagated by all
// arithmetic and relational operators unchanged").
func AsError(v Value) (*cerr.Error, bool) {
	if ev, ok := v.(*ErrorValue); ok {
		return ev.Error, true
	}
	return nil, false
}

// IsError reports whether v is an Error value.
func IsError(v Value) bool {
	_, ok := AsError(v)
	return ok
}
