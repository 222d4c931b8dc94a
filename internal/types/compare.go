package types

import (
	"bytes"

	"github.com/cwbudde/go-cel/internal/cerr"
)

// Ordering mirrors the result of a three-way comparison.
type Ordering int

const (
	LT Ordering = -1
	EQ Ordering = 0
	GT Ordering = 1
)

// Compare implements CEL's relational operators (spec.md §4.4):
// cross-type comparisons between numeric kinds obey mathematical
// ordering (`1 < 1.5`, `1u < 2`); comparisons between incompatible
// non-numeric kinds yield "no such overload".
func Compare(a, b Value) (Ordering, *cerr.Error) {
	if isNumeric(a) && isNumeric(b) {
		return compareNumeric(a, b)
	}
	switch av := a.(type) {
	case String:
		if bv, ok := b.(String); ok {
			return compareOrdered(string(av), string(bv)), nil
		}
	case Bytes:
		if bv, ok := b.(Bytes); ok {
			return Ordering(bytes.Compare(av, bv)), nil
		}
	case Bool:
		if bv, ok := b.(Bool); ok {
			return compareBool(bool(av), bool(bv)), nil
		}
	case Duration:
		if bv, ok := b.(Duration); ok {
			return compareOrdered(int64(av), int64(bv)), nil
		}
	case Timestamp:
		if bv, ok := b.(Timestamp); ok {
			return compareOrdered(int64(av), int64(bv)), nil
		}
	}
	return EQ, cerr.NoSuchOverload()
}

func isNumeric(v Value) bool {
	switch v.(type) {
	case Int, Uint, Double:
		return true
	}
	return false
}

func compareNumeric(a, b Value) (Ordering, *cerr.Error) {
	af, aok := numericToDouble(a)
	bf, bok := numericToDouble(b)
	if !aok || !bok {
		return EQ, cerr.NoSuchOverload()
	}
	// Use exact integer comparison when both sides are integral and fit,
	// to avoid float64 precision loss near 2^63.
	if ai, ok := a.(Int); ok {
		if bi, ok := b.(Int); ok {
			return compareOrdered(int64(ai), int64(bi)), nil
		}
		if bu, ok := b.(Uint); ok {
			if ai < 0 {
				return LT, nil
			}
			return compareOrdered(uint64(ai), uint64(bu)), nil
		}
	}
	if au, ok := a.(Uint); ok {
		if bu, ok := b.(Uint); ok {
			return compareOrdered(uint64(au), uint64(bu)), nil
		}
		if bi, ok := b.(Int); ok {
			if bi < 0 {
				return GT, nil
			}
			return compareOrdered(uint64(au), uint64(bi)), nil
		}
	}
	return compareOrdered(af, bf), nil
}

func numericToDouble(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Uint:
		return float64(n), true
	case Double:
		return float64(n), true
	}
	return 0, false
}

func compareOrdered[T int64 | uint64 | float64 | string](a, b T) Ordering {
	switch {
	case a < b:
		return LT
	case a > b:
		return GT
	default:
		return EQ
	}
}

func compareBool(a, b bool) Ordering {
	if a == b {
		return EQ
	}
	if !a && b {
		return LT
	}
	return GT
}

// Equal implements CEL's `==` for values that support it. Lists compare
// elementwise with Error propagation (spec.md §4.1); Maps compare by
// same-size and pairwise key/value equality; Messages compare by pointer
// identity (no structural equality is defined for Message in this core);
// Null equals only Null.
func Equal(a, b Value) (Bool, *cerr.Error) {
	if IsError(a) {
		ev, _ := AsError(a)
		return false, ev
	}
	if IsError(b) {
		ev, _ := AsError(b)
		return false, ev
	}
	if isNumeric(a) && isNumeric(b) {
		ord, err := compareNumeric(a, b)
		if err != nil {
			return false, err
		}
		return ord == EQ, nil
	}
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return Bool(ok), nil
	case String:
		bv, ok := b.(String)
		return Bool(ok && av == bv), nil
	case Bytes:
		bv, ok := b.(Bytes)
		return Bool(ok && bytes.Equal(av, bv)), nil
	case Bool:
		bv, ok := b.(Bool)
		return Bool(ok && av == bv), nil
	case Duration:
		bv, ok := b.(Duration)
		return Bool(ok && av == bv), nil
	case Timestamp:
		bv, ok := b.(Timestamp)
		return Bool(ok && av == bv), nil
	case *TypeValue:
		bv, ok := b.(*TypeValue)
		return Bool(ok && av.Equal(bv)), nil
	case *List:
		bv, ok := b.(*List)
		if !ok {
			return false, nil
		}
		return equalLists(av, bv)
	case *Map:
		bv, ok := b.(*Map)
		if !ok {
			return false, nil
		}
		return equalMaps(av, bv)
	case *Message:
		bv, ok := b.(*Message)
		return Bool(ok && av == bv), nil
	case *Function:
		bv, ok := b.(*Function)
		return Bool(ok && av == bv), nil
	}
	return false, cerr.NoSuchOverload()
}

func equalLists(a, b *List) (Bool, *cerr.Error) {
	if len(a.Elements) != len(b.Elements) {
		return false, nil
	}
	for i := range a.Elements {
		eq, err := Equal(a.Elements[i], b.Elements[i])
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

func equalMaps(a, b *Map) (Bool, *cerr.Error) {
	if a.Size() != b.Size() {
		return false, nil
	}
	for _, p := range a.Pairs() {
		bv, err := b.Get(p.Key)
		if err != nil {
			return false, nil
		}
		eq, eerr := Equal(p.Value, bv)
		if eerr != nil {
			return false, eerr
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}
