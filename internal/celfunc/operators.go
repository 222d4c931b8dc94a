package celfunc

import (
	"github.com/cwbudde/go-cel/internal/activation"
	"github.com/cwbudde/go-cel/internal/cerr"
	"github.com/cwbudde/go-cel/internal/types"
)

// registerOperators installs the binary/unary operator functions as named
// base-table entries (spec.md §4.4). The Evaluator's evalBinary/evalUnary
// dispatch calls these by the same names the grammar's operator tokens map
// to, so a host overriding "_+_" with WithFunctions changes addition for
// every subsequent evaluation (spec.md §4.3 "user-supplied overrides").
func registerOperators(t map[string]activation.Function) {
	t["_+_"] = fnAdd
	t["_-_"] = fnSub
	t["_*_"] = fnMul
	t["_/_"] = fnDiv
	t["_%_"] = fnMod
	t["-_"] = fnNeg
	t["_==_"] = fnEq
	t["_!=_"] = fnNeq
	t["_<_"] = fnLt
	t["_<=_"] = fnLte
	t["_>_"] = fnGt
	t["_>=_"] = fnGte
	t["_in_"] = fnIn
	t["!_"] = fnNot
	t["_[_]"] = fnIndex
	t["_||_"] = fnOr
	t["_&&_"] = fnAnd
}

// fnOr/fnAnd are the base-table entries for `||`/`&&` exposed for host
// introspection and override (spec.md §4.3). The Evaluator's short-circuit
// logic (internal/evaluator/control.go) only reaches these once neither
// operand could mask the other, so both arguments are always already-
// evaluated Bools by the time these run in practice; non-Bool operands
// still report "no such overload" rather than panicking on the assertion.
func fnOr(args []types.Value) types.Value {
	if len(args) != 2 {
		return wrongArgCount("_||_")
	}
	a, aok := types.Truthy(args[0])
	b, bok := types.Truthy(args[1])
	if !aok || !bok {
		return errv(cerr.NoSuchOverload())
	}
	return types.Bool(a || b)
}

func fnAnd(args []types.Value) types.Value {
	if len(args) != 2 {
		return wrongArgCount("_&&_")
	}
	a, aok := types.Truthy(args[0])
	b, bok := types.Truthy(args[1])
	if !aok || !bok {
		return errv(cerr.NoSuchOverload())
	}
	return types.Bool(a && b)
}

func fnAdd(args []types.Value) types.Value {
	if len(args) != 2 {
		return wrongArgCount("_+_")
	}
	a, b := args[0], args[1]
	if e, ok := firstError(a, b); ok {
		return errv(e)
	}
	switch av := a.(type) {
	case types.Int:
		if bv, ok := b.(types.Int); ok {
			return ret(types.AddInt(av, bv))
		}
	case types.Uint:
		if bv, ok := b.(types.Uint); ok {
			return ret(types.AddUint(av, bv))
		}
	case types.Double:
		if bv, ok := b.(types.Double); ok {
			return types.AddDouble(av, bv)
		}
	case types.String:
		if bv, ok := b.(types.String); ok {
			return av + bv
		}
	case types.Bytes:
		if bv, ok := b.(types.Bytes); ok {
			return append(append(types.Bytes{}, av...), bv...)
		}
	case *types.List:
		if bv, ok := b.(*types.List); ok {
			return types.NewList(append(append([]types.Value{}, av.Elements...), bv.Elements...))
		}
	case types.Duration:
		if bv, ok := b.(types.Duration); ok {
			return ret(types.AddDuration(av, bv))
		}
	case types.Timestamp:
		if bv, ok := b.(types.Duration); ok {
			return ret(types.AddTimestampDuration(av, bv))
		}
	}
	return errv(cerr.NoSuchOverload())
}

func fnSub(args []types.Value) types.Value {
	if len(args) != 2 {
		return wrongArgCount("_-_")
	}
	a, b := args[0], args[1]
	if e, ok := firstError(a, b); ok {
		return errv(e)
	}
	switch av := a.(type) {
	case types.Int:
		if bv, ok := b.(types.Int); ok {
			return ret(types.SubInt(av, bv))
		}
	case types.Uint:
		if bv, ok := b.(types.Uint); ok {
			return ret(types.SubUint(av, bv))
		}
	case types.Double:
		if bv, ok := b.(types.Double); ok {
			return types.SubDouble(av, bv)
		}
	case types.Duration:
		if bv, ok := b.(types.Duration); ok {
			return ret(types.SubDuration(av, bv))
		}
	case types.Timestamp:
		if bv, ok := b.(types.Duration); ok {
			return ret(types.SubTimestampDuration(av, bv))
		}
		if bv, ok := b.(types.Timestamp); ok {
			return ret(types.SubTimestamps(av, bv))
		}
	}
	return errv(cerr.NoSuchOverload())
}

func fnMul(args []types.Value) types.Value {
	if len(args) != 2 {
		return wrongArgCount("_*_")
	}
	a, b := args[0], args[1]
	if e, ok := firstError(a, b); ok {
		return errv(e)
	}
	switch av := a.(type) {
	case types.Int:
		if bv, ok := b.(types.Int); ok {
			return ret(types.MulInt(av, bv))
		}
	case types.Uint:
		if bv, ok := b.(types.Uint); ok {
			return ret(types.MulUint(av, bv))
		}
	case types.Double:
		if bv, ok := b.(types.Double); ok {
			return types.MulDouble(av, bv)
		}
	}
	return errv(cerr.NoSuchOverload())
}

func fnDiv(args []types.Value) types.Value {
	if len(args) != 2 {
		return wrongArgCount("_/_")
	}
	a, b := args[0], args[1]
	if e, ok := firstError(a, b); ok {
		return errv(e)
	}
	switch av := a.(type) {
	case types.Int:
		if bv, ok := b.(types.Int); ok {
			return ret(types.DivInt(av, bv))
		}
	case types.Uint:
		if bv, ok := b.(types.Uint); ok {
			return ret(types.DivUint(av, bv))
		}
	case types.Double:
		if bv, ok := b.(types.Double); ok {
			return ret(types.DivDouble(av, bv))
		}
	}
	return errv(cerr.NoSuchOverload())
}

func fnMod(args []types.Value) types.Value {
	if len(args) != 2 {
		return wrongArgCount("_%_")
	}
	a, b := args[0], args[1]
	if e, ok := firstError(a, b); ok {
		return errv(e)
	}
	switch av := a.(type) {
	case types.Int:
		if bv, ok := b.(types.Int); ok {
			return ret(types.ModInt(av, bv))
		}
	case types.Uint:
		if bv, ok := b.(types.Uint); ok {
			return ret(types.ModUint(av, bv))
		}
	case types.Double:
		if bv, ok := b.(types.Double); ok {
			return ret(types.ModDouble(av, bv))
		}
	}
	return errv(cerr.NoSuchOverload())
}

func fnNeg(args []types.Value) types.Value {
	if len(args) != 1 {
		return wrongArgCount("-_")
	}
	a := args[0]
	if e, ok := types.AsError(a); ok {
		return errv(e)
	}
	switch av := a.(type) {
	case types.Int:
		return ret(types.NegInt(av))
	case types.Double:
		return types.NegDouble(av)
	}
	return errv(cerr.NoSuchOverload())
}

func fnNot(args []types.Value) types.Value {
	if len(args) != 1 {
		return wrongArgCount("!_")
	}
	b, ok := types.Truthy(args[0])
	if !ok {
		if e, ok := types.AsError(args[0]); ok {
			return errv(e)
		}
		return errv(cerr.NoSuchOverload())
	}
	return types.Bool(!b)
}

func fnEq(args []types.Value) types.Value {
	if len(args) != 2 {
		return wrongArgCount("_==_")
	}
	eq, err := types.Equal(args[0], args[1])
	if err != nil {
		return errv(err)
	}
	return eq
}

func fnNeq(args []types.Value) types.Value {
	if len(args) != 2 {
		return wrongArgCount("_!=_")
	}
	eq, err := types.Equal(args[0], args[1])
	if err != nil {
		return errv(err)
	}
	return !eq
}

func fnLt(args []types.Value) types.Value {
	return compareResult(args, "_<_", func(o types.Ordering) bool { return o == types.LT })
}

func fnLte(args []types.Value) types.Value {
	return compareResult(args, "_<=_", func(o types.Ordering) bool { return o != types.GT })
}

func fnGt(args []types.Value) types.Value {
	return compareResult(args, "_>_", func(o types.Ordering) bool { return o == types.GT })
}

func fnGte(args []types.Value) types.Value {
	return compareResult(args, "_>=_", func(o types.Ordering) bool { return o != types.LT })
}

func compareResult(args []types.Value, name string, pred func(types.Ordering) bool) types.Value {
	if len(args) != 2 {
		return wrongArgCount(name)
	}
	if e, ok := firstError(args[0], args[1]); ok {
		return errv(e)
	}
	ord, err := types.Compare(args[0], args[1])
	if err != nil {
		return errv(err)
	}
	return types.Bool(pred(ord))
}

// fnIn implements the `in` membership operator over List and Map (spec.md
// §4.4): `e in container`.
func fnIn(args []types.Value) types.Value {
	if len(args) != 2 {
		return wrongArgCount("_in_")
	}
	needle, haystack := args[0], args[1]
	if e, ok := firstError(needle, haystack); ok {
		return errv(e)
	}
	switch h := haystack.(type) {
	case *types.List:
		var firstErr *cerr.Error
		for _, elem := range h.Elements {
			eq, err := types.Equal(needle, elem)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if eq {
				return types.Bool(true)
			}
		}
		if firstErr != nil {
			return errv(firstErr)
		}
		return types.Bool(false)
	case *types.Map:
		found, err := h.Contains(needle)
		if err != nil {
			return errv(err)
		}
		return found
	}
	return errv(cerr.NoSuchOverload())
}

// fnIndex implements `_[_]`, list/map indexing (spec.md §4.4).
func fnIndex(args []types.Value) types.Value {
	if len(args) != 2 {
		return wrongArgCount("_[_]")
	}
	container, key := args[0], args[1]
	if e, ok := firstError(container, key); ok {
		return errv(e)
	}
	switch c := container.(type) {
	case *types.List:
		idx, cerr2 := types.ToInt(key)
		if cerr2 != nil {
			return errv(cerr2)
		}
		v, cerr3 := c.Get(int64(idx))
		if cerr3 != nil {
			return errv(cerr3)
		}
		return v
	case *types.Map:
		v, cerr2 := c.Get(key)
		if cerr2 != nil {
			return errv(cerr2)
		}
		return v
	}
	return errv(cerr.NoSuchOverload())
}

func firstError(vs ...types.Value) (*cerr.Error, bool) {
	for _, v := range vs {
		if e, ok := types.AsError(v); ok {
			return e, true
		}
	}
	return nil, false
}

func ret(v types.Value, err *cerr.Error) types.Value {
	if err != nil {
		return errv(err)
	}
	return v
}
