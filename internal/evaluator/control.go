package evaluator

import (
	"github.com/cwbudde/go-cel/internal/activation"
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/cerr"
	"github.com/cwbudde/go-cel/internal/types"
)

// evalBinary dispatches conditionalor/conditionaland/relation/addition/
// multiplication nodes. `_||_` and `_&&_` get the commutative short-circuit
// treatment (spec.md §4.4); every other operator evaluates both children
// eagerly and calls the named base function.
func (e *Evaluator) evalBinary(n *ast.BinaryExpr, act *activation.Activation) types.Value {
	switch n.Op {
	case "_||_":
		return e.evalOr(n, act)
	case "_&&_":
		return e.evalAnd(n, act)
	}
	left := e.Eval(n.Left, act)
	right := e.Eval(n.Right, act)
	return callBase(act, n.Op, left, right)
}

// evalOr implements `||` with deferred-error short-circuit (spec.md §4.4):
// `true || X = true` for any X including Error; `Error || true = true`;
// `Error || false = Error`.
func (e *Evaluator) evalOr(n *ast.BinaryExpr, act *activation.Activation) types.Value {
	left := e.Eval(n.Left, act)
	if b, ok := types.Truthy(left); ok && b {
		return types.Bool(true)
	}
	right := e.Eval(n.Right, act)
	if b, ok := types.Truthy(right); ok && b {
		return types.Bool(true)
	}
	if types.IsError(left) {
		return left
	}
	if types.IsError(right) {
		return right
	}
	return callBase(act, "_||_", left, right)
}

// evalAnd implements `&&` with deferred-error short-circuit (spec.md §4.4):
// `false && X = false` for any X including Error; symmetrically to `||`.
func (e *Evaluator) evalAnd(n *ast.BinaryExpr, act *activation.Activation) types.Value {
	left := e.Eval(n.Left, act)
	if b, ok := types.Truthy(left); ok && !b {
		return types.Bool(false)
	}
	right := e.Eval(n.Right, act)
	if b, ok := types.Truthy(right); ok && !b {
		return types.Bool(false)
	}
	if types.IsError(left) {
		return left
	}
	if types.IsError(right) {
		return right
	}
	return callBase(act, "_&&_", left, right)
}

// evalTernary implements `c ? a : b`: evaluates only the chosen branch; if
// the condition is Error, the result is Error (spec.md §4.4).
func (e *Evaluator) evalTernary(n *ast.TernaryExpr, act *activation.Activation) types.Value {
	cond := e.Eval(n.Cond, act)
	b, ok := types.Truthy(cond)
	if !ok {
		if e, ok := types.AsError(cond); ok {
			return types.NewErrorValue(e)
		}
		return types.NewErrorValue(cerr.NoSuchOverload())
	}
	if b {
		return e.Eval(n.Then, act)
	}
	return e.Eval(n.Else, act)
}
