package planner

import (
	"github.com/cwbudde/go-cel/internal/activation"
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/types"
)

// planBinary plans conditionalor/conditionaland/relation/addition/
// multiplication nodes. `_||_`/`_&&_` get dedicated short-circuit closures
// (spec.md §4.4, §4.5's "checked_exception" deferred-block concept — here
// just a closure that conditionally skips invoking its right operand).
func (p *Planner) planBinary(n *ast.BinaryExpr) Interpretable {
	switch n.Op {
	case "_||_":
		return p.planOr(n)
	case "_&&_":
		return p.planAnd(n)
	}
	left := p.plan(n.Left)
	right := p.plan(n.Right)
	op := n.Op
	return func(act *activation.Activation) types.Value {
		return callBase(act, op, left(act), right(act))
	}
}

func (p *Planner) planOr(n *ast.BinaryExpr) Interpretable {
	left := p.plan(n.Left)
	right := p.plan(n.Right)
	return func(act *activation.Activation) types.Value {
		l := left(act)
		if b, ok := types.Truthy(l); ok && b {
			return types.Bool(true)
		}
		r := right(act)
		if b, ok := types.Truthy(r); ok && b {
			return types.Bool(true)
		}
		if types.IsError(l) {
			return l
		}
		if types.IsError(r) {
			return r
		}
		return callBase(act, "_||_", l, r)
	}
}

func (p *Planner) planAnd(n *ast.BinaryExpr) Interpretable {
	left := p.plan(n.Left)
	right := p.plan(n.Right)
	return func(act *activation.Activation) types.Value {
		l := left(act)
		if b, ok := types.Truthy(l); ok && !b {
			return types.Bool(false)
		}
		r := right(act)
		if b, ok := types.Truthy(r); ok && !b {
			return types.Bool(false)
		}
		if types.IsError(l) {
			return l
		}
		if types.IsError(r) {
			return r
		}
		return callBase(act, "_&&_", l, r)
	}
}
