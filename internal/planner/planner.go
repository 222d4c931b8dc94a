// Package planner implements the Transpiler (spec.md §4.5): a two-phase
// lowering of an AST into a compiled closure whose evaluation is
// observably identical to internal/evaluator's tree-walk, but avoids
// re-walking the AST on each call.
//
// spec.md §4.5 describes the Transpiler in terms of emitting target-
// language source text ("transpiled" strings) that is later compiled and
// run. Go has no runtime eval/compile story, so this adaptation (see
// DESIGN.md "Transpiler as source-text codegen vs. closure planner")
// realizes the same two-phase shape directly as Go closures: phase 1
// ("decorate") builds one Interpretable func(*activation.Activation)
// types.Value per node in a single post-order pass, and phase 2
// ("collect") is folded into phase 1 since a Go closure already captures
// its children's closures instead of needing a second textual-substitution
// pass. This mirrors the teacher's internal/bytecode.Compiler (one
// compile method per node kind feeding a single output artifact) and
// google/cel-go's interpreter/planner.go (Plan(expr) -> Interpretable,
// retrieved in other_examples/), which both compile a tree into a runnable
// artifact in one traversal rather than two.
package planner

import (
	"github.com/cwbudde/go-cel/internal/activation"
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/cerr"
	"github.com/cwbudde/go-cel/internal/types"
)

// Interpretable is a compiled node: given a runtime Activation, produces
// its Value or Error. This is the Go realization of spec.md §4.5's
// "transpiled" expression slot — a closure instead of a source string.
type Interpretable func(act *activation.Activation) types.Value

// Program is a fully planned expression tree, ready to run against any
// number of Activations without revisiting the AST (spec.md §4.5 "avoids
// re-walking the AST on each call").
type Program struct {
	root  Interpretable
	nodes int
}

// NodeCount reports how many AST nodes were planned, the closure-planner
// analogue of spec.md §4.5's `expr_number` counter.
func (p *Program) NodeCount() int { return p.nodes }

// Run executes the compiled program against act, the planner's equivalent
// of the Transpiler's `result(base_activation, λ act: root.transpiled)`
// top-level call (spec.md §4.5 "runtime wrapper").
func (p *Program) Run(act *activation.Activation) types.Value {
	return result(act, p.root)
}

// result invokes thunk(act) and is the single point, as in spec.md §4.5,
// where a panic escaping planned code (an "unrecoverable bug" in Go terms,
// since every expected failure mode is already a returned Error) is
// converted to a first-class Error rather than crossing the Program
// boundary.
func result(act *activation.Activation, thunk Interpretable) (v types.Value) {
	defer func() {
		if r := recover(); r != nil {
			v = types.NewErrorValue(cerr.Newf(cerr.KindUnknown, "panic during evaluation: %v", r))
		}
	}()
	return thunk(act)
}

// Planner builds a Program from an AST in one post-order pass (spec.md
// §4.5 phase 1 "decorate"). It holds a running node counter but no other
// state; unlike the Evaluator, it runs once per compiled expression rather
// than once per evaluation.
type Planner struct {
	count int
}

// New creates a Planner.
func New() *Planner { return &Planner{} }

// Plan compiles expr into a Program (spec.md §4.5: "Produce a compiled
// closure whose evaluation is observably identical to the Evaluator's").
func (p *Planner) Plan(expr ast.Expr) *Program {
	root := p.plan(expr)
	return &Program{root: root, nodes: p.count}
}

func (p *Planner) plan(node ast.Expr) Interpretable {
	p.count++
	switch n := node.(type) {
	case *ast.IntLit:
		v := types.Int(n.Value)
		return func(*activation.Activation) types.Value { return v }
	case *ast.UintLit:
		v := types.Uint(n.Value)
		return func(*activation.Activation) types.Value { return v }
	case *ast.DoubleLit:
		v := types.Double(n.Value)
		return func(*activation.Activation) types.Value { return v }
	case *ast.StringLit:
		v := types.String(n.Value)
		return func(*activation.Activation) types.Value { return v }
	case *ast.BytesLit:
		v := types.Bytes(n.Value)
		return func(*activation.Activation) types.Value { return v }
	case *ast.BoolLit:
		v := types.Bool(n.Value)
		return func(*activation.Activation) types.Value { return v }
	case *ast.NullLit:
		return func(*activation.Activation) types.Value { return types.NullValue }
	case *ast.ParenExpr:
		return p.plan(n.Inner)
	case *ast.Ident:
		return p.planIdent(n)
	case *ast.ListExpr:
		return p.planList(n)
	case *ast.MapExpr:
		return p.planMap(n)
	case *ast.MessageExpr:
		return p.planMessage(n)
	case *ast.SelectExpr:
		return p.planSelect(n)
	case *ast.IndexExpr:
		return p.planIndex(n)
	case *ast.UnaryExpr:
		return p.planUnary(n)
	case *ast.BinaryExpr:
		return p.planBinary(n)
	case *ast.TernaryExpr:
		return p.planTernary(n)
	case *ast.CallExpr:
		return p.planCall(n)
	}
	return func(*activation.Activation) types.Value {
		return types.NewErrorValue(cerr.New(cerr.KindUnknown, "unplannable AST node"))
	}
}

func (p *Planner) planIdent(n *ast.Ident) Interpretable {
	name, absolute := n.Name, n.Absolute
	return func(act *activation.Activation) types.Value {
		ref, ok := act.Resolve(name, absolute)
		if !ok || ref.Value == nil {
			return types.NewErrorValue(cerr.UndeclaredReference(name, act.Package))
		}
		return ref.Value
	}
}

func (p *Planner) planList(n *ast.ListExpr) Interpretable {
	elems := make([]Interpretable, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = p.plan(e)
	}
	return func(act *activation.Activation) types.Value {
		out := make([]types.Value, len(elems))
		for i, fn := range elems {
			v := fn(act)
			if types.IsError(v) {
				return v
			}
			out[i] = v
		}
		return types.NewList(out)
	}
}

func (p *Planner) planMap(n *ast.MapExpr) Interpretable {
	type entry struct{ key, val Interpretable }
	entries := make([]entry, len(n.Entries))
	for i, e := range n.Entries {
		entries[i] = entry{p.plan(e.Key), p.plan(e.Value)}
	}
	return func(act *activation.Activation) types.Value {
		m := types.NewMap()
		for _, e := range entries {
			k := e.key(act)
			if types.IsError(k) {
				return k
			}
			v := e.val(act)
			if types.IsError(v) {
				return v
			}
			if err := m.Insert(k, v); err != nil {
				return types.NewErrorValue(err)
			}
		}
		return m
	}
}

func (p *Planner) planMessage(n *ast.MessageExpr) Interpretable {
	type field struct {
		name string
		val  Interpretable
	}
	fields := make([]field, len(n.Fields))
	fieldDefs := make([]ast.FieldInit, len(n.Fields))
	for i, f := range n.Fields {
		fields[i] = field{f.Name, p.plan(f.Value)}
		fieldDefs[i] = f
	}
	typeName := n.TypeName
	return func(act *activation.Activation) types.Value {
		desc := lookupDescriptor(act, typeName, fieldDefs)
		msg := types.NewMessage(desc)
		for _, f := range fields {
			v := f.val(act)
			if types.IsError(v) {
				return v
			}
			if err := msg.Set(f.name, v); err != nil {
				return types.NewErrorValue(err)
			}
		}
		return msg
	}
}

func lookupDescriptor(act *activation.Activation, typeName string, fields []ast.FieldInit) *types.MessageDescriptor {
	if ref, ok := act.Resolve(typeName, false); ok {
		if desc, ok := ref.Annotation.(*types.MessageDescriptor); ok {
			return desc
		}
	}
	fds := make([]types.FieldDescriptor, len(fields))
	for i, f := range fields {
		fds[i] = types.FieldDescriptor{Name: f.Name, Zero: types.NullValue, Singular: true}
	}
	return &types.MessageDescriptor{TypeName: typeName, Fields: fds}
}

func (p *Planner) planIndex(n *ast.IndexExpr) Interpretable {
	operand := p.plan(n.Operand)
	index := p.plan(n.Index)
	return func(act *activation.Activation) types.Value {
		o := operand(act)
		if types.IsError(o) {
			return o
		}
		i := index(act)
		if types.IsError(i) {
			return i
		}
		return callBase(act, "_[_]", o, i)
	}
}

func (p *Planner) planUnary(n *ast.UnaryExpr) Interpretable {
	operand := p.plan(n.Operand)
	op := n.Op
	return func(act *activation.Activation) types.Value {
		v := operand(act)
		if types.IsError(v) {
			return v
		}
		return callBase(act, op, v)
	}
}

// planTernary is the simplest of spec.md §4.5's "short-circuit-sensitive"
// nodes (conditional-or, conditional-and, ternary, macro member-calls,
// has): it must not evaluate the unchosen branch, so both branch closures
// are captured but only one is ever invoked per run (spec.md §5 Ordering
// guarantees: "evaluation of the suppressed branch never occurs").
func (p *Planner) planTernary(n *ast.TernaryExpr) Interpretable {
	cond := p.plan(n.Cond)
	then := p.plan(n.Then)
	els := p.plan(n.Else)
	return func(act *activation.Activation) types.Value {
		c := cond(act)
		b, ok := types.Truthy(c)
		if !ok {
			if e, ok := types.AsError(c); ok {
				return types.NewErrorValue(e)
			}
			return types.NewErrorValue(cerr.NoSuchOverload())
		}
		if b {
			return then(act)
		}
		return els(act)
	}
}

func callBase(act *activation.Activation, name string, args ...types.Value) types.Value {
	fn, ok := act.LookupFunction(name)
	if !ok {
		return types.NewErrorValue(cerr.UndeclaredReference(name, act.Package))
	}
	return fn(args)
}
