// Package evaluator implements CEL's tree-walking Evaluator (spec.md §4.4):
// `evaluate(tree, activation) → Value | Error`, dispatching on AST node
// kind, honoring commutative short-circuit semantics for `&&`, `||`, and
// the ternary, and recognizing the macro call forms.
//
// Grounded on the teacher's internal/interp/evaluator package: a single
// Evaluator type with one method per node kind (core_evaluator.go,
// binary_ops.go's evalAndOp/evalCoalesceOp short-circuit shape), and the
// env_adapter/context pairing generalized here into internal/activation.
package evaluator

import (
	"github.com/cwbudde/go-cel/internal/activation"
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/cerr"
	"github.com/cwbudde/go-cel/internal/namespace"
	"github.com/cwbudde/go-cel/internal/types"
)

// Evaluator is the tree-walking interpreter. It holds no per-evaluation
// state; all of that lives in the Activation threaded through Eval.
type Evaluator struct{}

// New creates an Evaluator. There is nothing to configure; macros and
// operators are resolved through the Activation's function table, not
// through Evaluator fields (spec.md §4.3).
func New() *Evaluator { return &Evaluator{} }

// Eval implements evaluate(tree, activation) → Value | Error (spec.md
// §4.4). It never panics on well-formed input; malformed AST (a node kind
// Eval doesn't recognize) is the one case treated as an unrecoverable bug.
func (e *Evaluator) Eval(node ast.Expr, act *activation.Activation) types.Value {
	switch n := node.(type) {
	case *ast.IntLit:
		return types.Int(n.Value)
	case *ast.UintLit:
		return types.Uint(n.Value)
	case *ast.DoubleLit:
		return types.Double(n.Value)
	case *ast.StringLit:
		return types.String(n.Value)
	case *ast.BytesLit:
		return types.Bytes(n.Value)
	case *ast.BoolLit:
		return types.Bool(n.Value)
	case *ast.NullLit:
		return types.NullValue
	case *ast.ParenExpr:
		return e.Eval(n.Inner, act)
	case *ast.Ident:
		return e.evalIdent(n, act)
	case *ast.ListExpr:
		return e.evalList(n, act)
	case *ast.MapExpr:
		return e.evalMap(n, act)
	case *ast.MessageExpr:
		return e.evalMessage(n, act)
	case *ast.SelectExpr:
		return e.evalSelect(n, act)
	case *ast.IndexExpr:
		return e.evalIndex(n, act)
	case *ast.UnaryExpr:
		return e.evalUnary(n, act)
	case *ast.BinaryExpr:
		return e.evalBinary(n, act)
	case *ast.TernaryExpr:
		return e.evalTernary(n, act)
	case *ast.CallExpr:
		return e.evalCall(n, act)
	}
	return types.NewErrorValue(cerr.New(cerr.KindUnknown, "unrecognized AST node"))
}

// evalIdent resolves a bare identifier through the Activation's name chain
// (spec.md §4.2 Resolve-name). An unresolved name is "undeclared reference"
// (spec.md §4.4).
func (e *Evaluator) evalIdent(n *ast.Ident, act *activation.Activation) types.Value {
	ref, ok := act.Resolve(n.Name, n.Absolute)
	if !ok {
		return types.NewErrorValue(cerr.UndeclaredReference(n.Name, act.Package))
	}
	if ref.Value != nil {
		return ref.Value
	}
	return types.NewErrorValue(cerr.UndeclaredReference(n.Name, act.Package))
}

func (e *Evaluator) evalList(n *ast.ListExpr, act *activation.Activation) types.Value {
	elems := make([]types.Value, len(n.Elements))
	for i, el := range n.Elements {
		v := e.Eval(el, act)
		if types.IsError(v) {
			return v
		}
		elems[i] = v
	}
	return types.NewList(elems)
}

func (e *Evaluator) evalMap(n *ast.MapExpr, act *activation.Activation) types.Value {
	m := types.NewMap()
	for _, entry := range n.Entries {
		k := e.Eval(entry.Key, act)
		if types.IsError(k) {
			return k
		}
		v := e.Eval(entry.Value, act)
		if types.IsError(v) {
			return v
		}
		if err := m.Insert(k, v); err != nil {
			return types.NewErrorValue(err)
		}
	}
	return m
}

// evalMessage evaluates a typed message-construction literal. A host
// registers a *types.MessageDescriptor per type name as a NameContainer
// annotation (see pkg/cel.Environment); when none is registered, the
// literal's own field names become an ad-hoc schema so construction still
// succeeds for expressions that don't rely on a host-declared type.
func (e *Evaluator) evalMessage(n *ast.MessageExpr, act *activation.Activation) types.Value {
	desc := lookupDescriptor(act, n.TypeName, n.Fields)
	msg := types.NewMessage(desc)
	for _, f := range n.Fields {
		v := e.Eval(f.Value, act)
		if types.IsError(v) {
			return v
		}
		if err := msg.Set(f.Name, v); err != nil {
			return types.NewErrorValue(err)
		}
	}
	return msg
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

// evalSelect implements field selection `a.b` (spec.md §4.4): NameContainer
// child, Map sugar, or Message field, in that order. TestOnly nodes (the
// argument of has(e.f)) absorb every failure mode into `false`.
//
// A chain of bare identifiers (`a.b.c`) is resolved as one dotted
// NameContainer path rather than per-level Eval, because an intermediate
// segment (e.g. `a.b` when only `a.b.c` was loaded) is a pure namespace
// with no Value of its own — evaluating it as an expression would
// incorrectly fail with "undeclared reference".
func (e *Evaluator) evalSelect(n *ast.SelectExpr, act *activation.Activation) types.Value {
	if path, absolute, ok := identPath(n); ok {
		if ref, ok := act.Resolve(path[0], absolute); ok {
			if inner, ok := resolveRest(ref, path[1:]); ok {
				if n.TestOnly {
					return types.Bool(inner.Value != nil || inner.Container != nil)
				}
				if inner.Value != nil {
					return inner.Value
				}
			}
			// resolveRest failing here means path[0] has no nested
			// namespace for the remaining segments; fall through and try
			// it as an ordinary Value (Map/Message field selection).
		}
	}
	operand := e.Eval(n.Operand, act)
	if types.IsError(operand) {
		if n.TestOnly {
			return types.Bool(false)
		}
		return operand
	}
	if n.TestOnly {
		return types.Bool(testFieldPresence(operand, n.Field))
	}
	v, err := selectField(operand, n.Field)
	if err != nil {
		return types.NewErrorValue(err)
	}
	return v
}

// testFieldPresence implements has(e.f)'s presence test (spec.md §4.4, §9):
// Map membership, or a Message field's explicit-assignment bit (see
// types.Message.IsSet) rather than selectField's zero-value fallback, so an
// unset singular field reports false instead of true.
func testFieldPresence(v types.Value, field string) bool {
	switch x := v.(type) {
	case *types.Map:
		found, err := x.Contains(types.String(field))
		if err != nil {
			return false
		}
		return bool(found)
	case *types.Message:
		set, err := x.IsSet(field)
		if err != nil {
			return false
		}
		return set
	}
	return false
}

// identPath flattens a chain of SelectExpr nodes over a root Ident into a
// dotted path (["a", "b", "c"] for `a.b.c`), reporting whether n's entire
// operand chain is identifier-based and whether the root carries the
// leading-dot escape.
func identPath(n *ast.SelectExpr) ([]string, bool, bool) {
	var segs []string
	var cur ast.Expr = n.Operand
	segs = append(segs, n.Field)
	for {
		switch x := cur.(type) {
		case *ast.Ident:
			segs = append(segs, x.Name)
			reverse(segs)
			return segs, x.Absolute, true
		case *ast.SelectExpr:
			segs = append(segs, x.Field)
			cur = x.Operand
		default:
			return nil, false, false
		}
	}
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// resolveRest walks the remaining path segments through nested Referent
// containers, the same single-pass logic as NameContainer.FindName but
// starting from an already-resolved root Referent (spec.md §4.2).
func resolveRest(ref *namespace.Referent, rest []string) (*namespace.Referent, bool) {
	cur := ref
	for _, seg := range rest {
		if cur.Container == nil {
			return nil, false
		}
		next, ok := cur.Container.FindName([]string{seg})
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// selectField implements the Map/Message branches of spec.md §4.4 field
// selection.
func selectField(v types.Value, field string) (types.Value, *cerr.Error) {
	switch x := v.(type) {
	case *types.Map:
		found, err := x.Get(types.String(field))
		if err != nil {
			return nil, cerr.NoSuchMember(field)
		}
		return found, nil
	case *types.Message:
		found, err := x.Get(field)
		if err != nil {
			return nil, err
		}
		return found, nil
	}
	return nil, cerr.DoesNotSupportFieldSelection()
}

// evalIndex implements `a[i]` by delegating to the `_[_]` base function,
// the same dispatch path a user override would take (spec.md §4.3).
func (e *Evaluator) evalIndex(n *ast.IndexExpr, act *activation.Activation) types.Value {
	operand := e.Eval(n.Operand, act)
	if types.IsError(operand) {
		return operand
	}
	idx := e.Eval(n.Index, act)
	if types.IsError(idx) {
		return idx
	}
	return callBase(act, "_[_]", operand, idx)
}

func (e *Evaluator) evalUnary(n *ast.UnaryExpr, act *activation.Activation) types.Value {
	operand := e.Eval(n.Operand, act)
	if types.IsError(operand) {
		return operand
	}
	return callBase(act, n.Op, operand)
}

// callBase looks up name in the Activation's function table and applies
// it, reporting "undeclared reference" if the host removed a base entry
// entirely (should not happen for operator names, but macros/functions can
// be shadowed away).
func callBase(act *activation.Activation, name string, args ...types.Value) types.Value {
	fn, ok := act.LookupFunction(name)
	if !ok {
		return types.NewErrorValue(cerr.UndeclaredReference(name, act.Package))
	}
	return fn(args)
}
