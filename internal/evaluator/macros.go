package evaluator

import (
	"math"

	"github.com/cwbudde/go-cel/internal/activation"
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/cerr"
	"github.com/cwbudde/go-cel/internal/types"
)

// macroNames are recognized only syntactically when they appear as
// `member.ident(bindVar, expr)` (spec.md §4.4): they do not visit their
// children via the default operator/function dispatch.
var macroNames = map[string]bool{
	"map": true, "filter": true, "all": true, "exists": true,
	"exists_one": true, "reduce": true, "min": true,
}

// evalCall dispatches free-function calls (`size(x)`, `has(e.f)`,
// `dyn(e)`), member-method macros (`source.map(x, expr)`), and ordinary
// member-method calls against the function table (spec.md §4.4).
func (e *Evaluator) evalCall(n *ast.CallExpr, act *activation.Activation) types.Value {
	if n.Target == nil {
		switch n.Function {
		case "has":
			return e.evalHas(n, act)
		case "dyn":
			if len(n.Args) != 1 {
				return types.NewErrorValue(cerr.InvalidArgument())
			}
			return e.Eval(n.Args[0], act)
		}
		return e.evalPlainCall(n, act)
	}
	if macroNames[n.Function] {
		return e.evalMacro(n, act)
	}
	return e.evalMethodCall(n, act)
}

func (e *Evaluator) evalPlainCall(n *ast.CallExpr, act *activation.Activation) types.Value {
	args := make([]types.Value, len(n.Args))
	for i, a := range n.Args {
		v := e.Eval(a, act)
		if types.IsError(v) {
			return v
		}
		args[i] = v
	}
	return callBase(act, n.Function, args...)
}

func (e *Evaluator) evalMethodCall(n *ast.CallExpr, act *activation.Activation) types.Value {
	target := e.Eval(n.Target, act)
	if types.IsError(target) {
		return target
	}
	args := make([]types.Value, 0, len(n.Args)+1)
	args = append(args, target)
	for _, a := range n.Args {
		v := e.Eval(a, act)
		if types.IsError(v) {
			return v
		}
		args = append(args, v)
	}
	return callBase(act, n.Function, args...)
}

// evalHas implements `has(e.f)` (spec.md §4.4): attempts the field-
// selection tree, returning false if any step errors, true otherwise.
// Does not return the field's value.
func (e *Evaluator) evalHas(n *ast.CallExpr, act *activation.Activation) types.Value {
	if len(n.Args) != 1 {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	sel, ok := n.Args[0].(*ast.SelectExpr)
	if !ok {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	testSel := *sel
	testSel.TestOnly = true
	return e.evalSelect(&testSel, act)
}

// sourceElements extracts the iteration order for a macro source value:
// List elements in order, or a Map's keys in its pair order, matching
// CEL's convention that `m.map(e, ...)` binds `e` to each key for Map
// sources; map values are not bound (spec.md §4.4,
// §5 "undefined-but-stable [map order] within a single evaluation").
func sourceElements(v types.Value) ([]types.Value, *cerr.Error) {
	switch x := v.(type) {
	case *types.List:
		return x.Elements, nil
	case *types.Map:
		pairs := x.Pairs()
		keys := make([]types.Value, len(pairs))
		for i, p := range pairs {
			keys[i] = p.Key
		}
		return keys, nil
	}
	return nil, cerr.NoSuchOverload()
}

// evalMacro implements map/filter/all/exists/exists_one/reduce/min
// (spec.md §4.4).
func (e *Evaluator) evalMacro(n *ast.CallExpr, act *activation.Activation) types.Value {
	switch n.Function {
	case "map":
		return e.macroMap(n, act)
	case "filter":
		return e.macroFilter(n, act)
	case "all":
		return e.macroAllExists(n, act, true)
	case "exists":
		return e.macroAllExists(n, act, false)
	case "exists_one":
		return e.macroExistsOne(n, act)
	case "reduce":
		return e.macroReduce(n, act)
	case "min":
		return e.macroMin(n, act)
	}
	return types.NewErrorValue(cerr.NoSuchOverload())
}

func bindVarName(expr ast.Expr) (string, bool) {
	id, ok := expr.(*ast.Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}

// macroMap implements `source.map(bindVar, expr)`: iterate source,
// evaluate expr in a nested activation binding bindVar, collect into a
// List.
func (e *Evaluator) macroMap(n *ast.CallExpr, act *activation.Activation) types.Value {
	if len(n.Args) != 2 {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	bindVar, ok := bindVarName(n.Args[0])
	if !ok {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	source := e.Eval(n.Target, act)
	if types.IsError(source) {
		return source
	}
	elems, err := sourceElements(source)
	if err != nil {
		return types.NewErrorValue(err)
	}
	out := make([]types.Value, len(elems))
	for i, el := range elems {
		frame := act.NewChildFrame(bindVar, el)
		v := e.Eval(n.Args[1], frame)
		if types.IsError(v) {
			return v
		}
		out[i] = v
	}
	return types.NewList(out)
}

// macroFilter implements `source.filter(bindVar, expr)`: same iteration,
// keeping elements for which expr is truthy.
func (e *Evaluator) macroFilter(n *ast.CallExpr, act *activation.Activation) types.Value {
	if len(n.Args) != 2 {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	bindVar, ok := bindVarName(n.Args[0])
	if !ok {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	source := e.Eval(n.Target, act)
	if types.IsError(source) {
		return source
	}
	elems, err := sourceElements(source)
	if err != nil {
		return types.NewErrorValue(err)
	}
	var out []types.Value
	for _, el := range elems {
		frame := act.NewChildFrame(bindVar, el)
		v := e.Eval(n.Args[1], frame)
		if types.IsError(v) {
			return v
		}
		b, ok := types.Truthy(v)
		if !ok {
			return types.NewErrorValue(cerr.NoSuchOverload())
		}
		if b {
			out = append(out, el)
		}
	}
	return types.NewList(out)
}

// macroAllExists implements `all`/`exists`: fold via logical AND/OR with
// short-circuit-preserving semantics — Errors in element evaluations are
// deferred, not raised immediately (spec.md §4.4).
func (e *Evaluator) macroAllExists(n *ast.CallExpr, act *activation.Activation, isAll bool) types.Value {
	if len(n.Args) != 2 {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	bindVar, ok := bindVarName(n.Args[0])
	if !ok {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	source := e.Eval(n.Target, act)
	if types.IsError(source) {
		return source
	}
	elems, err := sourceElements(source)
	if err != nil {
		return types.NewErrorValue(err)
	}
	var deferred types.Value
	for _, el := range elems {
		frame := act.NewChildFrame(bindVar, el)
		v := e.Eval(n.Args[1], frame)
		b, ok := types.Truthy(v)
		if !ok {
			if deferred == nil {
				if ev, ok := types.AsError(v); ok {
					deferred = types.NewErrorValue(ev)
				} else {
					deferred = types.NewErrorValue(cerr.NoSuchOverload())
				}
			}
			continue
		}
		if isAll && !b {
			return types.Bool(false)
		}
		if !isAll && b {
			return types.Bool(true)
		}
	}
	if deferred != nil {
		return deferred
	}
	return types.Bool(isAll)
}

// macroExistsOne implements `exists_one`: count truthy; result is the
// count being exactly one.
func (e *Evaluator) macroExistsOne(n *ast.CallExpr, act *activation.Activation) types.Value {
	if len(n.Args) != 2 {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	bindVar, ok := bindVarName(n.Args[0])
	if !ok {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	source := e.Eval(n.Target, act)
	if types.IsError(source) {
		return source
	}
	elems, err := sourceElements(source)
	if err != nil {
		return types.NewErrorValue(err)
	}
	count := 0
	for _, el := range elems {
		frame := act.NewChildFrame(bindVar, el)
		v := e.Eval(n.Args[1], frame)
		if types.IsError(v) {
			return v
		}
		b, ok := types.Truthy(v)
		if !ok {
			return types.NewErrorValue(cerr.NoSuchOverload())
		}
		if b {
			count++
		}
	}
	return types.Bool(count == 1)
}

// macroReduce implements `reduce(accVar, itemVar, init, step)`: classic
// left fold.
func (e *Evaluator) macroReduce(n *ast.CallExpr, act *activation.Activation) types.Value {
	if len(n.Args) != 4 {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	accVar, ok := bindVarName(n.Args[0])
	if !ok {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	itemVar, ok := bindVarName(n.Args[1])
	if !ok {
		return types.NewErrorValue(cerr.InvalidArgument())
	}
	source := e.Eval(n.Target, act)
	if types.IsError(source) {
		return source
	}
	elems, err := sourceElements(source)
	if err != nil {
		return types.NewErrorValue(err)
	}
	acc := e.Eval(n.Args[2], act)
	if types.IsError(acc) {
		return acc
	}
	for _, el := range elems {
		frame := act.NewChildFrame(accVar, acc)
		frame.Names.LoadValue(itemVar, el)
		acc = e.Eval(n.Args[3], frame)
		if types.IsError(acc) {
			return acc
		}
	}
	return acc
}

// macroMin implements `min()` as reduce(a, i, +∞, a < i ? a : i)` with
// empty-sequence → Error (spec.md §4.4).
func (e *Evaluator) macroMin(n *ast.CallExpr, act *activation.Activation) types.Value {
	source := e.Eval(n.Target, act)
	if types.IsError(source) {
		return source
	}
	elems, err := sourceElements(source)
	if err != nil {
		return types.NewErrorValue(err)
	}
	if len(elems) == 0 {
		return types.NewErrorValue(cerr.New(cerr.KindInvalidArgument, "min() of empty sequence"))
	}
	acc := types.Value(types.Double(math.Inf(1)))
	for _, el := range elems {
		if types.IsError(el) {
			return el
		}
		ord, cerr2 := types.Compare(acc, el)
		if cerr2 != nil {
			return types.NewErrorValue(cerr2)
		}
		if ord == types.GT {
			acc = el
		}
	}
	return acc
}
