package planner

import (
	"math"

	"github.com/cwbudde/go-cel/internal/activation"
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/cerr"
	"github.com/cwbudde/go-cel/internal/types"
)

var macroNames = map[string]bool{
	"map": true, "filter": true, "all": true, "exists": true,
	"exists_one": true, "reduce": true, "min": true,
}

// planCall plans free-function calls, member macros, and ordinary member
// calls (spec.md §4.4, §4.5 "Macro lowering"). Macro member-calls are
// short-circuit-sensitive nodes in spec.md §4.5's sense: `has` and the
// macros never evaluate their bound sub-expression via the default
// call-argument path, so they get dedicated planning here rather than
// going through planPlainCall/planMethodCall.
func (p *Planner) planCall(n *ast.CallExpr) Interpretable {
	if n.Target == nil {
		switch n.Function {
		case "has":
			return p.planHas(n)
		case "dyn":
			if len(n.Args) != 1 {
				return constError(cerr.InvalidArgument())
			}
			return p.plan(n.Args[0])
		}
		return p.planPlainCall(n)
	}
	if macroNames[n.Function] {
		return p.planMacro(n)
	}
	return p.planMethodCall(n)
}

func constError(e *cerr.Error) Interpretable {
	v := types.NewErrorValue(e)
	return func(*activation.Activation) types.Value { return v }
}

func (p *Planner) planPlainCall(n *ast.CallExpr) Interpretable {
	args := make([]Interpretable, len(n.Args))
	for i, a := range n.Args {
		args[i] = p.plan(a)
	}
	fn := n.Function
	return func(act *activation.Activation) types.Value {
		vals := make([]types.Value, len(args))
		for i, a := range args {
			v := a(act)
			if types.IsError(v) {
				return v
			}
			vals[i] = v
		}
		return callBase(act, fn, vals...)
	}
}

func (p *Planner) planMethodCall(n *ast.CallExpr) Interpretable {
	target := p.plan(n.Target)
	args := make([]Interpretable, len(n.Args))
	for i, a := range n.Args {
		args[i] = p.plan(a)
	}
	fn := n.Function
	return func(act *activation.Activation) types.Value {
		t := target(act)
		if types.IsError(t) {
			return t
		}
		vals := make([]types.Value, 0, len(args)+1)
		vals = append(vals, t)
		for _, a := range args {
			v := a(act)
			if types.IsError(v) {
				return v
			}
			vals = append(vals, v)
		}
		return callBase(act, fn, vals...)
	}
}

func (p *Planner) planHas(n *ast.CallExpr) Interpretable {
	if len(n.Args) != 1 {
		return constError(cerr.InvalidArgument())
	}
	sel, ok := n.Args[0].(*ast.SelectExpr)
	if !ok {
		return constError(cerr.InvalidArgument())
	}
	testSel := *sel
	testSel.TestOnly = true
	return p.planSelect(&testSel)
}

func sourceElements(v types.Value) ([]types.Value, *cerr.Error) {
	switch x := v.(type) {
	case *types.List:
		return x.Elements, nil
	case *types.Map:
		pairs := x.Pairs()
		keys := make([]types.Value, len(pairs))
		for i, pr := range pairs {
			keys[i] = pr.Key
		}
		return keys, nil
	}
	return nil, cerr.NoSuchOverload()
}

func bindVarName(expr ast.Expr) (string, bool) {
	id, ok := expr.(*ast.Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}

func (p *Planner) planMacro(n *ast.CallExpr) Interpretable {
	switch n.Function {
	case "map":
		return p.planMacroMap(n)
	case "filter":
		return p.planMacroFilter(n)
	case "all":
		return p.planMacroAllExists(n, true)
	case "exists":
		return p.planMacroAllExists(n, false)
	case "exists_one":
		return p.planMacroExistsOne(n)
	case "reduce":
		return p.planMacroReduce(n)
	case "min":
		return p.planMacroMin(n)
	}
	return constError(cerr.NoSuchOverload())
}

func (p *Planner) planMacroMap(n *ast.CallExpr) Interpretable {
	if len(n.Args) != 2 {
		return constError(cerr.InvalidArgument())
	}
	bindVar, ok := bindVarName(n.Args[0])
	if !ok {
		return constError(cerr.InvalidArgument())
	}
	source := p.plan(n.Target)
	body := p.plan(n.Args[1])
	return func(act *activation.Activation) types.Value {
		src := source(act)
		if types.IsError(src) {
			return src
		}
		elems, err := sourceElements(src)
		if err != nil {
			return types.NewErrorValue(err)
		}
		out := make([]types.Value, len(elems))
		for i, el := range elems {
			frame := act.NewChildFrame(bindVar, el)
			v := body(frame)
			if types.IsError(v) {
				return v
			}
			out[i] = v
		}
		return types.NewList(out)
	}
}

func (p *Planner) planMacroFilter(n *ast.CallExpr) Interpretable {
	if len(n.Args) != 2 {
		return constError(cerr.InvalidArgument())
	}
	bindVar, ok := bindVarName(n.Args[0])
	if !ok {
		return constError(cerr.InvalidArgument())
	}
	source := p.plan(n.Target)
	body := p.plan(n.Args[1])
	return func(act *activation.Activation) types.Value {
		src := source(act)
		if types.IsError(src) {
			return src
		}
		elems, err := sourceElements(src)
		if err != nil {
			return types.NewErrorValue(err)
		}
		var out []types.Value
		for _, el := range elems {
			frame := act.NewChildFrame(bindVar, el)
			v := body(frame)
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
}

func (p *Planner) planMacroAllExists(n *ast.CallExpr, isAll bool) Interpretable {
	if len(n.Args) != 2 {
		return constError(cerr.InvalidArgument())
	}
	bindVar, ok := bindVarName(n.Args[0])
	if !ok {
		return constError(cerr.InvalidArgument())
	}
	source := p.plan(n.Target)
	body := p.plan(n.Args[1])
	return func(act *activation.Activation) types.Value {
		src := source(act)
		if types.IsError(src) {
			return src
		}
		elems, err := sourceElements(src)
		if err != nil {
			return types.NewErrorValue(err)
		}
		var deferred types.Value
		for _, el := range elems {
			frame := act.NewChildFrame(bindVar, el)
			v := body(frame)
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
}

func (p *Planner) planMacroExistsOne(n *ast.CallExpr) Interpretable {
	if len(n.Args) != 2 {
		return constError(cerr.InvalidArgument())
	}
	bindVar, ok := bindVarName(n.Args[0])
	if !ok {
		return constError(cerr.InvalidArgument())
	}
	source := p.plan(n.Target)
	body := p.plan(n.Args[1])
	return func(act *activation.Activation) types.Value {
		src := source(act)
		if types.IsError(src) {
			return src
		}
		elems, err := sourceElements(src)
		if err != nil {
			return types.NewErrorValue(err)
		}
		count := 0
		for _, el := range elems {
			frame := act.NewChildFrame(bindVar, el)
			v := body(frame)
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
}

func (p *Planner) planMacroReduce(n *ast.CallExpr) Interpretable {
	if len(n.Args) != 4 {
		return constError(cerr.InvalidArgument())
	}
	accVar, ok := bindVarName(n.Args[0])
	if !ok {
		return constError(cerr.InvalidArgument())
	}
	itemVar, ok := bindVarName(n.Args[1])
	if !ok {
		return constError(cerr.InvalidArgument())
	}
	source := p.plan(n.Target)
	init := p.plan(n.Args[2])
	step := p.plan(n.Args[3])
	return func(act *activation.Activation) types.Value {
		src := source(act)
		if types.IsError(src) {
			return src
		}
		elems, err := sourceElements(src)
		if err != nil {
			return types.NewErrorValue(err)
		}
		acc := init(act)
		if types.IsError(acc) {
			return acc
		}
		for _, el := range elems {
			frame := act.NewChildFrame(accVar, acc)
			frame.Names.LoadValue(itemVar, el)
			acc = step(frame)
			if types.IsError(acc) {
				return acc
			}
		}
		return acc
	}
}

func (p *Planner) planMacroMin(n *ast.CallExpr) Interpretable {
	source := p.plan(n.Target)
	return func(act *activation.Activation) types.Value {
		src := source(act)
		if types.IsError(src) {
			return src
		}
		elems, err := sourceElements(src)
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
}
