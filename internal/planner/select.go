package planner

import (
	"github.com/cwbudde/go-cel/internal/activation"
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/cerr"
	"github.com/cwbudde/go-cel/internal/namespace"
	"github.com/cwbudde/go-cel/internal/types"
)

// planSelect plans field selection `a.b` (spec.md §4.4). The identifier-
// chain fast path is resolved once at plan time into a static dotted path
// and flag, not re-derived on every run, which is the actual payoff of a
// closure planner over the tree-walking Evaluator for this node kind.
func (p *Planner) planSelect(n *ast.SelectExpr) Interpretable {
	if path, absolute, ok := identPath(n); ok {
		operand := p.plan(n.Operand)
		testOnly := n.TestOnly
		field := n.Field
		return func(act *activation.Activation) types.Value {
			if ref, ok := act.Resolve(path[0], absolute); ok {
				if inner, ok := resolveRest(ref, path[1:]); ok {
					if testOnly {
						return types.Bool(inner.Value != nil || inner.Container != nil)
					}
					if inner.Value != nil {
						return inner.Value
					}
				}
			}
			return selectFallback(operand(act), field, testOnly)
		}
	}
	operand := p.plan(n.Operand)
	field := n.Field
	testOnly := n.TestOnly
	return func(act *activation.Activation) types.Value {
		return selectFallback(operand(act), field, testOnly)
	}
}

func selectFallback(operand types.Value, field string, testOnly bool) types.Value {
	if types.IsError(operand) {
		if testOnly {
			return types.Bool(false)
		}
		return operand
	}
	if testOnly {
		return types.Bool(testFieldPresence(operand, field))
	}
	v, err := selectField(operand, field)
	if err != nil {
		return types.NewErrorValue(err)
	}
	return v
}

// testFieldPresence mirrors internal/evaluator's helper of the same name:
// Map membership, or a Message field's explicit-assignment bit, instead of
// selectField's zero-value-on-success fallback.
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

func identPath(n *ast.SelectExpr) ([]string, bool, bool) {
	var segs []string
	var cur ast.Expr = n.Operand
	segs = append(segs, n.Field)
	for {
		switch x := cur.(type) {
		case *ast.Ident:
			segs = append(segs, x.Name)
			reverseStrings(segs)
			return segs, x.Absolute, true
		case *ast.SelectExpr:
			segs = append(segs, x.Field)
			cur = x.Operand
		default:
			return nil, false, false
		}
	}
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

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
