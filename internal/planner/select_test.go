package planner

import (
	"testing"

	"github.com/cwbudde/go-cel/internal/activation"
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/celfunc"
	"github.com/cwbudde/go-cel/internal/token"
	"github.com/cwbudde/go-cel/internal/types"
)

var pos = token.Position{}

func newActivation() *activation.Activation {
	return activation.New("", celfunc.BaseTable())
}

// TestHasOnUnsetSingularField mirrors internal/evaluator's regression for
// the same bug: the planned closure for has() must also use
// Message.IsSet rather than treat a successful zero-value Get as presence.
func TestHasOnUnsetSingularField(t *testing.T) {
	desc := &types.MessageDescriptor{
		TypeName: "T",
		Fields: []types.FieldDescriptor{
			{Name: "x", Zero: types.Int(0), Singular: true},
		},
	}
	msg := types.NewMessage(desc)

	act := newActivation()
	act.Names.LoadValue("msg", msg)

	hasExpr := ast.NewCallExpr(pos, nil, "has", []ast.Expr{
		ast.NewSelectExpr(pos, ast.NewIdent(pos, "msg", false), "x"),
	})

	p := New()
	prog := p.Plan(hasExpr)

	if got := prog.Run(act); got != types.Bool(false) {
		t.Fatalf("has() on unset field: want false, got %v", got)
	}

	if err := msg.Set("x", types.Int(0)); err != nil {
		t.Fatalf("unexpected Set error: %v", err)
	}
	if got := prog.Run(act); got != types.Bool(true) {
		t.Fatalf("has() on explicitly-set field (even at its zero value): want true, got %v", got)
	}
}

func TestHasOnMap(t *testing.T) {
	m := types.NewMap()
	act := newActivation()
	act.Names.LoadValue("m", m)

	hasExpr := ast.NewCallExpr(pos, nil, "has", []ast.Expr{
		ast.NewSelectExpr(pos, ast.NewIdent(pos, "m", false), "k"),
	})
	p := New()
	prog := p.Plan(hasExpr)

	if got := prog.Run(act); got != types.Bool(false) {
		t.Fatalf("has() on absent map key: want false, got %v", got)
	}
	if err := m.Insert(types.String("k"), types.Int(1)); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	if got := prog.Run(act); got != types.Bool(true) {
		t.Fatalf("has() on present map key: want true, got %v", got)
	}
}
