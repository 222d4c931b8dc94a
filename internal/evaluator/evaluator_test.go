package evaluator

import (
	"testing"

	"github.com/cwbudde/go-cel/internal/activation"
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/celfunc"
	"github.com/cwbudde/go-cel/internal/token"
	"github.com/cwbudde/go-cel/internal/types"
)

func newActivation() *activation.Activation {
	return activation.New("", celfunc.BaseTable())
}

var pos = token.Position{}

// TestShortCircuitCommutativity exercises spec.md §8's commutative
// short-circuit property: `true || X` and `X || true` both produce `true`
// for an erroring X, and symmetrically `false && X` / `X && false`
// both produce `false`, regardless of which side errors.
func TestShortCircuitCommutativity(t *testing.T) {
	errExpr := ast.NewCallExpr(pos, nil, "undeclaredFreeFn", nil)
	trueExpr := ast.NewBoolLit(pos, true)
	falseExpr := ast.NewBoolLit(pos, false)

	e := New()
	act := newActivation()

	orLeftErr := ast.NewBinaryExpr(pos, "_||_", errExpr, trueExpr)
	orRightErr := ast.NewBinaryExpr(pos, "_||_", trueExpr, errExpr)
	if got := e.Eval(orLeftErr, act); got != types.Bool(true) {
		t.Fatalf("error || true: want true, got %v", got)
	}
	if got := e.Eval(orRightErr, act); got != types.Bool(true) {
		t.Fatalf("true || error: want true, got %v", got)
	}

	andLeftErr := ast.NewBinaryExpr(pos, "_&&_", errExpr, falseExpr)
	andRightErr := ast.NewBinaryExpr(pos, "_&&_", falseExpr, errExpr)
	if got := e.Eval(andLeftErr, act); got != types.Bool(false) {
		t.Fatalf("error && false: want false, got %v", got)
	}
	if got := e.Eval(andRightErr, act); got != types.Bool(false) {
		t.Fatalf("false && error: want false, got %v", got)
	}

	// The error must still propagate when it cannot be masked.
	orBothErr := ast.NewBinaryExpr(pos, "_||_", errExpr, falseExpr)
	if got := e.Eval(orBothErr, act); !types.IsError(got) {
		t.Fatalf("error || false: want Error, got %v", got)
	}
	andBothErr := ast.NewBinaryExpr(pos, "_&&_", errExpr, trueExpr)
	if got := e.Eval(andBothErr, act); !types.IsError(got) {
		t.Fatalf("error && true: want Error, got %v", got)
	}
}

// TestHasOnUnsetSingularField is the regression for DESIGN.md's proto3
// has() decision: a declared-but-never-assigned singular field must report
// false, not true, even though Message.Get happily returns its zero value.
func TestHasOnUnsetSingularField(t *testing.T) {
	desc := &types.MessageDescriptor{
		TypeName: "T",
		Fields: []types.FieldDescriptor{
			{Name: "x", Zero: types.Int(0), Singular: true},
		},
	}
	msg := types.NewMessage(desc)

	e := New()
	act := newActivation()
	act.Names.LoadValue("msg", msg)

	hasExpr := ast.NewCallExpr(pos, nil, "has", []ast.Expr{
		ast.NewSelectExpr(pos, ast.NewIdent(pos, "msg", false), "x"),
	})

	if got := e.Eval(hasExpr, act); got != types.Bool(false) {
		t.Fatalf("has() on unset field: want false, got %v", got)
	}

	if err := msg.Set("x", types.Int(0)); err != nil {
		t.Fatalf("unexpected Set error: %v", err)
	}
	if got := e.Eval(hasExpr, act); got != types.Bool(true) {
		t.Fatalf("has() on explicitly-set field (even at its zero value): want true, got %v", got)
	}
}

// TestHasOnMap exercises the Map branch of has(), key membership rather
// than field presence.
func TestHasOnMap(t *testing.T) {
	m := types.NewMap()
	e := New()
	act := newActivation()
	act.Names.LoadValue("m", m)

	hasExpr := ast.NewCallExpr(pos, nil, "has", []ast.Expr{
		ast.NewSelectExpr(pos, ast.NewIdent(pos, "m", false), "k"),
	})
	if got := e.Eval(hasExpr, act); got != types.Bool(false) {
		t.Fatalf("has() on absent map key: want false, got %v", got)
	}

	if err := m.Insert(types.String("k"), types.Int(1)); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	if got := e.Eval(hasExpr, act); got != types.Bool(true) {
		t.Fatalf("has() on present map key: want true, got %v", got)
	}
}
