package parser

import (
	"testing"

	"github.com/cwbudde/go-cel/internal/ast"
)

func mustParse(t *testing.T, source string) ast.Expr {
	t.Helper()
	expr, errs := Parse(source)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", source, errs)
	}
	return expr
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 < 2 && 3 < 4", "((1 < 2) && (3 < 4))"},
		{"a || b && c", "(a || (b && c))"},
		{"-1 + 2", "(-1 + 2)"},
		{"!a && b", "(!a && b)"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := mustParse(t, tt.source).String()
			if got != tt.want {
				t.Fatalf("Parse(%q).String() = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

// TestTernaryRightAssociative exercises spec.md §6's grammar shape: only
// the else-branch of a ternary may itself be a nested ternary, and nested
// ternaries on the right associate right-to-left.
func TestTernaryRightAssociative(t *testing.T) {
	got := mustParse(t, "a ? b : c ? d : e").String()
	want := "(a ? b : (c ? d : e))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTernaryThenCannotSwallowNextQuestion(t *testing.T) {
	// The `then` branch binds at `ternary` precedence, so it must stop
	// before the next top-level `?` rather than absorbing it.
	got := mustParse(t, "a ? b ? c : d : e").String()
	want := "(a ? (b ? c : d) : e)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseLeadingDotIdent(t *testing.T) {
	expr := mustParse(t, ".pkg.name")
	sel, ok := expr.(*ast.SelectExpr)
	if !ok {
		t.Fatalf("want *ast.SelectExpr for .pkg.name, got %T", expr)
	}
	if sel.Field != "name" {
		t.Fatalf("want outer field 'name', got %q", sel.Field)
	}
	ident, ok := sel.Operand.(*ast.Ident)
	if !ok {
		t.Fatalf("want leading-dot chain root to be *ast.Ident, got %T", sel.Operand)
	}
	if !ident.Absolute {
		t.Fatalf("want leading-dot ident to be Absolute")
	}
}

func TestParseMessageLiteral(t *testing.T) {
	expr := mustParse(t, "pkg.Type{f: 1}")
	msg, ok := expr.(*ast.MessageExpr)
	if !ok {
		t.Fatalf("want *ast.MessageExpr, got %T", expr)
	}
	if msg.TypeName != "pkg.Type" {
		t.Fatalf("want type name pkg.Type, got %q", msg.TypeName)
	}
	if len(msg.Fields) != 1 || msg.Fields[0].Name != "f" {
		t.Fatalf("want single field f, got %+v", msg.Fields)
	}
}

func TestParseHasMacroCall(t *testing.T) {
	expr := mustParse(t, "has(e.f)")
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("want *ast.CallExpr, got %T", expr)
	}
	if call.Function != "has" || call.Target != nil || len(call.Args) != 1 {
		t.Fatalf("want free-function has() with one arg, got %+v", call)
	}
	if _, ok := call.Args[0].(*ast.SelectExpr); !ok {
		t.Fatalf("want has() argument to be a SelectExpr, got %T", call.Args[0])
	}
}

func TestParseMapMacroMemberCall(t *testing.T) {
	expr := mustParse(t, "items.map(x, x + 1)")
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("want *ast.CallExpr, got %T", expr)
	}
	if call.Function != "map" || call.Target == nil || len(call.Args) != 2 {
		t.Fatalf("want member-call map() with target and 2 args, got %+v", call)
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, errs := Parse("1 + ")
	if len(errs) == 0 {
		t.Fatal("want at least one parse error for truncated input")
	}
}
