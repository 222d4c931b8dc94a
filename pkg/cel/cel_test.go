package cel

import (
	"testing"

	"github.com/cwbudde/go-cel/internal/types"
)

func mustEnv(opts ...Option) *Environment {
	return NewEnvironment(opts...)
}

func TestEvalArithmeticAndString(t *testing.T) {
	env := mustEnv()
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2 * 3", "7"},
		{`"a" + "b"`, "ab"},
		{"2 < 3 && 3 < 4", "true"},
		{"true ? 1 : 2", "1"},
		{"[1, 2, 3].map(x, x * 2)", "[2, 4, 6]"},
		{"[1, 2, 3].filter(x, x > 1)", "[2, 3]"},
		{"[1, 2, 3].all(x, x > 0)", "true"},
		{"[1, 2, 3].exists(x, x > 2)", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := env.Eval(tt.expr, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("Eval(%q) = %q, want %q", tt.expr, got.String(), tt.want)
			}
		})
	}
}

func TestEvalWithVariables(t *testing.T) {
	env := mustEnv()
	got, err := env.Eval("request.size() > 0", map[string]Value{
		"request": types.String("hello"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "true" {
		t.Fatalf("want true, got %v", got)
	}
}

func TestCompileErrorReported(t *testing.T) {
	env := mustEnv()
	_, err := env.Eval("1 + ", nil)
	if err == nil {
		t.Fatal("want a compile error for truncated source")
	}
	if _, ok := err.(*CompileError); !ok {
		t.Fatalf("want *CompileError, got %T", err)
	}
}

// TestEvaluatorPlannerEquivalence is the differential test behind spec.md
// §8's "the Transpiler must be observably identical to the Evaluator":
// run the same program through both execution strategies and require the
// same result for every case.
func TestEvaluatorPlannerEquivalence(t *testing.T) {
	env := mustEnv()
	exprs := []string{
		"1 + 2 * 3 - 4 / 2",
		`"foo" + "bar" == "foobar"`,
		"true || (1 / 0 > 0)",
		"false && (1 / 0 > 0)",
		"[1, 2, 3].map(x, x * x)",
		"[1, 2, 3].filter(x, x % 2 == 0)",
		"[1, 2, 3].exists_one(x, x == 2)",
		"[3, 1, 2].min()",
		"{1: 2, 3: 4}[1]",
		"has({'a': 1}.a)",
		"has({'a': 1}.b)",
		"1 in [1, 2, 3]",
		"2 ? 1 : 0", // no such overload on a non-bool condition
		"1 / 0",     // divide by zero
	}
	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			ast, compileErr := env.Compile(expr)
			if compileErr != nil {
				t.Fatalf("compile error: %v", compileErr)
			}

			plannedResult, plannedErr := env.Plan(ast).Run(nil)
			treeResult, treeErr := env.NewEvaluatorProgram(ast).Run(nil)

			if (plannedErr == nil) != (treeErr == nil) {
				t.Fatalf("error-ness mismatch: planner err=%v, evaluator err=%v", plannedErr, treeErr)
			}
			if plannedErr != nil {
				return
			}
			if plannedResult.String() != treeResult.String() {
				t.Fatalf("result mismatch: planner=%v, evaluator=%v", plannedResult, treeResult)
			}
		})
	}
}
