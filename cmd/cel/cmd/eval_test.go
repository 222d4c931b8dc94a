package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it, mirroring the teacher's run_unit_test.go
// capture pattern.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create pipe: %v", pipeErr)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestRunEvalInlineExpression(t *testing.T) {
	oldExpr, oldConfig := evalExpr, configPath
	defer func() { evalExpr, configPath = oldExpr, oldConfig }()

	evalExpr = "1 + 2 * 3"
	configPath = ""

	output, err := captureStdout(t, func() error {
		return runEval(evalCmd, nil)
	})
	if err != nil {
		t.Fatalf("runEval failed: %v\noutput: %s", err, output)
	}
	if strings.TrimSpace(output) != "7" {
		t.Fatalf("want output %q, got %q", "7", output)
	}
}

func TestRunEvalFromFile(t *testing.T) {
	oldExpr, oldConfig := evalExpr, configPath
	defer func() { evalExpr, configPath = oldExpr, oldConfig }()

	tempDir := t.TempDir()
	exprPath := filepath.Join(tempDir, "expr.cel")
	if err := os.WriteFile(exprPath, []byte(`"foo" + "bar"`), 0644); err != nil {
		t.Fatalf("failed to write expr file: %v", err)
	}

	evalExpr = ""
	configPath = ""

	output, err := captureStdout(t, func() error {
		return runEval(evalCmd, []string{exprPath})
	})
	if err != nil {
		t.Fatalf("runEval failed: %v\noutput: %s", err, output)
	}
	if strings.TrimSpace(output) != "foobar" {
		t.Fatalf("want output %q, got %q", "foobar", output)
	}
}

func TestRunEvalWithConfigVars(t *testing.T) {
	oldExpr, oldConfig := evalExpr, configPath
	defer func() { evalExpr, configPath = oldExpr, oldConfig }()

	tempDir := t.TempDir()
	cfgPath := filepath.Join(tempDir, "env.yaml")
	cfg := "package: app\nvars:\n  request:\n    path: /v1/widgets\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	evalExpr = "request.path.startsWith('/v1')"
	configPath = cfgPath

	output, err := captureStdout(t, func() error {
		return runEval(evalCmd, nil)
	})
	if err != nil {
		t.Fatalf("runEval failed: %v\noutput: %s", err, output)
	}
	if strings.TrimSpace(output) != "true" {
		t.Fatalf("want output %q, got %q", "true", output)
	}
}

func TestRunEvalCompileErrorPropagates(t *testing.T) {
	oldExpr, oldConfig := evalExpr, configPath
	defer func() { evalExpr, configPath = oldExpr, oldConfig }()

	evalExpr = "1 + "
	configPath = ""

	_, err := captureStdout(t, func() error {
		return runEval(evalCmd, nil)
	})
	if err == nil {
		t.Fatal("want an error for malformed inline source")
	}
}

func TestRunParseOneLineForm(t *testing.T) {
	oldExpr, oldDump := parseExpr, parseDumpAST
	defer func() { parseExpr, parseDumpAST = oldExpr, oldDump }()

	parseExpr = "1 + 2 * 3"
	parseDumpAST = false

	output, err := captureStdout(t, func() error {
		return runParse(parseCmd, nil)
	})
	if err != nil {
		t.Fatalf("runParse failed: %v\noutput: %s", err, output)
	}
	if strings.TrimSpace(output) != "(1 + (2 * 3))" {
		t.Fatalf("want %q, got %q", "(1 + (2 * 3))", output)
	}
}

func TestRunParseDumpAST(t *testing.T) {
	oldExpr, oldDump := parseExpr, parseDumpAST
	defer func() { parseExpr, parseDumpAST = oldExpr, oldDump }()

	parseExpr = "has(e.f)"
	parseDumpAST = true

	output, err := captureStdout(t, func() error {
		return runParse(parseCmd, nil)
	})
	if err != nil {
		t.Fatalf("runParse failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "CallExpr: has") {
		t.Fatalf("want AST dump mentioning CallExpr: has, got %q", output)
	}
}
