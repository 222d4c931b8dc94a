// Package cel is the public, stable facade over the CEL runtime
// (spec.md §1, §3, §6): build an Environment, compile source into an AST,
// plan an AST into a reusable Program, and run the Program against an
// Activation built from host-supplied variables.
//
// Grounded on the facade-package pattern visible in the teacher's
// pkg/dwscript (a single Engine type wrapping lexer/parser/interpreter
// behind Eval/RegisterFunction), pkg/ident, pkg/token, and pkg/printer —
// each a thin public package re-exporting one internal subsystem's
// capability without leaking its internal types.
package cel

import (
	"github.com/cwbudde/go-cel/internal/activation"
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/celfunc"
	"github.com/cwbudde/go-cel/internal/cerr"
	"github.com/cwbudde/go-cel/internal/evaluator"
	"github.com/cwbudde/go-cel/internal/parser"
	"github.com/cwbudde/go-cel/internal/planner"
	"github.com/cwbudde/go-cel/internal/types"
)

// Value is the public alias for a CEL runtime value (spec.md §3).
type Value = types.Value

// Error is the public alias for CEL's first-class Error (spec.md §3, §7).
type Error = cerr.Error

// Option configures an Environment at construction time, following the
// teacher's pkg/dwscript functional-option style (WithTypeCheck, ...).
type Option func(*Environment)

// WithPackage sets the package prefix used by name resolution (spec.md
// §4.2).
func WithPackage(pkg string) Option {
	return func(e *Environment) { e.pkg = pkg }
}

// WithFunctions layers host-supplied functions over the base table
// (spec.md §4.3), the host extension point in place of a thread-global
// filter object (spec.md §9).
func WithFunctions(fns map[string]activation.Function) Option {
	return func(e *Environment) { e.extraFuncs = fns }
}

// WithTypes registers message type descriptors so message-construction
// literals (`pkg.Type{f: v}`) resolve a host schema instead of falling
// back to an ad-hoc one synthesized from the literal's own fields.
func WithTypes(schemas map[string]*types.MessageDescriptor) Option {
	return func(e *Environment) { e.types = schemas }
}

// Environment holds the configuration shared by every compile/plan/run
// call: a package prefix, the base function table plus any host
// overrides, and any registered message schemas (spec.md §3 "An
// Environment fixes the function table and package prefix shared by every
// compiled Program").
type Environment struct {
	pkg        string
	extraFuncs map[string]activation.Function
	types      map[string]*types.MessageDescriptor
}

// NewEnvironment builds an Environment. With no options, name resolution
// uses no package prefix and the base function table is the only function
// table (spec.md §4.3 base set).
func NewEnvironment(opts ...Option) *Environment {
	e := &Environment{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compile parses source into an AST (spec.md §6's external grammar
// collaborator). Syntax errors are reported jointly; compilation never
// panics on malformed input.
func (e *Environment) Compile(source string) (ast.Expr, error) {
	expr, errs := parser.Parse(source)
	if len(errs) > 0 {
		return nil, &CompileError{Errs: errs}
	}
	return expr, nil
}

// CompileError wraps one or more parse errors from Compile.
type CompileError struct {
	Errs []*parser.Error
}

func (c *CompileError) Error() string {
	if len(c.Errs) == 1 {
		return c.Errs[0].Error()
	}
	msg := c.Errs[0].Error()
	for _, e := range c.Errs[1:] {
		msg += "; " + e.Error()
	}
	return msg
}

// Program is a planned, reusable expression ready to run against any
// number of Activations (spec.md §4.5 "avoids re-walking the AST on each
// call").
type Program struct {
	env  *Environment
	prog *planner.Program
}

// Plan lowers an AST into a Program via internal/planner's closure
// compiler (spec.md §4.5 Transpiler).
func (e *Environment) Plan(expr ast.Expr) *Program {
	p := planner.New()
	return &Program{env: e, prog: p.Plan(expr)}
}

// Eval is a convenience that parses, plans, and runs source in one call
// against vars (spec.md §3 typical one-shot evaluation). For repeated
// evaluation of the same expression, prefer Compile+Plan+Run so the AST is
// only walked once.
func (e *Environment) Eval(source string, vars map[string]Value) (Value, error) {
	expr, err := e.Compile(source)
	if err != nil {
		return nil, err
	}
	return e.Plan(expr).Run(vars)
}

// baseActivation builds the root Activation for this Environment: the
// base function table layered with any host overrides, the package
// prefix, and registered message-type annotations (spec.md §3).
func (e *Environment) baseActivation() *activation.Activation {
	act := activation.New(e.pkg, celfunc.BaseTable())
	if len(e.extraFuncs) > 0 {
		act = act.WithFunctions(e.extraFuncs)
	}
	for name, desc := range e.types {
		act.Names.LoadAnnotation(name, desc)
	}
	return act
}

// Run evaluates the Program against vars, the one-shot equivalent of
// spec.md §4.5's `result(base_activation, λ act: root.transpiled)` top-
// level call. NewActivation lets a host reuse one Activation (e.g. with
// pre-bound annotations) across several Run calls instead.
func (p *Program) Run(vars map[string]Value) (Value, error) {
	act := p.NewActivation()
	for name, v := range vars {
		act.Names.LoadValue(name, v)
	}
	return p.RunActivation(act)
}

// NewActivation builds a fresh root Activation scoped to this Program's
// Environment, for hosts that want to bind variables incrementally or
// reuse bindings across several Run calls on related programs.
func (p *Program) NewActivation() *activation.Activation {
	return p.env.baseActivation()
}

// RunActivation runs the Program against an already-built Activation
// (spec.md §3, for hosts that assembled bindings via NewActivation +
// act.Names.LoadValue directly).
func (p *Program) RunActivation(act *activation.Activation) (Value, error) {
	result := p.prog.Run(act)
	if ev, ok := types.AsError(result); ok {
		return nil, ev
	}
	return result, nil
}

// NodeCount reports how many AST nodes this Program planned (spec.md
// §4.5's `expr_number` counter, exposed for diagnostics).
func (p *Program) NodeCount() int { return p.prog.NodeCount() }

// NewEvaluatorProgram exposes the tree-walking Evaluator as an
// alternative to the planned Program, for hosts or tests that want to
// compare the two execution strategies' observable behavior directly
// (spec.md §4.5: "observably identical to the Evaluator's").
func (e *Environment) NewEvaluatorProgram(expr ast.Expr) *EvaluatorProgram {
	return &EvaluatorProgram{env: e, expr: expr, eval: evaluator.New()}
}

// EvaluatorProgram runs expr by tree-walking it on every call, instead of
// planning it once into closures.
type EvaluatorProgram struct {
	env  *Environment
	expr ast.Expr
	eval *evaluator.Evaluator
}

// Run tree-walks expr against vars.
func (p *EvaluatorProgram) Run(vars map[string]Value) (Value, error) {
	act := p.env.baseActivation()
	for name, v := range vars {
		act.Names.LoadValue(name, v)
	}
	result := p.eval.Eval(p.expr, act)
	if ev, ok := types.AsError(result); ok {
		return nil, ev
	}
	return result, nil
}
