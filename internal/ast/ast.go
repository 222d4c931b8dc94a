// Package ast defines the Abstract Syntax Tree node types the parser
// produces and the Evaluator/Transpiler consume (spec.md §6 AST contract).
//
// Grounded on the teacher's internal/ast package: a small Node interface
// (TokenLiteral/String/Pos) with one concrete struct per grammar rule,
// generalized here from DWScript's statement/declaration grammar to CEL's
// pure-expression grammar (expr, conditionalor, conditionaland, relation,
// addition, multiplication, unary, member_dot/member_index/member_object,
// primary, exprlist/fieldinits/mapinits).
package ast

import (
	"strings"

	"github.com/cwbudde/go-cel/internal/token"
)

// Node is the base interface for every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expr is any node that produces a Value when evaluated. CEL has no
// statements — every node in the tree is an Expr (spec.md §1: "a
// side-effect-free... expression language").
type Expr interface {
	Node
	exprNode()
}

// Meta holds per-node decoration slots (spec.md §3 Lifecycle, §4.5 phase
// 1): an expression number, a lowered target-code form, and a flag for
// short-circuit-sensitive nodes. Neither the Evaluator nor internal/planner
// reads or writes Meta; the planner keeps its own node counter instead.
type Meta struct {
	ExprNumber       int
	Transpiled       string
	CheckedException bool
}

// base is embedded by every concrete Expr to provide Pos/Meta storage
// without repeating the same two fields on every node type.
type base struct {
	Position token.Position
	Meta     Meta
}

func (b *base) Pos() token.Position { return b.Position }

// Ident is a bare identifier reference, e.g. `request` or `a.b.c` written
// without macro/call sugar (primary → ident, dot_ident).
type Ident struct {
	base
	Name string
	// Absolute marks a leading-dot identifier (spec.md §4.2 "leading-dot
	// escape"): resolution skips the package search and uses only [Name]
	// from the root scope.
	Absolute bool
}

func (*Ident) exprNode()            {}
func (i *Ident) TokenLiteral() string { return i.Name }
func (i *Ident) String() string {
	if i.Absolute {
		return "." + i.Name
	}
	return i.Name
}

// IntLit is an INT_LIT token (primary → literal).
type IntLit struct {
	base
	Value int64
}

func (*IntLit) exprNode()              {}
func (l *IntLit) TokenLiteral() string { return l.String() }
func (l *IntLit) String() string       { return itoa(l.Value) }

// UintLit is a UINT_LIT token, suffixed `u`/`U` in source.
type UintLit struct {
	base
	Value uint64
}

func (*UintLit) exprNode()              {}
func (l *UintLit) TokenLiteral() string { return l.String() }
func (l *UintLit) String() string       { return utoa(l.Value) + "u" }

// DoubleLit is a FLOAT_LIT token.
type DoubleLit struct {
	base
	Value float64
}

func (*DoubleLit) exprNode()              {}
func (l *DoubleLit) TokenLiteral() string { return l.String() }
func (l *DoubleLit) String() string       { return ftoa(l.Value) }

// StringLit is a STRING_LIT or MLSTRING_LIT token, already decoded
// (spec.md §6 "String literal decoding").
type StringLit struct {
	base
	Value string
}

func (*StringLit) exprNode()              {}
func (l *StringLit) TokenLiteral() string { return l.Value }
func (l *StringLit) String() string       { return `"` + l.Value + `"` }

// BytesLit is a BYTES_LIT token, already decoded to raw octets.
type BytesLit struct {
	base
	Value []byte
}

func (*BytesLit) exprNode()              {}
func (l *BytesLit) TokenLiteral() string { return string(l.Value) }
func (l *BytesLit) String() string       { return `b"` + string(l.Value) + `"` }

// BoolLit is a BOOL_LIT token.
type BoolLit struct {
	base
	Value bool
}

func (*BoolLit) exprNode()              {}
func (l *BoolLit) TokenLiteral() string { return l.String() }
func (l *BoolLit) String() string {
	if l.Value {
		return "true"
	}
	return "false"
}

// NullLit is the NULL_LIT token.
type NullLit struct{ base }

func (*NullLit) exprNode()              {}
func (l *NullLit) TokenLiteral() string { return "null" }
func (l *NullLit) String() string       { return "null" }

// ParenExpr is a parenthesized sub-expression (primary → paren_expr). It
// has no semantic effect beyond grouping; the Evaluator/planner unwrap it
// transparently.
type ParenExpr struct {
	base
	Inner Expr
}

func (*ParenExpr) exprNode()              {}
func (p *ParenExpr) TokenLiteral() string { return "(" }
func (p *ParenExpr) String() string {
	switch p.Inner.(type) {
	case *BinaryExpr, *TernaryExpr:
		// These already render their own enclosing parentheses.
		return p.Inner.String()
	}
	return "(" + p.Inner.String() + ")"
}

// ListExpr is a list literal (primary → list_lit, rule exprlist).
type ListExpr struct {
	base
	Elements []Expr
}

func (*ListExpr) exprNode()              {}
func (l *ListExpr) TokenLiteral() string { return "[" }
func (l *ListExpr) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapEntry is one `key: value` pair of a map literal (rule mapinits).
type MapEntry struct {
	Key   Expr
	Value Expr
}

// MapExpr is a map literal (primary → map_lit, rule mapinits).
type MapExpr struct {
	base
	Entries []MapEntry
}

func (*MapExpr) exprNode()              {}
func (m *MapExpr) TokenLiteral() string { return "{" }
func (m *MapExpr) String() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FieldInit is one `name: value` pair of a message construction literal
// (rule fieldinits, member_object).
type FieldInit struct {
	Name  string
	Value Expr
}

// MessageExpr is a typed message-construction literal `pkg.Type{f: v, ...}`
// (grammar rule member_object).
type MessageExpr struct {
	base
	TypeName string
	Fields   []FieldInit
}

func (*MessageExpr) exprNode()              {}
func (m *MessageExpr) TokenLiteral() string { return m.TypeName }
func (m *MessageExpr) String() string {
	parts := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		parts[i] = f.Name + ": " + f.Value.String()
	}
	return m.TypeName + "{" + strings.Join(parts, ", ") + "}"
}

// SelectExpr is field selection `operand.field` (grammar rule member_dot).
// TestOnly marks this node as the argument of a `has(...)` macro call,
// where field-selection failure is absorbed into `false` instead of
// propagating an Error (spec.md §4.4 "has(e.f)").
type SelectExpr struct {
	base
	Operand  Expr
	Field    string
	TestOnly bool
}

func (*SelectExpr) exprNode()              {}
func (s *SelectExpr) TokenLiteral() string { return s.Field }
func (s *SelectExpr) String() string       { return s.Operand.String() + "." + s.Field }

// IndexExpr is `operand[index]` (grammar rule member_index).
type IndexExpr struct {
	base
	Operand Expr
	Index   Expr
}

func (*IndexExpr) exprNode()              {}
func (i *IndexExpr) TokenLiteral() string { return "[" }
func (i *IndexExpr) String() string       { return i.Operand.String() + "[" + i.Index.String() + "]" }

// CallExpr is a function or member-method call (grammar rules ident_arg,
// dot_ident_arg, member_dot_arg). Target is nil for a free function call
// (`size(x)`, `has(e.f)`, `dyn(e)`); non-nil for `operand.method(args)`
// (grammar rule member_dot_arg), including the macro forms `map`, `filter`,
// `all`, `exists`, `exists_one`, `reduce`, `min`.
type CallExpr struct {
	base
	Target   Expr
	Function string
	Args     []Expr
}

func (*CallExpr) exprNode()              {}
func (c *CallExpr) TokenLiteral() string { return c.Function }
func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	if c.Target != nil {
		return c.Target.String() + "." + c.Function + "(" + strings.Join(args, ", ") + ")"
	}
	return c.Function + "(" + strings.Join(args, ", ") + ")"
}

// BinaryExpr is an operator-form node from conditionalor, conditionaland,
// relation, addition, multiplication (grammar sub-rules relation_lt …
// relation_in, addition_add/addition_sub, multiplication_mul/_div/_mod).
// Op is the AST's internal operator name (spec.md §4.3: "_+_", "_<_",
// "_||_", …), the same string used as the base function table key.
type BinaryExpr struct {
	base
	Op          string
	Left, Right Expr
}

func (*BinaryExpr) exprNode()              {}
func (b *BinaryExpr) TokenLiteral() string { return b.Op }
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + strings.Trim(b.Op, "_") + " " + b.Right.String() + ")"
}

// UnaryExpr is a unary_not / unary_neg node.
type UnaryExpr struct {
	base
	Op      string
	Operand Expr
}

func (*UnaryExpr) exprNode()              {}
func (u *UnaryExpr) TokenLiteral() string { return u.Op }
func (u *UnaryExpr) String() string       { return strings.TrimSuffix(u.Op, "_") + u.Operand.String() }

// TernaryExpr is the `cond ? then : else` conditional form.
type TernaryExpr struct {
	base
	Cond, Then, Else Expr
}

func (*TernaryExpr) exprNode()              {}
func (t *TernaryExpr) TokenLiteral() string { return "?" }
func (t *TernaryExpr) String() string {
	return "(" + t.Cond.String() + " ? " + t.Then.String() + " : " + t.Else.String() + ")"
}

// New* constructors set Position from a token; used by the parser so every
// node carries a source position for error reporting (spec.md §7).

func NewIdent(pos token.Position, name string, absolute bool) *Ident {
	return &Ident{base: base{Position: pos}, Name: name, Absolute: absolute}
}

func NewIntLit(pos token.Position, v int64) *IntLit {
	return &IntLit{base: base{Position: pos}, Value: v}
}

func NewUintLit(pos token.Position, v uint64) *UintLit {
	return &UintLit{base: base{Position: pos}, Value: v}
}

func NewDoubleLit(pos token.Position, v float64) *DoubleLit {
	return &DoubleLit{base: base{Position: pos}, Value: v}
}

func NewStringLit(pos token.Position, v string) *StringLit {
	return &StringLit{base: base{Position: pos}, Value: v}
}

func NewBytesLit(pos token.Position, v []byte) *BytesLit {
	return &BytesLit{base: base{Position: pos}, Value: v}
}

func NewBoolLit(pos token.Position, v bool) *BoolLit {
	return &BoolLit{base: base{Position: pos}, Value: v}
}

func NewNullLit(pos token.Position) *NullLit { return &NullLit{base: base{Position: pos}} }

func NewParenExpr(pos token.Position, inner Expr) *ParenExpr {
	return &ParenExpr{base: base{Position: pos}, Inner: inner}
}

func NewListExpr(pos token.Position, elems []Expr) *ListExpr {
	return &ListExpr{base: base{Position: pos}, Elements: elems}
}

func NewMapExpr(pos token.Position, entries []MapEntry) *MapExpr {
	return &MapExpr{base: base{Position: pos}, Entries: entries}
}

func NewMessageExpr(pos token.Position, typeName string, fields []FieldInit) *MessageExpr {
	return &MessageExpr{base: base{Position: pos}, TypeName: typeName, Fields: fields}
}

func NewSelectExpr(pos token.Position, operand Expr, field string) *SelectExpr {
	return &SelectExpr{base: base{Position: pos}, Operand: operand, Field: field}
}

func NewIndexExpr(pos token.Position, operand, index Expr) *IndexExpr {
	return &IndexExpr{base: base{Position: pos}, Operand: operand, Index: index}
}

func NewCallExpr(pos token.Position, target Expr, fn string, args []Expr) *CallExpr {
	return &CallExpr{base: base{Position: pos}, Target: target, Function: fn, Args: args}
}

func NewBinaryExpr(pos token.Position, op string, left, right Expr) *BinaryExpr {
	return &BinaryExpr{base: base{Position: pos}, Op: op, Left: left, Right: right}
}

func NewUnaryExpr(pos token.Position, op string, operand Expr) *UnaryExpr {
	return &UnaryExpr{base: base{Position: pos}, Op: op, Operand: operand}
}

func NewTernaryExpr(pos token.Position, cond, then, els Expr) *TernaryExpr {
	return &TernaryExpr{base: base{Position: pos}, Cond: cond, Then: then, Else: els}
}
