package parser

import (
	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/token"
)

// parseSelect parses the postfix `.field` form, including the `has(e.f)`
// free function's argument (TestOnly is set later by the evaluator/planner
// macro handling, not here — the parser never sees `has` specially).
func (p *Parser) parseSelect(operand ast.Expr) ast.Expr {
	pos := p.cur.Pos
	p.next()
	if p.cur.Kind != token.IDENT {
		p.errorf("expected identifier after '.', got %q", p.cur.Literal)
		return operand
	}
	field := p.cur.Literal
	p.next()
	if p.cur.Kind == token.LBRACE {
		if path, ok := identPathFromExpr(operand); ok {
			path = append(path, field)
			return p.parseMessageLit(pos, joinDotted(path))
		}
	}
	return ast.NewSelectExpr(pos, operand, field)
}

// parseCall parses `target(args)` (free function when target is a bare
// Ident with no preceding select, member call otherwise — spec.md §4.4
// leaves that distinction to the evaluator, not the grammar).
func (p *Parser) parseCall(target ast.Expr) ast.Expr {
	pos := p.cur.Pos
	p.next()
	args := p.parseExprList(token.RPAREN)
	if ident, isIdent := target.(*ast.Ident); isIdent {
		return ast.NewCallExpr(pos, nil, ident.Name, args)
	}
	if sel, isSel := target.(*ast.SelectExpr); isSel {
		return ast.NewCallExpr(pos, sel.Operand, sel.Field, args)
	}
	p.errorf("invalid call target")
	return target
}

func (p *Parser) parseIndex(operand ast.Expr) ast.Expr {
	pos := p.cur.Pos
	p.next()
	index := p.parseExpression(lowest)
	if p.cur.Kind != token.RBRACK {
		p.errorf("expected ']', got %q", p.cur.Literal)
	} else {
		p.next()
	}
	return ast.NewIndexExpr(pos, operand, index)
}

func (p *Parser) parseExprList(end token.Kind) []ast.Expr {
	var args []ast.Expr
	if p.cur.Kind == end {
		p.next()
		return args
	}
	args = append(args, p.parseExpression(lowest))
	for p.cur.Kind == token.COMMA {
		p.next()
		args = append(args, p.parseExpression(lowest))
	}
	if p.cur.Kind != end {
		p.errorf("expected %q, got %q", end.String(), p.cur.Literal)
	} else {
		p.next()
	}
	return args
}

// parseMessageLit parses the field-init block of a message-construction
// literal once its (possibly dotted) type name has already been consumed;
// cur is LBRACE on entry.
func (p *Parser) parseMessageLit(pos token.Position, typeName string) ast.Expr {
	p.next()
	var fields []ast.FieldInit
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		if p.cur.Kind != token.IDENT {
			p.errorf("expected field name, got %q", p.cur.Literal)
			break
		}
		name := p.cur.Literal
		p.next()
		if p.cur.Kind != token.COLON {
			p.errorf("expected ':' after field name, got %q", p.cur.Literal)
			break
		}
		p.next()
		val := p.parseExpression(lowest)
		fields = append(fields, ast.FieldInit{Name: name, Value: val})
		if p.cur.Kind == token.COMMA {
			p.next()
			continue
		}
		break
	}
	if p.cur.Kind != token.RBRACE {
		p.errorf("expected '}', got %q", p.cur.Literal)
	} else {
		p.next()
	}
	return ast.NewMessageExpr(pos, typeName, fields)
}

// identPathFromExpr flattens an Ident/SelectExpr chain into a dotted-name
// path, used to recognize a qualified message-construction type name
// (`pkg.sub.Type{...}`) once its trailing `{` has been seen.
func identPathFromExpr(e ast.Expr) ([]string, bool) {
	switch x := e.(type) {
	case *ast.Ident:
		return []string{x.Name}, true
	case *ast.SelectExpr:
		base, ok := identPathFromExpr(x.Operand)
		if !ok {
			return nil, false
		}
		return append(base, x.Field), true
	}
	return nil, false
}

func joinDotted(segs []string) string {
	out := segs[0]
	for _, s := range segs[1:] {
		out += "." + s
	}
	return out
}
