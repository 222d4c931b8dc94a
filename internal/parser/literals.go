package parser

import (
	"strconv"

	"github.com/cwbudde/go-cel/internal/ast"
	"github.com/cwbudde/go-cel/internal/lexer"
	"github.com/cwbudde/go-cel/internal/token"
)

func (p *Parser) parseIntLit() ast.Expr {
	pos, lit := p.cur.Pos, p.cur.Literal
	v, err := strconv.ParseInt(lit, 0, 64)
	if err != nil {
		p.errorf("invalid integer literal %q: %v", lit, err)
	}
	p.next()
	return ast.NewIntLit(pos, v)
}

func (p *Parser) parseUintLit() ast.Expr {
	pos, lit := p.cur.Pos, p.cur.Literal
	v, err := strconv.ParseUint(lit, 0, 64)
	if err != nil {
		p.errorf("invalid unsigned integer literal %q: %v", lit, err)
	}
	p.next()
	return ast.NewUintLit(pos, v)
}

func (p *Parser) parseFloatLit() ast.Expr {
	pos, lit := p.cur.Pos, p.cur.Literal
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.errorf("invalid floating-point literal %q: %v", lit, err)
	}
	p.next()
	return ast.NewDoubleLit(pos, v)
}

func (p *Parser) parseStringLit() ast.Expr {
	pos, lit := p.cur.Pos, p.cur.Literal
	s, err := lexer.DecodeStringLiteral(lit)
	if err != nil {
		p.errorf("invalid string literal: %v", err)
	}
	p.next()
	return ast.NewStringLit(pos, s)
}

func (p *Parser) parseBytesLit() ast.Expr {
	pos, lit := p.cur.Pos, p.cur.Literal
	b, err := lexer.DecodeBytesLiteral(lit)
	if err != nil {
		p.errorf("invalid bytes literal: %v", err)
	}
	p.next()
	return ast.NewBytesLit(pos, b)
}

func (p *Parser) parseBoolLit() ast.Expr {
	pos := p.cur.Pos
	v := p.cur.Literal == "true"
	p.next()
	return ast.NewBoolLit(pos, v)
}

func (p *Parser) parseListLit() ast.Expr {
	pos := p.cur.Pos
	p.next()
	elems := p.parseExprList(token.RBRACK)
	return ast.NewListExpr(pos, elems)
}

func (p *Parser) parseMapLit() ast.Expr {
	pos := p.cur.Pos
	p.next()
	var entries []ast.MapEntry
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		key := p.parseExpression(lowest)
		if p.cur.Kind != token.COLON {
			p.errorf("expected ':' in map entry, got %q", p.cur.Literal)
			break
		}
		p.next()
		val := p.parseExpression(lowest)
		entries = append(entries, ast.MapEntry{Key: key, Value: val})
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
	return ast.NewMapExpr(pos, entries)
}
