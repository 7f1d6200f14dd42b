package parser

import (
	"fmt"

	"casecheck/internal/ast"
	"casecheck/internal/diag"
	"casecheck/internal/token"
)

// @name(args...) — скобки обязательны, список может быть пустым.
func (p *Parser) parseAttr() (ast.Attr, bool) {
	at := p.next() // @
	name, ok := p.parseIdent(diag.SynExpectIdent)
	if !ok {
		return ast.Attr{}, false
	}
	lp, ok := p.expect(token.LParen, diag.SynUnexpectedToken)
	if !ok {
		return ast.Attr{}, false
	}

	attr := ast.Attr{Name: name, Span: at.Span.Cover(lp.Span)}
	if p.at(token.RParen) {
		rp := p.next()
		attr.Span = attr.Span.Cover(rp.Span)
		return attr, true
	}

	for {
		arg, ok := p.parseAttrArg()
		if !ok {
			return ast.Attr{}, false
		}
		attr.Args = append(attr.Args, arg)
		if p.at(token.Comma) {
			p.next()
			continue
		}
		break
	}

	rp, ok := p.expect(token.RParen, diag.SynUnclosedParen)
	if !ok {
		return ast.Attr{}, false
	}
	attr.Span = attr.Span.Cover(rp.Span)
	return attr, true
}

// (label ':')? expr
func (p *Parser) parseAttrArg() (ast.AttrArg, bool) {
	var arg ast.AttrArg
	// label: выражение — различаем по lookahead на ':'
	if p.at(token.Ident) {
		ident := p.next()
		if p.at(token.Colon) {
			p.next()
			arg.Label = ident.Text
			arg.LabelSpan = ident.Span
		} else {
			// это не метка, а начало path-выражения
			expr, ok := p.parseRefExprAfter(ast.Ident{Name: ident.Text, Span: ident.Span})
			if !ok {
				return ast.AttrArg{}, false
			}
			arg.Expr = expr
			return arg, true
		}
	}

	expr, ok := p.parseAttrExpr()
	if !ok {
		return ast.AttrArg{}, false
	}
	arg.Expr = expr
	return arg, true
}

func (p *Parser) parseAttrExpr() (ast.Expr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.StringLit:
		p.next()
		return ast.StringExpr{Value: unquote(tok.Text), Sp: tok.Span}, true

	case token.IntLit:
		p.next()
		return ast.IntExpr{Value: parseInt(tok.Text), Sp: tok.Span}, true

	case token.KwNameof:
		kw := p.next()
		if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
			return nil, false
		}
		path, ok := p.parsePath()
		if !ok {
			return nil, false
		}
		rp, ok := p.expect(token.RParen, diag.SynUnclosedParen)
		if !ok {
			return nil, false
		}
		return ast.NameofExpr{Path: path, Sp: kw.Span.Cover(rp.Span)}, true

	case token.KwTypeof:
		kw := p.next()
		if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
			return nil, false
		}
		name, ok := p.parseIdent(diag.SynExpectType)
		if !ok {
			return nil, false
		}
		rp, ok := p.expect(token.RParen, diag.SynUnclosedParen)
		if !ok {
			return nil, false
		}
		return ast.TypeofExpr{Type: name, Sp: kw.Span.Cover(rp.Span)}, true

	case token.LBracket:
		lb := p.next()
		arr := ast.ArrayExpr{Sp: lb.Span}
		if p.at(token.RBracket) {
			rb := p.next()
			arr.Sp = arr.Sp.Cover(rb.Span)
			return arr, true
		}
		for {
			elem, ok := p.parseAttrExpr()
			if !ok {
				return nil, false
			}
			arr.Elems = append(arr.Elems, elem)
			if p.at(token.Comma) {
				p.next()
				continue
			}
			break
		}
		rb, ok := p.expect(token.RBracket, diag.SynUnclosedBracket)
		if !ok {
			return nil, false
		}
		arr.Sp = arr.Sp.Cover(rb.Span)
		return arr, true

	case token.Ident:
		ident, _ := p.parseIdent(diag.SynExpectIdent)
		return p.parseRefExprAfter(ident)

	default:
		p.err(diag.SynBadAttrArg, p.errSpan(tok),
			fmt.Sprintf("expected attribute argument, found %q", tok.Kind.String()))
		return nil, false
	}
}

// parseRefExprAfter дочитывает '.Ident'* после уже съеденного первого сегмента.
func (p *Parser) parseRefExprAfter(first ast.Ident) (ast.Expr, bool) {
	path := []ast.Ident{first}
	for p.at(token.Dot) {
		p.next()
		seg, ok := p.parseIdent(diag.SynExpectIdent)
		if !ok {
			return nil, false
		}
		path = append(path, seg)
	}
	return ast.RefExpr{Path: path, Sp: ast.PathSpan(path)}, true
}

func (p *Parser) parsePath() ([]ast.Ident, bool) {
	first, ok := p.parseIdent(diag.SynExpectIdent)
	if !ok {
		return nil, false
	}
	path := []ast.Ident{first}
	for p.at(token.Dot) {
		p.next()
		seg, ok := p.parseIdent(diag.SynExpectIdent)
		if !ok {
			return nil, false
		}
		path = append(path, seg)
	}
	return path, true
}
