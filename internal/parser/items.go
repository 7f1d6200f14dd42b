package parser

import (
	"fmt"
	"strconv"

	"casecheck/internal/ast"
	"casecheck/internal/diag"
	"casecheck/internal/token"
)

func (p *Parser) parseItems() {
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return
		case token.KwConst:
			p.parseConstDecl()
		case token.KwType:
			p.parseTypeDecl()
		default:
			p.err(diag.SynUnexpectedToken, p.errSpan(tok),
				fmt.Sprintf("expected 'type' or 'const', found %q", tok.Kind.String()))
			p.next()
			p.resyncTo(token.KwType, token.KwConst)
		}
	}
}

// const Name = "value";
func (p *Parser) parseConstDecl() {
	kw := p.next() // const
	name, ok := p.parseIdent(diag.SynExpectIdent)
	if !ok {
		p.resyncTo(token.KwType, token.KwConst)
		return
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken); !ok {
		p.resyncTo(token.KwType, token.KwConst)
		return
	}
	tok := p.lx.Peek()
	if tok.Kind != token.StringLit {
		p.err(diag.SynUnexpectedToken, p.errSpan(tok),
			fmt.Sprintf("expected string literal, found %q", tok.Kind.String()))
		p.resyncTo(token.KwType, token.KwConst)
		return
	}
	p.next()
	value := unquote(tok.Text)
	semi, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon)

	p.file.Consts = append(p.file.Consts, ast.ConstDecl{
		Name:  name,
		Value: value,
		Span:  kw.Span.Cover(semi.Span),
	})
}

// type Name { members }
func (p *Parser) parseTypeDecl() {
	kw := p.next() // type
	name, ok := p.parseIdent(diag.SynExpectIdent)
	if !ok {
		p.resyncTo(token.KwType, token.KwConst)
		return
	}
	lbrace, ok := p.expect(token.LBrace, diag.SynUnexpectedToken)
	if !ok {
		p.resyncTo(token.KwType, token.KwConst)
		return
	}

	decl := ast.TypeDecl{Name: name, Span: kw.Span.Cover(lbrace.Span)}
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.RBrace {
			rb := p.next()
			decl.Span = decl.Span.Cover(rb.Span)
			p.file.Types = append(p.file.Types, decl)
			return
		}
		if tok.Kind == token.EOF {
			p.err(diag.SynUnclosedBrace, lbrace.Span, fmt.Sprintf("unclosed '{' of type %q", name.Name))
			p.file.Types = append(p.file.Types, decl)
			return
		}
		if member, ok := p.parseMember(); ok {
			decl.Members = append(decl.Members, member)
		}
	}
}

// attr* modifier* (field|prop|method|ctor|case) ...
func (p *Parser) parseMember() (ast.Member, bool) {
	var attrs []ast.Attr
	for p.at(token.At) {
		if attr, ok := p.parseAttr(); ok {
			attrs = append(attrs, attr)
		} else {
			p.resyncTo(token.RBrace)
		}
	}

	member := ast.Member{Attrs: attrs}
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.KwStatic {
			p.next()
			member.Static = true
			continue
		}
		if tok.Kind == token.KwPriv {
			p.next()
			member.Priv = true
			continue
		}
		break
	}

	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwField, token.KwProp:
		kw := p.next()
		member.Kind = ast.MemberField
		if kw.Kind == token.KwProp {
			member.Kind = ast.MemberProp
		}
		name, ok := p.parseIdent(diag.SynExpectIdent)
		if !ok {
			p.resyncTo(token.RBrace)
			return ast.Member{}, false
		}
		member.Name = name
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
			p.resyncTo(token.RBrace)
			return ast.Member{}, false
		}
		typ, ok := p.parseTypeRef()
		if !ok {
			p.resyncTo(token.RBrace)
			return ast.Member{}, false
		}
		member.Type = &typ
		semi, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon)
		member.Span = kw.Span.Cover(semi.Span)
		return member, true

	case token.KwMethod:
		kw := p.next()
		member.Kind = ast.MemberMethod
		name, ok := p.parseIdent(diag.SynExpectIdent)
		if !ok {
			p.resyncTo(token.RBrace)
			return ast.Member{}, false
		}
		member.Name = name
		params, ok := p.parseParamTypes()
		if !ok {
			p.resyncTo(token.RBrace)
			return ast.Member{}, false
		}
		member.Params = params
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
			p.resyncTo(token.RBrace)
			return ast.Member{}, false
		}
		typ, ok := p.parseTypeRef()
		if !ok {
			p.resyncTo(token.RBrace)
			return ast.Member{}, false
		}
		member.Type = &typ
		semi, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon)
		member.Span = kw.Span.Cover(semi.Span)
		return member, true

	case token.KwCtor:
		kw := p.next()
		member.Kind = ast.MemberCtor
		params, ok := p.parseParamTypes()
		if !ok {
			p.resyncTo(token.RBrace)
			return ast.Member{}, false
		}
		member.Params = params
		semi, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon)
		member.Span = kw.Span.Cover(semi.Span)
		return member, true

	case token.KwCase:
		kw := p.next()
		member.Kind = ast.MemberCase
		name, ok := p.parseIdent(diag.SynExpectIdent)
		if !ok {
			p.resyncTo(token.RBrace)
			return ast.Member{}, false
		}
		member.Name = name
		semi, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon)
		member.Span = kw.Span.Cover(semi.Span)
		return member, true

	default:
		p.err(diag.SynUnexpectedToken, p.errSpan(tok),
			fmt.Sprintf("expected member declaration, found %q", tok.Kind.String()))
		p.next()
		p.resyncTo(token.RBrace)
		return ast.Member{}, false
	}
}

// ( typeRef, typeRef, ... ) — только типы, имена параметров не нужны.
func (p *Parser) parseParamTypes() ([]ast.TypeRef, bool) {
	lp, ok := p.expect(token.LParen, diag.SynUnexpectedToken)
	if !ok {
		return nil, false
	}
	var params []ast.TypeRef
	if p.at(token.RParen) {
		p.next()
		return params, true
	}
	for {
		typ, ok := p.parseTypeRef()
		if !ok {
			return nil, false
		}
		params = append(params, typ)
		if p.at(token.Comma) {
			p.next()
			continue
		}
		if p.at(token.RParen) {
			p.next()
			return params, true
		}
		p.err(diag.SynUnclosedParen, lp.Span, "unclosed '(' in parameter list")
		return nil, false
	}
}

// Ident ('<' typeRef (',' typeRef)* '>')?
func (p *Parser) parseTypeRef() (ast.TypeRef, bool) {
	name, ok := p.parseIdent(diag.SynExpectType)
	if !ok {
		return ast.TypeRef{}, false
	}
	ref := ast.TypeRef{Name: name, Span: name.Span}
	if !p.at(token.Lt) {
		return ref, true
	}
	p.next() // <
	for {
		arg, ok := p.parseTypeRef()
		if !ok {
			return ast.TypeRef{}, false
		}
		ref.Args = append(ref.Args, arg)
		if p.at(token.Comma) {
			p.next()
			continue
		}
		break
	}
	gt, ok := p.expect(token.Gt, diag.SynUnexpectedToken)
	if !ok {
		return ast.TypeRef{}, false
	}
	ref.Span = ref.Span.Cover(gt.Span)
	return ref, true
}

// unquote декодирует строковый литерал вместе с кавычками.
// Лексер уже гарантирует закрытую кавычку.
func unquote(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	body := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		b := body[i]
		if b != '\\' || i+1 >= len(body) {
			out = append(out, b)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		default:
			// незнакомый escape оставляем как есть
			out = append(out, '\\', body[i])
		}
	}
	return string(out)
}

func parseInt(text string) int64 {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
