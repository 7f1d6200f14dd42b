package parser

import (
	"fmt"

	"casecheck/internal/ast"
	"casecheck/internal/diag"
	"casecheck/internal/lexer"
	"casecheck/internal/source"
	"casecheck/internal/token"
)

type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

// Parser — состояние парсера на один файл.
type Parser struct {
	lx       *lexer.Lexer
	file     *ast.File
	opts     Options
	errs     uint
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile parses one fixture file into an ast.File. Syntax problems are
// reported through opts.Reporter; the returned tree holds whatever parsed.
func ParseFile(src *source.File, opts Options) *ast.File {
	lx := lexer.New(src, lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		lx:   lx,
		file: &ast.File{FileID: src.ID},
		opts: opts,
	}
	p.parseItems()
	return p.file
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) next() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// expect съедает токен нужного вида или репортит и возвращает ok=false.
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	tok := p.lx.Peek()
	if tok.Kind == k {
		return p.next(), true
	}
	p.err(code, p.errSpan(tok), fmt.Sprintf("expected %q, found %q", k.String(), tok.Kind.String()))
	return tok, false
}

func (p *Parser) errSpan(tok token.Token) source.Span {
	if tok.Kind == token.EOF && !p.lastSpan.Empty() {
		return p.lastSpan
	}
	return tok.Span
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	p.errs++
	if p.opts.MaxErrors != 0 && p.errs > p.opts.MaxErrors {
		return
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}

// resyncTo прокручивает поток до одного из токенов-границ (не съедая его),
// либо съедает завершающий Semicolon.
func (p *Parser) resyncTo(boundaries ...token.Kind) {
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			return
		}
		if tok.Kind == token.Semicolon {
			p.next()
			return
		}
		for _, b := range boundaries {
			if tok.Kind == b {
				return
			}
		}
		p.next()
	}
}

func (p *Parser) parseIdent(code diag.Code) (ast.Ident, bool) {
	tok := p.lx.Peek()
	if tok.Kind != token.Ident {
		p.err(code, p.errSpan(tok), fmt.Sprintf("expected identifier, found %q", tok.Kind.String()))
		return ast.Ident{}, false
	}
	p.next()
	return ast.Ident{Name: tok.Text, Span: tok.Span}, true
}
