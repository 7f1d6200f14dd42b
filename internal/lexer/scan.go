package lexer

import (
	"fmt"

	"casecheck/internal/diag"
	"casecheck/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.off
	for !lx.eof() && isIdentContinueByte(lx.peek()) {
		lx.bump()
	}
	sp := lx.spanFrom(start)
	text := lx.text(sp)
	return token.Token{Kind: token.LookupKeyword(text), Span: sp, Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.off
	for !lx.eof() && isDec(lx.peek()) {
		lx.bump()
	}
	// "12abc" — ошибка, а не два токена
	if !lx.eof() && isIdentStartByte(lx.peek()) {
		for !lx.eof() && isIdentContinueByte(lx.peek()) {
			lx.bump()
		}
		sp := lx.spanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, fmt.Sprintf("malformed number literal %q", lx.text(sp)))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.spanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
}

// Минимум: "..." с escape \" \\ \n \t; ошибки → Reporter.
func (lx *Lexer) scanString() token.Token {
	start := lx.off
	lx.bump() // opening '"'
	for !lx.eof() {
		b := lx.peek()
		if b == '"' {
			lx.bump()
			sp := lx.spanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
		if b == '\\' {
			// съесть '\' и следующий байт, не валидируем глубоко здесь
			lx.bump()
			if lx.eof() {
				break
			}
			lx.bump()
			continue
		}
		if b == '\n' {
			sp := lx.spanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.bump()
	}
	// EOF без закрывающей кавычки
	sp := lx.spanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

var punctKinds = map[byte]token.Kind{
	'@': token.At,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'<': token.Lt,
	'>': token.Gt,
	',': token.Comma,
	':': token.Colon,
	';': token.Semicolon,
	'.': token.Dot,
	'=': token.Assign,
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.off
	ch := lx.peek()
	lx.bump()
	sp := lx.spanFrom(start)
	if kind, ok := punctKinds[ch]; ok {
		return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
	}
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", string(ch)))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
