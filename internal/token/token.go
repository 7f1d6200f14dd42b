package token

import (
	"casecheck/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is an integer or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwType, KwConst, KwField, KwProp, KwMethod, KwCtor, KwCase,
		KwStatic, KwPriv, KwNameof, KwTypeof:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsModifier reports whether the token is a member modifier keyword.
func (t Token) IsModifier() bool {
	return t.Kind == KwStatic || t.Kind == KwPriv
}
