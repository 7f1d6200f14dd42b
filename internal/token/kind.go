package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwType represents the 'type' keyword.
	KwType // type
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwField represents the 'field' keyword.
	KwField // field
	// KwProp represents the 'prop' keyword.
	KwProp // prop
	// KwMethod represents the 'method' keyword.
	KwMethod // method
	// KwCtor represents the 'ctor' keyword.
	KwCtor // ctor
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwStatic represents the 'static' modifier keyword.
	KwStatic // static
	// KwPriv represents the 'priv' modifier keyword.
	KwPriv // priv
	// KwNameof represents the 'nameof' operator keyword.
	KwNameof // nameof
	// KwTypeof represents the 'typeof' operator keyword.
	KwTypeof // typeof

	// IntLit represents an integer literal.
	IntLit
	// StringLit represents a string literal.
	StringLit

	// At represents '@'.
	At // @
	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// LBracket represents '['.
	LBracket // [
	// RBracket represents ']'.
	RBracket // ]
	// Lt represents '<'.
	Lt // <
	// Gt represents '>'.
	Gt // >
	// Comma represents ','.
	Comma // ,
	// Colon represents ':'.
	Colon // :
	// Semicolon represents ';'.
	Semicolon // ;
	// Dot represents '.'.
	Dot // .
	// Assign represents '='.
	Assign // =
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Ident:
		return "ident"
	case KwType:
		return "type"
	case KwConst:
		return "const"
	case KwField:
		return "field"
	case KwProp:
		return "prop"
	case KwMethod:
		return "method"
	case KwCtor:
		return "ctor"
	case KwCase:
		return "case"
	case KwStatic:
		return "static"
	case KwPriv:
		return "priv"
	case KwNameof:
		return "nameof"
	case KwTypeof:
		return "typeof"
	case IntLit:
		return "int"
	case StringLit:
		return "string"
	case At:
		return "@"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Comma:
		return ","
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case Dot:
		return "."
	case Assign:
		return "="
	}
	return "unknown"
}
