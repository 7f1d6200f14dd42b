package token

var keywords = map[string]Kind{
	"type":   KwType,
	"const":  KwConst,
	"field":  KwField,
	"prop":   KwProp,
	"method": KwMethod,
	"ctor":   KwCtor,
	"case":   KwCase,
	"static": KwStatic,
	"priv":   KwPriv,
	"nameof": KwNameof,
	"typeof": KwTypeof,
}

// LookupKeyword returns the keyword kind for an identifier spelling, or Ident
// when the spelling is not a keyword.
func LookupKeyword(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Ident
}
