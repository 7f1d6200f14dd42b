package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadEscape          Code = 1004

	// Парсерные
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynExpectSemicolon Code = 2002
	SynExpectIdent     Code = 2003
	SynExpectType      Code = 2004
	SynUnclosedParen   Code = 2005
	SynUnclosedBrace   Code = 2006
	SynUnclosedBracket Code = 2007
	SynBadAttrArg      Code = 2008

	// Модель (построение таблицы символов)
	SemaInfo            Code = 3000
	SemaDuplicateConst  Code = 3001
	SemaDuplicateMember Code = 3002
	SemaUnknownType     Code = 3003
	SemaUnknownAttr     Code = 3004
	SemaAttrNotAllowed  Code = 3005

	// Проверка источников данных (@source)
	SrcInfo                Code = 5000
	SrcMissingSource       Code = 5001
	SrcTypeNotEnumerable   Code = 5002
	SrcTypeNoDefaultCtor   Code = 5003
	SrcNotStatic           Code = 5004
	SrcParamCountMismatch  Code = 5005
	SrcNotEnumerable       Code = 5006
	SrcArgsOnNonMethod     Code = 5007
	SrcPreferSymbolicName  Code = 5008
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexInfo:               "lexical info",
	LexUnknownChar:        "unknown character",
	LexUnterminatedString: "unterminated string literal",
	LexBadNumber:          "malformed number literal",
	LexBadEscape:          "invalid escape sequence",

	SynInfo:            "syntax info",
	SynUnexpectedToken: "unexpected token",
	SynExpectSemicolon: "expected ';'",
	SynExpectIdent:     "expected identifier",
	SynExpectType:      "expected type reference",
	SynUnclosedParen:   "unclosed '('",
	SynUnclosedBrace:   "unclosed '{'",
	SynUnclosedBracket: "unclosed '['",
	SynBadAttrArg:      "malformed attribute argument",

	SemaInfo:            "semantic info",
	SemaDuplicateConst:  "duplicate constant declaration",
	SemaDuplicateMember: "duplicate member declaration",
	SemaUnknownType:     "unknown type reference",
	SemaUnknownAttr:     "unknown attribute",
	SemaAttrNotAllowed:  "attribute not allowed here",

	SrcInfo:               "data source info",
	SrcMissingSource:      "data source member not found",
	SrcTypeNotEnumerable:  "data source type is not enumerable",
	SrcTypeNoDefaultCtor:  "data source type has no default constructor",
	SrcNotStatic:          "data source member must be static",
	SrcParamCountMismatch: "data source argument count mismatch",
	SrcNotEnumerable:      "data source member is not enumerable",
	SrcArgsOnNonMethod:    "arguments supplied to a non-method data source",
	SrcPreferSymbolicName: "prefer nameof over string literal",
}

// ID returns the stable textual identifier of the code, e.g. SRC5001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("SRC%04d", ic)
	}
	return "E0000"
}

// Title returns the short human description registered for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
