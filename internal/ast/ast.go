// Package ast defines the syntax tree for case fixture files.
//
// The tree is small and short-lived (one analysis pass), so nodes are plain
// structs holding their own spans rather than arena-allocated IDs.
package ast

import (
	"casecheck/internal/source"
)

// File is the root of one parsed fixture file.
type File struct {
	FileID source.FileID
	Consts []ConstDecl
	Types  []TypeDecl
}

// Ident is a name with its location.
type Ident struct {
	Name string
	Span source.Span
}

// ConstDecl is a top-level `const Name = "value";` declaration.
type ConstDecl struct {
	Name  Ident
	Value string // decoded string value
	Span  source.Span
}

// TypeDecl is one `type Name { ... }` block. The same type name may be
// declared in several blocks (partial declarations); each block is a separate
// TypeDecl fragment.
type TypeDecl struct {
	Name    Ident
	Members []Member
	Span    source.Span
}

// TypeRef references a type, optionally with type arguments: Seq<Case>.
type TypeRef struct {
	Name Ident
	Args []TypeRef
	Span source.Span
}

// MemberKind discriminates member declarations.
type MemberKind uint8

const (
	MemberField MemberKind = iota
	MemberProp
	MemberMethod
	MemberCtor
	MemberCase
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberProp:
		return "prop"
	case MemberMethod:
		return "method"
	case MemberCtor:
		return "ctor"
	case MemberCase:
		return "case"
	}
	return "invalid"
}

// Member is a single declaration inside a type block.
type Member struct {
	Kind   MemberKind
	Name   Ident     // zero for ctor
	Type   *TypeRef  // field/prop type, method return type; nil for ctor and case
	Params []TypeRef // method/ctor parameter types
	Static bool
	Priv   bool
	Attrs  []Attr // attributes; attach to case declarations
	Span   source.Span
}

// Attr is one `@name(args...)` attribute usage.
type Attr struct {
	Name Ident
	Args []AttrArg
	Span source.Span
}

// AttrArg is a positional or labelled attribute argument.
type AttrArg struct {
	Label     string // "" for positional
	LabelSpan source.Span
	Expr      Expr
}

// Expr is an attribute argument expression.
type Expr interface {
	Span() source.Span
	expr()
}

// StringExpr is a direct string literal.
type StringExpr struct {
	Value string // decoded
	Sp    source.Span
}

// NameofExpr is a symbolic reference: nameof(Type.Member) or nameof(Member).
type NameofExpr struct {
	Path []Ident
	Sp   source.Span
}

// TypeofExpr names a type: typeof(T).
type TypeofExpr struct {
	Type Ident
	Sp   source.Span
}

// ArrayExpr is an inline argument array: [1, "x"].
type ArrayExpr struct {
	Elems []Expr
	Sp    source.Span
}

// RefExpr is a bare path, resolvable only if it names a const declaration.
type RefExpr struct {
	Path []Ident
	Sp   source.Span
}

// IntExpr is an integer literal inside an argument array.
type IntExpr struct {
	Value int64
	Sp    source.Span
}

func (e StringExpr) Span() source.Span { return e.Sp }
func (e NameofExpr) Span() source.Span { return e.Sp }
func (e TypeofExpr) Span() source.Span { return e.Sp }
func (e ArrayExpr) Span() source.Span  { return e.Sp }
func (e RefExpr) Span() source.Span    { return e.Sp }
func (e IntExpr) Span() source.Span    { return e.Sp }

func (StringExpr) expr() {}
func (NameofExpr) expr() {}
func (TypeofExpr) expr() {}
func (ArrayExpr) expr()  {}
func (RefExpr) expr()    {}
func (IntExpr) expr()    {}

// PathString joins a dotted path back into its source spelling.
func PathString(path []Ident) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "."
		}
		out += p.Name
	}
	return out
}

// PathSpan covers the whole dotted path.
func PathSpan(path []Ident) source.Span {
	if len(path) == 0 {
		return source.Span{}
	}
	sp := path[0].Span
	return sp.Cover(path[len(path)-1].Span)
}
