// Package sem builds the semantic model of parsed fixture files: a type
// table with declaration fragments, member symbols, and string constants.
// The datasource checker consumes it through narrow capability methods
// (lookup, constant evaluation, enumerability, accessibility), so a
// lightweight hand-built model can host the checker in tests.
package sem

import (
	"casecheck/internal/ast"
	"casecheck/internal/source"
)

// MemberKind classifies the semantic meaning of a data member.
type MemberKind uint8

const (
	KindInvalid MemberKind = iota
	KindField
	KindProp
	KindMethod
)

func (k MemberKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindProp:
		return "property"
	case KindMethod:
		return "method"
	default:
		return "invalid"
	}
}

// Member describes a field, property, or method declared on a type.
type Member struct {
	Name       string
	Kind       MemberKind
	Static     bool
	Priv       bool
	Owner      *Type
	Type       *Type // field/prop type or method return type; nil if unresolved
	TypeName   string
	ParamCount int // methods only
	Span       source.Span
}

// Fragment is one `type X { ... }` declaration block. A type declared in
// several blocks (partial declaration) has several fragments in source order.
type Fragment struct {
	Span    source.Span
	Members []*Member
}

// Type describes a named type: either a builtin or a fixture declaration.
type Type struct {
	Name      string
	Builtin   bool
	Sequence  bool // builtin Seq<T>
	Fragments []*Fragment
	CtorArity []int // declared constructor parameter counts, in source order
	Span      source.Span
}

// HasExplicitCtor reports whether any constructor was declared.
func (t *Type) HasExplicitCtor() bool {
	return len(t.CtorArity) > 0
}

// Const is a top-level string constant declaration.
type Const struct {
	Name  string
	Value string
	Span  source.Span
}

// Usage is one @source attribute occurrence on a test case, paired with its
// enclosing type. The checker runs once per Usage.
type Usage struct {
	Enclosing *Type
	CaseName  string
	Attr      ast.Attr
}

// Model aggregates everything the checker needs for one analysis pass.
// It is immutable after Build and safe for concurrent readers.
type Model struct {
	types  map[string]*Type
	consts map[string]*Const
	usages []Usage
}

// TypeByName resolves a type name against declarations and builtins.
func (m *Model) TypeByName(name string) (*Type, bool) {
	t, ok := m.types[name]
	return t, ok
}

// ConstValue evaluates a constant reference to its compile-time string value.
// Only single-segment paths can name a top-level constant.
func (m *Model) ConstValue(path []string) (string, bool) {
	if len(path) != 1 {
		return "", false
	}
	c, ok := m.consts[path[0]]
	if !ok {
		return "", false
	}
	return c.Value, true
}

// Usages returns all collected @source usages in declaration order.
func (m *Model) Usages() []Usage {
	return m.usages
}
