// Package datasource validates @source attribute references on test cases:
// it normalizes attribute arguments into a SourceRef, resolves the named
// member inside the declaring type, and runs a battery of independent
// semantic checks, each emitting at most one diagnostic.
package datasource

import (
	"casecheck/internal/sem"
	"casecheck/internal/source"
)

// SourceRef is the normalized shape of one @source usage. Every downstream
// stage operates on this record instead of re-branching on raw argument
// lists.
//
// Invariant: MemberName and NameSpan are both set or both empty (HasName).
// DeclaringType is always non-nil on a constructed SourceRef.
type SourceRef struct {
	// DeclaringType supplies the member: the typeof(...) argument, or the
	// usage's own enclosing type when omitted.
	DeclaringType *sem.Type
	// MemberName is the constant string naming the source member. Empty for
	// the type-only attribute form.
	MemberName string
	HasName    bool
	// NameSpan anchors member-level diagnostics at the name argument.
	NameSpan source.Span
	// NameIsLiteral is true when the name came from a direct string literal
	// rather than nameof(...) or a constant reference. Only literals get the
	// prefer-nameof advisory.
	NameIsLiteral bool
	// NameRaw is the argument's source spelling, used as an edit guard.
	NameRaw string
	// ArgCount is the element count of an inline argument array, or -1 when
	// no such array was supplied.
	ArgCount int
	// TypeArgSpan anchors type-only diagnostics at the typeof argument.
	// Zero when the declaring type is implicit.
	TypeArgSpan source.Span
}

// Semantics is the narrow capability surface the checker needs from a host
// semantic model. *sem.Model implements it; tests may supply a hand-built
// table instead.
type Semantics interface {
	TypeByName(name string) (*sem.Type, bool)
	ConstValue(path []string) (string, bool)
	LookupMember(t *sem.Type, name string) *sem.Member
	Enumerable(t *sem.Type) bool
	DefaultConstructible(t *sem.Type) bool
	AccessibleFrom(m *sem.Member, from *sem.Type) bool
}

var _ Semantics = (*sem.Model)(nil)
