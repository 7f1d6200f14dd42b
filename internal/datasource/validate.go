package datasource

import (
	"context"
	"fmt"

	"casecheck/internal/diag"
	"casecheck/internal/sem"
	"casecheck/internal/source"
)

// Checker validates @source usages against a host semantic model. It holds
// only read-only state and is safe to call concurrently, once per usage.
type Checker struct {
	Sem      Semantics
	Reporter diag.Reporter
}

// CheckUsage runs the full pipeline for one usage: extract, resolve,
// validate. Cancellation is checked once, up front, before any symbol
// lookups.
func (c *Checker) CheckUsage(ctx context.Context, usage sem.Usage) {
	if ctx != nil && ctx.Err() != nil {
		return
	}

	ref, ok := Extract(c.Sem, usage)
	if !ok {
		return
	}

	if !ref.HasName {
		c.checkTypeOnly(ref)
		return
	}

	member := resolveMember(c.Sem, ref)
	if member == nil {
		c.emit(diag.SrcMissingSource, ref.NameSpan, ref.MemberName, ref.DeclaringType.Name).Emit()
		return
	}
	c.checkMember(usage, ref, member)
}

// checkTypeOnly validates the type-only form: the type itself is the source.
// The two checks are mutually exclusive in reporting: a non-enumerable type
// does not additionally get the constructor complaint.
func (c *Checker) checkTypeOnly(ref SourceRef) {
	t := ref.DeclaringType
	if !c.Sem.Enumerable(t) {
		c.emit(diag.SrcTypeNotEnumerable, ref.TypeArgSpan, t.Name).Emit()
	} else if !c.Sem.DefaultConstructible(t) {
		c.emit(diag.SrcTypeNoDefaultCtor, ref.TypeArgSpan, t.Name).Emit()
	}
}

// checkMember runs the member-level battery. The checks are independent and
// do not short-circuit each other; one usage may collect several
// diagnostics.
func (c *Checker) checkMember(usage sem.Usage, ref SourceRef, member *sem.Member) {
	if ref.NameIsLiteral && c.Sem.AccessibleFrom(member, usage.Enclosing) {
		c.suggestNameof(usage, ref, member)
	}

	if !member.Static {
		c.emit(diag.SrcNotStatic, ref.NameSpan, member.Kind, member.Name).Emit()
	}

	// Тип поля/свойства или возвращаемый тип метода. Неразрешённый тип уже
	// отрепорчен моделью; не каскадируем.
	if member.Type != nil && !c.Sem.Enumerable(member.Type) {
		c.emit(diag.SrcNotEnumerable, ref.NameSpan, member.Kind, member.Name, member.TypeName).Emit()
	}

	switch member.Kind {
	case sem.KindField, sem.KindProp:
		if ref.ArgCount > 0 {
			c.emit(diag.SrcArgsOnNonMethod, ref.NameSpan, member.Name, member.Kind).Emit()
		}
	case sem.KindMethod:
		supplied := ref.ArgCount
		if supplied < 0 {
			supplied = 0
		}
		if supplied != member.ParamCount {
			c.emit(diag.SrcParamCountMismatch, ref.NameSpan, member.Name, member.ParamCount, supplied).Emit()
		}
	}
}

// suggestNameof emits the advisory with a ready-to-apply rewrite of the
// literal into a symbolic reference. The name is qualified with the owner
// type only when the member lives outside the usage's enclosing type.
func (c *Checker) suggestNameof(usage sem.Usage, ref SourceRef, member *sem.Member) {
	suggested := member.Name
	if member.Owner != nil && member.Owner != usage.Enclosing {
		suggested = member.Owner.Name + "." + member.Name
	}
	replacement := fmt.Sprintf("nameof(%s)", suggested)
	c.emit(diag.SrcPreferSymbolicName, ref.NameSpan, ref.MemberName, suggested).
		WithFix("replace string literal with "+replacement, diag.FixEdit{
			Span:    ref.NameSpan,
			NewText: replacement,
			OldText: ref.NameRaw,
		}).
		Emit()
}

// emit builds a report from the advertised descriptor for the code, so the
// severity and message template live in exactly one place.
func (c *Checker) emit(code diag.Code, sp source.Span, args ...any) *diag.ReportBuilder {
	d, ok := descriptorByCode[code]
	if !ok {
		return diag.ReportError(c.Reporter, diag.UnknownCode, sp, "unknown datasource diagnostic")
	}
	msg := fmt.Sprintf(d.Message, args...)
	return diag.NewReportBuilder(c.Reporter, d.Severity, d.Code, sp, msg)
}
