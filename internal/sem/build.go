package sem

import (
	"fmt"
	"strings"

	"casecheck/internal/ast"
	"casecheck/internal/diag"
	"casecheck/internal/source"
)

// SourceAttrName — имя атрибута, который проверяет checker.
const SourceAttrName = "source"

var builtinTypes = []string{"int", "uint", "bool", "string", "Case"}

// Build constructs the semantic model from parsed files. Model-level
// problems (duplicate consts, unknown type references, unknown attributes)
// are reported through r; the checker itself never re-reports them.
func Build(files []*ast.File, r diag.Reporter) *Model {
	m := &Model{
		types:  make(map[string]*Type),
		consts: make(map[string]*Const),
	}

	for _, name := range builtinTypes {
		m.types[name] = &Type{Name: name, Builtin: true}
	}
	m.types["Seq"] = &Type{Name: "Seq", Builtin: true, Sequence: true}

	b := builder{model: m, reporter: r}
	// Пофрагментно: сначала все типы, чтобы ссылки на типы разрешались
	// независимо от порядка объявлений.
	for _, file := range files {
		b.declareTypes(file)
	}
	for _, file := range files {
		b.declareConsts(file)
	}
	for _, file := range files {
		b.declareMembers(file)
	}
	return m
}

type builder struct {
	model    *Model
	reporter diag.Reporter
}

func (b *builder) report(code diag.Code, sev diag.Severity, sp source.Span, format string, args ...any) {
	if b.reporter == nil {
		return
	}
	b.reporter.Report(code, sev, sp, fmt.Sprintf(format, args...), nil, nil)
}

func (b *builder) declareTypes(file *ast.File) {
	for i := range file.Types {
		decl := &file.Types[i]
		t, ok := b.model.types[decl.Name.Name]
		if !ok {
			t = &Type{Name: decl.Name.Name, Span: decl.Name.Span}
			b.model.types[decl.Name.Name] = t
		} else if t.Builtin {
			b.report(diag.SemaDuplicateMember, diag.SevError, decl.Name.Span,
				"type %q shadows a builtin type", decl.Name.Name)
			continue
		}
		t.Fragments = append(t.Fragments, &Fragment{Span: decl.Span})
	}
}

func (b *builder) declareConsts(file *ast.File) {
	for i := range file.Consts {
		decl := &file.Consts[i]
		if prev, ok := b.model.consts[decl.Name.Name]; ok {
			if b.reporter != nil {
				b.reporter.Report(diag.SemaDuplicateConst, diag.SevError, decl.Name.Span,
					fmt.Sprintf("constant %q is already declared", decl.Name.Name),
					[]diag.Note{{Span: prev.Span, Msg: "previous declaration here"}}, nil)
			}
			continue
		}
		b.model.consts[decl.Name.Name] = &Const{
			Name:  decl.Name.Name,
			Value: decl.Value,
			Span:  decl.Name.Span,
		}
	}
}

func (b *builder) declareMembers(file *ast.File) {
	// Фрагменты типа нумеруются в том же порядке, что и в declareTypes.
	fragIndex := make(map[string]int)
	for i := range file.Types {
		decl := &file.Types[i]
		t, ok := b.model.types[decl.Name.Name]
		if !ok || t.Builtin {
			continue
		}
		frag := b.fragmentFor(t, decl, fragIndex)
		for j := range decl.Members {
			b.declareMember(t, frag, &decl.Members[j])
		}
	}
}

// fragmentFor finds the fragment created for this declaration block. Blocks
// of the same type within one file are matched by occurrence order.
func (b *builder) fragmentFor(t *Type, decl *ast.TypeDecl, seen map[string]int) *Fragment {
	for _, frag := range t.Fragments {
		if frag.Span == decl.Span {
			return frag
		}
	}
	// fallback по порядку — спаны совпадают всегда, кроме дефектных деревьев
	idx := seen[decl.Name.Name]
	seen[decl.Name.Name] = idx + 1
	if idx < len(t.Fragments) {
		return t.Fragments[idx]
	}
	frag := &Fragment{Span: decl.Span}
	t.Fragments = append(t.Fragments, frag)
	return frag
}

func (b *builder) declareMember(t *Type, frag *Fragment, decl *ast.Member) {
	switch decl.Kind {
	case ast.MemberCtor:
		t.CtorArity = append(t.CtorArity, len(decl.Params))
		b.checkAttrsAllowed(decl, "constructor")
		return

	case ast.MemberCase:
		b.collectUsages(t, decl)
		return

	case ast.MemberField, ast.MemberProp, ast.MemberMethod:
		kind := KindField
		switch decl.Kind {
		case ast.MemberProp:
			kind = KindProp
		case ast.MemberMethod:
			kind = KindMethod
		}
		for _, prev := range frag.Members {
			if prev.Name == decl.Name.Name && prev.Kind == kind {
				b.report(diag.SemaDuplicateMember, diag.SevError, decl.Name.Span,
					"%s %q is already declared in this block", kind, decl.Name.Name)
				return
			}
		}
		member := &Member{
			Name:   decl.Name.Name,
			Kind:   kind,
			Static: decl.Static,
			Priv:   decl.Priv,
			Owner:  t,
			Span:   decl.Name.Span,
		}
		if decl.Type != nil {
			member.TypeName = decl.Type.Name.Name
			if resolved, ok := b.model.types[decl.Type.Name.Name]; ok {
				member.Type = resolved
			} else {
				b.report(diag.SemaUnknownType, diag.SevError, decl.Type.Name.Span,
					"unknown type %q", decl.Type.Name.Name)
			}
		}
		if kind == KindMethod {
			member.ParamCount = len(decl.Params)
		}
		b.checkAttrsAllowed(decl, kind.String())
		frag.Members = append(frag.Members, member)
	}
}

func (b *builder) collectUsages(t *Type, decl *ast.Member) {
	for _, attr := range decl.Attrs {
		if !strings.EqualFold(attr.Name.Name, SourceAttrName) {
			b.report(diag.SemaUnknownAttr, diag.SevWarning, attr.Name.Span,
				"unknown attribute '@%s'", attr.Name.Name)
			continue
		}
		b.model.usages = append(b.model.usages, Usage{
			Enclosing: t,
			CaseName:  decl.Name.Name,
			Attr:      attr,
		})
	}
}

// Атрибуты имеют смысл только на case-объявлениях.
func (b *builder) checkAttrsAllowed(decl *ast.Member, what string) {
	for _, attr := range decl.Attrs {
		b.report(diag.SemaAttrNotAllowed, diag.SevError, attr.Span,
			"attribute '@%s' is not allowed on a %s declaration", attr.Name.Name, what)
	}
}
