package datasource

import (
	"casecheck/internal/ast"
	"casecheck/internal/sem"
)

// Argument labels accepted by @source.
const (
	labelOf   = "of"
	labelName = "name"
	labelArgs = "args"
)

// Extract normalizes an attribute usage into a SourceRef. It returns ok=false
// when the usage is not analyzable: no arguments, an unknown label, a
// declaring type that does not resolve, or a name argument that does not
// reduce to a compile-time string constant. Such usages are skipped silently;
// they are either caught by ordinary syntax/model diagnostics or impossible
// to resolve statically.
func Extract(host Semantics, usage sem.Usage) (SourceRef, bool) {
	args := usage.Attr.Args
	if len(args) == 0 {
		return SourceRef{}, false
	}

	var ofExpr, nameExpr, argsExpr ast.Expr
	var positional []ast.Expr
	for _, arg := range args {
		switch arg.Label {
		case "":
			positional = append(positional, arg.Expr)
		case labelOf:
			ofExpr = arg.Expr
		case labelName:
			nameExpr = arg.Expr
		case labelArgs:
			argsExpr = arg.Expr
		default:
			return SourceRef{}, false
		}
	}

	// Позиционные аргументы заполняют ещё не занятые логические слоты
	// в каноническом порядке: [of,] name [, args].
	idx := 0
	if ofExpr == nil && len(positional) > 0 {
		if _, isType := positional[0].(ast.TypeofExpr); isType {
			ofExpr = positional[0]
			idx = 1
		}
	}
	if nameExpr == nil && idx < len(positional) {
		nameExpr = positional[idx]
		idx++
	}
	if argsExpr == nil && idx < len(positional) {
		argsExpr = positional[idx]
	}

	ref := SourceRef{ArgCount: -1}

	if ofExpr != nil {
		typeArg, ok := ofExpr.(ast.TypeofExpr)
		if !ok {
			return SourceRef{}, false
		}
		declaring, ok := host.TypeByName(typeArg.Type.Name)
		if !ok {
			return SourceRef{}, false
		}
		ref.DeclaringType = declaring
		ref.TypeArgSpan = ofExpr.Span()
	} else {
		ref.DeclaringType = usage.Enclosing
	}
	if ref.DeclaringType == nil {
		return SourceRef{}, false
	}

	if nameExpr != nil {
		name, literal, raw, ok := constantName(host, nameExpr)
		if !ok {
			// Неконстантное выражение имени — статически неразрешимо.
			return SourceRef{}, false
		}
		ref.MemberName = name
		ref.HasName = true
		ref.NameSpan = nameExpr.Span()
		ref.NameIsLiteral = literal
		ref.NameRaw = raw
	} else if ofExpr == nil {
		// Ни имени, ни typeof — разбирать нечего.
		return SourceRef{}, false
	}

	if arr, ok := argsExpr.(ast.ArrayExpr); ok {
		ref.ArgCount = len(arr.Elems)
	}

	return ref, true
}

// constantName evaluates a name argument to its compile-time string value.
// literal is true only for direct string literals; nameof(...) and constant
// references are already symbolic.
func constantName(host Semantics, expr ast.Expr) (value string, literal bool, raw string, ok bool) {
	switch e := expr.(type) {
	case ast.StringExpr:
		return e.Value, true, `"` + e.Value + `"`, true
	case ast.NameofExpr:
		if len(e.Path) == 0 {
			return "", false, "", false
		}
		return e.Path[len(e.Path)-1].Name, false, "", true
	case ast.RefExpr:
		path := make([]string, 0, len(e.Path))
		for _, seg := range e.Path {
			path = append(path, seg.Name)
		}
		value, found := host.ConstValue(path)
		if !found {
			return "", false, "", false
		}
		return value, false, "", true
	default:
		return "", false, "", false
	}
}
