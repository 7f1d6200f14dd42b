package datasource

import (
	"casecheck/internal/diag"
)

// Category groups all datasource diagnostics for host-side configuration.
const Category = "datasource"

// Descriptor advertises one diagnostic kind this checker can produce, so a
// host can enable, disable, or re-severity each of them independently.
type Descriptor struct {
	Code     diag.Code
	Severity diag.Severity
	Category string
	Title    string
	// Message is the fmt template interpolated with per-usage context.
	Message string
}

var descriptors = []Descriptor{
	{
		Code:     diag.SrcMissingSource,
		Severity: diag.SevError,
		Category: Category,
		Title:    "data source member not found",
		Message:  "no field, property, or method named %q was found on type %q",
	},
	{
		Code:     diag.SrcTypeNotEnumerable,
		Severity: diag.SevError,
		Category: Category,
		Title:    "data source type is not enumerable",
		Message:  "type %q cannot produce a sequence of test cases",
	},
	{
		Code:     diag.SrcTypeNoDefaultCtor,
		Severity: diag.SevError,
		Category: Category,
		Title:    "data source type has no default constructor",
		Message:  "type %q has no parameterless constructor",
	},
	{
		Code:     diag.SrcNotStatic,
		Severity: diag.SevError,
		Category: Category,
		Title:    "data source member must be static",
		Message:  "data source %s %q must be static",
	},
	{
		Code:     diag.SrcParamCountMismatch,
		Severity: diag.SevError,
		Category: Category,
		Title:    "data source argument count mismatch",
		Message:  "data source method %q takes %d parameter(s), but %d argument(s) were supplied",
	},
	{
		Code:     diag.SrcNotEnumerable,
		Severity: diag.SevError,
		Category: Category,
		Title:    "data source member is not enumerable",
		Message:  "%s %q of type %q cannot produce a sequence of test cases",
	},
	{
		Code:     diag.SrcArgsOnNonMethod,
		Severity: diag.SevError,
		Category: Category,
		Title:    "arguments supplied to a non-method data source",
		Message:  "arguments were supplied, but %q is a %s, not a method",
	},
	{
		Code:     diag.SrcPreferSymbolicName,
		Severity: diag.SevWarning,
		Category: Category,
		Title:    "prefer nameof over string literal",
		Message:  "reference %q with nameof(%s) so renames keep the test working",
	},
}

var descriptorByCode = func() map[diag.Code]Descriptor {
	out := make(map[diag.Code]Descriptor, len(descriptors))
	for _, d := range descriptors {
		out[d.Code] = d
	}
	return out
}()

// Descriptors returns every diagnostic kind the checker can produce.
// The slice is a copy; callers may reorder it freely.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}
