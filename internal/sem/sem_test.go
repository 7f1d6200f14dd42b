package sem_test

import (
	"testing"

	"casecheck/internal/ast"
	"casecheck/internal/diag"
	"casecheck/internal/parser"
	"casecheck/internal/sem"
	"casecheck/internal/source"
)

// buildModel собирает модель из одного виртуального файла.
func buildModel(t *testing.T, input string) (*sem.Model, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.case", []byte(input))
	bag := diag.NewBag(32)
	r := diag.BagReporter{Bag: bag}
	file := parser.ParseFile(fs.Get(id), parser.Options{Reporter: r})
	return sem.Build([]*ast.File{file}, r), bag
}

func TestBuiltinTypes(t *testing.T) {
	m, _ := buildModel(t, "")
	for _, name := range []string{"int", "uint", "bool", "string", "Case", "Seq"} {
		if _, ok := m.TypeByName(name); !ok {
			t.Errorf("builtin %q missing", name)
		}
	}
	seq, _ := m.TypeByName("Seq")
	if !seq.Sequence {
		t.Fatal("Seq must be marked as a sequence")
	}
}

func TestLookupPrefersFieldOverPropOverMethod(t *testing.T) {
	m, bag := buildModel(t, `
type Rows {
	method items(): Seq<int>;
	prop items: Seq<int>;
	field items: Seq<int>;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	rows, _ := m.TypeByName("Rows")
	got := m.LookupMember(rows, "items")
	if got == nil || got.Kind != sem.KindField {
		t.Fatalf("expected field to win, got %+v", got)
	}
}

func TestLookupPropBeatsMethod(t *testing.T) {
	m, _ := buildModel(t, `
type Rows {
	method items(): Seq<int>;
	prop items: Seq<int>;
}
`)
	rows, _ := m.TypeByName("Rows")
	got := m.LookupMember(rows, "items")
	if got == nil || got.Kind != sem.KindProp {
		t.Fatalf("expected property to win, got %+v", got)
	}
}

func TestLookupWalksFragmentsInOrder(t *testing.T) {
	m, _ := buildModel(t, `
type Rows { method items(): Seq<int>; }
type Rows { field items: Seq<int>; }
`)
	rows, _ := m.TypeByName("Rows")
	if len(rows.Fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(rows.Fragments))
	}
	// Первый фрагмент с совпадением выигрывает, даже если ранг хуже.
	got := m.LookupMember(rows, "items")
	if got == nil || got.Kind != sem.KindMethod {
		t.Fatalf("expected method from the first fragment, got %+v", got)
	}
}

func TestAccessibility(t *testing.T) {
	m, _ := buildModel(t, `
type Rows { priv field hidden: int; field open: int; }
type Other { field x: int; }
`)
	rows, _ := m.TypeByName("Rows")
	other, _ := m.TypeByName("Other")

	hidden := m.LookupMember(rows, "hidden")
	if !m.AccessibleFrom(hidden, rows) {
		t.Fatal("private member must be visible to its owner")
	}
	if m.AccessibleFrom(hidden, other) {
		t.Fatal("private member must be invisible outside its owner")
	}
	if !m.AccessibleFrom(m.LookupMember(rows, "open"), other) {
		t.Fatal("public member must be visible everywhere")
	}
}

func TestEnumerableCapability(t *testing.T) {
	m, bag := buildModel(t, `
type Cursor { method next(): int; }
type Iterable { method iter(): Cursor; }
type SeqIterable { method iter(): Seq<int>; }
type PrivIter { priv method iter(): Cursor; }
type ArgIter { method iter(int): Cursor; }
type DeadEnd { method iter(): int; }
type Plain { field x: int; }
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}

	cases := []struct {
		name string
		want bool
	}{
		{"Seq", true},
		{"Iterable", true},    // iter() -> Cursor with next()
		{"SeqIterable", true}, // iter() -> Seq
		{"PrivIter", false},   // iter недоступен
		{"ArgIter", false},    // iter с параметрами не считается
		{"DeadEnd", false},    // возвращаемый тип без next
		{"Plain", false},
		{"int", false}, // builtin без последовательности
	}
	for _, tc := range cases {
		typ, ok := m.TypeByName(tc.name)
		if !ok {
			t.Fatalf("type %q missing", tc.name)
		}
		if got := m.Enumerable(typ); got != tc.want {
			t.Errorf("Enumerable(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDefaultConstructible(t *testing.T) {
	m, _ := buildModel(t, `
type NoCtor { field x: int; }
type ZeroCtor { ctor(); ctor(int); }
type OnlyArgCtor { ctor(int, string); }
`)
	cases := []struct {
		name string
		want bool
	}{
		{"NoCtor", true},
		{"ZeroCtor", true},
		{"OnlyArgCtor", false},
		{"int", true}, // builtins конструируются всегда
	}
	for _, tc := range cases {
		typ, _ := m.TypeByName(tc.name)
		if got := m.DefaultConstructible(typ); got != tc.want {
			t.Errorf("DefaultConstructible(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestConstValue(t *testing.T) {
	m, _ := buildModel(t, `const Name = "items";`)
	if v, ok := m.ConstValue([]string{"Name"}); !ok || v != "items" {
		t.Fatalf("ConstValue: %q %v", v, ok)
	}
	if _, ok := m.ConstValue([]string{"Missing"}); ok {
		t.Fatal("unknown const must not resolve")
	}
	if _, ok := m.ConstValue([]string{"A", "B"}); ok {
		t.Fatal("multi-segment paths must not resolve")
	}
}

func TestDuplicateConstReported(t *testing.T) {
	_, bag := buildModel(t, `
const Name = "a";
const Name = "b";
`)
	requireCode(t, bag, diag.SemaDuplicateConst)
}

func TestDuplicateMemberReported(t *testing.T) {
	_, bag := buildModel(t, `
type Rows {
	field items: int;
	field items: int;
}
`)
	requireCode(t, bag, diag.SemaDuplicateMember)
}

func TestDuplicateAcrossFragmentsAllowed(t *testing.T) {
	_, bag := buildModel(t, `
type Rows { field items: int; }
type Rows { field items: int; }
`)
	// Частичные объявления могут повторять имена; выбор делает lookup.
	for _, d := range bag.Items() {
		if d.Code == diag.SemaDuplicateMember {
			t.Fatalf("cross-fragment duplicate must not be reported: %v", d)
		}
	}
}

func TestUnknownMemberTypeReported(t *testing.T) {
	m, bag := buildModel(t, `
type Rows { field items: Mystery; }
`)
	requireCode(t, bag, diag.SemaUnknownType)
	rows, _ := m.TypeByName("Rows")
	member := m.LookupMember(rows, "items")
	if member == nil {
		t.Fatal("member itself must still be declared")
	}
	if member.Type != nil {
		t.Fatal("unresolved type must stay nil")
	}
	if member.TypeName != "Mystery" {
		t.Fatalf("TypeName must record the written name, got %q", member.TypeName)
	}
}

func TestUsageCollection(t *testing.T) {
	m, bag := buildModel(t, `
type Rows {
	@source("items")
	case first;
	@source("rows")
	@Source("extra")
	case second;
	case bare;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	usages := m.Usages()
	// Имя атрибута сравнивается без учёта регистра.
	if len(usages) != 3 {
		t.Fatalf("expected 3 usages, got %d", len(usages))
	}
	if usages[0].CaseName != "first" || usages[1].CaseName != "second" {
		t.Fatalf("usage order: %+v", usages)
	}
	if usages[0].Enclosing.Name != "Rows" {
		t.Fatalf("enclosing type: %q", usages[0].Enclosing.Name)
	}
}

func TestUnknownAttrWarned(t *testing.T) {
	_, bag := buildModel(t, `
type Rows {
	@fixture("x")
	case c;
}
`)
	requireCode(t, bag, diag.SemaUnknownAttr)
	if bag.HasErrors() {
		t.Fatal("unknown attribute is a warning, not an error")
	}
}

func TestAttrOnNonCaseRejected(t *testing.T) {
	_, bag := buildModel(t, `
type Rows {
	@source("items")
	field items: Seq<int>;
}
`)
	requireCode(t, bag, diag.SemaAttrNotAllowed)
}

func TestBuiltinShadowRejected(t *testing.T) {
	_, bag := buildModel(t, `type int { field x: uint; }`)
	requireCode(t, bag, diag.SemaDuplicateMember)
}

func requireCode(t *testing.T, bag *diag.Bag, code diag.Code) {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("expected diagnostic %s, got %v", code.ID(), bag.Items())
}
