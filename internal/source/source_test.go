package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}

	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Fatalf("expected 5-20, got %d-%d", got.Start, got.End)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("cover across files must be a no-op, got %v", got)
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{File: 1, Start: 3, End: 7}
	if !s.Contains(3) || !s.Contains(6) {
		t.Fatal("boundary offsets inside the span must be contained")
	}
	if s.Contains(7) || s.Contains(2) {
		t.Fatal("End is exclusive, Start-1 is outside")
	}
}

func TestAddVirtualNormalizesContent(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.case", []byte("\xef\xbb\xbftype A {\r\n}\r\n"))

	f := fs.Get(id)
	if f == nil {
		t.Fatal("expected file to be registered")
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatal("expected FileVirtual flag")
	}
	if f.Flags&FileHadBOM == 0 {
		t.Fatal("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Fatal("expected FileNormalizedCRLF flag")
	}
	if string(f.Content) != "type A {\n}\n" {
		t.Fatalf("normalized content mismatch: %q", f.Content)
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("first\nsecond\nthird")
	idx := buildLineIndex(content)

	cases := []struct {
		offset uint32
		line   uint32
		col    uint32
	}{
		{0, 1, 1},
		{4, 1, 5},
		{5, 1, 6},  // точка перед \n
		{6, 2, 1},  // начало второй строки
		{13, 3, 1}, // начало третьей
		{17, 3, 5},
	}
	for _, tc := range cases {
		lc := toLineCol(idx, tc.offset)
		if lc.Line != tc.line || lc.Col != tc.col {
			t.Errorf("offset %d: expected %d:%d, got %d:%d",
				tc.offset, tc.line, tc.col, lc.Line, lc.Col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.case", []byte("alpha\nbeta\ngamma"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "alpha" {
		t.Fatalf("line 1: %q", got)
	}
	if got := f.GetLine(2); got != "beta" {
		t.Fatalf("line 2: %q", got)
	}
	if got := f.GetLine(3); got != "gamma" {
		t.Fatalf("line 3: %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("line out of range should be empty, got %q", got)
	}
}

func TestGetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("cases/a.case", []byte("type A {}"))

	if _, ok := fs.GetByPath("cases/a.case"); !ok {
		t.Fatal("expected lookup by path to succeed")
	}
	if _, ok := fs.GetByPath("cases/missing.case"); ok {
		t.Fatal("unknown path must not resolve")
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()

	a := in.Intern("items")
	b := in.Intern("rows")
	if a == b {
		t.Fatal("distinct strings must get distinct ids")
	}
	if again := in.Intern("items"); again != a {
		t.Fatalf("re-interning must return the same id: %d vs %d", again, a)
	}

	s, ok := in.Lookup(a)
	if !ok || s != "items" {
		t.Fatalf("lookup failed: %q %v", s, ok)
	}
	if _, ok := in.Lookup(StringID(999)); ok {
		t.Fatal("lookup of unknown id must fail")
	}
	// NoStringID ("") занимает слот 0.
	if in.Len() != 3 {
		t.Fatalf("expected 3 interned strings, got %d", in.Len())
	}
}
