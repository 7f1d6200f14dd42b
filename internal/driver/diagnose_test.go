package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"casecheck/internal/diag"
	"casecheck/internal/driver"
	"casecheck/internal/source"
)

func addFiles(fs *source.FileSet, contents ...string) []source.FileID {
	ids := make([]source.FileID, 0, len(contents))
	for i, content := range contents {
		name := "virt" + string(rune('a'+i)) + ".case"
		ids = append(ids, fs.AddVirtual(name, []byte(content)))
	}
	return ids
}

func TestDiagnoseCleanRun(t *testing.T) {
	fs := source.NewFileSet()
	ids := addFiles(fs, `
type Rows {
	static field items: Seq<int>;
	@source(nameof(items))
	case checkItems;
}
`)
	result, err := driver.Diagnose(context.Background(), fs, ids, driver.Options{})
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if result.Bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", result.Bag.Items())
	}
	if result.Model == nil || len(result.Files) != 1 {
		t.Fatalf("result artifacts missing: %+v", result)
	}
}

func TestDiagnoseCrossFileResolution(t *testing.T) {
	fs := source.NewFileSet()
	// Тип и его использование в разных файлах: модель единая.
	ids := addFiles(fs,
		`type Shared { static field rows: Seq<int>; }`,
		`
type Rows {
	@source(of: typeof(Shared), name: nameof(Shared.rows))
	case c;
}
`)
	result, err := driver.Diagnose(context.Background(), fs, ids, driver.Options{Jobs: 2})
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if result.Bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", result.Bag.Items())
	}
}

func TestDiagnoseCollectsAllPhases(t *testing.T) {
	fs := source.NewFileSet()
	ids := addFiles(fs, `
const Dup = "a";
const Dup = "b";
type Rows {
	field items: int
	@source("missing")
	case c;
}
`)
	result, err := driver.Diagnose(context.Background(), fs, ids, driver.Options{})
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	requireCode(t, result.Bag, diag.SynExpectSemicolon)
	requireCode(t, result.Bag, diag.SemaDuplicateConst)
	requireCode(t, result.Bag, diag.SrcMissingSource)
}

func TestDiagnoseDeterministicOrder(t *testing.T) {
	fs := source.NewFileSet()
	ids := addFiles(fs,
		`type A { field x: int; @source("p") case c1; @source("q") case c2; }`,
		`type B { @source("r") case c3; }`,
	)
	var prev []diag.Diagnostic
	for run := 0; run < 5; run++ {
		result, err := driver.Diagnose(context.Background(), fs, ids, driver.Options{Jobs: 4})
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		items := result.Bag.Items()
		if prev != nil {
			if len(items) != len(prev) {
				t.Fatalf("run %d: %d diagnostics vs %d", run, len(items), len(prev))
			}
			for i := range items {
				if items[i].Code != prev[i].Code || items[i].Primary != prev[i].Primary {
					t.Fatalf("run %d: order differs at %d", run, i)
				}
			}
		}
		prev = append([]diag.Diagnostic(nil), items...)
	}
	// Порядок: file asc, затем позиция.
	for i := 1; i < len(prev); i++ {
		a, b := prev[i-1].Primary, prev[i].Primary
		if a.File > b.File || (a.File == b.File && a.Start > b.Start) {
			t.Fatalf("bag is not sorted: %v before %v", a, b)
		}
	}
}

func TestDiagnoseMaxDiagnosticsLimit(t *testing.T) {
	fs := source.NewFileSet()
	ids := addFiles(fs, `
type Rows {
	@source("a") case c1;
	@source("b") case c2;
	@source("c") case c3;
	@source("d") case c4;
}
`)
	result, err := driver.Diagnose(context.Background(), fs, ids, driver.Options{MaxDiagnostics: 2})
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if result.Bag.Len() != 2 {
		t.Fatalf("expected the bag to be capped at 2, got %d items", result.Bag.Len())
	}
}

func TestDiagnoseCancelledContext(t *testing.T) {
	fs := source.NewFileSet()
	ids := addFiles(fs, `type Rows { @source("x") case c; }`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := driver.Diagnose(ctx, fs, ids, driver.Options{})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestDiagnosePathsLoadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.case")
	content := "type Rows {\r\n\tstatic field items: Seq<int>;\r\n\t@source(\"items\")\r\n\tcase c;\r\n}\r\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	result, err := driver.DiagnosePaths(context.Background(), fs, []string{path}, driver.Options{})
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	// CRLF нормализован, файл разобран, совет про nameof выдан.
	requireCode(t, result.Bag, diag.SrcPreferSymbolicName)
	f, ok := fs.GetByPath(path)
	if !ok {
		t.Fatal("file must be registered by path")
	}
	if f.Flags&source.FileNormalizedCRLF == 0 {
		t.Fatal("expected CRLF normalization flag")
	}
}

func TestDiagnosePathsMissingFile(t *testing.T) {
	fs := source.NewFileSet()
	_, err := driver.DiagnosePaths(context.Background(), fs, []string{"does-not-exist.case"}, driver.Options{})
	if err == nil {
		t.Fatal("expected load error")
	}
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
