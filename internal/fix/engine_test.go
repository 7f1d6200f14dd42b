package fix_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"casecheck/internal/diag"
	"casecheck/internal/driver"
	"casecheck/internal/fix"
	"casecheck/internal/source"
)

const fixtureWithLiteral = `type Rows {
	static field items: Seq<int>;
	@source("items")
	case c;
}
`

// diagnoseFile прогоняет чекер по одному файлу на диске.
func diagnoseFile(t *testing.T, path string) (*source.FileSet, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	result, err := driver.DiagnosePaths(context.Background(), fs, []string{path}, driver.Options{})
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	return fs, result.Bag.Items()
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.case")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplyNameofRewrite(t *testing.T) {
	path := writeFixture(t, fixtureWithLiteral)
	fs, diagnostics := diagnoseFile(t, path)

	res, err := fix.Apply(fs, diagnostics, fix.ApplyOptions{Mode: fix.ApplyModeOnce})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("expected 1 applied fix: %+v", res)
	}
	if len(res.FileChanges) != 1 || res.FileChanges[0].EditCount != 1 {
		t.Fatalf("file changes: %+v", res.FileChanges)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(after), "@source(nameof(items))") {
		t.Fatalf("rewrite not applied:\n%s", after)
	}
	if strings.Contains(string(after), `"items"`) {
		t.Fatalf("literal must be gone:\n%s", after)
	}

	// После применения повторный прогон молчит.
	_, again := diagnoseFile(t, path)
	if len(again) != 0 {
		t.Fatalf("fixed file must be clean, got %v", again)
	}
}

func TestApplyDryRunLeavesFileIntact(t *testing.T) {
	path := writeFixture(t, fixtureWithLiteral)
	fs, diagnostics := diagnoseFile(t, path)

	res, err := fix.Apply(fs, diagnostics, fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 1 || len(res.FileChanges) != 1 {
		t.Fatalf("dry run must still report the plan: %+v", res)
	}

	after, _ := os.ReadFile(path)
	if string(after) != fixtureWithLiteral {
		t.Fatalf("dry run must not touch the file:\n%s", after)
	}
}

func TestApplyAllRewritesEveryLiteral(t *testing.T) {
	path := writeFixture(t, `type Rows {
	static field items: Seq<int>;
	static field rows: Seq<int>;
	@source("items")
	case c1;
	@source("rows")
	case c2;
}
`)
	fs, diagnostics := diagnoseFile(t, path)

	res, err := fix.Apply(fs, diagnostics, fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 2 {
		t.Fatalf("expected both fixes applied: %+v", res.Applied)
	}

	after, _ := os.ReadFile(path)
	if !strings.Contains(string(after), "nameof(items)") || !strings.Contains(string(after), "nameof(rows)") {
		t.Fatalf("both literals must be rewritten:\n%s", after)
	}
}

func TestApplyByID(t *testing.T) {
	path := writeFixture(t, `type Rows {
	static field items: Seq<int>;
	static field rows: Seq<int>;
	@source("items")
	case c1;
	@source("rows")
	case c2;
}
`)
	fs, diagnostics := diagnoseFile(t, path)

	probe, err := fix.Apply(fs, diagnostics, fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: true})
	if err != nil || len(probe.Applied) != 2 {
		t.Fatalf("probe: %v %+v", err, probe)
	}
	target := probe.Applied[1].ID

	res, err := fix.Apply(fs, diagnostics, fix.ApplyOptions{Mode: fix.ApplyModeID, TargetID: target})
	if err != nil {
		t.Fatalf("apply by id: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != target {
		t.Fatalf("expected exactly the targeted fix: %+v", res.Applied)
	}

	after, _ := os.ReadFile(path)
	if !strings.Contains(string(after), `"items"`) || !strings.Contains(string(after), "nameof(rows)") {
		t.Fatalf("only the second literal must change:\n%s", after)
	}
}

func TestApplyUnknownID(t *testing.T) {
	path := writeFixture(t, fixtureWithLiteral)
	fs, diagnostics := diagnoseFile(t, path)

	res, err := fix.Apply(fs, diagnostics, fix.ApplyOptions{Mode: fix.ApplyModeID, TargetID: "nope"})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "fix id not found" {
		t.Fatalf("skip record: %+v", res.Skipped)
	}
}

func TestApplyNoFixes(t *testing.T) {
	path := writeFixture(t, `type Rows {
	field items: int;
	@source(nameof(items))
	case c;
}
`)
	fs, diagnostics := diagnoseFile(t, path)
	// Диагностики есть, но ни одна не несёт фикса.
	if len(diagnostics) == 0 {
		t.Fatal("fixture should produce diagnostics")
	}

	_, err := fix.Apply(fs, diagnostics, fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
}

func TestApplyStaleGuardSkips(t *testing.T) {
	path := writeFixture(t, fixtureWithLiteral)
	_, diagnostics := diagnoseFile(t, path)

	// Файл меняется между диагностикой и применением: guard по OldText
	// должен отказаться от правки.
	if err := os.WriteFile(path, []byte(strings.Replace(fixtureWithLiteral, `"items"`, `"itemz"`, 1)), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := source.NewFileSet()
	if _, err := stale.Load(path); err != nil {
		t.Fatal(err)
	}

	res, err := fix.Apply(stale, diagnostics, fix.ApplyOptions{Mode: fix.ApplyModeOnce})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes after guard rejection, got %v", err)
	}
	if len(res.Skipped) != 1 || !strings.Contains(res.Skipped[0].Reason, "does not match") {
		t.Fatalf("skip record: %+v", res.Skipped)
	}
}

func TestApplySkipsVirtualFiles(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("virtual.case", []byte(fixtureWithLiteral))

	result, err := driver.Diagnose(context.Background(), fs, []source.FileID{id}, driver.Options{})
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}

	res, err := fix.Apply(fs, result.Bag.Items(), fix.ApplyOptions{Mode: fix.ApplyModeOnce})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	// Фикс считается применённым, но на диск ничего не пишется.
	if len(res.Applied) != 1 {
		t.Fatalf("applied: %+v", res.Applied)
	}
	if _, statErr := os.Stat("virtual.case"); statErr == nil {
		t.Fatal("virtual file must never be written to disk")
	}
}
