package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"casecheck/internal/diag"
	"casecheck/internal/project"
)

const sampleManifest = `[project]
name = "fixtures"
include = ["cases/a.case", "cases/b.case"]

[checker]
max_diagnostics = 50
warnings_as_errors = true
disabled_codes = ["SRC5008"]
`

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, sampleManifest)

	m, err := project.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Config.Project.Name != "fixtures" {
		t.Fatalf("name: %q", m.Config.Project.Name)
	}
	if m.Config.Checker.MaxDiagnostics != 50 || !m.Config.Checker.WarningsAsErrors {
		t.Fatalf("checker config: %+v", m.Config.Checker)
	}
	if m.Root != dir {
		t.Fatalf("root: %q vs %q", m.Root, dir)
	}
}

func TestFindWalksUpward(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, sampleManifest)
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := project.Find(nested)
	if err != nil || !ok {
		t.Fatalf("find: %v %v", ok, err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("found at %q, expected %q", path, dir)
	}
}

func TestFindAbsentManifest(t *testing.T) {
	_, ok, err := project.Find(t.TempDir())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if ok {
		t.Fatal("no manifest should be found in an empty tree")
	}
}

func TestFindAndLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, sampleManifest)

	m, ok, err := project.FindAndLoad(dir)
	if err != nil || !ok {
		t.Fatalf("find and load: %v %v", ok, err)
	}
	if m.Config.Project.Name != "fixtures" {
		t.Fatalf("name: %q", m.Config.Project.Name)
	}
}

func TestLoadBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[project\nname=")
	if _, err := project.Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestIncludePathsResolveAgainstRoot(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, sampleManifest)
	m, err := project.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	paths := m.IncludePaths()
	if len(paths) != 2 {
		t.Fatalf("paths: %v", paths)
	}
	want := filepath.Join(dir, "cases", "a.case")
	if paths[0] != want {
		t.Fatalf("expected %q, got %q", want, paths[0])
	}
}

func TestDisabledCodes(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, sampleManifest)
	m, err := project.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if !m.Disabled(diag.SrcPreferSymbolicName) {
		t.Fatal("SRC5008 must be disabled")
	}
	if m.Disabled(diag.SrcMissingSource) {
		t.Fatal("SRC5001 must stay enabled")
	}
}
