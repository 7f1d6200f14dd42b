// Package project loads the optional casecheck.toml manifest that configures
// a checker run. CLI flags always win over manifest values.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"casecheck/internal/diag"
)

// ManifestName is the file looked up from the start directory upwards.
const ManifestName = "casecheck.toml"

// Manifest is a located and parsed casecheck.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the TOML structure.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Checker CheckerConfig `toml:"checker"`
}

// ProjectConfig names the project and its fixture files.
type ProjectConfig struct {
	Name string `toml:"name"`
	// Include lists fixture paths (relative to the manifest) checked when the
	// CLI receives no explicit paths.
	Include []string `toml:"include"`
}

// CheckerConfig tunes diagnostics.
type CheckerConfig struct {
	MaxDiagnostics   int  `toml:"max_diagnostics"`
	WarningsAsErrors bool `toml:"warnings_as_errors"`
	NoWarnings       bool `toml:"no_warnings"`
	// DisabledCodes lists diagnostic IDs (e.g. "SRC5008") to suppress.
	DisabledCodes []string `toml:"disabled_codes"`
}

// Find walks from startDir towards the filesystem root looking for the
// manifest. ok=false without error means none exists.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// FindAndLoad combines Find and Load. ok=false means no manifest exists.
func FindAndLoad(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// IncludePaths resolves [project].include entries against the manifest root.
func (m *Manifest) IncludePaths() []string {
	out := make([]string, 0, len(m.Config.Project.Include))
	for _, rel := range m.Config.Project.Include {
		if filepath.IsAbs(rel) {
			out = append(out, rel)
			continue
		}
		out = append(out, filepath.Join(m.Root, rel))
	}
	return out
}

// Disabled reports whether a diagnostic code is suppressed by the manifest.
func (m *Manifest) Disabled(code diag.Code) bool {
	for _, id := range m.Config.Checker.DisabledCodes {
		if id == code.ID() {
			return true
		}
	}
	return false
}
