package driver_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chuckjaz/dyego-vibe/internal/driver"
)

func TestParseManifest(t *testing.T) {
	const data = `
name: calculator
sources:
  - main.dg
  - lib/math.dg
`
	m, err := driver.ParseManifest("proj/dyego.yml", []byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "calculator" {
		t.Errorf("expected name calculator, got %q", m.Name)
	}
	if len(m.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(m.Sources))
	}
}

func TestParseManifestValidation(t *testing.T) {
	const data = `
name: ""
sources:
  - ""
`
	_, err := driver.ParseManifest("dyego.yml", []byte(data))
	if err == nil {
		t.Fatalf("expected a validation error")
	}

	var verr *driver.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %v", len(verr.Issues), verr.Issues)
	}
	if !strings.Contains(err.Error(), "name: must not be empty") {
		t.Errorf("missing name issue in %q", err.Error())
	}
}

func TestParseManifestBadYAML(t *testing.T) {
	_, err := driver.ParseManifest("dyego.yml", []byte("name: [unclosed"))
	if err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestLoadManifestMissingIsNotAnError(t *testing.T) {
	m, err := driver.LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Fatalf("expected nil manifest, got %+v", m)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, driver.ManifestName)
	if err := os.WriteFile(path, []byte("name: app\nsources: [main.dg]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := driver.LoadManifest(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatalf("expected a manifest")
	}
	if m.Path != path {
		t.Errorf("expected path %q, got %q", path, m.Path)
	}
}

func TestSourcePathsResolveAgainstManifestDir(t *testing.T) {
	m := &driver.Manifest{
		Path:    filepath.Join("proj", driver.ManifestName),
		Name:    "app",
		Sources: []string{"main.dg", filepath.Join(string(filepath.Separator), "abs", "x.dg")},
	}

	paths := m.SourcePaths()
	if paths[0] != filepath.Join("proj", "main.dg") {
		t.Errorf("expected relative source under proj, got %q", paths[0])
	}
	if !filepath.IsAbs(paths[1]) {
		t.Errorf("expected absolute source untouched, got %q", paths[1])
	}
}
