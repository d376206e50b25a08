package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the project manifest filename looked up next to the
// sources being checked.
const ManifestName = "dyego.yml"

// Manifest represents the parsed contents of dyego.yml.
type Manifest struct {
	Path    string   `yaml:"-"`
	Name    string   `yaml:"name"`
	Sources []string `yaml:"sources"`
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest reads and validates the manifest in dir. A missing manifest
// is not an error: the tool works fine on bare files.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseManifest(path, data)
}

// ParseManifest decodes manifest bytes and validates them.
func ParseManifest(path string, data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	m.Path = path

	var issues []string
	if m.Name == "" {
		issues = append(issues, "name: must not be empty")
	}
	for i, src := range m.Sources {
		if strings.TrimSpace(src) == "" {
			issues = append(issues, fmt.Sprintf("sources[%d]: must not be empty", i))
		}
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return &m, nil
}

// SourcePaths resolves the manifest's source entries relative to its own
// directory.
func (m *Manifest) SourcePaths() []string {
	dir := filepath.Dir(m.Path)
	out := make([]string, len(m.Sources))
	for i, src := range m.Sources {
		if filepath.IsAbs(src) {
			out[i] = src
		} else {
			out[i] = filepath.Join(dir, src)
		}
	}
	return out
}
