// Package manifest contains the structures describing a buildpack manifest: rules mapping download URLs
// to dependencies and the dependencies themselves. A manifest can be read from a YAML or an HCL file.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrRead              = errors.New("error reading file")
	ErrUnmarshal         = errors.New("error unmarshaling manifest file")
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
	ErrInvalidManifest   = errors.New("invalid manifest")
)

const (
	extensionHCL = ".hcl"
)

// MatchRule maps a download URL to a dependency name and version.
type MatchRule struct {
	// Pattern is searched for in the URL.
	Pattern *Pattern `yaml:"match"`

	// Name is evaluated against the pattern captures to get the dependency name.
	Name *Template `yaml:"name"`

	// Version is evaluated against the pattern captures to get the dependency version.
	Version *Template `yaml:"version"`
}

// Dependency represents a concrete dependency available for one or more stacks.
type Dependency struct {
	Name    string   `yaml:"name"`
	Version string   `yaml:"version"`
	URI     string   `yaml:"uri"`
	Stacks  []string `yaml:"cf_stacks"`
}

// HasStack checks if dependency is available for the stack.
func (d *Dependency) HasStack(stack string) bool {
	for _, s := range d.Stacks {
		if s == stack {
			return true
		}
	}

	return false
}

// Manifest contains ordered match rules and ordered dependencies. It is not modified once loaded.
type Manifest struct {
	Rules        []*MatchRule  `yaml:"url_to_dependency_map"`
	Dependencies []*Dependency `yaml:"dependencies"`
}

// ReadFromFile takes a manifest file, parses and validates it. Files with the .hcl extension are parsed
// as HCL, any other file as YAML.
func (m *Manifest) ReadFromFile(path string) error {
	fileContents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case extensionHCL:
		err = m.ParseHCL(fileContents, path)
	default:
		err = m.ParseYAML(fileContents)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return m.Validate()
}

// Validate checks that all the required fields are present and that templates refer only to existing
// capture groups.
func (m *Manifest) Validate() error {
	for i, rule := range m.Rules {
		if rule == nil {
			return fmt.Errorf("%w: url_to_dependency_map[%d] is empty", ErrInvalidManifest, i)
		}

		if rule.Pattern == nil {
			return fmt.Errorf("%w: url_to_dependency_map[%d]: match is missing", ErrInvalidManifest, i)
		}

		if rule.Name == nil || rule.Name.IsEmpty() {
			return fmt.Errorf("%w: url_to_dependency_map[%d]: name is missing", ErrInvalidManifest, i)
		}

		if rule.Version == nil || rule.Version.IsEmpty() {
			return fmt.Errorf("%w: url_to_dependency_map[%d]: version is missing", ErrInvalidManifest, i)
		}

		numCaptures := rule.Pattern.NumCaptures()

		if rule.Name.MaxCapture() > numCaptures {
			return fmt.Errorf(
				"%w: url_to_dependency_map[%d]: name %q refers to capture $%d but match has %d",
				ErrInvalidManifest, i, rule.Name.String(), rule.Name.MaxCapture(), numCaptures,
			)
		}

		if rule.Version.MaxCapture() > numCaptures {
			return fmt.Errorf(
				"%w: url_to_dependency_map[%d]: version %q refers to capture $%d but match has %d",
				ErrInvalidManifest, i, rule.Version.String(), rule.Version.MaxCapture(), numCaptures,
			)
		}
	}

	for i, dependency := range m.Dependencies {
		if dependency == nil {
			return fmt.Errorf("%w: dependencies[%d] is empty", ErrInvalidManifest, i)
		}

		if dependency.Name == "" {
			return fmt.Errorf("%w: dependencies[%d]: name is missing", ErrInvalidManifest, i)
		}

		if dependency.Version == "" {
			return fmt.Errorf("%w: dependencies[%d] (%s): version is missing", ErrInvalidManifest, i, dependency.Name)
		}

		if dependency.URI == "" {
			return fmt.Errorf(
				"%w: dependencies[%d] (%s@%s): uri is missing",
				ErrInvalidManifest, i, dependency.Name, dependency.Version,
			)
		}
	}

	return nil
}
