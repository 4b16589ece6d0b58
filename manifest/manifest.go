// Package manifest locates, parses, and validates bytes.yml project
// manifests for the Vira toolchain.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the manifest file name looked up in every project root.
const FileName = "bytes.yml"

const (
	// DefaultSourceDir is used when the "<>" source-directory marker is unset.
	DefaultSourceDir = "cmd"
	// DefaultTestDir is used when test_dir is unset.
	DefaultTestDir = "tests"
)

// Dependency is one declared (name, version) pair. Version is an opaque
// string compared for equality against store entries; no range matching.
type Dependency struct {
	Name    string
	Version string
}

// String renders the name@version form used in install requests.
func (d Dependency) String() string {
	return d.Name + "@" + d.Version
}

// DependencyList preserves the declaration order of a YAML dependency
// mapping. A plain map would lose document order, and the resolver
// guarantees installs happen in declared order.
type DependencyList []Dependency

// UnmarshalYAML decodes a mapping node into an ordered list.
func (l *DependencyList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*l = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: dependencies must be a mapping of name to version", value.Line)
	}
	out := make(DependencyList, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		out = append(out, Dependency{
			Name:    value.Content[i].Value,
			Version: value.Content[i+1].Value,
		})
	}
	*l = out
	return nil
}

// MarshalYAML emits the list back as a mapping in declaration order.
func (l DependencyList) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, d := range l {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: d.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: d.Version},
		)
	}
	return node, nil
}

// Manifest is one project's declared identity and dependencies, as read
// from bytes.yml. It is parsed fresh per command invocation and never
// mutated in place.
type Manifest struct {
	Path string `yaml:"-"`

	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Author      string `yaml:"author,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Source is the raw "<>" source-directory marker; SourceDir applies
	// the default.
	Source string `yaml:"<>,omitempty"`
	// Test is the raw test_dir override; TestDir applies the default.
	Test string `yaml:"test_dir,omitempty"`

	Deps    DependencyList `yaml:"dependencies,omitempty"`
	DevDeps DependencyList `yaml:"dev-dependencies,omitempty"`
}

// Parse reads and validates the manifest at path. Malformed YAML yields a
// *ParseError with ReasonSyntax; a missing or empty name/version yields
// ReasonMissingField. Nothing is silently defaulted for required fields.
func Parse(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path from locate or user CLI arg
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Path: path, Reason: ReasonSyntax, Err: err}
	}
	m.Path = path

	if strings.TrimSpace(m.Name) == "" {
		return nil, &ParseError{Path: path, Reason: ReasonMissingField, Field: "name"}
	}
	if strings.TrimSpace(m.Version) == "" {
		return nil, &ParseError{Path: path, Reason: ReasonMissingField, Field: "version"}
	}

	return &m, nil
}

// Load locates the nearest enclosing manifest from startDir and parses it.
func Load(startDir string) (*Manifest, error) {
	path, err := Locate(startDir)
	if err != nil {
		return nil, err
	}
	return Parse(path)
}

// SourceDir returns the configured source-directory marker, or the
// conventional default when unset or empty.
func (m *Manifest) SourceDir() string {
	if strings.TrimSpace(m.Source) == "" {
		return DefaultSourceDir
	}
	return m.Source
}

// TestDir returns the configured test directory override, or the default.
func (m *Manifest) TestDir() string {
	if strings.TrimSpace(m.Test) == "" {
		return DefaultTestDir
	}
	return m.Test
}

// Dependencies returns the declared dependencies in document order.
// Never nil; an absent mapping yields an empty list.
func (m *Manifest) Dependencies() DependencyList {
	if m.Deps == nil {
		return DependencyList{}
	}
	return m.Deps
}

// DevDependencies returns the declared dev-dependencies in document order.
// Never nil.
func (m *Manifest) DevDependencies() DependencyList {
	if m.DevDeps == nil {
		return DependencyList{}
	}
	return m.DevDeps
}

// Encode serializes the manifest back to YAML, preserving dependency order.
func (m *Manifest) Encode() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return data, nil
}
