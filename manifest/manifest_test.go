package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func parseSource(t *testing.T, src string) (*Manifest, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return Parse(path)
}

func TestParseFullManifest(t *testing.T) {
	m, err := parseSource(t, `
name: webapp
version: 1.2.3
author: dev@example.com
description: demo project
"<>": src
test_dir: spec
dependencies:
  http: "2.0"
  json: "1.1"
dev-dependencies:
  asserts: "0.4"
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if m.Name != "webapp" || m.Version != "1.2.3" {
		t.Fatalf("Name/Version = %q/%q", m.Name, m.Version)
	}
	if m.SourceDir() != "src" {
		t.Fatalf("SourceDir() = %q, want src", m.SourceDir())
	}
	if m.TestDir() != "spec" {
		t.Fatalf("TestDir() = %q, want spec", m.TestDir())
	}

	deps := m.Dependencies()
	if len(deps) != 2 {
		t.Fatalf("Dependencies() len = %d, want 2", len(deps))
	}
	if deps[0] != (Dependency{Name: "http", Version: "2.0"}) {
		t.Fatalf("deps[0] = %+v", deps[0])
	}
	if deps[1] != (Dependency{Name: "json", Version: "1.1"}) {
		t.Fatalf("deps[1] = %+v", deps[1])
	}

	dev := m.DevDependencies()
	if len(dev) != 1 || dev[0].Name != "asserts" {
		t.Fatalf("DevDependencies() = %+v", dev)
	}
}

func TestParseDefaults(t *testing.T) {
	m, err := parseSource(t, "name: tiny\nversion: 0.1.0\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.SourceDir() != DefaultSourceDir {
		t.Fatalf("SourceDir() = %q, want %q", m.SourceDir(), DefaultSourceDir)
	}
	if m.TestDir() != DefaultTestDir {
		t.Fatalf("TestDir() = %q, want %q", m.TestDir(), DefaultTestDir)
	}
	if deps := m.Dependencies(); deps == nil || len(deps) != 0 {
		t.Fatalf("Dependencies() = %#v, want empty non-nil list", deps)
	}
	if dev := m.DevDependencies(); dev == nil || len(dev) != 0 {
		t.Fatalf("DevDependencies() = %#v, want empty non-nil list", dev)
	}
}

func TestParseMissingFields(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		field string
	}{
		{"no name", "version: 1.0.0\n", "name"},
		{"empty name", "name: \"\"\nversion: 1.0.0\n", "name"},
		{"no version", "name: demo\n", "version"},
		{"blank version", "name: demo\nversion: \"   \"\ndependencies:\n  ok: \"1.0\"\n", "version"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseSource(t, tc.src)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse() error = %v, want *ParseError", err)
			}
			if perr.Reason != ReasonMissingField {
				t.Fatalf("Reason = %q, want %q", perr.Reason, ReasonMissingField)
			}
			if perr.Field != tc.field {
				t.Fatalf("Field = %q, want %q", perr.Field, tc.field)
			}
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := parseSource(t, "name: [unterminated\nversion 0.1.0")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if perr.Reason != ReasonSyntax {
		t.Fatalf("Reason = %q, want %q", perr.Reason, ReasonSyntax)
	}
	if perr.Err == nil {
		t.Fatal("syntax ParseError should carry the YAML diagnostic")
	}
}

func TestParseRejectsScalarDependencies(t *testing.T) {
	_, err := parseSource(t, "name: demo\nversion: 0.1.0\ndependencies: nope\n")
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Reason != ReasonSyntax {
		t.Fatalf("Parse() error = %v, want syntax ParseError", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	m := &Manifest{
		Name:    "roundtrip",
		Version: "2.0.1",
		Author:  "someone",
		Source:  "src",
		Deps: DependencyList{
			{Name: "zeta", Version: "9.9"},
			{Name: "alpha", Version: "1.0"},
			{Name: "mid", Version: "4.2"},
		},
		DevDeps: DependencyList{
			{Name: "mock", Version: "0.3"},
		},
	}

	data, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	got, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Name != m.Name || got.Version != m.Version || got.Author != m.Author {
		t.Fatalf("round trip changed identity: %+v", got)
	}
	// Declaration order must survive the trip, zeta before alpha.
	if len(got.Deps) != 3 {
		t.Fatalf("Deps len = %d, want 3", len(got.Deps))
	}
	for i, want := range m.Deps {
		if got.Deps[i] != want {
			t.Fatalf("Deps[%d] = %+v, want %+v", i, got.Deps[i], want)
		}
	}
	if len(got.DevDeps) != 1 || got.DevDeps[0] != m.DevDeps[0] {
		t.Fatalf("DevDeps = %+v", got.DevDeps)
	}
}

func TestLoadFromNestedDirectory(t *testing.T) {
	root := t.TempDir()
	src := "name: nested\nversion: 0.0.1\ndependencies:\n  one: \"1\"\n"
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(src), 0o600); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	deep := filepath.Join(root, "x", "y")
	if err := os.MkdirAll(deep, 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	m, err := Load(deep)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Name != "nested" {
		t.Fatalf("Name = %q, want nested", m.Name)
	}
	if m.Path != filepath.Join(root, FileName) {
		t.Fatalf("Path = %q", m.Path)
	}
}

func TestDependencyString(t *testing.T) {
	d := Dependency{Name: "http", Version: "2.0"}
	if d.String() != "http@2.0" {
		t.Fatalf("String() = %q, want http@2.0", d.String())
	}
}
