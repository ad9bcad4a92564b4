// Package driver wires the lexer, parser, and evaluator into a runnable
// program and owns the ambient concerns around that: an optional project
// manifest and a corpus-fixture fetcher. None of it is part of the
// Language itself (spec.md §1's Non-goals: no module system, no imports)
// — it exists only so the core subsystems have somewhere to plug into.
package driver

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrManifestNotFound is returned by FindManifest when no mython.yaml is
// found between dir and the filesystem root.
var ErrManifestNotFound = errors.New("mython.yaml not found")

const defaultFixturesDir = ".mython/fixtures"

// Manifest is the optional project file (mython.yaml), grounded on the
// teacher's pkg/driver/lockfile.go: a disk-shaped struct decoded with
// strict field checking, then normalized into the struct callers use.
type Manifest struct {
	Path         string
	Entry        string
	FixturesRepo string
	FixturesDir  string
}

type manifestDisk struct {
	Entry        string `yaml:"entry"`
	FixturesRepo string `yaml:"fixtures_repo"`
	FixturesDir  string `yaml:"fixtures_dir"`
}

// LoadManifest parses a mython.yaml file from disk and normalizes it.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw manifestDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", abs, err)
	}

	m := &Manifest{
		Path:         abs,
		Entry:        strings.TrimSpace(raw.Entry),
		FixturesRepo: strings.TrimSpace(raw.FixturesRepo),
		FixturesDir:  strings.TrimSpace(raw.FixturesDir),
	}
	m.normalize()
	return m, nil
}

// WriteManifest serializes m back to disk at path (or m.Path if empty).
func WriteManifest(m *Manifest, path string) error {
	if m == nil {
		return fmt.Errorf("manifest: nil manifest")
	}
	if path == "" {
		if m.Path == "" {
			return fmt.Errorf("manifest: missing path")
		}
		path = m.Path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	m.Path = abs
	m.normalize()

	raw := manifestDisk{Entry: m.Entry, FixturesRepo: m.FixturesRepo, FixturesDir: m.FixturesDir}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("manifest: marshal %s: %w", abs, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("manifest: encoder close: %w", err)
	}
	return os.WriteFile(abs, buf.Bytes(), 0o644)
}

func (m *Manifest) normalize() {
	if m == nil {
		return
	}
	m.Entry = strings.TrimSpace(m.Entry)
	m.FixturesRepo = strings.TrimSpace(m.FixturesRepo)
	m.FixturesDir = strings.TrimSpace(m.FixturesDir)
	if m.FixturesDir == "" {
		m.FixturesDir = defaultFixturesDir
	}
}

// ResolvedEntry returns the absolute path to the manifest's entry file.
func (m *Manifest) ResolvedEntry() (string, error) {
	if m == nil || m.Entry == "" {
		return "", fmt.Errorf("manifest: no entry configured")
	}
	base := filepath.Dir(m.Path)
	if filepath.IsAbs(m.Entry) {
		return m.Entry, nil
	}
	return filepath.Join(base, m.Entry), nil
}

// FindManifest walks up from dir looking for mython.yaml.
func FindManifest(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "mython.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}
