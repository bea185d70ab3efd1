// Package manifest reads and writes the nog project manifest: a TOML file
// naming the project and its entry point (spec.md §6, SPEC_FULL.md §1.1).
// The upward directory walk that locates this file is the out-of-scope
// driver's job; this package accepts an already-resolved project root.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// defaultFilename is the manifest's well-known name within a project root.
const defaultFilename = "project.toml"

// defaultEntry is used when a manifest omits `project.entry`.
const defaultEntry = "main"

// Project is the `[project]` table of project.toml.
type Project struct {
	Name  string `toml:"name"`
	Entry string `toml:"entry"`
}

// Manifest is the parsed project.toml (spec.md §6: `project.name`,
// `project.entry`).
type Manifest struct {
	Project Project `toml:"project"`
}

// Load reads and parses the manifest at <root>/project.toml.
func Load(root string) (*Manifest, error) {
	path := filepath.Join(root, defaultFilename)
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	if m.Project.Name == "" {
		return nil, fmt.Errorf("%s: missing required project.name", path)
	}
	if m.Project.Entry == "" {
		m.Project.Entry = defaultEntry
	}
	return &m, nil
}

// New scaffolds a minimal project.toml in dir for a project named name,
// restoring the `init` helper from the original C++ implementation's
// create_init_file (SPEC_FULL.md §4.6). It refuses to overwrite an
// existing manifest.
func New(dir, name string) error {
	path := filepath.Join(dir, defaultFilename)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	m := Manifest{Project: Project{Name: name, Entry: defaultEntry}}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating manifest %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}
