// Package manifest reads dependency manifests across ecosystems into a
// uniform shape. A missing or malformed manifest is a zero-signal input:
// it is logged and skipped, never an error.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Manifest is the merged set of declared dependencies for a project.
type Manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Sources         []string          `json:"sources"`
}

// Load reads every recognized manifest under root and merges the results.
// It always returns a usable (possibly empty) Manifest.
func Load(root string) *Manifest {
	m := &Manifest{
		Dependencies:    make(map[string]string),
		DevDependencies: make(map[string]string),
	}

	type reader struct {
		file  string
		parse func(path string, m *Manifest) error
	}

	readers := []reader{
		{"package.json", parsePackageJSON},
		{"requirements.txt", parseRequirements},
		{"pyproject.toml", parsePyproject},
		{"Gemfile", parseGemfile},
		{"composer.json", parseComposer},
		{"pom.xml", parsePOM},
	}

	for _, r := range readers {
		path := filepath.Join(root, r.file)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := r.parse(path, m); err != nil {
			log.Warn("Failed to parse manifest, skipping", "file", path, "error", err)
			continue
		}
		m.Sources = append(m.Sources, r.file)
	}

	return m
}

// Has reports whether a package is declared as a runtime dependency.
func (m *Manifest) Has(name string) bool {
	_, ok := m.Dependencies[name]
	return ok
}

// HasDev reports whether a package is declared as a dev dependency.
func (m *Manifest) HasDev(name string) bool {
	_, ok := m.DevDependencies[name]
	return ok
}

// Version returns the declared version for a package, checking runtime
// dependencies first.
func (m *Manifest) Version(name string) string {
	if v, ok := m.Dependencies[name]; ok {
		return v
	}
	return m.DevDependencies[name]
}

// Names returns all declared package names (runtime first, then dev-only),
// each group sorted, for deterministic iteration.
func (m *Manifest) Names() []string {
	runtime := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		runtime = append(runtime, name)
	}
	sort.Strings(runtime)

	var dev []string
	for name := range m.DevDependencies {
		if _, dup := m.Dependencies[name]; !dup {
			dev = append(dev, name)
		}
	}
	sort.Strings(dev)

	return append(runtime, dev...)
}

// Len returns the total count of distinct declared packages.
func (m *Manifest) Len() int {
	return len(m.Names())
}

func parsePackageJSON(path string, m *Manifest) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return err
	}

	for name, version := range pkg.Dependencies {
		m.Dependencies[name] = version
	}
	for name, version := range pkg.DevDependencies {
		m.DevDependencies[name] = version
	}
	return nil
}

func parseComposer(path string, m *Manifest) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var pkg struct {
		Require    map[string]string `json:"require"`
		RequireDev map[string]string `json:"require-dev"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return err
	}

	for name, version := range pkg.Require {
		// Platform requirements are not migratable packages.
		if name == "php" || strings.HasPrefix(name, "ext-") {
			continue
		}
		m.Dependencies[name] = version
	}
	for name, version := range pkg.RequireDev {
		m.DevDependencies[name] = version
	}
	return nil
}
