package detector

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/devarispbrown/stackshift/internal/manifest"
	"github.com/devarispbrown/stackshift/internal/registry"
)

var lockfiles = []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml"}

// resolveVersion prefers the exact declared version from the manifest,
// stripped of range prefixes, and falls back to scanning lockfile text.
func (d *Detector) resolveVersion(p registry.FrameworkPattern, man *manifest.Manifest) string {
	for _, dep := range p.Dependencies {
		if v := CleanVersion(man.Version(dep)); v != "" {
			return v
		}
	}

	if len(p.Dependencies) == 0 {
		return ""
	}
	pkg := p.Dependencies[0]
	for _, lock := range lockfiles {
		content, ok := d.readLockfileDirect(lock)
		if !ok {
			continue
		}
		if v := lockfileVersion(string(content), pkg); v != "" {
			return v
		}
	}
	return ""
}

// readLockfileDirect bypasses the size cap: lockfiles are routinely large
// but are read once per run.
func (d *Detector) readLockfileDirect(rel string) ([]byte, bool) {
	content, err := os.ReadFile(filepath.Join(d.root, rel))
	if err != nil {
		return nil, false
	}
	return content, true
}

// lockfileVersion tries three extraction strategies against raw lockfile
// text: npm's per-entry JSON blocks, yarn's resolution stanzas, and pnpm's
// inline package paths.
func lockfileVersion(text, pkg string) string {
	quoted := regexp.QuoteMeta(pkg)

	strategies := []string{
		// package-lock.json: "node_modules/react": { ... "version": "18.2.0"
		fmt.Sprintf(`(?s)"node_modules/%s"\s*:\s*\{.{0,200}?"version"\s*:\s*"([^"]+)"`, quoted),
		// yarn.lock: react@^18.0.0:\n  version "18.2.0"
		fmt.Sprintf(`(?m)^"?%s@[^\n]*:\s*\n(?:[^\n]*\n)?\s*version:?\s*"?([0-9][^"\s]*)"?`, quoted),
		// pnpm-lock.yaml: /react@18.2.0: or react@18.2.0
		fmt.Sprintf(`[/\s]%s@([0-9][^:(\s'"]*)`, quoted),
	}

	for _, pattern := range strategies {
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		if match := re.FindStringSubmatch(text); match != nil {
			return match[1]
		}
	}
	return ""
}

// CleanVersion strips range operators from a declared version string:
// "^18.2.0" and ">= 4.0" become "18.2.0" and "4.0".
func CleanVersion(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimLeft(v, "^~<>=v ")
	if i := strings.IndexAny(v, " |,"); i >= 0 {
		v = v[:i]
	}
	return v
}
