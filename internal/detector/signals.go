package detector

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/devarispbrown/stackshift/internal/manifest"
	"github.com/devarispbrown/stackshift/internal/registry"
)

// Point budgets per signal group. Confidence is the clamped sum of
// independent, bounded signals.
const (
	fileBudget      = 30
	depBudget       = 20
	devDepBudget    = 10
	structureBudget = 10
	maxConfidence   = 100
)

// scorePattern computes the confidence for one framework pattern. Every
// signal is read-only and failures count as zero signal, so patterns can be
// scored concurrently in any order.
func (d *Detector) scorePattern(p registry.FrameworkPattern, man *manifest.Manifest) int {
	score := d.scoreFiles(p.Files) +
		scoreDependencies(p.Dependencies, man.Dependencies, depBudget) +
		scoreDependencies(p.DevDependencies, man.DevDependencies, devDepBudget) +
		d.scoreContent(p) +
		d.scoreStructure(p.Structure)

	if score > maxConfidence {
		score = maxConfidence
	}
	if score < 0 {
		score = 0
	}
	return score
}

// scoreFiles awards up to fileBudget points, split evenly across the marker
// files that exist.
func (d *Detector) scoreFiles(files []string) int {
	if len(files) == 0 {
		return 0
	}
	share := float64(fileBudget) / float64(len(files))
	total := 0.0
	for _, file := range files {
		if d.fileExists(file) {
			total += share
		}
	}
	return int(total)
}

// scoreDependencies awards up to budget points across the pattern's declared
// packages; each package's contribution is individually capped at its share.
func scoreDependencies(wanted []string, declared map[string]string, budget int) int {
	if len(wanted) == 0 {
		return 0
	}
	share := float64(budget) / float64(len(wanted))
	total := 0.0
	for _, name := range wanted {
		if _, ok := declared[name]; ok {
			total += share
		}
	}
	return int(total)
}

// scoreContent awards each content rule's weight when any sampled file
// matching its glob contains the rule's regex. First match wins per rule; a
// file set never double counts.
func (d *Detector) scoreContent(p registry.FrameworkPattern) int {
	total := 0
	for _, rule := range p.Content {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			// One bad pattern must not prevent the rest from scoring.
			log.Warn("Skipping invalid content pattern", "framework", p.Framework, "pattern", rule.Pattern, "error", err)
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(d.root), rule.File)
		if err != nil {
			log.Warn("Skipping invalid content glob", "framework", p.Framework, "glob", rule.File, "error", err)
			continue
		}
		if len(matches) > d.ScanLimit {
			matches = matches[:d.ScanLimit]
		}

		for _, rel := range matches {
			content, ok := d.readFile(rel)
			if !ok {
				continue
			}
			if re.Match(content) {
				total += rule.Weight
				break
			}
		}
	}
	return total
}

// scoreStructure awards up to structureBudget points, split evenly across the
// expected directories that exist.
func (d *Detector) scoreStructure(dirs []string) int {
	if len(dirs) == 0 {
		return 0
	}
	share := float64(structureBudget) / float64(len(dirs))
	total := 0.0
	for _, dir := range dirs {
		if info, err := os.Stat(filepath.Join(d.root, dir)); err == nil && info.IsDir() {
			total += share
		}
	}
	return int(total)
}

func (d *Detector) fileExists(rel string) bool {
	info, err := os.Stat(filepath.Join(d.root, rel))
	return err == nil && !info.IsDir()
}

// readFile returns a file's content through the shared LRU cache. Oversized
// or unreadable files are treated as absent.
func (d *Detector) readFile(rel string) ([]byte, bool) {
	if content, ok := d.cache.Get(rel); ok {
		return content, true
	}

	path := filepath.Join(d.root, rel)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > maxContentBytes {
		return nil, false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	d.cache.Add(rel, content)
	return content, true
}
