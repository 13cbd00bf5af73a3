package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Registry indexes a loaded ruleset for lookups by the detector, the
// dependency analyzer, and the complexity scorer.
type Registry struct {
	ruleset      *Ruleset
	frameworks   []FrameworkPattern
	byName       map[string]FrameworkPattern
	breaking     map[string][]BreakingChangeRule
	compat       map[string]CompatibilityRule
	replacements map[string]ReplacementRule
	distances    map[string]int
	depOwner     map[string]string
	rulesetPath  string
}

// New builds a registry from the ruleset at path, or the embedded default
// when path is empty.
func New(path string) (*Registry, error) {
	r := &Registry{rulesetPath: path}
	if err := r.load(); err != nil {
		return nil, fmt.Errorf("failed to load ruleset: %w", err)
	}
	return r, nil
}

func (r *Registry) load() error {
	rs, err := LoadRuleset(r.rulesetPath)
	if err != nil {
		return err
	}
	r.ruleset = rs

	r.frameworks = make([]FrameworkPattern, len(rs.Frameworks))
	copy(r.frameworks, rs.Frameworks)
	// Priority descending, name ascending for a stable scan order.
	sort.SliceStable(r.frameworks, func(i, j int) bool {
		if r.frameworks[i].Priority != r.frameworks[j].Priority {
			return r.frameworks[i].Priority > r.frameworks[j].Priority
		}
		return r.frameworks[i].Framework < r.frameworks[j].Framework
	})

	r.byName = make(map[string]FrameworkPattern, len(r.frameworks))
	r.depOwner = make(map[string]string)
	for _, fw := range r.frameworks {
		r.byName[normalize(fw.Framework)] = fw
		for _, dep := range fw.Dependencies {
			if _, taken := r.depOwner[dep]; !taken {
				r.depOwner[dep] = fw.Framework
			}
		}
	}

	r.breaking = make(map[string][]BreakingChangeRule)
	for _, rule := range rs.BreakingChanges {
		key := pairKey(rule.Source, rule.Target)
		r.breaking[key] = append(r.breaking[key], rule)
	}

	r.compat = make(map[string]CompatibilityRule, len(rs.Compatibility))
	for _, rule := range rs.Compatibility {
		r.compat[pairKey(rule.Package, rule.Target)] = rule
	}

	r.replacements = make(map[string]ReplacementRule, len(rs.Replacements))
	for _, rule := range rs.Replacements {
		r.replacements[pairKey(rule.From, rule.Target)] = rule
	}

	r.distances = make(map[string]int, len(rs.Distances))
	for _, rule := range rs.Distances {
		r.distances[pairKey(rule.Source, rule.Target)] = rule.Complexity
	}

	log.Debug("Ruleset loaded",
		"frameworks", len(r.frameworks),
		"breaking_changes", len(rs.BreakingChanges),
		"compatibility_rules", len(rs.Compatibility),
		"replacements", len(rs.Replacements),
		"version", rs.Version)

	return nil
}

// Reload re-reads the ruleset from its source.
func (r *Registry) Reload() error {
	return r.load()
}

// Ruleset returns the loaded rule configuration.
func (r *Registry) Ruleset() *Ruleset {
	return r.ruleset
}

// Frameworks returns detection patterns sorted by priority descending.
func (r *Registry) Frameworks() []FrameworkPattern {
	return r.frameworks
}

// Framework looks up a pattern by name, case-insensitively.
func (r *Registry) Framework(name string) (FrameworkPattern, bool) {
	fw, ok := r.byName[normalize(name)]
	return fw, ok
}

// FrameworksByCategory returns patterns in a category, in scan order.
func (r *Registry) FrameworksByCategory(category string) []FrameworkPattern {
	var result []FrameworkPattern
	for _, fw := range r.frameworks {
		if fw.Category == category {
			result = append(result, fw)
		}
	}
	return result
}

// Categories returns the category table from the ruleset.
func (r *Registry) Categories() map[string]Category {
	if r.ruleset == nil {
		return map[string]Category{}
	}
	return r.ruleset.Categories
}

// BreakingChanges returns the rules for a (source, target) pair. An unknown
// pair yields an empty list, not an error.
func (r *Registry) BreakingChanges(source, target string) []BreakingChangeRule {
	return r.breaking[pairKey(source, target)]
}

// Compatibility looks up the classification rule for (package, target).
// Packages without a rule are treated as compatible by callers.
func (r *Registry) Compatibility(pkg, target string) (CompatibilityRule, bool) {
	rule, ok := r.compat[pairKey(pkg, target)]
	return rule, ok
}

// CompatibilityForTarget returns every compatibility rule scoped to a target,
// sorted by package name.
func (r *Registry) CompatibilityForTarget(target string) []CompatibilityRule {
	var result []CompatibilityRule
	for _, rule := range r.ruleset.Compatibility {
		if normalize(rule.Target) == normalize(target) {
			result = append(result, rule)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Package < result[j].Package })
	return result
}

// Replacement looks up the suggested substitute for (package, target).
func (r *Registry) Replacement(pkg, target string) (ReplacementRule, bool) {
	rule, ok := r.replacements[pairKey(pkg, target)]
	return rule, ok
}

// Distance returns the framework-distance matrix entry for (source, target).
// The second return reports whether the pair is mapped.
func (r *Registry) Distance(source, target string) (int, bool) {
	d, ok := r.distances[pairKey(source, target)]
	return d, ok
}

// FrameworkForDependency reports which framework pattern declares the package
// as a runtime dependency, if any.
func (r *Registry) FrameworkForDependency(pkg string) string {
	return r.depOwner[pkg]
}

func pairKey(a, b string) string {
	return normalize(a) + "|" + normalize(b)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
