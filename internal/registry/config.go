package registry

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Embed the default ruleset
//
//go:embed rulesets.yaml
var defaultRuleset embed.FS

// Ruleset is the YAML rule configuration: framework detection patterns,
// breaking-change rules, dependency compatibility and replacement tables,
// and the framework-distance matrix. Rules are data, not code branches, so
// new frameworks can be added without touching control flow.
type Ruleset struct {
	Version         string               `yaml:"version"`
	Description     string               `yaml:"description"`
	Updated         string               `yaml:"updated"`
	Categories      map[string]Category  `yaml:"categories"`
	Frameworks      []FrameworkPattern   `yaml:"frameworks"`
	BreakingChanges []BreakingChangeRule `yaml:"breaking_changes"`
	Compatibility   []CompatibilityRule  `yaml:"compatibility"`
	Replacements    []ReplacementRule    `yaml:"replacements"`
	Distances       []DistanceRule       `yaml:"distances"`
}

// Category groups framework patterns for listing.
type Category struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// FrameworkPattern is one detection signature. Confidence is the sum of
// weighted signal hits, capped at 100.
type FrameworkPattern struct {
	Framework       string        `yaml:"framework"`
	Category        string        `yaml:"category"`
	Language        string        `yaml:"language"`
	Type            string        `yaml:"type"`
	Files           []string      `yaml:"files"`
	Dependencies    []string      `yaml:"dependencies"`
	DevDependencies []string      `yaml:"dev_dependencies"`
	Content         []ContentRule `yaml:"content"`
	Structure       []string      `yaml:"structure"`
	Priority        int           `yaml:"priority"`
	Variants        []VariantRule `yaml:"variants"`
	Docs            string        `yaml:"docs"`
}

// ContentRule matches a regex against files selected by a glob. The weight is
// awarded once per rule: the first matching sampled file wins.
type ContentRule struct {
	File    string `yaml:"file"`
	Pattern string `yaml:"pattern"`
	Weight  int    `yaml:"weight"`
}

// VariantRule identifies a framework variant (e.g. Next.js on top of React).
type VariantRule struct {
	Name         string   `yaml:"name"`
	Files        []string `yaml:"files"`
	Dependencies []string `yaml:"dependencies"`
}

// BreakingChangeRule is scoped to a (source, target) framework pair.
type BreakingChangeRule struct {
	ID             string `yaml:"id"`
	Source         string `yaml:"source"`
	Target         string `yaml:"target"`
	Description    string `yaml:"description"`
	Category       string `yaml:"category"`
	Severity       string `yaml:"severity"`
	Effort         string `yaml:"effort"`
	Automatable    bool   `yaml:"automatable"`
	SearchPattern  string `yaml:"search_pattern"`
	Replacement    string `yaml:"replacement"`
	MigrationGuide string `yaml:"migration_guide"`
}

// CompatibilityRule classifies a package against a target framework. Packages
// without a rule default to compatible.
type CompatibilityRule struct {
	Package    string `yaml:"package"`
	Target     string `yaml:"target"`
	Compatible bool   `yaml:"compatible"`
	Reason     string `yaml:"reason"`
	Severity   string `yaml:"severity"`
	Resolution string `yaml:"resolution"`
}

// ReplacementRule suggests a target-compatible substitute for a package.
type ReplacementRule struct {
	From       string `yaml:"from"`
	Target     string `yaml:"target"`
	To         string `yaml:"to"`
	Confidence string `yaml:"confidence"`
	Effort     string `yaml:"effort"`
	Notes      string `yaml:"notes"`
}

// DistanceRule is one entry of the source→target framework complexity matrix,
// 0-10. Unmapped pairs default to 7 in the scorer.
type DistanceRule struct {
	Source     string `yaml:"source"`
	Target     string `yaml:"target"`
	Complexity int    `yaml:"complexity"`
}

// LoadRuleset loads the rule configuration from YAML. An empty path loads the
// embedded default.
func LoadRuleset(path string) (*Ruleset, error) {
	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read custom ruleset %s: %w", path, err)
		}
	} else {
		data, err = defaultRuleset.ReadFile("rulesets.yaml")
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded ruleset: %w", err)
		}
	}

	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML ruleset: %w", err)
	}

	return &rs, nil
}
