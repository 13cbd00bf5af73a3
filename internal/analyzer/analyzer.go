// Package analyzer runs the migration feasibility pipeline: stack detection,
// dependency compatibility, breaking changes, shared resources, risks,
// complexity, and plan synthesis.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/devarispbrown/stackshift/internal/detector"
	"github.com/devarispbrown/stackshift/internal/manifest"
	"github.com/devarispbrown/stackshift/internal/migration"
	"github.com/devarispbrown/stackshift/internal/planner"
	"github.com/devarispbrown/stackshift/internal/registry"
)

// DefaultSourceName is the placeholder when no framework crosses the primary
// detection threshold.
const DefaultSourceName = "Unknown"

// Analyzer drives a full analysis run over one project root.
type Analyzer struct {
	root     string
	registry *registry.Registry
}

// New validates the project root and creates an analyzer.
func New(root string, reg *registry.Registry) (*Analyzer, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("project root cannot be empty")
	}
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("project root does not exist: %s", root)
		}
		return nil, fmt.Errorf("cannot access project root %s: %w", root, err)
	}
	return &Analyzer{root: root, registry: reg}, nil
}

// Analyze runs the whole pipeline. It always returns a complete analysis:
// missing inputs degrade confidence and specificity, they never abort the run.
func (a *Analyzer) Analyze(ctx context.Context, target migration.TechStackInfo) (*migration.MigrationAnalysis, error) {
	log.Debug("Starting migration analysis", "root", a.root, "target", target.Name)

	man := manifest.Load(a.root)
	log.Debug("Manifest loaded", "sources", man.Sources, "packages", man.Len())

	det, err := detector.New(a.root, a.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create detector: %w", err)
	}
	detection, err := det.Detect(ctx, man)
	if err != nil {
		return nil, fmt.Errorf("stack detection failed: %w", err)
	}

	source := a.buildSourceStack(detection, man)
	target = a.normalizeTargetStack(target)

	deps := AnalyzeDependencies(man, target.Name, a.registry)
	breaking, summary := AnalyzeBreakingChanges(source.Name, target.Name, a.registry)
	resources := DetectSharedResources(a.root)
	risks := AssessRisks(source, target, resources, breaking, deps)
	complexity := ScoreComplexity(source.Name, target.Name, resources, risks, breaking, deps.MigrationComplexity, a.registry)

	phases := planner.SynthesizePhases(target.Name, breaking, deps, complexity)

	analysis := &migration.MigrationAnalysis{
		SourceStack:            source,
		TargetStack:            target,
		Complexity:             complexity,
		Risks:                  risks,
		SharedResources:        resources,
		SuggestedPhases:        phases,
		EstimatedDuration:      planner.EstimateDuration(phases, complexity.Score),
		RecommendedStrategy:    planner.RecommendStrategy(complexity, resources),
		BreakingChanges:        breaking,
		BreakingChangesSummary: summary,
		DependencyAnalysis:     deps,
		Rollback:               planner.PlanRollback(phases, resources),
	}

	log.Debug("Analysis complete",
		"source", source.Name,
		"complexity", complexity.Level,
		"strategy", analysis.RecommendedStrategy,
		"phases", len(phases))

	return analysis, nil
}

// buildSourceStack assembles the detected source stack. Without a primary
// detection the name stays at its placeholder and confidence at zero.
func (a *Analyzer) buildSourceStack(detection *detector.Result, man *manifest.Manifest) migration.TechStackInfo {
	stack := migration.TechStackInfo{
		Name:            DefaultSourceName,
		Type:            "unknown",
		Dependencies:    sortedKeys(man.Dependencies),
		DevDependencies: sortedKeys(man.DevDependencies),
		Metadata: &migration.StackMetadata{
			DetectedFrameworks: detection.All,
		},
	}

	if detection.Primary == nil {
		return stack
	}

	primary := *detection.Primary
	stack.Name = primary.Framework
	stack.Version = primary.Version
	stack.Metadata.Confidence = primary.Confidence

	if pattern, ok := a.registry.Framework(primary.Framework); ok {
		stack.Type = pattern.Type
		stack.Docs = pattern.Docs
	}
	if primary.Variant != "" {
		// The variant stays in metadata; rule lookups key off the base
		// framework name.
		log.Debug("Variant detected", "framework", primary.Framework, "variant", primary.Variant)
	}

	return stack
}

// normalizeTargetStack fills registry-known metadata for the declared target.
func (a *Analyzer) normalizeTargetStack(target migration.TechStackInfo) migration.TechStackInfo {
	if target.Dependencies == nil {
		target.Dependencies = []string{}
	}
	if target.DevDependencies == nil {
		target.DevDependencies = []string{}
	}
	if pattern, ok := a.registry.Framework(target.Name); ok {
		// Canonical casing from the ruleset.
		target.Name = pattern.Framework
		if target.Type == "" {
			target.Type = pattern.Type
		}
		if target.Docs == "" {
			target.Docs = pattern.Docs
		}
	} else if target.Type == "" {
		target.Type = "framework"
	}
	return target
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
