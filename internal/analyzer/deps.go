package analyzer

import (
	"github.com/devarispbrown/stackshift/internal/detector"
	"github.com/devarispbrown/stackshift/internal/manifest"
	"github.com/devarispbrown/stackshift/internal/migration"
	"github.com/devarispbrown/stackshift/internal/registry"
)

// Ratio thresholds for the dependency migration complexity tier. Downstream
// report generation depends on these exact boundaries.
const (
	depComplexityHighRatio   = 0.5
	depComplexityMediumRatio = 0.2
)

// AnalyzeDependencies classifies every declared package against the target
// framework. Packages without a compatibility rule default to compatible:
// an optimistic default that avoids false positives.
func AnalyzeDependencies(man *manifest.Manifest, target string, reg *registry.Registry) migration.DependencyAnalysis {
	analysis := migration.DependencyAnalysis{
		Incompatible: []migration.IncompatibleDependency{},
		Replacements: []migration.Replacement{},
		Dependencies: []migration.DependencyInfo{},
	}

	for _, name := range man.Names() {
		info := migration.DependencyInfo{
			Name:         name,
			Version:      detector.CleanVersion(man.Version(name)),
			Framework:    reg.FrameworkForDependency(name),
			IsCompatible: true,
		}

		if rule, ok := reg.Compatibility(name, target); ok && !rule.Compatible {
			info.IsCompatible = false

			incompatible := migration.IncompatibleDependency{
				Package:    name,
				Reason:     rule.Reason,
				Severity:   rule.Severity,
				Resolution: rule.Resolution,
			}

			if replacement, ok := reg.Replacement(name, target); ok {
				info.HasReplacement = true
				analysis.Replacements = append(analysis.Replacements, migration.Replacement{
					From:            replacement.From,
					To:              replacement.To,
					Confidence:      replacement.Confidence,
					MigrationEffort: replacement.Effort,
					Notes:           replacement.Notes,
				})
			} else if incompatible.Resolution == "" {
				incompatible.Resolution = "Manual review required"
			}

			analysis.Incompatible = append(analysis.Incompatible, incompatible)
			analysis.IncompatibleCount++
		}

		analysis.Dependencies = append(analysis.Dependencies, info)
		analysis.TotalDependencies++
	}

	analysis.HasReplacements = len(analysis.Replacements) > 0
	analysis.MigrationComplexity = dependencyComplexity(analysis.IncompatibleCount, analysis.TotalDependencies)

	return analysis
}

// dependencyComplexity buckets the incompatible ratio: >50% high, >20%
// medium, else low.
func dependencyComplexity(incompatible, total int) string {
	if total == 0 {
		return migration.ComplexityLow
	}
	ratio := float64(incompatible) / float64(total)
	switch {
	case ratio > depComplexityHighRatio:
		return migration.ComplexityHigh
	case ratio > depComplexityMediumRatio:
		return migration.ComplexityMedium
	default:
		return migration.ComplexityLow
	}
}
