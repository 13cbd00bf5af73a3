package analyzer

import (
	"fmt"

	"github.com/devarispbrown/stackshift/internal/migration"
	"github.com/devarispbrown/stackshift/internal/registry"
)

// DefaultDistance is used for framework pairs missing from the distance
// matrix: moderately high, reflecting uncertainty bias toward caution.
const DefaultDistance = 7

// Factor weights. Each factor impact is capped at 10 before weighting, and
// the weighted sum is clamped to [0,100].
const (
	weightFramework    = 10
	weightResources    = 5
	weightCriticalRisk = 7
	weightBreaking     = 5
	weightDependencies = 4
)

// Factor names. The phase synthesizer keys the data-migration phase off the
// shared-resources factor name.
const (
	FactorFramework    = "Framework Migration Distance"
	FactorResources    = "Shared Resources"
	FactorCriticalRisk = "Critical Risks"
	FactorBreaking     = "Breaking Changes"
	FactorDependencies = "Dependency Complexity"
)

// ScoreComplexity aggregates the weighted factors into a 0-100 score and a
// discrete level.
func ScoreComplexity(source, target string, resources []migration.SharedResource, risks []migration.MigrationRisk, breaking []migration.BreakingChange, depComplexity string, reg *registry.Registry) migration.MigrationComplexity {
	distance, mapped := reg.Distance(source, target)
	if !mapped {
		distance = DefaultDistance
	}

	criticalRisks := 0
	for _, risk := range risks {
		if risk.Impact == migration.SeverityCritical {
			criticalRisks++
		}
	}

	candidates := []migration.ComplexityFactor{
		{
			Name:        FactorFramework,
			Impact:      cap10(distance),
			Description: fmt.Sprintf("Conceptual distance from %s to %s", source, target),
		},
		{
			Name:        FactorResources,
			Impact:      cap10(len(resources) * 2),
			Description: fmt.Sprintf("%d shared resources must stay consistent during transition", len(resources)),
		},
		{
			Name:        FactorCriticalRisk,
			Impact:      cap10(criticalRisks * 3),
			Description: fmt.Sprintf("%d critical-impact risks identified", criticalRisks),
		},
		{
			Name:        FactorBreaking,
			Impact:      cap10(len(breaking)),
			Description: fmt.Sprintf("%d known breaking changes for this pair", len(breaking)),
		},
		{
			Name:        FactorDependencies,
			Impact:      dependencyTierImpact(depComplexity),
			Description: fmt.Sprintf("Dependency migration complexity is %s", depComplexity),
		},
	}

	weights := []int{weightFramework, weightResources, weightCriticalRisk, weightBreaking, weightDependencies}
	score := 0
	factors := make([]migration.ComplexityFactor, 0, len(candidates))
	for i, factor := range candidates {
		score += factor.Impact * weights[i]
		// Zero-impact factors carry no signal and are omitted; downstream
		// phase synthesis keys off factor presence.
		if factor.Impact > 0 {
			factors = append(factors, factor)
		}
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return migration.MigrationComplexity{
		Score:   score,
		Factors: factors,
		Level:   levelFor(score),
	}
}

// levelFor buckets a score: <30 low, <60 medium, <80 high, else critical.
func levelFor(score int) string {
	switch {
	case score < 30:
		return migration.ComplexityLow
	case score < 60:
		return migration.ComplexityMedium
	case score < 80:
		return migration.ComplexityHigh
	default:
		return migration.ComplexityCritical
	}
}

func dependencyTierImpact(tier string) int {
	switch tier {
	case migration.ComplexityHigh:
		return 8
	case migration.ComplexityMedium:
		return 5
	default:
		return 2
	}
}

func cap10(v int) int {
	if v > 10 {
		return 10
	}
	if v < 0 {
		return 0
	}
	return v
}
