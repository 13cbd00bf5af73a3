package planner

import (
	"github.com/devarispbrown/stackshift/internal/migration"
)

// RecommendStrategy picks the migration strategy from complexity and
// shared-resource criticality:
//
//	low complexity and no critical shared resource  -> big-bang
//	critical complexity or a critical shared resource -> parallel-run
//	otherwise -> incremental
func RecommendStrategy(complexity migration.MigrationComplexity, resources []migration.SharedResource) string {
	critical := hasCriticalResource(resources)

	if complexity.Level == migration.ComplexityLow && !critical {
		return migration.StrategyBigBang
	}
	if complexity.Level == migration.ComplexityCritical || critical {
		return migration.StrategyParallelRun
	}
	return migration.StrategyIncremental
}

func hasCriticalResource(resources []migration.SharedResource) bool {
	for _, resource := range resources {
		if resource.CriticalityLevel == migration.SeverityCritical {
			return true
		}
	}
	return false
}
