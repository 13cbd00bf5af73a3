package analyzer

import (
	"github.com/devarispbrown/stackshift/internal/migration"
	"github.com/devarispbrown/stackshift/internal/registry"
)

// Hour estimates per effort tier. Monotonic with the tier ordering.
var effortHours = map[string]float64{
	migration.EffortTrivial: 0.5,
	migration.EffortSmall:   2,
	migration.EffortMedium:  8,
	migration.EffortLarge:   24,
}

// AnalyzeBreakingChanges looks up the rules scoped to the (source, target)
// pair. A pair with no rules yields an empty list, not an error.
func AnalyzeBreakingChanges(source, target string, reg *registry.Registry) ([]migration.BreakingChange, migration.BreakingChangesSummary) {
	changes := []migration.BreakingChange{}
	for _, rule := range reg.BreakingChanges(source, target) {
		changes = append(changes, migration.BreakingChange{
			ID:             rule.ID,
			Description:    rule.Description,
			Category:       rule.Category,
			Severity:       rule.Severity,
			Effort:         rule.Effort,
			Automatable:    rule.Automatable,
			SearchPattern:  rule.SearchPattern,
			Replacement:    rule.Replacement,
			MigrationGuide: rule.MigrationGuide,
		})
	}

	summary := migration.BreakingChangesSummary{Total: len(changes)}
	for _, change := range changes {
		if change.Severity == migration.SeverityCritical {
			summary.CriticalCount++
		}
		if change.Automatable {
			summary.AutomatableCount++
		}
		if hours, ok := effortHours[change.Effort]; ok {
			summary.EstimatedHours += hours
		} else {
			// Unknown tier: assume medium rather than free.
			summary.EstimatedHours += effortHours[migration.EffortMedium]
		}
	}

	return changes, summary
}
