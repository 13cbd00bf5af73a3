package analyzer

import (
	"fmt"

	"github.com/devarispbrown/stackshift/internal/migration"
)

// AssessRisks evaluates a fixed rule list. Conditions are independent and not
// mutually exclusive; each produced risk is a pure record.
func AssessRisks(source, target migration.TechStackInfo, resources []migration.SharedResource, breaking []migration.BreakingChange, deps migration.DependencyAnalysis) []migration.MigrationRisk {
	risks := []migration.MigrationRisk{}

	if source.Name != target.Name {
		risks = append(risks, migration.MigrationRisk{
			Category:    "compatibility",
			Description: fmt.Sprintf("Framework change from %s to %s; APIs, idioms and tooling all differ", source.Name, target.Name),
			Probability: "high",
			Impact:      migration.SeverityHigh,
			Mitigation:  "Migrate incrementally behind feature flags and keep both stacks runnable until cutover",
		})
	}

	if hasResource(resources, migration.ResourceDatabase) {
		risks = append(risks, migration.MigrationRisk{
			Category:    "data-loss",
			Description: "A shared database serves both systems during the transition window",
			Probability: "medium",
			Impact:      migration.SeverityCritical,
			Mitigation:  "Take verified backups before each phase and dual-write until reads are switched",
		})
	}

	if hasResource(resources, migration.ResourceAuth) {
		risks = append(risks, migration.MigrationRisk{
			Category:    "security",
			Description: "Authentication state is shared; a format mismatch logs every user out or worse",
			Probability: "medium",
			Impact:      migration.SeverityCritical,
			Mitigation:  "Keep token and session formats identical across both systems until cutover completes",
		})
	}

	if hasResource(resources, migration.ResourceAPI) {
		risks = append(risks, migration.MigrationRisk{
			Category:    "compatibility",
			Description: "External consumers depend on the HTTP API surface",
			Probability: "medium",
			Impact:      migration.SeverityHigh,
			Mitigation:  "Freeze the API contract and run contract tests against both implementations",
		})
	}

	criticalChanges := 0
	manualChanges := 0
	for _, change := range breaking {
		if change.Severity == migration.SeverityCritical {
			criticalChanges++
		}
		if !change.Automatable {
			manualChanges++
		}
	}

	if criticalChanges > 0 {
		risks = append(risks, migration.MigrationRisk{
			Category:    "compatibility",
			Description: fmt.Sprintf("%d critical breaking changes between %s and %s", criticalChanges, source.Name, target.Name),
			Probability: "high",
			Impact:      migration.SeverityCritical,
			Mitigation:  "Resolve critical breaking changes first, each behind its own checkpoint",
		})
	}

	if manualChanges > 0 {
		risks = append(risks, migration.MigrationRisk{
			Category:    "compatibility",
			Description: fmt.Sprintf("%d breaking changes cannot be automated and need hand-written fixes", manualChanges),
			Probability: "high",
			Impact:      migration.SeverityHigh,
			Mitigation:  "Budget review time per manual change and pair on the riskiest ones",
		})
	}

	if deps.IncompatibleCount > 0 {
		impact := migration.SeverityHigh
		if deps.IncompatibleCount > 10 {
			impact = migration.SeverityCritical
		}
		risks = append(risks, migration.MigrationRisk{
			Category:    "dependencies",
			Description: fmt.Sprintf("%d of %d dependencies are incompatible with %s", deps.IncompatibleCount, deps.TotalDependencies, target.Name),
			Probability: "high",
			Impact:      impact,
			Mitigation:  "Replace incompatible packages early so the rest of the migration builds on stable ground",
		})
	}

	if deps.MigrationComplexity == migration.ComplexityHigh {
		risks = append(risks, migration.MigrationRisk{
			Category:    "dependencies",
			Description: "Over half of the dependency surface must change",
			Probability: "medium",
			Impact:      migration.SeverityHigh,
			Mitigation:  "Stage dependency replacements in their own phase with full regression runs",
		})
	}

	// Always present: running two systems side by side contends for the
	// same resources.
	risks = append(risks, migration.MigrationRisk{
		Category:    "performance",
		Description: "Running old and new systems in parallel doubles load on shared infrastructure",
		Probability: "medium",
		Impact:      migration.SeverityMedium,
		Mitigation:  "Provision headroom for the transition window and monitor saturation on shared resources",
	})

	return risks
}

func hasResource(resources []migration.SharedResource, resourceType string) bool {
	for _, resource := range resources {
		if resource.Type == resourceType {
			return true
		}
	}
	return false
}
