// Package planner synthesizes the ordered migration phase plan, picks a
// strategy, and derives the rollback procedures.
package planner

import (
	"fmt"
	"strings"

	"github.com/devarispbrown/stackshift/internal/migration"
)

// Phase ids, in emission order. setup is always the root; cutover is always
// terminal and depends on every other emitted phase.
const (
	PhaseSetup           = "setup"
	PhaseInfrastructure  = "infrastructure"
	PhaseBreakingChanges = "breaking-changes"
	PhaseDependencies    = "dependencies"
	PhaseFeatures        = "features"
	PhaseData            = "data"
	PhaseCutover         = "cutover"
)

// SynthesizePhases emits the ordered phase list. Conditional phases appear
// only when the analysis found work for them; dependency edges reference only
// earlier phases, so the plan is acyclic by construction.
func SynthesizePhases(target string, breaking []migration.BreakingChange, deps migration.DependencyAnalysis, complexity migration.MigrationComplexity) []migration.MigrationPhase {
	phases := []migration.MigrationPhase{
		{
			ID:          PhaseSetup,
			Name:        "Project Setup",
			Description: fmt.Sprintf("Scaffold the %s project, CI pipeline and development environment", target),
			CriticalCheckpoints: []migration.Checkpoint{
				{
					ID:          "setup-builds",
					Name:        "Target project builds",
					Description: "The scaffolded target project builds and starts locally",
					Category:    "build",
					AutoTrigger: true,
					Conditions:  []string{"build succeeds", "dev server starts"},
				},
			},
			Dependencies:      []string{},
			EstimatedDuration: "1-2 days",
			ValidationCriteria: []string{
				"Target toolchain installed and pinned",
				"CI runs lint and test jobs for the new stack",
			},
		},
		{
			ID:          PhaseInfrastructure,
			Name:        "Infrastructure Preparation",
			Description: "Provision environments, configuration and deploy targets for both stacks",
			CriticalCheckpoints: []migration.Checkpoint{
				{
					ID:          "infra-staging",
					Name:        "Staging environment live",
					Description: "The target stack deploys to staging alongside the current system",
					Category:    "deploy",
					AutoTrigger: false,
					Conditions:  []string{"staging deploy green", "secrets and config mirrored"},
				},
			},
			Dependencies:      []string{PhaseSetup},
			RollbackPoint:     true,
			EstimatedDuration: "3-5 days",
			ValidationCriteria: []string{
				"Both stacks deployable from the same pipeline",
				"Configuration parity verified between environments",
			},
		},
	}

	prev := PhaseInfrastructure

	if len(breaking) > 0 {
		phases = append(phases, migration.MigrationPhase{
			ID:          PhaseBreakingChanges,
			Name:        "Breaking Change Remediation",
			Description: fmt.Sprintf("Resolve %d known breaking changes, automated fixes first", len(breaking)),
			CriticalCheckpoints: []migration.Checkpoint{
				{
					ID:          "breaking-automated",
					Name:        "Automated rewrites applied",
					Description: "Search/replace rules applied and reviewed",
					Category:    "code",
					AutoTrigger: true,
					Conditions:  []string{"codemods applied", "diff reviewed"},
				},
				{
					ID:          "breaking-manual",
					Name:        "Manual changes signed off",
					Description: "Hand-written fixes for non-automatable changes reviewed and merged",
					Category:    "code",
					AutoTrigger: false,
				},
			},
			Dependencies:      []string{PhaseInfrastructure},
			RollbackPoint:     true,
			EstimatedDuration: "5-10 days",
			Risks:             []string{"Manual fixes may regress behavior without test coverage"},
			ValidationCriteria: []string{
				"All critical breaking changes resolved",
				"Regression suite passes on the target stack",
			},
		})
		prev = PhaseBreakingChanges
	}

	if deps.IncompatibleCount > 0 {
		phases = append(phases, migration.MigrationPhase{
			ID:          PhaseDependencies,
			Name:        "Dependency Replacement",
			Description: fmt.Sprintf("Swap %d incompatible packages for target-compatible replacements", deps.IncompatibleCount),
			CriticalCheckpoints: []migration.Checkpoint{
				{
					ID:          "deps-replaced",
					Name:        "Replacements integrated",
					Description: "Every incompatible package removed or replaced",
					Category:    "dependencies",
					AutoTrigger: true,
					Conditions:  []string{"no incompatible packages in manifest", "lockfile regenerated"},
				},
			},
			Dependencies:      []string{prev},
			RollbackPoint:     true,
			EstimatedDuration: "3-7 days",
			ValidationCriteria: []string{
				"Build is free of incompatible dependencies",
				"Replacement packages covered by smoke tests",
			},
		})
		prev = PhaseDependencies
	}

	// features depends on every phase emitted so far.
	featureDeps := phaseIDs(phases)
	phases = append(phases, migration.MigrationPhase{
		ID:          PhaseFeatures,
		Name:        "Feature Migration",
		Description: "Port application features to the target stack, highest-traffic routes first",
		CriticalCheckpoints: []migration.Checkpoint{
			{
				ID:          "features-parity",
				Name:        "Feature parity reached",
				Description: "All user-facing behavior reproduced on the target stack",
				Category:    "product",
				AutoTrigger: false,
				Conditions:  []string{"parity checklist complete", "acceptance tests pass"},
			},
		},
		Dependencies:      featureDeps,
		EstimatedDuration: "1-3 weeks",
		ValidationCriteria: []string{
			"Acceptance suite green on the target stack",
			"No feature regressions reported in staging",
		},
	})

	if hasSharedResourceFactor(complexity) {
		phases = append(phases, migration.MigrationPhase{
			ID:          PhaseData,
			Name:        "Data Migration",
			Description: "Migrate shared data stores and verify integrity between systems",
			CriticalCheckpoints: []migration.Checkpoint{
				{
					ID:          "data-verified",
					Name:        "Data integrity verified",
					Description: "Row counts and checksums match between old and new reads",
					Category:    "data",
					AutoTrigger: true,
					Conditions:  []string{"checksums match", "dual-write lag at zero"},
				},
			},
			Dependencies:      []string{PhaseFeatures},
			RollbackPoint:     true,
			EstimatedDuration: "1-2 weeks",
			Risks:             []string{"Schema drift between dual-written stores"},
			ValidationCriteria: []string{
				"Data verification checks pass",
				"Rollback restore tested against a backup",
			},
		})
	}

	phases = append(phases, migration.MigrationPhase{
		ID:          PhaseCutover,
		Name:        "Cutover",
		Description: "Shift production traffic to the target stack and retire the old system",
		CriticalCheckpoints: []migration.Checkpoint{
			{
				ID:          "cutover-approved",
				Name:        "Cutover approved",
				Description: "Stakeholders sign off on the production switch",
				Category:    "release",
				AutoTrigger: false,
			},
			{
				ID:          "cutover-stable",
				Name:        "Post-cutover stability",
				Description: "Error rate and latency stable for the observation window",
				Category:    "release",
				AutoTrigger: true,
				Conditions:  []string{"error rate within budget", "latency within budget"},
			},
		},
		Dependencies:      phaseIDs(phases),
		RollbackPoint:     true,
		EstimatedDuration: "1-2 days",
		ValidationCriteria: []string{
			"All traffic served by the target stack",
			"Old system decommission plan scheduled",
		},
	})

	return phases
}

func phaseIDs(phases []migration.MigrationPhase) []string {
	ids := make([]string, len(phases))
	for i, phase := range phases {
		ids[i] = phase.ID
	}
	return ids
}

func hasSharedResourceFactor(complexity migration.MigrationComplexity) bool {
	for _, factor := range complexity.Factors {
		if strings.Contains(factor.Name, "Shared Resources") {
			return true
		}
	}
	return false
}
