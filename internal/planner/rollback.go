package planner

import (
	"fmt"

	"github.com/devarispbrown/stackshift/internal/migration"
)

const procedureDuration = "30-60 minutes"

// PlanRollback emits one procedure per phase flagged as a rollback point.
// Rollback is never automatic: reverting a migration is an operator decision.
func PlanRollback(phases []migration.MigrationPhase, resources []migration.SharedResource) migration.RollbackStrategy {
	hasDatabase := false
	for _, resource := range resources {
		if resource.Type == migration.ResourceDatabase {
			hasDatabase = true
			break
		}
	}

	strategy := migration.RollbackStrategy{
		Automatic: false,
		Triggers: []migration.RollbackTrigger{
			{
				Condition: "Error rate above 5% after cutover",
				Severity:  migration.SeverityCritical,
				Action:    "Initiate rollback to the previous phase checkpoint",
			},
			{
				Condition: "P95 latency more than doubled against baseline",
				Severity:  migration.SeverityHigh,
				Action:    "Pause rollout and evaluate before proceeding",
			},
			{
				Condition: "Data integrity verification failed",
				Severity:  migration.SeverityCritical,
				Action:    "Stop the migration and restore from backup",
			},
		},
		Procedures:         []migration.RollbackProcedure{},
		DataBackupRequired: hasDatabase,
	}

	for _, phase := range phases {
		if !phase.RollbackPoint {
			continue
		}

		steps := []string{
			fmt.Sprintf("Stop services deployed during the %s phase", phase.Name),
			"Restore the previous configuration from version control",
		}
		if hasDatabase {
			steps = append(steps, "Run the database rollback script for this phase")
		}
		steps = append(steps,
			"Restart services with the previous configuration",
			"Verify the system serves traffic on the pre-phase version",
		)

		strategy.Procedures = append(strategy.Procedures, migration.RollbackProcedure{
			Phase: phase.ID,
			Steps: steps,
			VerificationPoints: []string{
				"Health checks green on the restored version",
				"Error rate back to pre-phase baseline",
				"Smoke tests pass against the restored system",
			},
			EstimatedDuration: procedureDuration,
		})
	}

	strategy.EstimatedTime = fmt.Sprintf("%s per rollback point", procedureDuration)

	return strategy
}
