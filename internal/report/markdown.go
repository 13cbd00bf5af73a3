package report

import (
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown renders the report as a markdown document suitable for
// checking into a migration planning repo.
func (r *Report) WriteMarkdown(w io.Writer) error {
	a := r.Analysis
	var b strings.Builder

	fmt.Fprintf(&b, "# Migration Analysis: %s → %s\n\n", a.SourceStack.Name, a.TargetStack.Name)
	fmt.Fprintf(&b, "Generated %s (run `%s`)\n\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"), r.RunID)

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Complexity | %d/100 (%s) |\n", a.Complexity.Score, a.Complexity.Level)
	fmt.Fprintf(&b, "| Strategy | %s |\n", a.RecommendedStrategy)
	fmt.Fprintf(&b, "| Estimated duration | %s |\n", a.EstimatedDuration)
	fmt.Fprintf(&b, "| Breaking changes | %d (%d critical) |\n", a.BreakingChangesSummary.Total, a.BreakingChangesSummary.CriticalCount)
	fmt.Fprintf(&b, "| Incompatible dependencies | %d of %d |\n\n", a.DependencyAnalysis.IncompatibleCount, a.DependencyAnalysis.TotalDependencies)

	if len(a.BreakingChanges) > 0 {
		fmt.Fprintf(&b, "## Breaking Changes\n\n")
		fmt.Fprintf(&b, "| ID | Severity | Effort | Automatable | Description |\n|---|---|---|---|---|\n")
		for _, change := range a.BreakingChanges {
			fmt.Fprintf(&b, "| %s | %s | %s | %v | %s |\n",
				change.ID, change.Severity, change.Effort, change.Automatable, change.Description)
		}
		fmt.Fprintln(&b)
	}

	if len(a.DependencyAnalysis.Incompatible) > 0 {
		fmt.Fprintf(&b, "## Incompatible Dependencies\n\n")
		for _, dep := range a.DependencyAnalysis.Incompatible {
			fmt.Fprintf(&b, "- **%s** (%s): %s", dep.Package, dep.Severity, dep.Reason)
			if dep.Resolution != "" {
				fmt.Fprintf(&b, " - %s", dep.Resolution)
			}
			fmt.Fprintln(&b)
		}
		fmt.Fprintln(&b)
	}

	if len(a.SharedResources) > 0 {
		fmt.Fprintf(&b, "## Shared Resources\n\n")
		for _, resource := range a.SharedResources {
			fmt.Fprintf(&b, "- **%s** (%s, %s): %s\n", resource.Name, resource.Type, resource.CriticalityLevel, resource.MigrationStrategy)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "## Risks\n\n")
	for _, risk := range a.Risks {
		fmt.Fprintf(&b, "- **%s** (probability %s, impact %s): %s\n  - Mitigation: %s\n",
			risk.Category, risk.Probability, risk.Impact, risk.Description, risk.Mitigation)
	}
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "## Phases\n\n")
	for i, phase := range a.SuggestedPhases {
		fmt.Fprintf(&b, "### %d. %s (`%s`)\n\n", i+1, phase.Name, phase.ID)
		fmt.Fprintf(&b, "%s\n\n", phase.Description)
		fmt.Fprintf(&b, "- Duration: %s\n", phase.EstimatedDuration)
		if len(phase.Dependencies) > 0 {
			fmt.Fprintf(&b, "- Depends on: %s\n", strings.Join(phase.Dependencies, ", "))
		}
		if phase.RollbackPoint {
			fmt.Fprintf(&b, "- Rollback point\n")
		}
		for _, criteria := range phase.ValidationCriteria {
			fmt.Fprintf(&b, "- Validate: %s\n", criteria)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "## Rollback\n\n")
	fmt.Fprintf(&b, "Automatic: %v. Data backup required: %v. %s.\n\n",
		a.Rollback.Automatic, a.Rollback.DataBackupRequired, a.Rollback.EstimatedTime)
	for _, procedure := range a.Rollback.Procedures {
		fmt.Fprintf(&b, "### Phase `%s`\n\n", procedure.Phase)
		for i, step := range procedure.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "## Next Steps\n\n")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
