package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/devarispbrown/stackshift/internal/migration"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F87"))
)

// WriteTable renders the styled terminal report.
func (r *Report) WriteTable(w io.Writer) error {
	a := r.Analysis

	fmt.Fprintln(w, headerStyle.Render("Migration Feasibility Analysis"))
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Detected Stack:")
	fmt.Fprintf(w, "  • Source: %s%s\n", a.SourceStack.Name, versionSuffix(a.SourceStack.Version))
	if a.SourceStack.Metadata != nil {
		fmt.Fprintf(w, "  • Confidence: %d/100\n", a.SourceStack.Metadata.Confidence)
		for _, fw := range a.SourceStack.Metadata.DetectedFrameworks {
			variant := ""
			if fw.Variant != "" {
				variant = " (" + fw.Variant + ")"
			}
			fmt.Fprintf(w, "    - %s%s: %d\n", fw.Framework, variant, fw.Confidence)
		}
	}
	fmt.Fprintf(w, "  • Target: %s%s\n", a.TargetStack.Name, versionSuffix(a.TargetStack.Version))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Complexity:")
	fmt.Fprintf(w, "  • Score: %d/100 (%s)\n", a.Complexity.Score, levelStyle(a.Complexity.Level).Render(a.Complexity.Level))
	for _, factor := range a.Complexity.Factors {
		fmt.Fprintf(w, "    - %-28s %2d/10  %s\n", factor.Name, factor.Impact, factor.Description)
	}
	fmt.Fprintln(w)

	if len(a.BreakingChanges) > 0 {
		fmt.Fprintln(w, "Breaking Changes:")
		fmt.Fprintln(w, "┌──────────────────────────────┬───────────┬──────────┬──────┐")
		fmt.Fprintln(w, "│ Change                       │ Severity  │ Effort   │ Auto │")
		fmt.Fprintln(w, "├──────────────────────────────┼───────────┼──────────┼──────┤")
		for _, change := range a.BreakingChanges {
			auto := "no"
			if change.Automatable {
				auto = "yes"
			}
			fmt.Fprintf(w, "│ %-28s │ %-9s │ %-8s │ %-4s │\n",
				truncate(change.ID, 28), change.Severity, change.Effort, auto)
		}
		fmt.Fprintln(w, "└──────────────────────────────┴───────────┴──────────┴──────┘")
		fmt.Fprintf(w, "  %d total, %d critical, %d automatable, ~%.1f hours\n",
			a.BreakingChangesSummary.Total,
			a.BreakingChangesSummary.CriticalCount,
			a.BreakingChangesSummary.AutomatableCount,
			a.BreakingChangesSummary.EstimatedHours)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Dependencies:")
	fmt.Fprintf(w, "  • %d declared, %d incompatible (%s migration complexity)\n",
		a.DependencyAnalysis.TotalDependencies,
		a.DependencyAnalysis.IncompatibleCount,
		a.DependencyAnalysis.MigrationComplexity)
	for _, replacement := range a.DependencyAnalysis.Replacements {
		fmt.Fprintf(w, "    - %s → %s (%s confidence, %s effort)\n",
			replacement.From, replacement.To, replacement.Confidence, replacement.MigrationEffort)
	}
	fmt.Fprintln(w)

	if len(a.SharedResources) > 0 {
		fmt.Fprintln(w, "Shared Resources:")
		for _, resource := range a.SharedResources {
			style := warningStyle
			if resource.CriticalityLevel == migration.SeverityCritical {
				style = errorStyle
			}
			fmt.Fprintf(w, "  • [%s] %s: %s\n", style.Render(resource.CriticalityLevel), resource.Name, resource.MigrationStrategy)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Risks:")
	for _, risk := range a.Risks {
		fmt.Fprintf(w, "  • [%s/%s] %s\n", risk.Probability, risk.Impact, risk.Description)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Suggested Phases:")
	for i, phase := range a.SuggestedPhases {
		marker := ""
		if phase.RollbackPoint {
			marker = "  (rollback point)"
		}
		fmt.Fprintf(w, "  %d. %-24s %-10s%s\n", i+1, phase.Name, phase.EstimatedDuration, marker)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Plan Summary:")
	fmt.Fprintf(w, "  • Strategy: %s\n", successStyle.Render(a.RecommendedStrategy))
	fmt.Fprintf(w, "  • Estimated duration: %s\n", a.EstimatedDuration)
	fmt.Fprintf(w, "  • Rollback procedures: %d (backup required: %v)\n",
		len(a.Rollback.Procedures), a.Rollback.DataBackupRequired)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Next Steps:")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(w, "  %d. %s\n", i+1, rec)
	}

	return nil
}

func levelStyle(level string) lipgloss.Style {
	switch level {
	case migration.ComplexityLow:
		return successStyle
	case migration.ComplexityMedium:
		return warningStyle
	default:
		return errorStyle
	}
}

func versionSuffix(version string) string {
	if version == "" {
		return ""
	}
	return " v" + version
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
