// Package report wraps a MigrationAnalysis with run metadata and renders it
// as a styled table, markdown, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ghodss/yaml"
	"github.com/google/uuid"

	"github.com/devarispbrown/stackshift/internal/migration"
)

// Report is the rendered envelope around one analysis run. Run metadata
// (timestamp, id) lives here so the analysis payload itself stays
// deterministic.
type Report struct {
	GeneratedAt     time.Time                    `json:"generatedAt"`
	RunID           string                       `json:"runId"`
	Analysis        *migration.MigrationAnalysis `json:"analysis"`
	Recommendations []string                     `json:"recommendations"`
}

// New wraps an analysis with run metadata and derived recommendations.
func New(analysis *migration.MigrationAnalysis) *Report {
	return &Report{
		GeneratedAt:     time.Now().UTC(),
		RunID:           uuid.NewString(),
		Analysis:        analysis,
		Recommendations: recommendations(analysis),
	}
}

// recommendations derives next-step guidance from the analysis. Pure
// function of the analysis, ordered by urgency.
func recommendations(a *migration.MigrationAnalysis) []string {
	recs := []string{}

	if a.BreakingChangesSummary.CriticalCount > 0 {
		recs = append(recs, fmt.Sprintf("Resolve the %d critical breaking changes before any feature migration", a.BreakingChangesSummary.CriticalCount))
	}
	if a.BreakingChangesSummary.AutomatableCount > 0 {
		recs = append(recs, fmt.Sprintf("Apply the %d automatable rewrites first; they are cheap wins", a.BreakingChangesSummary.AutomatableCount))
	}
	if a.DependencyAnalysis.IncompatibleCount > 0 {
		recs = append(recs, fmt.Sprintf("Plan replacements for %d incompatible dependencies (%d have suggested substitutes)",
			a.DependencyAnalysis.IncompatibleCount, len(a.DependencyAnalysis.Replacements)))
	}
	if a.Rollback.DataBackupRequired {
		recs = append(recs, "Take verified database backups before every rollback point")
	}

	switch a.RecommendedStrategy {
	case migration.StrategyParallelRun:
		recs = append(recs, "Run both systems in parallel and shift traffic gradually; complexity or critical shared state rules out a direct switch")
	case migration.StrategyBigBang:
		recs = append(recs, "Complexity is low enough for a single cutover; keep the rollback runbook at hand regardless")
	default:
		recs = append(recs, "Migrate incrementally, validating at each phase checkpoint")
	}

	return recs
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// WriteYAML renders the report as YAML via the JSON field names.
func (r *Report) WriteYAML(w io.Writer) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = w.Write(data)
	return err
}
