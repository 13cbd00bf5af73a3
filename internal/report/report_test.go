package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devarispbrown/stackshift/internal/migration"
)

func sampleAnalysis() *migration.MigrationAnalysis {
	return &migration.MigrationAnalysis{
		SourceStack: migration.TechStackInfo{Name: "Express", Version: "4.18.2", Type: "backend"},
		TargetStack: migration.TechStackInfo{Name: "Fastify", Type: "backend"},
		Complexity: migration.MigrationComplexity{
			Score: 38,
			Level: migration.ComplexityMedium,
			Factors: []migration.ComplexityFactor{
				{Name: "Framework Migration Distance", Impact: 3, Description: "Conceptual distance from Express to Fastify"},
			},
		},
		Risks: []migration.MigrationRisk{
			{Category: "performance", Description: "Parallel load", Probability: "medium", Impact: migration.SeverityMedium, Mitigation: "Provision headroom"},
		},
		SharedResources: []migration.SharedResource{
			{Type: migration.ResourceDatabase, Name: "Primary database", CriticalityLevel: migration.SeverityCritical, MigrationStrategy: "Dual-write"},
		},
		SuggestedPhases: []migration.MigrationPhase{
			{ID: "setup", Name: "Project Setup", EstimatedDuration: "1-2 days", Dependencies: []string{}},
			{ID: "cutover", Name: "Cutover", EstimatedDuration: "1-2 days", Dependencies: []string{"setup"}, RollbackPoint: true},
		},
		EstimatedDuration:   "3 weeks",
		RecommendedStrategy: migration.StrategyParallelRun,
		BreakingChanges: []migration.BreakingChange{
			{ID: "express-fastify-handlers", Description: "res.send changes", Severity: migration.SeverityMedium, Effort: migration.EffortSmall, Automatable: true},
		},
		BreakingChangesSummary: migration.BreakingChangesSummary{Total: 1, AutomatableCount: 1, EstimatedHours: 2},
		DependencyAnalysis: migration.DependencyAnalysis{
			TotalDependencies: 4,
			IncompatibleCount: 2,
			Incompatible: []migration.IncompatibleDependency{
				{Package: "body-parser", Reason: "built in", Severity: migration.SeverityMedium, Resolution: "Remove the middleware"},
			},
			Replacements: []migration.Replacement{
				{From: "body-parser", To: "builtin content-type parsers", Confidence: "high", MigrationEffort: "trivial"},
			},
			MigrationComplexity: migration.ComplexityMedium,
		},
		Rollback: migration.RollbackStrategy{
			Automatic:          false,
			DataBackupRequired: true,
			EstimatedTime:      "30-60 minutes per rollback point",
			Procedures: []migration.RollbackProcedure{
				{Phase: "cutover", Steps: []string{"Stop services"}, EstimatedDuration: "30-60 minutes"},
			},
		},
	}
}

func TestNewAttachesRunMetadata(t *testing.T) {
	r := New(sampleAnalysis())

	assert.NotEmpty(t, r.RunID)
	assert.False(t, r.GeneratedAt.IsZero())
	assert.NotEmpty(t, r.Recommendations)

	// Distinct runs get distinct ids even for identical analyses.
	other := New(sampleAnalysis())
	assert.NotEqual(t, r.RunID, other.RunID)
}

func TestRecommendationsFollowAnalysis(t *testing.T) {
	r := New(sampleAnalysis())

	joined := strings.Join(r.Recommendations, "\n")
	assert.Contains(t, joined, "automatable")
	assert.Contains(t, joined, "incompatible dependencies")
	assert.Contains(t, joined, "backups")
	assert.Contains(t, joined, "parallel")
}

func TestWriteJSONRoundTrips(t *testing.T) {
	r := New(sampleAnalysis())

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.RunID, decoded.RunID)
	assert.Equal(t, "Express", decoded.Analysis.SourceStack.Name)
	assert.Equal(t, 38, decoded.Analysis.Complexity.Score)
}

func TestWriteYAML(t *testing.T) {
	r := New(sampleAnalysis())

	var buf bytes.Buffer
	require.NoError(t, r.WriteYAML(&buf))

	out := buf.String()
	assert.Contains(t, out, "sourceStack")
	assert.Contains(t, out, "Fastify")
	assert.Contains(t, out, "recommendedStrategy: parallel-run")
}

func TestWriteTable(t *testing.T) {
	r := New(sampleAnalysis())

	var buf bytes.Buffer
	require.NoError(t, r.WriteTable(&buf))

	out := buf.String()
	assert.Contains(t, out, "Migration Feasibility Analysis")
	assert.Contains(t, out, "Express")
	assert.Contains(t, out, "Breaking Changes:")
	assert.Contains(t, out, "Suggested Phases:")
	assert.Contains(t, out, "Next Steps:")
	assert.NotContains(t, out, "—", "separators stay plain ASCII")
}

func TestWriteMarkdown(t *testing.T) {
	r := New(sampleAnalysis())

	var buf bytes.Buffer
	require.NoError(t, r.WriteMarkdown(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Migration Analysis: Express"))
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "## Breaking Changes")
	assert.Contains(t, out, "## Rollback")
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "body-parser** (medium): built in - Remove the middleware")
	assert.NotContains(t, out, "—", "separators stay plain ASCII")
}
