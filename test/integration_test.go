//go:build integration
// +build integration

package test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devarispbrown/stackshift/internal/analyzer"
	"github.com/devarispbrown/stackshift/internal/migration"
	"github.com/devarispbrown/stackshift/internal/registry"
	"github.com/devarispbrown/stackshift/internal/report"
)

// setupExpressProject builds a realistic Express project tree: manifest,
// entrypoint, route directory, env file.
func setupExpressProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"package.json": `{
  "name": "legacy-api",
  "dependencies": {
    "express": "^4.18.2",
    "body-parser": "^1.20.0",
    "morgan": "^1.10.0"
  },
  "devDependencies": {
    "nodemon": "^3.0.0"
  }
}`,
		"src/index.js":    "const express = require('express');\nconst app = express();\napp.listen(3000);\n",
		"routes/users.js": "module.exports = [];\n",
		".env":            "DATABASE_URL=postgres://localhost/app\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func runAnalysis(t *testing.T, dir string) *migration.MigrationAnalysis {
	t.Helper()
	reg, err := registry.New("")
	require.NoError(t, err)
	a, err := analyzer.New(dir, reg)
	require.NoError(t, err)
	analysis, err := a.Analyze(context.Background(), migration.TechStackInfo{Name: "fastify"})
	require.NoError(t, err)
	return analysis
}

func TestFullPipelineExpressToFastify(t *testing.T) {
	dir := setupExpressProject(t)
	analysis := runAnalysis(t, dir)

	// Detection
	assert.Equal(t, "Express", analysis.SourceStack.Name)
	assert.Equal(t, "4.18.2", analysis.SourceStack.Version)
	assert.Equal(t, "Fastify", analysis.TargetStack.Name)
	require.NotNil(t, analysis.SourceStack.Metadata)
	assert.GreaterOrEqual(t, analysis.SourceStack.Metadata.Confidence, 70)

	// Breaking changes
	assert.Len(t, analysis.BreakingChanges, 3)
	assert.Equal(t, 1, analysis.BreakingChangesSummary.AutomatableCount)
	assert.InDelta(t, 12, analysis.BreakingChangesSummary.EstimatedHours, 0.001)

	// Dependencies: body-parser and morgan are incompatible out of four packages.
	assert.Equal(t, 4, analysis.DependencyAnalysis.TotalDependencies)
	assert.Equal(t, 2, analysis.DependencyAnalysis.IncompatibleCount)
	assert.Len(t, analysis.DependencyAnalysis.Replacements, 2)
	assert.Equal(t, migration.ComplexityMedium, analysis.DependencyAnalysis.MigrationComplexity)

	// Shared resources: env-declared database plus the route directory.
	require.Len(t, analysis.SharedResources, 2)
	assert.Equal(t, migration.ResourceDatabase, analysis.SharedResources[0].Type)
	assert.Equal(t, migration.ResourceAPI, analysis.SharedResources[1].Type)

	// Complexity saturates with this many signals.
	assert.Equal(t, 100, analysis.Complexity.Score)
	assert.Equal(t, migration.ComplexityCritical, analysis.Complexity.Level)
	assert.Len(t, analysis.Complexity.Factors, 5)

	// Plan
	require.Len(t, analysis.SuggestedPhases, 7)
	assert.Equal(t, "setup", analysis.SuggestedPhases[0].ID)
	assert.Equal(t, "cutover", analysis.SuggestedPhases[len(analysis.SuggestedPhases)-1].ID)
	assert.Equal(t, migration.StrategyParallelRun, analysis.RecommendedStrategy)
	assert.Equal(t, "3 months", analysis.EstimatedDuration)

	// Rollback: one procedure per rollback point, backup required for the DB.
	assert.False(t, analysis.Rollback.Automatic)
	assert.Len(t, analysis.Rollback.Procedures, 5)
	assert.True(t, analysis.Rollback.DataBackupRequired)
}

func TestAnalysisIsDeterministic(t *testing.T) {
	dir := setupExpressProject(t)

	first := runAnalysis(t, dir)
	second := runAnalysis(t, dir)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("identical inputs produced different analyses (-first +second):\n%s", diff)
	}
}

func TestReportRenderersOnRealAnalysis(t *testing.T) {
	dir := setupExpressProject(t)
	rep := report.New(runAnalysis(t, dir))

	var table, markdown, jsonOut, yamlOut bytes.Buffer
	require.NoError(t, rep.WriteTable(&table))
	require.NoError(t, rep.WriteMarkdown(&markdown))
	require.NoError(t, rep.WriteJSON(&jsonOut))
	require.NoError(t, rep.WriteYAML(&yamlOut))

	assert.Contains(t, table.String(), "Express")
	assert.Contains(t, markdown.String(), "# Migration Analysis: Express → Fastify")
	assert.Contains(t, jsonOut.String(), `"recommendedStrategy": "parallel-run"`)
	assert.Contains(t, yamlOut.String(), "recommendedStrategy: parallel-run")
}

func TestFullPipelineUnknownProject(t *testing.T) {
	dir := t.TempDir()
	analysis := runAnalysis(t, dir)

	assert.Equal(t, "Unknown", analysis.SourceStack.Name)
	assert.NotEmpty(t, analysis.SuggestedPhases)
	assert.NotEmpty(t, analysis.RecommendedStrategy)
	assert.NotEmpty(t, analysis.EstimatedDuration)
}
