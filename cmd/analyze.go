package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/devarispbrown/stackshift/internal/analyzer"
	"github.com/devarispbrown/stackshift/internal/migration"
	"github.com/devarispbrown/stackshift/internal/registry"
	"github.com/devarispbrown/stackshift/internal/report"
)

var (
	projectDir    string
	targetName    string
	targetVersion string
	outputFormat  string
	rulesPath     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a project for migration to a target stack",
	Long: `Analyze a project directory to plan a migration to a target framework.

This command will detect the current stack and provide:
- Breaking changes between source and target, with effort estimates
- Dependency compatibility report and suggested replacements
- Shared resource inventory (databases, caches, auth, APIs)
- Risk assessment and complexity score
- Phased migration plan with rollback procedures
- Recommended migration strategy and duration estimate`,
	Example: `  # Analyze the current directory for a move to Fastify
  stackshift analyze --target fastify

  # Analyze a specific project with JSON output
  stackshift analyze --project ./my-app --target vue --format json

  # Use a custom ruleset
  stackshift analyze --target fastify --rules ./my-rules.yaml`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&projectDir, "project", "p", ".", "Project directory to analyze")
	analyzeCmd.Flags().StringVarP(&targetName, "target", "t", "", "Target framework to migrate to")
	analyzeCmd.Flags().StringVar(&targetVersion, "target-version", "", "Target framework version")
	analyzeCmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "Output format (table, json, yaml, markdown)")
	analyzeCmd.Flags().StringVar(&rulesPath, "rules", "", "Path to custom ruleset YAML file")

	analyzeCmd.MarkFlagRequired("target")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log.Info("Starting migration analysis", "project", projectDir, "target", targetName)

	if _, err := os.Stat(projectDir); os.IsNotExist(err) {
		return fmt.Errorf("project directory does not exist: %s", projectDir)
	}

	reg, err := registry.New(rulesPath)
	if err != nil {
		return fmt.Errorf("failed to load ruleset: %w", err)
	}

	a, err := analyzer.New(projectDir, reg)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	analysis, err := a.Analyze(cmd.Context(), migration.TechStackInfo{
		Name:    targetName,
		Version: targetVersion,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	rep := report.New(analysis)

	switch outputFormat {
	case "json":
		return rep.WriteJSON(os.Stdout)
	case "yaml":
		return rep.WriteYAML(os.Stdout)
	case "markdown":
		return rep.WriteMarkdown(os.Stdout)
	default:
		return rep.WriteTable(os.Stdout)
	}
}
