package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"

	"github.com/devarispbrown/stackshift/internal/detector"
	"github.com/devarispbrown/stackshift/internal/manifest"
	"github.com/devarispbrown/stackshift/internal/registry"
)

var (
	detectProjectDir string
	detectFormat     string
	detectRulesPath  string
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the framework stack of a project",
	Long: `Scan a project directory and report every framework detected, with
per-framework confidence scores, resolved versions, and variants
(e.g. Next.js on top of React).`,
	Example: `  # Detect the stack of the current directory
  stackshift detect

  # Detect a specific project with JSON output
  stackshift detect --project ./my-app --format json`,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringVarP(&detectProjectDir, "project", "p", ".", "Project directory to scan")
	detectCmd.Flags().StringVarP(&detectFormat, "format", "f", "table", "Output format (table, json, yaml)")
	detectCmd.Flags().StringVar(&detectRulesPath, "rules", "", "Path to custom ruleset YAML file")
}

func runDetect(cmd *cobra.Command, args []string) error {
	log.Info("Detecting project stack", "project", detectProjectDir)

	reg, err := registry.New(detectRulesPath)
	if err != nil {
		return fmt.Errorf("failed to load ruleset: %w", err)
	}

	det, err := detector.New(detectProjectDir, reg)
	if err != nil {
		return fmt.Errorf("failed to create detector: %w", err)
	}

	man := manifest.Load(detectProjectDir)
	result, err := det.Detect(cmd.Context(), man)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	switch detectFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal detection result: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		return printDetection(result)
	}
}

func printDetection(result *detector.Result) error {
	fmt.Println(titleStyle.Render("Detected Frameworks"))
	fmt.Println()

	if len(result.All) == 0 {
		fmt.Println("No frameworks detected above the confidence threshold.")
		return nil
	}

	for _, fw := range result.All {
		marker := " "
		if result.Primary != nil && fw.Framework == result.Primary.Framework {
			marker = "★"
		}
		variant := ""
		if fw.Variant != "" {
			variant = " (" + fw.Variant + ")"
		}
		version := ""
		if fw.Version != "" {
			version = " v" + fw.Version
		}
		fmt.Printf("  %s %-14s%s%s  %3d/100\n", marker, fw.Framework, variant, version, fw.Confidence)
	}

	fmt.Println()
	if result.Primary != nil {
		fmt.Printf("Primary: %s\n", result.Primary.Framework)
	} else {
		fmt.Println("Primary: none (no framework reached high confidence)")
	}

	return nil
}
