package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/devarispbrown/stackshift/internal/registry"
)

var (
	compatTarget    string
	compatPackage   string
	compatRulesPath string
)

var compatCmd = &cobra.Command{
	Use:   "compat",
	Short: "Show dependency compatibility rules for a target framework",
	Long: `Show which packages are known to be incompatible with a target framework,
why, and what to replace them with. Packages without a rule are assumed
compatible.`,
	Example: `  # All compatibility rules for Fastify
  stackshift compat --target fastify

  # Check a single package
  stackshift compat --target fastify --package helmet`,
	RunE: runCompat,
}

func init() {
	rootCmd.AddCommand(compatCmd)

	compatCmd.Flags().StringVarP(&compatTarget, "target", "t", "", "Target framework")
	compatCmd.Flags().StringVar(&compatPackage, "package", "", "Check a single package instead of listing all rules")
	compatCmd.Flags().StringVar(&compatRulesPath, "rules", "", "Path to custom ruleset YAML file")

	compatCmd.MarkFlagRequired("target")
}

func runCompat(cmd *cobra.Command, args []string) error {
	reg, err := registry.New(compatRulesPath)
	if err != nil {
		return fmt.Errorf("failed to load ruleset: %w", err)
	}

	okStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#50FA7B"))
	badStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))

	if compatPackage != "" {
		rule, found := reg.Compatibility(compatPackage, compatTarget)
		if !found || rule.Compatible {
			fmt.Printf("%s %s is compatible with %s\n", okStyle.Render("✓"), compatPackage, compatTarget)
			if found && rule.Reason != "" {
				fmt.Printf("  %s\n", rule.Reason)
			}
			return nil
		}

		fmt.Printf("%s %s is incompatible with %s (%s)\n", badStyle.Render("✗"), compatPackage, compatTarget, rule.Severity)
		fmt.Printf("  Reason: %s\n", rule.Reason)
		if replacement, ok := reg.Replacement(compatPackage, compatTarget); ok {
			fmt.Printf("  Replace with: %s (%s confidence, %s effort)\n", replacement.To, replacement.Confidence, replacement.Effort)
		} else if rule.Resolution != "" {
			fmt.Printf("  Resolution: %s\n", rule.Resolution)
		}
		return nil
	}

	rules := reg.CompatibilityForTarget(compatTarget)
	if len(rules) == 0 {
		fmt.Printf("No compatibility rules recorded for target: %s\n", compatTarget)
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Compatibility rules for %s", compatTarget)))
	fmt.Println()

	incompatible := 0
	for _, rule := range rules {
		if rule.Compatible {
			fmt.Printf("  %s %-24s %s\n", okStyle.Render("✓"), rule.Package, rule.Reason)
			continue
		}
		incompatible++
		fmt.Printf("  %s %-24s [%s] %s\n", badStyle.Render("✗"), rule.Package, rule.Severity, rule.Reason)
		if replacement, ok := reg.Replacement(rule.Package, compatTarget); ok {
			fmt.Printf("      → %s (%s confidence, %s effort)\n", replacement.To, replacement.Confidence, replacement.Effort)
		}
	}

	fmt.Println()
	fmt.Printf("%d rules, %d incompatible\n", len(rules), incompatible)

	return nil
}
