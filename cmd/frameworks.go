package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/devarispbrown/stackshift/internal/registry"
)

var (
	frameworksRulesPath string
	frameworksCategory  string
	frameworksDetails   bool
)

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List frameworks known to the detection ruleset",
	Long: `List every framework the ruleset can detect, grouped by category.
The ruleset can be replaced with an external YAML file for easy maintenance.`,
	Example: `  # List all frameworks
  stackshift frameworks

  # List frameworks in one category
  stackshift frameworks --category frontend

  # Show detection signals per framework
  stackshift frameworks --details

  # Use a custom ruleset
  stackshift frameworks --rules ./my-rules.yaml`,
	RunE: runFrameworks,
}

func init() {
	rootCmd.AddCommand(frameworksCmd)

	frameworksCmd.Flags().StringVar(&frameworksRulesPath, "rules", "", "Path to custom ruleset YAML file")
	frameworksCmd.Flags().StringVar(&frameworksCategory, "category", "", "Filter by category (frontend, backend-node, backend-python, backend-other)")
	frameworksCmd.Flags().BoolVar(&frameworksDetails, "details", false, "Show detection signals per framework")
}

func runFrameworks(cmd *cobra.Command, args []string) error {
	reg, err := registry.New(frameworksRulesPath)
	if err != nil {
		return fmt.Errorf("failed to load ruleset: %w", err)
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7D56F4"))

	categoryStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#50FA7B"))

	ruleset := reg.Ruleset()
	fmt.Println(headerStyle.Render("📚 Framework Detection Registry"))
	fmt.Printf("Version: %s | Updated: %s\n", ruleset.Version, ruleset.Updated)
	fmt.Printf("Description: %s\n", ruleset.Description)
	fmt.Println()

	categories := reg.Categories()
	if frameworksCategory != "" {
		if _, exists := categories[frameworksCategory]; !exists {
			available := make([]string, 0, len(categories))
			for key := range categories {
				available = append(available, key)
			}
			sort.Strings(available)
			return fmt.Errorf("category '%s' not found\n\nAvailable categories: %s",
				frameworksCategory, strings.Join(available, ", "))
		}

		frameworks := reg.FrameworksByCategory(frameworksCategory)
		if len(frameworks) == 0 {
			return fmt.Errorf("no frameworks found in category: %s", frameworksCategory)
		}

		cat := categories[frameworksCategory]
		fmt.Println(categoryStyle.Render(fmt.Sprintf("📂 %s", cat.Name)))
		fmt.Printf("   %s\n\n", cat.Description)
		displayFrameworks(frameworks, frameworksDetails)
		return nil
	}

	keys := make([]string, 0, len(categories))
	for key := range categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		frameworks := reg.FrameworksByCategory(key)
		if len(frameworks) == 0 {
			continue
		}

		cat := categories[key]
		fmt.Println(categoryStyle.Render(fmt.Sprintf("📂 %s (%d frameworks)", cat.Name, len(frameworks))))
		fmt.Printf("   %s\n", cat.Description)
		fmt.Println()

		displayFrameworks(frameworks, frameworksDetails)
		fmt.Println()
	}

	fmt.Printf("📊 Summary: %d frameworks across %d categories\n", len(reg.Frameworks()), len(categories))

	return nil
}

func displayFrameworks(frameworks []registry.FrameworkPattern, showDetails bool) {
	for _, fw := range frameworks {
		fmt.Printf("  • %s (%s)\n", fw.Framework, fw.Language)

		if showDetails {
			if len(fw.Files) > 0 {
				fmt.Printf("     Files: %s\n", strings.Join(fw.Files, ", "))
			}
			if len(fw.Dependencies) > 0 {
				fmt.Printf("     Dependencies: %s\n", strings.Join(fw.Dependencies, ", "))
			}
			if len(fw.Variants) > 0 {
				names := make([]string, 0, len(fw.Variants))
				for _, variant := range fw.Variants {
					names = append(names, variant.Name)
				}
				fmt.Printf("     Variants: %s\n", strings.Join(names, ", "))
			}
			if fw.Docs != "" {
				fmt.Printf("     Docs: %s\n", fw.Docs)
			}
			fmt.Println()
		}
	}
}
