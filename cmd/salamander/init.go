package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/config"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers"
	"github.com/spf13/cobra"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize Fire Salamander configuration",
	Long: `Initialize Fire Salamander configuration for your project.

This command creates a .salamander directory with config.yaml holding
the default output, logging, mapping, metrics and MCP settings.

Examples:
  salamander init              # Initialize in current directory
  salamander init --force      # Overwrite existing configuration`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing configuration")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if noColor {
		green = fmt.Sprint
		yellow = fmt.Sprint
		bold = fmt.Sprint
	}

	out := cmd.OutOrStdout()
	configPath := filepath.Join(config.DefaultConfigDir, config.DefaultConfigFile)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		if !initForce {
			return fmt.Errorf("configuration already exists at %s\nUse --force to overwrite", configPath)
		}
		fmt.Fprintf(out, "%s Overwriting existing configuration\n", yellow("!"))
	}

	// Generate default config
	if err := config.GenerateDefaultConfig(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(out, "%s Created %s\n", green("✓"), configPath)

	fmt.Fprintf(out, "\n%s\n", bold("Mappers:"))
	for _, d := range mappers.NewDefaultRegistry().Domains() {
		fmt.Fprintf(out, "  %s %s\n", green("✓"), d)
	}

	// Show next steps
	fmt.Fprintf(out, "\n%s\n", bold("Next Steps:"))
	fmt.Fprintln(out, "  1. Review and customize .salamander/config.yaml")
	fmt.Fprintln(out, "  2. Run 'salamander map <domain> <payload.json>' to map a backend payload")
	fmt.Fprintln(out, "  3. Run 'salamander mcp serve' to expose the mappers to AI assistants")

	return nil
}
