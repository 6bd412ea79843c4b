package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mcp"
	"github.com/spf13/cobra"
)

// domainsCmd lists the mappable analysis domains
var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the analysis domains that can be mapped",
	Long: `List the analysis domains with a registered mapper and the MCP tool
that maps each.

Examples:
  salamander domains
  salamander domains --json`,
	Args: cobra.NoArgs,
	RunE: runDomains,
}

func init() {
	rootCmd.AddCommand(domainsCmd)
}

// domainEntry is one row of the domains listing.
type domainEntry struct {
	Domain string `json:"domain"`
	Tool   string `json:"tool"`
}

func runDomains(cmd *cobra.Command, args []string) error {
	registry := mappers.NewDefaultRegistry()

	entries := make([]domainEntry, 0, registry.Count())
	for _, d := range registry.Domains() {
		entries = append(entries, domainEntry{Domain: string(d), Tool: mcp.ToolPrefix + string(d)})
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		if prettyJSON {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(entries)
	}

	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	if noColor {
		bold = fmt.Sprint
		cyan = fmt.Sprint
	}

	fmt.Fprintln(out, bold("Domains:"))
	for _, e := range entries {
		fmt.Fprintf(out, "  %-10s %s\n", e.Domain, cyan(e.Tool))
	}
	return nil
}
