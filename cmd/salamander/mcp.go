package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/config"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/logging"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mcp"
	"github.com/spf13/cobra"
)

var (
	mcpTransport  string
	mcpHTTPAddr   string
	mcpMaxEntries int
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server for AI assistant integration",
	Long: `Fire Salamander MCP (Model Context Protocol) Server.

Exposes the view-model mappers through the MCP protocol, enabling AI
assistants to turn raw SEO backend payloads into dashboard view models.

Tools:
  salamander_map_overview   - Map an overview analysis
  salamander_map_technical  - Map a technical crawl analysis
  salamander_map_security   - Map a security analysis
  salamander_map_content    - Map a content analysis
  salamander_map_backlinks  - Map a backlink profile
  salamander_domains        - List mappable domains

Resources:
  salamander://config      - Current configuration
  salamander://domains     - Registered domains
  salamander://thresholds  - Core Web Vitals thresholds`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Fire Salamander MCP server.

Transport and address default to the mcp section of the config file.

Examples:
  salamander mcp serve                     # Start with stdio transport
  salamander mcp serve --transport http    # Start HTTP server
  salamander mcp serve --http-addr :9090   # HTTP on custom port
  salamander mcp serve --max-entries -1    # Never truncate issue lists`,
	Args: cobra.NoArgs,
	RunE: runMCPServer,
}

func init() {
	mcpServeCmd.Flags().StringVarP(&mcpTransport, "transport", "t", "", "Transport type: stdio, http")
	mcpServeCmd.Flags().StringVar(&mcpHTTPAddr, "http-addr", "", "HTTP server address (when using http transport)")
	mcpServeCmd.Flags().IntVar(&mcpMaxEntries, "max-entries", 0, "max issues per tool response (-1 = unlimited, 0 = config)")

	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	overrides := cliOverrides()
	if mcpMaxEntries != 0 {
		overrides.MaxEntries = &mcpMaxEntries
	}

	// Load configuration
	cfg, err := loadConfig(overrides)
	if err != nil {
		return err
	}

	transport, addr, err := resolveTransport(cfg, mcpTransport, mcpHTTPAddr)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	registry := mappers.NewDefaultRegistry(cfg.MapperOptions(logger)...)
	server := mcp.NewServerWithRegistry(cfg, registry, version)

	logger.Info("starting MCP server",
		logging.String("transport", transport),
		logging.Int("domains", registry.Count()),
	)

	// Start server with selected transport
	if transport == "http" {
		fmt.Fprintf(os.Stderr, "Starting Fire Salamander MCP server on %s\n", addr)
		return server.ServeHTTP(ctx, addr)
	}
	return server.ServeStdio(ctx)
}

// resolveTransport picks the flag values over the config ones.
func resolveTransport(cfg *config.Config, transport, addr string) (string, string, error) {
	mcpCfg := cfg.GetMCPConfig()
	if transport == "" {
		transport = mcpCfg.Transport
	}
	if addr == "" {
		addr = mcpCfg.Address
	}

	switch transport {
	case "stdio", "http":
		return transport, addr, nil
	default:
		return "", "", fmt.Errorf("unsupported transport: %s", transport)
	}
}
