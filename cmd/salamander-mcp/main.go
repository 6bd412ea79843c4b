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

// Version information set at build time
var version = "dev"

var (
	transport  string
	httpAddr   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "salamander-mcp",
	Short: "Fire Salamander MCP Server",
	Long: `Fire Salamander MCP (Model Context Protocol) Server.

Exposes the SEO view-model mappers through the MCP protocol, enabling AI
assistants to map raw backend analysis payloads.

Tools:
  salamander_map_<domain> - Map an overview, technical, security, content
                            or backlinks payload
  salamander_domains      - List mappable domains

Resources:
  salamander://config      - Current configuration
  salamander://domains     - Registered domains
  salamander://thresholds  - Core Web Vitals thresholds

Examples:
  salamander-mcp                     # Start with stdio transport
  salamander-mcp --transport http    # Start HTTP server
  salamander-mcp --http-addr :9090   # HTTP on custom port`,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.Flags().StringVarP(&transport, "transport", "t", "", "Transport type: stdio, http (default: config)")
	rootCmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP server address (when using http transport)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
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

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	mcpCfg := cfg.GetMCPConfig()
	selected := transport
	if selected == "" {
		selected = mcpCfg.Transport
	}
	addr := httpAddr
	if addr == "" {
		addr = mcpCfg.Address
	}
	if selected != "stdio" && selected != "http" {
		return fmt.Errorf("unsupported transport: %s", selected)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Create MCP server
	registry := mappers.NewDefaultRegistry(cfg.MapperOptions(logger)...)
	server := mcp.NewServerWithRegistry(cfg, registry, version)

	// Start server with selected transport
	if selected == "http" {
		fmt.Fprintf(os.Stderr, "Starting Fire Salamander MCP server on %s\n", addr)
		return server.ServeHTTP(ctx, addr)
	}
	return server.ServeStdio(ctx)
}

func loadConfig() (*config.Config, error) {
	// Defaults apply when no config file is found
	return config.NewLoader().Load(configPath, nil)
}
