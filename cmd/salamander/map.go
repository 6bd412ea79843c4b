package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	"github.com/felixgeelhaar/firesalamander/internal/application/usecases"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/config"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/logging"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/metrics"
	"github.com/felixgeelhaar/firesalamander/pkg/exitcode"
	"github.com/felixgeelhaar/firesalamander/pkg/pathutil"
	"github.com/spf13/cobra"
)

var (
	summaryOnly bool
	metricsFile string
)

// mapCmd maps one backend payload
var mapCmd = &cobra.Command{
	Use:   "map <domain> [file]",
	Short: "Map a backend analysis payload into its view model",
	Long: `Map a raw SEO backend payload into the dashboard view model.

Domains: overview, technical, security, content, backlinks.

The payload is read from the file argument, or from stdin when the file
is omitted or "-". The command exits with 1 when the payload could not
be mapped and the "data unavailable" view model was returned.

Examples:
  salamander map technical crawl.json
  salamander map security - < security.json
  salamander map content pages.json --json --pretty -o content.json
  salamander map overview report.json --summary
  salamander map backlinks links.json --metrics-file salamander.prom`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMap,
}

func init() {
	mapCmd.Flags().BoolVar(&summaryOnly, "summary", false, "show summary only")
	mapCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")

	rootCmd.AddCommand(mapCmd)
}

// parseDomain resolves a domain argument case-insensitively.
func parseDomain(arg string) (seo.Domain, error) {
	d := seo.Domain(strings.ToLower(strings.TrimSpace(arg)))
	if !d.IsValid() {
		names := make([]string, 0, len(seo.AllDomains()))
		for _, known := range seo.AllDomains() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("unknown domain %q (expected one of: %s)", arg, strings.Join(names, ", "))
	}
	return d, nil
}

// readPayload reads the payload file, or stdin for "" and "-".
func readPayload(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return pathutil.ReadLimited(cmd.InOrStdin(), pathutil.MaxPayloadBytes)
	}
	data, err := pathutil.ReadPayload(path, pathutil.MaxPayloadBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return data, nil
}

// mapOverrides extends the global overrides with the map flags.
func mapOverrides() *config.CLIOverrides {
	overrides := cliOverrides()
	if metricsFile != "" {
		overrides.MetricsFile = &metricsFile
	}
	return overrides
}

// mapSession holds what a mapping command needs once config is loaded.
type mapSession struct {
	cfg      *config.Config
	logger   logging.Logger
	registry *mappers.Registry
	recorder *metrics.Recorder
}

func newMapSession() (*mapSession, error) {
	cfg, err := loadConfig(mapOverrides())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	s := &mapSession{
		cfg:      cfg,
		logger:   logger,
		registry: mappers.NewDefaultRegistry(cfg.MapperOptions(logger)...),
	}
	if cfg.Metrics.Enabled {
		s.recorder = metrics.NewRecorder()
	}
	return s, nil
}

// metricsRecorder returns the recorder as a port, or nil when disabled.
func (s *mapSession) metricsRecorder() ports.MetricsRecorder {
	if s.recorder == nil {
		return nil
	}
	return s.recorder
}

// finish writes the metrics textfile and flushes the logger.
func (s *mapSession) finish() error {
	defer func() { _ = s.logger.Sync() }()

	if s.recorder == nil {
		return nil
	}
	if err := s.recorder.WriteTextfile(s.cfg.Metrics.Textfile); err != nil {
		return err
	}
	s.logger.Debug("metrics written", logging.String("path", s.cfg.Metrics.Textfile))
	return nil
}

func runMap(cmd *cobra.Command, args []string) error {
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

	domain, err := parseDomain(args[0])
	if err != nil {
		return err
	}

	var path string
	if len(args) > 1 {
		path = args[1]
	}
	payload, err := readPayload(cmd, path)
	if err != nil {
		return err
	}

	session, err := newMapSession()
	if err != nil {
		return err
	}

	writer, closeWriter, err := createWriter(cmd, session.cfg)
	if err != nil {
		return fmt.Errorf("failed to create writer: %w", err)
	}
	defer func() { _ = closeWriter() }()

	// The use case writes full reports itself; summaries are written here.
	var reportWriter ports.ReportWriter
	if !summaryOnly {
		reportWriter = writer
	}
	uc := usecases.NewMapAnalysisUseCase(session.registry, session.metricsRecorder(), reportWriter)

	output, err := uc.Execute(ctx, usecases.MapAnalysisInput{
		Domain:  domain,
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("mapping failed: %w", err)
	}

	if summaryOnly {
		if err := writer.WriteSummary(output.Summary); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	if err := session.finish(); err != nil {
		return err
	}

	if code := exitcode.FromFallback(output.Result.Fallback); code != exitcode.Success {
		return &exitError{code: code}
	}
	return nil
}
