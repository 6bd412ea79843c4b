package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	"github.com/felixgeelhaar/firesalamander/internal/application/usecases"
	"github.com/felixgeelhaar/firesalamander/pkg/exitcode"
	"github.com/spf13/cobra"
)

var batchWorkers int

// batchCmd maps several payloads in one run
var batchCmd = &cobra.Command{
	Use:   "batch <domain=file>...",
	Short: "Map several backend payloads in one run",
	Long: `Map several backend payloads concurrently and write the view models in
argument order.

Each argument pairs a domain with a payload file. The command exits with 1
when any payload fell back to the "data unavailable" view model and with 2
when any payload could not be read or mapped at all.

Examples:
  salamander batch overview=report.json technical=crawl.json
  salamander batch security=sec.json backlinks=links.json --json --workers 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&summaryOnly, "summary", false, "show summaries only")
	batchCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "maximum concurrent mappings")

	rootCmd.AddCommand(batchCmd)
}

// parseBatchArg splits a domain=file argument.
func parseBatchArg(cmd *cobra.Command, arg string) (usecases.MapAnalysisInput, error) {
	name, path, ok := strings.Cut(arg, "=")
	if !ok || path == "" {
		return usecases.MapAnalysisInput{}, fmt.Errorf("invalid argument %q (expected domain=file)", arg)
	}
	domain, err := parseDomain(name)
	if err != nil {
		return usecases.MapAnalysisInput{}, err
	}
	payload, err := readPayload(cmd, path)
	if err != nil {
		return usecases.MapAnalysisInput{}, fmt.Errorf("%s: %w", arg, err)
	}
	return usecases.MapAnalysisInput{Domain: domain, Payload: payload}, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	items := make([]usecases.MapAnalysisInput, 0, len(args))
	for _, arg := range args {
		item, err := parseBatchArg(cmd, arg)
		if err != nil {
			return err
		}
		items = append(items, item)
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

	var reportWriter ports.ReportWriter
	if !summaryOnly {
		reportWriter = writer
	}
	uc := usecases.NewMapAnalysisUseCase(session.registry, session.metricsRecorder(), reportWriter)

	output, err := uc.ExecuteBatch(context.Background(), usecases.MapBatchInput{
		Items:      items,
		Parallel:   true,
		MaxWorkers: batchWorkers,
	})
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	failed := make(map[int]bool, len(output.Errors))
	for _, itemErr := range output.Errors {
		failed[itemErr.Index] = true
		_ = writer.WriteError(fmt.Errorf("%s: %w", itemErr.Domain, itemErr.Error))
	}

	fallback := false
	for i, out := range output.Outputs {
		if failed[i] {
			continue
		}
		fallback = fallback || out.Result.Fallback
		if summaryOnly {
			if err := writer.WriteSummary(out.Summary); err != nil {
				return fmt.Errorf("failed to write summary: %w", err)
			}
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	if err := session.finish(); err != nil {
		return err
	}

	if len(output.Errors) > 0 {
		return &exitError{code: exitcode.Error}
	}
	if code := exitcode.FromFallback(fallback); code != exitcode.Success {
		return &exitError{code: code}
	}
	return nil
}
