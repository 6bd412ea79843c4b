package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/config"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/logging"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/writers"
	"github.com/felixgeelhaar/firesalamander/pkg/exitcode"
	"github.com/spf13/cobra"
)

// Version information set at build time
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// Global flags
var (
	cfgFile    string
	outputFlag string
	verbosity  string
	noColor    bool
	jsonOutput bool
	prettyJSON bool
	logLevel   string
)

// rootCmd is the base command for salamander
var rootCmd = &cobra.Command{
	Use:   "salamander",
	Short: "Fire Salamander - SEO analysis view-model mapper",
	Long: `Fire Salamander turns raw SEO backend analysis payloads into the
view models rendered by the dashboard.

Malformed or partial input still produces a complete view model. A payload
that cannot be read at all yields the "data unavailable" placeholder.

Examples:
  salamander map technical crawl.json      # Map a technical analysis
  salamander map security < security.json  # Read the payload from stdin
  salamander map overview report.json --json --pretty
  salamander batch overview=o.json backlinks=b.json
  salamander domains                       # List mappable domains`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Configure colors
		if noColor {
			color.NoColor = true
		}
		return nil
	},
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Fire Salamander %s\n", version)
		fmt.Fprintf(out, "  Commit:  %s\n", commit)
		fmt.Fprintf(out, "  Built:   %s\n", buildDate)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: .salamander/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringVarP(&verbosity, "verbosity", "v", "", "verbosity level (quiet, normal, verbose)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&prettyJSON, "pretty", false, "indent JSON output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// Add version command
	rootCmd.AddCommand(versionCmd)
}

// exitError carries a non-zero exit code without an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return exitcode.Description(e.code)
}

// Execute runs the root command
func Execute() int {
	return execute(rootCmd, os.Stderr)
}

func execute(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	if err == nil {
		return exitcode.Success
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintln(stderr, err)
	return exitcode.Error
}

// cliOverrides collects the global flags that were actually set.
func cliOverrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{}
	if jsonOutput {
		format := "json"
		overrides.Format = &format
	}
	if verbosity != "" {
		overrides.Verbosity = &verbosity
	}
	if noColor {
		overrides.NoColor = &noColor
	}
	if prettyJSON {
		overrides.Pretty = &prettyJSON
	}
	if logLevel != "" {
		overrides.LogLevel = &logLevel
	}
	return overrides
}

// loadConfig loads the configuration from file and CLI overrides
func loadConfig(overrides *config.CLIOverrides) (*config.Config, error) {
	cfg, err := config.NewLoader().Load(cfgFile, overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the structured logger described by the config.
func newLogger(cfg *config.Config) (logging.Logger, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// createWriter creates the appropriate writer based on config. The
// returned close function releases an output file, if any.
func createWriter(cmd *cobra.Command, cfg *config.Config) (ports.ReportWriter, func() error, error) {
	factory := writers.NewFactory()

	outputConfig := ports.OutputConfig{
		Color:     cfg.Output.Color && !noColor,
		Verbosity: cfg.GetVerbosity(),
		Pretty:    cfg.Output.Pretty,
	}

	format := cfg.GetOutputFormat()
	noop := func() error { return nil }

	if outputFlag != "" {
		w, err := factory.CreateToFile(format, outputFlag, outputConfig)
		if err != nil {
			return nil, nil, err
		}
		if closer, ok := w.(io.Closer); ok {
			return w, closer.Close, nil
		}
		return w, noop, nil
	}

	if format == ports.OutputFormatJSON {
		return factory.CreateJSON(cmd.OutOrStdout(), outputConfig.Pretty), noop, nil
	}

	return writers.NewConsoleWriter(
		writers.WithOutput(cmd.OutOrStdout()),
		writers.WithErrorOutput(cmd.ErrOrStderr()),
		writers.WithColor(outputConfig.Color),
		writers.WithVerbosity(outputConfig.Verbosity),
	), noop, nil
}
