package config

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/domain/services"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/logging"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/mapping"
	"github.com/felixgeelhaar/firesalamander/pkg/pathutil"
)

// Config represents the complete Fire Salamander configuration.
type Config struct {
	Version string         `yaml:"version" json:"version"`
	Output  OutputConfig   `yaml:"output" json:"output"`
	Logging logging.Config `yaml:"logging" json:"logging"`
	Mapping MappingConfig  `yaml:"mapping" json:"mapping"`
	Metrics MetricsConfig  `yaml:"metrics" json:"metrics"`
	MCP     MCPConfig      `yaml:"mcp" json:"mcp"`
}

// OutputConfig defines output settings.
type OutputConfig struct {
	Format    string `yaml:"format" json:"format"`       // console, json
	Verbosity string `yaml:"verbosity" json:"verbosity"` // quiet, normal, verbose
	Color     bool   `yaml:"color" json:"color"`
	Pretty    bool   `yaml:"pretty" json:"pretty"`
}

// MappingConfig configures the mappers.
type MappingConfig struct {
	// Tool and Version are stamped into every view model's metadata.
	Tool    string `yaml:"tool" json:"tool"`
	Version string `yaml:"version" json:"version"`

	// Thresholds overrides Core Web Vitals boundaries keyed by metric
	// name (lcp, fid, inp, cls, ttfb, fcp, tbt, speed_index).
	Thresholds map[string]scoring.Threshold `yaml:"thresholds,omitempty" json:"thresholds,omitempty"`
}

// MetricsConfig defines Prometheus textfile export settings.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Textfile string `yaml:"textfile" json:"textfile"`
}

// MCPConfig defines MCP server settings for output limits.
type MCPConfig struct {
	MaxEntries       int    `yaml:"max_entries" json:"max_entries"`             // Max issues per tool response (0 = default)
	TruncateStrategy string `yaml:"truncate_strategy" json:"truncate_strategy"` // priority, affected, roi
	Transport        string `yaml:"transport" json:"transport"`                 // stdio, http
	Address          string `yaml:"address" json:"address"`                     // listen address for http
}

// MCP defaults.
const (
	DefaultMaxEntries = 50
	DefaultTransport  = "stdio"
	DefaultAddress    = "localhost:8080"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Output: OutputConfig{
			Format:    "console",
			Verbosity: "normal",
			Color:     true,
		},
		Logging: logging.Config{
			Level:       logging.DefaultLevel,
			OutputPaths: []string{"stderr"},
		},
		Mapping: MappingConfig{
			Tool:    seo.DefaultTool,
			Version: seo.DefaultVersion,
		},
		Metrics: MetricsConfig{
			Enabled:  false,
			Textfile: "salamander.prom",
		},
		MCP: MCPConfig{
			MaxEntries:       DefaultMaxEntries,
			TruncateStrategy: string(services.StrategyPriority),
			Transport:        DefaultTransport,
			Address:          DefaultAddress,
		},
	}
}

// ToPortsConfig converts Config to ports.Config for use in use cases.
func (c *Config) ToPortsConfig() ports.Config {
	return ports.Config{
		Version: c.Version,
		Output: ports.OutputConfig{
			Format:    c.GetOutputFormat(),
			Verbosity: c.GetVerbosity(),
			Color:     c.Output.Color,
			Pretty:    c.Output.Pretty,
		},
		Mapping: ports.MappingConfig{
			Tool:    c.Mapping.Tool,
			Version: c.Mapping.Version,
		},
	}
}

// GetOutputFormat returns the output format as a ports.OutputFormat.
func (c *Config) GetOutputFormat() ports.OutputFormat {
	switch c.Output.Format {
	case "json":
		return ports.OutputFormatJSON
	default:
		return ports.OutputFormatConsole
	}
}

// GetVerbosity returns the verbosity as a ports.Verbosity.
func (c *Config) GetVerbosity() ports.Verbosity {
	switch c.Output.Verbosity {
	case "quiet":
		return ports.VerbosityQuiet
	case "verbose":
		return ports.VerbosityVerbose
	default:
		return ports.VerbosityNormal
	}
}

// GetThresholds returns the configured Core Web Vitals thresholds merged
// over the defaults. Unknown metric names are ignored.
func (c *Config) GetThresholds() scoring.Thresholds {
	overrides := make(scoring.Thresholds, len(c.Mapping.Thresholds))
	for name, th := range c.Mapping.Thresholds {
		if m, ok := scoring.ParseMetricType(name); ok {
			overrides[m] = th
		}
	}
	return overrides.Merge()
}

// MapperOptions returns the mapper options described by the mapping
// section, with logger injected when non-nil.
func (c *Config) MapperOptions(logger logging.Logger) []mapping.Option {
	opts := []mapping.Option{
		mapping.WithTool(c.Mapping.Tool, c.Mapping.Version),
		mapping.WithThresholds(c.GetThresholds()),
	}
	if logger != nil {
		opts = append(opts, mapping.WithLogger(logger))
	}
	return opts
}

// GetMCPConfig returns the MCP configuration with defaults applied.
// Note: Use -1 to explicitly disable truncation.
func (c *Config) GetMCPConfig() MCPConfig {
	cfg := c.MCP
	// Negative values mean "disabled", 0 means "use default"
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = DefaultMaxEntries
	} else if cfg.MaxEntries < 0 {
		cfg.MaxEntries = 0
	}
	if cfg.TruncateStrategy == "" {
		cfg.TruncateStrategy = string(services.StrategyPriority)
	}
	if cfg.Transport == "" {
		cfg.Transport = DefaultTransport
	}
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	return cfg
}

// TruncationConfig returns the truncation settings for MCP tool output.
func (c *Config) TruncationConfig() services.TruncationConfig {
	mcp := c.GetMCPConfig()
	return services.TruncationConfig{
		MaxIssues: mcp.MaxEntries,
		Strategy:  services.ParseTruncateStrategy(mcp.TruncateStrategy),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() []error {
	var errs []error

	if c.Version == "" {
		errs = append(errs, &ValidationError{Field: "version", Message: "version is required"})
	}

	validFormats := map[string]bool{"console": true, "json": true}
	if c.Output.Format != "" && !validFormats[c.Output.Format] {
		errs = append(errs, &ValidationError{
			Field:   "output.format",
			Message: "must be one of: console, json",
		})
	}

	validVerbosity := map[string]bool{"quiet": true, "normal": true, "verbose": true}
	if c.Output.Verbosity != "" && !validVerbosity[c.Output.Verbosity] {
		errs = append(errs, &ValidationError{
			Field:   "output.verbosity",
			Message: "must be one of: quiet, normal, verbose",
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		errs = append(errs, &ValidationError{
			Field:   "logging.level",
			Message: "must be one of: debug, info, warn, error",
		})
	}

	errs = append(errs, c.validateThresholds()...)

	if c.Metrics.Enabled && !pathutil.IsPathSafe(c.Metrics.Textfile) {
		errs = append(errs, &ValidationError{
			Field:   "metrics.textfile",
			Message: "must be a safe file path when metrics are enabled",
		})
	}

	if c.MCP.MaxEntries < -1 {
		errs = append(errs, &ValidationError{
			Field:   "mcp.max_entries",
			Message: "must be -1 (unlimited), 0 (default) or positive",
		})
	}
	validStrategies := map[string]bool{
		string(services.StrategyPriority): true,
		string(services.StrategyAffected): true,
		string(services.StrategyROI):      true,
		"":                                true, // Empty is OK, defaults will be applied
	}
	if !validStrategies[c.MCP.TruncateStrategy] {
		errs = append(errs, &ValidationError{
			Field:   "mcp.truncate_strategy",
			Message: "must be one of: priority, affected, roi",
		})
	}
	validTransports := map[string]bool{"stdio": true, "http": true, "": true}
	if !validTransports[c.MCP.Transport] {
		errs = append(errs, &ValidationError{
			Field:   "mcp.transport",
			Message: "must be one of: stdio, http",
		})
	}

	return errs
}

// validateThresholds reports unknown metrics and inverted boundaries in
// a stable order.
func (c *Config) validateThresholds() []error {
	names := make([]string, 0, len(c.Mapping.Thresholds))
	for name := range c.Mapping.Thresholds {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		field := fmt.Sprintf("mapping.thresholds.%s", name)
		if _, ok := scoring.ParseMetricType(name); !ok {
			errs = append(errs, &ValidationError{Field: field, Message: "unknown metric"})
			continue
		}
		th := c.Mapping.Thresholds[name]
		if th.Good <= 0 || th.Poor <= th.Good {
			errs = append(errs, &ValidationError{Field: field, Message: "good must be positive and below poor"})
		}
	}
	return errs
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
