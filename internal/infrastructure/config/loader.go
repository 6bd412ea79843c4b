package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/firesalamander/pkg/pathutil"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the default directory for salamander config.
	DefaultConfigDir = ".salamander"

	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"

	// maxConfigBytes bounds a config file read from disk.
	maxConfigBytes = 1 << 20
)

const generatedHeader = "# Fire Salamander configuration.\n# See `salamander init --help` for the available sections.\n"

// Loader resolves the config file and applies CLI overrides.
type Loader struct {
	searchPaths []string
}

// NewLoader creates a loader that searches the given paths in order. With
// no paths it searches .salamander/config.yaml, salamander.yaml and
// .salamander.yaml.
func NewLoader(searchPaths ...string) *Loader {
	if len(searchPaths) == 0 {
		searchPaths = []string{
			filepath.Join(DefaultConfigDir, DefaultConfigFile),
			"salamander.yaml",
			".salamander.yaml",
		}
	}
	return &Loader{searchPaths: searchPaths}
}

// Load reads the config at path, or the first search path that exists
// when path is empty, then applies overrides. Defaults are returned when
// no file is found.
func (l *Loader) Load(path string, overrides *CLIOverrides) (*Config, error) {
	if path == "" {
		path, _ = l.locate()
	}

	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = readFile(path); err != nil {
			return nil, err
		}
	}

	if overrides == nil {
		return cfg, nil
	}
	// Flags can carry values the file would have rejected.
	overrides.apply(cfg)
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigErrors{Errors: errs}
	}
	return cfg, nil
}

// locate returns the first search path naming a regular file.
func (l *Loader) locate() (string, bool) {
	for _, path := range l.searchPaths {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

func readFile(path string) (*Config, error) {
	if _, err := pathutil.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}
	data, err := pathutil.ReadPayload(path, maxConfigBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigErrors{Errors: errs}
	}
	return cfg, nil
}

// CLIOverrides holds the flags that were set on the command line. Nil
// fields leave the config untouched.
type CLIOverrides struct {
	Format      *string
	Verbosity   *string
	NoColor     *bool
	Pretty      *bool
	LogLevel    *string
	MetricsFile *string
	MaxEntries  *int
}

func (o *CLIOverrides) apply(cfg *Config) {
	if o.Format != nil {
		cfg.Output.Format = *o.Format
	}
	if o.Verbosity != nil {
		cfg.Output.Verbosity = *o.Verbosity
	}
	if o.NoColor != nil && *o.NoColor {
		cfg.Output.Color = false
	}
	if o.Pretty != nil {
		cfg.Output.Pretty = *o.Pretty
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
	// A metrics file turns metrics on.
	if o.MetricsFile != nil && *o.MetricsFile != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Textfile = *o.MetricsFile
	}
	if o.MaxEntries != nil {
		cfg.MCP.MaxEntries = *o.MaxEntries
	}
}

// GenerateDefaultConfig writes the default config to path, creating its
// directory.
func GenerateDefaultConfig(path string) error {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(DefaultConfig()); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ConfigErrors wraps multiple configuration errors.
type ConfigErrors struct {
	Errors []error
}

func (e *ConfigErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no configuration errors"
	case 1:
		return "configuration error: " + e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d configuration errors:", len(e.Errors))
	for _, err := range e.Errors {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Unwrap returns the underlying errors.
func (e *ConfigErrors) Unwrap() []error {
	return e.Errors
}
