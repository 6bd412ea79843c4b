package ports

// Config represents the complete application configuration.
type Config struct {
	Version string
	Output  OutputConfig
	Mapping MappingConfig
}

// OutputConfig configures output format and behavior.
type OutputConfig struct {
	Format    OutputFormat
	Verbosity Verbosity
	Color     bool
	Pretty    bool
}

// MappingConfig configures the orchestrators.
type MappingConfig struct {
	Tool    string
	Version string
}

// OutputFormat specifies the output format.
type OutputFormat string

// Available output formats.
const (
	OutputFormatConsole OutputFormat = "console"
	OutputFormatJSON    OutputFormat = "json"
)

// Verbosity controls output detail level.
type Verbosity string

// Available verbosity levels.
const (
	VerbosityQuiet   Verbosity = "quiet"
	VerbosityNormal  Verbosity = "normal"
	VerbosityVerbose Verbosity = "verbose"
)

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Version: "1",
		Output: OutputConfig{
			Format:    OutputFormatConsole,
			Verbosity: VerbosityNormal,
			Color:     true,
		},
		Mapping: MappingConfig{
			Tool:    "Fire Salamander",
			Version: "1.0.0",
		},
	}
}

// ConfigOverrides allows CLI flags to override config file values.
type ConfigOverrides struct {
	OutputFormat *OutputFormat
	Verbosity    *Verbosity
	NoColor      *bool
	Pretty       *bool
}

// Apply merges overrides into a config.
func (o ConfigOverrides) Apply(cfg Config) Config {
	result := cfg

	if o.OutputFormat != nil {
		result.Output.Format = *o.OutputFormat
	}
	if o.Verbosity != nil {
		result.Output.Verbosity = *o.Verbosity
	}
	if o.NoColor != nil && *o.NoColor {
		result.Output.Color = false
	}
	if o.Pretty != nil {
		result.Output.Pretty = *o.Pretty
	}

	return result
}
