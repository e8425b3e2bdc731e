package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "tabstat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Display   DisplayConfig   `yaml:"display" envconfig:"DISPLAY"`
	Summary   SummaryConfig   `yaml:"summary" envconfig:"SUMMARY"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// InputConfig describes the delimited file that is loaded at startup
type InputConfig struct {
	Path      string   `yaml:"path" split_words:"true" validate:"required"`
	Delimiter string   `yaml:"delimiter" split_words:"true" validate:"required"`
	NAValues  []string `yaml:"na_values" split_words:"true"`
}

// DisplayConfig controls console rendering. Zero limits mean unlimited.
type DisplayConfig struct {
	MaxRows        int `yaml:"max_rows" split_words:"true" validate:"min=0"`
	MaxColumns     int `yaml:"max_columns" split_words:"true" validate:"min=0"`
	FloatPrecision int `yaml:"float_precision" split_words:"true" validate:"min=1,max=17"`
}

// SummaryConfig toggles the describe-style summary
type SummaryConfig struct {
	Enabled bool `yaml:"enabled" split_words:"true"`
}

// ExportConfig contains optional workbook export settings
type ExportConfig struct {
	WorkbookPath string `yaml:"workbook_path" split_words:"true" validate:"omitempty,endswith=.xlsx"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" split_words:"true" validate:"oneof=json text"`
	Output   string `yaml:"output" split_words:"true" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true" validate:"required_unless=Output console"`
}

// TelemetryConfig contains tracing and metrics output settings
type TelemetryConfig struct {
	TracingEnabled  bool   `yaml:"tracing_enabled" split_words:"true"`
	TraceFile       string `yaml:"trace_file" split_words:"true"`
	MetricsTextfile string `yaml:"metrics_textfile" split_words:"true"`
}

// Load builds the configuration from defaults, an optional YAML file and
// TABSTAT_* environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", configFile)
		}
	}

	// Struct fields carry no default tags, so only variables that are set
	// override what the file and defaults provided.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays YAML file contents onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct constraints and the delimiter.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	if _, err := c.Input.Rune(); err != nil {
		return err
	}
	return nil
}

// Rune resolves the configured delimiter to a single character.
// The spellings "tab" and `\t` are accepted for the tab character.
func (i InputConfig) Rune() (rune, error) {
	switch i.Delimiter {
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(i.Delimiter)
	if r == utf8.RuneError || size != len(i.Delimiter) {
		return 0, apperrors.NewConfigError(
			fmt.Sprintf("delimiter %q must be a single character", i.Delimiter), nil)
	}
	return r, nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG_FILE"); explicit != "" {
		return explicit
	}

	for _, location := range DefaultConfigLocations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:      DefaultInputPath,
			Delimiter: DefaultDelimiter,
		},
		Display: DisplayConfig{
			MaxRows:        0,
			MaxColumns:     0,
			FloatPrecision: DefaultFloatPrecision,
		},
		Summary: SummaryConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
	}
}
