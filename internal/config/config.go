// =============================================================================
// Intacct Functions - Configuration Module
// =============================================================================
//
// This module loads the main application configuration for the intacct-fn
// CLI. Function definitions are not configuration; they are loaded by the
// definitions package.
//
// CONFIGURATION FILE (intacct.yaml):
//
//   output_dir: ./output
//   output_file_format: "{original}_{timestamp}.xml"
//   indent: "  "
//   omit_xml_declaration: false
//   log_level: info
//   max_concurrency: 4
//
// Every key is optional. Unset keys take the defaults below.
//
// =============================================================================

package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "intacct.yaml"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// OutputDir is where generated XML documents are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// OutputFileFormat names generated files.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	//   {original}  - Definitions file name without extension
	//   {slug}      - {original} as a lower-case URL slug
	// Default: "{original}_{uuid}.xml"
	OutputFileFormat string `yaml:"output_file_format"`

	// Indent is the indentation for one XML nesting level.
	// Empty writes compact single-line XML.
	// Default: "  "
	Indent *string `yaml:"indent"`

	// OmitXMLDeclaration drops the <?xml ...?> line from generated files.
	OmitXMLDeclaration bool `yaml:"omit_xml_declaration"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "trace", "debug", "info", "warn", "error", "disabled"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// MaxConcurrency is the maximum number of definition files built at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`
}

// IndentString returns the configured indentation.
func (c *MainConfig) IndentString() string {
	if c.Indent == nil {
		return ""
	}
	return *c.Indent
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// DefaultMainConfig returns the configuration used when no file exists.
func DefaultMainConfig() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the main configuration from a YAML file, applies
// defaults and validates the result.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &config, nil
}

// LoadOrDefault loads configPath. A missing file is only tolerated when
// configPath is the default location, in which case defaults are returned.
func LoadOrDefault(configPath string) (*MainConfig, error) {
	if configPath == DefaultPath {
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			return DefaultMainConfig(), nil
		}
	}
	return LoadMainConfig(configPath)
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.OutputFileFormat == "" {
		config.OutputFileFormat = "{original}_{uuid}.xml"
	}
	if config.Indent == nil {
		indent := "  "
		config.Indent = &indent
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	if _, err := zerolog.ParseLevel(config.LogLevel); err != nil {
		return errors.Newf("log_level %q is not a valid level", config.LogLevel)
	}

	if config.MaxConcurrency < 1 {
		return errors.Newf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}

	for _, r := range config.IndentString() {
		if r != ' ' && r != '\t' {
			return errors.Newf("indent may only contain spaces and tabs, got %q", config.IndentString())
		}
	}

	return nil
}
