// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingInputCSV   = errors.New("paths.input_csv is required")
	ErrMissingOutputDir  = errors.New("paths.output_dir is required")
	ErrInvalidLogLevel   = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat  = errors.New("logging.format must be 'json' or 'console'")
	ErrInvalidSampleRows = errors.New("masking.sample_rows must be at least 1")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
	Masking MaskingConfig `yaml:"masking"`
}

// PathsConfig locates the input extract and the output directory.
type PathsConfig struct {
	InputCSV  string `yaml:"input_csv"`
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// MaskingConfig controls the before/after masking sample report.
type MaskingConfig struct {
	SampleRows int `yaml:"sample_rows"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{
		Paths: PathsConfig{
			InputCSV:  "data/customers_raw.csv",
			OutputDir: "output",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Masking: MaskingConfig{
			SampleRows: 2,
		},
	}
	cfg.applyEnv()
	return cfg
}

// Load reads configuration from a YAML file, applies environment overrides,
// and validates the result. Callers are expected to fall back to Default()
// when the file is missing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Paths.InputCSV == "" {
		return ErrMissingInputCSV
	}

	if c.Paths.OutputDir == "" {
		return ErrMissingOutputDir
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return ErrInvalidLogFormat
	}

	if c.Masking.SampleRows < 1 {
		return ErrInvalidSampleRows
	}

	return nil
}

// applyEnv overlays environment variables on top of file/default values.
func (c *Config) applyEnv() {
	c.Paths.InputCSV = getEnv("PIPELINE_INPUT_CSV", c.Paths.InputCSV)
	c.Paths.OutputDir = getEnv("PIPELINE_OUTPUT_DIR", c.Paths.OutputDir)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
	c.Logging.File = getEnv("LOG_FILE", c.Logging.File)
	c.Masking.SampleRows = getEnvAsInt("MASK_SAMPLE_ROWS", c.Masking.SampleRows)
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
