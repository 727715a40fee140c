package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data/customers_raw.csv", cfg.Paths.InputCSV)
	assert.Equal(t, "output", cfg.Paths.OutputDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 2, cfg.Masking.SampleRows)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
paths:
  input_csv: /data/in.csv
  output_dir: /data/out
logging:
  level: debug
  format: json
masking:
  sample_rows: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/in.csv", cfg.Paths.InputCSV)
	assert.Equal(t, "/data/out", cfg.Paths.OutputDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 5, cfg.Masking.SampleRows)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
paths:
  input_csv: extract.csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "extract.csv", cfg.Paths.InputCSV)
	assert.Equal(t, "output", cfg.Paths.OutputDir)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "paths: [not a mapping")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PIPELINE_INPUT_CSV", "/env/in.csv")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("MASK_SAMPLE_ROWS", "7")

	cfg := Default()

	assert.Equal(t, "/env/in.csv", cfg.Paths.InputCSV)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 7, cfg.Masking.SampleRows)
}

func TestEnvOverrideIgnoresBadInt(t *testing.T) {
	t.Setenv("MASK_SAMPLE_ROWS", "lots")

	cfg := Default()
	assert.Equal(t, 2, cfg.Masking.SampleRows)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"missing input", func(c *Config) { c.Paths.InputCSV = "" }, ErrMissingInputCSV},
		{"missing output dir", func(c *Config) { c.Paths.OutputDir = "" }, ErrMissingOutputDir},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
		{"bad sample rows", func(c *Config) { c.Masking.SampleRows = 0 }, ErrInvalidSampleRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}
