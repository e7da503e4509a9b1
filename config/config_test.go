package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Isgd: IsgdConfig{
			Format:  "simple",
			Timeout: 30 * time.Second,
			Method:  "GET",
		},
		CLI: CLIConfig{Concurrency: 4},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "defaults",
			modify: func(*Config) {},
		},
		{
			name:   "json format and post",
			modify: func(c *Config) { c.Isgd.Format = "json"; c.Isgd.Method = "post" },
		},
		{
			name:    "invalid format",
			modify:  func(c *Config) { c.Isgd.Format = "yaml" },
			wantErr: true,
			errMsg:  "invalid isgd.format: yaml",
		},
		{
			name:    "invalid method",
			modify:  func(c *Config) { c.Isgd.Method = "PUT" },
			wantErr: true,
			errMsg:  "invalid isgd.method",
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Isgd.Timeout = 0 },
			wantErr: true,
			errMsg:  "invalid isgd.timeout",
		},
		{
			name:    "base url without scheme",
			modify:  func(c *Config) { c.Isgd.BaseURL = "localhost:8080" },
			wantErr: true,
			errMsg:  "invalid isgd.base_url",
		},
		{
			name:    "zero concurrency",
			modify:  func(c *Config) { c.CLI.Concurrency = 0 },
			wantErr: true,
			errMsg:  "invalid cli.concurrency",
		},
		{
			name:    "invalid logging level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
			errMsg:  "invalid logging level",
		},
		{
			name:    "invalid logging format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
			errMsg:  "invalid logging format",
		},
		{
			name:    "tracing without endpoint",
			modify:  func(c *Config) { c.Tracing.Enabled = true },
			wantErr: true,
			errMsg:  "tracing.endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := validate(cfg)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `isgd:
  format: json
  vgd: true
  timeout: 5s
cli:
  concurrency: 2
  filter: 'scheme == "https"'
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Isgd.Format)
	assert.True(t, cfg.Isgd.Vgd)
	assert.Equal(t, 5*time.Second, cfg.Isgd.Timeout)
	assert.Equal(t, "GET", cfg.Isgd.Method)
	assert.Equal(t, 2, cfg.CLI.Concurrency)
	assert.Equal(t, `scheme == "https"`, cfg.CLI.Filter)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "isgd", cfg.Tracing.ServiceName)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("isgd:\n  format: xml\n"), 0o600))

	t.Setenv("ISGD_ISGD_FORMAT", "json")
	t.Setenv("ISGD_CLI_CONCURRENCY", "8")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Isgd.Format)
	assert.Equal(t, 8, cfg.CLI.Concurrency)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}
