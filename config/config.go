package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/isgd/isgd"
)

// EnvPrefix is prepended to every environment override, e.g. ISGD_LOGGING_LEVEL.
const EnvPrefix = "ISGD"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Load loads the configuration from file. Without an explicit path a missing
// config file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	// Variables already set in the environment win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".isgd"))
		}

		// Check /etc
		v.AddConfigPath("/etc/isgd/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("isgd.format", "simple")
	v.SetDefault("isgd.vgd", false)
	v.SetDefault("isgd.logstats", false)
	v.SetDefault("isgd.timeout", isgd.DefaultTimeout)
	v.SetDefault("isgd.user_agent", isgd.DefaultUserAgent)
	v.SetDefault("isgd.method", "GET")
	v.SetDefault("isgd.base_url", "")

	// CLI defaults
	v.SetDefault("cli.concurrency", 4)
	v.SetDefault("cli.filter", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Tracing defaults
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.service_name", "isgd")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if _, err := isgd.ParseFormat(cfg.Isgd.Format); err != nil {
		return fmt.Errorf("invalid isgd.format: %s (must be simple, json, xml or web)", cfg.Isgd.Format)
	}

	method := strings.ToUpper(cfg.Isgd.Method)
	if method != "GET" && method != "POST" {
		return fmt.Errorf("invalid isgd.method: %s (must be GET or POST)", cfg.Isgd.Method)
	}

	if cfg.Isgd.Timeout <= 0 || cfg.Isgd.Timeout > 5*time.Minute {
		return fmt.Errorf("invalid isgd.timeout: %s (must be between 0 and 5m)", cfg.Isgd.Timeout)
	}

	if cfg.Isgd.BaseURL != "" && !strings.HasPrefix(cfg.Isgd.BaseURL, "http://") && !strings.HasPrefix(cfg.Isgd.BaseURL, "https://") {
		return fmt.Errorf("invalid isgd.base_url: %s", cfg.Isgd.BaseURL)
	}

	if cfg.CLI.Concurrency < 1 {
		return fmt.Errorf("invalid cli.concurrency: %d (must be at least 1)", cfg.CLI.Concurrency)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}

	return nil
}
