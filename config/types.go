package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Isgd    IsgdConfig    `mapstructure:"isgd"`
	CLI     CLIConfig     `mapstructure:"cli"`
	Logging LoggingConfig `mapstructure:"logging"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// IsgdConfig holds the defaults applied to every API call
type IsgdConfig struct {
	Format    string        `mapstructure:"format"`
	Vgd       bool          `mapstructure:"vgd"`
	LogStats  bool          `mapstructure:"logstats"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Method    string        `mapstructure:"method"`
	BaseURL   string        `mapstructure:"base_url"`
}

// CLIConfig contains settings for processing command line arguments
type CLIConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	Filter      string `mapstructure:"filter"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// TracingConfig controls OpenTelemetry export of request spans
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}
