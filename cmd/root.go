package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/isgd/config"
	"github.com/s0up4200/isgd/isgd"
	"github.com/s0up4200/isgd/telemetry"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	client   isgd.API
	registry *prometheus.Registry
	shutdown telemetry.ShutdownFunc

	// Persistent flags
	formatFlag   string
	vgdFlag      bool
	timeoutFlag  time.Duration
	logLevelFlag string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "isgd [url...]",
	Short: "Shorten and expand links with is.gd and v.gd",
	Long: `isgd is a command line client for the is.gd and v.gd URL shorteners.

Every argument that is an is.gd or v.gd link is expanded to its original
address, anything else is shortened. Use the shorten and lookup commands to
force a direction or to set an alias.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
	RunE:              runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnFinalize(finalizeApp)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "response format: simple, json, xml or web")
	rootCmd.PersistentFlags().BoolVar(&vgdFlag, "vgd", false, "use v.gd instead of is.gd")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "HTTP timeout (e.g. 10s)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: trace, debug, info, warn or error")
}

// initializeApp loads the configuration, applies flag overrides and creates the client
func initializeApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	logger = setupLogger(cfg.Logging)

	if cfg.Tracing.Enabled {
		shutdown, err = telemetry.InitTrace(cmd.Context(), cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialise tracing, continuing without it")
		} else {
			logger.Debug().Str("endpoint", cfg.Tracing.Endpoint).Msg("Tracing enabled")
		}
	}

	registry = prometheus.NewRegistry()
	client = newClient(cfg, logger, registry)

	return nil
}

// finalizeApp reports request counters and flushes spans, also after a failed run
func finalizeApp() {
	if registry != nil {
		logRequestStats(registry, logger)
	}

	if shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to flush traces")
	}
	shutdown = nil
}

// applyFlags overrides configuration values with explicitly set flags
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("format") {
		if _, err := isgd.ParseFormat(formatFlag); err != nil {
			return fmt.Errorf("invalid --format: %w", err)
		}
		cfg.Isgd.Format = formatFlag
	}
	if flags.Changed("vgd") {
		cfg.Isgd.Vgd = vgdFlag
	}
	if flags.Changed("timeout") {
		if timeoutFlag <= 0 {
			return fmt.Errorf("invalid --timeout: %s", timeoutFlag)
		}
		cfg.Isgd.Timeout = timeoutFlag
	}
	if flags.Changed("log-level") {
		if _, err := zerolog.ParseLevel(strings.ToLower(logLevelFlag)); err != nil || logLevelFlag == "" {
			return fmt.Errorf("invalid --log-level: %s", logLevelFlag)
		}
		cfg.Logging.Level = logLevelFlag
	}

	return nil
}

// newClient creates the is.gd client from configuration
func newClient(cfg *config.Config, logger zerolog.Logger, reg prometheus.Registerer) *isgd.Client {
	opts := []isgd.Option{
		isgd.WithTimeout(cfg.Isgd.Timeout),
		isgd.WithUserAgent(cfg.Isgd.UserAgent),
		isgd.WithMethod(cfg.Isgd.Method),
		isgd.WithMetrics(reg),
	}
	if cfg.Isgd.BaseURL != "" {
		opts = append(opts, isgd.WithBaseURL(cfg.Isgd.BaseURL))
	}
	if cfg.Tracing.Enabled {
		opts = append(opts, isgd.WithHTTPClient(&http.Client{
			Transport: telemetry.Transport(nil, nil),
		}))
	}

	return isgd.NewClient(logger, opts...)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	// Console format, colour only on a terminal
	fd := os.Stderr.Fd()
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	jobs := make([]job, len(args))
	for i, arg := range args {
		op := isgd.OpShorten
		if isShortLink(arg) {
			op = isgd.OpLookup
		}
		jobs[i] = job{arg: arg, op: op}
	}

	return process(cmd, jobs, requestOptions{logStats: cfg.Isgd.LogStats}, cfg.CLI.Filter)
}
