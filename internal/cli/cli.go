package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/MikieMSC/streamwood-biking-calendar/internal/browser"
	"github.com/MikieMSC/streamwood-biking-calendar/internal/config"
	"github.com/MikieMSC/streamwood-biking-calendar/internal/logger"
	"github.com/MikieMSC/streamwood-biking-calendar/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streamwood-biking-calendar",
		Short: "Build an iCalendar feed from the Streamwood Biking events page",
		Long: `Scrapes the Streamwood Biking Facebook events page with a headless
browser, extracts event details from the rendered markup, and writes an
iCalendar file plus supporting artifacts under the output directory.`,
		SilenceUsage: true,
		RunE:         runBuild,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to optional YAML config file")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runBuild is the main command logic
func runBuild(cmd *cobra.Command, args []string) error {
	// A .env file is convenient for the cookie credential; absence is fine.
	_ = godotenv.Load()

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr)
	logger.SetDefault(log)

	if cfg.RefreshCron != "" {
		return runScheduled(cfg, log, format)
	}

	result, err := runOnce(cfg, log)
	if err != nil {
		return err
	}
	return WriteOutput(os.Stdout, result, format, flagVerbose)
}

// runOnce opens a browser session, runs the pipeline against it, and tears
// the session down again. Each scheduled tick gets a fresh session so a
// wedged browser cannot poison later runs.
func runOnce(cfg *config.Config, log *logger.Logger) (*RunResult, error) {
	sink, err := storage.New(cfg.OutputDir, storage.Files{
		IDs:      cfg.IDsFile,
		URLs:     cfg.URLsFile,
		Calendar: cfg.CalendarFile,
		Index:    cfg.IndexFile,
	})
	if err != nil {
		return nil, err
	}

	b, err := browser.Open(context.Background(), browser.Options{
		NavTimeout:  cfg.NavTimeout(),
		SettleDelay: cfg.SettleDelay(),
		ScrollStep:  cfg.ScrollStep,
		ShowBrowser: cfg.ShowBrowser,
	})
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if header := os.Getenv(cfg.CookieEnv); header != "" {
		cookies := browser.ParseCookieHeader(header)
		if err := b.SetCookies(cookies, cfg.CookieDomain); err != nil {
			return nil, err
		}
		log.Info("session cookies installed", logger.Fields{"count": len(cookies)})
	} else {
		log.Debug("no cookie credential, anonymous session", logger.Fields{"env": cfg.CookieEnv})
	}

	metrics := logger.NewMetrics()
	result, err := NewPipeline(cfg, b, sink, log, metrics).Run()
	if err != nil {
		return nil, err
	}
	if flagVerbose {
		result.Metrics = metrics.GetSnapshot()
	}
	return result, nil
}

// runScheduled reruns the pipeline on the configured cron schedule until
// SIGINT or SIGTERM. A failed run is logged and the schedule stays alive.
func runScheduled(cfg *config.Config, log *logger.Logger, format OutputFormat) error {
	run := func() {
		result, err := runOnce(cfg, log)
		if err != nil {
			log.Error("scheduled run failed", logger.Fields{"schedule": cfg.RefreshCron}, err)
			return
		}
		if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
			log.Error("writing run summary", nil, err)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.RefreshCron, run); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", cfg.RefreshCron, err)
	}

	log.Info("scheduled mode", logger.Fields{"schedule": cfg.RefreshCron})
	run()
	c.Start()
	defer c.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down", nil)
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
