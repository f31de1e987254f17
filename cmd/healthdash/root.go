// ABOUTME: Root Cobra command for healthdash CLI.
// ABOUTME: Loads .env and config, then opens storage and the dashboard via PersistentPre/PostRunE.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthdash/internal/config"
	"github.com/harperreed/healthdash/internal/dashboard"
	"github.com/harperreed/healthdash/internal/models"
	"github.com/harperreed/healthdash/internal/prefs"
	"github.com/harperreed/healthdash/internal/storage"
)

// skipDashboard marks commands that manage storage themselves.
const skipDashboard = "skip-dashboard"

type commitEvent struct {
	id        string
	completed bool
}

var (
	cfg     *config.Config
	logger  *log.Logger
	kvStore storage.KV
	dash    *dashboard.Dashboard
	commits = make(chan commitEvent, 1)
)

var rootCmd = &cobra.Command{
	Use:   "healthdash",
	Short: "Personal health dashboard",
	Long: `Healthdash is a personal health dashboard for the terminal, the browser
and AI assistants.

WHAT IT SHOWS:

  Metrics        blood sugar, blood pressure, weight, activity, water
  Tasks          generated from your metrics (measurements, goals, medication)
  Achievements   streaks and milestones

QUICK START:

  $ healthdash metrics                 # Current values, targets and history
  $ healthdash tasks --view today      # What to do today
  $ healthdash done gen-weight-goal    # Complete a task (Ctrl+C within 5s undoes)
  $ healthdash select weight water     # Choose which metrics the dashboard shows
  $ healthdash range month             # Show a month of history

SERVERS:

  $ healthdash serve                   # JSON API for the web dashboard
  $ healthdash mcp                     # MCP server for AI assistants

CONFIGURATION:

  ~/.config/healthdash/config.json, overridden by HEALTHDASH_* environment
  variables (a .env file in the working directory is loaded first).

  HEALTHDASH_BACKEND       sqlite (default), badger, charm, memory
  HEALTHDASH_DATA_DIR      data directory (default ~/.local/share/healthdash)
  HEALTHDASH_METRICS_FILE  JSON metrics file replacing the built-in samples
  HEALTHDASH_UNDO_WINDOW   grace period before a toggle commits (default 5s)
  HEALTHDASH_LISTEN_ADDR   address for 'serve' (default :8080)
  HEALTHDASH_LOG_LEVEL     debug, info, warn, error

DATA STORAGE:

  Only preferences are stored: selected metrics, time range and the set of
  completed task IDs. Tasks themselves are regenerated from the metrics.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		if err := loadConfig(); err != nil {
			return err
		}
		if !needsDashboard(cmd) {
			return nil
		}
		return openDashboard()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeDashboard()
	},
}

func loadConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.GetLogLevel(),
		Prefix:          "healthdash",
		ReportTimestamp: true,
	})
	return nil
}

// needsDashboard reports whether cmd or any of its parents did not opt out.
func needsDashboard(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipDashboard] == "true" {
			return false
		}
	}
	return true
}

func openDashboard() error {
	var err error
	kvStore, err = cfg.OpenStorage(logger)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}

	metrics, err := loadMetrics(cfg.GetMetricsFile(), time.Now())
	if err != nil {
		_ = kvStore.Close()
		kvStore = nil
		return err
	}

	dash = dashboard.New(metrics, prefs.New(kvStore, logger),
		dashboard.WithUndoWindow(cfg.GetUndoWindow()),
		dashboard.WithLogger(logger),
		dashboard.WithCommitHook(notifyCommit),
	)
	return nil
}

func closeDashboard() error {
	if dash != nil {
		dash.Close()
		dash = nil
	}
	if kvStore != nil {
		err := kvStore.Close()
		kvStore = nil
		return err
	}
	return nil
}

// loadMetrics reads the configured metrics file, or returns the samples.
func loadMetrics(path string, now time.Time) ([]*models.HealthMetric, error) {
	if path == "" {
		return models.SampleMetrics(now), nil
	}
	metrics, err := models.LoadMetricsFile(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load metrics: %w", err)
	}
	return metrics, nil
}

func notifyCommit(id string, completed bool) {
	select {
	case commits <- commitEvent{id: id, completed: completed}:
	default:
	}
}
