// ABOUTME: Dashboard configuration with backend selection and env overrides.
// ABOUTME: Handles the JSON config file, HEALTHDASH_* variables, and the storage factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/charmbracelet/log"

	"github.com/harperreed/healthdash/internal/charm"
	"github.com/harperreed/healthdash/internal/storage"
)

// Backends lists the accepted storage backend names.
var Backends = []string{"sqlite", "badger", "charm", "memory"}

// Config stores dashboard configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger", "charm" or "memory".
	Backend string `json:"backend,omitempty" env:"HEALTHDASH_BACKEND"`

	// DataDir is the root directory for data storage.
	// SQLite puts healthdash.db here; Badger uses a badger/ subdirectory.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/healthdash.
	DataDir string `json:"data_dir,omitempty" env:"HEALTHDASH_DATA_DIR"`

	// MetricsFile optionally replaces the built-in sample metrics.
	MetricsFile string `json:"metrics_file,omitempty" env:"HEALTHDASH_METRICS_FILE"`

	// UndoWindow is the grace period before a completion toggle commits, e.g. "5s".
	UndoWindow string `json:"undo_window,omitempty" env:"HEALTHDASH_UNDO_WINDOW"`

	// ListenAddr is the HTTP server address for "serve".
	ListenAddr string `json:"listen_addr,omitempty" env:"HEALTHDASH_LISTEN_ADDR"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty" env:"HEALTHDASH_LOG_LEVEL"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetMetricsFile returns the metrics file path with ~ expanded, or "".
func (c *Config) GetMetricsFile() string {
	return ExpandPath(c.MetricsFile)
}

// GetUndoWindow parses UndoWindow. Empty or invalid values yield 0, which the
// undo buffer replaces with its default.
func (c *Config) GetUndoWindow() time.Duration {
	if c.UndoWindow == "" {
		return 0
	}
	d, err := time.ParseDuration(c.UndoWindow)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// GetListenAddr returns the HTTP listen address, defaulting to ":8080".
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return ":8080"
	}
	return c.ListenAddr
}

// GetLogLevel maps LogLevel to a charm log level, defaulting to info.
func (c *Config) GetLogLevel() log.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a KV implementation for the configured backend.
func (c *Config) OpenStorage(logger *log.Logger) (storage.KV, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir(), logger)
}

// BackendPath returns where a file-backed backend keeps its data under dataDir,
// or "" for backends without local files.
func BackendPath(backend, dataDir string) string {
	switch backend {
	case "sqlite":
		return filepath.Join(dataDir, "healthdash.db")
	case "badger":
		return filepath.Join(dataDir, "badger")
	default:
		return ""
	}
}

// OpenBackend opens the named backend rooted at dataDir.
func OpenBackend(backend, dataDir string, logger *log.Logger) (storage.KV, error) {
	switch backend {
	case "sqlite":
		return storage.Open(BackendPath(backend, dataDir))
	case "badger":
		return storage.OpenBadger(BackendPath(backend, dataDir), logger)
	case "charm":
		return charm.InitClient()
	case "memory":
		return storage.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "healthdash", "config.json")
}

// Load reads config from disk and applies HEALTHDASH_* environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(GetConfigPath())
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
