package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Nomadcxx/seasonsort/internal/logging"
	"github.com/Nomadcxx/seasonsort/internal/paths"
	"github.com/spf13/viper"
)

type Config struct {
	Rename      RenameConfig      `mapstructure:"rename"`
	Scrape      ScrapeConfig      `mapstructure:"scrape"`
	Watch       WatchConfig       `mapstructure:"watch"`
	History     HistoryConfig     `mapstructure:"history"`
	Permissions PermissionsConfig `mapstructure:"permissions"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// RenameConfig holds defaults for the rename and watch commands. Flags
// given on the command line take precedence.
type RenameConfig struct {
	ShowName    string `mapstructure:"show_name"`
	EmbedTitles bool   `mapstructure:"embed_titles"`
	TitlesFile  string `mapstructure:"titles_file"`
	DryRun      bool   `mapstructure:"dry_run"`
}

// ScrapeConfig controls the wiki episode-table scraper.
type ScrapeConfig struct {
	OutputDir      string `mapstructure:"output_dir"`
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout returns the HTTP timeout as a duration.
func (s ScrapeConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type WatchConfig struct {
	// SettleSeconds is how long the directory must stay quiet before a
	// rename pass runs.
	SettleSeconds int `mapstructure:"settle_seconds"`
}

// Settle returns the debounce delay as a duration.
func (w WatchConfig) Settle() time.Duration {
	return time.Duration(w.SettleSeconds) * time.Second
}

// HistoryConfig controls the SQLite audit trail of renames.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // empty = ~/.config/seasonsort/history.db
}

type PermissionsConfig struct {
	// DirMode is an octal string (e.g. "0755" or "755") applied to season
	// folders. Empty means the process default.
	DirMode string `mapstructure:"dir_mode"`
}

func (p *PermissionsConfig) ParseDirMode() (os.FileMode, error) {
	m := strings.TrimSpace(p.DirMode)
	if m == "" {
		return 0, nil
	}
	if len(m) == 3 {
		m = "0" + m
	}
	v, err := strconv.ParseUint(m, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid dir_mode %q: %w", p.DirMode, err)
	}
	return os.FileMode(v), nil
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// ToLogging converts to the logger's own configuration type.
func (l LoggingConfig) ToLogging() logging.Config {
	return logging.Config{
		Level:      l.Level,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
	}
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Rename: RenameConfig{
			EmbedTitles: false,
			DryRun:      false,
		},
		Scrape: ScrapeConfig{
			OutputDir:      "wiki_data",
			UserAgent:      "seasonsort/1.0 (episode title scraper)",
			TimeoutSeconds: 30,
		},
		Watch: WatchConfig{
			SettleSeconds: 2,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}

// Load loads configuration from the default location, or returns defaults
// when no config file exists.
func Load() (*Config, error) {
	configPath, err := paths.ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("unable to get config path: %w", err)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %s: %w", path, err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if _, err := cfg.Permissions.ParseDirMode(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HistoryPath returns the configured audit database path or the default.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	return paths.DatabasePath()
}

// Save writes the configuration to path as TOML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(c.ToTOML()), 0644)
}

// ConfigExists reports whether a config file is present at the default path.
func ConfigExists() bool {
	path, err := paths.ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (c *Config) ToTOML() string {
	return fmt.Sprintf(`# seasonsort configuration
# Generated by: seasonsort config init

# ============================================================================
# RENAME
# Defaults for "seasonsort rename" and "seasonsort watch"
# ============================================================================
[rename]
# Show name used as the filename prefix: Show_S01E02.mkv
show_name = %q

# Append episode titles from titles_file: Show_S01E02_Pilot.mkv
embed_titles = %v
titles_file = %q

# Preview mode - don't actually rename or move files
dry_run = %v

# ============================================================================
# SCRAPE
# Wiki episode table scraper ("seasonsort scrape")
# ============================================================================
[scrape]
output_dir = %q
user_agent = %q
timeout_seconds = %d

# ============================================================================
# WATCH
# ============================================================================
[watch]
# Quiet period before a rename pass runs after new files appear
settle_seconds = %d

# ============================================================================
# HISTORY
# SQLite audit trail of renamed files ("seasonsort history")
# ============================================================================
[history]
enabled = %v
path = %q

# ============================================================================
# PERMISSIONS
# ============================================================================
[permissions]
# Octal mode for created season folders, empty = process default
dir_mode = %q

# ============================================================================
# LOGGING
# ============================================================================
[logging]
level = %q
file = %q
max_size_mb = %d
max_backups = %d
`,
		c.Rename.ShowName, c.Rename.EmbedTitles, c.Rename.TitlesFile, c.Rename.DryRun,
		c.Scrape.OutputDir, c.Scrape.UserAgent, c.Scrape.TimeoutSeconds,
		c.Watch.SettleSeconds,
		c.History.Enabled, c.History.Path,
		c.Permissions.DirMode,
		c.Logging.Level, c.Logging.File, c.Logging.MaxSizeMB, c.Logging.MaxBackups,
	)
}
