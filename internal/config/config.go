// Package config loads application configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Library  LibraryConfig  `yaml:"library"`
	Playback PlaybackConfig `yaml:"playback"`
	Log      LogConfig      `yaml:"log"`
}

// LibraryConfig locates the book database.
type LibraryConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// PlaybackConfig tunes the reading engine.
type PlaybackConfig struct {
	DefaultWPM   int `yaml:"default_wpm"`
	MinWPM       int `yaml:"min_wpm"`
	MaxWPM       int `yaml:"max_wpm"`
	SpeedStep    int `yaml:"speed_step"`
	WordsPerPage int `yaml:"words_per_page"`
}

// LogConfig controls structured logging. An empty Path logs to stderr when
// not inside the TUI.
type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Library: LibraryConfig{
			DatabasePath: defaultDatabasePath(),
		},
		Playback: PlaybackConfig{
			DefaultWPM:   250,
			MinWPM:       100,
			MaxWPM:       500,
			SpeedStep:    25,
			WordsPerPage: 300,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path, layered over the defaults, then
// applies environment overrides and validates. An empty path skips the file
// step; a missing file at a non-empty path is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnvOverrides(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString("RITMO_LIBRARY_DATABASE_PATH", &cfg.Library.DatabasePath)
	overrideInt("RITMO_PLAYBACK_DEFAULT_WPM", &cfg.Playback.DefaultWPM)
	overrideInt("RITMO_PLAYBACK_MIN_WPM", &cfg.Playback.MinWPM)
	overrideInt("RITMO_PLAYBACK_MAX_WPM", &cfg.Playback.MaxWPM)
	overrideInt("RITMO_PLAYBACK_SPEED_STEP", &cfg.Playback.SpeedStep)
	overrideInt("RITMO_PLAYBACK_WORDS_PER_PAGE", &cfg.Playback.WordsPerPage)
	overrideString("RITMO_LOG_LEVEL", &cfg.Log.Level)
	overrideString("RITMO_LOG_PATH", &cfg.Log.Path)
}

func overrideString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func overrideInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (c Config) validate() error {
	if c.Library.DatabasePath == "" {
		return fmt.Errorf("library.database_path must not be empty")
	}
	if c.Playback.MinWPM <= 0 {
		return fmt.Errorf("playback.min_wpm must be positive, got %d", c.Playback.MinWPM)
	}
	if c.Playback.MaxWPM < c.Playback.MinWPM {
		return fmt.Errorf("playback.max_wpm %d below min_wpm %d",
			c.Playback.MaxWPM, c.Playback.MinWPM)
	}
	if c.Playback.DefaultWPM < c.Playback.MinWPM || c.Playback.DefaultWPM > c.Playback.MaxWPM {
		return fmt.Errorf("playback.default_wpm %d outside [%d, %d]",
			c.Playback.DefaultWPM, c.Playback.MinWPM, c.Playback.MaxWPM)
	}
	if c.Playback.SpeedStep <= 0 {
		return fmt.Errorf("playback.speed_step must be positive, got %d", c.Playback.SpeedStep)
	}
	if c.Playback.WordsPerPage <= 0 {
		return fmt.Errorf("playback.words_per_page must be positive, got %d", c.Playback.WordsPerPage)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// SlogLevel maps the configured level name to a slog level.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func defaultDatabasePath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "ritmo", "library.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "library.db"
	}
	return filepath.Join(home, ".local", "state", "ritmo", "library.db")
}
