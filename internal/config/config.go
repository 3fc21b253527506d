// Package config loads the editor configuration from a TOML file with
// environment overrides, and watches the file for live reloads of the
// tuning values.
//
// Precedence, lowest to highest: built-in defaults, the TOML file,
// SPLITFLAP_* environment variables. The poll cadence and the edit
// staleness window are tuning values, not protocol constants; the
// watcher lets them change without a restart.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Environment variable overrides.
const (
	EnvAPIKey   = "SPLITFLAP_API_KEY"
	EnvBaseURL  = "SPLITFLAP_BASE_URL"
	EnvLogLevel = "SPLITFLAP_LOG_LEVEL"
)

// Duration wraps time.Duration for TOML string values like "5s".
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full editor configuration.
type Config struct {
	Board     BoardConfig     `toml:"board"`
	Remote    RemoteConfig    `toml:"remote"`
	Reconcile ReconcileConfig `toml:"reconcile"`
	Install   InstallConfig   `toml:"installables"`
	Settings  SettingsConfig  `toml:"settings"`
	Script    ScriptConfig    `toml:"script"`
	Log       LogConfig       `toml:"log"`
}

// BoardConfig fixes the grid dimensions.
type BoardConfig struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
}

// RemoteConfig points at the board gateway.
type RemoteConfig struct {
	BaseURL string   `toml:"base_url"`
	APIKey  string   `toml:"api_key"`
	Timeout Duration `toml:"timeout"`
}

// ReconcileConfig holds the reconciliation tuning values.
type ReconcileConfig struct {
	PollInterval Duration `toml:"poll_interval"`
	Staleness    Duration `toml:"staleness"`
}

// InstallConfig locates the installable manifest.
type InstallConfig struct {
	Manifest string `toml:"manifest"`
}

// SettingsConfig locates the persisted settings database.
type SettingsConfig struct {
	Path string `toml:"path"`
}

// ScriptConfig locates the optional Lua send hook.
type ScriptConfig struct {
	SendHook string `toml:"send_hook"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board:  BoardConfig{Rows: 6, Cols: 22},
		Remote: RemoteConfig{Timeout: Duration(10 * time.Second)},
		Reconcile: ReconcileConfig{
			PollInterval: Duration(5 * time.Second),
			Staleness:    Duration(30 * time.Second),
		},
		Settings: SettingsConfig{Path: "splitflap.db"},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads the configuration from path, applying defaults and
// environment overrides. A missing file is not an error; the defaults
// and environment carry the configuration alone.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Defaults only.
		case err != nil:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays SPLITFLAP_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.Remote.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.Remote.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks the configuration for values the editor cannot run
// with.
func (c Config) Validate() error {
	if c.Board.Rows <= 0 || c.Board.Cols <= 0 {
		return fmt.Errorf("board dimensions must be positive, got %dx%d", c.Board.Rows, c.Board.Cols)
	}
	if c.Reconcile.PollInterval.Std() <= 0 {
		return errors.New("poll_interval must be positive")
	}
	if c.Reconcile.Staleness.Std() <= 0 {
		return errors.New("staleness must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}
