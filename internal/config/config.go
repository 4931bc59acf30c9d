// Package config loads intervaltimer settings through viper.
package config

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"intervaltimer/internal/platform"
)

// Sound player kinds.
const (
	PlayerAuto    = "auto"
	PlayerSpeaker = "speaker"
	PlayerBell    = "bell"
	PlayerNone    = "none"
)

// Storage backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the complete application configuration.
type Config struct {
	Timer   TimerConfig   `mapstructure:"timer"`
	Sound   SoundConfig   `mapstructure:"sound"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TimerConfig controls the countdown engine.
type TimerConfig struct {
	TickIntervalMs    int `mapstructure:"tick_interval_ms"`
	PrepareDurationMs int `mapstructure:"prepare_duration_ms"`
}

// SoundConfig selects how cues are played.
type SoundConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Player   string `mapstructure:"player"`
	BufferMs int    `mapstructure:"buffer_ms"` // speaker latency
}

// StorageConfig selects where presets and settings live.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"` // empty means the OS config dir
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty logs to stderr
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Timer: TimerConfig{
			TickIntervalMs:    10,
			PrepareDurationMs: 5000,
		},
		Sound: SoundConfig{
			Enabled:  true,
			Player:   PlayerAuto,
			BufferMs: 50,
		},
		Storage: StorageConfig{
			Backend: BackendYAML,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// TickInterval returns the countdown resolution.
func (c *TimerConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// Buffer returns the speaker buffer length.
func (c *SoundConfig) Buffer() time.Duration {
	return time.Duration(c.BufferMs) * time.Millisecond
}

// PrepareDuration returns the length of the Prepare phase.
func (c *TimerConfig) PrepareDuration() time.Duration {
	return time.Duration(c.PrepareDurationMs) * time.Millisecond
}

// ResolveDir returns the storage directory, falling back to the OS config dir.
func (c *StorageConfig) ResolveDir(dirs platform.Dirs) (string, error) {
	if c.Dir != "" {
		return filepath.Clean(c.Dir), nil
	}
	return dirs.ConfigDir()
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("timer.tick_interval_ms", defaults.Timer.TickIntervalMs)
	viper.SetDefault("timer.prepare_duration_ms", defaults.Timer.PrepareDurationMs)

	viper.SetDefault("sound.enabled", defaults.Sound.Enabled)
	viper.SetDefault("sound.player", defaults.Sound.Player)
	viper.SetDefault("sound.buffer_ms", defaults.Sound.BufferMs)

	viper.SetDefault("storage.backend", defaults.Storage.Backend)
	viper.SetDefault("storage.dir", defaults.Storage.Dir)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigFile returns the default config file path.
func ConfigFile(dirs platform.Dirs) (string, error) {
	dir, err := dirs.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
