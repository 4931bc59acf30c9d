package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

type fixedDirs struct {
	dir string
}

func (dirs fixedDirs) ConfigDir() (string, error) { return dirs.dir, nil }

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Timer.TickInterval() != 10*time.Millisecond {
		t.Errorf("TickInterval() = %v, want 10ms", cfg.Timer.TickInterval())
	}
	if cfg.Timer.PrepareDuration() != 5*time.Second {
		t.Errorf("PrepareDuration() = %v, want 5s", cfg.Timer.PrepareDuration())
	}
	if !cfg.Sound.Enabled || cfg.Sound.Player != PlayerAuto || cfg.Sound.Buffer() != 50*time.Millisecond {
		t.Errorf("unexpected sound defaults %+v", cfg.Sound)
	}
	if cfg.Storage.Backend != BackendYAML {
		t.Errorf("Storage.Backend = %q, want %q", cfg.Storage.Backend, BackendYAML)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("defaults should validate, got %v", errs)
	}
}

func TestLoad_FromViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetDefaults()
	viper.Set("timer.prepare_duration_ms", 3000)
	viper.Set("storage.backend", BackendSQLite)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timer.PrepareDuration() != 3*time.Second {
		t.Errorf("PrepareDuration() = %v, want 3s", cfg.Timer.PrepareDuration())
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Timer.TickIntervalMs != 10 {
		t.Errorf("TickIntervalMs = %d, want default 10", cfg.Timer.TickIntervalMs)
	}
}

func TestLoad_Invalid(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetDefaults()
	viper.Set("sound.player", "kazoo")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "sound.player") {
		t.Errorf("error %q does not name the field", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero tick", func(c *Config) { c.Timer.TickIntervalMs = 0 }, "timer.tick_interval_ms"},
		{"slow tick", func(c *Config) { c.Timer.TickIntervalMs = 5000 }, "timer.tick_interval_ms"},
		{"zero prepare", func(c *Config) { c.Timer.PrepareDurationMs = 0 }, "timer.prepare_duration_ms"},
		{"tiny speaker buffer", func(c *Config) { c.Sound.BufferMs = 1 }, "sound.buffer_ms"},
		{"huge speaker buffer", func(c *Config) { c.Sound.BufferMs = 5000 }, "sound.buffer_ms"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }, "storage.backend"},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if len(errs) != 1 || errs[0].Field != tt.field {
				t.Errorf("Validate() = %v, want one error on %s", errs, tt.field)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}
	if !strings.HasPrefix(errs.Error(), "2 validation errors") {
		t.Errorf("Error() = %q", errs.Error())
	}
}

func TestStorageConfig_ResolveDir(t *testing.T) {
	dirs := fixedDirs{dir: "/tmp/os-config"}

	cfg := StorageConfig{}
	dir, err := cfg.ResolveDir(dirs)
	if err != nil || dir != "/tmp/os-config" {
		t.Errorf("ResolveDir() = %q, %v", dir, err)
	}

	cfg.Dir = "/tmp/custom/../custom"
	dir, _ = cfg.ResolveDir(dirs)
	if dir != filepath.Clean("/tmp/custom") {
		t.Errorf("ResolveDir() = %q, want /tmp/custom", dir)
	}

	file, _ := ConfigFile(dirs)
	if file != filepath.Join("/tmp/os-config", "config.yaml") {
		t.Errorf("ConfigFile() = %q", file)
	}
}
