// Package cli wires the intervaltimer commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"intervaltimer/internal/config"
	"intervaltimer/internal/core/model"
	"intervaltimer/internal/logging"
	"intervaltimer/internal/platform"
	"intervaltimer/internal/storage"
)

// env carries what every command needs once configuration is loaded.
type env struct {
	cfg        *config.Config
	logger     *logging.Logger
	dirs       platform.Dirs
	storageDir string
}

// Execute runs the root command until it returns or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand(platform.NewDirs(platform.AppName)).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. dirs locates config, storage and cache.
func NewRootCommand(dirs platform.Dirs) *cobra.Command {
	state := &env{dirs: dirs}

	rootCmd := &cobra.Command{
		Use:   "intervaltimer",
		Short: "Interval timer with work and rest phases",
		Long: `intervaltimer counts down alternating work and rest phases with audio
cues three seconds before each phase ends.

Without a subcommand it opens the desktop window.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return state.logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd.Context(), state)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is the user config dir)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-file", "", "write JSON logs to this file")
	flags.String("storage", "", "preset storage backend: yaml, sqlite, memory")
	flags.String("data-dir", "", "directory for presets and settings")
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.file", flags.Lookup("log-file"))
	_ = viper.BindPFlag("storage.backend", flags.Lookup("storage"))
	_ = viper.BindPFlag("storage.dir", flags.Lookup("data-dir"))

	rootCmd.AddCommand(
		newGUICommand(state),
		newRunCommand(state),
		newPresetsCommand(state),
		newConfigCommand(state),
	)
	return rootCmd
}

func (state *env) load() error {
	if err := initConfig(state.dirs); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return err
	}
	storageDir, err := cfg.Storage.ResolveDir(state.dirs)
	if err != nil {
		logger.Close()
		return err
	}

	state.cfg = cfg
	state.logger = logger
	state.storageDir = storageDir
	logger.Debug("config loaded", "file", viper.ConfigFileUsed(), "storage", cfg.Storage.Backend, "dir", storageDir)
	return nil
}

func initConfig(dirs platform.Dirs) error {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		if dir, err := dirs.ConfigDir(); err == nil {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("INTERVALTIMER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if viper.GetString("config") == "" {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

func (state *env) openPresets() (model.PresetRepository, error) {
	return storage.OpenPresets(state.cfg.Storage.Backend, state.storageDir)
}

func (state *env) loadSettings() model.Settings {
	settings, err := storage.LoadSettings(state.storageDir)
	if err != nil {
		state.logger.Warn("load settings, using defaults", "error", err)
	}
	return settings
}

func (state *env) saveSettings(settings model.Settings) {
	if err := storage.SaveSettings(state.storageDir, settings); err != nil {
		state.logger.Warn("save settings", "error", err)
	}
}
