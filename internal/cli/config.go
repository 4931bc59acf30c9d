package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"intervaltimer/internal/config"
	"intervaltimer/internal/storage"
)

const defaultConfigContent = `# intervaltimer configuration

timer:
  # Countdown resolution in milliseconds (1-1000)
  tick_interval_ms: 10
  # Length of the Prepare phase before the first work phase
  prepare_duration_ms: 5000

sound:
  enabled: true
  # Options: auto, speaker, bell, none
  # auto uses the speaker and falls back to the terminal bell
  player: auto
  # Speaker buffer in milliseconds (10-1000)
  buffer_ms: 50

storage:
  # Options: yaml, sqlite, memory
  backend: yaml
  # Empty uses the user config directory
  dir: ""

logging:
  # Options: debug, info, warn, error
  level: info
  # Empty logs to stderr
  file: ""
`

func newConfigCommand(state *env) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or create the configuration",
		Long: `View or create the intervaltimer configuration.

Without arguments, displays the current configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, state)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, state)
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, state)
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigPath(cmd, state)
		},
	}

	configCmd.AddCommand(showCmd, initCmd, pathCmd)
	return configCmd
}

func runConfigShow(cmd *cobra.Command, state *env) error {
	cfg := state.cfg
	out := cmd.OutOrStdout()

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Config file: %s\n", used)
	} else {
		fmt.Fprintln(out, "Config file: (none - using defaults)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "timer:")
	fmt.Fprintf(out, "  tick_interval_ms: %d\n", cfg.Timer.TickIntervalMs)
	fmt.Fprintf(out, "  prepare_duration_ms: %d\n", cfg.Timer.PrepareDurationMs)

	fmt.Fprintln(out, "sound:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Sound.Enabled)
	fmt.Fprintf(out, "  player: %s\n", cfg.Sound.Player)
	fmt.Fprintf(out, "  buffer_ms: %d\n", cfg.Sound.BufferMs)

	fmt.Fprintln(out, "storage:")
	fmt.Fprintf(out, "  backend: %s\n", cfg.Storage.Backend)
	fmt.Fprintf(out, "  dir: %s\n", state.storageDir)
	if file := storage.PresetsFile(cfg.Storage.Backend, state.storageDir); file != "" {
		fmt.Fprintf(out, "  presets: %s\n", file)
	}

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  file: %q\n", cfg.Logging.File)
	return nil
}

func runConfigInit(cmd *cobra.Command, state *env) error {
	configFile, err := config.ConfigFile(state.dirs)
	if err != nil {
		return err
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, state *env) error {
	out := cmd.OutOrStdout()
	configFile, err := config.ConfigFile(state.dirs)
	if err != nil {
		return err
	}

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Active config: %s\n", used)
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}
	fmt.Fprintln(out, "\nEnvironment variables: INTERVALTIMER_* (e.g., INTERVALTIMER_SOUND_PLAYER)")
	return nil
}
