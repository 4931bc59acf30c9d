package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"intervaltimer/internal/core/model"
	"intervaltimer/internal/tui"
)

type runOptions struct {
	work      string
	rest      string
	intervals int
	preset    string
}

func newRunCommand(state *env) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a timer in the terminal",
		Long: `Run a timer in the terminal.

Times are given as mm:ss or plain seconds. Flags left unset fall back to
the last quick-start values, or to the preset named by --preset.

Keys: space pauses or resumes, q asks to end, ctrl+c ends immediately.`,
		Example: `  intervaltimer run --work 0:40 --rest 0:20 --intervals 8
  intervaltimer run --preset tabata`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminal(cmd, state, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.work, "work", "w", "", "work time, mm:ss")
	cmd.Flags().StringVarP(&opts.rest, "rest", "r", "", "rest time, mm:ss")
	cmd.Flags().IntVarP(&opts.intervals, "intervals", "n", 0, "number of intervals")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "start from a preset (ID or name)")
	return cmd
}

func runTerminal(cmd *cobra.Command, state *env, opts *runOptions) error {
	settings := state.loadSettings()

	base := settings.QuickStart
	presetID := ""
	if opts.preset != "" {
		presets, err := state.openPresets()
		if err != nil {
			return err
		}
		preset, err := resolvePreset(presets, opts.preset)
		presets.Close()
		if err != nil {
			return err
		}
		base = preset.Interval
		presetID = preset.ID
	}

	interval, err := opts.interval(base)
	if err != nil {
		return err
	}

	settings.QuickStart = interval
	settings.LastPreset = presetID
	state.saveSettings(settings)

	running, err := state.startSession(cmd.Context(), interval)
	if err != nil {
		return err
	}
	defer running.Close()

	return tui.Run(cmd.Context(), running)
}

// interval overlays the flags on base and normalizes the result like the
// quick-start form does.
func (opts *runOptions) interval(base model.TimeIntervalConfig) (model.TimeIntervalConfig, error) {
	input := model.InputFromConfig(base)
	if opts.work != "" {
		input.WorkMinutes, input.WorkSeconds = clockFields(opts.work)
	}
	if opts.rest != "" {
		input.RestMinutes, input.RestSeconds = clockFields(opts.rest)
	}
	if opts.intervals != 0 {
		input.Intervals = strconv.Itoa(opts.intervals)
	}

	for _, field := range []struct{ name, value string }{
		{"work", opts.work},
		{"rest", opts.rest},
	} {
		if field.value != "" && !validClock(field.value) {
			return model.TimeIntervalConfig{}, fmt.Errorf("invalid %s time %q: want mm:ss or seconds", field.name, field.value)
		}
	}
	if opts.intervals < 0 {
		return model.TimeIntervalConfig{}, fmt.Errorf("invalid intervals %d: must be positive", opts.intervals)
	}

	return input.Normalize().Config()
}

func validClock(value string) bool {
	minutes, seconds := model.ParseClock(value)
	for _, part := range []string{minutes, seconds} {
		if _, err := strconv.Atoi(strings.TrimSpace(part)); err != nil {
			return false
		}
	}
	return true
}

// clockFields splits a flag value into form fields. Plain seconds past a
// minute are carried into the minutes field.
func clockFields(value string) (string, string) {
	minutes, seconds := model.ParseClock(value)
	if strings.Contains(value, ":") {
		return minutes, seconds
	}
	total, err := strconv.Atoi(strings.TrimSpace(seconds))
	if err != nil {
		return minutes, seconds
	}
	return strconv.Itoa(total / 60), strconv.Itoa(total % 60)
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
