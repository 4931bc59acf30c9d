package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"intervaltimer/internal/core/model"
)

type presetFlags struct {
	work      string
	rest      string
	intervals int
	name      string
}

func newPresetsCommand(state *env) *cobra.Command {
	presetsCmd := &cobra.Command{
		Use:     "presets",
		Aliases: []string{"preset"},
		Short:   "Manage saved interval presets",
		Long: `Manage saved interval presets.

Without a subcommand, lists all presets. Presets are shared with the
desktop window; changes made here appear there immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresetsList(cmd, state, "")
		},
	}

	var match string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresetsList(cmd, state, match)
		},
	}
	listCmd.Flags().StringVarP(&match, "match", "m", "", "only names matching a glob, e.g. 'hiit*'")

	showCmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show one preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPresets(state, func(presets model.PresetRepository) error {
				preset, err := resolvePreset(presets, args[0])
				if err != nil {
					return err
				}
				printPreset(cmd.OutOrStdout(), preset)
				return nil
			})
		},
	}

	addFlags := &presetFlags{}
	addCmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Save a new preset",
		Example: `  intervaltimer presets add tabata --work 0:20 --rest 0:10 --intervals 8`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPresets(state, func(presets model.PresetRepository) error {
				opts := runOptions{work: addFlags.work, rest: addFlags.rest, intervals: addFlags.intervals}
				interval, err := opts.interval(model.DefaultQuickStart())
				if err != nil {
					return err
				}
				preset, err := presets.Save(args[0], interval)
				if err != nil {
					return err
				}
				state.logger.Info("preset saved", "id", preset.ID, "name", preset.Name)
				fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %s (%s)\n", preset.Name, preset.ID)
				return nil
			})
		},
	}
	bindPresetFlags(addCmd, addFlags, false)

	updateFlags := &presetFlags{}
	updateCmd := &cobra.Command{
		Use:   "update <id|name>",
		Short: "Change a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPresets(state, func(presets model.PresetRepository) error {
				preset, err := resolvePreset(presets, args[0])
				if err != nil {
					return err
				}
				opts := runOptions{work: updateFlags.work, rest: updateFlags.rest, intervals: updateFlags.intervals}
				interval, err := opts.interval(preset.Interval)
				if err != nil {
					return err
				}
				preset.Interval = interval
				if cmd.Flags().Changed("name") {
					preset.Name = updateFlags.name
				}
				if err := presets.Update(preset); err != nil {
					return err
				}
				state.logger.Info("preset updated", "id", preset.ID, "name", preset.Name)
				fmt.Fprintf(cmd.OutOrStdout(), "Updated preset %s (%s)\n", preset.Name, preset.ID)
				return nil
			})
		},
	}
	bindPresetFlags(updateCmd, updateFlags, true)

	removeCmd := &cobra.Command{
		Use:     "rm <id|name>",
		Aliases: []string{"delete", "remove"},
		Short:   "Delete a preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPresets(state, func(presets model.PresetRepository) error {
				preset, err := resolvePreset(presets, args[0])
				if err != nil {
					return err
				}
				if err := presets.Delete(preset.ID); err != nil {
					return err
				}
				state.logger.Info("preset deleted", "id", preset.ID, "name", preset.Name)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %s (%s)\n", preset.Name, preset.ID)
				return nil
			})
		},
	}

	presetsCmd.AddCommand(listCmd, showCmd, addCmd, updateCmd, removeCmd)
	return presetsCmd
}

func bindPresetFlags(cmd *cobra.Command, flags *presetFlags, withName bool) {
	cmd.Flags().StringVarP(&flags.work, "work", "w", "", "work time, mm:ss")
	cmd.Flags().StringVarP(&flags.rest, "rest", "r", "", "rest time, mm:ss")
	cmd.Flags().IntVarP(&flags.intervals, "intervals", "n", 0, "number of intervals")
	if withName {
		cmd.Flags().StringVar(&flags.name, "name", "", "new preset name")
	}
}

func withPresets(state *env, fn func(presets model.PresetRepository) error) error {
	presets, err := state.openPresets()
	if err != nil {
		return err
	}
	defer presets.Close()
	return fn(presets)
}

func runPresetsList(cmd *cobra.Command, state *env, match string) error {
	var pattern glob.Glob
	if match != "" {
		compiled, err := glob.Compile(strings.ToLower(match))
		if err != nil {
			return fmt.Errorf("invalid --match pattern %q: %w", match, err)
		}
		pattern = compiled
	}

	return withPresets(state, func(presets model.PresetRepository) error {
		list, err := presets.List()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		shown := 0
		for _, preset := range list {
			if pattern != nil && !pattern.Match(strings.ToLower(preset.Name)) {
				continue
			}
			if shown == 0 {
				fmt.Fprintf(out, "%-36s  %-20s  %5s  %5s  %s\n", "ID", "NAME", "WORK", "REST", "INTERVALS")
			}
			fmt.Fprintf(out, "%-36s  %-20s  %5s  %5s  %d\n",
				preset.ID, preset.Name, preset.Interval.DisplayWork(), preset.Interval.DisplayRest(), preset.Interval.Intervals)
			shown++
		}
		if shown == 0 {
			fmt.Fprintln(out, "No presets found.")
		}
		return nil
	})
}

func printPreset(out io.Writer, preset model.Preset) {
	fmt.Fprintf(out, "ID:        %s\n", preset.ID)
	fmt.Fprintf(out, "Name:      %s\n", preset.Name)
	fmt.Fprintf(out, "Work:      %s\n", preset.Interval.DisplayWork())
	fmt.Fprintf(out, "Rest:      %s\n", preset.Interval.DisplayRest())
	fmt.Fprintf(out, "Intervals: %d\n", preset.Interval.Intervals)
}
