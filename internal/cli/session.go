package cli

import (
	"context"
	"fmt"

	"intervaltimer/internal/core/model"
	"intervaltimer/internal/core/session"
	"intervaltimer/internal/sound"
)

// startSession builds a sound player for one session and starts it.
// The player is released by the session when it ends.
func (state *env) startSession(ctx context.Context, interval model.TimeIntervalConfig) (*session.Session, error) {
	player, err := sound.New(state.cfg.Sound, state.logger.Logger)
	if err != nil {
		state.logger.Warn("sound disabled", "error", err)
		player = sound.NopPlayer{}
	}

	running, err := session.Start(ctx, interval, session.Options{
		TickInterval:    state.cfg.Timer.TickInterval(),
		PrepareDuration: state.cfg.Timer.PrepareDuration(),
		Sound:           player,
		Logger:          state.logger.Logger,
	})
	if err != nil {
		_ = player.Release()
		return nil, err
	}
	return running, nil
}

// resolvePreset finds a preset by ID, then by case-insensitive name.
func resolvePreset(presets model.PresetRepository, ref string) (model.Preset, error) {
	if preset, err := presets.Load(ref); err == nil {
		return preset, nil
	}
	list, err := presets.List()
	if err != nil {
		return model.Preset{}, err
	}
	for _, preset := range list {
		if equalFoldTrim(preset.Name, ref) {
			return preset, nil
		}
	}
	return model.Preset{}, fmt.Errorf("preset %q: %w", ref, model.ErrPresetNotFound)
}

