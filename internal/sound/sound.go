// Package sound plays timer cues on the default audio device.
package sound

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"intervaltimer/internal/config"
	"intervaltimer/internal/core/timer"
)

var (
	// ErrNoPlayer indicates the audio device could not be opened.
	ErrNoPlayer = errors.New("no audio device available")
	// ErrReleased is returned by Play after Release.
	ErrReleased = errors.New("sound player released")
)

var newOutput = func() Output { return speakerOutput{} }

// New builds the player selected by cfg. In auto mode a missing audio
// device falls back to the terminal bell.
func New(cfg config.SoundConfig, logger *slog.Logger) (timer.SoundPlayer, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if !cfg.Enabled {
		return NopPlayer{}, nil
	}

	switch cfg.Player {
	case config.PlayerNone:
		return NopPlayer{}, nil
	case config.PlayerBell:
		return NewBellPlayer(os.Stdout), nil
	case config.PlayerSpeaker:
		return NewSpeakerPlayer(newOutput(), cfg.Buffer(), logger)
	default:
		player, err := NewSpeakerPlayer(newOutput(), cfg.Buffer(), logger)
		if err != nil {
			logger.Info("no audio device, using terminal bell", "error", err)
			return NewBellPlayer(os.Stdout), nil
		}
		return player, nil
	}
}

// NopPlayer discards every cue.
type NopPlayer struct{}

// Play does nothing.
func (NopPlayer) Play(timer.Cue) error { return nil }

// Release does nothing.
func (NopPlayer) Release() error { return nil }
