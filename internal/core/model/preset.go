package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPresetNotFound indicates the requested preset does not exist.
	ErrPresetNotFound = errors.New("preset not found")
	// ErrInvalidPreset indicates a preset cannot be stored.
	ErrInvalidPreset = errors.New("invalid preset")
)

// Preset is a named interval configuration saved by the user.
type Preset struct {
	ID       string
	Name     string
	Interval TimeIntervalConfig
}

// ValidatePreset checks a preset name and interval before storage.
func ValidatePreset(name string, interval TimeIntervalConfig) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidPreset)
	}
	if err := interval.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	return nil
}

// PresetRepository persists presets. The timer engine never uses it;
// the quick-start screen and the CLI do.
type PresetRepository interface {
	Load(id string) (Preset, error)
	Save(name string, interval TimeIntervalConfig) (Preset, error)
	Update(preset Preset) error
	List() ([]Preset, error)
	Delete(id string) error
	Close() error
}

// Settings contains the persisted quick-start state.
type Settings struct {
	QuickStart TimeIntervalConfig
	LastPreset string
}

// DefaultSettings returns settings for a fresh install.
func DefaultSettings() Settings {
	return Settings{QuickStart: DefaultQuickStart()}
}
