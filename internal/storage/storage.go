// Package storage persists presets and quick-start settings.
package storage

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"intervaltimer/internal/config"
	"intervaltimer/internal/core/model"
)

// OpenPresets returns the preset repository selected by backend, rooted at dir.
func OpenPresets(backend, dir string) (model.PresetRepository, error) {
	switch backend {
	case config.BackendYAML, "":
		return NewYAMLPresetStore(dir), nil
	case config.BackendSQLite:
		return NewSQLitePresetStore(dir)
	case config.BackendMemory:
		return NewMemoryPresetStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// PresetsFile returns the file a backend writes to, or "" when it keeps
// presets in memory.
func PresetsFile(backend, dir string) string {
	switch backend {
	case config.BackendYAML, "":
		return NewYAMLPresetStore(dir).Path()
	case config.BackendSQLite:
		return filepath.Join(dir, presetsDBFileName)
	default:
		return ""
	}
}

func newPresetID() string {
	return uuid.NewString()
}

func cleanName(name string) string {
	return strings.TrimSpace(name)
}

func sortPresets(presets []model.Preset) {
	sort.SliceStable(presets, func(i, j int) bool {
		left, right := strings.ToLower(presets[i].Name), strings.ToLower(presets[j].Name)
		if left != right {
			return left < right
		}
		return presets[i].ID < presets[j].ID
	})
}
