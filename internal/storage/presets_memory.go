package storage

import (
	"fmt"
	"sync"

	"intervaltimer/internal/core/model"
)

// MemoryPresetStore keeps presets in process memory.
type MemoryPresetStore struct {
	mu      sync.RWMutex
	presets map[string]model.Preset
}

// NewMemoryPresetStore creates an empty store.
func NewMemoryPresetStore() *MemoryPresetStore {
	return &MemoryPresetStore{presets: make(map[string]model.Preset)}
}

// Load returns the preset with the given ID.
func (store *MemoryPresetStore) Load(id string) (model.Preset, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	preset, ok := store.presets[id]
	if !ok {
		return model.Preset{}, fmt.Errorf("load preset %s: %w", id, model.ErrPresetNotFound)
	}
	return preset, nil
}

// Save stores a new preset.
func (store *MemoryPresetStore) Save(name string, interval model.TimeIntervalConfig) (model.Preset, error) {
	if err := model.ValidatePreset(name, interval); err != nil {
		return model.Preset{}, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	preset := model.Preset{ID: newPresetID(), Name: cleanName(name), Interval: interval}
	store.presets[preset.ID] = preset
	return preset, nil
}

// Update replaces the name and interval of an existing preset.
func (store *MemoryPresetStore) Update(preset model.Preset) error {
	if err := model.ValidatePreset(preset.Name, preset.Interval); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.presets[preset.ID]; !ok {
		return fmt.Errorf("update preset %s: %w", preset.ID, model.ErrPresetNotFound)
	}
	preset.Name = cleanName(preset.Name)
	store.presets[preset.ID] = preset
	return nil
}

// List returns all presets sorted by name.
func (store *MemoryPresetStore) List() ([]model.Preset, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	presets := make([]model.Preset, 0, len(store.presets))
	for _, preset := range store.presets {
		presets = append(presets, preset)
	}
	sortPresets(presets)
	return presets, nil
}

// Delete removes the preset with the given ID.
func (store *MemoryPresetStore) Delete(id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.presets[id]; !ok {
		return fmt.Errorf("delete preset %s: %w", id, model.ErrPresetNotFound)
	}
	delete(store.presets, id)
	return nil
}

// Close is a no-op.
func (store *MemoryPresetStore) Close() error {
	return nil
}
