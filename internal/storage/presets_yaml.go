package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"intervaltimer/internal/core/model"
)

const presetsFileName = "presets.yaml"

type yamlPresetFile struct {
	Presets []yamlPreset `yaml:"presets"`
}

type yamlPreset struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	WorkMs    int64  `yaml:"work_ms"`
	RestMs    int64  `yaml:"rest_ms"`
	Intervals int    `yaml:"intervals"`
}

// YAMLPresetStore keeps presets in a single YAML file. The file is re-read
// on every call so edits made by other processes are picked up.
type YAMLPresetStore struct {
	mu   sync.Mutex
	path string
}

// NewYAMLPresetStore stores presets in dir/presets.yaml.
func NewYAMLPresetStore(dir string) *YAMLPresetStore {
	return &YAMLPresetStore{path: filepath.Join(dir, presetsFileName)}
}

// Path returns the backing file.
func (store *YAMLPresetStore) Path() string {
	return store.path
}

// Load returns the preset with id.
func (store *YAMLPresetStore) Load(id string) (model.Preset, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	presets, err := store.readLocked()
	if err != nil {
		return model.Preset{}, err
	}
	for _, preset := range presets {
		if preset.ID == id {
			return preset, nil
		}
	}
	return model.Preset{}, fmt.Errorf("load preset %s: %w", id, model.ErrPresetNotFound)
}

// Save stores a new preset.
func (store *YAMLPresetStore) Save(name string, interval model.TimeIntervalConfig) (model.Preset, error) {
	if err := model.ValidatePreset(name, interval); err != nil {
		return model.Preset{}, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	presets, err := store.readLocked()
	if err != nil {
		return model.Preset{}, err
	}
	preset := model.Preset{ID: newPresetID(), Name: cleanName(name), Interval: interval}
	if err := store.writeLocked(append(presets, preset)); err != nil {
		return model.Preset{}, err
	}
	return preset, nil
}

// Update replaces the name and interval of an existing preset.
func (store *YAMLPresetStore) Update(preset model.Preset) error {
	if err := model.ValidatePreset(preset.Name, preset.Interval); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	presets, err := store.readLocked()
	if err != nil {
		return err
	}
	for i := range presets {
		if presets[i].ID == preset.ID {
			preset.Name = cleanName(preset.Name)
			presets[i] = preset
			return store.writeLocked(presets)
		}
	}
	return fmt.Errorf("update preset %s: %w", preset.ID, model.ErrPresetNotFound)
}

// List returns every preset ordered by name.
func (store *YAMLPresetStore) List() ([]model.Preset, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	presets, err := store.readLocked()
	if err != nil {
		return nil, err
	}
	sortPresets(presets)
	return presets, nil
}

// Delete removes the preset with id.
func (store *YAMLPresetStore) Delete(id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	presets, err := store.readLocked()
	if err != nil {
		return err
	}
	for i := range presets {
		if presets[i].ID == id {
			return store.writeLocked(append(presets[:i], presets[i+1:]...))
		}
	}
	return fmt.Errorf("delete preset %s: %w", id, model.ErrPresetNotFound)
}

// Close is a no-op; the file is not held open.
func (store *YAMLPresetStore) Close() error {
	return nil
}

func (store *YAMLPresetStore) readLocked() ([]model.Preset, error) {
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read presets file: %w", err)
	}

	var fileData yamlPresetFile
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return nil, fmt.Errorf("parse presets yaml: %w", err)
	}

	presets := make([]model.Preset, 0, len(fileData.Presets))
	for _, entry := range fileData.Presets {
		presets = append(presets, model.Preset{
			ID:   entry.ID,
			Name: entry.Name,
			Interval: model.TimeIntervalConfig{
				Work:      time.Duration(entry.WorkMs) * time.Millisecond,
				Rest:      time.Duration(entry.RestMs) * time.Millisecond,
				Intervals: entry.Intervals,
			},
		})
	}
	return presets, nil
}

func (store *YAMLPresetStore) writeLocked(presets []model.Preset) error {
	fileData := yamlPresetFile{Presets: make([]yamlPreset, 0, len(presets))}
	for _, preset := range presets {
		fileData.Presets = append(fileData.Presets, yamlPreset{
			ID:        preset.ID,
			Name:      preset.Name,
			WorkMs:    preset.Interval.Work.Milliseconds(),
			RestMs:    preset.Interval.Rest.Milliseconds(),
			Intervals: preset.Interval.Intervals,
		})
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal presets yaml: %w", err)
	}
	if err := writeFileAtomic(store.path, serialized); err != nil {
		return fmt.Errorf("write presets file: %w", err)
	}
	return nil
}
