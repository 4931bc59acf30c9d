package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"intervaltimer/internal/core/model"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkSeconds int    `yaml:"work_seconds"`
	RestSeconds int    `yaml:"rest_seconds"`
	Intervals   int    `yaml:"intervals"`
	LastPreset  string `yaml:"last_preset,omitempty"`
}

// LoadSettings reads the quick-start settings from dir.
// If the file does not exist, default settings are returned.
func LoadSettings(dir string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes the quick-start settings to dir.
func SaveSettings(dir string, settings model.Settings) error {
	fileData := yamlSettings{
		WorkSeconds: int(settings.QuickStart.Work / time.Second),
		RestSeconds: int(settings.QuickStart.Rest / time.Second),
		Intervals:   settings.QuickStart.Intervals,
		LastPreset:  settings.LastPreset,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, settingsFileName), serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	candidate := model.TimeIntervalConfig{
		Work:      time.Duration(fileData.WorkSeconds) * time.Second,
		Rest:      time.Duration(fileData.RestSeconds) * time.Second,
		Intervals: fileData.Intervals,
	}
	if candidate.Validate() == nil && candidate.Work > 0 {
		settings.QuickStart = candidate
	}
	settings.LastPreset = fileData.LastPreset
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
