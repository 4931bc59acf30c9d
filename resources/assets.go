// Package resources embeds the cue sounds and the application logo.
package resources

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	soundDir = "sounds/"
	soundExt = ".wav"
	logoPath = "logo/intervaltimer.png"
)

//go:embed sounds/*.wav
var soundFS embed.FS

//go:embed logo/*.png
var logoFS embed.FS

var soundCache sync.Map
var logoCache sync.Map

// Sound returns the embedded sound for a cue name such as "end_work".
func Sound(name string) (fyne.Resource, error) {
	return loadResource(soundFS, soundDir+name+soundExt, &soundCache)
}

// SoundNames lists the embedded cue names without extension.
func SoundNames() []string {
	entries, err := fs.ReadDir(soundFS, strings.TrimSuffix(soundDir, "/"))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), soundExt))
	}
	sort.Strings(names)
	return names
}

// Logo returns the application icon.
func Logo() (fyne.Resource, error) {
	return loadResource(logoFS, logoPath, &logoCache)
}

// MustLogo returns the application icon or panics on error.
func MustLogo() fyne.Resource {
	resource, err := Logo()
	if err != nil {
		panic(err)
	}
	return resource
}

func loadResource(files embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := files.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	name := path[strings.LastIndex(path, "/")+1:]
	resource := fyne.NewStaticResource(name, data)
	cache.Store(path, resource)
	return resource, nil
}
