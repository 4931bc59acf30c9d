package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user directories and the single-instance lock.
const AppName = "intervaltimer"

// Dirs resolves the OS-specific directories used by the application.
type Dirs interface {
	ConfigDir() (string, error)
}

type platformDirs struct {
	appName string
}

// NewDirs returns directories scoped to appName.
func NewDirs(appName string) Dirs {
	if appName == "" {
		appName = AppName
	}
	return &platformDirs{appName: appName}
}

// ConfigDir returns the application directory inside the OS config root.
func (dirs *platformDirs) ConfigDir() (string, error) {
	root, err := userRoot(os.UserConfigDir, fallbackConfigDir)
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(root, dirs.appName), nil
}

func userRoot(lookup func() (string, error), fallback func(string) string) (string, error) {
	dir, err := lookup()
	if err == nil && dir != "" {
		return dir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", err
		}
		return "", homeErr
	}
	return fallback(homeDir), nil
}
