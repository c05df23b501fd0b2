package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDirName = "taskonaut"

// DefaultDataDir resolves the per-user directory holding the session
// and config files.
func DefaultDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appDirName), nil
}
