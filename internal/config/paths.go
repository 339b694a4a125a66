package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/docsync/config.yml
// - macOS: ~/Library/Application Support/docsync/config.yml
// - Windows: %APPDATA%\docsync\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "docsync", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file,
// relative to the project directory.
func ProjectConfigPath() string {
	return filepath.Join(".docsync", "config.yml")
}

// ProjectJSONConfigPath returns the JSON alternative to ProjectConfigPath.
func ProjectJSONConfigPath() string {
	return filepath.Join(".docsync", "config.json")
}
