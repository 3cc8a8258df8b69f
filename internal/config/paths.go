package config

import (
	"os"
	"path/filepath"
)

// Dir returns the configuration directory path (~/.config/cartling).
// It can be overridden with the CARTLING_CONFIG_DIR environment variable.
func Dir() string {
	if d := os.Getenv("CARTLING_CONFIG_DIR"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "cartling")
	}
	return filepath.Join(home, ".config", "cartling")
}

// ConfigFile returns the path to the config.yaml file.
func ConfigFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DatabaseFile returns the path to the SQLite state database.
func DatabaseFile() string {
	return filepath.Join(Dir(), "cartling.db")
}

// StaplesFile returns the path to the STAPLES.md file.
func StaplesFile() string {
	return filepath.Join(Dir(), "STAPLES.md")
}

// ImportDir returns the path to the import drop-folder.
func ImportDir() string {
	return filepath.Join(Dir(), "import")
}

// LogFile returns the path to the debug log file.
func LogFile() string {
	return filepath.Join(Dir(), "cartling.log")
}
