package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Import ImportConfig `yaml:"import"`
	TUI    TUIConfig    `yaml:"tui"`
	Debug  bool         `yaml:"debug"`
}

// APIConfig holds settings for the remote food-name search API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ImportConfig holds settings for the import drop-folder.
type ImportConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TUIConfig holds TUI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "https://food-search.cartling.dev",
			TimeoutSeconds: 10,
		},
		Import: ImportConfig{
			Enabled: false,
		},
		TUI: TUIConfig{
			Theme: "auto",
		},
	}
}

// Load reads the config from disk. If the file doesn't exist, returns defaults.
func Load() (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(ConfigFile())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), err
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigFile(), data, 0o644)
}

// IsFirstRun returns true if no config file has been written yet.
func IsFirstRun() bool {
	_, err := os.Stat(ConfigFile())
	return os.IsNotExist(err)
}
