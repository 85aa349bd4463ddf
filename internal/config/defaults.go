package config

import (
	"os"
	"path/filepath"
)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:      "http://localhost:8000",
		TimeoutSeconds: 60,
		TopK:           3,
		SaveByDefault:  false,
		Units:          UnitsCelsius,
		Assistant: AssistantConfig{
			Provider: AssistantBackend,
			Model:    "gpt-4o-mini",
		},
	}
}

// DefaultPath returns the default config file path (~/.leafdoctor.yml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".leafdoctor.yml"), nil
}

// ResolveDataDir returns the directory for the local journal and reports,
// creating it if needed. Defaults to ~/.leafdoctor.
func (c *Config) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".leafdoctor")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
