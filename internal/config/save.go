package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save writes the config to ConfigDir and returns the file written.
func (c *Config) Save() (string, error) {
	dir := ConfigDir()
	if dir == "" {
		return "", fmt.Errorf("%w: no user config directory", ErrInvalidConfig)
	}
	path := filepath.Join(dir, FileName)
	return path, c.SaveTo(path)
}

// SaveTo writes the config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
