// Package config handles reading and writing .bandhu/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvBackendURL overrides the configured backend URL when set.
const EnvBackendURL = "BANDHU_BACKEND_URL"

// Config is the top-level structure for .bandhu/config.yaml.
type Config struct {
	Version int           `yaml:"version"`
	Backend BackendConfig `yaml:"backend"`
	User    UserConfig    `yaml:"user"`
}

// BackendConfig points at the recruiting backend.
type BackendConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// UserConfig holds the locally persisted identity. A non-empty ID means
// the user has logged in; this gates commands, it is not a security
// boundary.
type UserConfig struct {
	ID      string `yaml:"id"`
	Company string `yaml:"company"`
}

// configFileName is the path relative to the base directory.
const configDir = ".bandhu"
const configFile = "config.yaml"

// Dir returns the .bandhu directory inside base. base is normally the
// user's home directory; tests pass a temp dir.
func Dir(base string) string {
	return filepath.Join(base, configDir)
}

// HomeBase returns the directory .bandhu lives under, preferring the
// user's home directory and falling back to the working directory.
func HomeBase() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// ReadConfig reads .bandhu/config.yaml from the given base directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(base string) (*Config, error) {
	path := filepath.Join(base, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .bandhu/config.yaml in the given base directory.
// Creates the .bandhu/ directory if it does not exist.
func WriteConfig(base string, cfg *Config) error {
	dirPath := filepath.Join(base, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Backend: BackendConfig{
			URL:            "http://localhost:5000",
			TimeoutSeconds: 60,
		},
	}
}

// BackendURL returns the backend URL, honouring the environment
// override.
func (c *Config) BackendURL() string {
	if url := os.Getenv(EnvBackendURL); url != "" {
		return url
	}
	return c.Backend.URL
}
