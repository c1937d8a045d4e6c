// Package config loads the application configuration from the user's
// config file and environment. Resolution order for the library
// directory: ANIMLIB_DIR, then the config file, then ~/.animlib/animations.
package config

import (
	"os"
	"path/filepath"

	apperrors "github.com/mizuki/animlib/internal/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPort is the HTTP API port used when neither the config file
// nor the --port flag names one.
const DefaultPort = 8089

// Config holds user-tunable settings.
type Config struct {
	// LibraryDir is the animation directory.
	LibraryDir string `yaml:"library_dir"`
	// Port is the HTTP API listen port.
	Port int `yaml:"port"`
	// Theme forces the TUI color theme: "light", "dark", or "" for auto.
	Theme string `yaml:"theme"`
}

// Path returns the config file location: $ANIMLIB_CONFIG if set,
// otherwise ~/.animlib/config.yaml.
func Path() (string, error) {
	if p := os.Getenv("ANIMLIB_CONFIG"); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", apperrors.ConfigError("failed to resolve home directory", err)
	}
	return filepath.Join(homeDir, ".animlib", "config.yaml"), nil
}

// Load reads the config file if present; a missing file yields
// defaults, not an error. A malformed file is an error.
func Load() (*Config, error) {
	cfg := &Config{Port: DefaultPort}

	path, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, apperrors.ConfigError("failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.ConfigError("malformed config file "+path, err)
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	return cfg, nil
}

// Save writes the config file, creating its directory as needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.ConfigError("failed to create config directory", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return apperrors.ConfigError("failed to encode config", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.ConfigError("failed to write config file", err)
	}
	return nil
}

// AnimationsDir resolves the animation directory: environment override
// first, then the config file, then the default under the home dir. The
// returned path may not exist yet; storage.Open creates it.
func (c *Config) AnimationsDir() string {
	if dir := os.Getenv("ANIMLIB_DIR"); dir != "" {
		return dir
	}
	if c.LibraryDir != "" {
		return c.LibraryDir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "animations"
	}
	return filepath.Join(homeDir, ".animlib", "animations")
}
