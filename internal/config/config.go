// Package config loads grabtext settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mj1618/grabtext/internal/hotkeys"
	"gopkg.in/yaml.v3"
)

// Config holds the effective settings.
type Config struct {
	MaxTextLength int            `yaml:"max_text_length" json:"max_text_length"`
	MaxDepth      int            `yaml:"max_depth" json:"max_depth"`
	Hotkeys       HotkeyConfig   `yaml:"hotkeys" json:"hotkeys"`
	Snapshot      SnapshotConfig `yaml:"snapshot" json:"snapshot"`
	Log           LogConfig      `yaml:"log" json:"log"`
}

// HotkeyConfig maps daemon actions to key combos such as "ctrl+alt+c".
// An empty combo disables the action.
type HotkeyConfig struct {
	Copy  string `yaml:"copy" json:"copy"`
	Print string `yaml:"print" json:"print"`
}

// SnapshotConfig controls `grab --snapshot`.
type SnapshotConfig struct {
	// Padding is the margin in pixels captured around the resolved rect.
	Padding int `yaml:"padding" json:"padding"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Debug bool `yaml:"debug" json:"debug"`
}

// Environment variables that override file settings.
const (
	EnvMaxTextLength = "GRABTEXT_MAX_TEXT_LENGTH"
	EnvMaxDepth      = "GRABTEXT_MAX_DEPTH"
	EnvDebug         = "GRABTEXT_DEBUG"
)

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		MaxTextLength: 1000,
		MaxDepth:      256,
		Hotkeys: HotkeyConfig{
			Copy:  "ctrl+alt+c",
			Print: "ctrl+alt+p",
		},
		Snapshot: SnapshotConfig{Padding: 8},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/grabtext/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "grabtext", "config.yaml"), nil
}

// Load reads the config at path (the default path when empty), then applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// A .env file in the working directory is optional.
	_ = godotenv.Load()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvMaxTextLength); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxTextLength, err)
		}
		c.MaxTextLength = n
	}
	if v := getenv(EnvMaxDepth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxDepth, err)
		}
		c.MaxDepth = n
	}
	if v := getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Log.Debug = b
	}
	return nil
}

// Validate checks limits and hotkey syntax.
func (c *Config) Validate() error {
	if c.MaxTextLength < 0 {
		return fmt.Errorf("max_text_length must be >= 0, got %d", c.MaxTextLength)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth)
	}
	if c.Snapshot.Padding < 0 {
		return fmt.Errorf("snapshot.padding must be >= 0, got %d", c.Snapshot.Padding)
	}
	for name, combo := range map[string]string{"copy": c.Hotkeys.Copy, "print": c.Hotkeys.Print} {
		if err := validateCombo(combo); err != nil {
			return fmt.Errorf("hotkeys.%s: %w", name, err)
		}
	}
	return nil
}

// validateCombo checks combo against the key and modifier names the
// hotkey listener accepts on this OS. An empty combo disables the binding.
func validateCombo(combo string) error {
	if combo == "" {
		return nil
	}
	_, _, err := hotkeys.Parse(combo)
	return err
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
