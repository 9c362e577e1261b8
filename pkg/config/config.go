// Package config loads the YAML configuration of option-storage tooling.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/eeprom"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/logging"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/options"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/storage"
)

// Media backends
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendPebble = "pebble"
)

// Config represents the option storage configuration
type Config struct {
	Media   Media          `yaml:"media"`
	Layout  storage.Layout `yaml:"layout"`
	Gamepad Gamepad        `yaml:"gamepad"`
	Logging Logging        `yaml:"logging"`
	Metrics Metrics        `yaml:"metrics"`
}

// Media describes where the committed image lives
type Media struct {
	Backend    string `yaml:"backend"`
	Path       string `yaml:"path"`
	Size       int    `yaml:"size"`
	BlankFill  uint8  `yaml:"blank_fill"`
	SectorSize int    `yaml:"sector_size,omitempty"`
}

// Gamepad holds gamepad record settings
type Gamepad struct {
	DefaultSOCDMode string `yaml:"default_socd_mode"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Metrics contains metrics configuration
type Metrics struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Media: Media{
			Backend: BackendFile,
			Path:    "./eeprom.bin",
			Size:    eeprom.DefaultSize,
		},
		Layout: storage.DefaultLayout(),
		Gamepad: Gamepad{
			DefaultSOCDMode: options.DefaultSOCDMode.String(),
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from the specified path. Settings missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	switch c.Media.Backend {
	case BackendMemory:
	case BackendFile, BackendPebble:
		if c.Media.Path == "" {
			return fmt.Errorf("media: %s backend requires a path", c.Media.Backend)
		}
	default:
		return fmt.Errorf("media: unknown backend %q", c.Media.Backend)
	}

	if c.Media.Size <= 0 {
		return fmt.Errorf("media: size must be positive, got %d", c.Media.Size)
	}
	if c.Media.SectorSize < 0 {
		return fmt.Errorf("media: sector size must not be negative, got %d", c.Media.SectorSize)
	}

	if err := c.Layout.Validate(c.Media.Size); err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	if _, err := c.SOCDMode(); err != nil {
		return fmt.Errorf("gamepad: %w", err)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}

	return nil
}

// SOCDMode returns the configured default SOCD mode. An empty setting is the
// built-in default.
func (c *Config) SOCDMode() (options.SOCDMode, error) {
	if c.Gamepad.DefaultSOCDMode == "" {
		return options.DefaultSOCDMode, nil
	}
	return options.ParseSOCDMode(c.Gamepad.DefaultSOCDMode)
}

// EEPROMConfig returns the byte store configuration
func (c *Config) EEPROMConfig() eeprom.Config {
	return eeprom.Config{Size: c.Media.Size, BlankFill: c.Media.BlankFill}
}

// StorageConfig returns the option storage configuration
func (c *Config) StorageConfig() (storage.Config, error) {
	socd, err := c.SOCDMode()
	if err != nil {
		return storage.Config{}, err
	}
	return storage.Config{Layout: c.Layout, DefaultSOCDMode: socd}, nil
}

// LoggingOptions returns the logger options for c
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Level: c.Logging.Level, Format: c.Logging.Format}
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./optstore.yaml"
	}

	// For Linux/macOS, use ~/.config/optstore/config.yaml
	configDir := filepath.Join(homeDir, ".config", "optstore")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
