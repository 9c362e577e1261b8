package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/options"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/storage"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, BackendFile, config.Media.Backend)
	assert.Equal(t, "./eeprom.bin", config.Media.Path)
	assert.Equal(t, 4096, config.Media.Size)
	assert.Equal(t, uint8(0), config.Media.BlankFill)
	assert.Equal(t, storage.DefaultLayout(), config.Layout)
	assert.Equal(t, "neutral", config.Gamepad.DefaultSOCDMode)
	assert.Equal(t, "info", config.Logging.Level)
	assert.False(t, config.Metrics.Enabled)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		tmpDir := t.TempDir()

		configPath := filepath.Join(tmpDir, "config.yaml")
		expectedConfig := &Config{
			Media: Media{
				Backend:    BackendPebble,
				Path:       "/var/lib/optstore",
				Size:       8192,
				BlankFill:  0xFF,
				SectorSize: 512,
			},
			Layout: storage.Layout{Gamepad: 0, Board: 64, LED: 128, Animation: 256},
			Gamepad: Gamepad{
				DefaultSOCDMode: "up_priority",
			},
			Logging: Logging{
				Level:  "debug",
				Format: "json",
			},
			Metrics: Metrics{Enabled: true},
		}

		err := SaveConfig(expectedConfig, configPath)
		require.NoError(t, err)

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expectedConfig, loadedConfig)
	})

	t.Run("missing settings keep defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "partial.yaml")
		data := []byte("media:\n  backend: memory\n  blank_fill: 0xFF\n")
		require.NoError(t, os.WriteFile(configPath, data, 0600))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, BackendMemory, config.Media.Backend)
		assert.Equal(t, uint8(0xFF), config.Media.BlankFill)
		assert.Equal(t, 4096, config.Media.Size)
		assert.Equal(t, storage.DefaultLayout(), config.Layout)
		assert.Equal(t, "info", config.Logging.Level)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := LoadConfig("/non/existent/config.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("load invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "invalid.yaml")
		err := os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644)
		require.NoError(t, err)

		_, err = LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	config := DefaultConfig()

	err := SaveConfig(config, configPath)
	require.NoError(t, err)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loadedConfig, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loadedConfig)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "memory without path", mutate: func(c *Config) {
			c.Media.Backend = BackendMemory
			c.Media.Path = ""
		}},
		{name: "unknown backend", mutate: func(c *Config) { c.Media.Backend = "flash" }, wantErr: "unknown backend"},
		{name: "file without path", mutate: func(c *Config) { c.Media.Path = "" }, wantErr: "requires a path"},
		{name: "zero size", mutate: func(c *Config) { c.Media.Size = 0 }, wantErr: "size must be positive"},
		{name: "negative sector size", mutate: func(c *Config) { c.Media.SectorSize = -1 }, wantErr: "sector size"},
		{name: "layout past the image", mutate: func(c *Config) { c.Media.Size = 2048 }, wantErr: "layout"},
		{name: "overlapping layout", mutate: func(c *Config) { c.Layout.LED = c.Layout.Board }, wantErr: "slots overlap"},
		{name: "unknown socd mode", mutate: func(c *Config) { c.Gamepad.DefaultSOCDMode = "last_win" }, wantErr: "gamepad"},
		{name: "empty socd mode", mutate: func(c *Config) { c.Gamepad.DefaultSOCDMode = "" }},
		{name: "unknown log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging"},
		{name: "unknown log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "unknown format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)

			err := config.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestStorageConfig(t *testing.T) {
	config := DefaultConfig()
	config.Gamepad.DefaultSOCDMode = "second_input_priority"
	config.Media.BlankFill = 0xFF

	sc, err := config.StorageConfig()
	require.NoError(t, err)
	assert.Equal(t, options.SOCDModeSecondInputPriority, sc.DefaultSOCDMode)
	assert.Equal(t, config.Layout, sc.Layout)

	ec := config.EEPROMConfig()
	assert.Equal(t, 4096, ec.Size)
	assert.Equal(t, byte(0xFF), ec.BlankFill)

	config.Gamepad.DefaultSOCDMode = "bogus"
	_, err = config.StorageConfig()
	assert.Error(t, err)
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, "optstore")
	assert.Contains(t, path, "config.yaml")
}

func TestConfigExists(t *testing.T) {
	tmpDir := t.TempDir()

	existingPath := filepath.Join(tmpDir, "exists.yaml")
	nonExistentPath := filepath.Join(tmpDir, "does-not-exist.yaml")

	err := os.WriteFile(existingPath, []byte("test"), 0644)
	require.NoError(t, err)

	assert.True(t, ConfigExists(existingPath))
	assert.False(t, ConfigExists(nonExistentPath))
}

func TestConfigYAMLKeys(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))

	assert.Contains(t, raw, "media")
	assert.Contains(t, raw["media"], "blank_fill")
	assert.NotContains(t, raw["media"], "sector_size")
	assert.Contains(t, raw["layout"], "animation")
	assert.Equal(t, "neutral", raw["gamepad"]["default_socd_mode"])
}

func TestSaveConfigErrorHandling(t *testing.T) {
	config := DefaultConfig()

	// A regular file where a directory is expected
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	err := SaveConfig(config, filepath.Join(blocker, "config.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create config directory")
}
