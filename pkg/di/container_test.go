package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/config"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/eeprom"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/logging"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/options"
)

type staticMediaFactory struct {
	media eeprom.Media
}

func (f *staticMediaFactory) CreateMedia(cfg config.Media) (eeprom.Media, error) {
	return f.media, nil
}

func TestDefaultMediaFactory(t *testing.T) {
	factory := NewMediaFactory()
	dir := t.TempDir()

	testCases := []struct {
		name    string
		cfg     config.Media
		want    any
		wantErr bool
	}{
		{name: "memory", cfg: config.Media{Backend: config.BackendMemory}, want: &eeprom.MemoryMedia{}},
		{name: "file", cfg: config.Media{Backend: config.BackendFile, Path: filepath.Join(dir, "img.bin")}, want: &eeprom.FileMedia{}},
		{name: "pebble", cfg: config.Media{Backend: config.BackendPebble, Path: filepath.Join(dir, "pebble")}, want: &eeprom.PebbleMedia{}},
		{name: "unknown", cfg: config.Media{Backend: "tape"}, wantErr: true},
		{name: "file without path", cfg: config.Media{Backend: config.BackendFile}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			media, err := factory.CreateMedia(tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer media.Close()
			assert.IsType(t, tc.want, media)
		})
	}
}

func TestContainer_OpenStorage(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.Media.Path = filepath.Join(t.TempDir(), "eeprom.bin")
	cfg.Gamepad.DefaultSOCDMode = "up_priority"

	container := NewContainer()
	s, err := container.OpenStorage(ctx, cfg, logging.Discard(), nil)
	require.NoError(t, err)

	gamepad, _ := s.GetGamepadOptions()
	assert.Equal(t, options.SOCDModeUpPriority, gamepad.SOCDMode)

	s.SetBoardOptions(options.BoardOptions{HasBoardOptions: true, PinDpadUp: 9})
	require.NoError(t, s.Save(ctx))
	require.NoError(t, s.Close())

	reopened, err := container.OpenStorage(ctx, cfg, logging.Discard(), nil)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, uint8(9), reopened.GetBoardOptions().PinDpadUp)
}

func TestContainer_OpenStorageErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("bad socd mode", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Gamepad.DefaultSOCDMode = "nope"
		_, err := NewContainer().OpenStorage(ctx, cfg, logging.Discard(), nil)
		assert.Error(t, err)
	})

	t.Run("image size mismatch", func(t *testing.T) {
		container := NewContainer()
		container.SetMediaFactory(&staticMediaFactory{media: eeprom.NewMemoryMediaFrom(make([]byte, 100))})

		cfg := config.DefaultConfig()
		_, err := container.OpenStorage(ctx, cfg, logging.Discard(), nil)
		assert.ErrorIs(t, err, eeprom.ErrSizeMismatch)
	})

	t.Run("layout outside image", func(t *testing.T) {
		container := NewContainer()
		container.SetMediaFactory(&staticMediaFactory{media: eeprom.NewMemoryMedia()})

		cfg := config.DefaultConfig()
		cfg.Media.Size = 1024
		_, err := container.OpenStorage(ctx, cfg, logging.Discard(), nil)
		assert.Error(t, err)
	})
}

func TestContainer_SetMediaFactory(t *testing.T) {
	container := NewContainer()
	assert.IsType(t, &DefaultMediaFactory{}, container.GetMediaFactory())

	factory := &staticMediaFactory{media: eeprom.NewMemoryMedia()}
	container.SetMediaFactory(factory)
	assert.Same(t, factory, container.GetMediaFactory())
}
