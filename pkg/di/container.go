// Package di provides dependency injection container
package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/config"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/eeprom"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/metrics"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/storage"
)

// MediaFactory creates the physical media backing a byte store
type MediaFactory interface {
	CreateMedia(cfg config.Media) (eeprom.Media, error)
}

// DefaultMediaFactory is the default implementation of MediaFactory
type DefaultMediaFactory struct{}

// NewMediaFactory creates a new media factory
func NewMediaFactory() MediaFactory {
	return &DefaultMediaFactory{}
}

// CreateMedia opens the backend named by cfg
func (f *DefaultMediaFactory) CreateMedia(cfg config.Media) (eeprom.Media, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return eeprom.NewMemoryMedia(), nil
	case config.BackendFile:
		return eeprom.NewFileMedia(eeprom.FileMediaConfig{FilePath: cfg.Path})
	case config.BackendPebble:
		return eeprom.NewPebbleMedia(eeprom.PebbleMediaConfig{Dir: cfg.Path, SectorSize: cfg.SectorSize})
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Backend)
	}
}

// Container holds all the dependencies for the application
type Container struct {
	mediaFactory MediaFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		mediaFactory: NewMediaFactory(),
	}
}

// GetMediaFactory returns the media factory
func (c *Container) GetMediaFactory() MediaFactory {
	return c.mediaFactory
}

// SetMediaFactory allows overriding the media factory (for testing)
func (c *Container) SetMediaFactory(factory MediaFactory) {
	c.mediaFactory = factory
}

// OpenStorage creates media, byte store and option storage from cfg and
// starts them. The caller owns the returned storage and must Close it.
func (c *Container) OpenStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*storage.Storage, error) {
	storageConfig, err := cfg.StorageConfig()
	if err != nil {
		return nil, err
	}

	media, err := c.mediaFactory.CreateMedia(cfg.Media)
	if err != nil {
		return nil, fmt.Errorf("failed to create media: %w", err)
	}

	store, err := eeprom.New(media, cfg.EEPROMConfig(),
		eeprom.WithLogger(logger), eeprom.WithMetrics(m))
	if err != nil {
		_ = media.Close()
		return nil, fmt.Errorf("failed to create byte store: %w", err)
	}

	s, err := storage.New(store, storageConfig,
		storage.WithLogger(logger), storage.WithMetrics(m))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	if err := s.Start(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}
