package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/eeprom"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/logging"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/metrics"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/options"
)

// Config holds configuration for option storage
type Config struct {
	Layout          Layout           // Slot table
	DefaultSOCDMode options.SOCDMode // SOCD mode of the default gamepad record
}

// DefaultConfig returns the controller's default storage configuration
func DefaultConfig() Config {
	return Config{
		Layout:          DefaultLayout(),
		DefaultSOCDMode: options.DefaultSOCDMode,
	}
}

// Storage persists the controller's option records in a byte store. Board
// and LED records are stored verbatim, the gamepad record carries a presence
// flag and the animation record a checksum.
//
// Setters only change the store's working image; Save commits it.
// Storage is not safe for concurrent use.
type Storage struct {
	store   eeprom.ByteStore
	config  Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	board     *Slot[options.BoardOptions]
	led       *Slot[options.LEDOptions]
	gamepad   *Slot[options.GamepadOptions]
	animation *Slot[options.AnimationOptions]
}

// Option configures a Storage
type Option func(*Storage)

// WithLogger sets the logger for slot events
func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics sink for slot events
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Storage) {
		s.metrics = m
	}
}

// New creates option storage over store with the slot table in config
func New(store eeprom.ByteStore, config Config, opts ...Option) (*Storage, error) {
	s := &Storage{
		store:  store,
		config: config,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := config.Layout.Validate(store.Size()); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	var err error
	s.board, err = NewSlot(store, SlotConfig[options.BoardOptions]{
		Record:  RecordBoard,
		Index:   config.Layout.Board,
		Policy:  None(),
		Logger:  s.logger,
		Metrics: s.metrics,
	})
	if err != nil {
		return nil, err
	}

	s.led, err = NewSlot(store, SlotConfig[options.LEDOptions]{
		Record:  RecordLED,
		Index:   config.Layout.LED,
		Policy:  None(),
		Logger:  s.logger,
		Metrics: s.metrics,
	})
	if err != nil {
		return nil, err
	}

	socd := config.DefaultSOCDMode
	gamepadDefaults := func() options.GamepadOptions {
		return options.DefaultGamepadOptions(socd)
	}
	s.gamepad, err = NewSlot(store, SlotConfig[options.GamepadOptions]{
		Record:   RecordGamepad,
		Index:    config.Layout.Gamepad,
		Policy:   PresenceFlag(options.GamepadIsSetOffset),
		Defaults: gamepadDefaults,
		Logger:   s.logger,
		Metrics:  s.metrics,
	})
	if err != nil {
		return nil, err
	}

	s.animation, err = NewSlot(store, SlotConfig[options.AnimationOptions]{
		Record:   RecordAnimation,
		Index:    config.Layout.Animation,
		Policy:   Checksum(options.AnimationChecksumOffset),
		Defaults: options.DefaultAnimationOptions,
		Logger:   s.logger,
		Metrics:  s.metrics,
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Start mounts the byte store. It must be called once before Save.
func (s *Storage) Start(ctx context.Context) error {
	if err := s.store.Start(ctx); err != nil {
		return fmt.Errorf("start storage: %w", err)
	}
	s.logger.Debug("storage started", "size", s.store.Size())
	return nil
}

// Save commits every pending write to physical media
func (s *Storage) Save(ctx context.Context) error {
	return s.store.Commit(ctx)
}

// Close releases the byte store when it holds resources
func (s *Storage) Close() error {
	if closer, ok := s.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// GetBoardOptions returns the board record exactly as stored. Blank memory
// yields zero or garbage fields.
func (s *Storage) GetBoardOptions() options.BoardOptions {
	opts, _ := s.board.Get()
	return opts
}

// SetBoardOptions writes the board record verbatim
func (s *Storage) SetBoardOptions(opts options.BoardOptions) {
	s.board.Set(opts)
}

// GetLEDOptions returns the LED record exactly as stored
func (s *Storage) GetLEDOptions() options.LEDOptions {
	opts, _ := s.led.Get()
	return opts
}

// SetLEDOptions writes the LED record verbatim
func (s *Storage) SetLEDOptions(opts options.LEDOptions) {
	s.led.Set(opts)
}

// GetGamepadOptions returns the gamepad record, or the defaults with
// StatusDefaulted while the record has never been set. Defaults are not
// written.
func (s *Storage) GetGamepadOptions() (options.GamepadOptions, Status) {
	return s.gamepad.Get()
}

// SetGamepadOptions writes the gamepad record with IsSet forced true
func (s *Storage) SetGamepadOptions(opts options.GamepadOptions) {
	s.gamepad.Set(opts)
}

// Store returns the underlying byte store
func (s *Storage) Store() eeprom.ByteStore {
	return s.store
}
