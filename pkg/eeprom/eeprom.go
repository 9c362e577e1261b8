package eeprom

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/logging"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/metrics"
)

// EEPROM emulates byte-addressable EEPROM over a Media. All reads and writes
// go to an in-memory image; Commit flushes the whole image in one operation.
//
// EEPROM is not safe for concurrent use.
type EEPROM struct {
	config  Config
	media   Media
	image   []byte
	started bool
	stats   Stats
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures an EEPROM
type Option func(*EEPROM)

// WithLogger sets the logger for media events
func WithLogger(logger *slog.Logger) Option {
	return func(e *EEPROM) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics sink for commits
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *EEPROM) {
		e.metrics = m
	}
}

// New creates an EEPROM over media. The image starts blank until Start loads
// the committed contents.
func New(media Media, config Config, opts ...Option) (*EEPROM, error) {
	if config.Size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, config.Size)
	}

	e := &EEPROM{
		config: config,
		media:  media,
		image:  make([]byte, config.Size),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.fillBlank()
	e.metrics.SetImageSize(config.Size)

	return e, nil
}

// Start loads the committed media contents into the image. Blank media
// leaves a blank-filled image. Calling Start again is a no-op.
func (e *EEPROM) Start(ctx context.Context) error {
	if e.started {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	found, err := e.media.Load(ctx, e.image)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}
	if !found {
		e.fillBlank()
		e.logger.Info("media is blank", "size", e.config.Size)
	}

	e.started = true
	return nil
}

// Get copies len(out) bytes starting at index from the image into out
func (e *EEPROM) Get(index int, out []byte) {
	e.checkRange(index, len(out))
	copy(out, e.image[index:index+len(out)])
	e.stats.Reads++
}

// Set copies in into the image starting at index. The write is not durable
// until Commit.
func (e *EEPROM) Set(index int, in []byte) {
	e.checkRange(index, len(in))
	copy(e.image[index:index+len(in)], in)
	e.stats.Writes++
}

// Commit flushes the whole image to media
func (e *EEPROM) Commit(ctx context.Context) error {
	if !e.started {
		return ErrNotStarted
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := e.media.Flush(ctx, e.image)
	duration := time.Since(start)
	e.metrics.RecordCommit(err == nil, duration)
	if err != nil {
		e.logger.Error("commit failed", "error", err)
		return fmt.Errorf("commit image: %w", err)
	}

	e.stats.Commits++
	e.logger.Debug("image committed", "size", e.config.Size, "duration", duration)
	return nil
}

// Size returns the image size in bytes
func (e *EEPROM) Size() int {
	return e.config.Size
}

// Stats returns operation counters
func (e *EEPROM) Stats() Stats {
	return e.stats
}

// Close closes the underlying media. Uncommitted writes are discarded.
func (e *EEPROM) Close() error {
	e.started = false
	return e.media.Close()
}

func (e *EEPROM) fillBlank() {
	for i := range e.image {
		e.image[i] = e.config.BlankFill
	}
}

// checkRange panics on access outside the image, like slice indexing would
func (e *EEPROM) checkRange(index, n int) {
	if index < 0 || n < 0 || index+n > len(e.image) {
		panic(fmt.Sprintf("eeprom: access [%d:%d] out of range for %d byte image", index, index+n, len(e.image)))
	}
}
