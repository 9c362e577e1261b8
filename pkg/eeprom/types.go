package eeprom

import "context"

// ByteStore is a fixed-size byte-addressable store with a working image and
// an explicit commit to physical media. Get and Set touch only the image;
// Commit makes the image durable.
type ByteStore interface {
	Start(ctx context.Context) error
	Get(index int, out []byte)
	Set(index int, in []byte)
	Commit(ctx context.Context) error
	Size() int
}

// Media is the physical non-volatile backing of an EEPROM image
type Media interface {
	// Load fills image with the committed contents. It returns false, leaving
	// image untouched, when the media has never been committed.
	Load(ctx context.Context, image []byte) (bool, error)

	// Flush replaces the committed contents with image. A failed Flush leaves
	// the previous contents intact.
	Flush(ctx context.Context, image []byte) error

	// Close releases the media
	Close() error
}

// Config holds configuration for an EEPROM
type Config struct {
	Size      int  // Image size in bytes
	BlankFill byte // Byte pattern of never-committed media
}

// DefaultSize is the image size used by the controller firmware
const DefaultSize = 4096

// DefaultConfig returns the controller's default EEPROM configuration
func DefaultConfig() Config {
	return Config{
		Size:      DefaultSize,
		BlankFill: 0x00,
	}
}

// Stats counts image and media operations
type Stats struct {
	Reads   int64 // Get calls
	Writes  int64 // Set calls
	Commits int64 // Successful physical commits
}

// Errors
var (
	ErrNotStarted   = &StoreError{"eeprom is not started"}
	ErrSizeMismatch = &StoreError{"media size does not match image size"}
	ErrClosed       = &StoreError{"media is closed"}
	ErrInvalidSize  = &StoreError{"invalid image size"}
)

// StoreError represents a byte store error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
