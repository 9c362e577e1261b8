package eeprom

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileMediaConfig holds configuration for file media
type FileMediaConfig struct {
	FilePath string // Path to the image file
}

// FileMedia stores the committed image as a single file. A commit writes a
// temporary file next to the image, syncs it and renames it over the image,
// so a crash mid-commit leaves the previous image in place.
type FileMedia struct {
	config FileMediaConfig
	closed bool
}

// NewFileMedia creates file media, creating the image directory if needed
func NewFileMedia(config FileMediaConfig) (*FileMedia, error) {
	if config.FilePath == "" {
		return nil, fmt.Errorf("file media: empty file path")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, err
	}

	return &FileMedia{config: config}, nil
}

// Load implements Media
func (f *FileMedia) Load(ctx context.Context, image []byte) (bool, error) {
	if f.closed {
		return false, ErrClosed
	}

	data, err := os.ReadFile(f.config.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	if len(data) != len(image) {
		return false, fmt.Errorf("%w: %s is %d bytes, image is %d", ErrSizeMismatch, f.config.FilePath, len(data), len(image))
	}

	copy(image, data)
	return true, nil
}

// Flush implements Media
func (f *FileMedia) Flush(ctx context.Context, image []byte) error {
	if f.closed {
		return ErrClosed
	}

	dir := filepath.Dir(f.config.FilePath)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.config.FilePath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	// Fsync before the rename so the new image is complete on disk
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, f.config.FilePath); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return syncDir(dir)
}

// Close implements Media
func (f *FileMedia) Close() error {
	f.closed = true
	return nil
}

// Path returns the image file path
func (f *FileMedia) Path() string {
	return f.config.FilePath
}

// syncDir makes a rename in dir durable. Platforms that cannot fsync a
// directory report an error on Sync, which is ignored.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()

	_ = d.Sync()
	return nil
}
