package eeprom

import "context"

// MemoryMedia keeps the committed image in memory. It stands in for flash in
// tests and tooling.
type MemoryMedia struct {
	data    []byte
	flushes int
	closed  bool
	failing error
}

// NewMemoryMedia creates blank memory media
func NewMemoryMedia() *MemoryMedia {
	return &MemoryMedia{}
}

// NewMemoryMediaFrom creates memory media whose committed contents are a copy
// of data
func NewMemoryMediaFrom(data []byte) *MemoryMedia {
	m := &MemoryMedia{}
	m.data = append([]byte(nil), data...)
	return m
}

// Load implements Media
func (m *MemoryMedia) Load(ctx context.Context, image []byte) (bool, error) {
	if m.closed {
		return false, ErrClosed
	}
	if m.data == nil {
		return false, nil
	}
	if len(m.data) != len(image) {
		return false, ErrSizeMismatch
	}
	copy(image, m.data)
	return true, nil
}

// Flush implements Media
func (m *MemoryMedia) Flush(ctx context.Context, image []byte) error {
	if m.closed {
		return ErrClosed
	}
	if m.failing != nil {
		return m.failing
	}
	m.data = append(m.data[:0], image...)
	m.flushes++
	return nil
}

// Close implements Media
func (m *MemoryMedia) Close() error {
	m.closed = true
	return nil
}

// Bytes returns a copy of the committed contents, nil when never committed
func (m *MemoryMedia) Bytes() []byte {
	if m.data == nil {
		return nil
	}
	return append([]byte(nil), m.data...)
}

// Flushes returns the number of successful flushes
func (m *MemoryMedia) Flushes() int {
	return m.flushes
}

// FailFlushes makes every following Flush return err; nil restores normal
// operation.
func (m *MemoryMedia) FailFlushes(err error) {
	m.failing = err
}
