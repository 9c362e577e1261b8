package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
)

// ByteOrder is the byte order of every field of an on-media record.
var ByteOrder = binary.LittleEndian

// ErrNotFixedSize is returned for record types whose encoding is not a fixed
// number of bytes (slices, maps, strings, pointers).
var ErrNotFixedSize = errors.New("record type has no fixed-size encoding")

// RecordCodec converts a fixed-layout option record to and from the blob
// stored in its slot. The blob is exactly Size() bytes with no padding.
type RecordCodec[T any] struct {
	size int
	name string
}

// NewRecordCodec creates a codec for T, rejecting types without a fixed-size
// encoding.
func NewRecordCodec[T any]() (*RecordCodec[T], error) {
	var zero T
	size := binary.Size(zero)
	name := reflect.TypeOf((*T)(nil)).Elem().String()
	if size <= 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFixedSize)
	}
	return &RecordCodec[T]{size: size, name: name}, nil
}

// Size returns the encoded size of T in bytes
func (c *RecordCodec[T]) Size() int {
	return c.size
}

// Name returns the Go type name of T
func (c *RecordCodec[T]) Name() string {
	return c.name
}

// Encode serializes a record into a new blob of Size() bytes
func (c *RecordCodec[T]) Encode(v T) ([]byte, error) {
	buf := make([]byte, c.size)
	if _, err := binary.Encode(buf, ByteOrder, v); err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.name, err)
	}
	return buf, nil
}

// Decode deserializes a blob into a record. Extra trailing bytes are ignored.
func (c *RecordCodec[T]) Decode(data []byte) (T, error) {
	var v T
	if len(data) < c.size {
		return v, fmt.Errorf("data too short for %s: %d < %d", c.name, len(data), c.size)
	}
	if _, err := binary.Decode(data[:c.size], ByteOrder, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return v, nil
}

// Size returns the encoded size of a record type, or -1 when T has no
// fixed-size encoding.
func Size[T any]() int {
	var zero T
	return binary.Size(zero)
}
