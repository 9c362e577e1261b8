package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Checksum uint32
	Enabled  bool
	Mode     uint8
	Cycle    int16
	Pins     [3]uint8
}

type variableRecord struct {
	Name string
	Data []byte
}

func TestRecordCodec_EncodeDecodeRoundTrip(t *testing.T) {
	c, err := NewRecordCodec[testRecord]()
	require.NoError(t, err)
	assert.Equal(t, 11, c.Size())
	assert.Equal(t, "codec.testRecord", c.Name())

	testCases := []struct {
		name   string
		record testRecord
	}{
		{name: "zero record", record: testRecord{}},
		{name: "all fields", record: testRecord{Checksum: 0xDEADBEEF, Enabled: true, Mode: 3, Cycle: -40, Pins: [3]uint8{1, 2, 3}}},
		{name: "max values", record: testRecord{Checksum: ^uint32(0), Enabled: true, Mode: 0xFF, Cycle: 32767, Pins: [3]uint8{0xFF, 0xFF, 0xFF}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := c.Encode(tc.record)
			require.NoError(t, err)
			assert.Len(t, encoded, c.Size())

			decoded, err := c.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tc.record, decoded)
		})
	}
}

func TestRecordCodec_Layout(t *testing.T) {
	c, err := NewRecordCodec[testRecord]()
	require.NoError(t, err)

	encoded, err := c.Encode(testRecord{Checksum: 0x04030201, Enabled: true, Mode: 7, Cycle: 0x0102, Pins: [3]uint8{9, 8, 7}})
	require.NoError(t, err)

	// Little-endian, declaration order, no padding
	expected := []byte{0x01, 0x02, 0x03, 0x04, 0x01, 0x07, 0x02, 0x01, 0x09, 0x08, 0x07}
	assert.Equal(t, expected, encoded)
}

func TestRecordCodec_DecodeShortData(t *testing.T) {
	c, err := NewRecordCodec[testRecord]()
	require.NoError(t, err)

	_, err = c.Decode([]byte{0x01, 0x02, 0x03})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data too short")
}

func TestRecordCodec_DecodeIgnoresTrailingBytes(t *testing.T) {
	c, err := NewRecordCodec[testRecord]()
	require.NoError(t, err)

	encoded, err := c.Encode(testRecord{Mode: 5})
	require.NoError(t, err)

	decoded, err := c.Decode(append(encoded, 0xAA, 0xBB))
	require.NoError(t, err)
	assert.Equal(t, uint8(5), decoded.Mode)
}

func TestNewRecordCodec_RejectsVariableTypes(t *testing.T) {
	_, err := NewRecordCodec[variableRecord]()
	assert.True(t, errors.Is(err, ErrNotFixedSize))

	_, err = NewRecordCodec[[]byte]()
	assert.True(t, errors.Is(err, ErrNotFixedSize))

	assert.Equal(t, -1, Size[variableRecord]())
	assert.Equal(t, 11, Size[testRecord]())
}

func TestChecksum_KnownVectors(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected uint32
	}{
		{name: "empty", data: []byte{}, expected: 0x00000000},
		{name: "check string", data: []byte("123456789"), expected: 0xCBF43926},
		{name: "four zero bytes", data: make([]byte, 4), expected: 0x2144DF1C},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Checksum(tc.data))
		})
	}
}

func TestChecksum_OrderSensitive(t *testing.T) {
	assert.NotEqual(t, Checksum([]byte{0x01, 0x02}), Checksum([]byte{0x02, 0x01}))
}

func TestSealChecksum(t *testing.T) {
	blob := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0x01, 0x02, 0x03}

	sum := SealChecksum(blob, 0)

	zeroed := []byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x02, 0x03}
	assert.Equal(t, Checksum(zeroed), sum)
	assert.Equal(t, sum, binary.LittleEndian.Uint32(blob[0:4]))
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, blob[4:])
}

func TestOpenChecksum(t *testing.T) {
	t.Run("sealed blob validates", func(t *testing.T) {
		blob := []byte{0, 0, 0, 0, 0x10, 0x20, 0x30}
		SealChecksum(blob, 0)

		assert.True(t, OpenChecksum(blob, 0))
		assert.Equal(t, []byte{0, 0, 0, 0}, blob[0:4], "checksum field is zeroed after open")
	})

	t.Run("corrupted data fails", func(t *testing.T) {
		blob := []byte{0, 0, 0, 0, 0x10, 0x20, 0x30}
		SealChecksum(blob, 0)
		blob[5] ^= 0xFF

		assert.False(t, OpenChecksum(blob, 0))
	})

	t.Run("corrupted checksum fails", func(t *testing.T) {
		blob := []byte{0, 0, 0, 0, 0x10, 0x20, 0x30}
		SealChecksum(blob, 0)
		blob[0] ^= 0x01

		assert.False(t, OpenChecksum(blob, 0))
	})

	t.Run("blank memory fails", func(t *testing.T) {
		assert.False(t, OpenChecksum(make([]byte, 13), 0))
		assert.False(t, OpenChecksum(bytes.Repeat([]byte{0xFF}, 13), 0))
	})

	t.Run("field at non-zero offset", func(t *testing.T) {
		blob := []byte{0x42, 0, 0, 0, 0, 0x17}
		SealChecksum(blob, 1)

		assert.Equal(t, uint8(0x42), blob[0])
		assert.True(t, OpenChecksum(blob, 1))
	})
}
