package codec

import (
	"encoding/binary"
	"hash/crc32"
)

// ChecksumSize is the width of an embedded checksum field in bytes
const ChecksumSize = 4

// Checksum computes the CRC-32 (IEEE) digest of a record blob.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// SealChecksum embeds the checksum of blob at offset. The digest is computed
// with the checksum field itself zeroed.
func SealChecksum(blob []byte, offset int) uint32 {
	field := blob[offset : offset+ChecksumSize]
	binary.LittleEndian.PutUint32(field, 0)
	sum := Checksum(blob)
	binary.LittleEndian.PutUint32(field, sum)
	return sum
}

// OpenChecksum extracts the checksum stored at offset, zeroes the field and
// reports whether the recomputed digest matches. The blob is left with a
// zeroed checksum field either way.
func OpenChecksum(blob []byte, offset int) bool {
	field := blob[offset : offset+ChecksumSize]
	stored := binary.LittleEndian.Uint32(field)
	binary.LittleEndian.PutUint32(field, 0)
	return Checksum(blob) == stored
}
