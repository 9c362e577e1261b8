package storage

import "github.com/LuciCodesStuff/GP2040-CE/pkg/codec"

// PolicyKind names a record integrity policy
type PolicyKind string

const (
	PolicyNone         PolicyKind = "none"
	PolicyPresenceFlag PolicyKind = "presence_flag"
	PolicyChecksum     PolicyKind = "checksum"
)

// Policy decides whether a slot blob holds a previously written record and
// prepares blobs for writing. Blobs are the encoded record, exactly one
// record long.
type Policy interface {
	Kind() PolicyKind

	// Seal prepares blob for writing, in place
	Seal(blob []byte)

	// Unseal strips integrity data from blob in place and reports whether the
	// blob holds a previously written record
	Unseal(blob []byte) bool

	// PersistDefaults reports whether defaults substituted for an invalid
	// record are written back to the slot immediately
	PersistDefaults() bool

	// Field returns the byte span of the integrity field inside the record
	Field() (offset, width int)
}

// None returns the policy of unvalidated records: every blob is accepted as is
func None() Policy {
	return nonePolicy{}
}

// PresenceFlag returns the policy of records carrying an "is set" boolean at
// offset. Every write sets the flag.
func PresenceFlag(offset int) Policy {
	return presenceFlagPolicy{offset: offset}
}

// Checksum returns the policy of records embedding a CRC-32 at offset.
// Invalid records are replaced by defaults that are written back at once.
func Checksum(offset int) Policy {
	return checksumPolicy{offset: offset}
}

type nonePolicy struct{}

func (nonePolicy) Kind() PolicyKind { return PolicyNone }
func (nonePolicy) Seal(blob []byte) {}
func (nonePolicy) Unseal(blob []byte) bool { return true }
func (nonePolicy) PersistDefaults() bool { return false }
func (nonePolicy) Field() (offset, width int) { return 0, 0 }

type presenceFlagPolicy struct {
	offset int
}

func (p presenceFlagPolicy) Kind() PolicyKind {
	return PolicyPresenceFlag
}

func (p presenceFlagPolicy) Seal(blob []byte) {
	blob[p.offset] = 1
}

func (p presenceFlagPolicy) Unseal(blob []byte) bool {
	return blob[p.offset] != 0
}

func (p presenceFlagPolicy) PersistDefaults() bool {
	return false
}

func (p presenceFlagPolicy) Field() (offset, width int) {
	return p.offset, 1
}

type checksumPolicy struct {
	offset int
}

func (p checksumPolicy) Kind() PolicyKind {
	return PolicyChecksum
}

func (p checksumPolicy) Seal(blob []byte) {
	codec.SealChecksum(blob, p.offset)
}

func (p checksumPolicy) Unseal(blob []byte) bool {
	return codec.OpenChecksum(blob, p.offset)
}

func (p checksumPolicy) PersistDefaults() bool {
	return true
}

func (p checksumPolicy) Field() (offset, width int) {
	return p.offset, codec.ChecksumSize
}
