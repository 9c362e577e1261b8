package storage

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/codec"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/eeprom"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/logging"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/metrics"
)

// SlotConfig describes one record slot
type SlotConfig[T any] struct {
	Record   Record       // Record name used in logs and metrics
	Index    int          // Byte index of the slot in the store
	Policy   Policy       // Integrity policy. Default: None
	Defaults func() T     // Record served when the slot is invalid
	Logger   *slog.Logger // Default: discard
	Metrics  *metrics.Metrics
}

// Slot reads and writes one fixed-layout record at a fixed index of a byte
// store, applying the slot's integrity policy.
type Slot[T any] struct {
	config SlotConfig[T]
	codec  *codec.RecordCodec[T]
	store  eeprom.ByteStore
}

// NewSlot creates a slot accessor for T in store
func NewSlot[T any](store eeprom.ByteStore, config SlotConfig[T]) (*Slot[T], error) {
	c, err := codec.NewRecordCodec[T]()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRecord, config.Record, err)
	}

	if config.Policy == nil {
		config.Policy = None()
	}
	if config.Logger == nil {
		config.Logger = logging.Discard()
	}

	if config.Index < 0 || config.Index+c.Size() > store.Size() {
		return nil, fmt.Errorf("%w: %s slot [%d:%d] in %d byte store",
			ErrSlotOutOfRange, config.Record, config.Index, config.Index+c.Size(), store.Size())
	}

	offset, width := config.Policy.Field()
	if offset < 0 || offset+width > c.Size() {
		return nil, fmt.Errorf("%w: %s %s field [%d:%d] outside %d byte record",
			ErrInvalidRecord, config.Record, config.Policy.Kind(), offset, offset+width, c.Size())
	}

	if config.Defaults == nil && config.Policy.Kind() != PolicyNone {
		return nil, fmt.Errorf("%w: %s has a %s policy but no defaults",
			ErrInvalidRecord, config.Record, config.Policy.Kind())
	}

	return &Slot[T]{config: config, codec: c, store: store}, nil
}

// Get returns the stored record. When the policy rejects the slot contents,
// the defaults are returned instead; checksum slots also write the defaults
// back to the image, which the returned status reports as StatusHealed.
func (s *Slot[T]) Get() (T, Status) {
	if v, ok := s.read(); ok {
		return v, StatusStored
	}

	v := s.config.Defaults()
	if !s.config.Policy.PersistDefaults() {
		s.config.Metrics.RecordDefaulted(string(s.config.Record), false)
		s.config.Logger.Debug("record not set, serving defaults",
			"record", s.config.Record, "policy", s.config.Policy.Kind())
		return v, StatusDefaulted
	}

	blob, view := s.seal(v)
	s.write(blob)
	s.config.Metrics.RecordDefaulted(string(s.config.Record), true)
	s.config.Logger.Info("record invalid, defaults written",
		"record", s.config.Record, "policy", s.config.Policy.Kind(), "index", s.config.Index)
	return view, StatusHealed
}

// Peek is Get without the corrective write
func (s *Slot[T]) Peek() (T, Status) {
	if v, ok := s.read(); ok {
		return v, StatusStored
	}
	if s.config.Defaults == nil {
		var zero T
		return zero, StatusDefaulted
	}
	return s.config.Defaults(), StatusDefaulted
}

// Set seals v and writes it to the image
func (s *Slot[T]) Set(v T) {
	blob, _ := s.seal(v)
	s.write(blob)
}

// SetIfChanged writes v only when its sealed blob differs from the persisted
// record, and reports whether it wrote. The persisted record is read through
// Get, so an invalid slot is healed first.
func (s *Slot[T]) SetIfChanged(v T) bool {
	s.Get()

	blob, _ := s.seal(v)
	if bytes.Equal(blob, s.Raw()) {
		return false
	}

	s.write(blob)
	return true
}

// Raw returns the slot bytes exactly as stored
func (s *Slot[T]) Raw() []byte {
	buf := make([]byte, s.codec.Size())
	s.store.Get(s.config.Index, buf)
	return buf
}

// Record returns the record name
func (s *Slot[T]) Record() Record {
	return s.config.Record
}

// Index returns the byte index of the slot
func (s *Slot[T]) Index() int {
	return s.config.Index
}

// Size returns the encoded record size
func (s *Slot[T]) Size() int {
	return s.codec.Size()
}

// Policy returns the integrity policy
func (s *Slot[T]) Policy() Policy {
	return s.config.Policy
}

// read decodes the slot when the policy accepts it
func (s *Slot[T]) read() (T, bool) {
	blob := s.Raw()
	if !s.config.Policy.Unseal(blob) {
		var zero T
		return zero, false
	}
	return s.decode(blob), true
}

// seal returns the blob to write for v and the record a later read of that
// blob yields
func (s *Slot[T]) seal(v T) ([]byte, T) {
	blob := s.encode(v)
	s.config.Policy.Seal(blob)

	view := append([]byte(nil), blob...)
	s.config.Policy.Unseal(view)
	return blob, s.decode(view)
}

func (s *Slot[T]) write(blob []byte) {
	s.store.Set(s.config.Index, blob)
	s.config.Metrics.RecordSlotWrite(string(s.config.Record))
}

// encode and decode cannot fail once NewSlot has accepted T; a failure is a
// programming error.
func (s *Slot[T]) encode(v T) []byte {
	blob, err := s.codec.Encode(v)
	if err != nil {
		panic(err)
	}
	return blob
}

func (s *Slot[T]) decode(blob []byte) T {
	v, err := s.codec.Decode(blob)
	if err != nil {
		panic(err)
	}
	return v
}
