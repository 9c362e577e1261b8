package storage

import (
	"fmt"
	"sort"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/codec"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/options"
)

// Layout maps every record type to the byte index of its slot
type Layout struct {
	Gamepad   int `yaml:"gamepad"`
	Board     int `yaml:"board"`
	LED       int `yaml:"led"`
	Animation int `yaml:"animation"`
}

// DefaultLayout returns the controller's slot table
func DefaultLayout() Layout {
	return Layout{
		Gamepad:   0,    // 1024 bytes reserved
		Board:     1024, // 512 bytes reserved
		LED:       1536, // 512 bytes reserved
		Animation: 2048, // 1024 bytes reserved
	}
}

// Index returns the slot index of record
func (l Layout) Index(record Record) int {
	switch record {
	case RecordGamepad:
		return l.Gamepad
	case RecordBoard:
		return l.Board
	case RecordLED:
		return l.LED
	case RecordAnimation:
		return l.Animation
	default:
		return -1
	}
}

// RecordSize returns the encoded size of record
func RecordSize(record Record) int {
	switch record {
	case RecordGamepad:
		return codec.Size[options.GamepadOptions]()
	case RecordBoard:
		return codec.Size[options.BoardOptions]()
	case RecordLED:
		return codec.Size[options.LEDOptions]()
	case RecordAnimation:
		return codec.Size[options.AnimationOptions]()
	default:
		return -1
	}
}

type span struct {
	record     Record
	start, end int
}

// Validate checks that every slot lies inside a store of storeSize bytes and
// that no two slots overlap.
func (l Layout) Validate(storeSize int) error {
	spans := make([]span, 0, len(Records))
	for _, record := range Records {
		start := l.Index(record)
		end := start + RecordSize(record)
		if start < 0 || end > storeSize {
			return fmt.Errorf("%w: %s slot [%d:%d] in %d byte store", ErrSlotOutOfRange, record, start, end, storeSize)
		}
		spans = append(spans, span{record: record, start: start, end: end})
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})
	for i := 1; i < len(spans); i++ {
		prev, cur := spans[i-1], spans[i]
		if cur.start < prev.end {
			return fmt.Errorf("%w: %s [%d:%d] and %s [%d:%d]", ErrSlotOverlap,
				prev.record, prev.start, prev.end, cur.record, cur.start, cur.end)
		}
	}

	return nil
}
