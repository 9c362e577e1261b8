package eeprom

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// DefaultSectorSize is the number of image bytes stored under one key
const DefaultSectorSize = 256

var (
	metaSizeKey       = []byte("meta/size")
	metaSectorKey     = []byte("meta/sector_size")
	metaGenerationKey = []byte("meta/generation")
)

// PebbleMediaConfig holds configuration for pebble media
type PebbleMediaConfig struct {
	Dir        string // Pebble database directory
	SectorSize int    // Image bytes per key. Default: DefaultSectorSize
}

// PebbleMedia stores the committed image in a pebble database, one key per
// sector. A commit writes only the sectors that changed since the last load
// or commit, together with a fresh generation id, in one synced batch.
type PebbleMedia struct {
	db         *pebble.DB
	config     PebbleMediaConfig
	committed  []byte
	generation ksuid.KSUID
}

// NewPebbleMedia opens (or creates) pebble media in config.Dir
func NewPebbleMedia(config PebbleMediaConfig) (*PebbleMedia, error) {
	if config.Dir == "" {
		return nil, fmt.Errorf("pebble media: empty directory")
	}
	if config.SectorSize <= 0 {
		config.SectorSize = DefaultSectorSize
	}

	db, err := pebble.Open(config.Dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleMedia{db: db, config: config}, nil
}

// Load implements Media
func (p *PebbleMedia) Load(ctx context.Context, image []byte) (bool, error) {
	if p.db == nil {
		return false, ErrClosed
	}

	size, found, err := p.getUint32(metaSizeKey)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if int(size) != len(image) {
		return false, fmt.Errorf("%w: media is %d bytes, image is %d", ErrSizeMismatch, size, len(image))
	}

	sectorSize, found, err := p.getUint32(metaSectorKey)
	if err != nil {
		return false, err
	}
	if !found || int(sectorSize) != p.config.SectorSize {
		return false, fmt.Errorf("pebble media: sector size %d does not match configured %d", sectorSize, p.config.SectorSize)
	}

	loaded := make([]byte, len(image))
	for i, start := 0, 0; start < len(loaded); i, start = i+1, start+p.config.SectorSize {
		end := min(start+p.config.SectorSize, len(loaded))
		data, closer, err := p.db.Get(sectorKey(i))
		if err != nil {
			return false, fmt.Errorf("read sector %d: %w", i, err)
		}
		if len(data) != end-start {
			closer.Close()
			return false, fmt.Errorf("sector %d: %w", i, ErrSizeMismatch)
		}
		copy(loaded[start:end], data)
		closer.Close()
	}

	if gen, closer, err := p.db.Get(metaGenerationKey); err == nil {
		if id, err := ksuid.FromBytes(gen); err == nil {
			p.generation = id
		}
		closer.Close()
	}

	copy(image, loaded)
	p.committed = loaded
	return true, nil
}

// Flush implements Media
func (p *PebbleMedia) Flush(ctx context.Context, image []byte) error {
	if p.db == nil {
		return ErrClosed
	}
	if p.committed != nil && len(p.committed) != len(image) {
		return ErrSizeMismatch
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	for i, start := 0, 0; start < len(image); i, start = i+1, start+p.config.SectorSize {
		end := min(start+p.config.SectorSize, len(image))
		sector := image[start:end]
		if p.committed != nil && bytes.Equal(p.committed[start:end], sector) {
			continue
		}
		if err := batch.Set(sectorKey(i), sector, nil); err != nil {
			return err
		}
	}

	generation := ksuid.New()
	if err := batch.Set(metaSizeKey, encodeUint32(uint32(len(image))), nil); err != nil {
		return err
	}
	if err := batch.Set(metaSectorKey, encodeUint32(uint32(p.config.SectorSize)), nil); err != nil {
		return err
	}
	if err := batch.Set(metaGenerationKey, generation.Bytes(), nil); err != nil {
		return err
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return err
	}

	p.committed = append(p.committed[:0], image...)
	p.generation = generation
	return nil
}

// Generation returns the id of the last loaded or committed image, or the
// nil KSUID when the media is blank.
func (p *PebbleMedia) Generation() ksuid.KSUID {
	return p.generation
}

// Close implements Media
func (p *PebbleMedia) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

func (p *PebbleMedia) getUint32(key []byte) (uint32, bool, error) {
	data, closer, err := p.db.Get(key)
	if err != nil {
		if err == pebble.ErrNotFound {
			return 0, false, nil
		}
		return 0, false, err
	}
	defer closer.Close()

	if len(data) != 4 {
		return 0, false, fmt.Errorf("pebble media: malformed %s", key)
	}
	return binary.LittleEndian.Uint32(data), true, nil
}

func sectorKey(i int) []byte {
	return []byte(fmt.Sprintf("sector/%06d", i))
}

func encodeUint32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}
