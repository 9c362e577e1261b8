package storage

// Record names an option record type and its slot
type Record string

const (
	RecordBoard     Record = "board"
	RecordLED       Record = "led"
	RecordGamepad   Record = "gamepad"
	RecordAnimation Record = "animation"
)

// Records lists every record type in slot-table order
var Records = []Record{RecordGamepad, RecordBoard, RecordLED, RecordAnimation}

// Status reports how a validated read was satisfied
type Status int

const (
	// StatusStored means the slot held a valid record
	StatusStored Status = iota
	// StatusDefaulted means the slot was absent or corrupt and defaults were
	// returned without being written
	StatusDefaulted
	// StatusHealed means the slot was absent or corrupt and the defaults
	// returned were also written to the image
	StatusHealed
)

func (s Status) String() string {
	switch s {
	case StatusStored:
		return "stored"
	case StatusDefaulted:
		return "defaulted"
	case StatusHealed:
		return "healed"
	default:
		return "unknown"
	}
}

// Defaulted reports whether the record returned is a default
func (s Status) Defaulted() bool {
	return s != StatusStored
}

// Errors
var (
	ErrSlotOverlap    = &StorageError{"slots overlap"}
	ErrSlotOutOfRange = &StorageError{"slot outside the byte store"}
	ErrInvalidRecord  = &StorageError{"invalid record definition"}
	ErrNoAnimation    = &StorageError{"no animation state to save"}
)

// StorageError represents an option storage error
type StorageError struct {
	Message string
}

func (e *StorageError) Error() string {
	return e.Message
}
