package storage

import "encoding/hex"

// SlotReport describes the contents of one slot without modifying it
type SlotReport struct {
	Record Record     `yaml:"record"`
	Index  int        `yaml:"index"`
	Size   int        `yaml:"size"`
	Policy PolicyKind `yaml:"policy"`
	Status string     `yaml:"status"`
	Valid  bool       `yaml:"valid"`
	Raw    string     `yaml:"raw"`
	Value  any        `yaml:"value"`
}

// Report describes every slot of a Storage
type Report struct {
	Size  int          `yaml:"size"`
	Slots []SlotReport `yaml:"slots"`
}

// Invalid returns the reports of slots whose policy rejects their contents
func (r Report) Invalid() []SlotReport {
	var invalid []SlotReport
	for _, slot := range r.Slots {
		if !slot.Valid {
			invalid = append(invalid, slot)
		}
	}
	return invalid
}

// Report describes the slot. Value is the record a read would return; no
// defaults are written.
func (s *Slot[T]) Report() SlotReport {
	v, status := s.Peek()
	return SlotReport{
		Record: s.config.Record,
		Index:  s.config.Index,
		Size:   s.codec.Size(),
		Policy: s.config.Policy.Kind(),
		Status: status.String(),
		Valid:  status == StatusStored,
		Raw:    hex.EncodeToString(s.Raw()),
		Value:  v,
	}
}

// Inspect reports every slot in slot-table order. Unlike the getters it never
// writes, so it is safe to run against media that must not change.
func (s *Storage) Inspect() Report {
	return Report{
		Size:  s.store.Size(),
		Slots: []SlotReport{
			s.gamepad.Report(),
			s.board.Report(),
			s.led.Report(),
			s.animation.Report(),
		},
	}
}
