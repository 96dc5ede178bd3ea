package entities

import "time"

// StabilizerState is the sequence stabilizer outcome for one recomputation
type StabilizerState int

const (
	NoSession StabilizerState = iota
	ActiveLocked
	PullAheadOverride
)

// String method for StabilizerState enum
func (s StabilizerState) String() string {
	switch s {
	case NoSession:
		return "NoSession"
	case ActiveLocked:
		return "ActiveLocked"
	case PullAheadOverride:
		return "PullAheadOverride"
	default:
		return "Unknown"
	}
}

// MarshalText renders the state name in JSON and YAML output
func (s StabilizerState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SnapshotEntry is one stored position of a sequence
type SnapshotEntry struct {
	PartNumber   PartNumber
	Rank         int
	EarliestDate time.Time
}

// SequenceSnapshot is the operator-visible order remembered for one calendar day
type SequenceSnapshot struct {
	Day     time.Time
	Entries []SnapshotEntry
}

// NewSequenceSnapshot captures the order of reqs for day
func NewSequenceSnapshot(day time.Time, reqs []ProductionRequirement) *SequenceSnapshot {
	entries := make([]SnapshotEntry, 0, len(reqs))
	for i, req := range reqs {
		entries = append(entries, SnapshotEntry{
			PartNumber:   req.PartNumber,
			Rank:         i + 1,
			EarliestDate: req.EarliestDate,
		})
	}
	return &SequenceSnapshot{
		Day:     CalendarDay(day),
		Entries: entries,
	}
}

// EarliestDate returns the earliest shortage date across stored entries, or the zero time
func (s *SequenceSnapshot) EarliestDate() time.Time {
	var earliest time.Time
	for i, entry := range s.Entries {
		if i == 0 || entry.EarliestDate.Before(earliest) {
			earliest = entry.EarliestDate
		}
	}
	return earliest
}

// Covers reports whether the snapshot belongs to the calendar day of t
func (s *SequenceSnapshot) Covers(t time.Time) bool {
	return SameDay(s.Day, t)
}
