package memory

import (
	"fmt"
	"time"

	"github.com/vsinha/prodseq/pkg/domain/entities"
	"github.com/vsinha/prodseq/pkg/domain/repositories"
)

// SnapshotRepository keeps the stored sequence of one session.
// Only the most recent calendar day is retained: saving a snapshot for a new
// day discards the previous one.
type SnapshotRepository struct {
	current *entities.SequenceSnapshot
}

// NewSnapshotRepository creates an empty snapshot store
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{}
}

// Verify interface compliance
var _ repositories.SnapshotRepository = (*SnapshotRepository)(nil)

// GetSnapshot returns the snapshot stored for the calendar day of 'day'
func (r *SnapshotRepository) GetSnapshot(day time.Time) (*entities.SequenceSnapshot, bool) {
	if r.current == nil || !r.current.Covers(day) {
		return nil, false
	}
	return cloneSnapshot(r.current), true
}

// SaveSnapshot stores snapshot, replacing whatever was held before
func (r *SnapshotRepository) SaveSnapshot(snapshot *entities.SequenceSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}
	r.current = cloneSnapshot(snapshot)
	return nil
}

func cloneSnapshot(s *entities.SequenceSnapshot) *entities.SequenceSnapshot {
	entries := make([]entities.SnapshotEntry, len(s.Entries))
	copy(entries, s.Entries)
	return &entities.SequenceSnapshot{Day: s.Day, Entries: entries}
}
