package sequence

import (
	"fmt"
	"sort"
	"time"

	"github.com/vsinha/prodseq/pkg/domain/entities"
	"github.com/vsinha/prodseq/pkg/domain/repositories"
)

// Stabilizer keeps the operator-facing order steady within a calendar day
// unless newly surfaced demand is more urgent than anything already shown.
//
// A Stabilizer is bound to one session's snapshot store and must not be used
// by concurrent recomputations.
type Stabilizer struct {
	snapshots repositories.SnapshotRepository
	topN      int
}

// NewStabilizer creates a stabilizer over a session's snapshot store
func NewStabilizer(snapshots repositories.SnapshotRepository, topN int) *Stabilizer {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Stabilizer{snapshots: snapshots, topN: topN}
}

// Stabilize decides between the freshly ranked sequence and the order stored
// earlier today, and returns the sequence to display with its state.
func (s *Stabilizer) Stabilize(
	today time.Time,
	current []entities.ProductionRequirement,
) ([]entities.ProductionRequirement, entities.StabilizerState, error) {
	day := entities.CalendarDay(today)

	if !sameDaySession(day, current) {
		if err := s.snapshots.SaveSnapshot(entities.NewSequenceSnapshot(day, current)); err != nil {
			return nil, entities.NoSession, fmt.Errorf("failed to store default sequence: %w", err)
		}
		return current, entities.NoSession, nil
	}

	stored, exists := s.snapshots.GetSnapshot(day)
	if !exists || len(stored.Entries) == 0 {
		// An empty default snapshot has no earliest date to compare against.
		if err := s.snapshots.SaveSnapshot(entities.NewSequenceSnapshot(day, current)); err != nil {
			return nil, entities.ActiveLocked, fmt.Errorf("failed to store locked sequence: %w", err)
		}
		return current, entities.ActiveLocked, nil
	}

	if entities.DayBefore(entities.EarliestOf(current), stored.EarliestDate()) {
		if err := s.snapshots.SaveSnapshot(entities.NewSequenceSnapshot(day, current)); err != nil {
			return nil, entities.PullAheadOverride, fmt.Errorf("failed to store pulled-ahead sequence: %w", err)
		}
		pulled := make([]entities.ProductionRequirement, len(current))
		copy(pulled, current)
		for i := range pulled {
			if entities.DayBefore(pulled[i].EarliestDate, day) {
				pulled[i].Flags.PullAhead = true
			}
		}
		return pulled, entities.PullAheadOverride, nil
	}

	return s.applyLock(stored, current), entities.ActiveLocked, nil
}

// applyLock re-maps the stored order onto current values by part number.
// A part stored more than once takes its current requirements in order, one
// per entry. Stored entries without a remaining current requirement are dropped.
func (s *Stabilizer) applyLock(stored *entities.SequenceSnapshot, current []entities.ProductionRequirement) []entities.ProductionRequirement {
	byPart := make(map[entities.PartNumber][]entities.ProductionRequirement, len(current))
	for _, req := range current {
		byPart[req.PartNumber] = append(byPart[req.PartNumber], req)
	}

	entries := make([]entities.SnapshotEntry, len(stored.Entries))
	copy(entries, stored.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rank < entries[j].Rank
	})

	locked := make([]entities.ProductionRequirement, 0, len(entries))
	for _, entry := range entries {
		pending := byPart[entry.PartNumber]
		if len(pending) == 0 {
			continue
		}
		req := pending[0]
		byPart[entry.PartNumber] = pending[1:]
		req.Flags.SequenceLocked = true
		locked = append(locked, req)
		if len(locked) == s.topN {
			break
		}
	}
	return locked
}

// sameDaySession reports whether at least two requirements fall due today
func sameDaySession(day time.Time, reqs []entities.ProductionRequirement) bool {
	count := 0
	for _, req := range reqs {
		if entities.SameDay(req.EarliestDate, day) {
			count++
		}
	}
	return count >= 2
}
