package events

import (
	"fmt"
	"time"

	"github.com/vsinha/prodseq/pkg/domain/entities"
)

const (
	SequenceComputedEvent    = "sequence.computed"
	SequenceLockedEvent      = "sequence.locked"
	SequencePulledAheadEvent = "sequence.pulled_ahead"
	PartExcludedEvent        = "part.excluded"
)

// SequenceComputed is recorded after every recomputation
type SequenceComputed struct {
	Cell         string                           `json:"cell"`
	Family       string                           `json:"family"`
	Day          time.Time                        `json:"day"`
	State        entities.StabilizerState         `json:"state"`
	Requirements []entities.ProductionRequirement `json:"requirements"`
}

// SequenceLocked is recorded when the stored order was kept
type SequenceLocked struct {
	Cell   string                `json:"cell"`
	Family string                `json:"family"`
	Day    time.Time             `json:"day"`
	Order  []entities.PartNumber `json:"order"`
}

// SequencePulledAhead is recorded when earlier demand replaced the stored order
type SequencePulledAhead struct {
	Cell           string                `json:"cell"`
	Family         string                `json:"family"`
	Day            time.Time             `json:"day"`
	PreviousOrder  []entities.PartNumber `json:"previous_order"`
	NewOrder       []entities.PartNumber `json:"new_order"`
	PulledAheadFor []entities.PartNumber `json:"pulled_ahead_for"`
}

// PartExcluded is recorded when a part's demand could not be simulated
type PartExcluded struct {
	Cell       string              `json:"cell"`
	Family     string              `json:"family"`
	PartNumber entities.PartNumber `json:"part_number"`
	Reason     string              `json:"reason"`
}

// StreamFor names the event stream of a cell and family selection
func StreamFor(cell, family string) string {
	return fmt.Sprintf("sequence/%s/%s", cell, family)
}
