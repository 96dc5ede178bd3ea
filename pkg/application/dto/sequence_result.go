package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/prodseq/pkg/domain/entities"
)

// SequenceResult contains the complete output of one sequencing recomputation
type SequenceResult struct {
	Cell         string                           `json:"cell" yaml:"cell"`
	Family       string                           `json:"family" yaml:"family"`
	Today        time.Time                        `json:"today" yaml:"today"`
	RatePerHour  decimal.Decimal                  `json:"rate_per_hour" yaml:"rate_per_hour"`
	State        entities.StabilizerState         `json:"state" yaml:"state"`
	Requirements []entities.ProductionRequirement `json:"requirements" yaml:"requirements"`
	Excluded     []ExcludedPart                   `json:"excluded,omitempty" yaml:"excluded,omitempty"`

	PartsAnalyzed int       `json:"parts_analyzed" yaml:"parts_analyzed"`
	Candidates    int       `json:"candidates" yaml:"candidates"` // requirements before ranking
	ComputedAt    time.Time `json:"computed_at" yaml:"computed_at"`
}

// ExcludedPart is a part dropped from analysis because its demand could not be simulated
type ExcludedPart struct {
	PartNumber entities.PartNumber `json:"part_number" yaml:"part_number"`
	Reason     string              `json:"reason" yaml:"reason"`
}

// Critical reports whether any part needs production
func (r *SequenceResult) Critical() bool {
	return len(r.Requirements) > 0
}
