package metrics

import (
	"time"

	"github.com/vsinha/prodseq/pkg/domain/entities"
)

// NopRecorder discards all sequencing metrics
type NopRecorder struct{}

// NewNop creates a no-op recorder
func NewNop() *NopRecorder {
	return &NopRecorder{}
}

// RecordRecompute discards the recompute metric
func (n *NopRecorder) RecordRecompute(_, _ string, _ entities.StabilizerState, _ time.Duration) {}

// RecordExcluded discards the exclusion metric
func (n *NopRecorder) RecordExcluded(_ string) {}

// SetSequenceLength discards the sequence length metric
func (n *NopRecorder) SetSequenceLength(_, _ string, _ int) {}
