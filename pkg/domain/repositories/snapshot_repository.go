package repositories

import (
	"time"

	"github.com/vsinha/prodseq/pkg/domain/entities"
)

// SnapshotRepository holds the stored sequence of one session, keyed by calendar day.
// Implementations are not required to be safe for concurrent use; callers
// serialize recomputations per session.
type SnapshotRepository interface {
	GetSnapshot(day time.Time) (*entities.SequenceSnapshot, bool)
	SaveSnapshot(snapshot *entities.SequenceSnapshot) error
}
