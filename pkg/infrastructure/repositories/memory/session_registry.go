package memory

import (
	"sync"

	"github.com/google/uuid"
)

// SessionRegistry hands out one snapshot store per display session.
// The registry is safe for concurrent use; each returned store is not, and
// recomputations of one session must be serialized by the caller.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*SnapshotRepository
}

// NewSessionRegistry creates an empty registry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]*SnapshotRepository),
	}
}

// Open starts a new session and returns its identifier and store
func (r *SessionRegistry) Open() (uuid.UUID, *SnapshotRepository) {
	id := uuid.New()
	store := NewSnapshotRepository()

	r.mu.Lock()
	r.sessions[id] = store
	r.mu.Unlock()

	return id, store
}

// Close forgets a session and its stored sequence
func (r *SessionRegistry) Close(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
