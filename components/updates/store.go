package updates

import (
	"sync"

	"github.com/goliatone/go-widgetkit/pkg/update"
)

// StateStore hands out the tracked widget state of a session. WithState must
// not run two callbacks for the same session at once.
type StateStore interface {
	WithState(sessionID string, fn func(*update.State) error) error
}

// MemoryStore keeps one update.State per session in memory.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]*lockedState
}

type lockedState struct {
	mu    sync.Mutex
	state *update.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*lockedState)}
}

// WithState runs fn with the session's state, creating it on first use.
func (s *MemoryStore) WithState(sessionID string, fn func(*update.State) error) error {
	s.mu.Lock()
	entry, ok := s.states[sessionID]
	if !ok {
		entry = &lockedState{state: update.NewState()}
		s.states[sessionID] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.state)
}

// Forget drops the state of a closed session.
func (s *MemoryStore) Forget(sessionID string) {
	s.mu.Lock()
	delete(s.states, sessionID)
	s.mu.Unlock()
}

// Len returns the number of sessions with tracked state.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}
