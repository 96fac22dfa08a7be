package timer

import (
	"context"
	"sync"
)

// Store persists timer state across process restarts. Implementations must
// treat unparseable persisted values as absent so a corrupt entry degrades
// to the Idle state instead of wedging the user.
type Store interface {
	Load(ctx context.Context, userID uint) (State, bool, error)
	LoadAll(ctx context.Context) (map[uint]State, error)
	Save(ctx context.Context, userID uint, state State) error
	Clear(ctx context.Context, userID uint) error
}

// MemoryStore keeps timer state in process memory. Used in tests and as a
// fallback when redis is not configured.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[uint]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[uint]State),
	}
}

func (s *MemoryStore) Load(ctx context.Context, userID uint) (State, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[userID]
	return state, ok, nil
}

func (s *MemoryStore) LoadAll(ctx context.Context) (map[uint]State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make(map[uint]State, len(s.states))
	for userID, state := range s.states {
		states[userID] = state
	}

	return states, nil
}

func (s *MemoryStore) Save(ctx context.Context, userID uint, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[userID] = state
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, userID)
	return nil
}
