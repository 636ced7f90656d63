package view

import (
	"context"
	"sync"
)

// Store persists one State per admin. A missing entry reads back as
// DefaultState.
type Store interface {
	Get(ctx context.Context, adminID string) (State, error)
	Save(ctx context.Context, adminID string, state State) error
}

// MemoryStore is the in-process Store used by tests.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (s *MemoryStore) Get(ctx context.Context, adminID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[adminID]
	if !ok {
		return DefaultState(), nil
	}
	return state, nil
}

func (s *MemoryStore) Save(ctx context.Context, adminID string, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[adminID] = state
	return nil
}
