package render

import (
	"context"
	"sync"
)

// MemStore is the in-process Store backend: a map guarded by a mutex
// plus an insertion-order list for oldest-first shedding.
type MemStore struct {
	mu      sync.Mutex
	entries map[string]string
	order   []string
}

func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]string)}
}

func (s *MemStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.entries[key]
	return text, ok, nil
}

func (s *MemStore) Set(_ context.Context, key, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; !exists {
		s.order = append(s.order, key)
	}
	s.entries[key] = text
	return nil
}

func (s *MemStore) Len(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}

func (s *MemStore) Shed(_ context.Context, keep int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if keep < 0 {
		keep = 0
	}
	if len(s.order) <= keep {
		return 0, nil
	}
	evict := s.order[:len(s.order)-keep]
	for _, key := range evict {
		delete(s.entries, key)
	}
	s.order = append([]string(nil), s.order[len(s.order)-keep:]...)
	return len(evict), nil
}
