package archive

import (
	"context"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	champions   map[string]map[int]Champion
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.champions = make(map[string]map[int]Champion)
	return nil
}

// SaveChampion replaces any champion already stored for the same generation.
func (s *MemoryStore) SaveChampion(_ context.Context, runID string, c Champion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	run, ok := s.champions[runID]
	if !ok {
		run = make(map[int]Champion)
		s.champions[runID] = run
	}
	c.Weights = append([]float64(nil), c.Weights...)
	run[c.Generation] = c
	return nil
}

func (s *MemoryStore) Champions(_ context.Context, runID string) ([]Champion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errNotInitialized
	}
	run := s.champions[runID]
	out := make([]Champion, 0, len(run))
	for _, c := range run {
		c.Weights = append([]float64(nil), c.Weights...)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Generation < out[j].Generation })
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
