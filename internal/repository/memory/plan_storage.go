package memory

import (
	"context"
	"sync"

	"trimplan/internal/domain/repositories"
)

// PlanStorage keeps values in process memory. Nothing survives a restart;
// it backs tests and throwaway sessions.
type PlanStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewPlanStorage creates an empty in-memory store
func NewPlanStorage() *PlanStorage {
	return &PlanStorage{values: make(map[string][]byte)}
}

var _ repositories.PlanStorage = (*PlanStorage)(nil)

// Get returns a copy of the value under key, or nil
func (s *PlanStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

// Put stores a copy of value under key
func (s *PlanStorage) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = append([]byte{}, value...)
	return nil
}

// Delete removes key
func (s *PlanStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Name returns "memory"
func (s *PlanStorage) Name() string {
	return "memory"
}
