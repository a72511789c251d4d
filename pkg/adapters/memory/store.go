package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/layout"
)

// Store implements ports.PlanStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save persists the plan in memory. Plans are stored serialized so the
// caller can never mutate stored state through a shared pointer.
func (s *Store) Save(ctx context.Context, plan *layout.Plan) error {
	if plan.Fingerprint == "" {
		return fmt.Errorf("plan has no fingerprint")
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[plan.Fingerprint] = data
	return nil
}

// Load retrieves the plan from memory.
func (s *Store) Load(ctx context.Context, fingerprint string) (*layout.Plan, error) {
	s.mu.RLock()
	data, ok := s.data[fingerprint]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrPlanNotFound
	}

	var plan layout.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &plan, nil
}

// Delete removes the plan.
func (s *Store) Delete(ctx context.Context, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, fingerprint)
	return nil
}

// List returns the stored fingerprints.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fingerprints := make([]string, 0, len(s.data))
	for fp := range s.data {
		fingerprints = append(fingerprints, fp)
	}
	return fingerprints, nil
}
