package store

import (
	"context"
	"sync"
)

// Memory is an in-memory PatternStore for tests and store-less runs.
type Memory struct {
	mu      sync.Mutex
	records []PatternRecord
}

var _ PatternStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (s *Memory) Save(ctx context.Context, records []PatternRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

func (s *Memory) BySlot(ctx context.Context, slot uint64) ([]PatternRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []PatternRecord
	for _, r := range s.records {
		if r.Slot == slot {
			out = append(out, r)
		}
	}
	return out, nil
}

// All returns every stored record in insertion order.
func (s *Memory) All() []PatternRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PatternRecord, len(s.records))
	copy(out, s.records)
	return out
}
