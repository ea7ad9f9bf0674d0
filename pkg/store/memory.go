package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matzehuels/critpath/pkg/errors"
)

// Memory is an in-memory archive for development and testing.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemory creates an empty in-memory archive.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

func (s *Memory) Save(_ context.Context, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		return errors.New(errors.ErrCodeInvalidInput, "circuit %s already archived", rec.ID)
	}
	s.records[rec.ID] = rec
	return nil
}

func (s *Memory) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "circuit %s not found", id)
	}
	return &rec, nil
}

func (s *Memory) List(_ context.Context, limit int64) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && int64(len(records)) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *Memory) Close(context.Context) error { return nil }

var _ Archive = (*Memory)(nil)
