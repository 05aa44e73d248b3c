// Package memory is a process-local slot backend for tests and throwaway sessions.
package memory

import (
	"context"
	"sync"

	"campaigner/internal/domain/repositories"
)

// SlotRepository keeps slot values in a map
type SlotRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewSlotRepository creates an empty in-memory slot store
func NewSlotRepository() *SlotRepository {
	return &SlotRepository{data: make(map[string][]byte)}
}

var _ repositories.Slot = (*SlotRepository)(nil)

// Read returns a copy of the stored value
func (r *SlotRepository) Read(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.data[key]
	if !ok {
		return nil, repositories.ErrSlotEmpty
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data
func (r *SlotRepository) Write(ctx context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = append([]byte(nil), data...)
	return nil
}
