package content

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps registered content types in-memory for scaffolding and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	order []uuid.UUID
	types map[uuid.UUID]*ContentType
}

// NewMemoryStore creates an empty in-memory content-type store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{types: make(map[uuid.UUID]*ContentType)}
}

// Put inserts or replaces a content type, preserving registration order.
func (m *MemoryStore) Put(ct *ContentType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.types[ct.ID]; !exists {
		m.order = append(m.order, ct.ID)
	}
	copied := *ct
	m.types[ct.ID] = &copied
}

// List returns all registered content types in registration order.
func (m *MemoryStore) List(_ context.Context) ([]*ContentType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*ContentType, 0, len(m.order))
	for _, id := range m.order {
		copied := *m.types[id]
		out = append(out, &copied)
	}
	return out, nil
}
