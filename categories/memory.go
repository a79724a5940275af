package categories

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	paths map[string]*Category
}

// NewMemoryRepository creates an empty in-memory category repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{paths: make(map[string]*Category)}
}

// Put inserts or replaces a category.
func (m *MemoryRepository) Put(c *Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *c
	m.paths[pathKey(c.SiteID, c.TreePath)] = &copied
}

// GetByTreePath retrieves a category by site and tree path.
func (m *MemoryRepository) GetByTreePath(_ context.Context, siteID uuid.UUID, treePath string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.paths[pathKey(siteID, treePath)]
	if !ok {
		return nil, &NotFoundError{Site: siteID.String(), Path: treePath}
	}
	copied := *rec
	return &copied, nil
}

func pathKey(siteID uuid.UUID, treePath string) string {
	return siteID.String() + "/" + treePath
}
