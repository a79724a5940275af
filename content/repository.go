package content

import (
	"context"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewContentTypeRepository creates a go-repository-bun handler set for content types.
func NewContentTypeRepository(db *bun.DB) repository.Repository[*ContentType] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ContentType]{
		NewRecord: func() *ContentType { return &ContentType{} },
		GetID: func(ct *ContentType) uuid.UUID {
			return ct.ID
		},
		SetID: func(ct *ContentType, id uuid.UUID) {
			ct.ID = id
		},
		GetIdentifier: func() string {
			return "model"
		},
		GetIdentifierValue: func(ct *ContentType) string {
			return ct.Model
		},
	})
}

// BunStore lists content types from bun-managed storage. The registry caches
// resolutions itself, so the store is only consulted on first lookups;
// wrapping with the repository cache keeps those scans off the database too.
type BunStore struct {
	repo repository.Repository[*ContentType]
}

// NewBunStore constructs an uncached content-type store.
func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache constructs a content-type store with optional caching.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunStore {
	base := NewContentTypeRepository(db)
	wrapped := base
	if cacheService != nil && keySerializer != nil {
		wrapped = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunStore{repo: wrapped}
}

// List returns every registered content type.
func (s *BunStore) List(ctx context.Context) ([]*ContentType, error) {
	records, _, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("content type repository error: %w", err)
	}
	return records, nil
}
