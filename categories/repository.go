package categories

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository is the category lookup contract required by the resolver.
type Repository interface {
	GetByTreePath(ctx context.Context, siteID uuid.UUID, treePath string) (*Category, error)
}

// NewCategoryRepository creates a go-repository-bun handler set for categories.
func NewCategoryRepository(db *bun.DB) repository.Repository[*Category] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Category]{
		NewRecord: func() *Category { return &Category{} },
		GetID: func(c *Category) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Category, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "tree_path"
		},
		GetIdentifierValue: func(c *Category) string {
			return c.TreePath
		},
	})
}

// BunRepository resolves categories against bun-managed storage. Lookups run
// through the repository cache when one is supplied; category resolution
// happens on every request, so production wiring always provides a cache.
type BunRepository struct {
	repo repository.Repository[*Category]
}

// NewBunRepository constructs an uncached category repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a category repository with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewCategoryRepository(db)
	return &BunRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

// GetByTreePath fetches the unique category with the given site and tree path.
func (r *BunRepository) GetByTreePath(ctx context.Context, siteID uuid.UUID, treePath string) (*Category, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.site_id = ?", siteID).
				Where("?TableAlias.tree_path = ?", treePath)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, siteID, treePath)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Site: siteID.String(), Path: treePath}
	}
	return records[0], nil
}

func mapRepositoryError(err error, siteID uuid.UUID, treePath string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Site: siteID.String(), Path: treePath}
	}
	return fmt.Errorf("category repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
