package placements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPlacementRepository creates a go-repository-bun handler set for placements.
func NewPlacementRepository(db *bun.DB) repository.Repository[*Placement] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Placement]{
		NewRecord: func() *Placement { return &Placement{} },
		GetID: func(p *Placement) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Placement, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Placement) string {
			return p.Slug
		},
	})
}

// BunRepository resolves placements against bun-managed storage. Single
// lookups run through the (optionally cached) go-repository-bun handler;
// listing queries need count + page semantics and hit bun directly.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Placement]
}

// NewBunRepository constructs an uncached placement repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a placement repository with optional caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewPlacementRepository(db)
	wrapped := base
	if cacheService != nil && keySerializer != nil {
		wrapped = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunRepository{db: db, repo: wrapped}
}

// Get returns the unique placement matching the query.
func (r *BunRepository) Get(ctx context.Context, q Query) (*Placement, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(sq *bun.SelectQuery) *bun.SelectQuery {
			sq = sq.Relation("Category").
				Relation("Publishable").
				Relation("Publishable.Type").
				Join("JOIN publishables AS p2 ON p2.id = ?TableAlias.publishable_id").
				Where("?TableAlias.category_id = ?", q.CategoryID).
				Where("?TableAlias.slug = ?", q.Slug).
				Where("?TableAlias.static = ?", q.Static).
				Where("p2.content_type_id = ?", q.ContentTypeID)
			if q.Date != nil {
				start, end := dateRange(q.Date.Year, q.Date.Month, q.Date.Day)
				sq = sq.Where("?TableAlias.publish_from >= ?", start).
					Where("?TableAlias.publish_from < ?", end)
			}
			return sq
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "placement", q.Slug)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "placement", Key: q.Slug}
	}
	return records[0], nil
}

// List returns one page of placements plus the unpaginated total, ordered by
// publish_from descending.
func (r *BunRepository) List(ctx context.Context, q ListQuery) ([]*Placement, int, error) {
	if r.db == nil {
		return nil, 0, errors.New("placements: repository requires database")
	}

	countQuery := r.db.NewSelect().Model((*Placement)(nil))
	applyListFilters(countQuery, q)
	total, err := countQuery.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("placement repository error: %w", err)
	}

	var items []*Placement
	listQuery := r.db.NewSelect().Model(&items).
		Relation("Category").
		Relation("Publishable").
		Relation("Publishable.Type")
	applyListFilters(listQuery, q)
	listQuery.Order("pl.publish_from DESC")
	if q.Limit > 0 {
		listQuery.Limit(q.Limit)
	}
	if q.Offset > 0 {
		listQuery.Offset(q.Offset)
	}
	if err := listQuery.Scan(ctx); err != nil {
		return nil, 0, fmt.Errorf("placement repository error: %w", err)
	}
	return items, total, nil
}

// LatestPublishFrom returns the newest publish_from at or before the given
// instant within a category subtree.
func (r *BunRepository) LatestPublishFrom(ctx context.Context, f SubtreeFilter, before time.Time) (time.Time, error) {
	if r.db == nil {
		return time.Time{}, errors.New("placements: repository requires database")
	}

	var latest time.Time
	err := r.db.NewSelect().Model((*Placement)(nil)).
		ColumnExpr("pl.publish_from").
		Join("JOIN categories AS c2 ON c2.id = pl.category_id").
		Where("c2.site_id = ?", f.SiteID).
		Apply(func(sq *bun.SelectQuery) *bun.SelectQuery {
			return applySubtreePaths(sq, f.TreePath)
		}).
		Where("pl.publish_from <= ?", before).
		Order("pl.publish_from DESC").
		Limit(1).
		Scan(ctx, &latest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, &NotFoundError{Resource: "placement", Key: f.TreePath}
		}
		return time.Time{}, fmt.Errorf("placement repository error: %w", err)
	}
	return latest, nil
}

func applyListFilters(sq *bun.SelectQuery, q ListQuery) {
	if q.Subtree != nil {
		sq.Join("JOIN categories AS c2 ON c2.id = pl.category_id").
			Where("c2.site_id = ?", q.Subtree.SiteID)
		applySubtreePaths(sq, q.Subtree.TreePath)
	} else {
		sq.Where("pl.category_id = ?", q.CategoryID)
	}

	if q.Year != 0 {
		start, end := dateRange(q.Year, q.Month, q.Day)
		sq.Where("pl.publish_from >= ?", start).
			Where("pl.publish_from < ?", end)
	}

	if len(q.ContentTypeIDs) > 0 {
		sq.Join("JOIN publishables AS p2 ON p2.id = pl.publishable_id").
			Where("p2.content_type_id IN (?)", bun.In(q.ContentTypeIDs))
	}
}

func applySubtreePaths(sq *bun.SelectQuery, treePath string) *bun.SelectQuery {
	if treePath == "" {
		return sq
	}
	return sq.Where("(c2.tree_path = ? OR c2.tree_path LIKE ?)", treePath, treePath+"/%")
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
