package placements

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-publish/categories"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
// Stored placements must carry their Category and Publishable relations;
// subtree and content-type filters read through them.
type MemoryRepository struct {
	mu         sync.RWMutex
	placements map[uuid.UUID]*Placement
}

// NewMemoryRepository creates an empty in-memory placement repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{placements: make(map[uuid.UUID]*Placement)}
}

// Put inserts or replaces a placement.
func (m *MemoryRepository) Put(p *Placement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placements[p.ID] = clonePlacement(p)
}

// Get returns the unique placement matching the query.
func (m *MemoryRepository) Get(_ context.Context, q Query) (*Placement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.placements {
		if p.CategoryID != q.CategoryID || p.Slug != q.Slug || p.Static != q.Static {
			continue
		}
		if p.Publishable == nil || p.Publishable.ContentTypeID != q.ContentTypeID {
			continue
		}
		if q.Date != nil && !matchesDate(p.PublishFrom, q.Date.Year, q.Date.Month, q.Date.Day) {
			continue
		}
		return clonePlacement(p), nil
	}
	return nil, &NotFoundError{Resource: "placement", Key: q.Slug}
}

// List returns one page of matching placements plus the unpaginated total,
// ordered by publish_from descending.
func (m *MemoryRepository) List(_ context.Context, q ListQuery) ([]*Placement, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*Placement, 0, len(m.placements))
	for _, p := range m.placements {
		if !matchesListQuery(p, q) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PublishFrom.After(matched[j].PublishFrom)
	})

	total := len(matched)
	start := q.Offset
	if start > total {
		start = total
	}
	end := total
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}

	out := make([]*Placement, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, clonePlacement(p))
	}
	return out, total, nil
}

// LatestPublishFrom returns the newest publish_from at or before the given
// instant within a category subtree.
func (m *MemoryRepository) LatestPublishFrom(_ context.Context, f SubtreeFilter, before time.Time) (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest time.Time
	found := false
	for _, p := range m.placements {
		if !inSubtree(p.Category, f) {
			continue
		}
		if p.PublishFrom.After(before) {
			continue
		}
		if !found || p.PublishFrom.After(latest) {
			latest = p.PublishFrom
			found = true
		}
	}
	if !found {
		return time.Time{}, &NotFoundError{Resource: "placement", Key: f.TreePath}
	}
	return latest, nil
}

func matchesListQuery(p *Placement, q ListQuery) bool {
	if q.Subtree != nil {
		if !inSubtree(p.Category, *q.Subtree) {
			return false
		}
	} else if p.CategoryID != q.CategoryID {
		return false
	}

	if q.Year != 0 {
		from := p.PublishFrom.UTC()
		if from.Year() != q.Year {
			return false
		}
		if q.Month != 0 && int(from.Month()) != q.Month {
			return false
		}
		if q.Day != 0 && from.Day() != q.Day {
			return false
		}
	}

	if len(q.ContentTypeIDs) > 0 {
		if p.Publishable == nil {
			return false
		}
		match := false
		for _, id := range q.ContentTypeIDs {
			if p.Publishable.ContentTypeID == id {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	return true
}

func inSubtree(cat *categories.Category, f SubtreeFilter) bool {
	if cat == nil || cat.SiteID != f.SiteID {
		return false
	}
	if f.TreePath == "" {
		return true
	}
	return cat.TreePath == f.TreePath || strings.HasPrefix(cat.TreePath, f.TreePath+"/")
}

func matchesDate(from time.Time, year, month, day int) bool {
	from = from.UTC()
	return from.Year() == year && int(from.Month()) == month && from.Day() == day
}

func clonePlacement(src *Placement) *Placement {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Category != nil {
		cat := *src.Category
		copied.Category = &cat
	}
	if src.Publishable != nil {
		pub := *src.Publishable
		if src.Publishable.Type != nil {
			ct := *src.Publishable.Type
			pub.Type = &ct
		}
		copied.Publishable = &pub
	}
	return &copied
}
