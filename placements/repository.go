package placements

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Query identifies a single placement. Date must be set exactly when Static
// is false: dated placements match on the calendar date of publish_from,
// static ones carry no date constraint.
type Query struct {
	CategoryID    uuid.UUID
	ContentTypeID uuid.UUID
	Slug          string
	Static        bool
	Date          *Date
}

// SubtreeFilter restricts a listing to a category subtree within a site.
// The subtree includes the category itself.
type SubtreeFilter struct {
	SiteID   uuid.UUID
	TreePath string
}

// ListQuery is the filter set for listing placements. Items are always
// returned ordered by publish_from descending; consumers (pagination,
// latest-N exports) depend on that contract.
type ListQuery struct {
	CategoryID     uuid.UUID
	Subtree        *SubtreeFilter
	Year           int
	Month          int
	Day            int
	ContentTypeIDs []uuid.UUID
	Limit          int
	Offset         int
}

// Repository is the placement lookup contract.
type Repository interface {
	// Get returns the unique placement matching the query, with its
	// Category and Publishable (and the publishable's type) loaded.
	Get(ctx context.Context, q Query) (*Placement, error)
	// List returns one page of matching placements, publish_from
	// descending, plus the unpaginated total.
	List(ctx context.Context, q ListQuery) ([]*Placement, int, error)
	// LatestPublishFrom returns the newest publish_from at or before the
	// given instant within a category subtree.
	LatestPublishFrom(ctx context.Context, f SubtreeFilter, before time.Time) (time.Time, error)
}

// dateRange converts a (partial) calendar date filter into a half-open
// [start, end) interval over publish_from. Callers validate the components
// first; time.Date normalization is never relied on for matching.
func dateRange(year, month, day int) (time.Time, time.Time) {
	switch {
	case month == 0:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	case day == 0:
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	default:
		start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 0, 1)
	}
}
