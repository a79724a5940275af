package placements

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-publish/categories"
	"github.com/goliatone/go-publish/content"
)

// Placement binds a publishable into a category at a point in time. A static
// placement is addressable without a date segment; a dated one is addressed
// by the calendar date of PublishFrom. Exactly one placement exists for a
// given (category, content type, slug[, publish date]) — uniqueness is an
// upstream invariant the engine relies on but does not re-verify.
type Placement struct {
	bun.BaseModel `bun:"table:placements,alias:pl"`

	ID            uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	CategoryID    uuid.UUID  `bun:"category_id,notnull,type:uuid" json:"category_id"`
	PublishableID uuid.UUID  `bun:"publishable_id,notnull,type:uuid" json:"publishable_id"`
	Slug          string     `bun:"slug,notnull"  json:"slug"`
	PublishFrom   time.Time  `bun:"publish_from,notnull" json:"publish_from"`
	PublishTo     *time.Time `bun:"publish_to,nullzero"  json:"publish_to,omitempty"`
	Static        bool       `bun:"static,notnull,default:false" json:"static"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Category    *categories.Category `bun:"rel:belongs-to,join:category_id=id"    json:"category,omitempty"`
	Publishable *content.Publishable `bun:"rel:belongs-to,join:publishable_id=id" json:"publishable,omitempty"`
}

// ActiveAt reports whether at lies within the placement's active window
// [PublishFrom, PublishTo). A nil PublishTo means active indefinitely once
// published.
func (p *Placement) ActiveAt(at time.Time) bool {
	if p == nil {
		return false
	}
	if at.Before(p.PublishFrom) {
		return false
	}
	if p.PublishTo != nil && !at.Before(*p.PublishTo) {
		return false
	}
	return true
}

// Date identifies a calendar date used to address dated placements and to
// filter listings.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Validate rejects tuples that do not form a real calendar date (month 13,
// February 30, ...).
func (d Date) Validate() error {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return &InvalidDateError{Year: d.Year, Month: d.Month, Day: d.Day}
	}
	normalized := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if normalized.Year() != d.Year || int(normalized.Month()) != d.Month || normalized.Day() != d.Day {
		return &InvalidDateError{Year: d.Year, Month: d.Month, Day: d.Day}
	}
	return nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
