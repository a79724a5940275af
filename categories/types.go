package categories

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Category is a node in a site's content hierarchy. TreePath is the
// slash-delimited lookup key, unique per site; the empty path denotes the
// site's root (home) category. Path is the display form used when building
// template candidate names and usually mirrors TreePath.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID          uuid.UUID `bun:",pk,type:uuid"          json:"id"`
	SiteID      uuid.UUID `bun:"site_id,notnull,type:uuid" json:"site_id"`
	TreePath    string    `bun:"tree_path,notnull"      json:"tree_path"`
	Path        string    `bun:"path,notnull"           json:"path"`
	Title       string    `bun:"title,notnull"          json:"title"`
	Description *string   `bun:"description"            json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// IsRoot reports whether the category is the site's home category.
func (c *Category) IsRoot() bool {
	return c != nil && c.TreePath == ""
}
