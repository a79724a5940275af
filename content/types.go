package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ContentType identifies a publishable kind registered by the hosting
// application at startup. AppLabel and Model form the type's natural key
// used in template candidate names and dispatcher registrations;
// PluralName drives the URL slug (see DeriveSlug).
type ContentType struct {
	bun.BaseModel `bun:"table:content_types,alias:ct"`

	ID         uuid.UUID `bun:",pk,type:uuid"        json:"id"`
	AppLabel   string    `bun:"app_label,notnull"    json:"app_label"`
	Model      string    `bun:"model,notnull"        json:"model"`
	Name       string    `bun:"name,notnull"         json:"name"`
	PluralName string    `bun:"plural_name,notnull"  json:"plural_name"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Key returns the "app.model" identity used for template names and
// custom-view dispatch.
func (ct *ContentType) Key() string {
	if ct == nil {
		return ""
	}
	return ct.AppLabel + "." + ct.Model
}

// Publishable is the content entity bound into categories by placements.
// The engine reads only its identity fields; the payload is opaque.
type Publishable struct {
	bun.BaseModel `bun:"table:publishables,alias:pub"`

	ID            uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	ContentTypeID uuid.UUID      `bun:"content_type_id,notnull,type:uuid" json:"content_type_id"`
	Slug          string         `bun:"slug,notnull"  json:"slug"`
	Title         string         `bun:"title,notnull" json:"title"`
	Summary       *string        `bun:"summary"       json:"summary,omitempty"`
	Metadata      map[string]any `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Type *ContentType `bun:"rel:belongs-to,join:content_type_id=id" json:"content_type,omitempty"`
}
