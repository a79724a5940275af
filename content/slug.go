package content

import (
	"strings"

	"github.com/gertd/go-pluralize"
	goslug "github.com/goliatone/go-slug"
)

var pluralizer = pluralize.NewClient()

// DeriveSlug computes the URL slug for a content type: the lower-cased,
// hyphenated plural name. When PluralName is unset the singular Name is
// pluralized first, mirroring how registered types are addressed in URLs.
func DeriveSlug(ct *ContentType) string {
	if ct == nil {
		return ""
	}

	plural := strings.TrimSpace(ct.PluralName)
	if plural == "" {
		plural = pluralizer.Plural(strings.TrimSpace(ct.Name))
	}
	if plural == "" {
		return ""
	}

	normalized, err := goslug.Normalize(plural)
	if err != nil {
		return ""
	}
	return normalized
}
