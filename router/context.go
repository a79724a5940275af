package router

import (
	"github.com/goliatone/go-publish/categories"
	"github.com/goliatone/go-publish/content"
	"github.com/goliatone/go-publish/placements"
)

// Context is the render context assembled for a resolved object. The same
// instance is handed to custom detail and sub-path handlers, so anything the
// standard render would see, they see.
type Context struct {
	Placement       *placements.Placement
	Object          *content.Publishable
	Category        *categories.Category
	ContentType     *content.ContentType
	ContentTypeName string
	Staff           bool
}

// Data returns the context in the shape handed to the template renderer.
func (c *Context) Data() map[string]any {
	if c == nil {
		return map[string]any{}
	}
	return map[string]any{
		"placement":         c.Placement,
		"object":            c.Object,
		"category":          c.Category,
		"content_type":      c.ContentType,
		"content_type_name": c.ContentTypeName,
	}
}

// Response is a rendered page plus its HTTP-ish status. Transport plumbing
// lives outside the engine; handlers only see this pair.
type Response struct {
	Status int
	Body   string
}
