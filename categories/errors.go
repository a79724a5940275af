package categories

import (
	"errors"
	"fmt"
)

var (
	ErrCategoryNotFound = errors.New("categories: category not found")
	ErrSiteRequired     = errors.New("categories: site id is required")
)

// NotFoundError carries the site and path that failed to resolve.
type NotFoundError struct {
	Site string
	Path string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrCategoryNotFound.Error()
	}
	return fmt.Sprintf("%s: site=%s path=%q", ErrCategoryNotFound.Error(), e.Site, e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return ErrCategoryNotFound
}
