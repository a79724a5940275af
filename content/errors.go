package content

import (
	"errors"
	"fmt"
)

var (
	ErrContentTypeNotFound = errors.New("content: content type not found")
	ErrSlugRequired        = errors.New("content: slug is required")
)

// NotFoundError reports a content-type slug no registered type produces.
type NotFoundError struct {
	Slug string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrContentTypeNotFound.Error()
	}
	return fmt.Sprintf("%s: slug=%q", ErrContentTypeNotFound.Error(), e.Slug)
}

func (e *NotFoundError) Unwrap() error {
	return ErrContentTypeNotFound
}
