package placements

import (
	"errors"
	"fmt"
)

var (
	ErrPlacementNotFound = errors.New("placements: placement not found")
	ErrPageNotFound      = errors.New("placements: page not found")
	ErrInvalidDate       = errors.New("placements: invalid calendar date")
	ErrYearRequired      = errors.New("placements: year is required when filtering by date")
	ErrCategoryRequired  = errors.New("placements: category is required")
)

// NotFoundError reports a lookup that matched no placement. Inactive
// placements viewed by non-staff callers surface through this same type;
// the engine never distinguishes forbidden from missing.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrPlacementNotFound.Error()
	}
	return fmt.Sprintf("placements: %s not found: %s", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	if e != nil && e.Resource == "page" {
		return ErrPageNotFound
	}
	return ErrPlacementNotFound
}

// InvalidDateError reports date filters that do not form a real calendar date.
type InvalidDateError struct {
	Year  int
	Month int
	Day   int
}

func (e *InvalidDateError) Error() string {
	if e == nil {
		return ErrInvalidDate.Error()
	}
	return fmt.Sprintf("%s: %04d-%02d-%02d", ErrInvalidDate.Error(), e.Year, e.Month, e.Day)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDate
}
