package router

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the request carries an addressable object before any
// repository work happens.
func (r DetailRequest) Validate() error {
	errs := validation.Errors{}
	if r.ContentType == "" {
		errs["content_type"] = validation.NewError("publish.detail.content_type_required", "content type is required")
	}
	if r.Slug == "" {
		errs["slug"] = validation.NewError("publish.detail.slug_required", "slug is required")
	}
	if r.Year != 0 {
		if r.Month < 1 || r.Month > 12 {
			errs["month"] = validation.NewError("publish.detail.month_invalid", "month must be between 1 and 12")
		}
		if r.Day < 1 || r.Day > 31 {
			errs["day"] = validation.NewError("publish.detail.day_invalid", "day must be between 1 and 31")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks the listing filter shape. Date-part dependencies (month
// needs year, day needs month) are enforced downstream by the listing
// service; this catches plainly out-of-range values early.
func (r ListingRequest) Validate() error {
	errs := validation.Errors{}
	if r.Month < 0 || r.Month > 12 {
		errs["month"] = validation.NewError("publish.listing.month_invalid", "month must be between 1 and 12")
	}
	if r.Day < 0 || r.Day > 31 {
		errs["day"] = validation.NewError("publish.listing.day_invalid", "day must be between 1 and 31")
	}
	if r.Page < 0 {
		errs["page"] = validation.NewError("publish.listing.page_invalid", "page must be positive")
	}
	if r.PerPage < 0 {
		errs["per_page"] = validation.NewError("publish.listing.per_page_invalid", "per-page must be positive")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks the export request shape.
func (r ExportRequest) Validate() error {
	errs := validation.Errors{}
	if r.Count <= 0 {
		errs["count"] = validation.NewError("publish.export.count_invalid", "count must be greater than zero")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
