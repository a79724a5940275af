// Package router orchestrates content resolution end to end: category, then
// content type, then placement, then authorization, then either custom-view
// dispatch or standard template rendering. Every resolution failure is
// terminal and renders the fixed not-found page; no retries, no fallbacks.
package router

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-publish/categories"
	"github.com/goliatone/go-publish/content"
	"github.com/goliatone/go-publish/internal/logging"
	"github.com/goliatone/go-publish/pkg/interfaces"
	"github.com/goliatone/go-publish/placements"
	"github.com/goliatone/go-publish/templates"
)

const (
	objectTemplate   = "object.html"
	categoryTemplate = "category.html"
	listingTemplate  = "listing.html"
	notFoundTemplate = "page/404.html"
	errorTemplate    = "page/500.html"
)

// Dependencies are the collaborators the router orchestrates.
type Dependencies struct {
	Categories   categories.Resolver
	ContentTypes content.Registry
	Placements   placements.Resolver
	Listings     placements.ListingService
	// PlacementStore serves the latest-N query behind the banner export.
	PlacementStore placements.Repository
	Renderer       interfaces.TemplateRenderer
}

// Option mutates the router.
type Option func(*Router)

// WithDispatcher installs the custom-view dispatcher.
func WithDispatcher(d *Dispatcher) Option {
	return func(r *Router) {
		if d != nil {
			r.dispatcher = d
		}
	}
}

// WithLogger overrides the router's logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Router resolves requests for one site.
type Router struct {
	siteID      uuid.UUID
	deps        Dependencies
	dispatcher  *Dispatcher
	logger      interfaces.Logger
	exportCache *exportCache
}

// New constructs a router for a site.
func New(siteID uuid.UUID, deps Dependencies, opts ...Option) (*Router, error) {
	if siteID == uuid.Nil {
		return nil, ErrSiteRequired
	}
	if deps.Renderer == nil {
		return nil, ErrRendererRequired
	}

	r := &Router{
		siteID:     siteID,
		deps:       deps,
		dispatcher: NewDispatcher(),
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Dispatcher exposes the custom-view registry for handler registration.
func (r *Router) Dispatcher() *Dispatcher {
	return r.dispatcher
}

// DetailRequest addresses a single published object. Year/Month/Day are all
// zero for static placements and all set for dated ones. PathSuffix is the
// URL remainder after the object's own address.
type DetailRequest struct {
	CategoryPath string
	ContentType  string
	Slug         string
	Year         int
	Month        int
	Day          int
	PathSuffix   string
	Staff        bool
}

// ObjectDetail runs the full detail state machine and renders the object, a
// custom override, or a sub-view. Resolution failures render the not-found
// page; only renderer and handler breakdowns surface as errors.
func (r *Router) ObjectDetail(ctx context.Context, req DetailRequest) (*Response, error) {
	if err := req.Validate(); err != nil {
		return r.notFound(ctx, err)
	}

	ct, err := r.deps.ContentTypes.Resolve(ctx, req.ContentType)
	if err != nil {
		return r.notFound(ctx, err)
	}

	cat, err := r.deps.Categories.Resolve(ctx, req.CategoryPath, r.siteID)
	if err != nil {
		return r.notFound(ctx, err)
	}

	var date *placements.Date
	if req.Year != 0 {
		date = &placements.Date{Year: req.Year, Month: req.Month, Day: req.Day}
	}

	p, err := r.deps.Placements.Resolve(ctx, placements.ResolveRequest{
		Category:    cat,
		ContentType: ct,
		Slug:        req.Slug,
		Date:        date,
		Staff:       req.Staff,
	})
	if err != nil {
		return r.notFound(ctx, err)
	}

	rc := &Context{
		Placement:       p,
		Object:          p.Publishable,
		Category:        cat,
		ContentType:     ct,
		ContentTypeName: req.ContentType,
		Staff:           req.Staff,
	}

	if suffix := strings.Trim(req.PathSuffix, "/"); suffix != "" {
		if !r.dispatcher.HasSubPath(ct.Key()) {
			return r.notFound(ctx, ErrNoHandler)
		}
		resp, err := r.dispatcher.DispatchSubPath(ctx, ct.Key(), strings.Split(suffix, "/"), rc)
		if err != nil {
			return r.notFound(ctx, err)
		}
		return resp, nil
	}

	if r.dispatcher.HasCustomDetail(ct.Key()) {
		resp, err := r.dispatcher.DispatchDetail(ctx, ct.Key(), rc)
		if err != nil {
			return r.notFound(ctx, err)
		}
		return resp, nil
	}

	candidates := templates.CandidatesForPlacement(objectTemplate, p, templates.Fields{})
	return r.render(candidates, rc.Data())
}

// CategoryRequest addresses a category homepage.
type CategoryRequest struct {
	CategoryPath string
}

// CategoryDetail renders a category's home page. The context carries the
// category, whether it is the site homepage, and the archive entry year.
func (r *Router) CategoryDetail(ctx context.Context, req CategoryRequest) (*Response, error) {
	cat, err := r.deps.Categories.Resolve(ctx, req.CategoryPath, r.siteID)
	if err != nil {
		return r.notFound(ctx, err)
	}

	data := map[string]any{
		"category":           cat,
		"is_homepage":        cat.IsRoot(),
		"archive_entry_year": r.deps.Listings.ArchiveYear(ctx, cat),
	}
	candidates := templates.Candidates(categoryTemplate, templates.Fields{CategoryPath: cat.Path})
	return r.render(candidates, data)
}

// ListingRequest addresses a filtered, paginated content listing.
type ListingRequest struct {
	CategoryPath string
	ContentType  string
	Year         int
	Month        int
	Day          int
	Page         int
	PerPage      int
}

// ListContent renders a listing page for a category/date/type filter.
func (r *Router) ListContent(ctx context.Context, req ListingRequest) (*Response, error) {
	if err := req.Validate(); err != nil {
		return r.notFound(ctx, err)
	}

	cat, err := r.deps.Categories.Resolve(ctx, req.CategoryPath, r.siteID)
	if err != nil {
		return r.notFound(ctx, err)
	}

	var ct *content.ContentType
	var typeIDs []uuid.UUID
	if req.ContentType != "" {
		ct, err = r.deps.ContentTypes.Resolve(ctx, req.ContentType)
		if err != nil {
			return r.notFound(ctx, err)
		}
		typeIDs = []uuid.UUID{ct.ID}
	}

	page, err := r.deps.Listings.List(ctx, placements.ListOptions{
		Category: cat,
		// Subtree listings apply to every non-root category path.
		IncludeSubtree: !cat.IsRoot(),
		Year:           req.Year,
		Month:          req.Month,
		Day:            req.Day,
		ContentTypeIDs: typeIDs,
		Page:           req.Page,
		PerPage:        req.PerPage,
	})
	if err != nil {
		return r.notFound(ctx, err)
	}

	data := map[string]any{
		"page":              page,
		"is_paginated":      page.IsPaginated(),
		"results_per_page":  page.PerPage,
		"listings":          page.Items,
		"category":          cat,
		"content_type":      ct,
		"content_type_name": req.ContentType,
	}

	fields := templates.Fields{CategoryPath: cat.Path}
	if ct != nil {
		fields.AppLabel = ct.AppLabel
		fields.ModelLabel = ct.Model
	}
	return r.render(templates.Candidates(listingTemplate, fields), data)
}

// NotFound renders the fixed not-found page with no extra context.
func (r *Router) NotFound(ctx context.Context) (*Response, error) {
	_ = ctx
	body, err := r.deps.Renderer.Render([]string{notFoundTemplate}, map[string]any{})
	if err != nil {
		return nil, wrapRenderError(err)
	}
	return &Response{Status: 404, Body: body}, nil
}

// ServerError renders the fixed error page with no extra context.
func (r *Router) ServerError(ctx context.Context) (*Response, error) {
	_ = ctx
	body, err := r.deps.Renderer.Render([]string{errorTemplate}, map[string]any{})
	if err != nil {
		return nil, wrapRenderError(err)
	}
	return &Response{Status: 500, Body: body}, nil
}

func (r *Router) notFound(ctx context.Context, cause error) (*Response, error) {
	if cause != nil {
		r.logger.Debug("resolution failed", "reason", cause.Error())
	}
	return r.NotFound(ctx)
}

func (r *Router) render(candidates []string, data map[string]any) (*Response, error) {
	body, err := r.deps.Renderer.Render(candidates, data)
	if err != nil {
		return nil, wrapRenderError(err)
	}
	return &Response{Status: 200, Body: body}, nil
}

func wrapRenderError(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "template rendering failed").
		WithTextCode("TEMPLATE_RENDER_FAILED")
}
