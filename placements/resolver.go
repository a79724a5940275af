package placements

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-publish/categories"
	"github.com/goliatone/go-publish/content"
	"github.com/goliatone/go-publish/internal/logging"
	"github.com/goliatone/go-publish/pkg/interfaces"
)

// ResolveRequest carries the already-resolved category and content type plus
// the placement address. Date is set for dated placements and nil for static
// ones. Staff enables previewing inactive placements at their real URL.
type ResolveRequest struct {
	Category    *categories.Category
	ContentType *content.ContentType
	Slug        string
	Date        *Date
	Staff       bool
}

// Resolver resolves a placement address and enforces the active-window rule.
type Resolver interface {
	Resolve(ctx context.Context, req ResolveRequest) (*Placement, error)
}

// ResolverOption mutates the placement resolver.
type ResolverOption func(*resolver)

// WithResolverClock overrides the clock used for active-window checks.
func WithResolverClock(clock func() time.Time) ResolverOption {
	return func(r *resolver) {
		if clock != nil {
			r.now = clock
		}
	}
}

// WithResolverLogger overrides the resolver's logger.
func WithResolverLogger(logger interfaces.Logger) ResolverOption {
	return func(r *resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver constructs a placement resolver over the supplied repository.
func NewResolver(repo Repository, opts ...ResolverOption) Resolver {
	r := &resolver{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

type resolver struct {
	repo   Repository
	now    func() time.Time
	logger interfaces.Logger
}

// Resolve looks up the placement and applies the active-window gate. The
// returned placement carries the request's Category and ContentType instances
// (not re-fetched copies); callers rely on that pointer identity.
func (r *resolver) Resolve(ctx context.Context, req ResolveRequest) (*Placement, error) {
	if r == nil || r.repo == nil {
		return nil, errors.New("placements: resolver unavailable")
	}
	if req.Category == nil {
		return nil, ErrCategoryRequired
	}
	if req.ContentType == nil {
		return nil, &NotFoundError{Resource: "content type", Key: req.Slug}
	}

	if req.Date != nil {
		// A malformed date can never address a placement; reject it before
		// the range computation would normalize it onto a real date.
		if err := req.Date.Validate(); err != nil {
			return nil, &NotFoundError{Resource: "placement", Key: req.Slug}
		}
	}

	p, err := r.repo.Get(ctx, Query{
		CategoryID:    req.Category.ID,
		ContentTypeID: req.ContentType.ID,
		Slug:          req.Slug,
		Static:        req.Date == nil,
		Date:          req.Date,
	})
	if err != nil {
		return nil, err
	}

	// Reuse the instances the caller already resolved instead of the
	// relation-loaded copies; downstream code depends on identity.
	p.Category = req.Category
	p.CategoryID = req.Category.ID
	if p.Publishable != nil {
		p.Publishable.Type = req.ContentType
		p.Publishable.ContentTypeID = req.ContentType.ID
	}

	if !p.ActiveAt(r.now()) && !req.Staff {
		r.logger.Debug("inactive placement denied",
			"slug", req.Slug,
			"category", req.Category.TreePath,
		)
		return nil, &NotFoundError{Resource: "placement", Key: req.Slug}
	}
	return p, nil
}
