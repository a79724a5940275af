package categories

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-publish/internal/logging"
	"github.com/goliatone/go-publish/pkg/interfaces"
	"github.com/google/uuid"
)

// Resolver maps a hierarchical path string to the Category entity for a site.
type Resolver interface {
	Resolve(ctx context.Context, path string, siteID uuid.UUID) (*Category, error)
}

// ResolverOption mutates the category resolver.
type ResolverOption func(*resolver)

// WithResolverLogger overrides the resolver's logger.
func WithResolverLogger(logger interfaces.Logger) ResolverOption {
	return func(r *resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver constructs a category resolver backed by the supplied
// repository. The repository is expected to be the cached variant; path
// resolution runs on every request.
func NewResolver(repo Repository, opts ...ResolverOption) Resolver {
	r := &resolver{
		repo:   repo,
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
	logger interfaces.Logger
}

// Resolve returns the unique category for the site and path. The empty path
// (or bare slashes) resolves to the site's root category.
func (r *resolver) Resolve(ctx context.Context, path string, siteID uuid.UUID) (*Category, error) {
	if r == nil || r.repo == nil {
		return nil, errors.New("categories: resolver unavailable")
	}
	if siteID == uuid.Nil {
		return nil, ErrSiteRequired
	}

	treePath := strings.Trim(strings.TrimSpace(path), "/")
	cat, err := r.repo.GetByTreePath(ctx, siteID, treePath)
	if err != nil {
		r.logger.Debug("category resolution failed", "site", siteID.String(), "path", treePath)
		return nil, err
	}
	return cat, nil
}
