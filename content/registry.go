package content

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/goliatone/go-publish/internal/logging"
	"github.com/goliatone/go-publish/pkg/interfaces"
)

// Store lists the content types registered by the hosting application.
type Store interface {
	List(ctx context.Context) ([]*ContentType, error)
}

// Registry maps derived URL slugs to registered content types. Resolutions
// populate a process-wide cache that is never invalidated: the set of types
// is fixed per deployment, so staleness only matters if types are renamed at
// runtime, in which case the host must call Reset.
type Registry interface {
	Resolve(ctx context.Context, slug string) (*ContentType, error)
	Reset()
}

// RegistryOption mutates the registry.
type RegistryOption func(*registry)

// WithRegistryLogger overrides the registry's logger.
func WithRegistryLogger(logger interfaces.Logger) RegistryOption {
	return func(r *registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry constructs a content-type registry over the supplied store.
func NewRegistry(store Store, opts ...RegistryOption) Registry {
	r := &registry{
		store:  store,
		cache:  make(map[string]*ContentType),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

type registry struct {
	store  Store
	logger interfaces.Logger

	mu    sync.RWMutex
	cache map[string]*ContentType
}

// Resolve returns the content type whose derived slug matches. The first
// miss scans the store; later calls for the same slug are cache hits. A
// concurrent first resolution at worst repeats the scan, never corrupts the
// cache.
func (r *registry) Resolve(ctx context.Context, slug string) (*ContentType, error) {
	if r == nil || r.store == nil {
		return nil, errors.New("content: registry unavailable")
	}

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}

	r.mu.RLock()
	cached, ok := r.cache[slug]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	types, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, ct := range types {
		if DeriveSlug(ct) != slug {
			continue
		}
		r.mu.Lock()
		r.cache[slug] = ct
		r.mu.Unlock()
		return ct, nil
	}

	r.logger.Debug("content type slug did not match any registered type", "slug", slug)
	return nil, &NotFoundError{Slug: slug}
}

// Reset clears the slug cache. Intended for tests and for hosts that
// re-register content types.
func (r *registry) Reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache = make(map[string]*ContentType)
	r.mu.Unlock()
}
