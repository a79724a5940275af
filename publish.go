// Package publish resolves published content for a site: categories by tree
// path, content types by public slug, placements by address and publication
// window, plus listings, template candidate chains and export feeds.
package publish

import (
	"github.com/goliatone/go-publish/categories"
	"github.com/goliatone/go-publish/content"
	"github.com/goliatone/go-publish/internal/di"
	"github.com/goliatone/go-publish/placements"
	"github.com/goliatone/go-publish/router"
)

// CategoryResolver exports the category resolution contract.
type CategoryResolver = categories.Resolver

// ContentTypeRegistry exports the slug-to-type registry contract.
type ContentTypeRegistry = content.Registry

// PlacementResolver exports the placement resolution contract.
type PlacementResolver = placements.Resolver

// ListingService exports the listing and pagination contract.
type ListingService = placements.ListingService

// Router exports the orchestration engine.
type Router = router.Router

// Dispatcher exports the custom-view registry.
type Dispatcher = router.Dispatcher

// Option exports the DI override hooks.
type Option = di.Option

// Functional DI overrides re-exported for hosts.
var (
	WithBunDB               = di.WithBunDB
	WithCache               = di.WithCache
	WithTemplate            = di.WithTemplate
	WithExportCache         = di.WithExportCache
	WithLoggerProvider      = di.WithLoggerProvider
	WithDispatcher          = di.WithDispatcher
	WithClock               = di.WithClock
	WithCategoryRepository  = di.WithCategoryRepository
	WithContentTypeStore    = di.WithContentTypeStore
	WithPlacementRepository = di.WithPlacementRepository
)

// Module is the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs the module using the provided configuration and optional DI
// overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Categories returns the configured category resolver.
func (m *Module) Categories() CategoryResolver {
	return m.container.CategoryResolver()
}

// ContentTypes returns the configured content-type registry.
func (m *Module) ContentTypes() ContentTypeRegistry {
	return m.container.ContentTypeRegistry()
}

// Placements returns the configured placement resolver.
func (m *Module) Placements() PlacementResolver {
	return m.container.PlacementResolver()
}

// Listings returns the configured listing service.
func (m *Module) Listings() ListingService {
	return m.container.ListingService()
}

// Router returns the configured content router, or nil when no template
// renderer was supplied.
func (m *Module) Router() *Router {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Router()
}
