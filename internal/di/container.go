// Package di wires the resolution engine's collaborators: repositories,
// services and the router. Memory repositories are the default; supplying a
// bun.DB swaps in the SQL-backed implementations, with repository caching
// layered on when the configuration enables it.
package di

import (
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-publish/categories"
	"github.com/goliatone/go-publish/content"
	"github.com/goliatone/go-publish/internal/logging"
	"github.com/goliatone/go-publish/internal/logging/gologger"
	"github.com/goliatone/go-publish/internal/runtimeconfig"
	"github.com/goliatone/go-publish/pkg/interfaces"
	"github.com/goliatone/go-publish/placements"
	"github.com/goliatone/go-publish/router"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	template    interfaces.TemplateRenderer
	exportCache interfaces.CacheProvider
	logProvider interfaces.LoggerProvider
	clock       func() time.Time

	categoryRepo  categories.Repository
	typeStore     content.Store
	placementRepo placements.Repository

	memoryCategoryRepo  *categories.MemoryRepository
	memoryTypeStore     *content.MemoryStore
	memoryPlacementRepo *placements.MemoryRepository

	categorySvc categories.Resolver
	registry    content.Registry
	resolverSvc placements.Resolver
	listingSvc  placements.ListingService

	dispatcher *router.Dispatcher
	engine     *router.Router
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds the SQL repositories to a bun database handle.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache wiring.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithTemplate binds the template renderer. Required for router construction.
func WithTemplate(tr interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.template = tr
	}
}

// WithExportCache binds a cache for rendered exports.
func WithExportCache(cache interfaces.CacheProvider) Option {
	return func(c *Container) {
		c.exportCache = cache
	}
}

// WithLoggerProvider binds the logger provider shared by every service.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.logProvider = provider
	}
}

// WithDispatcher overrides the default empty custom-view dispatcher.
func WithDispatcher(d *router.Dispatcher) Option {
	return func(c *Container) {
		c.dispatcher = d
	}
}

// WithClock overrides the wall clock used for publication windows.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// WithCategoryRepository overrides the category repository binding.
func WithCategoryRepository(repo categories.Repository) Option {
	return func(c *Container) {
		c.categoryRepo = repo
		c.memoryCategoryRepo = nil
	}
}

// WithContentTypeStore overrides the content-type store binding.
func WithContentTypeStore(store content.Store) Option {
	return func(c *Container) {
		c.typeStore = store
		c.memoryTypeStore = nil
	}
}

// WithPlacementRepository overrides the placement repository binding.
func WithPlacementRepository(repo placements.Repository) Option {
	return func(c *Container) {
		c.placementRepo = repo
		c.memoryPlacementRepo = nil
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	memoryCategoryRepo := categories.NewMemoryRepository()
	memoryTypeStore := content.NewMemoryStore()
	memoryPlacementRepo := placements.NewMemoryRepository()

	c := &Container{
		Config:              cfg,
		cacheTTL:            cacheTTL,
		clock:               time.Now,
		categoryRepo:        memoryCategoryRepo,
		typeStore:           memoryTypeStore,
		placementRepo:       memoryPlacementRepo,
		memoryCategoryRepo:  memoryCategoryRepo,
		memoryTypeStore:     memoryTypeStore,
		memoryPlacementRepo: memoryPlacementRepo,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureServices()

	if err := c.configureRouter(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.logProvider != nil {
		return nil
	}
	if !c.Config.Logging.Enabled {
		return nil
	}
	if c.Config.Logging.Provider != "gologger" {
		return nil
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
	})
	if err != nil {
		return err
	}
	c.logProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.categoryRepo = categories.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.typeStore = content.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.placementRepo = placements.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)

	c.memoryCategoryRepo = nil
	c.memoryTypeStore = nil
	c.memoryPlacementRepo = nil
}

func (c *Container) configureServices() {
	if c.categorySvc == nil {
		c.categorySvc = categories.NewResolver(
			c.categoryRepo,
			categories.WithResolverLogger(logging.CategoriesLogger(c.logProvider)),
		)
	}

	if c.registry == nil {
		c.registry = content.NewRegistry(
			c.typeStore,
			content.WithRegistryLogger(logging.ContentLogger(c.logProvider)),
		)
	}

	if c.resolverSvc == nil {
		c.resolverSvc = placements.NewResolver(
			c.placementRepo,
			placements.WithResolverClock(c.clock),
			placements.WithResolverLogger(logging.PlacementsLogger(c.logProvider)),
		)
	}

	if c.listingSvc == nil {
		listingOpts := []placements.ListingOption{
			placements.WithListingClock(c.clock),
			placements.WithListingLogger(logging.PlacementsLogger(c.logProvider)),
		}
		if c.Config.Listing.PerPage > 0 {
			listingOpts = append(listingOpts, placements.WithListingPerPage(c.Config.Listing.PerPage))
		}
		if c.Config.Archive.Year > 0 {
			listingOpts = append(listingOpts, placements.WithArchiveYear(c.Config.Archive.Year))
		}
		c.listingSvc = placements.NewListingService(c.placementRepo, listingOpts...)
	}
}

func (c *Container) configureRouter() error {
	if c.template == nil {
		// Routerless use is legitimate: hosts can consume the services
		// directly and render with their own stack.
		return nil
	}

	if c.dispatcher == nil {
		c.dispatcher = router.NewDispatcher()
	}

	routerOpts := []router.Option{
		router.WithDispatcher(c.dispatcher),
		router.WithLogger(logging.RouterLogger(c.logProvider)),
	}
	if c.Config.Export.Enabled && c.exportCache != nil {
		routerOpts = append(routerOpts, router.WithExportCache(c.exportCache, c.Config.Export.TTL))
	}

	engine, err := router.New(c.Config.Site, router.Dependencies{
		Categories:     c.categorySvc,
		ContentTypes:   c.registry,
		Placements:     c.resolverSvc,
		Listings:       c.listingSvc,
		PlacementStore: c.placementRepo,
		Renderer:       c.template,
	}, routerOpts...)
	if err != nil {
		return err
	}
	c.engine = engine
	return nil
}

// Router returns the configured content router, or nil when no template
// renderer was supplied.
func (c *Container) Router() *router.Router {
	return c.engine
}

// Dispatcher returns the custom-view dispatcher shared with the router.
func (c *Container) Dispatcher() *router.Dispatcher {
	return c.dispatcher
}

// CategoryResolver returns the configured category resolver.
func (c *Container) CategoryResolver() categories.Resolver {
	return c.categorySvc
}

// ContentTypeRegistry returns the configured content-type registry.
func (c *Container) ContentTypeRegistry() content.Registry {
	return c.registry
}

// PlacementResolver returns the configured placement resolver.
func (c *Container) PlacementResolver() placements.Resolver {
	return c.resolverSvc
}

// ListingService returns the configured listing service.
func (c *Container) ListingService() placements.ListingService {
	return c.listingSvc
}

// CategoryRepository exposes the configured category repository.
func (c *Container) CategoryRepository() categories.Repository {
	return c.categoryRepo
}

// ContentTypeStore exposes the configured content-type store.
func (c *Container) ContentTypeStore() content.Store {
	return c.typeStore
}

// PlacementRepository exposes the configured placement repository.
func (c *Container) PlacementRepository() placements.Repository {
	return c.placementRepo
}

// MemoryCategoryRepository exposes the in-memory category repository for
// seeding, or nil when SQL storage is active.
func (c *Container) MemoryCategoryRepository() *categories.MemoryRepository {
	return c.memoryCategoryRepo
}

// MemoryContentTypeStore exposes the in-memory type store for seeding, or nil
// when SQL storage is active.
func (c *Container) MemoryContentTypeStore() *content.MemoryStore {
	return c.memoryTypeStore
}

// MemoryPlacementRepository exposes the in-memory placement repository for
// seeding, or nil when SQL storage is active.
func (c *Container) MemoryPlacementRepository() *placements.MemoryRepository {
	return c.memoryPlacementRepo
}

// LoggerProvider exposes the configured logger provider, which may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.logProvider
}
