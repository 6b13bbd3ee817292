package di

import (
	"context"
	"log/slog"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-product-compare/api"
	"github.com/goliatone/go-product-compare/cache"
	"github.com/goliatone/go-product-compare/comparison"
	"github.com/goliatone/go-product-compare/config"
	"github.com/goliatone/go-product-compare/internal/metrics"
	"github.com/goliatone/go-product-compare/store"
)

// Container wires the application graph: store, cache, metrics, resolver and
// HTTP server. Every component is created once and shared.
type Container struct {
	config        config.Config
	logger        *slog.Logger
	store         *store.Store
	itemStore     comparison.ItemStore
	cacheService  cache.Service
	keySerializer cache.KeySerializer
	metrics       *metrics.Metrics
	resolver      *comparison.Resolver
	server        *api.Server
}

// Option customises container construction.
type Option func(*Container)

// WithLogger sets the logger handed to the HTTP server.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// WithItemStore replaces the database backed store. No database is opened.
func WithItemStore(s comparison.ItemStore) Option {
	return func(c *Container) {
		c.itemStore = s
	}
}

// NewContainer builds every component described by cfg. When the database is
// used, the schema is created if auto_migrate is set and the seed file, if any,
// is loaded.
func NewContainer(ctx context.Context, cfg config.Config, opts ...Option) (*Container, error) {
	c := &Container{
		config: cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.itemStore == nil {
		s, err := openStore(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		c.store = s
		c.itemStore = s
	}

	cacheService, err := cache.New(cfg.Cache)
	if err != nil {
		c.closeStore()
		return nil, err
	}
	c.cacheService = cacheService
	c.keySerializer = cache.NewKeySerializer(cfg.Cache.KeyPrefix, cfg.Cache.Name)

	c.metrics = metrics.New()
	c.metrics.RegisterCacheEntries(cfg.Cache.Driver, func() float64 {
		return float64(cacheService.Stats().Entries)
	})

	c.resolver = comparison.New(c.itemStore,
		comparison.WithCache(cacheService),
		comparison.WithRecorder(c.metrics),
	)

	serverOpts := []api.Option{
		api.WithLogger(c.logger),
		api.WithObserver(c.metrics),
	}
	if c.store != nil {
		serverOpts = append(serverOpts, api.WithHealthCheck("database", c.store))
	}
	if pinger, ok := cacheService.(api.HealthChecker); ok {
		serverOpts = append(serverOpts, api.WithHealthCheck("cache", pinger))
	}
	c.server = api.New(api.Config{
		Addr:            cfg.HTTP.Addr,
		BasePath:        cfg.HTTP.BasePath,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, c.resolver, serverOpts...)

	return c, nil
}

// NewContainerWithDefaults creates a container from config.Default.
func NewContainerWithDefaults(ctx context.Context, opts ...Option) (*Container, error) {
	return NewContainer(ctx, config.Default(), opts...)
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (*store.Store, error) {
	db, err := store.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := store.CreateSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if cfg.SeedFile != "" {
		items, err := store.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := store.Seed(ctx, db, items); err != nil {
			_ = db.Close()
			return nil, err
		}
		slog.Default().Info("seeded products", "count", len(items), "file", cfg.SeedFile)
	}

	return store.New(db), nil
}

// Config returns the configuration used by this container.
func (c *Container) Config() config.Config {
	return c.config
}

// CacheService returns the singleton cache service instance.
func (c *Container) CacheService() cache.Service {
	return c.cacheService
}

// KeySerializer returns the key serializer matching the cache configuration.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Store returns the database store, or nil when WithItemStore was used.
func (c *Container) Store() *store.Store {
	return c.store
}

// Metrics returns the collectors shared by the resolver and the HTTP server.
func (c *Container) Metrics() *metrics.Metrics {
	return c.metrics
}

// Resolver returns the comparison resolver wired to the store and cache.
func (c *Container) Resolver() *comparison.Resolver {
	return c.resolver
}

// Server returns the HTTP server; call ListenAndServe to start it.
func (c *Container) Server() *api.Server {
	return c.server
}

// Close releases the cache and the database.
func (c *Container) Close() error {
	var errs []error
	if c.cacheService != nil {
		if err := c.cacheService.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.closeStore(); err != nil {
		errs = append(errs, err)
	}
	return goerrors.Join(errs...)
}

func (c *Container) closeStore() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
