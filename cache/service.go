package cache

import (
	"context"

	"github.com/goliatone/go-product-compare/catalog"
	"github.com/goliatone/go-product-compare/internal/cacheinfra"
)

// ItemCache is the per-key store the comparison resolver reads through.
// Implementations must be safe for concurrent use; no multi-key transaction is assumed.
type ItemCache interface {
	// Get returns the cached item for id. A miss is reported as (zero, false, nil);
	// a non-nil error means the backend could not be consulted.
	Get(ctx context.Context, id int64) (catalog.Item, bool, error)
	// Put stores item under id. Callers treat failures as best-effort.
	Put(ctx context.Context, id int64, item catalog.Item) error
}

// Stats is a point-in-time snapshot of cache activity.
type Stats = cacheinfra.Stats

// Service is the full cache surface exposed to the application wiring.
type Service interface {
	ItemCache
	Delete(ctx context.Context, id int64) error
	Stats() Stats
	Close() error
}

var _ Service = (*cacheinfra.SturdycCache)(nil)
var _ Service = (*cacheinfra.RedisCache)(nil)
var _ Service = (*cacheinfra.GoCache)(nil)
var _ Service = noopCache{}
