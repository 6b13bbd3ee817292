package cacheinfra

import (
	"context"
	"time"

	"github.com/goliatone/go-product-compare/catalog"
	"github.com/viccon/sturdyc"
)

// Cache driver names understood by the adapters in this package.
const (
	DriverMemory  = "memory"
	DriverRedis   = "redis"
	DriverGoCache = "gocache"
	DriverNone    = "none"
)

// KeyFunc renders the storage key for an item id.
type KeyFunc func(id int64) string

// MemoryConfig holds the configuration for the sturdyc cache adapter.
type MemoryConfig struct {
	// Capacity defines the maximum number of entries that the cache can store.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Must be greater than 0. Default: 256
	NumShards int

	// TTL is the time-to-live for cached entries.
	// Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the cache reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often the cache checks for expired entries.
	// Zero value uses the default interval.
	EvictionInterval time.Duration
}

// DefaultMemoryConfig returns a MemoryConfig with sensible defaults.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Capacity:           10000,
		NumShards:          256,
		TTL:                time.Hour,
		EvictionPercentage: 10,
	}
}

// ToSturdycOptions converts the config to sturdyc options.
// Capacity, NumShards, TTL, and EvictionPercentage are constructor arguments.
func (c MemoryConfig) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option
	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}
	return options
}

// Validate checks if the configuration values are valid.
func (c MemoryConfig) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	if c.EvictionInterval < 0 {
		return &ConfigError{Field: "EvictionInterval", Message: "must be non-negative"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// SturdycCache keeps items in an in-process sharded sturdyc client.
// Items are cloned on the way in and out so callers never share a cached map.
type SturdycCache struct {
	client *sturdyc.Client[catalog.Item]
	key    KeyFunc
	stats  *counters
}

// NewSturdycCache creates an in-process item cache.
func NewSturdycCache(cfg MemoryConfig, key KeyFunc) (*SturdycCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[catalog.Item](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &SturdycCache{client: client, key: key, stats: newCounters()}, nil
}

func (s *SturdycCache) Get(ctx context.Context, id int64) (catalog.Item, bool, error) {
	item, ok := s.client.Get(s.key(id))
	s.stats.lookup(ok)
	if !ok {
		return catalog.Item{}, false, nil
	}
	return item.Clone(), true, nil
}

func (s *SturdycCache) Put(ctx context.Context, id int64, item catalog.Item) error {
	if err := checkKey(id, item); err != nil {
		s.stats.failed()
		return err
	}
	s.client.Set(s.key(id), item.Clone())
	s.stats.wrote()
	return nil
}

func (s *SturdycCache) Delete(ctx context.Context, id int64) error {
	s.client.Delete(s.key(id))
	return nil
}

func (s *SturdycCache) Stats() Stats {
	return s.stats.snapshot(DriverMemory, s.client.Size())
}

func (s *SturdycCache) Close() error {
	return nil
}
