// Package cache provides the item cache used by the comparison resolver.
//
// # Overview
//
// This package exports two main interfaces and their default implementations:
//
//   - ItemCache: per-key Get/Put of catalog items, the surface the resolver reads through
//   - KeySerializer: builds stable cache keys from item ids
//
// Service extends ItemCache with Delete, Stats and Close for the application wiring.
//
// # Drivers
//
// New selects an implementation from Config.Driver:
//
//   - memory: an in-process sharded sturdyc client
//   - gocache: a single expiring map with a cleanup janitor
//   - redis: a shared Redis instance; values are JSON or msgpack encoded
//   - none: Noop, every lookup misses and every write is discarded
//
// All drivers apply the same TTL, and none of them caches "absent" results: an id
// that does not exist in the store is never remembered.
//
// # Basic Usage
//
//	svc, err := cache.New(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	resolver := comparison.New(store, comparison.WithCache(svc))
//
// # Key Format
//
// Keys are rendered as <prefix><name>::<id>. With the default configuration the
// item with id 42 is stored under products_product::42. Keys are stable across
// processes, so several instances can share one Redis database.
//
// # Error Handling
//
// A read that cannot reach the backend returns an error. Writes are best-effort
// from the resolver's point of view: a failed Put is logged and otherwise ignored.
// Every adapter refuses to store an item under an id other than its own.
package cache
