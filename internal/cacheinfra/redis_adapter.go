package cacheinfra

import (
	"context"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-product-compare/catalog"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores encoded items in Redis with a fixed TTL.
type RedisCache struct {
	client redis.UniversalClient
	codec  Codec
	ttl    time.Duration
	key    KeyFunc
	stats  *counters
}

// NewRedisCache creates an item cache on top of an existing Redis client.
// The cache owns the client and closes it on Close.
func NewRedisCache(client redis.UniversalClient, codec Codec, ttl time.Duration, key KeyFunc) *RedisCache {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &RedisCache{
		client: client,
		codec:  codec,
		ttl:    ttl,
		key:    key,
		stats:  newCounters(),
	}
}

// Get reads and decodes the entry for id. An undecodable entry is treated as a miss
// and dropped so the next write replaces it.
func (r *RedisCache) Get(ctx context.Context, id int64) (catalog.Item, bool, error) {
	key := r.key(id)
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.stats.lookup(false)
		return catalog.Item{}, false, nil
	}
	if err != nil {
		r.stats.failed()
		return catalog.Item{}, false, goerrors.Wrap(err, goerrors.CategoryExternal, "cache read failed").
			WithTextCode("CACHE_UNAVAILABLE").
			WithMetadata(map[string]any{"key": key})
	}

	item, err := r.codec.Decode(data)
	if err != nil || item.ID != id {
		r.stats.lookup(false)
		r.client.Del(ctx, key)
		return catalog.Item{}, false, nil
	}

	r.stats.lookup(true)
	return item, true, nil
}

func (r *RedisCache) Put(ctx context.Context, id int64, item catalog.Item) error {
	if err := checkKey(id, item); err != nil {
		r.stats.failed()
		return err
	}

	data, err := r.codec.Encode(item)
	if err != nil {
		r.stats.failed()
		return goerrors.Wrap(err, goerrors.CategoryInternal, "cache encode failed")
	}

	key := r.key(id)
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.stats.failed()
		return goerrors.Wrap(err, goerrors.CategoryExternal, "cache write failed").
			WithTextCode("CACHE_UNAVAILABLE").
			WithMetadata(map[string]any{"key": key})
	}

	r.stats.wrote()
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, id int64) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "cache delete failed")
	}
	return nil
}

// Stats reports counters only; Entries is not tracked for a shared remote store.
func (r *RedisCache) Stats() Stats {
	return r.stats.snapshot(DriverRedis, 0)
}

// Ping checks connectivity to the Redis server.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
