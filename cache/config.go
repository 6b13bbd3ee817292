package cache

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-product-compare/internal/cacheinfra"
	"github.com/redis/go-redis/v9"
)

// Supported cache drivers.
const (
	DriverMemory  = cacheinfra.DriverMemory
	DriverRedis   = cacheinfra.DriverRedis
	DriverGoCache = cacheinfra.DriverGoCache
	DriverNone    = cacheinfra.DriverNone
)

// Defaults applied by DefaultConfig.
const (
	DefaultKeyPrefix = "products_"
	DefaultTTL       = time.Hour
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	Driver    string        `yaml:"driver"`
	TTL       time.Duration `yaml:"ttl"`
	KeyPrefix string        `yaml:"key_prefix"`
	Name      string        `yaml:"name"`
	Memory    MemoryConfig  `yaml:"memory"`
	Redis     RedisConfig   `yaml:"redis"`
	GoCache   GoCacheConfig `yaml:"gocache"`
}

// MemoryConfig mirrors the sturdyc sizing options.
type MemoryConfig struct {
	Capacity           int           `yaml:"capacity"`
	NumShards          int           `yaml:"num_shards"`
	EvictionPercentage int           `yaml:"eviction_percentage"`
	EvictionInterval   time.Duration `yaml:"eviction_interval"`
}

// RedisConfig holds the remote cache connection options.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Codec    string `yaml:"codec"`
}

// GoCacheConfig holds the local expiring map options.
type GoCacheConfig struct {
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	mem := cacheinfra.DefaultMemoryConfig()
	return Config{
		Driver:    DriverMemory,
		TTL:       DefaultTTL,
		KeyPrefix: DefaultKeyPrefix,
		Name:      DefaultCacheName,
		Memory: MemoryConfig{
			Capacity:           mem.Capacity,
			NumShards:          mem.NumShards,
			EvictionPercentage: mem.EvictionPercentage,
			EvictionInterval:   mem.EvictionInterval,
		},
		Redis: RedisConfig{
			Addr:  "localhost:6379",
			Codec: cacheinfra.CodecJSON,
		},
		GoCache: GoCacheConfig{
			CleanupInterval: 10 * time.Minute,
		},
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverMemory, DriverRedis, DriverGoCache, DriverNone)),
		validation.Field(&c.TTL, validation.When(c.Driver != DriverNone, validation.Required, validation.Min(time.Second))),
		validation.Field(&c.Memory, validation.When(c.Driver == DriverMemory, validation.By(func(any) error {
			return c.memoryConfig().Validate()
		}))),
		validation.Field(&c.Redis, validation.When(c.Driver == DriverRedis, validation.By(func(any) error {
			return validation.ValidateStruct(&c.Redis,
				validation.Field(&c.Redis.Addr, validation.Required),
				validation.Field(&c.Redis.DB, validation.Min(0)),
				validation.Field(&c.Redis.Codec, validation.In(cacheinfra.CodecJSON, cacheinfra.CodecMsgpack)),
			)
		}))),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "invalid cache configuration")
	}
	return nil
}

// New constructs the cache service selected by cfg.Driver.
func New(cfg Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	keys := NewKeySerializer(cfg.KeyPrefix, cfg.Name)

	switch cfg.Driver {
	case DriverNone:
		return Noop(), nil
	case DriverMemory:
		svc, err := cacheinfra.NewSturdycCache(cfg.memoryConfig(), keys.SerializeKey)
		if err != nil {
			return nil, err
		}
		return svc, nil
	case DriverGoCache:
		return cacheinfra.NewGoCache(cfg.TTL, cfg.GoCache.CleanupInterval, keys.SerializeKey), nil
	case DriverRedis:
		codec, err := cacheinfra.CodecByName(cfg.Redis.Codec)
		if err != nil {
			return nil, err
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return cacheinfra.NewRedisCache(client, codec, cfg.TTL, keys.SerializeKey), nil
	default:
		return nil, goerrors.New(fmt.Sprintf("unsupported cache driver %q", cfg.Driver), goerrors.CategoryValidation)
	}
}

func (c Config) memoryConfig() cacheinfra.MemoryConfig {
	return cacheinfra.MemoryConfig{
		Capacity:           c.Memory.Capacity,
		NumShards:          c.Memory.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.Memory.EvictionPercentage,
		EvictionInterval:   c.Memory.EvictionInterval,
	}
}
