package di

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/goliatone/go-product-compare/cache"
	"github.com/goliatone/go-product-compare/config"
	"github.com/goliatone/go-product-compare/pkg/testsupport"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.HTTP.Addr = ":0"
	cfg.Database.DSN = ":memory:"
	cfg.Database.SeedFile = testsupport.FixturePath("products.json")
	return cfg
}

func TestNewContainer(t *testing.T) {
	ctx := context.Background()
	container, err := NewContainer(ctx, testConfig())
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}
	defer container.Close()

	if container.CacheService() == nil {
		t.Error("Container should have a non-nil cache service")
	}
	if container.KeySerializer() == nil {
		t.Error("Container should have a non-nil key serializer")
	}
	if container.Store() == nil {
		t.Error("Container should open a database store")
	}
	if container.Resolver() == nil || container.Server() == nil || container.Metrics() == nil {
		t.Error("Container should wire resolver, server and metrics")
	}

	if got := container.KeySerializer().SerializeKey(1); got != "products_product::1" {
		t.Errorf("Expected key products_product::1, got %s", got)
	}
	if container.Config().Cache.TTL != time.Hour {
		t.Errorf("Expected TTL 1h, got %v", container.Config().Cache.TTL)
	}

	items, err := container.Resolver().Resolve(ctx, []int64{2, 1}, nil)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if len(items) != 2 || items[0].ID != 2 || items[1].ID != 1 {
		t.Errorf("Expected items [2 1], got %+v", items)
	}
}

func TestNewContainer_WithItemStore(t *testing.T) {
	store := testsupport.NewItemStore(testsupport.LoadItems(t, testsupport.FixturePath("products.json"))...)
	cfg := testConfig()
	cfg.Database.DSN = "unused"

	container, err := NewContainer(context.Background(), cfg, WithItemStore(store))
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}
	defer container.Close()

	if container.Store() != nil {
		t.Error("Expected no database store when an item store is injected")
	}

	items, err := container.Resolver().Resolve(context.Background(), []int64{3, 1, 2}, nil)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if len(items) != 3 || items[0].ID != 3 || items[1].ID != 1 || items[2].ID != 2 {
		t.Errorf("Expected request order [3 1 2] despite reversed store output, got %+v", items)
	}
	if store.CallCount() != 1 {
		t.Errorf("Expected injected store to be used, got %d calls", store.CallCount())
	}
}

func TestNewContainer_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Cache.Driver = cache.DriverRedis
	cfg.Cache.Redis.Addr = mr.Addr()

	container, err := NewContainer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}
	defer container.Close()

	if _, err := container.Resolver().Resolve(context.Background(), []int64{3}, nil); err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if !mr.Exists("products_product::3") {
		t.Errorf("Expected resolved item in redis, keys: %v", mr.Keys())
	}
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "bad cache driver", mutate: func(c *config.Config) { c.Cache.Driver = "memcached" }},
		{name: "bad database driver", mutate: func(c *config.Config) { c.Database.Driver = "oracle" }},
		{name: "missing seed file", mutate: func(c *config.Config) { c.Database.SeedFile = "testdata/nope.json" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			container, err := NewContainer(context.Background(), cfg)
			if err == nil {
				container.Close()
				t.Fatal("NewContainer() should fail with invalid configuration")
			}
		})
	}
}

func TestContainer_Close(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}

	if err := container.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if err := container.Store().Ping(context.Background()); err == nil {
		t.Error("Expected closed database to fail ping")
	}
}
