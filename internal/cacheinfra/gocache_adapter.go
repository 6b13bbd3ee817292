package cacheinfra

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-product-compare/catalog"
	gocache "github.com/patrickmn/go-cache"
)

// GoCache keeps items in a single expiring map. Expired entries are swept by a
// janitor goroutine that Close stops. Items are cloned on Put and Get.
type GoCache struct {
	store *gocache.Cache
	key   KeyFunc
	stats *counters

	stop     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewGoCache creates an item cache backed by patrickmn/go-cache. A cleanup
// interval of zero or less disables the janitor.
func NewGoCache(ttl, cleanup time.Duration, key KeyFunc) *GoCache {
	g := &GoCache{
		// the built-in janitor is only stopped by a finalizer, so run our own
		store:   gocache.New(ttl, 0),
		key:     key,
		stats:   newCounters(),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	if cleanup > 0 {
		go g.janitor(cleanup)
	} else {
		close(g.stopped)
	}
	return g
}

func (g *GoCache) janitor(interval time.Duration) {
	defer close(g.stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.store.DeleteExpired()
		case <-g.stop:
			return
		}
	}
}

func (g *GoCache) Get(ctx context.Context, id int64) (catalog.Item, bool, error) {
	raw, ok := g.store.Get(g.key(id))
	if !ok {
		g.stats.lookup(false)
		return catalog.Item{}, false, nil
	}
	item, ok := raw.(catalog.Item)
	g.stats.lookup(ok)
	if !ok {
		return catalog.Item{}, false, nil
	}
	return item.Clone(), true, nil
}

func (g *GoCache) Put(ctx context.Context, id int64, item catalog.Item) error {
	if err := checkKey(id, item); err != nil {
		g.stats.failed()
		return err
	}
	g.store.SetDefault(g.key(id), item.Clone())
	g.stats.wrote()
	return nil
}

func (g *GoCache) Delete(ctx context.Context, id int64) error {
	g.store.Delete(g.key(id))
	return nil
}

func (g *GoCache) Stats() Stats {
	return g.stats.snapshot(DriverGoCache, g.store.ItemCount())
}

// Close stops the janitor and drops every entry. It is safe to call more than once.
func (g *GoCache) Close() error {
	g.stopOnce.Do(func() {
		close(g.stop)
	})
	<-g.stopped
	g.store.Flush()
	return nil
}
