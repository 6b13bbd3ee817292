package cache

import (
	"context"

	"github.com/goliatone/go-product-compare/catalog"
)

// Noop returns a cache that never holds anything. It is the collaborator used when
// caching is disabled, so every lookup is a miss and every write is discarded.
func Noop() Service {
	return noopCache{}
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, id int64) (catalog.Item, bool, error) {
	return catalog.Item{}, false, nil
}

func (noopCache) Put(ctx context.Context, id int64, item catalog.Item) error {
	return nil
}

func (noopCache) Delete(ctx context.Context, id int64) error {
	return nil
}

func (noopCache) Stats() Stats {
	return Stats{Driver: DriverNone}
}

func (noopCache) Close() error {
	return nil
}
