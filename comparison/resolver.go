package comparison

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-product-compare/cache"
	"github.com/goliatone/go-product-compare/catalog"
	slogcontext "github.com/veqryn/slog-context"
)

// ItemStore is the authoritative batch lookup. Unknown ids are omitted from the
// result rather than reported as errors, and the order of the result is not meaningful.
type ItemStore interface {
	FindByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error)
}

// ItemStoreFunc adapts a function to ItemStore.
type ItemStoreFunc func(ctx context.Context, ids []int64) ([]catalog.Item, error)

func (f ItemStoreFunc) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	return f(ctx, ids)
}

// Resolver retrieves items for comparison through a read-through cache.
// A Resolver holds no per-call state and is safe for concurrent use.
type Resolver struct {
	store    ItemStore
	cache    cache.ItemCache
	recorder Recorder
	now      func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache sets the cache consulted before the store. A nil cache, including a
// typed nil pointer, disables caching.
func WithCache(c cache.ItemCache) Option {
	return func(r *Resolver) {
		if isNil(c) {
			r.cache = cache.Noop()
			return
		}
		r.cache = c
	}
}

// WithRecorder sets the destination for resolver measurements. Nil is ignored.
func WithRecorder(rec Recorder) Option {
	return func(r *Resolver) {
		if !isNil(rec) {
			r.recorder = rec
		}
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// New creates a Resolver over store. Without WithCache every lookup goes to the store.
func New(store ItemStore, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		cache:    cache.Noop(),
		recorder: noopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns one item per distinct id in first-occurrence order.
// fields is only logged; the returned items are never truncated.
func (r *Resolver) Resolve(ctx context.Context, ids []int64, fields catalog.FieldSet) ([]catalog.Item, error) {
	start := r.now()
	logger := slogcontext.FromCtx(ctx)

	items, err := r.resolve(ctx, logger, ids, fields)
	r.recorder.Resolved(outcomeOf(err), r.now().Sub(start))
	return items, err
}

func (r *Resolver) resolve(ctx context.Context, logger *slog.Logger, ids []int64, fields catalog.FieldSet) ([]catalog.Item, error) {
	if len(ids) == 0 {
		return nil, NewInvalidRequestError("At least one product ID is required")
	}

	logger.Info("resolving comparison", "ids", ids, "fields", fields.Strings())

	canonical := catalog.Distinct(ids)

	found, misses, err := r.probe(ctx, canonical)
	if err != nil {
		return nil, err
	}
	logger.Debug("cache probe finished", "hits", len(found), "misses", len(misses))

	if len(misses) > 0 {
		loaded, err := r.load(ctx, misses)
		if err != nil {
			return nil, err
		}

		if missing := notFound(misses, loaded); len(missing) > 0 {
			logger.Warn("products not found", "missing_ids", missing)
			return nil, NewNotFoundError(missing)
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, item := range loaded {
			found[item.ID] = item
			if err := r.cache.Put(ctx, item.ID, item); err != nil {
				r.recorder.CacheWriteFailed()
				logger.Warn("cache write failed", "id", item.ID, "error", err)
			}
		}
	}

	return reassemble(canonical, found)
}

func (r *Resolver) probe(ctx context.Context, ids []int64) (map[int64]catalog.Item, []int64, error) {
	found := make(map[int64]catalog.Item, len(ids))
	var misses []int64

	for _, id := range ids {
		item, ok, err := r.cache.Get(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			found[id] = item
			continue
		}
		misses = append(misses, id)
	}

	r.recorder.CacheProbed(len(found), len(misses))
	return found, misses, nil
}

func (r *Resolver) load(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	start := r.now()
	items, err := r.store.FindByIDs(ctx, ids)
	r.recorder.StoreLoaded(len(ids), r.now().Sub(start), err)
	return items, err
}

// notFound returns the requested ids absent from loaded, in request order.
func notFound(requested []int64, loaded []catalog.Item) []int64 {
	present := make(map[int64]struct{}, len(loaded))
	for _, item := range loaded {
		present[item.ID] = struct{}{}
	}

	var missing []int64
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func reassemble(ids []int64, found map[int64]catalog.Item) ([]catalog.Item, error) {
	out := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		item, ok := found[id]
		if !ok {
			return nil, newInvariantError(id)
		}
		out = append(out, item)
	}
	return out, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case IsInvalidRequest(err):
		return OutcomeInvalidRequest
	case goerrors.IsNotFound(err):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
