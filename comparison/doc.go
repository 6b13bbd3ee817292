// Package comparison resolves a batch of catalog items for side by side comparison.
//
// # Overview
//
// Resolver takes the caller's ids, reduces them to their distinct values in
// first-occurrence order, and serves as many as it can from an ItemCache before
// loading the remainder from an ItemStore in a single batch call. Items loaded
// from the store are written back to the cache under their own ids.
//
// The result always has one item per distinct id, in first-occurrence order. If
// any id cannot be found the whole call fails with a NotFound error listing every
// missing id; partial results are never returned.
//
// # Basic Usage
//
//	resolver := comparison.New(store,
//		comparison.WithCache(itemCache),
//		comparison.WithRecorder(metrics),
//	)
//
//	items, err := resolver.Resolve(ctx, []int64{2, 1, 2}, nil)
//	switch {
//	case comparison.IsInvalidRequest(err):
//		// empty id list
//	case comparison.IsNotFound(err):
//		missing, _ := comparison.MissingIDs(err)
//		_ = missing
//	case err != nil:
//		// store or cache fault, propagated unchanged
//	}
//
// # Caching
//
// A Resolver built without WithCache uses cache.Noop, so every id is a miss and
// the store receives all distinct ids. Cache reads that fail are returned to the
// caller. Cache writes are best-effort: failures are logged and counted but the
// already resolved result is still returned.
//
// # Field Selection
//
// Resolve accepts the requested catalog.FieldSet for logging only. Items are
// always returned whole; projection belongs to catalog.Project.
package comparison
