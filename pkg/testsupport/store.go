package testsupport

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-product-compare/catalog"
)

// ItemStore is an in-memory batch store that records every call.
// Unknown ids are omitted and the result comes back in reverse request order, so
// callers cannot rely on the store to order items for them.
type ItemStore struct {
	mu      sync.Mutex
	items   map[int64]catalog.Item
	calls   [][]int64
	err     error
	latency time.Duration
}

// NewItemStore creates a store holding items.
func NewItemStore(items ...catalog.Item) *ItemStore {
	s := &ItemStore{items: make(map[int64]catalog.Item, len(items))}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

// WithLatency delays every lookup, honouring context cancellation.
func (s *ItemStore) WithLatency(d time.Duration) *ItemStore {
	s.latency = d
	return s
}

// FailWith makes every subsequent lookup return err.
func (s *ItemStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// FindByIDs records ids and returns the known items after the configured latency.
func (s *ItemStore) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	s.mu.Lock()
	s.calls = append(s.calls, append([]int64(nil), ids...))
	err := s.err
	s.mu.Unlock()

	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Item, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if item, ok := s.items[ids[i]]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// Calls returns a copy of the id lists passed to FindByIDs.
func (s *ItemStore) Calls() [][]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]int64(nil), s.calls...)
}

// CallCount returns the number of FindByIDs calls.
func (s *ItemStore) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
