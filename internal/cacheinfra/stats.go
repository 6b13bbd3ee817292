package cacheinfra

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-product-compare/catalog"
	"github.com/puzpuzpuz/xsync/v3"
)

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Driver  string `json:"driver"`
	Hits    int64  `json:"hits"`
	Misses  int64  `json:"misses"`
	Writes  int64  `json:"writes"`
	Errors  int64  `json:"errors"`
	Entries int    `json:"entries"`
}

// HitRatio returns hits over lookups, or zero before any lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type counters struct {
	hits   *xsync.Counter
	misses *xsync.Counter
	writes *xsync.Counter
	errors *xsync.Counter
}

func newCounters() *counters {
	return &counters{
		hits:   xsync.NewCounter(),
		misses: xsync.NewCounter(),
		writes: xsync.NewCounter(),
		errors: xsync.NewCounter(),
	}
}

func (c *counters) lookup(hit bool) {
	if hit {
		c.hits.Inc()
		return
	}
	c.misses.Inc()
}

func (c *counters) wrote()  { c.writes.Inc() }
func (c *counters) failed() { c.errors.Inc() }

func (c *counters) snapshot(driver string, entries int) Stats {
	return Stats{
		Driver:  driver,
		Hits:    c.hits.Value(),
		Misses:  c.misses.Value(),
		Writes:  c.writes.Value(),
		Errors:  c.errors.Value(),
		Entries: entries,
	}
}

// checkKey rejects writes that would store an item under someone else's id.
func checkKey(id int64, item catalog.Item) error {
	if item.ID == id {
		return nil
	}
	return goerrors.New(
		fmt.Sprintf("cache key %d does not match item id %d", id, item.ID),
		goerrors.CategoryInternal,
	).WithTextCode("CACHE_KEY_MISMATCH")
}
