package suggest

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bastiangx/citycomplete/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// Cache keeps the most recent remote dataset for a TTL. It holds a single
// slot: the remote source is expected to return its whole corpus or a broad
// superset, so one fetch is filtered locally for later queries.
//
// Cache is safe for concurrent use and may be shared by several fetchers.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.RWMutex
	index     *dictionary.Index
	timestamp time.Time

	hits   atomic.Int64
	misses atomic.Int64
	writes atomic.Int64
}

// NewCache creates an empty cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultOptions().CacheTTL
	}
	return &Cache{ttl: ttl, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Now returns the cache's notion of the current time.
func (c *Cache) Now() time.Time {
	return c.now()
}

// TTL returns the entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get filters the cached dataset against query. It misses when nothing is
// cached or the entry is at least TTL old.
func (c *Cache) Get(query string, limit int) (CandidateList, bool) {
	c.mu.RLock()
	index, ts := c.index, c.timestamp
	c.mu.RUnlock()

	if index == nil || c.now().Sub(ts) >= c.ttl {
		c.misses.Add(1)
		return CandidateList{}, false
	}

	c.hits.Add(1)
	return CandidateList{
		Query:     query,
		Items:     index.Search(query, limit),
		FetchedAt: ts,
		Source:    OriginCache,
	}, true
}

// Put stores entries fetched at ts. A write older than the current entry is
// dropped, so concurrent fetches settle on the newest dataset.
func (c *Cache) Put(entries []dictionary.Entry, ts time.Time) bool {
	return c.putIndex(dictionary.NewIndex(entries), ts)
}

func (c *Cache) putIndex(index *dictionary.Index, ts time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index != nil && ts.Before(c.timestamp) {
		log.Debugf("Dropping cache write from %s, holding %s", ts.Format(time.RFC3339Nano), c.timestamp.Format(time.RFC3339Nano))
		return false
	}
	c.index = index
	c.timestamp = ts
	c.writes.Add(1)
	return true
}

// Invalidate drops the cached dataset.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.index = nil
	c.timestamp = time.Time{}
	c.mu.Unlock()
}

// Stats returns counters in the same shape the rest of the tooling prints.
func (c *Cache) Stats() map[string]int {
	c.mu.RLock()
	size := 0
	if c.index != nil {
		size = c.index.Len()
	}
	c.mu.RUnlock()

	return map[string]int{
		"cacheEntries": size,
		"cacheHits":    int(c.hits.Load()),
		"cacheMisses":  int(c.misses.Load()),
		"cacheWrites":  int(c.writes.Load()),
	}
}
