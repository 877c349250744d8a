package differ

import (
	"sync"

	"github.com/cirrusops/contentdiff/internal/models"
)

// DefaultDiffCacheEntries bounds the cache when no capacity is given.
const DefaultDiffCacheEntries = 128

type diffCacheKey struct {
	oldHash string
	newHash string
}

// DiffCache memoizes diff results by the pair of input content hashes. It is
// owned by whoever builds the ContentDiffer and attached explicitly via
// WithCache; the differ never creates one on its own. Cached results are
// shared between callers and must be treated as immutable.
type DiffCache struct {
	mu         sync.Mutex
	entries    map[diffCacheKey]*models.DiffResult
	maxEntries int
}

// NewDiffCache creates a cache bounded to maxEntries results. Non-positive
// capacities fall back to DefaultDiffCacheEntries.
func NewDiffCache(maxEntries int) *DiffCache {
	if maxEntries <= 0 {
		maxEntries = DefaultDiffCacheEntries
	}
	return &DiffCache{
		entries:    make(map[diffCacheKey]*models.DiffResult),
		maxEntries: maxEntries,
	}
}

// Get returns the cached result for a hash pair, if present.
func (c *DiffCache) Get(oldHash, newHash string) (*models.DiffResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.entries[diffCacheKey{oldHash: oldHash, newHash: newHash}]
	return result, ok
}

// Put stores a result for a hash pair. When the cache is full an arbitrary
// entry is evicted; recomputing a diff is cheap at this scale, so precise
// recency tracking is not worth the bookkeeping.
func (c *DiffCache) Put(oldHash, newHash string, result *models.DiffResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		for key := range c.entries {
			delete(c.entries, key)
			break
		}
	}
	c.entries[diffCacheKey{oldHash: oldHash, newHash: newHash}] = result
}

// Len returns the number of cached results.
func (c *DiffCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
