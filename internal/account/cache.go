package account

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/plushka/stitchfarm/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedProfileEntry wraps a profile with version metadata for cache invalidation
type cachedProfileEntry struct {
	Version  string          `json:"version"`
	Profile  *domain.Profile `json:"profile"`
	CachedAt time.Time       `json:"cached_at"`
}

// profileCache provides an in-memory LRU cache for profile lookups with
// time-based expiration. Balances change constantly, so every balance
// mutation path invalidates through the service.
type profileCache struct {
	lru *expirable.LRU[string, *cachedProfileEntry]
}

func newProfileCache(size int, ttl time.Duration) *profileCache {
	return &profileCache{
		lru: expirable.NewLRU[string, *cachedProfileEntry](size, nil, ttl),
	}
}

// Get retrieves a profile from the cache.
// Returns (nil, false) if not cached, expired, or version mismatched.
func (c *profileCache) Get(userID string) (*domain.Profile, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}
	return entry.Profile, true
}

// Set stores a profile in the cache with the current schema version.
func (c *profileCache) Set(userID string, profile *domain.Profile) {
	c.lru.Add(userID, &cachedProfileEntry{
		Version:  CacheSchemaVersion,
		Profile:  profile,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a profile from the cache.
func (c *profileCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

// Clear removes all entries from the cache.
func (c *profileCache) Clear() {
	c.lru.Purge()
}
