package recurrence

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"
	"time"
)

// cacheEntry represents one cached expansion result.
type cacheEntry struct {
	dates      []time.Time
	expiresAt  time.Time
	accessedAt time.Time
}

// ExpansionCache caches rule expansion results. Entries expire after a TTL
// and the least recently accessed entries are evicted when the cache grows
// past its size limit.
type ExpansionCache struct {
	entries         map[string]*cacheEntry
	mutex           sync.RWMutex
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
}

// CacheConfig holds configuration for the expansion cache.
type CacheConfig struct {
	TTL             time.Duration // How long entries stay valid
	MaxEntries      int           // Maximum number of entries before cleanup
	CleanupInterval time.Duration // How often to run cleanup
}

// DefaultCacheConfig provides sensible defaults for expansion caching.
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      1000,
	CleanupInterval: 5 * time.Minute,
}

// NewExpansionCache creates a cache with the given configuration and starts
// its cleanup goroutine. Call Close to stop it.
func NewExpansionCache(config CacheConfig) *ExpansionCache {
	cache := &ExpansionCache{
		entries:         make(map[string]*cacheEntry),
		ttl:             config.TTL,
		maxEntries:      config.MaxEntries,
		cleanupInterval: config.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	go cache.cleanupLoop()

	return cache
}

// cacheKey hashes every field of the rule that influences expansion.
func cacheKey(rule Rule) string {
	hasher := sha256.New()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(rule.Kind))
	hasher.Write(buf[:])
	binary.BigEndian.PutUint64(buf[:], uint64(rule.MonthlyMode))
	hasher.Write(buf[:])

	hasher.Write([]byte(rule.StartDate.Format(time.RFC3339)))
	hasher.Write([]byte(rule.EndDate.Format(time.RFC3339)))

	// Weekday order is irrelevant to expansion, so normalize it out of the
	// key by hashing membership rather than the slice.
	var mask uint64
	for _, wd := range rule.Weekdays {
		mask |= 1 << uint(wd)
	}
	binary.BigEndian.PutUint64(buf[:], mask)
	hasher.Write(buf[:])

	return fmt.Sprintf("%x", hasher.Sum(nil))
}

// Get retrieves a cached expansion if it exists and hasn't expired. The
// returned slice is a copy; the cached one is never handed out.
func (c *ExpansionCache) Get(rule Rule) ([]time.Time, bool) {
	key := cacheKey(rule)

	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	now := time.Now()
	if now.After(entry.expiresAt) {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return nil, false
	}

	c.mutex.Lock()
	entry.accessedAt = now
	dates := make([]time.Time, len(entry.dates))
	copy(dates, entry.dates)
	c.mutex.Unlock()

	return dates, true
}

// Set stores an expansion result in the cache.
func (c *ExpansionCache) Set(rule Rule, dates []time.Time) {
	key := cacheKey(rule)
	now := time.Now()

	stored := make([]time.Time, len(dates))
	copy(stored, dates)

	entry := &cacheEntry{
		dates:      stored,
		expiresAt:  now.Add(c.ttl),
		accessedAt: now,
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = entry

	if len(c.entries) > c.maxEntries {
		c.cleanup()
	}
}

// cleanup removes expired entries and oldest entries if over limit. Callers
// must hold the write lock.
func (c *ExpansionCache) cleanup() {
	now := time.Now()

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) > c.maxEntries {
		type keyAccess struct {
			key        string
			accessedAt time.Time
		}

		var keyAccessList []keyAccess
		for key, entry := range c.entries {
			keyAccessList = append(keyAccessList, keyAccess{
				key:        key,
				accessedAt: entry.accessedAt,
			})
		}

		// Sort by access time, oldest first.
		for i := 0; i < len(keyAccessList)-1; i++ {
			for j := i + 1; j < len(keyAccessList); j++ {
				if keyAccessList[i].accessedAt.After(keyAccessList[j].accessedAt) {
					keyAccessList[i], keyAccessList[j] = keyAccessList[j], keyAccessList[i]
				}
			}
		}

		entriesToRemove := len(c.entries) - c.maxEntries
		for i := 0; i < entriesToRemove && i < len(keyAccessList); i++ {
			delete(c.entries, keyAccessList[i].key)
		}
	}
}

// cleanupLoop runs periodic cleanup until Close is called.
func (c *ExpansionCache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.cleanup()
			c.mutex.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine and clears the cache.
func (c *ExpansionCache) Close() {
	close(c.stopCleanup)
	c.mutex.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mutex.Unlock()
}

// Stats returns cache statistics.
func (c *ExpansionCache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entryCount := len(c.entries)
	expiredCount := 0
	now := time.Now()

	for _, entry := range c.entries {
		if now.After(entry.expiresAt) {
			expiredCount++
		}
	}

	return CacheStats{
		TotalEntries:   entryCount,
		ExpiredEntries: expiredCount,
		ActiveEntries:  entryCount - expiredCount,
	}
}

// CacheStats provides information about cache contents.
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
}
