package recurrence

import (
	"sync"
	"testing"
	"time"
)

func testWeeklyRule(endDay int) Rule {
	return Rule{
		Kind:      KindWeekly,
		StartDate: Date(2024, time.January, 1),
		EndDate:   Date(2024, time.January, endDay),
		Weekdays:  []time.Weekday{time.Monday, time.Thursday},
	}
}

func TestExpansionCache_BasicOperations(t *testing.T) {
	cache := NewExpansionCache(CacheConfig{
		TTL:             5 * time.Minute,
		MaxEntries:      100,
		CleanupInterval: 1 * time.Minute,
	})
	defer cache.Close()

	rule := testWeeklyRule(15)

	// Cache miss first
	result, found := cache.Get(rule)
	if found {
		t.Error("Expected cache miss, got hit")
	}
	if result != nil {
		t.Error("Expected nil result on cache miss")
	}

	dates := ExpandDates(rule)
	cache.Set(rule, dates)

	// Cache hit
	result, found = cache.Get(rule)
	if !found {
		t.Error("Expected cache hit, got miss")
	}
	if len(result) != len(dates) {
		t.Errorf("Expected %d dates, got %d", len(dates), len(result))
	}
}

func TestExpansionCache_ReturnsCopies(t *testing.T) {
	cache := NewExpansionCache(DefaultCacheConfig)
	defer cache.Close()

	rule := testWeeklyRule(15)
	cache.Set(rule, ExpandDates(rule))

	first, found := cache.Get(rule)
	if !found || len(first) == 0 {
		t.Fatal("Expected cache hit with dates")
	}

	// Mutating a returned slice must not corrupt the cached entry.
	first[0] = Date(1999, time.January, 1)

	second, _ := cache.Get(rule)
	if second[0].Equal(first[0]) {
		t.Error("Cache returned a shared slice; mutation leaked into the cache")
	}
}

func TestExpansionCache_TTLExpiration(t *testing.T) {
	cache := NewExpansionCache(CacheConfig{
		TTL:             100 * time.Millisecond, // Very short TTL for testing
		MaxEntries:      100,
		CleanupInterval: 50 * time.Millisecond,
	})
	defer cache.Close()

	rule := testWeeklyRule(15)
	cache.Set(rule, ExpandDates(rule))

	// Should be found immediately
	if _, found := cache.Get(rule); !found {
		t.Error("Expected cache hit immediately after set")
	}

	// Wait for expiration
	time.Sleep(150 * time.Millisecond)

	if _, found := cache.Get(rule); found {
		t.Error("Expected cache miss after TTL expiration")
	}
}

func TestExpansionCache_DifferentRulesDifferentKeys(t *testing.T) {
	cache := NewExpansionCache(DefaultCacheConfig)
	defer cache.Close()

	rule1 := testWeeklyRule(15)
	rule2 := testWeeklyRule(29)

	cache.Set(rule1, ExpandDates(rule1))
	cache.Set(rule2, ExpandDates(rule2))

	result1, found1 := cache.Get(rule1)
	result2, found2 := cache.Get(rule2)

	if !found1 || !found2 {
		t.Fatal("Expected both rules to be cached")
	}
	if len(result1) == len(result2) {
		t.Error("Expected different expansions for different rules")
	}
}

func TestExpansionCache_WeekdayOrderIrrelevant(t *testing.T) {
	cache := NewExpansionCache(DefaultCacheConfig)
	defer cache.Close()

	rule := testWeeklyRule(15)
	cache.Set(rule, ExpandDates(rule))

	reordered := rule
	reordered.Weekdays = []time.Weekday{time.Thursday, time.Monday}

	if _, found := cache.Get(reordered); !found {
		t.Error("Expected cache hit for the same weekday set in different order")
	}
}

func TestExpansionCache_EvictsOverLimit(t *testing.T) {
	cache := NewExpansionCache(CacheConfig{
		TTL:             time.Hour,
		MaxEntries:      5,
		CleanupInterval: time.Hour,
	})
	defer cache.Close()

	for day := 2; day <= 12; day++ {
		rule := testWeeklyRule(day)
		cache.Set(rule, ExpandDates(rule))
	}

	stats := cache.Stats()
	if stats.TotalEntries > 6 {
		t.Errorf("Expected cleanup to keep entries near the limit, got %d", stats.TotalEntries)
	}
}

func TestExpansionCache_Stats(t *testing.T) {
	cache := NewExpansionCache(DefaultCacheConfig)
	defer cache.Close()

	stats := cache.Stats()
	if stats.TotalEntries != 0 {
		t.Errorf("Expected empty cache, got %d entries", stats.TotalEntries)
	}

	rule := testWeeklyRule(15)
	cache.Set(rule, ExpandDates(rule))

	stats = cache.Stats()
	if stats.TotalEntries != 1 || stats.ActiveEntries != 1 {
		t.Errorf("Expected one active entry, got %+v", stats)
	}
}

func TestExpansionCache_ConcurrentAccess(t *testing.T) {
	cache := NewExpansionCache(DefaultCacheConfig)
	defer cache.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rule := testWeeklyRule(2 + i%5)
			for j := 0; j < 50; j++ {
				cache.Set(rule, ExpandDates(rule))
				// Eviction may race with Get; a miss is not an error,
				// only a panic or deadlock would be.
				cache.Get(rule)
			}
		}(i)
	}
	wg.Wait()
}
