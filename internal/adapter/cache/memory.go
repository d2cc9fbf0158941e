package cache

import (
	"context"
	"sync"
	"time"

	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// DefaultMaxEntries bounds a MemoryCache created by NewMemoryCache
const DefaultMaxEntries = 1024

type memoryEntry struct {
	plan      *domain.MonthlyPlan
	storedAt  time.Time
	expiresAt time.Time // Zero means no expiry
}

// MemoryCache implements domain.PlanCache in process memory.
// Expired entries are swept on Set; once MaxEntries is reached the oldest entry is evicted.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemoryCache creates an empty cache whose entries live for ttl; zero keeps them
// until they are evicted
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return NewMemoryCacheWithLimit(ttl, DefaultMaxEntries)
}

// NewMemoryCacheWithLimit creates an empty cache holding at most maxEntries plans.
// A non-positive maxEntries falls back to DefaultMaxEntries.
func NewMemoryCacheWithLimit(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached plan, or nil on a miss. Expired entries are dropped.
func (c *MemoryCache) Get(_ context.Context, key string) (*domain.MonthlyPlan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	if entry.expired(c.now()) {
		delete(c.entries, key)
		return nil, nil
	}
	return entry.plan, nil
}

// Set stores plan under key
// Logic:
//  1. Sweep every expired entry
//  2. If the cache is still full, evict the oldest entry
//  3. Store the plan
func (c *MemoryCache) Set(_ context.Context, key string, plan *domain.MonthlyPlan) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	// 1. Sweep
	for k, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, k)
		}
	}

	// 2. Evict
	if _, replacing := c.entries[key]; !replacing && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	// 3. Store
	entry := memoryEntry{plan: plan, storedAt: now}
	if c.ttl > 0 {
		entry.expiresAt = now.Add(c.ttl)
	}
	c.entries[key] = entry
	return nil
}

// Len returns the number of stored entries, including expired ones not yet swept
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, entry := range c.entries {
		if !found || entry.storedAt.Before(oldest) {
			oldestKey, oldest, found = k, entry.storedAt, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
