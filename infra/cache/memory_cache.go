package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/payportal/pkg/domain"
)

// MemoryCache implements ExchangeRateCache using in-memory storage.
// Expired entries are dropped lazily on read.
type MemoryCache struct {
	cache map[string]*cacheEntry
	mu    sync.RWMutex
	now   func() time.Time
}

type cacheEntry struct {
	rate      *domain.ExchangeRate
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string]*cacheEntry),
		now:   time.Now,
	}
}

// Get retrieves a rate from cache
func (c *MemoryCache) Get(_ context.Context, key string) (*domain.ExchangeRate, error) {
	c.mu.RLock()
	entry, exists := c.cache[key]
	c.mu.RUnlock()
	if !exists {
		return nil, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.cache, key)
		c.mu.Unlock()
		return nil, nil
	}
	return entry.rate, nil
}

// Set stores a rate in cache with TTL
func (c *MemoryCache) Set(
	_ context.Context,
	key string,
	rate *domain.ExchangeRate,
	ttl time.Duration,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = &cacheEntry{
		rate:      rate,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}
