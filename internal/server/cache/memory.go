package cache

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

type entry struct {
	value     string
	expiresAt time.Time
}

const defaultSweepEvery = 256

// MemoryCache is a single-process Cache. Expired keys are dropped on read and
// by a sweep that runs on every sweepEvery-th Set, so tokens that are never
// presented again do not pile up.
type MemoryCache struct {
	mu         sync.Mutex
	items      map[string]entry
	now        func() time.Time
	sets       int
	sweepEvery int
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]entry), now: time.Now, sweepEvery: defaultSweepEvery}
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return "", common.ErrorNotFound
	}
	if e.expired(c.now()) {
		delete(c.items, key)
		return "", common.ErrorNotFound
	}
	return e.value, nil
}

// Set stores value under key. A non-positive ttl keeps the key until deleted.
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.items[key] = e

	c.sets++
	if c.sets >= c.sweepEvery {
		c.sets = 0
		c.sweepLocked()
	}
	return nil
}

func (c *MemoryCache) sweepLocked() {
	now := c.now()
	for k, e := range c.items {
		if e.expired(now) {
			delete(c.items, k)
		}
	}
}

// Len reports the number of stored keys, expired ones included until swept.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *MemoryCache) Ping(_ context.Context) error { return nil }
