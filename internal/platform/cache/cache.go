// Package cache implements a namespaced in-process TTL cache.
// Expired entries read as misses immediately (lazy expiry); a periodic sweep
// reclaims them so memory stays bounded. Concurrent use is safe; writers to
// the same key race under last-write-wins
package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value  any
	expiry time.Time
}

// Cache is a set of namespaces, each mapping keys to values with an expiry
type Cache struct {
	mu   sync.RWMutex
	data map[string]map[string]entry

	// now is a seam for tests
	now func() time.Time
}

// New constructs an empty Cache
func New() *Cache {
	return &Cache{
		data: make(map[string]map[string]entry),
		now:  time.Now,
	}
}

// Get returns the value for (namespace, key) and whether it was present.
// An entry past its expiry is indistinguishable from an absent one
func (c *Cache) Get(namespace, key string) (any, bool) {
	c.mu.RLock()
	ns, ok := c.data[namespace]
	if !ok {
		c.mu.RUnlock()
		return nil, false
	}
	e, ok := ns[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expiry) {
		return nil, false
	}
	return e.value, true
}

// Put stores value under (namespace, key) for ttl. Non-positive ttl stores nothing
func (c *Cache) Put(namespace, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	exp := c.now().Add(ttl)
	c.mu.Lock()
	ns, ok := c.data[namespace]
	if !ok {
		ns = make(map[string]entry)
		c.data[namespace] = ns
	}
	ns[key] = entry{value: value, expiry: exp}
	c.mu.Unlock()
}

// Delete removes a single entry if present
func (c *Cache) Delete(namespace, key string) {
	c.mu.Lock()
	if ns, ok := c.data[namespace]; ok {
		delete(ns, key)
	}
	c.mu.Unlock()
}

// Sweep removes every expired entry and returns how many were reclaimed
func (c *Cache) Sweep() int {
	now := c.now()
	reclaimed := 0
	c.mu.Lock()
	for name, ns := range c.data {
		for k, e := range ns {
			if !now.Before(e.expiry) {
				delete(ns, k)
				reclaimed++
			}
		}
		if len(ns) == 0 {
			delete(c.data, name)
		}
	}
	c.mu.Unlock()
	return reclaimed
}

// Len reports live (unexpired) entries across all namespaces
func (c *Cache) Len() int {
	now := c.now()
	n := 0
	c.mu.RLock()
	for _, ns := range c.data {
		for _, e := range ns {
			if now.Before(e.expiry) {
				n++
			}
		}
	}
	c.mu.RUnlock()
	return n
}

// RunSweeper sweeps every interval until ctx is done. Call in its own goroutine
func (c *Cache) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Sweep()
		}
	}
}
