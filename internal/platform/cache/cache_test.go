package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fixedClock lets tests move time by hand
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fixedClock) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fixedClock) advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newClocked() (*Cache, *fixedClock) {
	clk := &fixedClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	c := New()
	c.now = clk.now
	return c, clk
}

func TestPutGetRoundTrip(t *testing.T) {
	c, _ := newClocked()
	c.Put("retrieval", "ration card|hi", []string{"doc-1"}, time.Hour)

	v, ok := c.Get("retrieval", "ration card|hi")
	if !ok {
		t.Fatalf("expected hit")
	}
	if docs := v.([]string); len(docs) != 1 || docs[0] != "doc-1" {
		t.Fatalf("value mangled: %v", v)
	}

	// namespaces are isolated
	if _, ok := c.Get("answers", "ration card|hi"); ok {
		t.Fatalf("cross-namespace read must miss")
	}
}

func TestExpiryIsAMiss(t *testing.T) {
	c, clk := newClocked()
	c.Put("answers", "k", "cached answer", time.Minute)

	if _, ok := c.Get("answers", "k"); !ok {
		t.Fatalf("fresh entry should hit")
	}
	clk.advance(time.Minute) // exactly at expiry counts as expired
	if _, ok := c.Get("answers", "k"); ok {
		t.Fatalf("lookup past expiry must miss regardless of prior hits")
	}
}

func TestLastWriteWins(t *testing.T) {
	c, _ := newClocked()
	c.Put("ns", "k", "first", time.Hour)
	c.Put("ns", "k", "second", time.Hour)
	v, _ := c.Get("ns", "k")
	if v != "second" {
		t.Fatalf("want last write, got %v", v)
	}
}

func TestNonPositiveTTLStoresNothing(t *testing.T) {
	c, _ := newClocked()
	c.Put("ns", "k", "v", 0)
	if _, ok := c.Get("ns", "k"); ok {
		t.Fatalf("zero ttl should not store")
	}
}

func TestSweepReclaimsExpired(t *testing.T) {
	c, clk := newClocked()
	c.Put("ns", "stale", 1, time.Minute)
	c.Put("ns", "live", 2, time.Hour)

	clk.advance(2 * time.Minute)
	if got := c.Sweep(); got != 1 {
		t.Fatalf("sweep reclaimed %d, want 1", got)
	}
	if c.Len() != 1 {
		t.Fatalf("live count = %d, want 1", c.Len())
	}
	if _, ok := c.Get("ns", "live"); !ok {
		t.Fatalf("sweep must not evict live entries")
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for range 200 {
				c.Put("ns", key, i, time.Hour)
				c.Get("ns", key)
			}
		}(i)
	}
	wg.Wait()
	// every surviving key must hold a value some writer stored
	for i := range 4 {
		if _, ok := c.Get("ns", fmt.Sprintf("k%d", i)); !ok {
			t.Fatalf("key k%d lost", i)
		}
	}
}
