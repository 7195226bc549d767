package resilience

import (
	"context"
	"sync"
	"testing"
	"time"

	perr "sahayak/internal/platform/errors"
)

type deadCapture struct {
	mu      sync.Mutex
	entries []Write
}

func (d *deadCapture) sink(w Write, _ error) {
	d.mu.Lock()
	d.entries = append(d.entries, w)
	d.mu.Unlock()
}

func TestQueueDrainsInOrder(t *testing.T) {
	q := NewWriteQueue(QueuePolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}, nil)

	var mu sync.Mutex
	var got []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		q.Enqueue("query_record", "u1", func(context.Context) error {
			mu.Lock()
			got = append(got, name)
			mu.Unlock()
			return nil
		})
	}

	for q.Len() > 0 {
		if progressed, _ := q.step(context.Background()); !progressed {
			t.Fatalf("queue stalled with %d entries left", q.Len())
		}
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("drain order = %v", got)
	}
}

func TestQueueReschedulesWithBackoff(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	q := NewWriteQueue(QueuePolicy{MaxAttempts: 5, BaseDelay: 100 * time.Millisecond}, nil)
	q.now = func() time.Time { return now }

	attempts := 0
	q.Enqueue("eligibility_record", "u2", func(context.Context) error {
		attempts++
		return perr.Unavailablef("store down")
	})

	// first attempt fails; entry backs off at baseDelay * 2^1
	if progressed, _ := q.step(context.Background()); !progressed {
		t.Fatalf("ready entry should have been attempted")
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d", attempts)
	}

	// not eligible again until its backoff elapses
	progressed, wait := q.step(context.Background())
	if progressed {
		t.Fatalf("entry ran before its backoff elapsed")
	}
	if want := 200 * time.Millisecond; wait != want {
		t.Fatalf("wait = %v, want %v", wait, want)
	}

	now = now.Add(250 * time.Millisecond)
	if progressed, _ := q.step(context.Background()); !progressed {
		t.Fatalf("entry should be eligible after backoff")
	}
	if attempts != 2 {
		t.Fatalf("attempts = %d after second pass", attempts)
	}
}

func TestQueueDeadLettersPoisonedEntryAndContinues(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dead := &deadCapture{}
	q := NewWriteQueue(QueuePolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}, dead.sink)
	q.now = func() time.Time { return now }

	q.Enqueue("query_record", "u3", func(context.Context) error {
		return perr.Unavailablef("always fails")
	})
	healthyRan := false
	q.Enqueue("query_record", "u4", func(context.Context) error {
		healthyRan = true
		return nil
	})

	// drive until both entries are resolved; advance the clock past backoffs
	for range 20 {
		progressed, wait := q.step(context.Background())
		if !progressed {
			if q.Len() == 0 {
				break
			}
			now = now.Add(wait + time.Millisecond)
		}
	}

	if !healthyRan {
		t.Fatalf("poisoned entry must not block the rest of the queue")
	}
	if q.Len() != 0 {
		t.Fatalf("queue should be empty, %d left", q.Len())
	}
	dead.mu.Lock()
	defer dead.mu.Unlock()
	if len(dead.entries) != 1 {
		t.Fatalf("dead letters = %d, want 1", len(dead.entries))
	}
	if w := dead.entries[0]; w.Op != "query_record" || w.UserID != "u3" || w.Attempts != 2 {
		t.Fatalf("dead letter context incomplete: %+v", w)
	}
}

func TestQueueRunStopsOnCancel(t *testing.T) {
	q := NewWriteQueue(QueuePolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- q.Run(ctx) }()

	ran := make(chan struct{})
	q.Enqueue("query_record", "u5", func(context.Context) error {
		close(ran)
		return nil
	})
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker never picked up the entry")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not stop on cancel")
	}
}
