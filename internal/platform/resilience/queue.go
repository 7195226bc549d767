package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"sahayak/internal/platform/logger"
)

// Write is one deferred persistence operation. Fn carries the actual write;
// Op and UserID exist so a dead-lettered entry can be reconciled by hand
type Write struct {
	ID       string
	Op       string
	UserID   string
	Fn       func(ctx context.Context) error
	Attempts int
	NextAt   time.Time
}

// DeadLetterFunc receives entries that exhausted their attempt budget
type DeadLetterFunc func(w Write, err error)

// QueuePolicy bounds per-entry retries
type QueuePolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// WriteQueue is an ordered queue of deferred writes drained by exactly one
// worker. A failing entry is rescheduled with exponential backoff and moved
// behind ready work so a poisoned head never wedges the queue; once an entry
// exceeds MaxAttempts it goes to the dead-letter sink and draining continues
type WriteQueue struct {
	mu      sync.Mutex
	entries []*Write
	wake    chan struct{}

	policy QueuePolicy
	dead   DeadLetterFunc

	now func() time.Time // test seam
}

// NewWriteQueue constructs a queue. dead may be nil; exhausted entries are
// then only logged
func NewWriteQueue(p QueuePolicy, dead DeadLetterFunc) *WriteQueue {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 5
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = 250 * time.Millisecond
	}
	return &WriteQueue{
		wake:   make(chan struct{}, 1),
		policy: p,
		dead:   dead,
		now:    time.Now,
	}
}

// Enqueue appends a write and wakes the worker. It never blocks the caller;
// persistence is best-effort relative to the response path
func (q *WriteQueue) Enqueue(op, userID string, fn func(ctx context.Context) error) string {
	w := &Write{
		ID:     uuid.NewString(),
		Op:     op,
		UserID: userID,
		Fn:     fn,
		NextAt: q.now(),
	}
	q.mu.Lock()
	q.entries = append(q.entries, w)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
	return w.ID
}

// Len reports entries still waiting (including ones backing off)
func (q *WriteQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// next pops the first ready entry, or reports how long until one is ready.
// ok=false with wait=0 means the queue is empty
func (q *WriteQueue) next() (w *Write, wait time.Duration, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return nil, 0, false
	}
	now := q.now()
	soonest := time.Duration(-1)
	for i, e := range q.entries {
		if !e.NextAt.After(now) {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return e, 0, true
		}
		if d := e.NextAt.Sub(now); soonest < 0 || d < soonest {
			soonest = d
		}
	}
	return nil, soonest, false
}

// step attempts one ready entry. Returns false when nothing was ready;
// wait then holds the time until the next entry becomes eligible
func (q *WriteQueue) step(ctx context.Context) (progressed bool, wait time.Duration) {
	w, wait, ok := q.next()
	if !ok {
		return false, wait
	}

	err := w.Fn(ctx)
	if err == nil {
		return true, 0
	}

	w.Attempts++
	log := logger.Named("write-queue")
	if w.Attempts >= q.policy.MaxAttempts {
		log.Error().
			Str("write_id", w.ID).
			Str("op", w.Op).
			Str("user_id", w.UserID).
			Int("attempts", w.Attempts).
			Err(err).
			Msg("write dead-lettered")
		if q.dead != nil {
			q.dead(*w, err)
		}
		return true, 0
	}

	w.NextAt = q.now().Add(q.policy.BaseDelay << w.Attempts)
	log.Warn().
		Str("write_id", w.ID).
		Str("op", w.Op).
		Int("attempt", w.Attempts).
		Time("next_at", w.NextAt).
		Err(err).
		Msg("write failed, rescheduled")

	q.mu.Lock()
	q.entries = append(q.entries, w)
	q.mu.Unlock()
	return true, 0
}

// Run drains the queue until ctx is cancelled. Call from exactly one goroutine;
// per-entry retries are strictly sequential by construction
func (q *WriteQueue) Run(ctx context.Context) error {
	for {
		progressed, wait := q.step(ctx)
		if progressed {
			continue
		}
		if err := q.idle(ctx, wait); err != nil {
			return err
		}
	}
}

// idle blocks until new work arrives, a backoff elapses, or ctx is done
func (q *WriteQueue) idle(ctx context.Context, wait time.Duration) error {
	var timer <-chan time.Time
	if wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		timer = t.C
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.wake:
		return nil
	case <-timer:
		return nil
	}
}
