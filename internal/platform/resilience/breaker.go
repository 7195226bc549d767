// Package resilience provides the shared fault-handling primitives every
// remote capability call goes through: a circuit breaker per dependency,
// bounded retry with exponential backoff, and a write queue with dead-lettering
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	perr "sahayak/internal/platform/errors"
)

// BreakerState enumerates the circuit states
type BreakerState uint8

const (
	// StateClosed admits calls and counts consecutive failures
	StateClosed BreakerState = iota
	// StateOpen rejects calls without invoking the operation
	StateOpen
	// StateHalfOpen admits a single probe call after the open timeout
	StateHalfOpen
)

// String implements fmt.Stringer for logs
func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker is a circuit breaker guarding one remote capability.
// Transitions: closed->open (threshold consecutive failures),
// open->half-open (after openTimeout), half-open->closed (probe success),
// half-open->open (probe failure). Never closed->half-open or open->closed
type Breaker struct {
	name        string
	threshold   int
	openTimeout time.Duration

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time

	now func() time.Time // test seam
}

// NewBreaker constructs a closed breaker for the named capability
func NewBreaker(name string, threshold int, openTimeout time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = 5
	}
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}
	return &Breaker{
		name:        name,
		threshold:   threshold,
		openTimeout: openTimeout,
		state:       StateClosed,
		now:         time.Now,
	}
}

// Name returns the capability this breaker guards
func (b *Breaker) Name() string { return b.name }

// State reports the current state, accounting for an elapsed open timeout
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return StateHalfOpen
	}
	return b.state
}

// admit decides whether a call may proceed and performs the open->half-open
// transition when the timeout has elapsed. Caller must report the outcome
func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.openTimeout {
			return perr.WithService(perr.CircuitOpenf("%s circuit open", b.name), b.name)
		}
		b.state = StateHalfOpen
		return nil
	default:
		return nil
	}
}

// report records the outcome of an admitted call
func (b *Breaker) report(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case StateHalfOpen:
		if failed {
			b.state = StateOpen
			b.openedAt = b.now()
			b.failures = b.threshold
			return
		}
		b.state = StateClosed
		b.failures = 0
	case StateClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.threshold {
			b.state = StateOpen
			b.openedAt = b.now()
		}
	}
}

// Do runs op under the breaker. While open, op is never invoked and a
// CircuitOpen error is returned immediately. A caller-side cancellation
// during op is not held against the dependency; a deadline hit is, since
// a too-slow provider is exactly what the breaker guards
func (b *Breaker) Do(ctx context.Context, op func(ctx context.Context) error) error {
	if err := b.admit(); err != nil {
		return err
	}
	err := op(ctx)
	if err == nil || isDependencyFailure(err) {
		b.report(err != nil)
	}
	if err != nil {
		return perr.WithService(err, b.name)
	}
	return nil
}

// isDependencyFailure excludes caller-side cancellation, which says
// nothing about the provider's health. Such calls count neither as a
// failure nor as a half-open probe success
func isDependencyFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}

// BreakerSet holds one breaker per remote capability, created on first use
// with shared settings. It is the only breaker state shared across queries
type BreakerSet struct {
	mu          sync.Mutex
	breakers    map[string]*Breaker
	threshold   int
	openTimeout time.Duration
}

// NewBreakerSet constructs a set with shared threshold/timeout settings
func NewBreakerSet(threshold int, openTimeout time.Duration) *BreakerSet {
	return &BreakerSet{
		breakers:    make(map[string]*Breaker),
		threshold:   threshold,
		openTimeout: openTimeout,
	}
}

// For returns the breaker for a capability, creating it if needed
func (s *BreakerSet) For(name string) *Breaker {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.breakers[name]
	if !ok {
		b = NewBreaker(name, s.threshold, s.openTimeout)
		s.breakers[name] = b
	}
	return b
}
