// Package ratelimit implements a fixed-window in-process rate limiter.
// Counters live in a single shared map guarded by a mutex; the guarantee
// holds for one process instance only, and multiple instances enforce
// independent limits.
package ratelimit

import (
	"math/rand"
	"sync"
	"time"
)

// sweepProbability is the chance that a Check call also evicts expired
// entries. The sweep keeps memory roughly bounded without a background
// goroutine; it is best-effort, not a hard guarantee.
const sweepProbability = 0.01

// Result reports the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

type entry struct {
	count int
	reset time.Time
}

// Limiter tracks fixed-window counters per identifier.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
	chance  func() float64
}

// Option customises a Limiter; used by tests to inject a fake clock.
type Option func(*Limiter)

// WithClock overrides the limiter's time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithSweepChance overrides the random source driving the eviction sweep.
func WithSweepChance(chance func() float64) Option {
	return func(l *Limiter) { l.chance = chance }
}

// New constructs an empty limiter.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		entries: make(map[string]entry),
		now:     time.Now,
		chance:  rand.Float64,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check records one request for the identifier and reports whether it is
// allowed under maxRequests per window. The first request of a window (or
// any request after the window elapsed) resets the counter to 1; a denied
// request does not reset the window early.
func (l *Limiter) Check(identifier string, maxRequests int, window time.Duration) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.chance() < sweepProbability {
		l.sweep(now)
	}

	current, ok := l.entries[identifier]
	if !ok || now.After(current.reset) {
		reset := now.Add(window)
		l.entries[identifier] = entry{count: 1, reset: reset}
		return Result{
			Allowed:   true,
			Limit:     maxRequests,
			Remaining: maxRequests - 1,
			Reset:     reset,
		}
	}

	current.count++
	l.entries[identifier] = current

	if current.count > maxRequests {
		return Result{
			Allowed:   false,
			Limit:     maxRequests,
			Remaining: 0,
			Reset:     current.reset,
		}
	}

	return Result{
		Allowed:   true,
		Limit:     maxRequests,
		Remaining: maxRequests - current.count,
		Reset:     current.reset,
	}
}

// Len returns the number of tracked identifiers.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Limiter) sweep(now time.Time) {
	for key, current := range l.entries {
		if now.After(current.reset) {
			delete(l.entries, key)
		}
	}
}
