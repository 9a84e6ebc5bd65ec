// Package ratelimit implements an in-memory sliding window request counter.
// Each client key owns a bucket of request timestamps guarded by its own
// mutex, so concurrent requests from different clients do not contend. A
// janitor goroutine evicts buckets that have been idle long enough, which
// bounds memory under churning client populations.
package ratelimit

import (
	"sync"
	"time"
)

// Result reports the outcome of a single Check call. RetryAfter is only
// meaningful when Allowed is false: it is the time until the oldest request
// in the window falls out and a new one would be admitted.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type bucket struct {
	mu       sync.Mutex
	times    []time.Time // request timestamps inside the window, oldest first
	lastSeen time.Time
}

// Limiter is safe for concurrent use.
type Limiter struct {
	window time.Duration
	max    int
	now    func() time.Time

	mu      sync.Mutex // guards the buckets map, not the buckets themselves
	buckets map[string]*bucket
}

// New returns a limiter allowing at most max requests per key inside a
// sliding window of the given length.
func New(window time.Duration, max int) *Limiter {
	return NewWithClock(window, max, time.Now)
}

// NewWithClock is New with an injectable clock, used by tests to step time
// across the window boundary deterministically.
func NewWithClock(window time.Duration, max int, now func() time.Time) *Limiter {
	return &Limiter{
		window:  window,
		max:     max,
		now:     now,
		buckets: make(map[string]*bucket),
	}
}

// Check prunes timestamps older than the window for the key, then either
// rejects (count already at max) or records the request and allows it.
func (l *Limiter) Check(key string) Result {
	now := l.now()

	l.mu.Lock()
	b := l.buckets[key]
	if b == nil {
		b = &bucket{}
		l.buckets[key] = b
	}
	l.mu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastSeen = now

	cutoff := now.Add(-l.window)
	kept := b.times[:0]
	for _, t := range b.times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	b.times = kept

	if len(b.times) >= l.max {
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: b.times[0].Add(l.window).Sub(now),
		}
	}
	b.times = append(b.times, now)
	return Result{Allowed: true, Remaining: l.max - len(b.times)}
}

// EvictIdle drops buckets whose last request is older than idle and
// returns how many were removed.
func (l *Limiter) EvictIdle(idle time.Duration) int {
	cutoff := l.now().Add(-idle)
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for key, b := range l.buckets {
		b.mu.Lock()
		stale := b.lastSeen.Before(cutoff)
		b.mu.Unlock()
		if stale {
			delete(l.buckets, key)
			n++
		}
	}
	return n
}

// StartJanitor runs EvictIdle every interval until stop is closed. It is
// intended to be launched once as a goroutine at startup.
func (l *Limiter) StartJanitor(interval, idle time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.EvictIdle(idle)
		case <-stop:
			return
		}
	}
}

// Size returns the number of tracked client buckets.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
