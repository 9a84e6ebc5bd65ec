package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests step time across the window boundary.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestLimiterAllowsUpToMax(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_000_000, 0)}
	l := NewWithClock(time.Minute, 5, clock.Now)

	for i := 0; i < 5; i++ {
		res := l.Check("1.2.3.4")
		require.True(t, res.Allowed, "request %d should be admitted", i+1)
		assert.Equal(t, 4-i, res.Remaining)
	}

	res := l.Check("1.2.3.4")
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, time.Minute, res.RetryAfter)
}

func TestLimiterWindowSlides(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_000_000, 0)}
	l := NewWithClock(time.Minute, 5, clock.Now)

	for i := 0; i < 5; i++ {
		require.True(t, l.Check("k").Allowed)
		clock.Advance(time.Second)
	}
	assert.False(t, l.Check("k").Allowed)

	// 56s after the first request: nothing has fallen out yet.
	clock.Advance(51 * time.Second)
	res := l.Check("k")
	assert.False(t, res.Allowed)
	assert.Equal(t, 4*time.Second, res.RetryAfter)

	// At +61s the requests from +0s and +1s have left the window.
	clock.Advance(5 * time.Second)
	res = l.Check("k")
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
	res = l.Check("k")
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.False(t, l.Check("k").Allowed)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_000_000, 0)}
	l := NewWithClock(time.Minute, 1, clock.Now)

	assert.True(t, l.Check("a").Allowed)
	assert.False(t, l.Check("a").Allowed)
	assert.True(t, l.Check("b").Allowed)
}

func TestLimiterEvictIdle(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_000_000, 0)}
	l := NewWithClock(time.Minute, 5, clock.Now)

	l.Check("old")
	clock.Advance(10 * time.Minute)
	l.Check("fresh")
	require.Equal(t, 2, l.Size())

	evicted := l.EvictIdle(5 * time.Minute)
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, l.Size())

	// An evicted key starts over with a full budget.
	res := l.Check("old")
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
}

func TestLimiterConcurrentAccess(t *testing.T) {
	l := New(time.Minute, 1000)

	var wg sync.WaitGroup
	allowed := make([]int, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			key := fmt.Sprintf("client-%d", g%4)
			for i := 0; i < 200; i++ {
				if l.Check(key).Allowed {
					allowed[g]++
				}
			}
		}(g)
	}
	wg.Wait()

	// 4 keys, 400 checks each, budget 1000: every check is admitted.
	total := 0
	for _, n := range allowed {
		total += n
	}
	assert.Equal(t, 1600, total)
	assert.Equal(t, 4, l.Size())
}
