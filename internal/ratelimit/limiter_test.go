package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func never() float64  { return 1.0 }
func always() float64 { return 0.0 }

func fakeClock(start time.Time) (func() time.Time, func(time.Duration)) {
	var mu sync.Mutex
	current := start
	now := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(d)
	}
	return now, advance
}

func TestCheckDeniesBeyondLimit(t *testing.T) {
	now, _ := fakeClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	limiter := New(WithClock(now), WithSweepChance(never))

	for i := 0; i < 3; i++ {
		result := limiter.Check("student-1", 3, time.Minute)
		require.True(t, result.Allowed)
		require.Equal(t, 3, result.Limit)
		require.Equal(t, 2-i, result.Remaining)
	}

	denied := limiter.Check("student-1", 3, time.Minute)
	require.False(t, denied.Allowed)
	require.Equal(t, 0, denied.Remaining)
	require.Equal(t, now().Add(time.Minute), denied.Reset)
}

func TestCheckResetsAfterWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now, advance := fakeClock(start)
	limiter := New(WithClock(now), WithSweepChance(never))

	for i := 0; i < 4; i++ {
		limiter.Check("student-1", 3, time.Minute)
	}
	require.False(t, limiter.Check("student-1", 3, time.Minute).Allowed)

	advance(time.Minute + time.Second)

	fresh := limiter.Check("student-1", 3, time.Minute)
	require.True(t, fresh.Allowed)
	require.Equal(t, 2, fresh.Remaining)
	require.Equal(t, start.Add(2*time.Minute+time.Second), fresh.Reset)
}

func TestDeniedCheckDoesNotExtendWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now, advance := fakeClock(start)
	limiter := New(WithClock(now), WithSweepChance(never))

	first := limiter.Check("student-1", 1, time.Minute)
	require.True(t, first.Allowed)

	advance(30 * time.Second)
	denied := limiter.Check("student-1", 1, time.Minute)
	require.False(t, denied.Allowed)
	require.Equal(t, first.Reset, denied.Reset, "a denied request must not push the reset out")

	advance(31 * time.Second)
	require.True(t, limiter.Check("student-1", 1, time.Minute).Allowed)
}

func TestIdentifiersAreIndependent(t *testing.T) {
	now, _ := fakeClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	limiter := New(WithClock(now), WithSweepChance(never))

	limiter.Check("student-1", 1, time.Minute)
	require.False(t, limiter.Check("student-1", 1, time.Minute).Allowed)
	require.True(t, limiter.Check("student-2", 1, time.Minute).Allowed)
}

func TestSweepEvictsExpiredEntries(t *testing.T) {
	now, advance := fakeClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	limiter := New(WithClock(now), WithSweepChance(never))

	limiter.Check("student-1", 3, time.Minute)
	limiter.Check("student-2", 3, time.Minute)
	require.Equal(t, 2, limiter.Len())

	advance(2 * time.Minute)

	limiter.chance = always
	limiter.Check("student-3", 3, time.Minute)
	require.Equal(t, 1, limiter.Len(), "expired identifiers should be swept")
}

func TestCheckIsSafeUnderConcurrency(t *testing.T) {
	limiter := New(WithSweepChance(never))

	var wg sync.WaitGroup
	allowed := make([]bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			allowed[i] = limiter.Check("shared", 10, time.Minute).Allowed
		}(i)
	}
	wg.Wait()

	count := 0
	for _, ok := range allowed {
		if ok {
			count++
		}
	}
	require.Equal(t, 10, count)
}
