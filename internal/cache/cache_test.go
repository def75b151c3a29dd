package cache_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/chaininvestigator/internal/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestGetOrComputeTTL(t *testing.T) {
	clock := newClock()
	c := cache.New(logrus.New(), cache.WithClock(clock.Now))
	key := cache.NewKey("receipt", "0xabc", "polygon")
	ttl := time.Minute

	var calls int
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	v, err := cache.GetOrCompute(c, key, ttl, compute)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls)

	clock.Advance(ttl - time.Second)
	v, err = cache.GetOrCompute(c, key, ttl, compute)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls, "second call within ttl must not recompute")

	clock.Advance(time.Second)
	_, err = cache.GetOrCompute(c, key, ttl, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "call after ttl elapsed must recompute")
}

func TestGetOrComputeDoesNotCacheErrors(t *testing.T) {
	c := cache.New(logrus.New())
	key := cache.NewKey("balance", "0xabc")

	var calls int
	_, err := cache.GetOrCompute(c, key, time.Minute, func() (int, error) {
		calls++
		return 0, errors.New("boom")
	})
	require.Error(t, err)
	assert.EqualError(t, err, "boom")

	v, err := cache.GetOrCompute(c, key, time.Minute, func() (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 2, calls)
}

func TestGetOrComputeDistinctKeys(t *testing.T) {
	c := cache.New(logrus.New())

	a, err := cache.GetOrCompute(c, cache.NewKey("nonce", "0x1"), time.Minute, func() (int, error) { return 1, nil })
	require.NoError(t, err)
	b, err := cache.GetOrCompute(c, cache.NewKey("nonce", "0x2"), time.Minute, func() (int, error) { return 2, nil })
	require.NoError(t, err)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 2, c.Len())
}

func TestNilCacheAlwaysComputes(t *testing.T) {
	var calls int
	for range 3 {
		_, err := cache.GetOrCompute(nil, cache.NewKey("op"), time.Minute, func() (bool, error) {
			calls++
			return true, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestMaxEntriesEvictsOldest(t *testing.T) {
	c := cache.New(logrus.New(), cache.WithMaxEntries(2))

	c.Set(cache.NewKey("op", 1), 1, time.Hour)
	c.Set(cache.NewKey("op", 2), 2, time.Hour)
	c.Set(cache.NewKey("op", 3), 3, time.Hour)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(cache.NewKey("op", 1), time.Hour)
	assert.False(t, ok, "oldest entry should have been evicted")
	v, ok := c.Get(cache.NewKey("op", 3), time.Hour)
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestSweepDropsExpired(t *testing.T) {
	clock := newClock()
	c := cache.New(logrus.New(), cache.WithClock(clock.Now))

	c.Set(cache.NewKey("short"), "a", time.Second)
	c.Set(cache.NewKey("long"), "b", time.Hour)
	clock.Advance(2 * time.Second)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(cache.NewKey("long"), time.Hour)
	assert.True(t, ok)
}

func TestNewKey(t *testing.T) {
	assert.Equal(t, cache.Key{Op: "receipt", Args: "0xabc|polygon"}, cache.NewKey("receipt", "0xabc", "polygon"))
	assert.Equal(t, "block(42|ethereum)", cache.NewKey("block", 42, "ethereum").String())
}

func TestSweepFreesCapacity(t *testing.T) {
	clock := newClock()
	c := cache.New(logrus.New(), cache.WithMaxEntries(2), cache.WithClock(clock.Now))

	c.Set(cache.NewKey("op", 1), 1, time.Second)
	c.Set(cache.NewKey("op", 2), 2, time.Hour)
	clock.Advance(2 * time.Second)
	require.Equal(t, 1, c.Sweep())

	c.Set(cache.NewKey("op", 3), 3, time.Hour)
	assert.Equal(t, 2, c.Len())
	for _, n := range []int{2, 3} {
		_, ok := c.Get(cache.NewKey("op", n), time.Hour)
		assert.True(t, ok, "entry %d should still be cached", n)
	}

	clock.Advance(2 * time.Hour)
	require.Equal(t, 2, c.Sweep())
	c.Set(cache.NewKey("op", 4), 4, time.Hour)
	c.Set(cache.NewKey("op", 5), 5, time.Hour)
	assert.Equal(t, 2, c.Len())
}

func TestRewriteAtSameInstantSurvivesEviction(t *testing.T) {
	clock := newClock()
	c := cache.New(logrus.New(), cache.WithMaxEntries(2), cache.WithClock(clock.Now))

	c.Set(cache.NewKey("a"), 1, time.Hour)
	c.Set(cache.NewKey("a"), 2, time.Hour)
	c.Set(cache.NewKey("b"), 3, time.Hour)

	v, ok := c.Get(cache.NewKey("a"), time.Hour)
	require.True(t, ok, "the stale insertion record must not evict the rewritten entry")
	assert.Equal(t, 2, v)
	v, ok = c.Get(cache.NewKey("b"), time.Hour)
	require.True(t, ok)
	assert.Equal(t, 3, v)
}
