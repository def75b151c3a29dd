package cache

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/ringbuffer"
	"github.com/hedisam/pipeline/chans"
)

const (
	// DefaultMaxEntries caps the number of live entries when no explicit cap is configured.
	DefaultMaxEntries = 4096
)

// Key identifies a memoized call by its operation name and argument tuple.
type Key struct {
	Op   string
	Args string
}

// NewKey builds a Key from an operation name and its arguments.
func NewKey(op string, args ...any) Key {
	parts := make([]string, 0, len(args))
	for arg := range slices.Values(args) {
		parts = append(parts, fmt.Sprint(arg))
	}
	return Key{Op: op, Args: strings.Join(parts, "|")}
}

func (k Key) String() string {
	return k.Op + "(" + k.Args + ")"
}

type entry struct {
	value      any
	insertedAt time.Time
	ttl        time.Duration
	seq        uint64
}

// insertion records the order entries were written in; it drives size-cap eviction.
// seq ties the record to one write of key.
type insertion struct {
	key Key
	seq uint64
}

type config struct {
	maxEntries uint
	now        func() time.Time
}

type Option func(*config)

// WithMaxEntries caps the number of live entries. The oldest insertion is evicted first.
func WithMaxEntries(n uint) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// Cache memoizes values for a bounded time. Read-check and insert each take the lock, but the compute
// in between does not, so two concurrent misses on the same key may both compute.
type Cache struct {
	logger  *logrus.Logger
	mu      sync.Mutex
	entries map[Key]entry
	order   *ringbuffer.RingBuffer[insertion]
	seq     uint64
	now     func() time.Time
}

func New(logger *logrus.Logger, opts ...Option) *Cache {
	cfg := &config{maxEntries: DefaultMaxEntries, now: time.Now}
	for opt := range slices.Values(opts) {
		opt(cfg)
	}

	return &Cache{
		logger:  logger,
		entries: make(map[Key]entry, min(cfg.maxEntries, 256)),
		order:   ringbuffer.New[insertion](cfg.maxEntries),
		now:     cfg.now,
	}
}

// Get returns the value stored under key if it was inserted less than ttl ago.
func (c *Cache) Get(key Key, ttl time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.insertedAt) >= ttl {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry.
func (c *Cache) Set(key Key, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for c.order.IsFull() {
		c.evictOldest()
	}
	c.seq++
	c.entries[key] = entry{value: value, insertedAt: now, ttl: ttl, seq: c.seq}
	c.order.Push(insertion{key: key, seq: c.seq})
}

// Delete drops key from the cache.
func (c *Cache) Delete(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Sweep removes every expired entry and returns how many were dropped.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var dropped int
	for key, e := range c.entries {
		if now.Sub(e.insertedAt) >= e.ttl {
			delete(c.entries, key)
			dropped++
		}
	}
	if dropped > 0 {
		cacheEvictions.Add(float64(dropped))
	}
	c.pruneOrder()
	return dropped
}

// pruneOrder drops insertion records at the front whose entry was deleted or rewritten since.
// Must be called with the lock held.
func (c *Cache) pruneOrder() {
	if len(c.entries) == 0 {
		c.order.Reset()
		return
	}
	for {
		rec, ok := c.order.Front()
		if !ok {
			return
		}
		e, ok := c.entries[rec.key]
		if ok && e.seq == rec.seq {
			return
		}
		c.order.Pop()
	}
}

// StartSweeper runs Sweep on every tick until ctx is done.
func (c *Cache) StartSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for range chans.ReceiveOrDoneSeq(ctx, t.C) {
		dropped := c.Sweep()
		if dropped > 0 {
			c.logger.WithFields(logrus.Fields{
				"dropped":   dropped,
				"remaining": c.Len(),
				"capacity":  c.order.Cap(),
			}).Debug("Swept expired cache entries")
		}
	}
}

// evictOldest pops the oldest insertion record and deletes its entry unless the key was rewritten since.
// Must be called with the lock held.
func (c *Cache) evictOldest() {
	rec, ok := c.order.Pop()
	if !ok {
		return
	}
	e, ok := c.entries[rec.key]
	if !ok || e.seq != rec.seq {
		return
	}
	delete(c.entries, rec.key)
	cacheEvictions.Inc()
}

// GetOrCompute returns the cached value for key when it is younger than ttl, otherwise it calls compute and
// caches the result. Errors from compute are returned to the caller and never cached.
// A nil cache always computes.
func GetOrCompute[T any](c *Cache, key Key, ttl time.Duration, compute func() (T, error)) (T, error) {
	if c == nil {
		return compute()
	}

	if v, ok := c.Get(key, ttl); ok {
		if typed, ok := v.(T); ok {
			cacheHits.WithLabelValues(key.Op).Inc()
			return typed, nil
		}
	}
	cacheMisses.WithLabelValues(key.Op).Inc()

	value, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	c.Set(key, value, ttl)
	return value, nil
}
