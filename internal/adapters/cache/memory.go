package cache

import (
	"context"
	"sync"
	"sync/atomic"
)

// defaultMaxSize bounds the in-memory cache when no option overrides it.
const defaultMaxSize = 10_000

// entry is a single cached value in the insertion-ordered list.
type entry struct {
	key   string
	value string
	next  *entry
}

// reset clears the entry state for reuse.
func (e *entry) reset() {
	e.key = ""
	e.value = ""
	e.next = nil
}

// InMemoryCache implements Cache with a map plus an insertion-ordered
// linked list. In bounded mode (maxSize > 0) the oldest entry is evicted
// when the cache is full; entries are pooled to limit allocation churn.
type InMemoryCache struct {
	mu        sync.RWMutex
	entries   map[string]*entry
	head      *entry // most recently inserted
	maxSize   int    // 0 or negative = unbounded
	size      atomic.Int64
	entryPool sync.Pool
}

// Option applies a configuration option to the InMemoryCache.
type Option func(*InMemoryCache)

// WithMaxSize sets the maximum number of entries to keep in memory.
// If maxSize <= 0 the cache is unbounded.
func WithMaxSize(maxSize int) Option {
	return func(c *InMemoryCache) {
		c.maxSize = maxSize
	}
}

// NewInMemoryCache creates a bounded in-memory cache with configuration
// options.
func NewInMemoryCache(opts ...Option) *InMemoryCache {
	c := &InMemoryCache{
		maxSize: defaultMaxSize,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	c.entries = make(map[string]*entry)
	if c.maxSize > 0 {
		c.entryPool = sync.Pool{
			New: func() interface{} {
				return &entry{}
			},
		}
	}

	return c
}

// Get returns the cached value for key.
func (c *InMemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	return e.value, true
}

// Set stores value under key, evicting the oldest entry when the bounded
// cache is full. Overwriting an existing key updates it in place.
func (c *InMemoryCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		existing.value = value
		return nil
	}

	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	var e *entry
	if c.maxSize > 0 {
		e = c.entryPool.Get().(*entry)
	} else {
		e = &entry{}
	}
	e.key = key
	e.value = value
	e.next = c.head

	c.head = e
	c.entries[key] = e
	c.size.Add(1)
	return nil
}

// evictOldest removes the tail of the insertion list from the map.
// Must be called with c.mu held.
func (c *InMemoryCache) evictOldest() {
	if len(c.entries) == 0 || c.head == nil {
		return
	}

	// Single entry: drop the head itself.
	if c.head.next == nil {
		delete(c.entries, c.head.key)
		c.head.reset()
		c.entryPool.Put(c.head)
		c.head = nil
		c.size.Add(-1)
		return
	}

	// Walk to the second-to-last entry and unlink the tail.
	prev := c.head
	for prev.next.next != nil {
		prev = prev.next
	}
	tail := prev.next
	prev.next = nil
	delete(c.entries, tail.key)
	tail.reset()
	c.entryPool.Put(tail)
	c.size.Add(-1)
}

// Size returns the current number of cached entries.
func (c *InMemoryCache) Size() int64 {
	return c.size.Load()
}
