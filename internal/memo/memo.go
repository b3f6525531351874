// Package memo caches the results of dashboard computations. Entries are
// keyed by the computing function, the dataset version it read and its
// arguments, so a reload makes older entries unreachable; Purge drops them.
package memo

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultSize is the number of entries kept when no size is configured.
const DefaultSize = 128

// Key identifies one computation.
type Key struct {
	Fn      string
	Version uint64
	Args    string
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%d(%s)", k.Fn, k.Version, k.Args)
}

// Stats counts lookups since the cache was created.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Size   int    `json:"size"`
}

// Cache is a bounded LRU of computed values. It is safe for concurrent use;
// concurrent misses on the same key run the computation once.
type Cache struct {
	entries *lru.Cache[Key, any]
	group   singleflight.Group
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// New creates a cache holding at most size entries.
func New(size int) (*Cache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("memo: size must be positive, got %d", size)
	}
	entries, err := lru.New[Key, any](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Do returns the cached value for key or calls compute and caches its
// result. Errors are returned to every waiting caller but never cached.
func Do[T any](c *Cache, key Key, compute func() (T, error)) (T, error) {
	if v, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return v.(T), nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		if v, ok := c.entries.Get(key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Purge removes every entry.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Len is the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Size: c.entries.Len()}
}
