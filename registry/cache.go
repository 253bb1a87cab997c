package registry

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/spaolacci/murmur3"
	"go.uber.org/atomic"
)

// cacheKey identifies one cached parse (spec.md §4.4 "Caching": keyed by
// (command_id, canonical_input_hash)").
type cacheKey struct {
	commandID string
	inputHash uint64
}

// CanonicalHash hashes raw input into the cache key's second component
// using murmur3, matching the corpus's preference for a non-cryptographic
// fast hash over content-addressed keys.
func CanonicalHash(raw string) uint64 {
	return murmur3.Sum64([]byte(raw))
}

type cacheEntry struct {
	key   cacheKey
	value any
}

// LRU is a bounded, mutex-guarded least-recently-used cache of parse
// results, default-sized 100 per spec.md §4.4 "Cache size is bounded
// (default 100)".
type LRU struct {
	mu       sync.Mutex
	capacity int
	items    map[cacheKey]*list.Element
	order    *list.List

	hits   atomic.Int64
	misses atomic.Int64
}

// DefaultCacheSize is the LRU's default capacity absent an override.
const DefaultCacheSize = 100

// NewLRU builds an LRU with the given capacity, using DefaultCacheSize
// when capacity <= 0.
func NewLRU(capacity int) *LRU {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &LRU{
		capacity: capacity,
		items:    map[cacheKey]*list.Element{},
		order:    list.New(),
	}
}

// Get looks up (commandID, raw) in the cache, promoting a hit to
// most-recently-used.
func (c *LRU) Get(commandID, raw string) (any, bool) {
	key := cacheKey{commandID: commandID, inputHash: CanonicalHash(raw)}
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		c.misses.Inc()
		return nil, false
	}
	c.order.MoveToFront(el)
	c.hits.Inc()
	return el.Value.(*cacheEntry).value, true
}

// Put inserts or updates the cached value for (commandID, raw), evicting
// the least-recently-used entry if the cache is at capacity.
func (c *LRU) Put(commandID, raw string, value any) {
	key := cacheKey{commandID: commandID, inputHash: CanonicalHash(raw)}
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*cacheEntry).value = value
		c.order.MoveToFront(el)
		return
	}
	el := c.order.PushFront(&cacheEntry{key: key, value: value})
	c.items[key] = el
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}
}

// InvalidateCommand drops every cached entry for commandID, used when a
// command's schema is mutated (spec.md §4.4 "entries are invalidated when
// the command is mutated").
func (c *LRU) InvalidateCommand(commandID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, el := range c.items {
		if key.commandID == commandID {
			c.order.Remove(el)
			delete(c.items, key)
		}
	}
}

// Stats reports cumulative hit/miss counters, using go.uber.org/atomic the
// way SPEC_FULL §6 wires it for the registry's counters.
func (c *LRU) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%s#%x", k.commandID, k.inputHash)
}
