// Package cache provides the in-memory query caches that guarantee at
// most one provider call per distinct query within a session.
package cache

import (
	"strings"
	"sync"
)

// DefaultMaxEntries bounds a cache when no explicit cap is configured.
const DefaultMaxEntries = 256

// Normalizer maps a raw query to its cache key.
type Normalizer func(string) string

// TrimLower is the recipe-search normalization: trimmed and lower-cased.
func TrimLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Raw keys on the unmodified string. The lesson cache uses it, so
// "Risotto" and "risotto " remain distinct topics.
func Raw(s string) string {
	return s
}

// QueryCache is a thread-safe map from normalized query string to a
// previously fetched value, with LRU eviction past maxSize. Entries never
// expire; the cache lives exactly as long as its owning panel.
type QueryCache[V any] struct {
	normalize Normalizer
	maxSize   int

	mu    sync.Mutex
	items map[string]*cacheNode[V]
	head  *cacheNode[V]
	tail  *cacheNode[V]
}

// cacheNode is a doubly-linked LRU list node holding one cached value.
type cacheNode[V any] struct {
	key   string
	value V
	prev  *cacheNode[V]
	next  *cacheNode[V]
}

// New creates a QueryCache using the given key normalizer. maxSize <= 0
// falls back to DefaultMaxEntries.
func New[V any](normalize Normalizer, maxSize int) *QueryCache[V] {
	if maxSize <= 0 {
		maxSize = DefaultMaxEntries
	}
	c := &QueryCache[V]{
		normalize: normalize,
		maxSize:   maxSize,
		items:     make(map[string]*cacheNode[V]),
		head:      &cacheNode[V]{},
		tail:      &cacheNode[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the cached value for query, if present. A hit returns the
// stored value itself (by reference for slice and pointer values) and
// marks it most recently used.
func (c *QueryCache[V]) Get(query string) (V, bool) {
	key := c.normalize(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(node)
	return node.value, true
}

// Put stores value under the normalized query key, evicting the least
// recently used entry when the cache is full.
func (c *QueryCache[V]) Put(query string, value V) {
	key := c.normalize(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.items[key]; ok {
		node.value = value
		c.moveToFront(node)
		return
	}

	node := &cacheNode[V]{key: key, value: value}
	c.items[key] = node
	c.addToFront(node)

	for len(c.items) > c.maxSize {
		lru := c.tail.prev
		if lru == c.head {
			break
		}
		c.remove(lru)
		delete(c.items, lru.key)
	}
}

// Len returns the number of cached entries.
func (c *QueryCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *QueryCache[V]) addToFront(node *cacheNode[V]) {
	node.prev = c.head
	node.next = c.head.next
	c.head.next.prev = node
	c.head.next = node
}

func (c *QueryCache[V]) remove(node *cacheNode[V]) {
	node.prev.next = node.next
	node.next.prev = node.prev
}

func (c *QueryCache[V]) moveToFront(node *cacheNode[V]) {
	c.remove(node)
	c.addToFront(node)
}
