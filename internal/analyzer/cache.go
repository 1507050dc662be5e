package analyzer

import (
	"strconv"
	"sync"

	"github.com/couchcryptid/volcano-analytics/internal/observability"
)

// Cached wraps an Analyzer and memoizes the parameterized queries in an
// in-memory LRU. All other queries pass straight through to the Analyzer.
type Cached struct {
	*Analyzer
	byCountry *lruCache[int]
	elevated  *lruCache[[]string]
	metrics   *observability.Metrics
}

// NewCached creates a cache decorator around a. metrics may be nil.
func NewCached(a *Analyzer, maxEntries int, metrics *observability.Metrics) *Cached {
	return &Cached{
		Analyzer:  a,
		byCountry: newLRUCache[int](maxEntries),
		elevated:  newLRUCache[[]string](maxEntries),
		metrics:   metrics,
	}
}

// CountByCountry serves Analyzer.CountByCountry from the LRU.
func (c *Cached) CountByCountry(country string) (int, error) {
	if n, ok := c.byCountry.get(country); ok {
		c.observe("count_by_country", "hit")
		return n, nil
	}
	c.observe("count_by_country", "miss")
	n, err := c.Analyzer.CountByCountry(country)
	if err != nil {
		return 0, err
	}
	c.byCountry.put(country, n)
	return n, nil
}

// ElevatedAbove serves Analyzer.ElevatedAbove from the LRU. Callers get their own copy.
func (c *Cached) ElevatedAbove(threshold float64) ([]string, error) {
	key := strconv.FormatFloat(threshold, 'g', -1, 64)
	if names, ok := c.elevated.get(key); ok {
		c.observe("elevated_above", "hit")
		return append([]string{}, names...), nil
	}
	c.observe("elevated_above", "miss")
	names, err := c.Analyzer.ElevatedAbove(threshold)
	if err != nil {
		return nil, err
	}
	c.elevated.put(key, names)
	return append([]string{}, names...), nil
}

func (c *Cached) observe(query, result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.CacheLookups.WithLabelValues(query, result).Inc()
}

// lruCache is a simple thread-safe LRU cache keyed by string.
type lruCache[V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key   string
	value V
	prev  *entry[V]
	next  *entry[V]
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache[V]{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) remove(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
