// Package cache provides a thread-safe passage text cache that stays within
// per-book verse budgets.
package cache

import (
	"sync"
	"time"
)

// DefaultVerseLimit is the consecutive-verse and per-book budget used when a
// Limits field is left zero.
const DefaultVerseLimit = 1000

// Limits bounds what a BudgetCache may hold.
type Limits struct {
	// ConsecutiveVerses rejects any single entry longer than this.
	ConsecutiveVerses int
	// PerBook caps the total verses cached from specific books.
	PerBook map[int]int
	// DefaultBook caps books absent from PerBook.
	DefaultBook int
	// TTL expires entries this long after they were stored. Zero keeps
	// entries until evicted.
	TTL time.Duration
}

func (l Limits) consecutive() int {
	if l.ConsecutiveVerses > 0 {
		return l.ConsecutiveVerses
	}
	return DefaultVerseLimit
}

func (l Limits) book(book int) int {
	if n, ok := l.PerBook[book]; ok {
		return n
	}
	if l.DefaultBook > 0 {
		return l.DefaultBook
	}
	return DefaultVerseLimit
}

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

type entry[V any] struct {
	book   int
	length int
	value  V
	stored time.Time
}

// BudgetCache stores values against keys, tracking how many verses each
// entry covers. When a book's total exceeds its budget the oldest entries
// from that book are evicted first.
type BudgetCache[K comparable, V any] struct {
	mu      sync.Mutex
	limits  Limits
	entries map[K]entry[V]
	order   map[int][]K // per book, oldest first
	usage   map[int]int
	stats   Stats
	now     func() time.Time
}

// New creates an empty BudgetCache.
func New[K comparable, V any](limits Limits) *BudgetCache[K, V] {
	return &BudgetCache[K, V]{
		limits:  limits,
		entries: make(map[K]entry[V]),
		order:   make(map[int][]K),
		usage:   make(map[int]int),
		now:     time.Now,
	}
}

// Set caches value under key as length verses of book. It reports whether
// the value is held afterwards: entries longer than the consecutive-verse
// limit are refused, and an entry larger than its book budget is evicted
// immediately.
func (c *BudgetCache[K, V]) Set(key K, book, length int, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if length > c.limits.consecutive() {
		return false
	}
	if _, ok := c.entries[key]; ok {
		c.removeLocked(key)
	}

	c.entries[key] = entry[V]{book: book, length: length, value: value, stored: c.now()}
	c.order[book] = append(c.order[book], key)
	c.usage[book] += length

	for c.usage[book] > c.limits.book(book) && len(c.order[book]) > 0 {
		c.removeLocked(c.order[book][0])
		c.stats.Evictions++
	}
	_, ok := c.entries[key]
	return ok
}

// Get returns the value stored under key. Expired entries are dropped.
func (c *BudgetCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	if c.limits.TTL > 0 && c.now().Sub(e.stored) >= c.limits.TTL {
		c.removeLocked(key)
		c.stats.Evictions++
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	return e.value, true
}

// Delete removes key if present.
func (c *BudgetCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		c.removeLocked(key)
	}
}

// Usage returns the number of verses currently cached from book.
func (c *BudgetCache[K, V]) Usage(book int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usage[book]
}

// Len returns the number of entries, including any not yet found expired.
func (c *BudgetCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *BudgetCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Size = len(c.entries)
	return s
}

// Invalidate clears the cache. Statistics are kept.
func (c *BudgetCache[K, V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]entry[V])
	c.order = make(map[int][]K)
	c.usage = make(map[int]int)
}

// removeLocked drops key from every index. MUST be called with mu held and
// key present.
func (c *BudgetCache[K, V]) removeLocked(key K) {
	e := c.entries[key]
	delete(c.entries, key)

	keys := c.order[e.book]
	for i, k := range keys {
		if k == key {
			c.order[e.book] = append(keys[:i:i], keys[i+1:]...)
			break
		}
	}
	if len(c.order[e.book]) == 0 {
		delete(c.order, e.book)
	}

	c.usage[e.book] -= e.length
	if c.usage[e.book] == 0 {
		delete(c.usage, e.book)
	}
}
