// Package cache holds lookup results for the lifetime of a session.
package cache

import (
	"sync"
)

// Cache is the lookup cache consumed by the word enricher
type Cache interface {
	Get(key string) (any, bool)
	Put(key string, value any)
}

// Store is a thread-safe cache. With capacity 0 it never evicts and lives as
// long as the session that owns it; a positive capacity bounds it with
// least-recently-used eviction.
type Store struct {
	mutex    sync.Mutex
	capacity int
	items    map[string]*node
	head     *node // most recently used
	tail     *node // least recently used
	hits     int64
	misses   int64
}

// node is an element of the recency list
type node struct {
	key   string
	value any
	prev  *node
	next  *node
}

// New creates a store. capacity <= 0 disables eviction.
func New(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}

	s := &Store{
		capacity: capacity,
		items:    make(map[string]*node),
		head:     &node{},
		tail:     &node{},
	}
	s.head.next = s.tail
	s.tail.prev = s.head
	return s
}

// Get retrieves a value and marks it as recently used
func (s *Store) Get(key string) (any, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if n, ok := s.items[key]; ok {
		s.moveToFront(n)
		s.hits++
		return n.value, true
	}

	s.misses++
	return nil, false
}

// Put adds or replaces a value
func (s *Store) Put(key string, value any) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if n, ok := s.items[key]; ok {
		n.value = value
		s.moveToFront(n)
		return
	}

	n := &node{key: key, value: value}
	s.addToFront(n)
	s.items[key] = n

	if s.capacity > 0 && len(s.items) > s.capacity {
		s.evictOldest()
	}
}

// Len returns the number of cached entries
func (s *Store) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.items)
}

// Clear drops every entry and resets statistics
func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.items = make(map[string]*node)
	s.head.next = s.tail
	s.tail.prev = s.head
	s.hits = 0
	s.misses = 0
}

// Stats returns hit/miss statistics
func (s *Store) Stats() Stats {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	total := s.hits + s.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(s.hits) / float64(total) * 100
	}

	return Stats{
		Hits:     s.hits,
		Misses:   s.misses,
		HitRate:  hitRate,
		Size:     len(s.items),
		Capacity: s.capacity,
	}
}

func (s *Store) moveToFront(n *node) {
	s.unlink(n)
	s.addToFront(n)
}

func (s *Store) addToFront(n *node) {
	n.prev = s.head
	n.next = s.head.next
	s.head.next.prev = n
	s.head.next = n
}

func (s *Store) unlink(n *node) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

func (s *Store) evictOldest() {
	oldest := s.tail.prev
	if oldest != s.head {
		s.unlink(oldest)
		delete(s.items, oldest.key)
	}
}

// Stats describes cache effectiveness
type Stats struct {
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	HitRate  float64 `json:"hit_rate_percent"`
	Size     int     `json:"current_size"`
	Capacity int     `json:"max_capacity"`
}

// Nop is a Cache that stores nothing
type Nop struct{}

// Get always misses
func (Nop) Get(string) (any, bool) { return nil, false }

// Put discards the value
func (Nop) Put(string, any) {}
