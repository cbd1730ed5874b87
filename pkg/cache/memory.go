package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultCapacity bounds a Memory cache created without WithCapacity.
const DefaultCapacity = 1024

type memoryEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// Memory is an in-process Cache with absolute expiry and LRU eviction.
// When the cache reaches its capacity, the least recently used entry is evicted.
type Memory[V any] struct {
	capacity int
	now      func() time.Time
	onEvict  func(key string, value V)

	mu       sync.Mutex
	items    map[string]*list.Element
	eviction *list.List
}

// MemoryOption configures a Memory cache.
type MemoryOption[V any] func(*Memory[V])

// WithCapacity sets the maximum number of entries. Non-positive values are ignored.
func WithCapacity[V any](n int) MemoryOption[V] {
	return func(m *Memory[V]) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// WithClock replaces time.Now. Used by tests to advance time.
func WithClock[V any](now func() time.Time) MemoryOption[V] {
	return func(m *Memory[V]) {
		if now != nil {
			m.now = now
		}
	}
}

// WithEvictCallback is called for entries dropped by capacity, expiry or Remove.
// It runs with the cache lock held and must not call back into the cache.
func WithEvictCallback[V any](fn func(key string, value V)) MemoryOption[V] {
	return func(m *Memory[V]) { m.onEvict = fn }
}

func NewMemory[V any](opts ...MemoryOption[V]) *Memory[V] {
	m := &Memory[V]{
		capacity: DefaultCapacity,
		now:      time.Now,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory[V]) TryGet(_ context.Context, key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	elem, ok := m.items[key]
	if !ok {
		return zero, false
	}

	entry := elem.Value.(*memoryEntry[V])
	if !m.now().Before(entry.expiresAt) {
		m.removeElement(elem)
		return zero, false
	}

	m.eviction.MoveToFront(elem)
	return entry.value, true
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := &memoryEntry[V]{key: key, value: value, expiresAt: m.now().Add(normalizeTTL(ttl))}

	if elem, ok := m.items[key]; ok {
		// Replace wholesale; the old entry is never mutated.
		elem.Value = entry
		m.eviction.MoveToFront(elem)
		return nil
	}

	m.items[key] = m.eviction.PushFront(entry)
	if m.eviction.Len() > m.capacity {
		m.removeElement(m.eviction.Back())
	}
	return nil
}

func (m *Memory[V]) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[key]; ok {
		m.removeElement(elem)
	}
	return nil
}

// Len reports the number of stored entries, including expired ones not yet reaped.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eviction.Len()
}

// Must be called with lock held.
func (m *Memory[V]) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	m.eviction.Remove(elem)
	entry := elem.Value.(*memoryEntry[V])
	delete(m.items, entry.key)

	if m.onEvict != nil {
		m.onEvict(entry.key, entry.value)
	}
}
