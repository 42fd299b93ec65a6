// Package cmap provides a sharded concurrent map.
package cmap

import (
	"fmt"
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the default number of shards.
const DefaultShardCount = 16

// Map is a concurrent-safe sharded map.
type Map[K comparable, V any] struct {
	shards    []*shard[K, V]
	shardMask uint64
}

type shard[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// New creates a new sharded map with the default shard count.
func New[K comparable, V any]() *Map[K, V] {
	return NewWithShards[K, V](DefaultShardCount)
}

// NewWithShards creates a new sharded map with the specified shard count.
// shardCount must be a power of 2; other values select DefaultShardCount.
func NewWithShards[K comparable, V any](shardCount int) *Map[K, V] {
	if shardCount <= 0 || shardCount&(shardCount-1) != 0 {
		shardCount = DefaultShardCount
	}

	m := &Map[K, V]{
		shards:    make([]*shard[K, V], shardCount),
		shardMask: uint64(shardCount - 1),
	}
	for i := range m.shards {
		m.shards[i] = &shard[K, V]{items: make(map[K]V)}
	}
	return m
}

// getShard returns the shard owning key.
func (m *Map[K, V]) getShard(key K) *shard[K, V] {
	var h uint64
	switch k := any(key).(type) {
	case string:
		h = murmur3.Sum64([]byte(k))
	default:
		h = murmur3.Sum64([]byte(fmt.Sprint(k)))
	}
	return m.shards[h&m.shardMask]
}

// Get retrieves a value by key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	s := m.getShard(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.items[key]
	return val, ok
}

// Set stores a key-value pair.
func (m *Map[K, V]) Set(key K, value V) {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// GetOrCreate returns the value for key, calling create to build and store
// it if absent. create runs under the shard write lock and must not touch
// the map.
func (m *Map[K, V]) GetOrCreate(key K, create func() V) V {
	s := m.getShard(key)

	s.mu.RLock()
	val, ok := s.items[key]
	s.mu.RUnlock()
	if ok {
		return val
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if val, ok = s.items[key]; ok {
		return val
	}
	val = create()
	s.items[key] = val
	return val
}

// Delete removes a key.
func (m *Map[K, V]) Delete(key K) {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Has checks if a key exists.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Count returns the total number of items.
func (m *Map[K, V]) Count() int {
	count := 0
	for _, s := range m.shards {
		s.mu.RLock()
		count += len(s.items)
		s.mu.RUnlock()
	}
	return count
}

// Clear removes all items.
func (m *Map[K, V]) Clear() {
	for _, s := range m.shards {
		s.mu.Lock()
		s.items = make(map[K]V)
		s.mu.Unlock()
	}
}
