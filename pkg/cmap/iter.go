// Package cmap provides a sharded concurrent map.
package cmap

// Range iterates over all key-value pairs.
//
// The callback returns false to stop iteration. Shards are locked one at a
// time, so the view is not a consistent snapshot.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, s := range m.shards {
		s.mu.RLock()
		for k, v := range s.items {
			if !fn(k, v) {
				s.mu.RUnlock()
				return
			}
		}
		s.mu.RUnlock()
	}
}

// Keys returns all keys.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Count())
	m.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// ShardCount returns the number of shards.
func (m *Map[K, V]) ShardCount() int {
	return len(m.shards)
}

// ShardSizes returns the number of items in each shard.
func (m *Map[K, V]) ShardSizes() []int {
	sizes := make([]int, len(m.shards))
	for i, s := range m.shards {
		s.mu.RLock()
		sizes[i] = len(s.items)
		s.mu.RUnlock()
	}
	return sizes
}
