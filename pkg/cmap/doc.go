// Package cmap provides a sharded concurrent map.
//
// Keys are spread across a power-of-two number of shards with murmur3;
// each shard has its own RWMutex, so operations on unrelated keys never
// contend on a single lock.
//
// Usage:
//
//	m := cmap.New[string, *Cell]()
//	cell := m.GetOrCreate(id, newCell)
//
// All operations are safe for concurrent use. Read operations (Get, Has,
// Range) take the shard read lock; writes take the shard write lock.
package cmap
