package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/tokmint/internal/core/domain"
	"github.com/yndnr/tokmint/pkg/cmap"
)

// Cell holds the last generated value of one token definition.
type Cell struct {
	mu          sync.Mutex
	value       string
	generatedAt int64 // unix seconds
	valid       bool
}

// Lookup returns the cached value if it is younger than ttl seconds.
// A value stamped in the future (the clock moved backward) is discarded.
func (c *Cell) Lookup(now time.Time, ttl int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || ttl <= 0 {
		return "", false
	}

	elapsed := now.Unix() - c.generatedAt
	if elapsed < 0 {
		c.invalidate()
		return "", false
	}
	if elapsed >= int64(ttl) {
		return "", false
	}
	return c.value, true
}

// Store records value as generated at now.
func (c *Cell) Store(value string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
	c.generatedAt = now.Unix()
	c.valid = true
}

// Reset empties the cell.
func (c *Cell) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidate()
}

func (c *Cell) invalidate() {
	c.value = ""
	c.generatedAt = 0
	c.valid = false
}

// Store maps definition IDs to cells. It is safe for concurrent use.
type Store struct {
	cells  *cmap.Map[string, *Cell]
	closed atomic.Bool
}

// New creates an empty cache store.
func New() *Store {
	return &Store{cells: cmap.New[string, *Cell]()}
}

// Cell returns the cell for a definition ID, creating it on first use.
// It returns domain.ErrCacheUnavailable when the store is nil or closed;
// callers should then generate without caching.
func (s *Store) Cell(id string) (*Cell, error) {
	if s == nil || s.closed.Load() {
		return nil, domain.ErrCacheUnavailable
	}
	return s.cells.GetOrCreate(id, func() *Cell { return &Cell{} }), nil
}

// Get looks up a cached value for id.
func (s *Store) Get(id string, now time.Time, ttl int) (string, bool, error) {
	cell, err := s.Cell(id)
	if err != nil {
		return "", false, err
	}
	v, ok := cell.Lookup(now, ttl)
	return v, ok, nil
}

// Put stores value for id.
func (s *Store) Put(id, value string, now time.Time) error {
	cell, err := s.Cell(id)
	if err != nil {
		return err
	}
	cell.Store(value, now)
	return nil
}

// Len returns the number of allocated cells.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.cells.Count()
}

// Close drops all cells. Later calls return domain.ErrCacheUnavailable.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.closed.Store(true)
	s.cells.Clear()
}
