package service

import (
	"sync/atomic"
)

// Registry holds the active scopes and routes request paths to them.
// Lookups are lock-free; Replace swaps the whole set atomically.
type Registry struct {
	scopes atomic.Pointer[[]*Scope]
}

// NewRegistry creates a registry holding scopes.
func NewRegistry(scopes ...*Scope) *Registry {
	r := &Registry{}
	r.store(scopes)
	return r
}

// Lookup returns the scope with the longest location containing path,
// or nil if none does.
func (r *Registry) Lookup(path string) *Scope {
	return findScope(*r.scopes.Load(), path)
}

// Scopes returns the active scopes.
func (r *Registry) Scopes() []*Scope {
	current := *r.scopes.Load()
	out := make([]*Scope, len(current))
	copy(out, current)
	return out
}

// Len returns the number of active scopes.
func (r *Registry) Len() int {
	return len(*r.scopes.Load())
}

// Replace installs a new scope set and closes the caches of the old one.
func (r *Registry) Replace(scopes []*Scope) {
	old := r.store(scopes)
	for _, s := range old {
		s.Close()
	}
}

// Close closes every active scope.
func (r *Registry) Close() {
	r.Replace(nil)
}

func (r *Registry) store(scopes []*Scope) []*Scope {
	next := make([]*Scope, len(scopes))
	copy(next, scopes)
	prev := r.scopes.Swap(&next)
	if prev == nil {
		return nil
	}
	return *prev
}
