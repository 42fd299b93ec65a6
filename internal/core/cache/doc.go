// Package cache provides per-definition TTL caching of generated tokens.
//
// Each token definition owns one Cell, keyed by its definition ID and
// guarded by its own mutex. Cells never hold a lock while a token is being
// generated: a lookup copies the value out and releases, and a store
// re-acquires only to write the finished value. Concurrent misses on the
// same cell may each generate a token; the last write wins.
package cache
