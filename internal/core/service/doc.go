// Package service provides the token generation services for tokmint.
//
// This package contains:
//
//   - Scope: an immutable merged configuration plus the cache it owns
//   - Assembler: per-request generation of every token a scope defines
//   - Registry: location-prefix lookup of scopes with atomic replacement
//
// A request runs synchronously through the Assembler. The only mutable
// state shared between requests is each definition's cache cell.
package service
