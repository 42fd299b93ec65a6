// Package domain defines the core domain model for tokmint.
//
// Domain values are pure data without IO dependencies. This package contains:
//
//   - Config: one scope's defaults, global settings and token definitions
//   - TokenDefinition: a named token shape (length, format, caching, affixes)
//   - Merge: parent/child scope resolution with the token-count cap
//   - Validate: configuration-time bound checks
//   - Resolve: per-definition effective parameters with runtime clamping
//   - Errors: coded domain errors
//
// A Config returned by Merge is treated as immutable. Mutable cache state
// lives outside the Config, keyed by TokenDefinition.ID.
package domain
