// Package metric provides Prometheus metrics for tokmint.
//
// Metrics are registered on a private registry together with the Go
// runtime and process collectors, and exposed at /metrics.
//
// Metrics include:
//
//   - Generated tokens by format
//   - Cache hits and misses
//   - Entropy failures and parameter clamps
//   - Request and assembly latency histograms
//   - Configuration reloads
//
// All Registry methods are safe to call on a nil *Registry.
package metric
