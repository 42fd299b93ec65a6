// Package config provides server configuration for tokmint.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Business validation (addresses, rate limits, scopes)
//   - sanitize.go: Log sanitization (hide signing keys)
//   - scopes.go: Conversion of scope sections into domain configuration
//
// Configuration is loaded via internal/infra/confloader and supports
// files and environment variables.
package config
