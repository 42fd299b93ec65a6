// Package config defines the server configuration structure.
package config

import "strings"

// Sanitize returns a copy of the config with sensitive fields masked.
//
// This is used for logging and displaying configuration without exposing
// signing keys.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	sanitized := *cfg

	sanitized.Scopes = make([]ScopeSection, len(cfg.Scopes))
	for i, scope := range cfg.Scopes {
		if scope.SigningKey != nil && *scope.SigningKey != "" {
			masked := maskSecret(*scope.SigningKey)
			scope.SigningKey = &masked
		}
		sanitized.Scopes[i] = scope
	}

	return &sanitized
}

// maskSecret masks a secret value for safe logging.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
