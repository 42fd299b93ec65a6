// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for tokmint-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server" json:"server" yaml:"server"`
	Log     LogSection     `koanf:"log" json:"log" yaml:"log"`
	Metrics MetricsSection `koanf:"metrics" json:"metrics" yaml:"metrics"`
	Scopes  []ScopeSection `koanf:"scopes" json:"scopes,omitempty" yaml:"scopes,omitempty"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http" json:"http" yaml:"http"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string          `koanf:"addr" json:"addr,omitempty" yaml:"addr,omitempty"`
	TLSCertFile     string          `koanf:"tls_cert_file" json:"tls_cert_file,omitempty" yaml:"tls_cert_file,omitempty"`
	TLSKeyFile      string          `koanf:"tls_key_file" json:"tls_key_file,omitempty" yaml:"tls_key_file,omitempty"`
	ReadTimeout     time.Duration   `koanf:"read_timeout" json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration   `koanf:"write_timeout" json:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration   `koanf:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout"`
	RateLimit       RateLimitConfig `koanf:"rate_limit" json:"rate_limit" yaml:"rate_limit"`

	// TrustedProxies lists peers (IPs or CIDRs) whose X-Forwarded-For and
	// X-Real-IP headers are believed. Headers from anyone else are ignored.
	TrustedProxies []string `koanf:"trusted_proxies" json:"trusted_proxies,omitempty" yaml:"trusted_proxies,omitempty"`
}

// RateLimitConfig configures per-client request rate limiting.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled" json:"enabled" yaml:"enabled"`
	RPS     float64 `koanf:"rps" json:"rps" yaml:"rps"`
	Burst   int     `koanf:"burst" json:"burst" yaml:"burst"`

	// IdleTimeout is how long a client's limiter is kept after its last
	// request.
	IdleTimeout time.Duration `koanf:"idle_timeout" json:"idle_timeout" yaml:"idle_timeout"`
}

// LogSection configures logging.
type LogSection struct {
	Level      string `koanf:"level" json:"level,omitempty" yaml:"level,omitempty"`
	Format     string `koanf:"format" json:"format,omitempty" yaml:"format,omitempty"`
	File       string `koanf:"file" json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `koanf:"max_size_mb" json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups" json:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days" json:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `koanf:"compress" json:"compress" yaml:"compress"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	Enabled bool   `koanf:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `koanf:"path" json:"path,omitempty" yaml:"path,omitempty"`
}

// ScopeSection configures token generation for one location.
//
// Pointer fields are optional; an unset field inherits from the enclosing
// location's scope.
type ScopeSection struct {
	// Location is the URL path prefix the scope applies to.
	Location string `koanf:"location" json:"location,omitempty" yaml:"location,omitempty"`

	// OnlyFor restricts generation to request paths matching this regular
	// expression.
	OnlyFor string `koanf:"only_for" json:"only_for,omitempty" yaml:"only_for,omitempty"`

	// Scope defaults for token definitions.
	Length    *int    `koanf:"length" json:"length,omitempty" yaml:"length,omitempty"`
	Format    string  `koanf:"format" json:"format,omitempty" yaml:"format,omitempty"`
	Timestamp *bool   `koanf:"timestamp" json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Prefix    *string `koanf:"prefix" json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix    *string `koanf:"suffix" json:"suffix,omitempty" yaml:"suffix,omitempty"`
	TTL       *int    `koanf:"ttl" json:"ttl,omitempty" yaml:"ttl,omitempty"`

	// Custom alphabet settings.
	Alphabet *string `koanf:"alphabet" json:"alphabet,omitempty" yaml:"alphabet,omitempty"`
	Grouping *int    `koanf:"grouping" json:"grouping,omitempty" yaml:"grouping,omitempty"`

	// Signed metadata settings.
	EncodeMetadata *bool   `koanf:"encode_metadata" json:"encode_metadata,omitempty" yaml:"encode_metadata,omitempty"`
	Expiry         *int    `koanf:"expiry" json:"expiry,omitempty" yaml:"expiry,omitempty"`
	SigningKey     *string `koanf:"signing_key" json:"signing_key,omitempty" yaml:"signing_key,omitempty"`

	Tokens []TokenSection `koanf:"tokens" json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// TokenSection configures one named token.
type TokenSection struct {
	Name      string  `koanf:"name" json:"name,omitempty" yaml:"name,omitempty"`
	Header    string  `koanf:"header" json:"header,omitempty" yaml:"header,omitempty"`
	Length    *int    `koanf:"length" json:"length,omitempty" yaml:"length,omitempty"`
	Format    string  `koanf:"format" json:"format,omitempty" yaml:"format,omitempty"`
	Timestamp *bool   `koanf:"timestamp" json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Prefix    *string `koanf:"prefix" json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix    *string `koanf:"suffix" json:"suffix,omitempty" yaml:"suffix,omitempty"`
	TTL       *int    `koanf:"ttl" json:"ttl,omitempty" yaml:"ttl,omitempty"`
}
