// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:5080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultRateLimitRPS   = 100
	DefaultRateLimitBurst = 200
	DefaultRateLimitIdle  = 10 * time.Minute

	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 28

	DefaultMetricsPath = "/metrics"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:            DefaultHTTPAddr,
				ReadTimeout:     DefaultReadTimeout,
				WriteTimeout:    DefaultWriteTimeout,
				ShutdownTimeout: DefaultShutdownTimeout,
				RateLimit: RateLimitConfig{
					Enabled:     false,
					RPS:         DefaultRateLimitRPS,
					Burst:       DefaultRateLimitBurst,
					IdleTimeout: DefaultRateLimitIdle,
				},
			},
		},
		Log: LogSection{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			MaxSizeMB:  DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
			MaxAgeDays: DefaultMaxAgeDays,
		},
		Metrics: MetricsSection{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
	}
}
