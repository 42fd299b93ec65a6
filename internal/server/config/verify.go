// Package config defines the server configuration structure.
package config

import (
	"net"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/yndnr/tokmint/internal/core/domain"
)

// Verify validates the configuration. Every problem is reported.
func Verify(cfg *ServerConfig) error {
	var result *multierror.Error

	result = multierror.Append(result, verifyServer(&cfg.Server)...)
	result = multierror.Append(result, verifyLog(&cfg.Log)...)
	result = multierror.Append(result, verifyMetrics(&cfg.Metrics)...)

	if _, err := ToScopeDefinitions(cfg); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func verifyServer(cfg *ServerSection) []error {
	var errs []error
	http := cfg.HTTP

	if http.Addr == "" {
		errs = append(errs, domain.ConfigError("server.http.addr is required"))
	} else if _, _, err := net.SplitHostPort(http.Addr); err != nil {
		errs = append(errs, domain.ConfigError("server.http.addr %q: %v", http.Addr, err))
	}

	if (http.TLSCertFile == "") != (http.TLSKeyFile == "") {
		errs = append(errs, domain.ConfigError("server.http.tls_cert_file and tls_key_file must be set together"))
	}
	for _, path := range []string{http.TLSCertFile, http.TLSKeyFile} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			errs = append(errs, domain.ConfigError("tls file %s: %v", path, err))
		}
	}

	if http.ReadTimeout < 0 || http.WriteTimeout < 0 || http.ShutdownTimeout < 0 {
		errs = append(errs, domain.ConfigError("server.http timeouts must not be negative"))
	}

	if rl := http.RateLimit; rl.Enabled {
		if rl.RPS <= 0 {
			errs = append(errs, domain.ConfigError("server.http.rate_limit.rps must be positive"))
		}
		if rl.Burst < 1 {
			errs = append(errs, domain.ConfigError("server.http.rate_limit.burst must be at least 1"))
		}
		if rl.IdleTimeout <= 0 {
			errs = append(errs, domain.ConfigError("server.http.rate_limit.idle_timeout must be positive"))
		}
	}

	if _, err := http.TrustedNets(); err != nil {
		errs = append(errs, err)
	}

	return errs
}

func verifyLog(cfg *LogSection) []error {
	var errs []error

	switch strings.ToLower(cfg.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, domain.ConfigError("log.level %q is not one of debug, info, warn, error", cfg.Level))
	}

	switch strings.ToLower(cfg.Format) {
	case "", "json", "text", "console":
	default:
		errs = append(errs, domain.ConfigError("log.format %q is not one of json, text", cfg.Format))
	}

	if cfg.File != "" && (cfg.MaxSizeMB < 0 || cfg.MaxBackups < 0 || cfg.MaxAgeDays < 0) {
		errs = append(errs, domain.ConfigError("log rotation limits must not be negative"))
	}

	return errs
}

func verifyMetrics(cfg *MetricsSection) []error {
	if cfg.Enabled && !strings.HasPrefix(cfg.Path, "/") {
		return []error{domain.ConfigError("metrics.path %q must start with /", cfg.Path)}
	}
	return nil
}
