// Package config defines the server configuration structure.
package config

import (
	"fmt"
	"regexp"

	"github.com/hashicorp/go-multierror"

	"github.com/yndnr/tokmint/internal/core/domain"
	"github.com/yndnr/tokmint/internal/core/service"
	"github.com/yndnr/tokmint/internal/telemetry/logger"
)

// ToScopeDefinitions converts every scope section into a validated
// domain configuration. Inheritance between scopes is resolved later by
// service.BuildScopes.
func ToScopeDefinitions(cfg *ServerConfig) ([]service.ScopeDefinition, error) {
	if cfg == nil {
		return nil, fmt.Errorf("server config is nil")
	}

	var result *multierror.Error
	defs := make([]service.ScopeDefinition, 0, len(cfg.Scopes))
	seen := make(map[string]bool, len(cfg.Scopes))

	for _, section := range cfg.Scopes {
		location := section.Location
		if location == "" {
			location = "/"
		}
		if seen[location] {
			result = multierror.Append(result, domain.ConfigError("duplicate scope location %q", location))
			continue
		}
		seen[location] = true

		dc, err := section.ToDomain()
		if err != nil {
			result = multierror.Append(result, multierror.Prefix(err, fmt.Sprintf("scope %s:", location)))
			continue
		}
		defs = append(defs, service.ScopeDefinition{Location: location, Config: dc})
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return defs, nil
}

// ToDomain converts the section into a domain configuration and
// validates it.
func (s ScopeSection) ToDomain() (*domain.Config, error) {
	var result *multierror.Error

	cfg := &domain.Config{
		Defaults: domain.Defaults{
			Length:           s.Length,
			IncludeTimestamp: s.Timestamp,
			Prefix:           s.Prefix,
			Suffix:           s.Suffix,
			TTL:              s.TTL,
		},
		Alphabet:       s.Alphabet,
		Grouping:       s.Grouping,
		Expiry:         s.Expiry,
		EncodeMetadata: s.EncodeMetadata,
		SigningKey:     s.SigningKey,
	}

	if s.OnlyFor != "" {
		re, err := regexp.Compile(s.OnlyFor)
		if err != nil {
			result = multierror.Append(result, domain.ConfigError("malformed only_for pattern %q: %v", s.OnlyFor, err))
		}
		cfg.URLPattern = re
	}

	if s.Format != "" {
		f, err := domain.ParseFormat(s.Format)
		if err != nil {
			result = multierror.Append(result, err)
		} else {
			cfg.Defaults.Format = &f
		}
	}

	for _, ts := range s.Tokens {
		def := domain.TokenDefinition{
			Name:             ts.Name,
			Header:           ts.Header,
			Length:           ts.Length,
			IncludeTimestamp: ts.Timestamp,
			Prefix:           ts.Prefix,
			Suffix:           ts.Suffix,
			TTL:              ts.TTL,
		}
		if ts.Format != "" {
			f, err := domain.ParseFormat(ts.Format)
			if err != nil {
				result = multierror.Append(result, multierror.Prefix(err, fmt.Sprintf("token %s:", ts.Name)))
				continue
			}
			def.Format = &f
		}
		if err := cfg.AddToken(def); err != nil {
			result = multierror.Append(result, err)
			break
		}
	}

	if err := cfg.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ToLoggerConfig converts the log section into a logger configuration.
func ToLoggerConfig(cfg *LogSection) logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = cfg.Level
	lc.Format = cfg.Format
	if cfg.File != "" {
		lc.File = logger.FileConfig{
			Path:       cfg.File,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
	}
	return lc
}
