package reload

import (
	"sync"

	"github.com/yndnr/tokmint/internal/core/service"
	"github.com/yndnr/tokmint/internal/infra/confloader"
	"github.com/yndnr/tokmint/internal/server/config"
	"github.com/yndnr/tokmint/internal/telemetry/logger"
	"github.com/yndnr/tokmint/internal/telemetry/metric"
)

// Reload outcomes recorded in the config_reloads_total metric.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// BuildScopes converts the configured scope sections into scopes with
// inheritance resolved, logging any suspicious settings. The token
// prefixes of the new scopes become the logger's value masks.
func BuildScopes(cfg *config.ServerConfig, log logger.Logger) ([]*service.Scope, error) {
	defs, err := config.ToScopeDefinitions(cfg)
	if err != nil {
		return nil, err
	}

	scopes := service.BuildScopes(defs, log)
	var prefixes []string
	for _, s := range scopes {
		for _, w := range s.Warnings() {
			log.Warn("scope configuration warning", "scope", s.Location, "warning", w)
		}
		prefixes = append(prefixes, s.TokenPrefixes()...)
	}
	logger.SetTokenPrefixes(prefixes)
	return scopes, nil
}

// Reloader reloads scopes from a configuration file into a registry.
type Reloader struct {
	path     string
	registry *service.Registry
	log      logger.Logger
	metrics  *metric.Registry

	// overrides are re-applied on every reload so flags keep winning.
	overrides map[string]any

	mu sync.Mutex
}

// Option configures a Reloader.
type Option func(*Reloader)

// WithOverrides sets the dotted-key values layered over each reloaded
// file.
func WithOverrides(values map[string]any) Option {
	return func(r *Reloader) {
		r.overrides = values
	}
}

// New creates a Reloader for the configuration file at path.
func New(path string, registry *service.Registry, log logger.Logger, metrics *metric.Registry, opts ...Option) *Reloader {
	if log == nil {
		log = logger.Default()
	}
	r := &Reloader{
		path:     path,
		registry: registry,
		log:      log,
		metrics:  metrics,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reload loads and verifies the configuration file and, if it is valid,
// replaces the registry's scopes and applies the new log level.
// Concurrent calls are serialized.
func (r *Reloader) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, err := config.LoadWithOverrides(r.path, r.overrides)
	if err != nil {
		r.fail(err)
		return err
	}
	scopes, err := BuildScopes(cfg, r.log)
	if err != nil {
		r.fail(err)
		return err
	}

	r.registry.Replace(scopes)
	logger.SetLevel(cfg.Log.Level)

	r.metrics.RecordReload(ResultOK)
	r.metrics.SetScopes(len(scopes))
	r.log.Info("configuration reloaded",
		"file", r.path,
		"scopes", len(scopes))
	return nil
}

func (r *Reloader) fail(err error) {
	r.metrics.RecordReload(ResultError)
	r.log.Error("configuration reload rejected, keeping active scopes",
		"file", r.path,
		"error", err)
}

// Watch reloads whenever w reports a change to the configuration file.
func (r *Reloader) Watch(w *confloader.Watcher) error {
	if err := w.Watch(r.path); err != nil {
		return err
	}
	w.OnChange(func(string) {
		_ = r.Reload()
	})
	return nil
}
