package service

import (
	"sort"
	"strings"

	"github.com/yndnr/tokmint/internal/core/cache"
	"github.com/yndnr/tokmint/internal/core/domain"
	"github.com/yndnr/tokmint/internal/telemetry/logger"
	"github.com/yndnr/tokmint/pkg/token"
)

// Scope is one configured location with its effective configuration.
type Scope struct {
	Location string
	Config   *domain.Config

	cache *cache.Store
}

// NewScope creates a scope owning a fresh cache.
func NewScope(location string, cfg *domain.Config) *Scope {
	if cfg == nil {
		cfg = domain.NewConfig()
	}
	return &Scope{
		Location: normalizeLocation(location),
		Config:   cfg,
		cache:    cache.New(),
	}
}

// Cache returns the scope's token cache.
func (s *Scope) Cache() *cache.Store {
	return s.cache
}

// Close releases the cache. In-flight requests still holding the scope
// generate without caching.
func (s *Scope) Close() {
	s.cache.Close()
}

// TokenPrefixes returns the distinct non-empty prefixes the scope's tokens
// are generated with.
func (s *Scope) TokenPrefixes() []string {
	seen := make(map[string]bool)
	var prefixes []string
	for _, def := range s.Config.Tokens {
		params, _ := s.Config.Resolve(def)
		if params.Prefix != "" && !seen[params.Prefix] {
			seen[params.Prefix] = true
			prefixes = append(prefixes, params.Prefix)
		}
	}
	return prefixes
}

// Contains reports whether path falls under the scope's location.
func (s *Scope) Contains(path string) bool {
	return locationContains(s.Location, path)
}

// ScopeDefinition is a scope as configured, before inheritance.
type ScopeDefinition struct {
	Location string
	Config   *domain.Config
}

// BuildScopes resolves inheritance between scope definitions. Each
// definition is merged into its nearest enclosing location, so a scope at
// /api/v1 inherits from /api, which inherits from /.
func BuildScopes(defs []ScopeDefinition, log logger.Logger) []*Scope {
	if log == nil {
		log = logger.Default()
	}

	sorted := make([]ScopeDefinition, len(defs))
	copy(sorted, defs)
	for i := range sorted {
		sorted[i].Location = normalizeLocation(sorted[i].Location)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Location) < len(sorted[j].Location)
	})

	scopes := make([]*Scope, 0, len(sorted))
	for _, def := range sorted {
		var parent *domain.Config
		if enclosing := findScope(scopes, def.Location); enclosing != nil {
			parent = enclosing.Config
		}

		merged, dropped := domain.Merge(parent, def.Config)
		if dropped > 0 {
			log.Warn("token definitions dropped",
				"scope", def.Location,
				"dropped", dropped,
				"limit", domain.MaxTokens)
		}
		scopes = append(scopes, NewScope(def.Location, merged))
	}
	return scopes
}

// findScope returns the scope with the longest location containing path.
func findScope(scopes []*Scope, path string) *Scope {
	var best *Scope
	for _, s := range scopes {
		if !s.Contains(path) {
			continue
		}
		if best == nil || len(s.Location) > len(best.Location) {
			best = s
		}
	}
	return best
}

func normalizeLocation(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return "/"
	}
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	if len(location) > 1 {
		location = strings.TrimRight(location, "/")
		if location == "" {
			location = "/"
		}
	}
	return location
}

// locationContains matches whole path segments: /api contains /api and
// /api/users but not /apis.
func locationContains(location, path string) bool {
	if location == "/" {
		return true
	}
	if !strings.HasPrefix(path, location) {
		return false
	}
	return len(path) == len(location) || path[len(location)] == '/'
}

// Warnings lists configuration choices that are valid but probably not
// intended, such as a custom format with no alphabet to draw from.
func (s *Scope) Warnings() []string {
	var warnings []string
	cfg := s.Config

	for _, def := range cfg.Tokens {
		params, _ := cfg.Resolve(def)
		if params.Encoding.Format() == token.FormatCustom && len(valueOrEmpty(cfg.Alphabet)) < domain.MinAlphabetSize {
			warnings = append(warnings, "token "+def.Name+": custom format without an alphabet falls back to hex")
		}
	}
	if valueOrFalse(cfg.EncodeMetadata) && valueOrZero(cfg.Expiry) > 0 && valueOrEmpty(cfg.SigningKey) == "" {
		warnings = append(warnings, "metadata encoding enabled without a signing key, tokens are unsigned")
	}
	if valueOrFalse(cfg.EncodeMetadata) && valueOrZero(cfg.Expiry) == 0 {
		warnings = append(warnings, "metadata encoding enabled with zero expiry has no effect")
	}
	return warnings
}

func valueOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func valueOrFalse(p *bool) bool {
	return p != nil && *p
}

func valueOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
