package confloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "TOKMINT_"

// EnvNestingSeparator separates nested keys in environment variable names.
// A single underscore stays part of the key name.
const EnvNestingSeparator = "__"

// Loader layers configuration sources over the values already present in
// a target struct: file, then environment, then overrides.
type Loader struct {
	envPrefix string
	filePath  string
	overrides map[string]any
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the YAML configuration file.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// WithOverrides sets values that win over every other source, typically
// command-line flags. Keys are dotted paths such as "server.http.addr".
func WithOverrides(values map[string]any) Option {
	return func(l *Loader) {
		l.overrides = values
	}
}

// NewLoader creates a configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every configured source and unmarshals the result into
// target. Fields no source mentions keep their current values.
func (l *Loader) Load(target any) error {
	k := koanf.New(".")

	if l.filePath != "" {
		if err := k.Load(file.Provider(l.filePath), yaml.Parser()); err != nil {
			return fmt.Errorf("load config file %s: %w", l.filePath, err)
		}
	}

	if err := k.Load(env.Provider(l.envPrefix, ".", l.envKey), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if len(l.overrides) > 0 {
		if err := k.Load(mapProvider(l.overrides), nil); err != nil {
			return fmt.Errorf("load overrides: %w", err)
		}
	}

	if err := k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// envKey maps TOKMINT_SERVER__HTTP__RATE_LIMIT__RPS to
// server.http.rate_limit.rps.
func (l *Loader) envKey(s string) string {
	s = strings.TrimPrefix(s, l.envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, EnvNestingSeparator, ".")
}
