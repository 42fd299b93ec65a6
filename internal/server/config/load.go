package config

import (
	"fmt"

	"github.com/yndnr/tokmint/internal/infra/confloader"
)

// Load reads the configuration file at path over the defaults, applies
// TOKMINT_ environment overrides and verifies the result. An empty path
// loads defaults and environment only.
func Load(path string) (*ServerConfig, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with a final layer of dotted-key values, such
// as {"server.http.addr": ":8080"} from command-line flags, that win over
// the file and the environment.
func LoadWithOverrides(path string, overrides map[string]any) (*ServerConfig, error) {
	cfg := Default()

	opts := []confloader.Option{confloader.WithOverrides(overrides)}
	if path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
