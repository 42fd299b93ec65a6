package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/tokmint/internal/infra/confloader"
)

// EnvPrefix prefixes environment overrides, e.g. TOKMINT_CLI_DEFAULT_OUTPUT.
const EnvPrefix = "TOKMINT_CLI_"

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".tokmint", "cli.yaml")
}

// Load loads CLI configuration from path and the environment.
// A missing file yields the defaults.
func Load(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	opts := []confloader.Option{confloader.WithEnvPrefix(EnvPrefix)}
	if _, err := os.Stat(path); err == nil {
		opts = append(opts, confloader.WithConfigFile(path))
	}

	cfg := Default()
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, fmt.Errorf("load cli config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path with owner-only permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode cli config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
