// Package config defines the CLI configuration structure.
package config

// CLIConfig holds tokmint-cli preferences, read from ~/.tokmint/cli.yaml.
type CLIConfig struct {
	// ConfigFile is the server configuration used when --config is omitted.
	ConfigFile string `koanf:"config_file" yaml:"config_file,omitempty"`

	// DefaultOutput is table, json or yaml.
	DefaultOutput string `koanf:"default_output" yaml:"default_output"`

	// Wide shows optional table columns by default.
	Wide bool `koanf:"wide" yaml:"wide,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultOutput: "table",
	}
}
