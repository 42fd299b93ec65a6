// Package config provides tokmint-cli preferences.
//
// Preferences live in ~/.tokmint/cli.yaml and may be overridden by
// TOKMINT_CLI_* environment variables. Command-line flags take precedence
// over both.
package config
