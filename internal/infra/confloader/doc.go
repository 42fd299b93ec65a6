// Package confloader provides configuration loading mechanism.
//
// This package implements a configuration loader that supports
// multiple sources using koanf as the underlying library.
//
// Features:
//
//   - Multiple Sources: YAML files, environment variables, flag overrides
//   - Watch Support: debounced change notification for config files
//   - Type Safety: Unmarshaling into typed structs
//
// Priority (highest to lowest):
//
//  1. Overrides (command-line flags, dotted keys)
//  2. Environment variables (TOKMINT_ prefix, "__" between levels)
//  3. Configuration file
//  4. Values already present in the target struct
package confloader
