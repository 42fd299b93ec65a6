// Package domain defines the core domain model for tokmint.
package domain

import (
	"github.com/hashicorp/go-multierror"

	"github.com/yndnr/tokmint/pkg/token"
)

// Validate checks every configured value against its bounds. All problems
// are reported together as a multierror of *DomainError values.
func (c *Config) Validate() error {
	var result *multierror.Error

	if len(c.Tokens) > MaxTokens {
		result = multierror.Append(result, ErrTooManyTokens.WithDetails("scope has more than 50 token definitions"))
	}

	result = multierror.Append(result, c.Defaults.validate("default")...)

	if c.Alphabet != nil {
		if err := ValidateAlphabet(*c.Alphabet); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if c.Grouping != nil && (*c.Grouping < 0 || *c.Grouping > MaxGrouping) {
		result = multierror.Append(result, ConfigError("alphabet grouping %d out of range 0..%d", *c.Grouping, MaxGrouping))
	}
	if c.Expiry != nil && (*c.Expiry < 0 || *c.Expiry > MaxExpirySeconds) {
		result = multierror.Append(result, ConfigError("expiry %d out of range 0..%d", *c.Expiry, MaxExpirySeconds))
	}

	// Names may repeat: every definition is generated, as after a merge
	// that re-declares an inherited name.
	for _, def := range c.Tokens {
		if def.Name == "" {
			result = multierror.Append(result, ConfigError("token definition without a name"))
			continue
		}

		d := Defaults{
			Length:           def.Length,
			Format:           def.Format,
			IncludeTimestamp: def.IncludeTimestamp,
			Prefix:           def.Prefix,
			Suffix:           def.Suffix,
			TTL:              def.TTL,
		}
		result = multierror.Append(result, d.validate("token "+def.Name)...)
	}

	return result.ErrorOrNil()
}

func (d Defaults) validate(where string) []error {
	var errs []error
	if d.Length != nil && (*d.Length < MinLength || *d.Length > MaxLength) {
		errs = append(errs, ConfigError("%s: length %d out of range %d..%d", where, *d.Length, MinLength, MaxLength))
	}
	if d.TTL != nil && (*d.TTL < 0 || *d.TTL > MaxTTLSeconds) {
		errs = append(errs, ConfigError("%s: ttl %d out of range 0..%d", where, *d.TTL, MaxTTLSeconds))
	}
	if d.Format != nil && !d.Format.Valid() {
		errs = append(errs, ConfigError("%s: unknown format %d", where, *d.Format))
	}
	return errs
}

// ValidateAlphabet checks that s holds between 2 and 256 distinct bytes.
func ValidateAlphabet(s string) error {
	if len(s) < MinAlphabetSize || len(s) > MaxAlphabetSize {
		return ConfigError("alphabet length %d out of range %d..%d", len(s), MinAlphabetSize, MaxAlphabetSize)
	}
	var seen [256]bool
	for i := 0; i < len(s); i++ {
		if seen[s[i]] {
			return ConfigError("alphabet contains duplicate character %q", s[i])
		}
		seen[s[i]] = true
	}
	return nil
}

// ParseFormat parses a format name, reporting unknown names as
// configuration errors.
func ParseFormat(s string) (token.Format, error) {
	f, err := token.ParseFormat(s)
	if err != nil {
		return f, ConfigError("%v", err)
	}
	return f, nil
}
