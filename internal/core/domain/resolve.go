// Package domain defines the core domain model for tokmint.
package domain

import "github.com/yndnr/tokmint/pkg/token"

// Params are the effective generation parameters of one definition.
type Params struct {
	Length           int
	Encoding         token.Encoding
	IncludeTimestamp bool
	Prefix           string
	Suffix           string
	TTL              int

	EncodeMetadata bool
	Expiry         int
	SigningKey     string
}

// Signed reports whether the token is wrapped with expiry metadata.
func (p Params) Signed() bool {
	return p.EncodeMetadata && p.Expiry > 0
}

// Drift records a value that was out of range at generation time and was
// replaced with its default.
type Drift struct {
	Field string
	Value int
	Used  int
}

// Resolve computes the effective parameters of def within c. Field
// resolution order is definition, then scope defaults, then built-in
// defaults. Out-of-range values are clamped to their defaults and
// reported as drift.
func (c *Config) Resolve(def TokenDefinition) (Params, []Drift) {
	var drift []Drift

	p := Params{
		Length:           valueOr(pick(def.Length, c.Defaults.Length), DefaultLength),
		IncludeTimestamp: valueOr(pick(def.IncludeTimestamp, c.Defaults.IncludeTimestamp), false),
		Prefix:           valueOr(pick(def.Prefix, c.Defaults.Prefix), ""),
		Suffix:           valueOr(pick(def.Suffix, c.Defaults.Suffix), ""),
		TTL:              valueOr(pick(def.TTL, c.Defaults.TTL), 0),
		EncodeMetadata:   valueOr(c.EncodeMetadata, false),
		Expiry:           valueOr(c.Expiry, 0),
		SigningKey:       valueOr(c.SigningKey, ""),
	}

	if p.Length < MinLength || p.Length > MaxLength {
		drift = append(drift, Drift{Field: "length", Value: p.Length, Used: DefaultLength})
		p.Length = DefaultLength
	}
	if p.TTL < 0 || p.TTL > MaxTTLSeconds {
		drift = append(drift, Drift{Field: "ttl", Value: p.TTL, Used: 0})
		p.TTL = 0
	}
	if p.Expiry < 0 || p.Expiry > MaxExpirySeconds {
		drift = append(drift, Drift{Field: "expiry", Value: p.Expiry, Used: 0})
		p.Expiry = 0
	}

	format := valueOr(pick(def.Format, c.Defaults.Format), token.FormatBase64)
	if !format.Valid() {
		drift = append(drift, Drift{Field: "format", Value: int(format), Used: int(token.FormatBase64)})
		format = token.FormatBase64
	}

	alphabet := valueOr(c.Alphabet, "")
	if len(alphabet) > MaxAlphabetSize {
		drift = append(drift, Drift{Field: "alphabet", Value: len(alphabet), Used: 0})
		alphabet = ""
	}
	grouping := valueOr(c.Grouping, 0)
	if grouping < 0 || grouping > MaxGrouping {
		drift = append(drift, Drift{Field: "grouping", Value: grouping, Used: 0})
		grouping = 0
	}

	p.Encoding = format.Encoding(alphabet, grouping)
	return p, drift
}
