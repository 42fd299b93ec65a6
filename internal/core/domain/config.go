// Package domain defines the core domain model for tokmint.
package domain

import (
	"regexp"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/tokmint/pkg/token"
)

// Configuration bounds.
const (
	// MaxTokens caps the token definitions in one scope, including inherited ones.
	MaxTokens = 50

	MinLength     = token.MinLength
	MaxLength     = token.MaxLength
	DefaultLength = token.DefaultLength

	// MaxTTLSeconds is the longest cache TTL (24 hours).
	MaxTTLSeconds = 86400

	// MaxExpirySeconds is the longest metadata expiry (1 year).
	MaxExpirySeconds = 31536000

	MinAlphabetSize = 2
	MaxAlphabetSize = 256

	// MaxGrouping is the largest custom-alphabet group size.
	MaxGrouping = 128
)

// Defaults are the per-scope values a TokenDefinition inherits for any
// field it leaves unset. A nil field is unset.
type Defaults struct {
	Length           *int
	Format           *token.Format
	IncludeTimestamp *bool
	Prefix           *string
	Suffix           *string
	TTL              *int
}

// TokenDefinition describes one named token.
type TokenDefinition struct {
	// ID identifies this definition within its scope. It keys the cache
	// cell, so a fresh ID means an empty cache.
	ID string

	// Name is the variable name the token is published under.
	Name string

	// Header optionally names a response header to emit the token in.
	Header string

	Length           *int
	Format           *token.Format
	IncludeTimestamp *bool
	Prefix           *string
	Suffix           *string
	TTL              *int
}

// Config is the resolved configuration of one scope.
type Config struct {
	Defaults Defaults

	// URLPattern restricts generation to matching request paths.
	// Nil matches every path.
	URLPattern *regexp.Regexp

	Alphabet       *string
	Grouping       *int
	Expiry         *int
	EncodeMetadata *bool
	SigningKey     *string

	// Tokens is ordered; order is preserved through Merge.
	Tokens []TokenDefinition
}

// NewConfig returns an empty scope configuration.
func NewConfig() *Config {
	return &Config{}
}

// AddToken appends def, assigning it an ID if it has none.
func (c *Config) AddToken(def TokenDefinition) error {
	if len(c.Tokens) >= MaxTokens {
		return ErrTooManyTokens.WithDetails(def.Name)
	}
	if def.ID == "" {
		def.ID = NewDefinitionID()
	}
	c.Tokens = append(c.Tokens, def)
	return nil
}

// Matches reports whether a request path is eligible for generation.
func (c *Config) Matches(path string) bool {
	return c.URLPattern == nil || c.URLPattern.MatchString(path)
}

// NewDefinitionID returns a new lowercase ULID.
func NewDefinitionID() string {
	return strings.ToLower(ulid.Make().String())
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// pick returns child when set, otherwise parent.
func pick[T any](child, parent *T) *T {
	if child != nil {
		return child
	}
	return parent
}
