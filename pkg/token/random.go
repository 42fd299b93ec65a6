// Package token provides random token generation and encoding.
package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// Length bounds for a single token, in bytes of entropy.
const (
	MinLength = 1
	MaxLength = 1024
)

var (
	// ErrEntropy is returned when the random source fails or returns short.
	ErrEntropy = errors.New("token: entropy source failed")

	// ErrInvalidLength is returned for lengths outside MinLength..MaxLength.
	ErrInvalidLength = errors.New("token: length out of range")
)

// Source draws random bytes from a CSPRNG.
//
// The zero value is not usable; create one with NewSource.
type Source struct {
	r io.Reader
}

// NewSource returns a Source reading from r.
// A nil reader selects crypto/rand.Reader.
func NewSource(r io.Reader) *Source {
	if r == nil {
		r = rand.Reader
	}
	return &Source{r: r}
}

// defaultSource backs the package-level helpers.
var defaultSource = NewSource(nil)

// Bytes returns exactly n random bytes.
func (s *Source) Bytes(n int) ([]byte, error) {
	if n < MinLength || n > MaxLength {
		return nil, fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidLength, n, MinLength, MaxLength)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		clear(buf)
		return nil, fmt.Errorf("%w: %w", ErrEntropy, err)
	}
	return buf, nil
}

// GenerateBytes returns n random bytes from crypto/rand.
func GenerateBytes(n int) ([]byte, error) {
	return defaultSource.Bytes(n)
}
