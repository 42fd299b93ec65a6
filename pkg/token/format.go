// Package token provides random token generation and encoding.
package token

import (
	"fmt"
	"strings"
)

// Format names one of the supported output encodings.
type Format uint8

// Supported formats. The zero value is Base64.
const (
	FormatBase64 Format = iota
	FormatHex
	FormatBase64URL
	FormatCustom
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base64":
		return FormatBase64, nil
	case "hex":
		return FormatHex, nil
	case "base64url":
		return FormatBase64URL, nil
	case "custom":
		return FormatCustom, nil
	default:
		return FormatBase64, fmt.Errorf("unknown format %q (must be base64, hex, base64url, or custom)", s)
	}
}

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatBase64:
		return "base64"
	case FormatHex:
		return "hex"
	case FormatBase64URL:
		return "base64url"
	case FormatCustom:
		return "custom"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// Valid reports whether f is one of the four known formats.
func (f Format) Valid() bool {
	return f <= FormatCustom
}

// Encoding returns the encoder for f. The alphabet and grouping are only
// consulted for FormatCustom. Unknown values fall back to Base64.
func (f Format) Encoding(alphabet string, grouping int) Encoding {
	switch f {
	case FormatHex:
		return Hex{}
	case FormatBase64URL:
		return Base64URL{}
	case FormatCustom:
		return Custom{Alphabet: alphabet, Grouping: grouping}
	default:
		return Base64{}
	}
}
