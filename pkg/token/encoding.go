// Package token provides random token generation and encoding.
package token

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Encoding renders raw bytes as text.
//
// The set of implementations is closed: Hex, Base64, Base64URL and Custom.
type Encoding interface {
	Encode(data []byte) string
	Format() Format
	sealed()
}

// Hex encodes as lowercase hexadecimal.
type Hex struct{}

// Base64 encodes as padded standard base64.
type Base64 struct{}

// Base64URL encodes as unpadded URL-safe base64.
type Base64URL struct{}

// Custom encodes with a caller-supplied alphabet.
// Grouping > 0 inserts '-' between every Grouping symbols.
type Custom struct {
	Alphabet string
	Grouping int
}

func (Hex) Encode(data []byte) string       { return EncodeHex(data) }
func (Base64) Encode(data []byte) string    { return EncodeBase64(data) }
func (Base64URL) Encode(data []byte) string { return EncodeBase64URL(data) }
func (c Custom) Encode(data []byte) string  { return EncodeCustom(data, c.Alphabet, c.Grouping) }

func (Hex) Format() Format       { return FormatHex }
func (Base64) Format() Format    { return FormatBase64 }
func (Base64URL) Format() Format { return FormatBase64URL }
func (Custom) Format() Format    { return FormatCustom }

func (Hex) sealed()       {}
func (Base64) sealed()    {}
func (Base64URL) sealed() {}
func (Custom) sealed()    {}

// EncodeHex returns the lowercase hex encoding of data.
func EncodeHex(data []byte) string {
	return hex.EncodeToString(data)
}

// EncodeBase64 returns the padded standard base64 encoding of data.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// EncodeBase64URL returns base64 with '+' and '/' replaced by '-' and '_'
// and the '=' padding stripped.
func EncodeBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// EncodeCustom maps data onto alphabet, reading the input as an MSB-first
// bitstream with ceil(log2(len(alphabet))) bits per symbol.
//
// Trailing bits that do not fill a whole symbol are shifted into the high
// bits of one final symbol, so the output is not reversible when the symbol
// width does not divide 8*len(data). Indices past the end of a non
// power-of-two alphabet produce no output. Alphabets shorter than two bytes
// fall back to hex.
func EncodeCustom(data []byte, alphabet string, grouping int) string {
	size := len(alphabet)
	if size < 2 {
		return EncodeHex(data)
	}

	width := bitsPerSymbol(size)
	mask := uint64(1)<<width - 1

	symbols := (len(data)*8 + width - 1) / width
	capacity := symbols
	if grouping > 0 && symbols > 0 {
		capacity += (symbols - 1) / grouping
	}

	var sb strings.Builder
	sb.Grow(capacity)

	emitted := 0
	emit := func(idx uint64) {
		if idx >= uint64(size) {
			return
		}
		if grouping > 0 && emitted > 0 && emitted%grouping == 0 {
			sb.WriteByte('-')
		}
		sb.WriteByte(alphabet[idx])
		emitted++
	}

	var acc uint64
	avail := 0
	for _, b := range data {
		acc = acc<<8 | uint64(b)
		avail += 8
		for avail >= width {
			avail -= width
			emit((acc >> avail) & mask)
		}
		acc &= uint64(1)<<avail - 1
	}

	if avail > 0 {
		emit((acc << (width - avail)) & mask)
	}

	return sb.String()
}

// bitsPerSymbol returns ceil(log2(n)) for n >= 2.
func bitsPerSymbol(n int) int {
	bits := 0
	for 1<<bits < n {
		bits++
	}
	return bits
}
