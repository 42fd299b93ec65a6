// Package token provides random token generation and encoding.
package token

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]*$`)

// failingReader always fails.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device unavailable")
}

func TestEncodeHex(t *testing.T) {
	for n := 1; n <= 64; n++ {
		data, err := GenerateBytes(n)
		if err != nil {
			t.Fatalf("GenerateBytes(%d) error = %v", n, err)
		}

		encoded := EncodeHex(data)
		if len(encoded) != 2*n {
			t.Errorf("EncodeHex(%d bytes) length = %d, want %d", n, len(encoded), 2*n)
		}
		if !hexPattern.MatchString(encoded) {
			t.Errorf("EncodeHex() = %q, want lowercase hex", encoded)
		}

		decoded, err := hex.DecodeString(encoded)
		if err != nil || !bytes.Equal(decoded, data) {
			t.Errorf("EncodeHex() did not round-trip for %d bytes", n)
		}
	}
}

func TestEncodeHex_KnownVector(t *testing.T) {
	got := EncodeHex([]byte{0x00, 0x0f, 0xa5, 0xff})
	if got != "000fa5ff" {
		t.Errorf("EncodeHex() = %q, want %q", got, "000fa5ff")
	}
}

func TestEncodeBase64(t *testing.T) {
	got := EncodeBase64([]byte{0xfb, 0xff})
	if got != "+/8=" {
		t.Errorf("EncodeBase64() = %q, want %q", got, "+/8=")
	}
}

func TestEncodeBase64URL(t *testing.T) {
	got := EncodeBase64URL([]byte{0xfb, 0xff})
	if got != "-_8" {
		t.Errorf("EncodeBase64URL() = %q, want %q", got, "-_8")
	}

	for n := 1; n <= 48; n++ {
		data, err := GenerateBytes(n)
		if err != nil {
			t.Fatalf("GenerateBytes(%d) error = %v", n, err)
		}

		encoded := EncodeBase64URL(data)
		if strings.ContainsAny(encoded, "+/=") {
			t.Fatalf("EncodeBase64URL() = %q contains +, / or =", encoded)
		}

		// Restore the standard alphabet and padding.
		std := strings.NewReplacer("-", "+", "_", "/").Replace(encoded)
		if pad := len(std) % 4; pad != 0 {
			std += strings.Repeat("=", 4-pad)
		}
		decoded, err := base64.StdEncoding.DecodeString(std)
		if err != nil {
			t.Fatalf("restored base64 %q invalid: %v", std, err)
		}
		if !bytes.Equal(decoded, data) {
			t.Errorf("EncodeBase64URL() did not round-trip for %d bytes", n)
		}
	}
}

func TestEncodeCustom(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		alphabet string
		grouping int
		want     string
	}{
		{"two bits per symbol", []byte{0x1b}, "ABCD", 0, "ABCD"},
		{"one bit per symbol", []byte{0xa0}, "01", 0, "10100000"},
		{"flush pads low bits", []byte{0xff}, "01234567", 0, "776"},
		{"flush zero padding", []byte{0x80}, "01234567", 0, "400"},
		{"out of range index skipped", []byte{0xaf}, "0123456789", 0, ""},
		{"in range indices", []byte{0x12}, "0123456789", 0, "12"},
		{"grouped", []byte{0xde, 0xad, 0xbe, 0xef}, "0123456789abcdef", 3, "dea-dbe-ef"},
		{"group boundary at end", []byte{0xde, 0xad}, "0123456789abcdef", 2, "de-ad"},
		{"empty alphabet falls back to hex", []byte{0xab, 0x01}, "", 0, "ab01"},
		{"single char alphabet falls back to hex", []byte{0xab}, "x", 4, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeCustom(tt.data, tt.alphabet, tt.grouping)
			if got != tt.want {
				t.Errorf("EncodeCustom(%x, %q, %d) = %q, want %q",
					tt.data, tt.alphabet, tt.grouping, got, tt.want)
			}
		})
	}
}

func TestEncodeCustom_SymbolCount(t *testing.T) {
	data, err := GenerateBytes(4)
	if err != nil {
		t.Fatalf("GenerateBytes() error = %v", err)
	}

	got := EncodeCustom(data, "ABCD", 0)
	if len(got) != 16 {
		t.Errorf("EncodeCustom(4 bytes, ABCD) = %q, want 16 symbols", got)
	}
	for _, c := range got {
		if !strings.ContainsRune("ABCD", c) {
			t.Errorf("EncodeCustom() produced %q outside the alphabet", c)
		}
	}
}

func TestEncodeCustom_Grouping(t *testing.T) {
	const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

	for _, length := range []int{1, 2, 3, 5, 8, 16, 33} {
		for _, grouping := range []int{1, 2, 3, 4, 7, 128} {
			t.Run(fmt.Sprintf("len=%d/group=%d", length, grouping), func(t *testing.T) {
				data, err := GenerateBytes(length)
				if err != nil {
					t.Fatalf("GenerateBytes() error = %v", err)
				}

				got := EncodeCustom(data, alphabet, grouping)
				symbols := strings.ReplaceAll(got, "-", "")
				separators := len(got) - len(symbols)

				if want := (len(symbols) - 1) / grouping; separators != want {
					t.Errorf("separators = %d, want %d (output %q)", separators, want, got)
				}
				if strings.HasSuffix(got, "-") || strings.HasPrefix(got, "-") {
					t.Errorf("output %q has a leading or trailing separator", got)
				}
				if strings.Contains(got, "--") {
					t.Errorf("output %q has adjacent separators", got)
				}
				for _, c := range symbols {
					if !strings.ContainsRune(alphabet, c) {
						t.Errorf("output %q contains %q outside the alphabet", got, c)
					}
				}
			})
		}
	}
}

func TestEncodeCustom_HexAlphabetGrouped(t *testing.T) {
	const alphabet = "0123456789ABCDEF"

	data, err := GenerateBytes(8)
	if err != nil {
		t.Fatalf("GenerateBytes() error = %v", err)
	}

	got := EncodeCustom(data, alphabet, 4)
	if !strings.Contains(got, "-") {
		t.Errorf("EncodeCustom() = %q, want at least one separator", got)
	}
	for _, c := range strings.ReplaceAll(got, "-", "") {
		if !strings.ContainsRune(alphabet, c) {
			t.Errorf("EncodeCustom() = %q contains %q outside the alphabet", got, c)
		}
	}
	if len(got) != 16+3 {
		t.Errorf("EncodeCustom() length = %d, want 19", len(got))
	}
}

func TestEncodeCustom_FullByteAlphabet(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 256; i++ {
		sb.WriteByte(byte(i))
	}
	alphabet := sb.String()

	data := []byte{0x00, 0x7f, 0xff}
	if got := EncodeCustom(data, alphabet, 0); got != string(data) {
		t.Errorf("EncodeCustom() with 256-symbol alphabet = %x, want %x", got, data)
	}
}

func TestBitsPerSymbol(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {10, 4}, {16, 4}, {32, 5}, {33, 6}, {256, 8},
	}
	for _, tt := range tests {
		if got := bitsPerSymbol(tt.size); got != tt.want {
			t.Errorf("bitsPerSymbol(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestGenerateString_Hex(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := GenerateString(16, Hex{})
		if err != nil {
			t.Fatalf("GenerateString() error = %v", err)
		}
		if len(tok) != 32 || !hexPattern.MatchString(tok) {
			t.Fatalf("GenerateString(16, Hex) = %q, want 32 lowercase hex chars", tok)
		}
		if seen[tok] {
			t.Fatalf("GenerateString() produced duplicate token: %s", tok)
		}
		seen[tok] = true
	}
}

func TestGenerateString_NilEncoding(t *testing.T) {
	tok, err := GenerateString(DefaultLength, nil)
	if err != nil {
		t.Fatalf("GenerateString() error = %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(tok)
	if err != nil {
		t.Fatalf("GenerateString(nil) returned invalid base64: %v", err)
	}
	if len(decoded) != DefaultLength {
		t.Errorf("decoded length = %d, want %d", len(decoded), DefaultLength)
	}
}

func TestSource_Deterministic(t *testing.T) {
	src := NewSource(bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef}))

	tok, err := src.GenerateString(4, Hex{})
	if err != nil {
		t.Fatalf("GenerateString() error = %v", err)
	}
	if tok != "deadbeef" {
		t.Errorf("GenerateString() = %q, want %q", tok, "deadbeef")
	}
}

func TestSource_EntropyFailure(t *testing.T) {
	tests := []struct {
		name   string
		reader io.Reader
	}{
		{"read error", failingReader{}},
		{"short read", bytes.NewReader([]byte{0x01, 0x02})},
		{"empty", bytes.NewReader(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSource(tt.reader)

			buf, err := src.Bytes(16)
			if !errors.Is(err, ErrEntropy) {
				t.Fatalf("Bytes() error = %v, want ErrEntropy", err)
			}
			if buf != nil {
				t.Errorf("Bytes() returned %x on failure, want nil", buf)
			}

			tok, err := src.GenerateString(16, Hex{})
			if !errors.Is(err, ErrEntropy) || tok != "" {
				t.Errorf("GenerateString() = (%q, %v), want ErrEntropy", tok, err)
			}
		})
	}
}

func TestSource_InvalidLength(t *testing.T) {
	for _, n := range []int{-1, 0, MaxLength + 1} {
		if _, err := GenerateBytes(n); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("GenerateBytes(%d) error = %v, want ErrInvalidLength", n, err)
		}
	}

	if b, err := GenerateBytes(MaxLength); err != nil || len(b) != MaxLength {
		t.Errorf("GenerateBytes(%d) = (%d bytes, %v)", MaxLength, len(b), err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"base64", FormatBase64, false},
		{"HEX", FormatHex, false},
		{"Base64URL", FormatBase64URL, false},
		{"custom", FormatCustom, false},
		{" hex ", FormatHex, false},
		{"base32", FormatBase64, true},
		{"", FormatBase64, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFormat_Encoding(t *testing.T) {
	tests := []struct {
		format Format
		want   Encoding
	}{
		{FormatHex, Hex{}},
		{FormatBase64, Base64{}},
		{FormatBase64URL, Base64URL{}},
		{FormatCustom, Custom{Alphabet: "ABCD", Grouping: 2}},
		{Format(42), Base64{}},
	}

	for _, tt := range tests {
		got := tt.format.Encoding("ABCD", 2)
		if got != tt.want {
			t.Errorf("%v.Encoding() = %#v, want %#v", tt.format, got, tt.want)
		}
	}

	if Format(42).Valid() {
		t.Error("Format(42).Valid() = true, want false")
	}
	if got := (Custom{}).Format(); got != FormatCustom {
		t.Errorf("Custom.Format() = %v, want custom", got)
	}
}

func TestSign(t *testing.T) {
	now := time.Unix(1000, 0)

	got := Sign("abc", 60, "k", now)

	mac := hmac.New(sha256.New, []byte("k"))
	mac.Write([]byte("1060:abc"))
	want := "1060:abc:" + hex.EncodeToString(mac.Sum(nil))

	if got != want {
		t.Errorf("Sign() = %q, want %q", got, want)
	}

	parts := strings.Split(got, ":")
	if len(parts) != 3 || len(parts[2]) != 64 || !hexPattern.MatchString(parts[2]) {
		t.Errorf("Sign() = %q, want <expiry>:<token>:<64 hex>", got)
	}
	if HMACHex("k", "1060:abc") != parts[2] {
		t.Error("HMACHex() does not reproduce the signature")
	}
}

func TestSign_DifferentKey(t *testing.T) {
	now := time.Unix(1000, 0)

	a := Sign("abc", 60, "k", now)
	b := Sign("abc", 60, "other", now)
	if a == b {
		t.Error("Sign() produced the same signature for different keys")
	}
	if a[:9] != b[:9] {
		t.Errorf("expiry/token prefix differs: %q vs %q", a[:9], b[:9])
	}
}

func TestSign_NoKey(t *testing.T) {
	got := Sign("abc", 60, "", time.Unix(1000, 0))
	if got != "1060:abc" {
		t.Errorf("Sign() = %q, want %q", got, "1060:abc")
	}
}

// Benchmark tests
func BenchmarkGenerateString_Hex(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateString(32, Hex{})
	}
}

func BenchmarkEncodeCustom(b *testing.B) {
	data, _ := GenerateBytes(32)
	for i := 0; i < b.N; i++ {
		EncodeCustom(data, "0123456789ABCDEFGHJKMNPQRSTVWXYZ", 4)
	}
}

func BenchmarkSign(b *testing.B) {
	now := time.Now()
	for i := 0; i < b.N; i++ {
		Sign("benchmark-token-12345", 300, "benchmark-key", now)
	}
}
