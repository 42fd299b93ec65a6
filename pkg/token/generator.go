// Package token provides random token generation and encoding.
package token

// DefaultLength is the default token length in bytes (128 bits).
const DefaultLength = 16

// GenerateString draws length random bytes and renders them with enc.
// A nil enc selects Base64.
func (s *Source) GenerateString(length int, enc Encoding) (string, error) {
	data, err := s.Bytes(length)
	if err != nil {
		return "", err
	}
	if enc == nil {
		enc = Base64{}
	}
	return enc.Encode(data), nil
}

// GenerateString generates a token from crypto/rand.
func GenerateString(length int, enc Encoding) (string, error) {
	return defaultSource.GenerateString(length, enc)
}
