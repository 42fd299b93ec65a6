// Package token provides random token generation and encoding.
//
// Tokens are drawn from a CSPRNG and rendered in one of four encodings:
//
//   - Hex: lowercase hexadecimal, two characters per byte
//   - Base64: RFC 4648 standard alphabet with padding
//   - Base64URL: URL-safe alphabet, padding removed
//   - Custom: caller-supplied alphabet, optionally grouped with '-'
//
// Metadata:
//
//   - Sign wraps a token as "<expiry>:<token>" or, when a key is set,
//     "<expiry>:<token>:<hex hmac-sha256>"
//   - HMACHex exposes the digest so an independent verifier can
//     recompute it with the same key
//
// Security:
//
//   - Uses crypto/rand for CSPRNG by default
//   - A failed or short read is always reported as ErrEntropy; partially
//     filled buffers are never returned
package token
