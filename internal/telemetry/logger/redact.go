package logger

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sensitive key patterns that should be redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"signing_key",
	"key",
	"credential",
	"auth",
	"bearer",
	"value",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// maskedTail replaces everything after a known token prefix.
const maskedTail = "****"

var tokenPrefixes atomic.Pointer[[]string]

// SetTokenPrefixes sets the configured token prefixes. A string field
// whose value starts with one of them is logged as the prefix followed by
// a mask, whatever the field's key. Empty prefixes are ignored.
func SetTokenPrefixes(prefixes []string) {
	kept := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p != "" {
			kept = append(kept, p)
		}
	}
	tokenPrefixes.Store(&kept)
}

// maskTokenValue masks s if it carries a configured token prefix. The
// longest matching prefix is kept.
func maskTokenValue(s string) (string, bool) {
	prefixes := tokenPrefixes.Load()
	if prefixes == nil {
		return s, false
	}
	best := ""
	for _, p := range *prefixes {
		if len(s) > len(p) && len(p) > len(best) && strings.HasPrefix(s, p) {
			best = p
		}
	}
	if best == "" {
		return s, false
	}
	return best + maskedTail, true
}

func redactFields(fields []zapcore.Field) []zapcore.Field {
	for i := range fields {
		if !needsRedaction(fields[i]) {
			continue
		}
		out := make([]zapcore.Field, len(fields))
		copy(out, fields)
		for j := i; j < len(out); j++ {
			out[j] = redactField(out[j])
		}
		return out
	}
	return fields
}

func needsRedaction(f zapcore.Field) bool {
	if f.Type != zapcore.StringType || f.String == "" {
		return false
	}
	if IsSensitiveKey(f.Key) {
		return true
	}
	_, masked := maskTokenValue(f.String)
	return masked
}

// redactField replaces a non-empty string field whose key suggests
// sensitive content, and partially masks one carrying a token prefix.
func redactField(f zapcore.Field) zapcore.Field {
	if f.Type != zapcore.StringType || f.String == "" {
		return f
	}
	if IsSensitiveKey(f.Key) {
		return zap.String(f.Key, redactedValue)
	}
	if masked, ok := maskTokenValue(f.String); ok {
		return zap.String(f.Key, masked)
	}
	return f
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
