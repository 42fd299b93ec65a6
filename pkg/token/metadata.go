// Package token provides random token generation and encoding.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Sign wraps tok with an absolute expiry (Unix seconds) and, when key is
// non-empty, an HMAC-SHA256 over "<expiry>:<tok>".
//
//	key == "": "<expiry>:<tok>"
//	key != "": "<expiry>:<tok>:<64 lowercase hex>"
func Sign(tok string, expirySeconds int, key string, now time.Time) string {
	expiry := now.Unix() + int64(expirySeconds)
	payload := strconv.FormatInt(expiry, 10) + ":" + tok
	if key == "" {
		return payload
	}
	return payload + ":" + HMACHex(key, payload)
}

// HMACHex returns the lowercase hex HMAC-SHA256 of payload under key.
func HMACHex(key, payload string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
