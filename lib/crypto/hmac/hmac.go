// Package hmac implements HMAC-SHA256 message authentication
package hmac

import (
	"crypto/hmac"
	"crypto/sha256"
)

const DIGEST_SIZE = 32

// Sum computes HMAC-SHA256 over data using the provided key.
func Sum(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// Validate reports whether digest matches HMAC-SHA256 of data under
// key. The comparison runs in constant time.
func Validate(key, data, digest []byte) bool {
	expected := Sum(key, data)
	return hmac.Equal(expected, digest)
}
