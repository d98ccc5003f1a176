package data

import (
	"crypto/rand"

	"github.com/samber/oops"
)

// RandomBytes returns n bytes from the system's cryptographically
// secure random source.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, oops.Errorf("failed to read random bytes: %w", err)
	}
	return b, nil
}

// RandomHash returns a random truncated hash, used where an
// unpredictable 16-byte identifier is needed.
func RandomHash() ([]byte, error) {
	b, err := RandomBytes(TRUNCATED_HASH_SIZE)
	if err != nil {
		return nil, err
	}
	return TruncatedHash(b), nil
}
