// Package hkdf wraps HKDF-SHA256 key expansion
package hkdf

import (
	"crypto/sha256"
	"io"

	"github.com/samber/oops"
	"golang.org/x/crypto/hkdf"
)

// Derive expands ikm into length bytes of key material using
// HKDF-SHA256. A nil salt or info defaults to zero-length, which for
// the extract step is equivalent to the RFC 5869 zero-filled salt.
// Derivation is deterministic for identical inputs.
func Derive(length int, ikm, salt, info []byte) ([]byte, error) {
	if length <= 0 {
		return nil, oops.Errorf("invalid HKDF output length %d", length)
	}
	if len(ikm) == 0 {
		return nil, oops.Errorf("HKDF input keying material is empty")
	}
	out := make([]byte, length)
	r := hkdf.New(sha256.New, ikm, salt, info)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, oops.Errorf("HKDF expansion failed: %w", err)
	}
	return out, nil
}
