// Package data implements shared byte-level types for the Reticulum wire protocol
package data

import (
	"crypto/sha256"
	"crypto/subtle"
)

// Sizes in bytes of the hash identifiers used throughout the protocol
const (
	HASH_SIZE           = 32
	TRUNCATED_HASH_SIZE = 16
	NAME_HASH_SIZE      = 10
	RATCHET_ID_SIZE     = 10
)

/*
[Truncated Hash]

Description
Compact identifiers are derived from SHA256 digests by truncation.
Identity hashes, destination hashes, packet hashes and link ids are the
first 16 bytes of a SHA256 sum. Name hashes and ratchet ids are the
first 10 bytes. Comparisons of authenticated values must run in
constant time.
*/

// Hash is a full SHA256 digest.
type Hash [HASH_SIZE]byte

// Bytes returns the digest as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// Truncated returns the first TRUNCATED_HASH_SIZE bytes of the digest.
func (h Hash) Truncated() []byte {
	return h[:TRUNCATED_HASH_SIZE]
}

// Equal compares two hashes in constant time.
func (h Hash) Equal(other Hash) bool {
	return subtle.ConstantTimeCompare(h[:], other[:]) == 1
}

// HashData returns the SHA256 sum of data.
func HashData(data []byte) (h Hash) {
	return sha256.Sum256(data)
}

// TruncatedHash returns the first TRUNCATED_HASH_SIZE bytes of the
// SHA256 sum of data.
func TruncatedHash(data []byte) []byte {
	h := HashData(data)
	return h.Truncated()
}

// NameHash returns the first NAME_HASH_SIZE bytes of the SHA256 sum of
// data.
func NameHash(data []byte) []byte {
	h := HashData(data)
	return h[:NAME_HASH_SIZE]
}

// ConstantTimeEqual compares two byte slices in constant time. Slices
// of unequal length compare unequal without leaking where they differ.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// IsZero returns true if every byte of b is zero.
func IsZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
