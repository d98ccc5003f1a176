// Package ifac implements interface access codes for link-layer isolation
package ifac

import (
	"encoding/hex"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/go-rns/go-rns/lib/common/data"
	"github.com/go-rns/go-rns/lib/crypto/ed25519"
	"github.com/go-rns/go-rns/lib/crypto/hkdf"
)

var log = logger.GetGoI2PLogger()

// Key and tag size limits
const (
	KEY_SIZE     = 64
	MAX_TAG_SIZE = ed25519.SIGNATURE_SIZE
)

// ifacSalt is the fixed, protocol-wide HKDF salt for access code
// derivation. It is deliberately not per-network: isolation comes from
// the origin secret, not the salt.
var ifacSalt []byte

func init() {
	ifacSalt, _ = hex.DecodeString("adf54d882c9a9b80771eb4995d702d4a3e733391b2a0f53f416d9f907e55cff8")
}

var (
	ErrEmptyOriginSecret = oops.Errorf("IFAC origin secret must not be empty")
	ErrInvalidKeySize    = oops.Errorf("IFAC key must be exactly 64 bytes")
	ErrInvalidTagSize    = oops.Errorf("IFAC tag length out of range")
)

// DeriveKey expands a network's origin secret into the 64-byte access
// code key. The first half feeds nothing directly; the second half is
// the Ed25519 seed used for tagging.
func DeriveKey(originSecret []byte) ([]byte, error) {
	if len(originSecret) == 0 {
		return nil, ErrEmptyOriginSecret
	}
	key, err := hkdf.Derive(KEY_SIZE, originSecret, ifacSalt, nil)
	if err != nil {
		return nil, err
	}
	log.Debug("Derived IFAC key")
	return key, nil
}

// Compute returns the access code tag for a packet: the last tagLen
// bytes of the Ed25519 signature of the packet bytes under the signing
// half of the key. The tag is deterministic; identical packet bytes
// always yield identical tags under the same key.
func Compute(key, packetBytes []byte, tagLen int) ([]byte, error) {
	if len(key) != KEY_SIZE {
		return nil, ErrInvalidKeySize
	}
	if tagLen < 1 || tagLen > MAX_TAG_SIZE {
		return nil, ErrInvalidTagSize
	}
	signature, err := ed25519.Sign(key[KEY_SIZE/2:], packetBytes)
	if err != nil {
		return nil, err
	}
	return signature[len(signature)-tagLen:], nil
}

// Verify recomputes the tag and compares in constant time. A false
// result is the normal outcome for traffic from a different network.
func Verify(key, packetBytes, tag []byte) bool {
	expected, err := Compute(key, packetBytes, len(tag))
	if err != nil {
		return false
	}
	ok := data.ConstantTimeEqual(expected, tag)
	if !ok {
		log.Debug("IFAC tag mismatch")
	}
	return ok
}
