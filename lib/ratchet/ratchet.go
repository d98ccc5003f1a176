// Package ratchet implements rotating ephemeral keys for forward secrecy
package ratchet

import (
	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/go-rns/go-rns/lib/announce"
	"github.com/go-rns/go-rns/lib/common/data"
	"github.com/go-rns/go-rns/lib/crypto/hkdf"
	"github.com/go-rns/go-rns/lib/crypto/x25519"
	"github.com/go-rns/go-rns/lib/token"
)

var log = logger.GetGoI2PLogger()

// Sizes in bytes of ratchet components
const (
	RATCHET_SIZE     = 32
	RATCHET_ID_SIZE  = data.RATCHET_ID_SIZE
	DERIVED_KEY_SIZE = token.KEY_SIZE_256
)

var (
	ErrInvalidRatchetSize = oops.Errorf("ratchet keys must be exactly 32 bytes")
	ErrInvalidSaltSize    = oops.Errorf("ratchet salt must be a 16-byte identity hash")
	ErrTokenTooShort      = oops.Errorf("ratchet token too short")
)

// ID returns the 10-byte ratchet id for a ratchet public key.
func ID(ratchetPub []byte) ([]byte, error) {
	if len(ratchetPub) != RATCHET_SIZE {
		return nil, ErrInvalidRatchetSize
	}
	h := data.HashData(ratchetPub)
	return h[:RATCHET_ID_SIZE], nil
}

// Encrypt seals plaintext to a ratchet public key. The flow mirrors
// identity-level encryption, substituting the ratchet key for the
// identity's X25519 key and salting the HKDF with the recipient's
// identity hash. The output is ephemeral_public(32) followed by the
// token envelope.
func Encrypt(plaintext, ratchetPub, identityHash []byte) ([]byte, error) {
	return EncryptDeterministic(plaintext, ratchetPub, identityHash, nil, nil)
}

// EncryptDeterministic is Encrypt with caller-supplied ephemeral seed
// and IV for reproducible output.
func EncryptDeterministic(plaintext, ratchetPub, identityHash, ephemeralSeed, iv []byte) ([]byte, error) {
	if len(ratchetPub) != RATCHET_SIZE {
		return nil, ErrInvalidRatchetSize
	}
	if len(identityHash) != data.TRUNCATED_HASH_SIZE {
		return nil, ErrInvalidSaltSize
	}

	var ephPub, ephPriv []byte
	var err error
	if ephemeralSeed != nil {
		ephPub, ephPriv, err = x25519.FromSeed(ephemeralSeed)
	} else {
		ephPub, ephPriv, err = x25519.GenerateKeyPair()
	}
	if err != nil {
		return nil, err
	}

	shared, err := x25519.Exchange(ephPriv, ratchetPub)
	if err != nil {
		return nil, err
	}
	derived, err := hkdf.Derive(DERIVED_KEY_SIZE, shared, identityHash, nil)
	if err != nil {
		return nil, err
	}
	tok, err := token.New(derived)
	if err != nil {
		return nil, err
	}
	sealed, err := tok.Encrypt(plaintext, iv)
	if err != nil {
		return nil, err
	}
	return append(ephPub, sealed...), nil
}

// Decrypt opens a token sealed to a ratchet key.
func Decrypt(tokenBytes, ratchetPriv, identityHash []byte) ([]byte, error) {
	if len(ratchetPriv) != RATCHET_SIZE {
		return nil, ErrInvalidRatchetSize
	}
	if len(identityHash) != data.TRUNCATED_HASH_SIZE {
		return nil, ErrInvalidSaltSize
	}
	if len(tokenBytes) < RATCHET_SIZE+token.TOKEN_MIN_SIZE {
		return nil, ErrTokenTooShort
	}

	ephPub := tokenBytes[:RATCHET_SIZE]
	shared, err := x25519.Exchange(ratchetPriv, ephPub)
	if err != nil {
		return nil, err
	}
	derived, err := hkdf.Derive(DERIVED_KEY_SIZE, shared, identityHash, nil)
	if err != nil {
		return nil, err
	}
	tok, err := token.New(derived)
	if err != nil {
		return nil, err
	}
	return tok.Decrypt(tokenBytes[RATCHET_SIZE:])
}

// ExtractFromAnnounce parses an announce payload and returns the
// ratchet public key and its id, or nils when the announce carries no
// ratchet. ratchetRegion is the carrying packet's context flag, which
// signals whether the payload includes the ratchet region at all; an
// all-zero region counts as absent.
func ExtractFromAnnounce(raw []byte, ratchetRegion bool) (ratchetPub, ratchetID []byte, err error) {
	a, err := announce.Unpack(raw, ratchetRegion)
	if err != nil {
		return nil, nil, err
	}
	if !a.HasRatchet() {
		return nil, nil, nil
	}
	id, err := ID(a.Ratchet)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("Extracted ratchet from announce")
	return a.Ratchet, id, nil
}
