package identity

import (
	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/go-rns/go-rns/lib/common/data"
	"github.com/go-rns/go-rns/lib/crypto/hkdf"
	"github.com/go-rns/go-rns/lib/crypto/x25519"
	"github.com/go-rns/go-rns/lib/token"
)

// Encrypted tokens carry the sender's ephemeral public key ahead of
// the token envelope.
const (
	EPHEMERAL_KEY_SIZE = 32
	TOKEN_MIN_SIZE     = EPHEMERAL_KEY_SIZE + token.TOKEN_MIN_SIZE

	// Identity-level tokens use a 64-byte derived key, selecting the
	// AES-256 token mode.
	DERIVED_KEY_SIZE = token.KEY_SIZE_256
)

var ErrTokenTooShort = oops.Errorf("encrypted token too short")

// Encrypt seals plaintext for this identity. A fresh ephemeral X25519
// key is drawn, the shared secret is expanded with HKDF salted by the
// identity hash, and the result keys a token envelope. If targetKey is
// non-nil it is used in place of the identity's X25519 key, which is
// how ratchet keys substitute for identity keys.
//
// The output is ephemeral_public(32) followed by the token envelope.
func (i *Identity) Encrypt(plaintext, targetKey []byte) ([]byte, error) {
	return i.EncryptDeterministic(plaintext, targetKey, nil, nil)
}

// EncryptDeterministic is Encrypt with a caller-supplied ephemeral
// seed and IV for reproducible output. Nil values fall back to the
// secure random source; supplied values are used unconditionally.
func (i *Identity) EncryptDeterministic(plaintext, targetKey, ephemeralSeed, iv []byte) ([]byte, error) {
	target := i.x25519Public
	if targetKey != nil {
		target = targetKey
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

	shared, err := x25519.Exchange(ephPriv, target)
	if err != nil {
		return nil, err
	}
	derived, err := hkdf.Derive(DERIVED_KEY_SIZE, shared, i.hash, nil)
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

	log.WithFields(logger.Fields{
		"identity_hash":    i.Hex(),
		"plaintext_length": len(plaintext),
		"ratchet":          targetKey != nil,
	}).Debug("Sealed token for identity")
	return append(ephPub, sealed...), nil
}

// Decrypt opens a token sealed for this identity. Any supplied ratchet
// private keys are tried before the identity key; the second return
// value is the ratchet id the token decrypted under, or nil when the
// identity key was used. Authentication failure under every key is
// reported as token.ErrAuthenticationFailed.
func (i *Identity) Decrypt(tokenBytes []byte, ratchetKeys [][]byte) ([]byte, []byte, error) {
	if !i.HasPrivateKey() {
		return nil, nil, ErrNoPrivateKey
	}
	if len(tokenBytes) < TOKEN_MIN_SIZE {
		log.WithField("token_length", len(tokenBytes)).Error("Encrypted token too short")
		return nil, nil, ErrTokenTooShort
	}

	ephPub := tokenBytes[:EPHEMERAL_KEY_SIZE]
	sealed := tokenBytes[EPHEMERAL_KEY_SIZE:]

	for _, ratchetKey := range ratchetKeys {
		plaintext, err := i.open(ratchetKey, ephPub, sealed)
		if err == nil {
			ratchetPub, err := x25519.PublicFrom(ratchetKey)
			if err != nil {
				return nil, nil, err
			}
			ratchetID := data.HashData(ratchetPub)
			return plaintext, ratchetID[:data.RATCHET_ID_SIZE], nil
		}
	}

	plaintext, err := i.open(i.x25519Private, ephPub, sealed)
	if err != nil {
		log.WithField("identity_hash", i.Hex()).Debug("Token did not authenticate under any key")
		return nil, nil, err
	}
	return plaintext, nil, nil
}

func (i *Identity) open(privateKey, ephPub, sealed []byte) ([]byte, error) {
	shared, err := x25519.Exchange(privateKey, ephPub)
	if err != nil {
		return nil, err
	}
	derived, err := hkdf.Derive(DERIVED_KEY_SIZE, shared, i.hash, nil)
	if err != nil {
		return nil, err
	}
	tok, err := token.New(derived)
	if err != nil {
		return nil, err
	}
	return tok.Decrypt(sealed)
}
