// Package ed25519 wraps Ed25519 signing behind fixed-size byte operations
package ed25519

import (
	"crypto/ed25519"
	"crypto/rand"
	"io"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

const (
	SEED_SIZE       = 32
	PUBLIC_KEY_SIZE = 32
	SIGNATURE_SIZE  = 64
)

var ErrInvalidSeed = oops.Errorf("invalid Ed25519 seed size")

// GenerateKeyPair generates a new Ed25519 key pair, returning the
// 32-byte public key and the 32-byte private seed.
func GenerateKeyPair() (pub, seed []byte, err error) {
	log.Debug("Generating new Ed25519 key pair")
	seed = make([]byte, SEED_SIZE)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, nil, oops.Errorf("failed to generate Ed25519 seed: %w", err)
	}
	pub, err = PublicFrom(seed)
	if err != nil {
		return nil, nil, err
	}
	return pub, seed, nil
}

// PublicFrom derives the 32-byte public key for a 32-byte seed.
func PublicFrom(seed []byte) ([]byte, error) {
	if len(seed) != SEED_SIZE {
		log.WithField("seed_length", len(seed)).Error("Invalid Ed25519 seed size")
		return nil, ErrInvalidSeed
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return priv.Public().(ed25519.PublicKey), nil
}

// Sign signs message with the key derived from seed and returns the
// 64-byte signature.
func Sign(seed, message []byte) ([]byte, error) {
	if len(seed) != SEED_SIZE {
		return nil, ErrInvalidSeed
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return ed25519.Sign(priv, message), nil
}

// Verify reports whether signature is a valid Ed25519 signature of
// message under pub. Malformed inputs verify as false, never as an
// error, since invalid signatures are an expected adversarial input.
func Verify(pub, message, signature []byte) bool {
	if len(pub) != PUBLIC_KEY_SIZE || len(signature) != SIGNATURE_SIZE {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), message, signature)
}
