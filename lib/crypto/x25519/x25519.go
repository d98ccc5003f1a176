// Package x25519 wraps Curve25519 key agreement behind fixed-size byte operations
package x25519

import (
	"crypto/rand"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"golang.org/x/crypto/curve25519"
)

var log = logger.GetGoI2PLogger()

const KEY_SIZE = 32

var (
	ErrInvalidPrivateKey = oops.Errorf("invalid X25519 private key size")
	ErrInvalidPublicKey  = oops.Errorf("invalid X25519 public key size")
)

// GenerateKeyPair generates a new X25519 key pair from the system's
// secure random source.
func GenerateKeyPair() (pub, priv []byte, err error) {
	log.Debug("Generating new X25519 key pair")
	seed := make([]byte, KEY_SIZE)
	if _, err := rand.Read(seed); err != nil {
		return nil, nil, oops.Errorf("failed to generate X25519 key pair: %w", err)
	}
	return FromSeed(seed)
}

// FromSeed derives an X25519 key pair from a 32-byte seed. The private
// key bytes are the seed itself; clamping happens inside the scalar
// multiplication per the X25519 convention.
func FromSeed(seed []byte) (pub, priv []byte, err error) {
	if len(seed) != KEY_SIZE {
		log.WithField("seed_length", len(seed)).Error("Invalid X25519 seed size")
		return nil, nil, ErrInvalidPrivateKey
	}
	priv = make([]byte, KEY_SIZE)
	copy(priv, seed)
	pub, err = PublicFrom(priv)
	if err != nil {
		return nil, nil, err
	}
	return pub, priv, nil
}

// PublicFrom derives the public key for a 32-byte private key.
func PublicFrom(priv []byte) ([]byte, error) {
	if len(priv) != KEY_SIZE {
		return nil, ErrInvalidPrivateKey
	}
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return nil, oops.Errorf("failed to derive X25519 public key: %w", err)
	}
	return pub, nil
}

// Exchange computes the shared secret between a private key and a peer
// public key. Exchange(aPriv, bPub) == Exchange(bPriv, aPub).
func Exchange(priv, peerPub []byte) ([]byte, error) {
	if len(priv) != KEY_SIZE {
		return nil, ErrInvalidPrivateKey
	}
	if len(peerPub) != KEY_SIZE {
		return nil, ErrInvalidPublicKey
	}
	shared, err := curve25519.X25519(priv, peerPub)
	if err != nil {
		return nil, oops.Errorf("X25519 exchange failed: %w", err)
	}
	return shared, nil
}
