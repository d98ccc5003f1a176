// Package identity implements peer identities and their key derivation
package identity

import (
	"encoding/hex"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/go-rns/go-rns/lib/common/data"
	"github.com/go-rns/go-rns/lib/crypto/ed25519"
	"github.com/go-rns/go-rns/lib/crypto/x25519"
)

var log = logger.GetGoI2PLogger()

// Sizes in bytes of identity key material
const (
	KEY_SIZE         = 32
	PUBLIC_KEY_SIZE  = 64
	PRIVATE_KEY_SIZE = 64
)

/*
[Identity]

Description
A peer identity is an X25519 encryption key pair and an Ed25519 signing
key pair. The public identity is the concatenation of both public keys,
and the identity hash is the truncated SHA256 of that concatenation.

+----+----+----+----+----+----+----+----+
| x25519_public                         |
+                                       +
|                                       |
+                                       +
|                                       |
+                                       +
|                                       |
+----+----+----+----+----+----+----+----+
| ed25519_public                        |
+                                       +
|                                       |
+                                       +
|                                       |
+                                       +
|                                       |
+----+----+----+----+----+----+----+----+

x25519_public :: Curve25519 public key used for key agreement
                 length -> 32 bytes

ed25519_public :: Ed25519 public key used for signature verification
                  length -> 32 bytes
*/

var (
	ErrInvalidSeedSize      = oops.Errorf("identity seeds must be exactly 32 bytes")
	ErrInvalidPublicKeySize = oops.Errorf("identity public key must be exactly 64 bytes")
	ErrNoPrivateKey         = oops.Errorf("identity does not hold a private key")
)

// Identity is an X25519/Ed25519 key pair pair identifying a peer.
// Identities are immutable once created.
type Identity struct {
	x25519Private []byte
	x25519Public  []byte
	ed25519Seed   []byte
	ed25519Public []byte
	hash          []byte
}

// New generates a fresh identity from the secure random source.
func New() (*Identity, error) {
	log.Debug("Generating new identity")
	_, encSeed, err := x25519.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	_, signSeed, err := ed25519.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return FromSeeds(encSeed, signSeed)
}

// FromSeeds derives an identity deterministically from a 32-byte
// X25519 seed and a 32-byte Ed25519 seed. Identical seeds always yield
// the identical identity.
func FromSeeds(encryptionSeed, signingSeed []byte) (*Identity, error) {
	if len(encryptionSeed) != KEY_SIZE || len(signingSeed) != KEY_SIZE {
		log.WithFields(logger.Fields{
			"encryption_seed_length": len(encryptionSeed),
			"signing_seed_length":    len(signingSeed),
		}).Error("Invalid identity seed size")
		return nil, ErrInvalidSeedSize
	}

	xPub, xPriv, err := x25519.FromSeed(encryptionSeed)
	if err != nil {
		return nil, err
	}
	edPub, err := ed25519.PublicFrom(signingSeed)
	if err != nil {
		return nil, err
	}

	i := &Identity{
		x25519Private: xPriv,
		x25519Public:  xPub,
		ed25519Seed:   append([]byte(nil), signingSeed...),
		ed25519Public: edPub,
	}
	i.hash = data.TruncatedHash(i.PublicKey())

	log.WithField("identity_hash", i.Hex()).Debug("Identity derived")
	return i, nil
}

// FromPublicKey builds a verification/encryption-only identity from a
// 64-byte public key. The returned identity cannot sign or decrypt.
func FromPublicKey(publicKey []byte) (*Identity, error) {
	if len(publicKey) != PUBLIC_KEY_SIZE {
		return nil, ErrInvalidPublicKeySize
	}
	i := &Identity{
		x25519Public:  append([]byte(nil), publicKey[:KEY_SIZE]...),
		ed25519Public: append([]byte(nil), publicKey[KEY_SIZE:]...),
	}
	i.hash = data.TruncatedHash(publicKey)
	return i, nil
}

// PublicKey returns the 64-byte concatenation of the X25519 and
// Ed25519 public keys.
func (i *Identity) PublicKey() []byte {
	key := make([]byte, PUBLIC_KEY_SIZE)
	copy(key[:KEY_SIZE], i.x25519Public)
	copy(key[KEY_SIZE:], i.ed25519Public)
	return key
}

// PrivateKey returns the 64-byte concatenation of the X25519 private
// key and the Ed25519 seed, or an error for a public-only identity.
func (i *Identity) PrivateKey() ([]byte, error) {
	if !i.HasPrivateKey() {
		return nil, ErrNoPrivateKey
	}
	key := make([]byte, PRIVATE_KEY_SIZE)
	copy(key[:KEY_SIZE], i.x25519Private)
	copy(key[KEY_SIZE:], i.ed25519Seed)
	return key, nil
}

// HasPrivateKey reports whether this identity can sign and decrypt.
func (i *Identity) HasPrivateKey() bool {
	return i.x25519Private != nil && i.ed25519Seed != nil
}

// Hash returns the 16-byte truncated SHA256 of the public key.
func (i *Identity) Hash() []byte {
	return append([]byte(nil), i.hash...)
}

// Hex returns the identity hash as a hex string.
func (i *Identity) Hex() string {
	return hex.EncodeToString(i.hash)
}

// String implements fmt.Stringer.
func (i *Identity) String() string {
	return i.Hex()
}

// EncryptionPublicKey returns the X25519 public key half.
func (i *Identity) EncryptionPublicKey() []byte {
	return append([]byte(nil), i.x25519Public...)
}

// SigningPublicKey returns the Ed25519 public key half.
func (i *Identity) SigningPublicKey() []byte {
	return append([]byte(nil), i.ed25519Public...)
}

// Sign signs message with the identity's Ed25519 key.
func (i *Identity) Sign(message []byte) ([]byte, error) {
	if !i.HasPrivateKey() {
		return nil, ErrNoPrivateKey
	}
	return ed25519.Sign(i.ed25519Seed, message)
}

// Verify reports whether signature is valid for message under this
// identity's Ed25519 public key. A failed verification is an expected
// adversarial outcome, not an error.
func (i *Identity) Verify(message, signature []byte) bool {
	return ed25519.Verify(i.ed25519Public, message, signature)
}
