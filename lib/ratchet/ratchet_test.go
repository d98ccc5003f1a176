package ratchet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-rns/go-rns/lib/announce"
	"github.com/go-rns/go-rns/lib/common/data"
	"github.com/go-rns/go-rns/lib/crypto/hkdf"
	"github.com/go-rns/go-rns/lib/crypto/x25519"
	"github.com/go-rns/go-rns/lib/identity"
	"github.com/go-rns/go-rns/lib/token"
)

func TestIDDerivation(t *testing.T) {
	assert := assert.New(t)

	pub, _, err := x25519.GenerateKeyPair()
	require.NoError(t, err)

	id, err := ID(pub)
	require.NoError(t, err)
	assert.Len(id, RATCHET_ID_SIZE)

	h := data.HashData(pub)
	assert.Equal(h[:RATCHET_ID_SIZE], id)

	_, err = ID(pub[:31])
	assert.ErrorIs(err, ErrInvalidRatchetSize)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	assert := assert.New(t)

	ratchetPub, ratchetPriv, err := x25519.GenerateKeyPair()
	require.NoError(t, err)
	identityHash := bytes.Repeat([]byte{0x44}, data.TRUNCATED_HASH_SIZE)

	plaintext := []byte("forward secret payload")
	sealed, err := Encrypt(plaintext, ratchetPub, identityHash)
	require.NoError(t, err)

	opened, err := Decrypt(sealed, ratchetPriv, identityHash)
	require.NoError(t, err)
	assert.Equal(plaintext, opened)
}

func TestDecryptWrongRatchetFails(t *testing.T) {
	assert := assert.New(t)

	ratchetPub, _, err := x25519.GenerateKeyPair()
	require.NoError(t, err)
	_, otherPriv, err := x25519.GenerateKeyPair()
	require.NoError(t, err)
	identityHash := bytes.Repeat([]byte{0x44}, data.TRUNCATED_HASH_SIZE)

	sealed, err := Encrypt([]byte("secret"), ratchetPub, identityHash)
	require.NoError(t, err)

	_, err = Decrypt(sealed, otherPriv, identityHash)
	assert.Error(err)
}

func TestEncryptDeterministic(t *testing.T) {
	assert := assert.New(t)

	ratchetPub, _, err := x25519.FromSeed(bytes.Repeat([]byte{0x10}, RATCHET_SIZE))
	require.NoError(t, err)
	identityHash := bytes.Repeat([]byte{0x20}, data.TRUNCATED_HASH_SIZE)
	ephemeralSeed := bytes.Repeat([]byte{0x30}, RATCHET_SIZE)
	iv := make([]byte, 16)

	a, err := EncryptDeterministic([]byte("vector"), ratchetPub, identityHash, ephemeralSeed, iv)
	require.NoError(t, err)
	b, err := EncryptDeterministic([]byte("vector"), ratchetPub, identityHash, ephemeralSeed, iv)
	require.NoError(t, err)
	assert.Equal(a, b)
}

func TestEncryptionDerives64ByteTokenKey(t *testing.T) {
	assert := assert.New(t)

	ratchetPub, ratchetPriv, err := x25519.FromSeed(bytes.Repeat([]byte{0x10}, RATCHET_SIZE))
	require.NoError(t, err)
	identityHash := bytes.Repeat([]byte{0x20}, data.TRUNCATED_HASH_SIZE)
	ephemeralSeed := bytes.Repeat([]byte{0x30}, RATCHET_SIZE)
	iv := make([]byte, 16)
	plaintext := []byte("mode check")

	sealed, err := EncryptDeterministic(plaintext, ratchetPub, identityHash, ephemeralSeed, iv)
	require.NoError(t, err)

	// A 64-byte HKDF output keys the token in AES-256 mode.
	shared, err := x25519.Exchange(ratchetPriv, sealed[:RATCHET_SIZE])
	require.NoError(t, err)
	derived, err := hkdf.Derive(token.KEY_SIZE_256, shared, identityHash, nil)
	require.NoError(t, err)

	tok, err := token.New(derived)
	require.NoError(t, err)
	opened, err := tok.Decrypt(sealed[RATCHET_SIZE:])
	require.NoError(t, err)
	assert.Equal(plaintext, opened)
}

func TestEncryptValidation(t *testing.T) {
	assert := assert.New(t)

	_, err := Encrypt([]byte("x"), make([]byte, 31), make([]byte, 16))
	assert.ErrorIs(err, ErrInvalidRatchetSize)
	_, err = Encrypt([]byte("x"), make([]byte, 32), make([]byte, 15))
	assert.ErrorIs(err, ErrInvalidSaltSize)
	_, err = Decrypt(make([]byte, 10), make([]byte, 32), make([]byte, 16))
	assert.ErrorIs(err, ErrTokenTooShort)
}

func TestExtractFromAnnounce(t *testing.T) {
	assert := assert.New(t)

	id, err := identity.New()
	require.NoError(t, err)

	ratchetPub, _, err := x25519.GenerateKeyPair()
	require.NoError(t, err)

	// Announce carrying a ratchet.
	a, _, err := announce.ForIdentity(id, "test", nil, ratchetPub, nil)
	require.NoError(t, err)
	raw, err := a.Pack()
	require.NoError(t, err)

	pub, ratchetID, err := ExtractFromAnnounce(raw, true)
	require.NoError(t, err)
	assert.Equal(ratchetPub, pub)
	expectedID, err := ID(ratchetPub)
	require.NoError(t, err)
	assert.Equal(expectedID, ratchetID)

	// Announce without a ratchet.
	plain, _, err := announce.ForIdentity(id, "test", nil, nil, nil)
	require.NoError(t, err)
	plainRaw, err := plain.Pack()
	require.NoError(t, err)
	pub, ratchetID, err = ExtractFromAnnounce(plainRaw, false)
	require.NoError(t, err)
	assert.Nil(pub)
	assert.Nil(ratchetID)

	// Announce with an all-zero ratchet region.
	zeroed, _, err := announce.ForIdentity(id, "test", nil, make([]byte, RATCHET_SIZE), nil)
	require.NoError(t, err)
	zeroRaw, err := zeroed.Pack()
	require.NoError(t, err)
	pub, ratchetID, err = ExtractFromAnnounce(zeroRaw, true)
	require.NoError(t, err)
	assert.Nil(pub)
	assert.Nil(ratchetID)

	// No-ratchet announce whose app_data makes it as long as a
	// ratcheted one still extracts nothing.
	long, _, err := announce.ForIdentity(id, "test", nil, nil, bytes.Repeat([]byte{0x77}, 40))
	require.NoError(t, err)
	longRaw, err := long.Pack()
	require.NoError(t, err)
	pub, ratchetID, err = ExtractFromAnnounce(longRaw, false)
	require.NoError(t, err)
	assert.Nil(pub)
	assert.Nil(ratchetID)
}

func TestIdentityDecryptsRatchetTraffic(t *testing.T) {
	assert := assert.New(t)

	recipient, err := identity.New()
	require.NoError(t, err)
	remote, err := identity.FromPublicKey(recipient.PublicKey())
	require.NoError(t, err)

	store := NewStore(0, 0)
	ratchetPub, err := store.Rotate()
	require.NoError(t, err)

	sealed, err := remote.Encrypt([]byte("ratcheted"), ratchetPub)
	require.NoError(t, err)

	opened, usedID, err := recipient.Decrypt(sealed, store.DecryptionKeys())
	require.NoError(t, err)
	assert.Equal([]byte("ratcheted"), opened)

	expectedID, err := ID(ratchetPub)
	require.NoError(t, err)
	assert.Equal(expectedID, usedID)
}
