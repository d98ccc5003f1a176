package ed25519

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	assert := assert.New(t)

	pub, seed, err := GenerateKeyPair()
	require.NoError(t, err)

	message := []byte("link proof material")
	signature, err := Sign(seed, message)
	require.NoError(t, err)

	assert.Len(signature, SIGNATURE_SIZE)
	assert.True(Verify(pub, message, signature))
}

func TestVerifyRejectsTampering(t *testing.T) {
	assert := assert.New(t)

	pub, seed, err := GenerateKeyPair()
	require.NoError(t, err)

	message := []byte("original")
	signature, err := Sign(seed, message)
	require.NoError(t, err)

	assert.False(Verify(pub, []byte("altered"), signature))

	tampered := append([]byte(nil), signature...)
	tampered[0] ^= 0x01
	assert.False(Verify(pub, message, tampered))
}

func TestVerifyMalformedInputs(t *testing.T) {
	assert := assert.New(t)

	pub, seed, err := GenerateKeyPair()
	require.NoError(t, err)
	signature, err := Sign(seed, []byte("m"))
	require.NoError(t, err)

	// Malformed inputs verify false rather than erroring.
	assert.False(Verify(pub[:16], []byte("m"), signature))
	assert.False(Verify(pub, []byte("m"), signature[:32]))
}

func TestDeterministicFromSeed(t *testing.T) {
	assert := assert.New(t)

	seed := []byte("fedcba9876543210fedcba9876543210")
	pub1, err := PublicFrom(seed)
	require.NoError(t, err)
	pub2, err := PublicFrom(seed)
	require.NoError(t, err)
	assert.Equal(pub1, pub2)

	_, err = PublicFrom(seed[:31])
	assert.Error(err)
}
