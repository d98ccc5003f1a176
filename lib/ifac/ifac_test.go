package ifac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	assert := assert.New(t)

	key, err := DeriveKey([]byte("test_networktest_passphrase"))
	require.NoError(t, err)
	assert.Len(key, KEY_SIZE)

	// Derivation is deterministic per origin secret.
	again, err := DeriveKey([]byte("test_networktest_passphrase"))
	require.NoError(t, err)
	assert.Equal(key, again)

	other, err := DeriveKey([]byte("other_network"))
	require.NoError(t, err)
	assert.NotEqual(key, other)

	_, err = DeriveKey(nil)
	assert.ErrorIs(err, ErrEmptyOriginSecret)
}

func TestComputeIsDeterministic(t *testing.T) {
	assert := assert.New(t)

	key, err := DeriveKey([]byte("net"))
	require.NoError(t, err)

	packetBytes := []byte("raw framed packet")
	a, err := Compute(key, packetBytes, 8)
	require.NoError(t, err)
	b, err := Compute(key, packetBytes, 8)
	require.NoError(t, err)

	// Identical packet bytes always yield identical tags.
	assert.Equal(a, b)
	assert.Len(a, 8)
}

func TestVerify(t *testing.T) {
	assert := assert.New(t)

	key, err := DeriveKey([]byte("net"))
	require.NoError(t, err)
	packetBytes := []byte("raw framed packet")

	tag, err := Compute(key, packetBytes, 16)
	require.NoError(t, err)

	assert.True(Verify(key, packetBytes, tag))
	assert.False(Verify(key, []byte("different packet"), tag))

	foreignKey, err := DeriveKey([]byte("foreign"))
	require.NoError(t, err)
	assert.False(Verify(foreignKey, packetBytes, tag))

	tampered := append([]byte(nil), tag...)
	tampered[0] ^= 0x01
	assert.False(Verify(key, packetBytes, tampered))
}

func TestTagIsSignatureSuffix(t *testing.T) {
	assert := assert.New(t)

	key, err := DeriveKey([]byte("net"))
	require.NoError(t, err)
	packetBytes := []byte("pkt")

	full, err := Compute(key, packetBytes, MAX_TAG_SIZE)
	require.NoError(t, err)
	short, err := Compute(key, packetBytes, 8)
	require.NoError(t, err)

	assert.Equal(full[MAX_TAG_SIZE-8:], short)
}

func TestComputeValidation(t *testing.T) {
	assert := assert.New(t)

	key, err := DeriveKey([]byte("net"))
	require.NoError(t, err)

	_, err = Compute(key[:32], []byte("pkt"), 8)
	assert.ErrorIs(err, ErrInvalidKeySize)
	_, err = Compute(key, []byte("pkt"), 0)
	assert.ErrorIs(err, ErrInvalidTagSize)
	_, err = Compute(key, []byte("pkt"), MAX_TAG_SIZE+1)
	assert.ErrorIs(err, ErrInvalidTagSize)
}
