package announce

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-rns/go-rns/lib/identity"
)

func newTestIdentity(t *testing.T) *identity.Identity {
	t.Helper()
	id, err := identity.New()
	require.NoError(t, err)
	return id
}

func TestForIdentityRoundTrip(t *testing.T) {
	assert := assert.New(t)

	id := newTestIdentity(t)
	a, destHash, err := ForIdentity(id, "test", nil, nil, []byte("node name"))
	require.NoError(t, err)

	raw, err := a.Pack()
	require.NoError(t, err)
	assert.Len(raw, MIN_SIZE+len("node name"))

	parsed, err := Unpack(raw, false)
	require.NoError(t, err)
	assert.Equal(a.PublicKey, parsed.PublicKey)
	assert.Equal(a.NameHash, parsed.NameHash)
	assert.Equal(a.RandomHash, parsed.RandomHash)
	assert.Equal(a.Signature, parsed.Signature)
	assert.Equal(a.AppData, parsed.AppData)
	assert.False(parsed.HasRatchet())

	ok, err := parsed.Verify(destHash, true)
	require.NoError(t, err)
	assert.True(ok)
}

func TestRatchetAnnounce(t *testing.T) {
	assert := assert.New(t)

	id := newTestIdentity(t)
	ratchet := bytes.Repeat([]byte{0x5A}, RATCHET_SIZE)

	a, destHash, err := ForIdentity(id, "test", []string{"aspect"}, ratchet, nil)
	require.NoError(t, err)

	raw, err := a.Pack()
	require.NoError(t, err)
	assert.Len(raw, MIN_RATCHET_SIZE)

	parsed, err := Unpack(raw, true)
	require.NoError(t, err)
	assert.True(parsed.HasRatchet())
	assert.Equal(ratchet, parsed.Ratchet)

	ok, err := parsed.Verify(destHash, true)
	require.NoError(t, err)
	assert.True(ok)
}

func TestZeroRatchetTreatedAsAbsent(t *testing.T) {
	assert := assert.New(t)

	id := newTestIdentity(t)
	zero := make([]byte, RATCHET_SIZE)

	a, destHash, err := ForIdentity(id, "test", nil, zero, nil)
	require.NoError(t, err)

	raw, err := a.Pack()
	require.NoError(t, err)

	parsed, err := Unpack(raw, true)
	require.NoError(t, err)
	// The region is on the wire but reports no usable ratchet.
	assert.False(parsed.HasRatchet())
	assert.True(parsed.HasRatchetRegion())
	assert.Equal(zero, parsed.Ratchet)

	// The signature still covers the zero region.
	ok, err := parsed.Verify(destHash, true)
	require.NoError(t, err)
	assert.True(ok)
}

func TestVerifyRejectsTampering(t *testing.T) {
	assert := assert.New(t)

	id := newTestIdentity(t)
	a, destHash, err := ForIdentity(id, "test", nil, nil, []byte("app data"))
	require.NoError(t, err)

	// Tampered app data invalidates the signature.
	a.AppData = []byte("app dat4")
	ok, err := a.Verify(destHash, false)
	require.NoError(t, err)
	assert.False(ok)
}

func TestVerifyRejectsWrongDestination(t *testing.T) {
	assert := assert.New(t)

	id := newTestIdentity(t)
	a, _, err := ForIdentity(id, "test", nil, nil, nil)
	require.NoError(t, err)

	wrongDest := bytes.Repeat([]byte{0xFF}, 16)
	ok, err := a.Verify(wrongDest, true)
	require.NoError(t, err)
	assert.False(ok)
}

func TestVerifyRejectsSubstitutedPublicKey(t *testing.T) {
	assert := assert.New(t)

	id := newTestIdentity(t)
	impostor := newTestIdentity(t)

	a, destHash, err := ForIdentity(id, "test", nil, nil, nil)
	require.NoError(t, err)

	// Swapping in another public key breaks both the signature and the
	// destination hash recomputation.
	a.PublicKey = impostor.PublicKey()
	ok, err := a.Verify(destHash, true)
	require.NoError(t, err)
	assert.False(ok)
}

func TestLargeAppDataWithoutRatchet(t *testing.T) {
	assert := assert.New(t)

	// app_data of 32 bytes or more makes a no-ratchet payload as long
	// as a ratcheted one; the parser must not mistake the signature
	// prefix for a ratchet region.
	id := newTestIdentity(t)
	appData := bytes.Repeat([]byte{0x77}, 40)

	a, destHash, err := ForIdentity(id, "test", nil, nil, appData)
	require.NoError(t, err)

	raw, err := a.Pack()
	require.NoError(t, err)
	assert.GreaterOrEqual(len(raw), MIN_RATCHET_SIZE)

	parsed, err := Unpack(raw, false)
	require.NoError(t, err)
	assert.False(parsed.HasRatchetRegion())
	assert.Equal(a.Signature, parsed.Signature)
	assert.Equal(appData, parsed.AppData)

	ok, err := parsed.Verify(destHash, true)
	require.NoError(t, err)
	assert.True(ok)
}

func TestUnpackRejectsShortPayload(t *testing.T) {
	assert := assert.New(t)

	_, err := Unpack(make([]byte, MIN_SIZE-1), false)
	assert.ErrorIs(err, ErrMalformedAnnounce)

	// A ratcheted parse needs the full ratchet minimum.
	_, err = Unpack(make([]byte, MIN_RATCHET_SIZE-1), true)
	assert.ErrorIs(err, ErrMalformedAnnounce)
}

func TestRandomHashLayout(t *testing.T) {
	assert := assert.New(t)

	random := []byte{1, 2, 3, 4, 5}
	at := time.Unix(0x0102030405, 0)
	rh := RandomHashAt(random, at)

	assert.Len(rh, RANDOM_HASH_SIZE)
	assert.Equal(random, rh[:5])
	// Low five bytes of the unix time, big-endian.
	assert.Equal([]byte{0x01, 0x02, 0x03, 0x04, 0x05}, rh[5:])
}
