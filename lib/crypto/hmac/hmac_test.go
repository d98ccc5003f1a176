package hmac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumAndValidate(t *testing.T) {
	assert := assert.New(t)

	key := []byte("signing key")
	data := []byte("iv and ciphertext")

	digest := Sum(key, data)
	assert.Len(digest, DIGEST_SIZE)
	assert.True(Validate(key, data, digest))
}

func TestValidateRejectsMismatch(t *testing.T) {
	assert := assert.New(t)

	key := []byte("signing key")
	data := []byte("iv and ciphertext")
	digest := Sum(key, data)

	assert.False(Validate([]byte("other key"), data, digest))
	assert.False(Validate(key, []byte("other data"), digest))

	tampered := append([]byte(nil), digest...)
	tampered[0] ^= 0x01
	assert.False(Validate(key, data, tampered))
}

func TestSumDeterministic(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Sum([]byte("k"), []byte("d")), Sum([]byte("k"), []byte("d")))
}
