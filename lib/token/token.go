// Package token implements the authenticated symmetric ciphertext envelope
package token

import (
	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/go-rns/go-rns/lib/common/data"
	"github.com/go-rns/go-rns/lib/crypto/aes"
	"github.com/go-rns/go-rns/lib/crypto/hmac"
)

var log = logger.GetGoI2PLogger()

// Sizes in bytes of the token envelope components
const (
	TOKEN_IV_SIZE   = 16
	TOKEN_HMAC_SIZE = 32
	TOKEN_MIN_SIZE  = TOKEN_IV_SIZE + aes.BLOCK_SIZE + TOKEN_HMAC_SIZE

	KEY_SIZE_128 = 32
	KEY_SIZE_256 = 64
)

/*
[Token]

Description
An authenticated symmetric ciphertext envelope. The plaintext is padded
with PKCS#7, encrypted with AES-CBC under the encryption half of the
key, and authenticated with HMAC-SHA256 under the signing half.

+----+----+----+----+----+----+----+----+
| iv                                    |
+                                       +
|                                       |
+----+----+----+----+----+----+----+----+
| ciphertext ...                        |
+----+----+----+----+----+----+----+----+
| hmac                                  |
+                                       +
|                                       |
+                                       +
|                                       |
+----+----+----+----+----+----+----+----+

iv :: random initialization vector
      length -> 16 bytes

ciphertext :: AES-CBC ciphertext
              length -> multiple of 16 bytes

hmac :: HMAC-SHA256 over iv and ciphertext, keyed by the signing half
        length -> 32 bytes
*/

var (
	ErrUnsupportedKeySize   = oops.Errorf("unsupported token key size")
	ErrTokenTooShort        = oops.Errorf("token too short")
	ErrInvalidIVSize        = oops.Errorf("invalid token IV size")
	ErrAuthenticationFailed = oops.Errorf("token authentication failed")
)

// Token encrypts and authenticates byte buffers under a split
// encryption/signing key. A 32-byte key selects AES-128 with 16-byte
// halves, a 64-byte key selects AES-256 with 32-byte halves. The
// envelope layout is identical in both modes.
type Token struct {
	encryptionKey []byte
	signingKey    []byte
}

// New creates a Token for the given key. The encryption half is the
// first half of the key, the signing half the second.
func New(key []byte) (*Token, error) {
	switch len(key) {
	case KEY_SIZE_128, KEY_SIZE_256:
	default:
		log.WithField("key_length", len(key)).Error("Unsupported token key size")
		return nil, ErrUnsupportedKeySize
	}
	half := len(key) / 2
	return &Token{
		encryptionKey: key[:half],
		signingKey:    key[half:],
	}, nil
}

// Encrypt seals plaintext into a token. If iv is nil a random IV is
// drawn from the secure random source; a caller-supplied IV is used
// unconditionally, which callers rely on for reproducible vectors.
func (t *Token) Encrypt(plaintext, iv []byte) ([]byte, error) {
	if iv == nil {
		var err error
		iv, err = data.RandomBytes(TOKEN_IV_SIZE)
		if err != nil {
			return nil, err
		}
	}
	if len(iv) != TOKEN_IV_SIZE {
		return nil, ErrInvalidIVSize
	}

	ciphertext, err := aes.EncryptCBC(t.encryptionKey, iv, plaintext)
	if err != nil {
		return nil, err
	}

	signed := make([]byte, 0, TOKEN_IV_SIZE+len(ciphertext)+TOKEN_HMAC_SIZE)
	signed = append(signed, iv...)
	signed = append(signed, ciphertext...)
	mac := hmac.Sum(t.signingKey, signed)

	log.WithFields(logger.Fields{
		"plaintext_length": len(plaintext),
		"token_length":     len(signed) + len(mac),
	}).Debug("Token sealed")
	return append(signed, mac...), nil
}

// Decrypt verifies and opens a token. The HMAC is checked in constant
// time before any decryption is attempted; a mismatch returns
// ErrAuthenticationFailed rather than a parse error.
func (t *Token) Decrypt(tokenBytes []byte) ([]byte, error) {
	if len(tokenBytes) < TOKEN_MIN_SIZE {
		log.WithField("token_length", len(tokenBytes)).Error("Token too short")
		return nil, ErrTokenTooShort
	}
	if !t.VerifyHMAC(tokenBytes) {
		log.Error("Token HMAC verification failed")
		return nil, ErrAuthenticationFailed
	}

	iv := tokenBytes[:TOKEN_IV_SIZE]
	ciphertext := tokenBytes[TOKEN_IV_SIZE : len(tokenBytes)-TOKEN_HMAC_SIZE]
	return aes.DecryptCBC(t.encryptionKey, iv, ciphertext)
}

// VerifyHMAC reports whether the trailing 32 bytes of tokenBytes
// authenticate the IV and ciphertext, without decrypting.
func (t *Token) VerifyHMAC(tokenBytes []byte) bool {
	if len(tokenBytes) < TOKEN_MIN_SIZE {
		return false
	}
	mac := tokenBytes[len(tokenBytes)-TOKEN_HMAC_SIZE:]
	return hmac.Validate(t.signingKey, tokenBytes[:len(tokenBytes)-TOKEN_HMAC_SIZE], mac)
}
