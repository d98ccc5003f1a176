// Package aes implements AES-CBC with PKCS#7 padding over raw byte buffers
package aes

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

const (
	BLOCK_SIZE   = 16
	KEY_SIZE_128 = 16
	KEY_SIZE_256 = 32
)

// EncryptCBC encrypts data with AES-CBC under key and iv, applying
// PKCS#7 padding. key must be 16 or 32 bytes, iv exactly one block.
func EncryptCBC(key, iv, data []byte) ([]byte, error) {
	if len(key) != KEY_SIZE_128 && len(key) != KEY_SIZE_256 {
		return nil, oops.Errorf("invalid AES key size %d", len(key))
	}
	if len(iv) != BLOCK_SIZE {
		return nil, oops.Errorf("invalid AES IV size %d", len(iv))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		log.WithError(err).Error("Failed to create AES cipher")
		return nil, err
	}

	plaintext := pkcs7Pad(data, aes.BlockSize)
	ciphertext := make([]byte, len(plaintext))
	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ciphertext, plaintext)

	return ciphertext, nil
}

// DecryptCBC decrypts AES-CBC ciphertext under key and iv and removes
// PKCS#7 padding.
func DecryptCBC(key, iv, data []byte) ([]byte, error) {
	if len(key) != KEY_SIZE_128 && len(key) != KEY_SIZE_256 {
		return nil, oops.Errorf("invalid AES key size %d", len(key))
	}
	if len(iv) != BLOCK_SIZE {
		return nil, oops.Errorf("invalid AES IV size %d", len(iv))
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		log.Error("Ciphertext is not a multiple of the block size")
		return nil, oops.Errorf("ciphertext is not a multiple of the block size")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		log.WithError(err).Error("Failed to create AES cipher")
		return nil, err
	}

	plaintext := make([]byte, len(data))
	mode := cipher.NewCBCDecrypter(block, iv)
	mode.CryptBlocks(plaintext, data)

	plaintext, err = pkcs7Unpad(plaintext)
	if err != nil {
		log.WithError(err).Error("Failed to unpad plaintext")
		return nil, err
	}
	return plaintext, nil
}
