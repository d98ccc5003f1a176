package aes

import (
	"bytes"
	"crypto/aes"

	"github.com/samber/oops"
)

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - (len(data) % blockSize)
	padText := bytes.Repeat([]byte{byte(padding)}, padding)
	return append(data, padText...)
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	length := len(data)
	if length == 0 {
		log.Error("Data is empty")
		return nil, oops.Errorf("data is empty")
	}
	padding := int(data[length-1])
	if padding == 0 || padding > aes.BlockSize {
		log.WithField("padding", padding).Error("Invalid padding")
		return nil, oops.Errorf("invalid padding")
	}
	paddingStart := length - padding
	for i := paddingStart; i < length; i++ {
		if data[i] != byte(padding) {
			log.Error("Invalid padding")
			return nil, oops.Errorf("invalid padding")
		}
	}
	return data[:paddingStart], nil
}
