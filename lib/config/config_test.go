package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/go-rns/go-rns/lib/token"
)

func TestDefaults(t *testing.T) {
	assert := assert.New(t)

	viper.Reset()
	setDefaults()
	cfg := NewCoreConfigFromViper()

	assert.Equal("aes256", cfg.TokenMode)
	assert.Equal(30*24*time.Hour, cfg.RatchetExpiry)
	assert.Equal(512, cfg.RatchetMaxRetained)
	assert.Equal(8, cfg.IFACSize)
	assert.Empty(cfg.IFACNetName)
}

func TestOriginSecret(t *testing.T) {
	assert := assert.New(t)

	cfg := &CoreConfig{}
	assert.Nil(cfg.OriginSecret())

	cfg = &CoreConfig{IFACNetName: "test_network", IFACPassphrase: "test_passphrase"}
	assert.Equal([]byte("test_networktest_passphrase"), cfg.OriginSecret())

	cfg = &CoreConfig{IFACNetName: "only_name"}
	assert.Equal([]byte("only_name"), cfg.OriginSecret())
}

func TestTokenKeySize(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(token.KEY_SIZE_128, (&CoreConfig{TokenMode: "aes128"}).TokenKeySize())
	assert.Equal(token.KEY_SIZE_256, (&CoreConfig{TokenMode: "aes256"}).TokenKeySize())
	assert.Equal(token.KEY_SIZE_256, (&CoreConfig{}).TokenKeySize())
}
