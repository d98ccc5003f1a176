// Package config loads core configuration via viper
package config

import (
	"time"

	"github.com/go-i2p/logger"
	"github.com/spf13/viper"

	"github.com/go-rns/go-rns/lib/token"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

// CoreConfig carries the caller-tunable knobs of the core. It is a
// plain value owned by whoever built it; nothing in the core reads
// viper directly.
type CoreConfig struct {
	// TokenMode selects the default token key size: "aes128" or
	// "aes256".
	TokenMode string
	// RatchetExpiry is how long superseded ratchet keys stay usable
	// for decryption.
	RatchetExpiry time.Duration
	// RatchetMaxRetained caps the number of retained ratchet keys.
	RatchetMaxRetained int
	// IFACNetName and IFACPassphrase form the origin secret for
	// interface access codes; both empty disables IFAC.
	IFACNetName    string
	IFACPassphrase string
	// IFACSize is the tag length in bytes.
	IFACSize int
}

// InitConfig points viper at the config file, or the defaults when
// none is given.
func InitConfig() {
	if CfgFile != "" {
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath("$HOME/.go-rns")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.WithError(err).Debug("No config file loaded, using defaults")
	}
}

func setDefaults() {
	viper.SetDefault("token.mode", "aes256")
	viper.SetDefault("ratchet.expiry", (30 * 24 * time.Hour).String())
	viper.SetDefault("ratchet.max_retained", 512)
	viper.SetDefault("ifac.netname", "")
	viper.SetDefault("ifac.passphrase", "")
	viper.SetDefault("ifac.size", 8)
}

// NewCoreConfigFromViper builds a CoreConfig from the current viper
// settings. This is the only place the core touches viper state.
func NewCoreConfigFromViper() *CoreConfig {
	return &CoreConfig{
		TokenMode:          viper.GetString("token.mode"),
		RatchetExpiry:      viper.GetDuration("ratchet.expiry"),
		RatchetMaxRetained: viper.GetInt("ratchet.max_retained"),
		IFACNetName:        viper.GetString("ifac.netname"),
		IFACPassphrase:     viper.GetString("ifac.passphrase"),
		IFACSize:           viper.GetInt("ifac.size"),
	}
}

// OriginSecret joins the IFAC network name and passphrase into the
// origin secret for key derivation, or nil when IFAC is disabled.
func (c *CoreConfig) OriginSecret() []byte {
	if c.IFACNetName == "" && c.IFACPassphrase == "" {
		return nil
	}
	return []byte(c.IFACNetName + c.IFACPassphrase)
}

// TokenKeySize returns the token key length in bytes for the
// configured mode. Anything other than "aes128" selects AES-256.
func (c *CoreConfig) TokenKeySize() int {
	if c.TokenMode == "aes128" {
		return token.KEY_SIZE_128
	}
	return token.KEY_SIZE_256
}
