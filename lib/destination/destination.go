// Package destination implements addressable endpoint hashing
package destination

import (
	"strings"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/go-rns/go-rns/lib/common/data"
)

var log = logger.GetGoI2PLogger()

/*
[Destination Hash]

Description
A destination is addressed by hashing its dotted name path together
with the owning identity. The name hash commits to the application
name and aspects, the destination hash additionally commits to the
identity.

name_hash :: SHA256(app_name "." aspect_1 "." ... aspect_n)
             length -> first 10 bytes

destination_hash :: SHA256(name_hash || identity_hash)
                    length -> first 16 bytes
*/

var (
	ErrEmptyAppName        = oops.Errorf("destination app name must not be empty")
	ErrDottedName          = oops.Errorf("destination names must not contain dots")
	ErrInvalidIdentityHash = oops.Errorf("identity hash must be exactly 16 bytes")
)

// ExpandName joins an application name and its aspects with dots.
func ExpandName(appName string, aspects ...string) (string, error) {
	if appName == "" {
		return "", ErrEmptyAppName
	}
	if strings.Contains(appName, ".") {
		return "", ErrDottedName
	}
	parts := make([]string, 0, len(aspects)+1)
	parts = append(parts, appName)
	for _, aspect := range aspects {
		if strings.Contains(aspect, ".") {
			return "", ErrDottedName
		}
		parts = append(parts, aspect)
	}
	return strings.Join(parts, "."), nil
}

// NameHash returns the 10-byte name hash for an application name and
// aspect path.
func NameHash(appName string, aspects ...string) ([]byte, error) {
	name, err := ExpandName(appName, aspects...)
	if err != nil {
		return nil, err
	}
	return data.NameHash([]byte(name)), nil
}

// HashFromNameHash returns the 16-byte destination hash for a
// precomputed name hash and identity hash.
func HashFromNameHash(nameHash, identityHash []byte) ([]byte, error) {
	if len(nameHash) != data.NAME_HASH_SIZE {
		return nil, oops.Errorf("name hash must be exactly %d bytes", data.NAME_HASH_SIZE)
	}
	if len(identityHash) != data.TRUNCATED_HASH_SIZE {
		return nil, ErrInvalidIdentityHash
	}
	material := make([]byte, 0, len(nameHash)+len(identityHash))
	material = append(material, nameHash...)
	material = append(material, identityHash...)
	return data.TruncatedHash(material), nil
}

// Hash returns the 16-byte destination hash for an identity hash and a
// name path. Destinations are always recomputable and never stored.
func Hash(identityHash []byte, appName string, aspects ...string) ([]byte, error) {
	nameHash, err := NameHash(appName, aspects...)
	if err != nil {
		return nil, err
	}
	destHash, err := HashFromNameHash(nameHash, identityHash)
	if err != nil {
		return nil, err
	}
	log.WithFields(logger.Fields{
		"app_name": appName,
		"aspects":  len(aspects),
	}).Debug("Derived destination hash")
	return destHash, nil
}
