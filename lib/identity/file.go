package identity

import (
	"os"

	"github.com/samber/oops"
)

/*
[Identity File Record]

Description
The single long-term serialization record for an identity: both private
seeds, written whole.

+----+----+----+----+----+----+----+----+
| x25519_private (32 bytes)             |
+----+----+----+----+----+----+----+----+
| ed25519_seed (32 bytes)               |
+----+----+----+----+----+----+----+----+
*/

// SaveToFile writes the 64-byte private key record to path.
func (i *Identity) SaveToFile(path string) error {
	key, err := i.PrivateKey()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return oops.Errorf("failed to write identity file: %w", err)
	}
	log.WithField("identity_hash", i.Hex()).Debug("Identity saved to file")
	return nil
}

// LoadFromFile reads a 64-byte private key record and rebuilds the
// identity. Any other record length is a validation error.
func LoadFromFile(path string) (*Identity, error) {
	record, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Errorf("failed to read identity file: %w", err)
	}
	if len(record) != PRIVATE_KEY_SIZE {
		return nil, oops.Errorf("invalid identity file: expected %d bytes, got %d", PRIVATE_KEY_SIZE, len(record))
	}
	return FromSeeds(record[:KEY_SIZE], record[KEY_SIZE:])
}
