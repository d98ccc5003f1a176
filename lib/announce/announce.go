// Package announce implements the signed peer-advertisement codec
package announce

import (
	"encoding/binary"
	"time"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/go-rns/go-rns/lib/common/data"
	"github.com/go-rns/go-rns/lib/crypto/ed25519"
	"github.com/go-rns/go-rns/lib/destination"
	"github.com/go-rns/go-rns/lib/identity"
)

var log = logger.GetGoI2PLogger()

// Sizes in bytes of announce payload components
const (
	PUBLIC_KEY_SIZE  = 64
	NAME_HASH_SIZE   = 10
	RANDOM_HASH_SIZE = 10
	RATCHET_SIZE     = 32
	SIGNATURE_SIZE   = 64

	MIN_SIZE         = PUBLIC_KEY_SIZE + NAME_HASH_SIZE + RANDOM_HASH_SIZE + SIGNATURE_SIZE
	MIN_RATCHET_SIZE = MIN_SIZE + RATCHET_SIZE
)

/*
[Announce]

Description
A signed broadcast of a destination's public key and addressing
metadata. The ratchet region is present or absent structurally, and the
carrying packet signals which with its context flag: payload length
alone cannot discriminate, because a no-ratchet announce with 32 or
more bytes of app_data is as long as a ratcheted one. An all-zero
ratchet region is treated as "no ratchet".

+----+----+----+----+----+----+----+----+
| public_key (64 bytes)                 |
+----+----+----+----+----+----+----+----+
| name_hash (10 bytes)                  |
+----+----+----+----+----+----+----+----+
| random_hash (10 bytes)                |
+----+----+----+----+----+----+----+----+
| ratchet (32 bytes, optional)          |
+----+----+----+----+----+----+----+----+
| signature (64 bytes)                  |
+----+----+----+----+----+----+----+----+
| app_data ...                          |
+----+----+----+----+----+----+----+----+

random_hash :: 5 random bytes followed by the low 5 bytes of the
               announce unix time, big-endian
*/

var (
	ErrMalformedAnnounce = oops.Errorf("malformed announce payload")
	ErrInvalidFieldSize  = oops.Errorf("invalid announce field size")
	ErrUnsigned          = oops.Errorf("announce has not been signed")
)

// Announce is the decoded form of an announce payload.
type Announce struct {
	PublicKey  []byte
	NameHash   []byte
	RandomHash []byte
	// Ratchet is the raw 32-byte ratchet region, or nil when the wire
	// payload carried none. Presence on the wire is signalled by the
	// carrying packet's context flag. An all-zero region is kept for
	// byte-exact round trips but reported absent by HasRatchet.
	Ratchet   []byte
	Signature []byte
	AppData   []byte
}

// HasRatchet reports whether the announce carries a usable ratchet
// key. An absent or all-zero ratchet region counts as no ratchet.
func (a *Announce) HasRatchet() bool {
	return len(a.Ratchet) == RATCHET_SIZE && !data.IsZero(a.Ratchet)
}

// HasRatchetRegion reports whether the wire payload includes the
// 32-byte ratchet region, usable or not. The context flag of the
// packet framing this announce must match it.
func (a *Announce) HasRatchetRegion() bool {
	return len(a.Ratchet) == RATCHET_SIZE
}

// Pack serializes the announce payload. The ratchet region is emitted
// only when present.
func (a *Announce) Pack() ([]byte, error) {
	if err := a.validateFields(); err != nil {
		return nil, err
	}
	if len(a.Signature) != SIGNATURE_SIZE {
		return nil, ErrUnsigned
	}

	raw := make([]byte, 0, MIN_RATCHET_SIZE+len(a.AppData))
	raw = append(raw, a.PublicKey...)
	raw = append(raw, a.NameHash...)
	raw = append(raw, a.RandomHash...)
	raw = append(raw, a.Ratchet...)
	raw = append(raw, a.Signature...)
	raw = append(raw, a.AppData...)
	return raw, nil
}

// Unpack parses an announce payload. ratchet tells the parser whether
// the payload carries a ratchet region; on the wire this is the
// carrying packet's context flag. Length cannot decide it, since a
// no-ratchet announce with 32 or more bytes of app_data is exactly as
// long as a ratcheted one.
func Unpack(raw []byte, ratchet bool) (*Announce, error) {
	minSize := MIN_SIZE
	if ratchet {
		minSize = MIN_RATCHET_SIZE
	}
	if len(raw) < minSize {
		log.WithField("raw_length", len(raw)).Error("Announce payload too short")
		return nil, ErrMalformedAnnounce
	}

	a := &Announce{
		PublicKey:  append([]byte(nil), raw[:PUBLIC_KEY_SIZE]...),
		NameHash:   append([]byte(nil), raw[PUBLIC_KEY_SIZE:PUBLIC_KEY_SIZE+NAME_HASH_SIZE]...),
		RandomHash: append([]byte(nil), raw[PUBLIC_KEY_SIZE+NAME_HASH_SIZE:PUBLIC_KEY_SIZE+NAME_HASH_SIZE+RANDOM_HASH_SIZE]...),
	}
	offset := PUBLIC_KEY_SIZE + NAME_HASH_SIZE + RANDOM_HASH_SIZE
	if ratchet {
		a.Ratchet = append([]byte(nil), raw[offset:offset+RATCHET_SIZE]...)
		offset += RATCHET_SIZE
	}
	a.Signature = append([]byte(nil), raw[offset:offset+SIGNATURE_SIZE]...)
	offset += SIGNATURE_SIZE
	a.AppData = append([]byte(nil), raw[offset:]...)

	return a, nil
}

func (a *Announce) validateFields() error {
	if len(a.PublicKey) != PUBLIC_KEY_SIZE ||
		len(a.NameHash) != NAME_HASH_SIZE ||
		len(a.RandomHash) != RANDOM_HASH_SIZE {
		return ErrInvalidFieldSize
	}
	if a.Ratchet != nil && len(a.Ratchet) != RATCHET_SIZE {
		return ErrInvalidFieldSize
	}
	return nil
}

// signedData builds the exact byte concatenation the announce
// signature covers.
func (a *Announce) signedData(destinationHash []byte) []byte {
	signed := make([]byte, 0, len(destinationHash)+MIN_RATCHET_SIZE+len(a.AppData))
	signed = append(signed, destinationHash...)
	signed = append(signed, a.PublicKey...)
	signed = append(signed, a.NameHash...)
	signed = append(signed, a.RandomHash...)
	signed = append(signed, a.Ratchet...)
	signed = append(signed, a.AppData...)
	return signed
}

// Sign signs the announce for the given destination hash with the
// identity's Ed25519 key and stores the signature.
func (a *Announce) Sign(id *identity.Identity, destinationHash []byte) error {
	if err := a.validateFields(); err != nil {
		return err
	}
	signature, err := id.Sign(a.signedData(destinationHash))
	if err != nil {
		return err
	}
	a.Signature = signature
	return nil
}

// Verify checks the announce signature against the embedded public
// key. When validateDestination is set it additionally recomputes the
// identity hash and destination hash from the embedded public key and
// name hash and compares against the claimed destination hash. Both
// checks must hold. A false result is a normal adversarial outcome;
// the error return reports only malformed input.
func (a *Announce) Verify(destinationHash []byte, validateDestination bool) (bool, error) {
	if err := a.validateFields(); err != nil {
		return false, err
	}
	if len(a.Signature) != SIGNATURE_SIZE {
		return false, ErrMalformedAnnounce
	}

	signingKey := a.PublicKey[32:]
	if !ed25519.Verify(signingKey, a.signedData(destinationHash), a.Signature) {
		log.Debug("Announce signature invalid")
		return false, nil
	}

	if validateDestination {
		identityHash := data.TruncatedHash(a.PublicKey)
		expected, err := destination.HashFromNameHash(a.NameHash, identityHash)
		if err != nil {
			return false, err
		}
		if !data.ConstantTimeEqual(expected, destinationHash) {
			log.Debug("Announce destination hash mismatch")
			return false, nil
		}
	}
	return true, nil
}

// NewRandomHash builds the announce random hash: five random bytes
// followed by the low five bytes of the current unix time, big-endian.
func NewRandomHash() ([]byte, error) {
	random, err := data.RandomBytes(5)
	if err != nil {
		return nil, err
	}
	return RandomHashAt(random, time.Now()), nil
}

// RandomHashAt builds a random hash from caller-supplied entropy and
// time, for reproducible output. random must be 5 bytes.
func RandomHashAt(random []byte, at time.Time) []byte {
	var timeBytes [8]byte
	binary.BigEndian.PutUint64(timeBytes[:], uint64(at.Unix()))
	out := make([]byte, 0, RANDOM_HASH_SIZE)
	out = append(out, random[:5]...)
	return append(out, timeBytes[3:]...)
}

// ForIdentity builds and signs an announce for an identity's
// destination. ratchet may be nil for an announce without forward
// secrecy. The destination hash the announce was signed for is
// returned alongside it.
func ForIdentity(id *identity.Identity, appName string, aspects []string, ratchet, appData []byte) (*Announce, []byte, error) {
	nameHash, err := destination.NameHash(appName, aspects...)
	if err != nil {
		return nil, nil, err
	}
	destHash, err := destination.HashFromNameHash(nameHash, id.Hash())
	if err != nil {
		return nil, nil, err
	}
	randomHash, err := NewRandomHash()
	if err != nil {
		return nil, nil, err
	}

	a := &Announce{
		PublicKey:  id.PublicKey(),
		NameHash:   nameHash,
		RandomHash: randomHash,
		Ratchet:    ratchet,
		AppData:    appData,
	}
	if err := a.Sign(id, destHash); err != nil {
		return nil, nil, err
	}
	log.WithFields(logger.Fields{
		"app_name":    appName,
		"has_ratchet": a.HasRatchet(),
	}).Debug("Built announce")
	return a, destHash, nil
}
