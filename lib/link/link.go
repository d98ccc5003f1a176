// Package link implements link establishment key derivation and proofs
package link

import (
	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/go-rns/go-rns/lib/common/data"
	"github.com/go-rns/go-rns/lib/crypto/ed25519"
	"github.com/go-rns/go-rns/lib/crypto/hkdf"
	"github.com/go-rns/go-rns/lib/identity"
	"github.com/go-rns/go-rns/lib/packet"
	"github.com/go-rns/go-rns/lib/token"
)

var log = logger.GetGoI2PLogger()

// Sizes in bytes of link establishment components
const (
	LINK_ID_SIZE        = 16
	EPHEMERAL_KEYS_SIZE = 64
	DERIVED_KEY_SIZE    = token.KEY_SIZE_256
)

var (
	ErrNotLinkRequest  = oops.Errorf("packet is not a link request")
	ErrRequestTooShort = oops.Errorf("link request data shorter than the ephemeral key pair")
)

/*
[Link Request]

Description
A link request packet's data is the initiator's ephemeral X25519 public
key followed by its ephemeral Ed25519 public key, optionally followed
by three signalling bytes. The link id is the packet hash of the
request with any signalling suffix stripped, so both ends derive the
same id regardless of MTU negotiation.
*/

// IDFromPacket computes the link id for a link request packet: the
// truncated hash of the packet's hashable part, with any bytes beyond
// the 64-byte ephemeral key pair removed from the data first.
func IDFromPacket(p *packet.Packet) ([]byte, error) {
	if p.Flags.PacketType != packet.PACKET_LINKREQUEST {
		return nil, ErrNotLinkRequest
	}
	if len(p.Data) < EPHEMERAL_KEYS_SIZE {
		log.WithField("data_length", len(p.Data)).Error("Link request data too short")
		return nil, ErrRequestTooShort
	}

	trimmed := *p
	trimmed.Data = p.Data[:EPHEMERAL_KEYS_SIZE]
	linkID, err := trimmed.Hash()
	if err != nil {
		return nil, err
	}

	log.WithField("link_id_length", len(linkID)).Debug("Derived link id from request")
	return linkID, nil
}

// DeriveKeys expands an ECDH shared secret into the link's symmetric
// key, salted by the link id. The HKDF info is fixed to empty for this
// layer. length selects the token mode: 64 bytes for AES-256 links,
// 32 for AES-128 links; the encryption half is the first half of the
// output and the signing half the second.
func DeriveKeys(sharedSecret, linkID []byte, length int) ([]byte, error) {
	if len(linkID) != LINK_ID_SIZE {
		return nil, oops.Errorf("link id must be exactly %d bytes", LINK_ID_SIZE)
	}
	if length != token.KEY_SIZE_128 && length != token.KEY_SIZE_256 {
		return nil, oops.Errorf("unsupported link key length %d", length)
	}
	derived, err := hkdf.Derive(length, sharedSecret, linkID, nil)
	if err != nil {
		return nil, err
	}
	log.WithFields(logger.Fields{
		"derived_length": length,
	}).Debug("Derived link keys")
	return derived, nil
}

// proofData builds the byte concatenation a link proof signs: the link
// id, the prover's public keys, and the signalling bytes.
func proofData(linkID, x25519Pub, ed25519Pub, signalling []byte) []byte {
	signed := make([]byte, 0, len(linkID)+len(x25519Pub)+len(ed25519Pub)+len(signalling))
	signed = append(signed, linkID...)
	signed = append(signed, x25519Pub...)
	signed = append(signed, ed25519Pub...)
	return append(signed, signalling...)
}

// Prove signs the link proof with the responder's identity key,
// binding the link id to the responder's public keys and the agreed
// signalling.
func Prove(id *identity.Identity, linkID, x25519Pub, ed25519Pub, signalling []byte) ([]byte, error) {
	if len(linkID) != LINK_ID_SIZE {
		return nil, oops.Errorf("link id must be exactly %d bytes", LINK_ID_SIZE)
	}
	return id.Sign(proofData(linkID, x25519Pub, ed25519Pub, signalling))
}

// VerifyProof checks a link proof against the responder's Ed25519
// public key. A failed check is an expected adversarial outcome.
func VerifyProof(signingKey, linkID, x25519Pub, ed25519Pub, signalling, signature []byte) bool {
	if len(linkID) != LINK_ID_SIZE {
		return false
	}
	ok := ed25519.Verify(signingKey, proofData(linkID, x25519Pub, ed25519Pub, signalling), signature)
	if !ok {
		log.Debug("Link proof verification failed")
	}
	return ok
}

// NewLinkID computes a link id directly from raw hashable bytes, used
// by callers that frame their own requests.
func NewLinkID(hashable []byte) []byte {
	return data.TruncatedHash(hashable)
}
