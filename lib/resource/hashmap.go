// Package resource implements chunked transfer advertisement and proofs
package resource

import (
	"bytes"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/go-rns/go-rns/lib/common/data"
)

var log = logger.GetGoI2PLogger()

// MAP_HASH_SIZE is the per-part map hash length in bytes.
const MAP_HASH_SIZE = 4

var (
	ErrInvalidMapHashSize = oops.Errorf("map hash must be exactly 4 bytes")
	ErrInvalidHashmapSize = oops.Errorf("hashmap length must be a multiple of 4 bytes")
)

// MapHash returns the 4-byte map hash of a part:
// SHA256(part || random_hash)[:4].
func MapHash(part, randomHash []byte) []byte {
	material := make([]byte, 0, len(part)+len(randomHash))
	material = append(material, part...)
	material = append(material, randomHash...)
	h := data.HashData(material)
	return h[:MAP_HASH_SIZE]
}

// BuildHashmap concatenates the map hashes of parts in part order.
func BuildHashmap(parts [][]byte, randomHash []byte) []byte {
	hashmap := make([]byte, 0, len(parts)*MAP_HASH_SIZE)
	for _, part := range parts {
		hashmap = append(hashmap, MapHash(part, randomHash)...)
	}
	log.WithFields(logger.Fields{
		"num_parts":      len(parts),
		"hashmap_length": len(hashmap),
	}).Debug("Built resource hashmap")
	return hashmap
}

// FindPart scans the hashmap in 4-byte strides for mapHash and returns
// the index of the first match. First match wins; a true 4-byte
// collision between distinct parts is a protocol-level anomaly the
// caller should flag, not silently misroute.
func FindPart(hashmap, mapHash []byte) (int, bool, error) {
	if len(mapHash) != MAP_HASH_SIZE {
		return 0, false, ErrInvalidMapHashSize
	}
	if len(hashmap)%MAP_HASH_SIZE != 0 {
		return 0, false, ErrInvalidHashmapSize
	}
	for i := 0; i < len(hashmap); i += MAP_HASH_SIZE {
		if bytes.Equal(hashmap[i:i+MAP_HASH_SIZE], mapHash) {
			return i / MAP_HASH_SIZE, true, nil
		}
	}
	return 0, false, nil
}

// Proof returns the completion proof the receiver sends once all parts
// are reassembled: SHA256(data || resource_hash)[:16]. The sender's
// only validation is byte-equality against its own recomputation.
func Proof(fullData, resourceHash []byte) []byte {
	material := make([]byte, 0, len(fullData)+len(resourceHash))
	material = append(material, fullData...)
	material = append(material, resourceHash...)
	return data.TruncatedHash(material)
}

// VerifyProof reports whether a received proof matches the sender's
// recomputation, in constant time.
func VerifyProof(fullData, resourceHash, proof []byte) bool {
	return data.ConstantTimeEqual(Proof(fullData, resourceHash), proof)
}
