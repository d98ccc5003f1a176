package resource

import (
	"github.com/samber/oops"
	"github.com/vmihailenco/msgpack/v5"
)

// Advertisement flag bits, low to high
const (
	FLAG_ENCRYPTED    = 1 << 0
	FLAG_COMPRESSED   = 1 << 1
	FLAG_SPLIT        = 1 << 2
	FLAG_IS_REQUEST   = 1 << 3
	FLAG_IS_RESPONSE  = 1 << 4
	FLAG_HAS_METADATA = 1 << 5
)

/*
[Resource Advertisement]

Description
The transfer offer sent ahead of a chunked resource, serialized as a
compact schemaless binary map keyed by single-character field names.

t :: transfer size on the wire
d :: data size after reassembly
n :: number of parts
h :: resource hash
r :: random hash
o :: original hash of an uncompressed/unencrypted ancestor, optional
i :: segment index
l :: total segments
q :: request id, optional
f :: flags bitfield
m :: hashmap segment
*/

// Advertisement is the fixed-layout form of a resource advertisement.
// Optional fields are nil when absent and serialize as nil values
// under their keys, preserving the wire schema.
type Advertisement struct {
	TransferSize  uint64 `msgpack:"t"`
	DataSize      uint64 `msgpack:"d"`
	NumParts      uint32 `msgpack:"n"`
	ResourceHash  []byte `msgpack:"h"`
	RandomHash    []byte `msgpack:"r"`
	OriginalHash  []byte `msgpack:"o"`
	SegmentIndex  uint32 `msgpack:"i"`
	TotalSegments uint32 `msgpack:"l"`
	RequestID     []byte `msgpack:"q"`
	Flags         uint8  `msgpack:"f"`
	Hashmap       []byte `msgpack:"m"`
}

var ErrMalformedAdvertisement = oops.Errorf("malformed resource advertisement")

// Pack serializes the advertisement to its binary map encoding.
func (a *Advertisement) Pack() ([]byte, error) {
	raw, err := msgpack.Marshal(a)
	if err != nil {
		return nil, oops.Errorf("failed to pack resource advertisement: %w", err)
	}
	return raw, nil
}

// UnpackAdvertisement parses a binary advertisement map. Malformed
// encodings are rejected.
func UnpackAdvertisement(raw []byte) (*Advertisement, error) {
	a := &Advertisement{}
	if err := msgpack.Unmarshal(raw, a); err != nil {
		log.WithError(err).Error("Failed to unpack resource advertisement")
		return nil, ErrMalformedAdvertisement
	}
	return a, nil
}

// Flag helpers

func (a *Advertisement) IsEncrypted() bool  { return a.Flags&FLAG_ENCRYPTED != 0 }
func (a *Advertisement) IsCompressed() bool { return a.Flags&FLAG_COMPRESSED != 0 }
func (a *Advertisement) IsSplit() bool      { return a.Flags&FLAG_SPLIT != 0 }
func (a *Advertisement) IsRequest() bool    { return a.Flags&FLAG_IS_REQUEST != 0 }
func (a *Advertisement) IsResponse() bool   { return a.Flags&FLAG_IS_RESPONSE != 0 }
func (a *Advertisement) HasMetadata() bool  { return a.Flags&FLAG_HAS_METADATA != 0 }
