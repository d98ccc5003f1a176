package packet

import (
	"github.com/go-i2p/logger"
	"github.com/samber/oops"

	"github.com/go-rns/go-rns/lib/common/data"
)

var log = logger.GetGoI2PLogger()

/*
[Packet]

Description
The framed wire unit. HEADER_2 packets carry a transport id between the
hops byte and the destination hash; HEADER_1 packets omit it.

+----+----+----+----+----+----+----+----+
|flags|hops| transport_id (HEADER_2 only)
+----+----+                             +
|                                       |
+         +----+----+----+----+----+----+
|         | destination_hash            |
+----+----+                             +
|                                       |
+              +----+----+----+----+----+
|              |ctx | data ...
+----+----+----+----+----+----+----+----+

flags :: packed flag byte, see [Packet Flags]
         length -> 1 byte

hops :: hop count, incremented by transport nodes
        length -> 1 byte

transport_id :: truncated hash of the forwarding transport node
                length -> 16 bytes, present only for HEADER_2

destination_hash :: truncated destination hash
                    length -> 16 bytes

ctx :: context byte
       length -> 1 byte

data :: payload
        length -> remainder
*/

var (
	ErrPacketTooShort         = oops.Errorf("packet too short")
	ErrMissingTransportID     = oops.Errorf("HEADER_2 packet requires a transport id")
	ErrInvalidTransportIDSize = oops.Errorf("transport id must be exactly 16 bytes")
	ErrInvalidDestinationSize = oops.Errorf("destination hash must be exactly 16 bytes")
	ErrUnexpectedTransportID  = oops.Errorf("HEADER_1 packet must not carry a transport id")
	ErrFlagOutOfRange         = oops.Errorf("packet flag field out of range")
)

// Packet is the decoded form of a framed wire packet.
type Packet struct {
	Flags           Flags
	Hops            byte
	TransportID     []byte
	DestinationHash []byte
	Context         byte
	Data            []byte
}

// Pack frames the packet into its wire form, the exact inverse of
// Unpack. HEADER_2 requires a transport id; HEADER_1 forbids one.
// Flag fields outside their bit widths are rejected rather than
// silently spilling into neighbouring bits.
func (p *Packet) Pack() ([]byte, error) {
	if !p.Flags.inRange() {
		log.Error("Packet flag field out of range")
		return nil, ErrFlagOutOfRange
	}
	if len(p.DestinationHash) != DESTINATION_HASH_SIZE {
		return nil, ErrInvalidDestinationSize
	}
	switch p.Flags.HeaderType {
	case HEADER_1:
		if len(p.TransportID) != 0 {
			return nil, ErrUnexpectedTransportID
		}
	case HEADER_2:
		if len(p.TransportID) == 0 {
			log.Error("HEADER_2 packet without transport id")
			return nil, ErrMissingTransportID
		}
		if len(p.TransportID) != TRANSPORT_ID_SIZE {
			return nil, ErrInvalidTransportIDSize
		}
	}

	size := HEADER_1_MIN_SIZE + len(p.Data)
	if p.Flags.HeaderType == HEADER_2 {
		size += TRANSPORT_ID_SIZE
	}
	raw := make([]byte, 0, size)
	raw = append(raw, p.Flags.ComputeFlags())
	raw = append(raw, p.Hops)
	if p.Flags.HeaderType == HEADER_2 {
		raw = append(raw, p.TransportID...)
	}
	raw = append(raw, p.DestinationHash...)
	raw = append(raw, p.Context)
	raw = append(raw, p.Data...)

	log.WithFields(logger.Fields{
		"packet_type": p.Flags.PacketType,
		"raw_length":  len(raw),
	}).Debug("Packed packet")
	return raw, nil
}

// Unpack parses a raw wire packet. Malformed input is rejected rather
// than guessed at.
func Unpack(raw []byte) (*Packet, error) {
	if len(raw) < HEADER_1_MIN_SIZE {
		log.WithField("raw_length", len(raw)).Error("Packet too short")
		return nil, ErrPacketTooShort
	}
	flags := ParseFlags(raw[0])

	offset := FLAGS_SIZE + HOPS_SIZE
	p := &Packet{
		Flags: flags,
		Hops:  raw[1],
	}
	if flags.HeaderType == HEADER_2 {
		if len(raw) < HEADER_2_MIN_SIZE {
			return nil, ErrPacketTooShort
		}
		p.TransportID = append([]byte(nil), raw[offset:offset+TRANSPORT_ID_SIZE]...)
		offset += TRANSPORT_ID_SIZE
	}
	p.DestinationHash = append([]byte(nil), raw[offset:offset+DESTINATION_HASH_SIZE]...)
	offset += DESTINATION_HASH_SIZE
	p.Context = raw[offset]
	offset += CONTEXT_SIZE
	p.Data = append([]byte(nil), raw[offset:]...)

	return p, nil
}

// HashablePart returns the bytes a packet hash commits to: the flags
// byte masked to its low four bits, then everything after the hops
// byte, skipping the transport id when present. The hash is therefore
// invariant to routing metadata.
func (p *Packet) HashablePart() ([]byte, error) {
	raw, err := p.Pack()
	if err != nil {
		return nil, err
	}
	return hashablePartRaw(raw), nil
}

func hashablePartRaw(raw []byte) []byte {
	hashable := []byte{raw[0] & 0x0F}
	if ParseFlags(raw[0]).HeaderType == HEADER_2 {
		return append(hashable, raw[FLAGS_SIZE+HOPS_SIZE+TRANSPORT_ID_SIZE:]...)
	}
	return append(hashable, raw[FLAGS_SIZE+HOPS_SIZE:]...)
}

// Hash returns the 16-byte truncated SHA256 of the hashable part.
func (p *Packet) Hash() ([]byte, error) {
	hashable, err := p.HashablePart()
	if err != nil {
		return nil, err
	}
	return data.TruncatedHash(hashable), nil
}

// HashRaw returns the packet hash for an already framed packet.
func HashRaw(raw []byte) ([]byte, error) {
	if len(raw) < HEADER_1_MIN_SIZE {
		return nil, ErrPacketTooShort
	}
	if ParseFlags(raw[0]).HeaderType == HEADER_2 && len(raw) < HEADER_2_MIN_SIZE {
		return nil, ErrPacketTooShort
	}
	return data.TruncatedHash(hashablePartRaw(raw)), nil
}
