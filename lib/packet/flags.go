package packet

/*
[Packet Flags]

Description
The single flags byte packs five fields into its low seven bits. Bit 7
is reserved for interface-layer access code signalling and never set by
the codec.

bit 6      :: header_type      (1 bit)
bit 5      :: context_flag     (1 bit)
bit 4      :: transport_type   (1 bit)
bits 3..2  :: destination_type (2 bits)
bits 1..0  :: packet_type      (2 bits)

encoded as header_type<<6 | context_flag<<5 | transport_type<<4 |
destination_type<<2 | packet_type.
*/

// Flags is the decoded form of the packet flags byte.
type Flags struct {
	HeaderType      byte
	ContextFlag     byte
	TransportType   byte
	DestinationType byte
	PacketType      byte
}

// ComputeFlags packs the five flag fields into a single byte.
func (f Flags) ComputeFlags() byte {
	return f.HeaderType<<6 | f.ContextFlag<<5 | f.TransportType<<4 |
		f.DestinationType<<2 | f.PacketType
}

// inRange reports whether every field fits its bit width. A value
// outside its width would spill into neighbouring fields, or set the
// reserved access code bit.
func (f Flags) inRange() bool {
	return f.HeaderType <= 1 && f.ContextFlag <= 1 && f.TransportType <= 1 &&
		f.DestinationType <= 3 && f.PacketType <= 3
}

// ParseFlags unpacks a flags byte into its five fields. This is the
// exact inverse of ComputeFlags.
func ParseFlags(b byte) Flags {
	return Flags{
		HeaderType:      (b >> 6) & 0x01,
		ContextFlag:     (b >> 5) & 0x01,
		TransportType:   (b >> 4) & 0x01,
		DestinationType: (b >> 2) & 0x03,
		PacketType:      b & 0x03,
	}
}
