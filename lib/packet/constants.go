// Package packet implements the wire packet codec
package packet

// Header types
const (
	HEADER_1 = 0x00
	HEADER_2 = 0x01
)

// Propagation types
const (
	TRANSPORT_BROADCAST = 0x00
	TRANSPORT_TRANSPORT = 0x01
)

// Destination types
const (
	DESTINATION_SINGLE = 0x00
	DESTINATION_GROUP  = 0x01
	DESTINATION_PLAIN  = 0x02
	DESTINATION_LINK   = 0x03
)

// Packet types
const (
	PACKET_DATA        = 0x00
	PACKET_ANNOUNCE    = 0x01
	PACKET_LINKREQUEST = 0x02
	PACKET_PROOF       = 0x03
)

// Context flag values
const (
	FLAG_UNSET = 0x00
	FLAG_SET   = 0x01
)

// Context byte values
const (
	CONTEXT_NONE           = 0x00
	CONTEXT_RESOURCE       = 0x01
	CONTEXT_RESOURCE_ADV   = 0x02
	CONTEXT_RESOURCE_REQ   = 0x03
	CONTEXT_RESOURCE_HMU   = 0x04
	CONTEXT_RESOURCE_PRF   = 0x05
	CONTEXT_RESOURCE_ICL   = 0x06
	CONTEXT_RESOURCE_RCL   = 0x07
	CONTEXT_CACHE_REQUEST  = 0x08
	CONTEXT_REQUEST        = 0x09
	CONTEXT_RESPONSE       = 0x0A
	CONTEXT_PATH_RESPONSE  = 0x0B
	CONTEXT_COMMAND        = 0x0C
	CONTEXT_COMMAND_STATUS = 0x0D
	CONTEXT_CHANNEL        = 0x0E
	CONTEXT_KEEPALIVE      = 0xFA
	CONTEXT_LINKIDENTIFY   = 0xFB
	CONTEXT_LINKCLOSE      = 0xFC
	CONTEXT_LINKPROOF      = 0xFD
	CONTEXT_LRRTT          = 0xFE
	CONTEXT_LRPROOF        = 0xFF
)

// Sizes in bytes of packet components
const (
	FLAGS_SIZE            = 1
	HOPS_SIZE             = 1
	TRANSPORT_ID_SIZE     = 16
	DESTINATION_HASH_SIZE = 16
	CONTEXT_SIZE          = 1

	HEADER_1_MIN_SIZE = FLAGS_SIZE + HOPS_SIZE + DESTINATION_HASH_SIZE + CONTEXT_SIZE
	HEADER_2_MIN_SIZE = HEADER_1_MIN_SIZE + TRANSPORT_ID_SIZE
)
