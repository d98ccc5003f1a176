package link

import (
	"github.com/samber/oops"
)

/*
[Signalling Bytes]

Description
Three big-endian bytes carrying the link MTU and mode. The 24-bit value
is mode<<21 | mtu: the top three bits of byte 0 are the mode, the
remaining 21 bits the MTU.

+--------+--------+--------+
|mmm mtu | mtu    | mtu    |
+--------+--------+--------+

mode :: 3 bits
mtu  :: 21 bits
*/

// Signalling field limits
const (
	SIGNALLING_SIZE = 3
	MTU_MAX         = 1<<21 - 1
	MODE_MAX        = 1<<3 - 1
)

var (
	ErrInvalidSignallingSize = oops.Errorf("signalling bytes must be exactly 3 bytes")
	ErrMTUOutOfRange         = oops.Errorf("MTU exceeds 21 bits")
	ErrModeOutOfRange        = oops.Errorf("mode exceeds 3 bits")
)

// EncodeSignalling packs a 21-bit MTU and 3-bit mode into three
// big-endian bytes.
func EncodeSignalling(mtu uint32, mode byte) ([]byte, error) {
	if mtu > MTU_MAX {
		return nil, ErrMTUOutOfRange
	}
	if mode > MODE_MAX {
		return nil, ErrModeOutOfRange
	}
	v := uint32(mode)<<21 | mtu
	return []byte{byte(v >> 16), byte(v >> 8), byte(v)}, nil
}

// ParseSignalling is the exact inverse of EncodeSignalling. Inputs not
// exactly three bytes long are rejected.
func ParseSignalling(b []byte) (mtu uint32, mode byte, err error) {
	if len(b) != SIGNALLING_SIZE {
		return 0, 0, ErrInvalidSignallingSize
	}
	v := uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	return v & MTU_MAX, byte(v >> 21), nil
}
