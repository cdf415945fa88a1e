package decode

import (
	"encoding/binary"
	"math"
)

// Coordinate array framing: the instrument software wraps each float32
// array in a fixed-size binary envelope.
const (
	floatHeaderSize  = 47
	floatTrailerSize = 49
)

// decodeFloats reads raw as a framed little-endian float32 array.
//
// The 47-byte header and 49-byte trailer are dropped; every remaining
// complete 4-byte group becomes one float32, and leftover bytes are
// ignored. Buffers too small to hold the framing decode to an empty array,
// not an error.
func decodeFloats(raw []byte) []float32 {
	if len(raw) <= floatHeaderSize+floatTrailerSize {
		return nil
	}

	body := raw[floatHeaderSize : len(raw)-floatTrailerSize]
	out := make([]float32, 0, len(body)/4)
	for i := 0; i+4 <= len(body); i += 4 {
		bits := binary.LittleEndian.Uint32(body[i:])
		out = append(out, math.Float32frombits(bits))
	}

	return out
}
