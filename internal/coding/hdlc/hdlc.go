// Package hdlc implements HDLC-style asynchronous byte stuffing: frames are
// delimited by a boundary byte, and any in-frame occurrence of the boundary
// or escape byte is escaped and XORed with a fixed mask.
//
// See https://en.wikipedia.org/wiki/High-Level_Data_Link_Control#Asynchronous_framing.
package hdlc

const (
	// BoundaryOverhead is the number of extra bytes Encode adds beyond the
	// input length: one start and one stop flag.
	BoundaryOverhead = 2
	boundaryByte     = 0x7E
	escapeByte       = 0x7D
	mask             = 0x20
)

// Encode writes the HDLC-stuffed form of input into output, surrounded by
// boundary flags. It returns the number of bytes written, or 0 if output is
// too small to hold the result.
func Encode(input []byte, output []byte) int {
	if len(output) < len(input)+BoundaryOverhead {
		return 0
	}

	pos := 0
	output[pos] = boundaryByte
	pos++

	for _, b := range input {
		if b == boundaryByte || b == escapeByte {
			if pos >= len(output) {
				return 0
			}
			output[pos] = escapeByte
			pos++
			b ^= mask
		}
		if pos >= len(output) {
			return 0
		}
		output[pos] = b
		pos++
	}

	if pos >= len(output) {
		return 0
	}
	output[pos] = boundaryByte
	pos++

	return pos
}

// Decode reverses Encode, writing the unstuffed payload of the first
// complete frame in input into output. It returns the number of bytes
// written to output and the index into input just past the frame's closing
// boundary byte, so the caller can slice off the consumed frame.
//
// If no complete frame is found, it returns (0, start) where start is the
// index of the frame's opening boundary byte (or 0 if none was seen), so the
// caller can discard everything before that point and keep buffering. A
// malformed frame (an escape byte followed by a boundary or by another escape
// byte) returns (0, i) where i is the index of that offending byte.
func Decode(input []byte, output []byte) (int, int) {
	frameStart := 0
	outPos := 0
	inFrame := false
	escaped := false

	for i, b := range input {
		switch {
		case b == boundaryByte:
			if inFrame {
				if escaped {
					return 0, i
				}
				return outPos, i + 1
			}
			frameStart = i
			outPos = 0
			inFrame = true
			escaped = false

		case b == escapeByte:
			if escaped {
				return 0, i
			}
			if inFrame {
				escaped = true
			}

		default:
			if inFrame {
				if outPos >= len(output) {
					return 0, frameStart
				}
				if escaped {
					output[outPos] = b ^ mask
				} else {
					output[outPos] = b
				}
				outPos++
			}
			escaped = false
		}
	}

	return 0, frameStart
}
