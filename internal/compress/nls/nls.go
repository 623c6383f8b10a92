// Package nls implements the near-lossless entropy encoder the data
// processor thread runs over Haar-transformed coefficients: zigzag-mapped
// magnitudes are unary-coded with an escape run for outliers, so small
// coefficients — the common case after a wavelet transform — cost only a
// few bits while large ones still round-trip exactly.
package nls

// escapeThreshold is the unary run length, in '1' bits, at which Encode
// switches from a unary code to a raw 16-bit escape value. Reaching this
// many consecutive '1' bits without a '0' terminator unambiguously signals
// an escape to Decode, since Encode never emits an unterminated run this
// long for a value that fit the unary code.
const escapeThreshold = 20

// Encode produces a bitstream for coeffs and the number of valid bits in
// it. The returned byte slice may have trailing zero padding bits beyond
// bitLen.
func Encode(coeffs []int16) (bitstream []byte, bitLen int) {
	w := &bitWriter{}
	for _, c := range coeffs {
		zz := zigzag(c)
		if zz < escapeThreshold {
			for i := uint16(0); i < zz; i++ {
				w.writeBit(1)
			}
			w.writeBit(0)
			continue
		}
		for i := 0; i < escapeThreshold; i++ {
			w.writeBit(1)
		}
		w.writeBits(uint32(zz), 16)
	}
	return w.buf, w.nbits
}

// Decode reads up to len(out) coefficients from bitstream (bitLen valid
// bits) into out, returning the number actually decoded. If the bitstream
// is exhausted mid-symbol, Decode stops and returns the correctly decoded
// prefix rather than an error.
func Decode(bitstream []byte, bitLen int, out []int16) int {
	r := &bitReader{buf: bitstream, limit: bitLen}

	n := 0
	for n < len(out) {
		ones := 0
		for ones < escapeThreshold {
			b, ok := r.readBit()
			if !ok {
				return n
			}
			if b == 0 {
				break
			}
			ones++
		}

		var zz uint32
		if ones == escapeThreshold {
			v, ok := r.readBits(16)
			if !ok {
				return n
			}
			zz = v
		} else {
			zz = uint32(ones)
		}

		out[n] = unzigzag(uint16(zz))
		n++
	}
	return n
}

// zigzag maps a signed 16-bit value onto an unsigned one so small-magnitude
// values (positive or negative) have small codes.
func zigzag(v int16) uint16 {
	vi := int32(v)
	return uint16((vi << 1) ^ (vi >> 31))
}

// unzigzag inverts zigzag.
func unzigzag(zz uint16) int16 {
	v := int32(zz>>1) ^ -int32(zz&1)
	return int16(v)
}
