// Package compress implements the fixed-point sample type and DataBlock
// carrier shared by the data aggregator (internal/aggregate) and the data
// processor thread (internal/dataproc), plus the wavelet transform
// (internal/compress/wavelet) and near-lossless entropy codec
// (internal/compress/nls) the processor applies to a block's payload.
package compress

// fixpointPrecision is the number of fractional bits in a Fixpoint value
// (Q16.16).
const fixpointPrecision = 16

// Fixpoint is a signed Q16.16 fixed-point scalar: a 32-bit integer whose low
// 16 bits are the fractional part.
type Fixpoint int32

// NewFixpointFromInt16 converts a plain integer sample into Q16.16.
func NewFixpointFromInt16(x int16) Fixpoint {
	return Fixpoint(int32(x) << fixpointPrecision)
}

// ToInt32 converts back to a plain integer, rounding half-away-from-zero.
//
// The rounding branch is ported verbatim from the original C++ FP<PREC>
// operator int32_t() (modules/base/src/outpost/base/fixpoint.h) rather than
// reimplemented from the net rounding rule, per the port's open question
// about preserving the source's exact branch structure near negative
// half-values.
func (f Fixpoint) ToInt32() int32 {
	v := int32(f)
	av := v
	if av < 0 {
		av = -av
	}

	const halfBit = int32(1) << (fixpointPrecision - 1)
	const fracMask = int32(1)<<fixpointPrecision - 1
	var round int32
	if (halfBit&av != 0 && v > 0) || (halfBit&av == 0 && av&fracMask != 0 && v < 0) {
		round = 1
	}
	return (v >> fixpointPrecision) + round
}

// Abs returns the absolute value of f.
func (f Fixpoint) Abs() Fixpoint {
	if f < 0 {
		return -f
	}
	return f
}
