package compress

import (
	"encoding/binary"

	"github.com/outpost-go/flightcore/internal/membuf"
)

// State is a DataBlock's lifecycle stage. Transitions are one-way:
// filling -> transformed -> encoded.
type State uint8

const (
	StateEmpty State = iota
	StateFilling
	StateTransformed
	StateEncoded
)

// wireState returns the 8-bit state flag written to the on-wire header.
// Empty/Filling both encode as 0 ("samples"): a block never crosses the
// wire boundary before it has left the filling stage.
func (s State) wireState() uint8 {
	switch s {
	case StateTransformed:
		return 1
	case StateEncoded:
		return 2
	default:
		return 0
	}
}

// HeaderSize is the size, in bytes, of the fixed DataBlock header: 16-bit
// parameterId, 64-bit startTime, 8-bit samplingRate, 8-bit blocksize, 8-bit
// state, padded to an 8-byte boundary.
const HeaderSize = 16

// BitstreamHeaderSize is the size, in bytes, of the bit-length prefix that
// precedes an encoded bitstream.
const BitstreamHeaderSize = 2

// DataBlock is the fixed-size carrier produced by the aggregator and
// consumed, transformed, and re-emitted by the processor thread. A
// DataBlock exclusively owns the membuf.Handle backing its final, encoded
// on-wire form.
type DataBlock struct {
	handle       membuf.Handle
	ParameterID  uint16
	StartTime    int64 // GPS microseconds
	SamplingRate SamplingRate
	Blocksize    Blocksize
	State        State

	samples      []Fixpoint
	coefficients []int16
	encoded      []byte
	encodedBits  int
}

// NewDataBlock creates a block in the filling state, stamped with the given
// metadata. handle is the frame this block will eventually own on the wire;
// callers that only need an in-memory block for testing may pass an invalid
// handle.
func NewDataBlock(handle membuf.Handle, parameterID uint16, startTime int64, rate SamplingRate, bs Blocksize) *DataBlock {
	return &DataBlock{
		handle:       handle,
		ParameterID:  parameterID,
		StartTime:    startTime,
		SamplingRate: rate,
		Blocksize:    bs,
		State:        StateFilling,
		samples:      make([]Fixpoint, 0, bs.ToUInt()),
	}
}

// Handle returns the block's backing frame handle.
func (b *DataBlock) Handle() membuf.Handle {
	return b.handle
}

// IsValid reports whether the block has a live backing handle.
func (b *DataBlock) IsValid() bool {
	return b.handle.IsValid()
}

// Release releases the block's backing handle.
func (b *DataBlock) Release() {
	b.handle.Release()
}

// SampleCount returns the number of samples currently held.
func (b *DataBlock) SampleCount() int {
	return len(b.samples)
}

// Capacity returns the block's configured blocksize.
func (b *DataBlock) Capacity() int {
	return int(b.Blocksize.ToUInt())
}

// Full reports whether the block has reached its configured capacity.
func (b *DataBlock) Full() bool {
	return len(b.samples) >= b.Capacity()
}

// PushSample appends a sample. Returns false if the block is not in the
// filling state or is already full.
func (b *DataBlock) PushSample(v Fixpoint) bool {
	if b.State != StateFilling || b.Full() {
		return false
	}
	b.samples = append(b.samples, v)
	return true
}

// Samples returns the raw fixpoint samples accumulated so far.
func (b *DataBlock) Samples() []Fixpoint {
	return b.samples
}

// SetCoefficients transitions the block from filling to transformed,
// recording the wavelet coefficients produced from its samples. Returns
// false if the block was not in the filling state.
func (b *DataBlock) SetCoefficients(coeffs []int16) bool {
	if b.State != StateFilling {
		return false
	}
	b.coefficients = coeffs
	b.State = StateTransformed
	return true
}

// Coefficients returns the block's wavelet coefficients.
func (b *DataBlock) Coefficients() []int16 {
	return b.coefficients
}

// Encode transitions the block from transformed to encoded, writing the
// fixed header followed by the bitstream length prefix and bitstream bytes
// directly into the block's backing frame. Returns false if the block was
// not in the transformed state or the bitstream does not fit the frame.
func (b *DataBlock) Encode(bitstream []byte, bitLen int) bool {
	if b.State != StateTransformed {
		return false
	}
	total := HeaderSize + BitstreamHeaderSize + len(bitstream)
	dst := b.handle.Bytes()
	if len(dst) < total {
		return false
	}

	b.writeHeader(dst)
	binary.BigEndian.PutUint16(dst[HeaderSize:], uint16(bitLen))
	copy(dst[HeaderSize+BitstreamHeaderSize:], bitstream)

	b.encoded = bitstream
	b.encodedBits = bitLen
	b.State = StateEncoded
	return true
}

// EncodedSize returns the total number of bytes written to the backing
// frame by Encode: header + bitstream-length prefix + ceil(bits/8).
func (b *DataBlock) EncodedSize() int {
	if b.State != StateEncoded {
		return 0
	}
	return HeaderSize + BitstreamHeaderSize + len(b.encoded)
}

// writeHeader writes the fixed big-endian header into dst, which must be at
// least HeaderSize bytes.
func (b *DataBlock) writeHeader(dst []byte) {
	binary.BigEndian.PutUint16(dst[0:2], b.ParameterID)
	binary.BigEndian.PutUint64(dst[2:10], uint64(b.StartTime))
	dst[10] = b.SamplingRate.ToUInt()
	dst[11] = b.Blocksize.wireTag()
	dst[12] = b.State.wireState()
	for i := 13; i < HeaderSize; i++ {
		dst[i] = 0
	}
}

// DecodeHeader reads the fixed header from src, which must be at least
// HeaderSize bytes.
func DecodeHeader(src []byte) (parameterID uint16, startTime int64, rate SamplingRate, bs Blocksize, state uint8) {
	parameterID = binary.BigEndian.Uint16(src[0:2])
	startTime = int64(binary.BigEndian.Uint64(src[2:10]))
	rate = SamplingRate(src[10])
	bs = Blocksize(src[11])
	state = src[12]
	return
}
