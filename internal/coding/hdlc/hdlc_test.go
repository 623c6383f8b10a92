package hdlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x01, 0x02, 0x03},
		{boundaryByte},
		{escapeByte},
		{boundaryByte, escapeByte, 0x00, 0xFF},
	}

	for _, data := range cases {
		out := make([]byte, len(data)*2+BoundaryOverhead)
		n := Encode(data, out)
		require.NotZero(t, n)
		frame := out[:n]

		decoded := make([]byte, len(data))
		written, consumed := Decode(frame, decoded)
		assert.Equal(t, len(data), written)
		assert.Equal(t, len(frame), consumed)
		assert.Equal(t, data, decoded[:written])
	}
}

func TestEncode_TooSmallOutputFails(t *testing.T) {
	out := make([]byte, 2)
	n := Encode([]byte{0x01, 0x02, 0x03}, out)
	assert.Zero(t, n)
}

func TestDecode_NoBoundaryReturnsZeroAndStart(t *testing.T) {
	out := make([]byte, 8)
	written, consumed := Decode([]byte{0x01, 0x02, 0x03}, out)
	assert.Zero(t, written)
	assert.Zero(t, consumed)
}

func TestDecode_EscapedBoundaryAborts(t *testing.T) {
	out := make([]byte, 8)
	frame := []byte{boundaryByte, escapeByte, boundaryByte ^ mask, escapeByte, boundaryByte}
	written, consumed := Decode(frame, out)
	assert.Zero(t, written)
	assert.Equal(t, len(frame)-1, consumed)
}

func TestDecode_ConsumesOnlyFirstFrame(t *testing.T) {
	data1 := []byte{0x01, 0x02}
	data2 := []byte{0x03, 0x04}

	buf := make([]byte, 16)
	n1 := Encode(data1, buf)
	n2 := Encode(data2, buf[n1:])
	input := buf[:n1+n2]

	out := make([]byte, 8)
	written, consumed := Decode(input, out)
	require.Equal(t, len(data1), written)
	assert.Equal(t, data1, out[:written])
	assert.Equal(t, n1, consumed)

	written2, _ := Decode(input[consumed:], out)
	assert.Equal(t, data2, out[:written2])
}
