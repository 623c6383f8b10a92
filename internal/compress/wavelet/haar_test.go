package wavelet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransform_InverseRoundTrip(t *testing.T) {
	cases := [][]int16{
		{0, 1, 2, 3, 4, 5, 6, 7},
		{-5, 5, -100, 100, 32767, -32768, 0, 0},
		make([]int16, 16),
	}

	for _, original := range cases {
		data := append([]int16(nil), original...)
		Transform(data)
		Inverse(data)
		assert.Equal(t, original, data)
	}
}

func TestTransform_PacksAveragesThenDifferences(t *testing.T) {
	data := []int16{10, 20, 30, 40}
	Transform(data)

	// pair (10,20): d=10, s=10+5=15; pair (30,40): d=10, s=35
	assert.Equal(t, int16(15), data[0])
	assert.Equal(t, int16(35), data[1])
	assert.Equal(t, int16(10), data[2])
	assert.Equal(t, int16(10), data[3])
}

func TestTransform_OddLengthLeavesTrailerUntouched(t *testing.T) {
	data := []int16{1, 2, 3, 4, 99}
	Transform(data)
	assert.Equal(t, int16(99), data[4])
}
