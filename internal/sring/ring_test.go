package sring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_AppendFullReturnsFalse(t *testing.T) {
	r := NewRing[int](2)
	assert.True(t, r.Append(1))
	assert.True(t, r.Append(2))
	assert.False(t, r.Append(3))
	assert.Equal(t, 2, r.Len())
}

func TestRing_PeekPreservesAppendOrder(t *testing.T) {
	r := NewRing[int](3)
	r.Append(10)
	r.Append(20)
	r.Append(30)

	for i, want := range []int{10, 20, 30} {
		got, ok := r.Peek(i)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := r.Peek(3)
	assert.False(t, ok)
}

func TestRing_FlagsRoundTrip(t *testing.T) {
	r := NewRing[int](2)
	r.Append(1)
	r.Append(2)

	assert.True(t, r.SetFlags(1, 0xAB))
	f, ok := r.PeekFlags(1)
	require.True(t, ok)
	assert.Equal(t, byte(0xAB), f)

	f0, ok := r.PeekFlags(0)
	require.True(t, ok)
	assert.Equal(t, byte(0), f0)
}

func TestRing_Pop(t *testing.T) {
	r := NewRing[int](2)
	r.Append(1)
	r.Append(2)

	v, ok := r.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, r.Len())

	assert.True(t, r.Append(3))
	v, ok = r.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestRing_ResetReleasesHeldItems(t *testing.T) {
	r := NewRing[*fakeReleasable](2)
	a, b := &fakeReleasable{}, &fakeReleasable{}
	r.Append(a)
	r.Append(b)

	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.True(t, a.released)
	assert.True(t, b.released)
}

func TestRing_ResetElementsFrom(t *testing.T) {
	r := NewRing[*fakeReleasable](3)
	a, b, c := &fakeReleasable{}, &fakeReleasable{}, &fakeReleasable{}
	r.Append(a)
	r.Append(b)
	r.Append(c)

	ok := r.ResetElementsFrom(1)
	require.True(t, ok)
	assert.Equal(t, 1, r.Len())
	assert.False(t, a.released)
	assert.True(t, b.released)
	assert.True(t, c.released)

	assert.False(t, r.ResetElementsFrom(-1))
	assert.False(t, r.ResetElementsFrom(5))
}

type fakeReleasable struct {
	released bool
}

func (f *fakeReleasable) Release() {
	f.released = true
}
