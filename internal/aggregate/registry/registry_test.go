package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterFindUnregister(t *testing.T) {
	r := New[string]()

	require.True(t, r.Register(1, "first"))
	v, ok := r.Find(1)
	require.True(t, ok)
	assert.Equal(t, "first", v)

	r.Unregister(1)
	_, ok = r.Find(1)
	assert.False(t, ok)
}

func TestRegistry_DuplicateRegistrationFirstWins(t *testing.T) {
	r := New[string]()

	require.True(t, r.Register(5, "original"))
	assert.False(t, r.Register(5, "shadow"))

	v, ok := r.Find(5)
	require.True(t, ok)
	assert.Equal(t, "original", v)
}

func TestRegistry_Len(t *testing.T) {
	r := New[int]()
	r.Register(1, 10)
	r.Register(2, 20)
	assert.Equal(t, 2, r.Len())
}
