package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuota_GrantsUpToLimitWithinInterval(t *testing.T) {
	q := NewQuota(time.Second, 3)
	base := time.Now()

	require.True(t, q.Access(base))
	require.True(t, q.Access(base.Add(10*time.Millisecond)))
	require.True(t, q.Access(base.Add(20*time.Millisecond)))
	assert.False(t, q.Access(base.Add(30*time.Millisecond)), "fourth access within the interval must be declined")
}

func TestQuota_NewIntervalStartsOnFirstAccessAfterPrevious(t *testing.T) {
	q := NewQuota(time.Second, 1)
	base := time.Now()

	require.True(t, q.Access(base))
	require.False(t, q.Access(base.Add(100*time.Millisecond)))

	// The next access after the previous interval has elapsed starts a
	// fresh interval rather than following a fixed schedule.
	require.True(t, q.Access(base.Add(2*time.Second)))
	assert.False(t, q.Access(base.Add(2100*time.Millisecond)))
}

func TestQuota_Reset(t *testing.T) {
	q := NewQuota(time.Second, 1)
	base := time.Now()

	require.True(t, q.Access(base))
	require.False(t, q.Access(base.Add(10*time.Millisecond)))

	q.Reset()
	assert.True(t, q.Access(base.Add(20*time.Millisecond)))
}

func TestQuota_SetInterval(t *testing.T) {
	q := NewQuota(time.Second, 1)
	base := time.Now()

	require.True(t, q.Access(base))
	q.SetInterval(10 * time.Millisecond)
	assert.True(t, q.Access(base.Add(50*time.Millisecond)))
}
