package swbus

import (
	"testing"

	"github.com/outpost-go/flightcore/internal/membuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_AcceptsDelegatesToFilter(t *testing.T) {
	ch := NewChannel(RangeFilter{Min: 5, Max: 10}, 4)
	assert.True(t, ch.Accepts(5))
	assert.False(t, ch.Accepts(11))
}

func TestChannel_IDIsUniquePerInstance(t *testing.T) {
	a := NewChannel(AcceptAllFilter{}, 1)
	b := NewChannel(AcceptAllFilter{}, 1)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestChannel_DeliverThenReceiveFIFO(t *testing.T) {
	pool := membuf.NewPool(16, 4)
	ch := NewChannel(AcceptAllFilter{}, 2)

	h1, _ := pool.Allocate()
	h2, _ := pool.Allocate()
	require.True(t, ch.deliver(Message{ID: 1, Payload: h1}))
	require.True(t, ch.deliver(Message{ID: 2, Payload: h2}))

	msg, result := ch.ReceiveMessage()
	require.Equal(t, ReceiveSuccess, result)
	assert.Equal(t, uint32(1), msg.ID)
	msg.Payload.Release()

	msg, result = ch.ReceiveMessage()
	require.Equal(t, ReceiveSuccess, result)
	assert.Equal(t, uint32(2), msg.ID)
	msg.Payload.Release()
}

func TestChannel_DeliverFailsWhenFullAndCountsLost(t *testing.T) {
	pool := membuf.NewPool(16, 4)
	ch := NewChannel(AcceptAllFilter{}, 1)

	h1, _ := pool.Allocate()
	h2, _ := pool.Allocate()
	require.True(t, ch.deliver(Message{ID: 1, Payload: h1}))
	assert.False(t, ch.deliver(Message{ID: 2, Payload: h2}))
	assert.Equal(t, uint64(1), ch.Lost())
	h2.Release()
}
