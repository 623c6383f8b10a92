package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/outpost-go/flightcore/internal/compress"
	"github.com/outpost-go/flightcore/internal/corefail"
	"github.com/outpost-go/flightcore/internal/dataproc"
	"github.com/outpost-go/flightcore/internal/membuf"
	"github.com/outpost-go/flightcore/internal/refqueue"
	"github.com/outpost-go/flightcore/internal/swbus"
	"github.com/stretchr/testify/assert"
)

func TestSupervisor_RunStopsOnContextCancellation(t *testing.T) {
	pool := membuf.NewPool(64, 4)
	bus := swbus.NewBus(swbus.Config{QueueCapacity: 4, IdleTimeout: 5 * time.Millisecond})
	proc := dataproc.NewProcessor(dataproc.Config{
		Input:      refqueue.NewQueue[*compress.DataBlock](4),
		Output:     refqueue.NewQueue[*compress.DataBlock](4),
		Pool:       pool,
		RetryCount: 1,
		RetryDelay: time.Millisecond,
		IdleWait:   5 * time.Millisecond,
	})

	var fatalCalled bool
	s := New(bus, proc, corefail.HandlerFunc(func(error) { fatalCalled = true }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.Run(ctx)
	assert.Error(t, err)
	assert.False(t, fatalCalled)
}
