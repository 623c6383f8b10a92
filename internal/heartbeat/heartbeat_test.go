package heartbeat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_FirstSendAlwaysEmits(t *testing.T) {
	topic := make(chan Heartbeat, 1)
	l := NewLimiter(SourceBus, 100*time.Millisecond, topic)

	l.Send(0)

	select {
	case hb := <-topic:
		assert.Equal(t, SourceBus, hb.Source)
	default:
		t.Fatal("expected a heartbeat on first Send")
	}
}

func TestLimiter_SuppressesWithinInterval(t *testing.T) {
	topic := make(chan Heartbeat, 4)
	l := NewLimiter(SourceProcessor, time.Second, topic)

	l.Send(0)
	<-topic
	l.Send(0)

	assert.Equal(t, 0, len(topic), "second Send within the interval must be suppressed")
}

func TestLimiter_EmitsWhenIntervalElapses(t *testing.T) {
	topic := make(chan Heartbeat, 4)
	l := NewLimiter(SourceBus, 10*time.Millisecond, topic)

	l.Send(0)
	<-topic
	time.Sleep(20 * time.Millisecond)
	l.Send(0)

	require.Equal(t, 1, len(topic))
}

func TestLimiter_EmitsOnSignificantlyShorterDeadline(t *testing.T) {
	topic := make(chan Heartbeat, 4)
	l := NewLimiter(SourceBus, time.Second, topic)

	l.Send(0)
	<-topic

	// A much shorter executionTimeout pulls the deadline well inside the
	// outstanding one, even though the interval hasn't elapsed.
	l.lastDeadline = time.Now().Add(time.Second)
	l.Send(-900 * time.Millisecond)

	require.Equal(t, 1, len(topic))
}

func TestLimiter_NonBlockingOnFullTopic(t *testing.T) {
	topic := make(chan Heartbeat) // unbuffered, no reader
	l := NewLimiter(SourceBus, 0, topic)

	assert.NotPanics(t, func() {
		done := make(chan struct{})
		go func() {
			l.Send(0)
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Send blocked on a full topic channel")
		}
	})
}
