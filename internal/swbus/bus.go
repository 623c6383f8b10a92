package swbus

import (
	"context"
	"sync"
	"time"

	"github.com/outpost-go/flightcore/internal/corefail"
	"github.com/outpost-go/flightcore/internal/heartbeat"
	"github.com/outpost-go/flightcore/internal/refqueue"
	"github.com/outpost-go/flightcore/internal/tracing"
)

// Bus accepts messages from any goroutine, screens them through a single
// admission filter, and fans each accepted message out to every registered
// Channel whose own filter matches — all dispatch happens on one worker
// goroutine, so publish order is preserved per subscriber.
type Bus struct {
	admission Filter
	queue     *refqueue.Queue[Message]

	channelsMu sync.RWMutex
	channels   []*Channel

	heartbeats  *heartbeat.Limiter
	idleTimeout time.Duration

	Counters Counters
}

// Config bundles a Bus's construction-time parameters.
type Config struct {
	// Admission screens every published message before it reaches the
	// internal queue.
	Admission Filter
	// QueueCapacity bounds the internal queue between publishers and the
	// worker goroutine.
	QueueCapacity int
	// IdleTimeout is how long the worker waits for a message before
	// looping back to emit a heartbeat.
	IdleTimeout time.Duration
	// HeartbeatInterval rate-limits liveness emission; see heartbeat.Limiter.
	HeartbeatInterval time.Duration
	// HeartbeatTopic receives the worker's liveness signals.
	HeartbeatTopic chan<- heartbeat.Heartbeat
}

// NewBus constructs a Bus from cfg.
func NewBus(cfg Config) *Bus {
	admission := cfg.Admission
	if admission == nil {
		admission = AcceptAllFilter{}
	}
	return &Bus{
		admission:   admission,
		queue:       refqueue.NewQueue[Message](cfg.QueueCapacity),
		idleTimeout: cfg.IdleTimeout,
		heartbeats:  heartbeat.NewLimiter(heartbeat.SourceBus, cfg.HeartbeatInterval, cfg.HeartbeatTopic),
	}
}

// SendMessage screens msg through the admission filter and, if accepted,
// enqueues it for the worker to dispatch. It never blocks beyond the
// queue's own non-blocking Send.
func (b *Bus) SendMessage(msg Message) (SendResult, error) {
	_, span := tracing.StartBusSpan(context.Background(), tracing.SpanBusSend, msg.ID)
	defer span.End()

	if !msg.IsValid() {
		b.Counters.declined.Add(1)
		return SendInvalidMessage, corefail.ErrInvalidMessage
	}
	if !b.admission.Accepts(msg.ID) {
		b.Counters.declined.Add(1)
		return SendInvalidMessage, corefail.ErrAdmissionRejected
	}

	if !b.queue.Send(msg) {
		b.Counters.failedSend.Add(1)
		return SendQueueFull, corefail.ErrQueueFull
	}
	b.Counters.accepted.Add(1)
	return SendSuccess, nil
}

// RegisterChannel adds ch to the set the worker dispatches to.
func (b *Bus) RegisterChannel(ch *Channel) {
	b.channelsMu.Lock()
	defer b.channelsMu.Unlock()
	b.channels = append(b.channels, ch)
}

// UnregisterChannel removes ch from the dispatch set. Safe to call while
// the worker is running: the channel list is only read under the same
// mutex during dispatch, so unregistration never races a concurrent
// delivery to ch.
func (b *Bus) UnregisterChannel(ch *Channel) {
	b.channelsMu.Lock()
	defer b.channelsMu.Unlock()
	for i, c := range b.channels {
		if c == ch {
			b.channels = append(b.channels[:i], b.channels[i+1:]...)
			return
		}
	}
}

// Run drives the worker loop until ctx is cancelled: dequeue a message
// (blocking up to the configured idle timeout), dispatch it to every
// matching channel, and emit a heartbeat each iteration regardless of
// whether a message arrived.
func (b *Bus) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		msg, ok := b.queue.Receive(ctx, b.idleTimeout)
		if ok {
			b.dispatch(ctx, msg)
		}
		b.heartbeats.Send(0)
	}
}

// dispatch delivers msg to every channel whose filter matches, counting
// handled/forwarded/lost per the bus-wide contract. Forwarded counts once if
// any channel's filter accepted the message, regardless of whether that
// channel's mailbox had room; a full mailbox still counts a loss.
func (b *Bus) dispatch(ctx context.Context, msg Message) {
	_, span := tracing.StartBusSpan(ctx, tracing.SpanBusDispatch, msg.ID)
	defer span.End()

	b.Counters.handled.Add(1)

	b.channelsMu.RLock()
	defer b.channelsMu.RUnlock()

	delivered := false
	for _, ch := range b.channels {
		if !ch.Accepts(msg.ID) {
			continue
		}
		delivered = true
		copied := msg
		copied.Payload = msg.Payload.Copy()
		if !ch.deliver(copied) {
			copied.Payload.Release()
			b.Counters.lost.Add(1)
		}
	}

	if delivered {
		b.Counters.forwarded.Add(1)
	}
}
