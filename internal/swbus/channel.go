package swbus

import (
	"sync"

	"github.com/google/uuid"

	"github.com/outpost-go/flightcore/internal/sring"
)

// SendResult is the outcome of a publisher's attempt to hand a message to
// the bus.
type SendResult uint8

const (
	// SendSuccess means the message passed admission and was enqueued.
	SendSuccess SendResult = iota
	// SendInvalidMessage means the admission filter declined the message.
	SendInvalidMessage
	// SendQueueFull means the bus's internal queue had no room.
	SendQueueFull
)

// ReceiveResult is the outcome of a subscriber polling its channel.
type ReceiveResult uint8

const (
	// ReceiveSuccess means a message was returned.
	ReceiveSuccess ReceiveResult = iota
	// ReceiveNoMessageAvailable means the channel's mailbox was empty.
	ReceiveNoMessageAvailable
)

// Channel is a registered bus subscriber: a filter plus a bounded mailbox.
// The worker goroutine copies every message whose filter matches into the
// mailbox; overflow is absorbed by dropping the message and counting it,
// never by blocking the worker.
type Channel struct {
	id      string
	mu      sync.Mutex
	filter  Filter
	mailbox *sring.Ring[Message]

	lost uint64
}

// NewChannel constructs a Channel that accepts messages matching filter,
// buffering up to capacity of them before dropping. Each channel gets a
// generated ID used only for log and metric labels — it plays no role in
// filtering or delivery.
func NewChannel(filter Filter, capacity int) *Channel {
	return &Channel{
		id:      uuid.NewString(),
		filter:  filter,
		mailbox: sring.NewRing[Message](capacity),
	}
}

// ID returns the channel's generated identifier.
func (c *Channel) ID() string {
	return c.id
}

// Accepts reports whether the channel's filter matches id.
func (c *Channel) Accepts(id uint32) bool {
	return c.filter.Accepts(id)
}

// deliver attempts to place msg into the mailbox, returning false (and
// counting a loss) if it is full.
func (c *Channel) deliver(msg Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mailbox.Append(msg) {
		return true
	}
	c.lost++
	return false
}

// ReceiveMessage pops the oldest buffered message, if any.
func (c *Channel) ReceiveMessage() (Message, ReceiveResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg, ok := c.mailbox.Pop()
	if !ok {
		return Message{}, ReceiveNoMessageAvailable
	}
	return msg, ReceiveSuccess
}

// Lost returns the number of messages dropped because the mailbox was full
// when the worker attempted to deliver them.
func (c *Channel) Lost() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lost
}

// Pending returns the number of messages currently buffered.
func (c *Channel) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mailbox.Len()
}
