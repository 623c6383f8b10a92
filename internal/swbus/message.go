// Package swbus implements a filtered, fan-out software bus: publishers
// send a Message, an admission filter screens it, and a dedicated worker
// goroutine dispatches every accepted message to each registered Channel
// whose own filter matches, absorbing a slow subscriber's overflow without
// stalling the rest.
package swbus

import "github.com/outpost-go/flightcore/internal/membuf"

// Message is a routed unit on the bus: an identifier and a refcounted
// payload view. Copying a Message shares the payload's underlying frame
// (via Payload.Copy), it does not duplicate bytes.
type Message struct {
	ID      uint32
	Payload membuf.Handle
}

// IsValid reports whether the message carries a usable payload.
func (m Message) IsValid() bool {
	return m.Payload.IsValid()
}

// Release drops the message's hold on its payload, letting a ring buffer
// that displaces or resets a Message release the underlying frame just as
// it would a bare membuf.Handle.
func (m Message) Release() {
	m.Payload.Release()
}
