package swbus

import "sync/atomic"

// Counters tracks the bus's observable outcomes. All fields are updated
// atomically so readers never need to coordinate with the worker
// goroutine; divergence between Accepted and Forwarded is the primary way
// a caller detects drops.
type Counters struct {
	accepted   atomic.Uint64
	declined   atomic.Uint64
	handled    atomic.Uint64
	forwarded  atomic.Uint64
	lost       atomic.Uint64
	failedCopy atomic.Uint64
	failedSend atomic.Uint64
}

// Snapshot is a point-in-time copy of Counters safe to log or assert on.
type Snapshot struct {
	Accepted   uint64
	Declined   uint64
	Handled    uint64
	Forwarded  uint64
	Lost       uint64
	FailedCopy uint64
	FailedSend uint64
}

// Snapshot reads every counter into a plain struct.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Accepted:   c.accepted.Load(),
		Declined:   c.declined.Load(),
		Handled:    c.handled.Load(),
		Forwarded:  c.forwarded.Load(),
		Lost:       c.lost.Load(),
		FailedCopy: c.failedCopy.Load(),
		FailedSend: c.failedSend.Load(),
	}
}
