package dataproc

import "sync/atomic"

// Counters tracks the processor's observable pipeline outcomes.
// Received = Processed + DroppedInvalid + DroppedPoolExhausted, and
// Forwarded + Lost = Processed, are the invariants a caller can assert on.
type Counters struct {
	Received             atomic.Uint64
	Processed            atomic.Uint64
	DroppedInvalid       atomic.Uint64
	DroppedPoolExhausted atomic.Uint64
	Forwarded            atomic.Uint64
	Lost                 atomic.Uint64
}

// Snapshot is a point-in-time copy of Counters safe to log or assert on.
type Snapshot struct {
	Received             uint64
	Processed            uint64
	DroppedInvalid       uint64
	DroppedPoolExhausted uint64
	Forwarded            uint64
	Lost                 uint64
}

// Snapshot reads every counter into a plain struct.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Received:             c.Received.Load(),
		Processed:            c.Processed.Load(),
		DroppedInvalid:       c.DroppedInvalid.Load(),
		DroppedPoolExhausted: c.DroppedPoolExhausted.Load(),
		Forwarded:            c.Forwarded.Load(),
		Lost:                 c.Lost.Load(),
	}
}
