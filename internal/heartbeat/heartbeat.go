// Package heartbeat implements the rate-limited liveness signal long-running
// threads (the software bus worker, the data processor thread) push to a
// watchdog topic so an external supervisor can detect a stalled or dead
// worker.
package heartbeat

import (
	"time"
)

// Source identifies which long-running component a Heartbeat came from.
type Source uint8

const (
	SourceBus Source = iota
	SourceProcessor
)

// TimeoutType distinguishes a relative deadline (time remaining) from an
// absolute one (a fixed instant), mirroring the watchdog's two supervision
// modes.
type TimeoutType uint8

const (
	TimeoutRelative TimeoutType = iota
	TimeoutAbsolute
)

// Heartbeat is a single liveness record published to the watchdog topic.
type Heartbeat struct {
	Source      Source
	TimeoutType TimeoutType
	Deadline    time.Time
}

// Limiter rate-limits heartbeat emission for one source: a new heartbeat is
// only published if the interval since the last one has elapsed, or the new
// deadline is significantly earlier than the outstanding one (a sign that
// the caller suddenly needs the watchdog to tighten its expectations).
//
// Limiter is safe to use from a single long-running goroutine; it carries no
// internal locking of its own (it is not shared across workers).
type Limiter struct {
	source       Source
	interval     time.Duration
	topic        chan<- Heartbeat
	lastSent     time.Time
	lastDeadline time.Time
}

// NewLimiter constructs a Limiter for source, publishing to topic no more
// often than interval unless a significantly shorter deadline is requested.
func NewLimiter(source Source, interval time.Duration, topic chan<- Heartbeat) *Limiter {
	return &Limiter{
		source:   source,
		interval: interval,
		topic:    topic,
	}
}

// Send emits a heartbeat with deadline now + interval + executionTimeout,
// iff the elapsed time since the last emission is at least interval, or the
// new deadline is more than half an interval earlier than the outstanding
// one. Publishing never blocks: if topic is full the heartbeat is simply
// dropped, since a late liveness signal is still better than a stalled
// worker.
func (l *Limiter) Send(executionTimeout time.Duration) {
	now := time.Now()
	deadline := now.Add(l.interval + executionTimeout)

	elapsed := l.lastSent.IsZero() || now.Sub(l.lastSent) >= l.interval
	significantlyShorter := !l.lastDeadline.IsZero() && deadline.Before(l.lastDeadline.Add(-l.interval/2))

	if !elapsed && !significantlyShorter {
		return
	}

	hb := Heartbeat{
		Source:      l.source,
		TimeoutType: TimeoutRelative,
		Deadline:    deadline,
	}

	select {
	case l.topic <- hb:
	default:
	}

	l.lastSent = now
	l.lastDeadline = deadline
}
