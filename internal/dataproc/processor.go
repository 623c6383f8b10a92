// Package dataproc implements the data processor thread: it dequeues
// DataBlocks from an input queue, applies the Haar wavelet transform
// followed by near-lossless entropy coding, and forwards the encoded block
// to an output queue, retrying output-frame allocation under backpressure
// and dropping with a counted loss only as a last resort.
package dataproc

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/outpost-go/flightcore/internal/compress"
	"github.com/outpost-go/flightcore/internal/compress/nls"
	"github.com/outpost-go/flightcore/internal/compress/wavelet"
	"github.com/outpost-go/flightcore/internal/heartbeat"
	"github.com/outpost-go/flightcore/internal/membuf"
	"github.com/outpost-go/flightcore/internal/refqueue"
	"github.com/outpost-go/flightcore/internal/tracing"
)

// Processor is the data processor thread: one goroutine dequeuing from
// Input, transforming, and enqueuing onto Output.
type Processor struct {
	input  *refqueue.Queue[*compress.DataBlock]
	output *refqueue.Queue[*compress.DataBlock]
	pool   *membuf.Pool

	retryCount int
	retryDelay time.Duration
	idleWait   time.Duration

	heartbeats *heartbeat.Limiter
	enabled    atomic.Bool

	Counters Counters
}

// Config bundles a Processor's construction-time parameters.
type Config struct {
	Input      *refqueue.Queue[*compress.DataBlock]
	Output     *refqueue.Queue[*compress.DataBlock]
	Pool       *membuf.Pool
	RetryCount int
	RetryDelay time.Duration
	IdleWait   time.Duration

	HeartbeatInterval time.Duration
	HeartbeatTopic    chan<- heartbeat.Heartbeat
}

// NewProcessor constructs an enabled Processor from cfg.
func NewProcessor(cfg Config) *Processor {
	p := &Processor{
		input:      cfg.Input,
		output:     cfg.Output,
		pool:       cfg.Pool,
		retryCount: cfg.RetryCount,
		retryDelay: cfg.RetryDelay,
		idleWait:   cfg.IdleWait,
		heartbeats: heartbeat.NewLimiter(heartbeat.SourceProcessor, cfg.HeartbeatInterval, cfg.HeartbeatTopic),
	}
	p.enabled.Store(true)
	return p
}

// Enable resumes the run loop's processing; heartbeats continue regardless.
func (p *Processor) Enable() {
	p.enabled.Store(true)
}

// Disable gates the run loop off: it keeps heartbeating but stops
// dequeuing/processing blocks.
func (p *Processor) Disable() {
	p.enabled.Store(false)
}

// Run drives the processor loop until ctx is cancelled, calling
// ProcessSingleBlock once per iteration (skipped while disabled) and
// emitting a heartbeat every iteration.
func (p *Processor) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		if p.enabled.Load() {
			p.ProcessSingleBlock(ctx, p.idleWait)
		} else {
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.idleWait):
			}
		}
		p.heartbeats.Send(p.idleWait)
	}
}

// ProcessSingleBlock dequeues at most one block from Input (blocking up to
// timeout) and runs it through the full transform/encode/forward pipeline.
// A timeout with nothing to process is a normal, uncounted return.
func (p *Processor) ProcessSingleBlock(ctx context.Context, timeout time.Duration) {
	block, ok := p.input.Receive(ctx, timeout)
	if !ok {
		return
	}
	p.Counters.Received.Add(1)

	if block == nil || !block.IsValid() {
		p.Counters.DroppedInvalid.Add(1)
		return
	}

	ctx, span := tracing.StartProcessorSpan(ctx, tracing.ParameterID(block.ParameterID))
	defer span.End()

	coeffs := toInt16Samples(block.Samples())
	wavelet.Transform(coeffs)
	block.SetCoefficients(coeffs)

	outHandle, ok := p.allocateOutputWithRetry(ctx)
	if !ok {
		p.Counters.DroppedPoolExhausted.Add(1)
		block.Release()
		return
	}

	out := compress.NewDataBlock(outHandle, block.ParameterID, block.StartTime, block.SamplingRate, block.Blocksize)
	out.SetCoefficients(coeffs)

	bitstream, bitLen := nls.Encode(coeffs)
	out.Encode(bitstream, bitLen)
	span.SetAttributes(tracing.EncodedSize(len(bitstream)))

	block.Release()
	p.Counters.Processed.Add(1)

	if p.output.Send(out) {
		p.Counters.Forwarded.Add(1)
	} else {
		p.Counters.Lost.Add(1)
		out.Release()
	}
}

// allocateOutputWithRetry tries to allocate an output frame, retrying up to
// retryCount additional times with retryDelay between attempts if the pool
// is exhausted.
func (p *Processor) allocateOutputWithRetry(ctx context.Context) (membuf.Handle, bool) {
	for attempt := 0; attempt <= p.retryCount; attempt++ {
		if h, ok := p.pool.Allocate(); ok {
			return h, true
		}
		if attempt == p.retryCount {
			break
		}
		select {
		case <-ctx.Done():
			return membuf.Handle{}, false
		case <-time.After(p.retryDelay):
		}
	}
	return membuf.Handle{}, false
}

// toInt16Samples truncates a block's fixpoint samples to plain int16
// values for the wavelet transform, which operates on integer coefficients.
func toInt16Samples(samples []compress.Fixpoint) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = int16(s.ToInt32())
	}
	return out
}
