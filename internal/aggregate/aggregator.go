// Package aggregate implements the per-parameter sample sink: a single
// Aggregator fills one DataBlock at a time from pushed fixpoint samples and
// hands each completed block to a Sender once it reaches its configured
// blocksize.
package aggregate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/outpost-go/flightcore/internal/compress"
	"github.com/outpost-go/flightcore/internal/membuf"
	"github.com/outpost-go/flightcore/internal/tracing"
)

// Sender hands a completed DataBlock onward, typically onto an input
// refqueue.Queue consumed by a processor thread.
type Sender interface {
	Send(block *compress.DataBlock) bool
}

// enableState is the aggregator's small enable/disable state machine.
type enableState uint8

const (
	stateDisabled enableState = iota
	stateEnabledPersistent
	stateEnabledOneShot
)

// Aggregator is a single parameter's sample sink. It is not safe for
// concurrent Push calls from more than one producer; the contract is
// single-producer per aggregator, matching the source's documented
// assumption.
type Aggregator struct {
	mu sync.Mutex

	id          string
	parameterID uint16
	pool        *membuf.Pool
	sender      Sender
	now         func() time.Time

	state             enableState
	disableAfterBlock bool

	samplingRate     compress.SamplingRate
	blocksize        compress.Blocksize
	nextSamplingRate compress.SamplingRate
	nextBlocksize    compress.Blocksize

	current *compress.DataBlock
}

// Config bundles an Aggregator's construction-time parameters.
type Config struct {
	ParameterID  uint16
	Pool         *membuf.Pool
	Sender       Sender
	SamplingRate compress.SamplingRate
	Blocksize    compress.Blocksize
	// Now returns the current spacecraft time; defaults to time.Now.
	Now func() time.Time
}

// NewAggregator constructs a disabled Aggregator from cfg.
func NewAggregator(cfg Config) *Aggregator {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Aggregator{
		id:               uuid.NewString(),
		parameterID:      cfg.ParameterID,
		pool:             cfg.Pool,
		sender:           cfg.Sender,
		now:              now,
		samplingRate:     cfg.SamplingRate,
		blocksize:        cfg.Blocksize,
		nextSamplingRate: cfg.SamplingRate,
		nextBlocksize:    cfg.Blocksize,
	}
}

// ParameterID returns the id this aggregator is registered under.
func (a *Aggregator) ParameterID() uint16 {
	return a.parameterID
}

// ID returns the aggregator's generated identifier, used only in log and
// metric labels — it plays no role in registry lookup, which is keyed by
// ParameterID.
func (a *Aggregator) ID() string {
	return a.id
}

// Enable turns the aggregator on persistently.
func (a *Aggregator) Enable() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = stateEnabledPersistent
	a.disableAfterBlock = false
}

// EnableForOneBlock turns the aggregator on for exactly the block currently
// being filled (or the next one started); it disables itself once that
// block is emitted.
func (a *Aggregator) EnableForOneBlock() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = stateEnabledOneShot
}

// Disable turns the aggregator off immediately, discarding any
// partially-filled block. This mirrors the unasserted source behavior of
// dropping the in-flight block on disable.
func (a *Aggregator) Disable() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = stateDisabled
	a.disableAfterBlock = false
	if a.current != nil {
		a.current.Release()
		a.current = nil
	}
}

// DisableAfterCurrentBlock lets the in-flight block complete and emit
// normally, then disables the aggregator.
func (a *Aggregator) DisableAfterCurrentBlock() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.disableAfterBlock = true
}

// SetSamplingRate stages rate to take effect at the start of the next
// block; it never changes a block already being filled.
func (a *Aggregator) SetSamplingRate(rate compress.SamplingRate) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextSamplingRate = rate
}

// SetBlocksize stages bs to take effect at the start of the next block.
func (a *Aggregator) SetBlocksize(bs compress.Blocksize) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextBlocksize = bs
}

// Push appends sample to the current block, allocating a new block if none
// is in progress. Returns false if the aggregator is disabled or the pool
// is exhausted.
func (a *Aggregator) Push(sample compress.Fixpoint) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == stateDisabled {
		return false
	}

	if a.current == nil {
		handle, ok := a.pool.Allocate()
		if !ok {
			return false
		}
		a.samplingRate = a.nextSamplingRate
		a.blocksize = a.nextBlocksize
		a.current = compress.NewDataBlock(handle, a.parameterID, a.now().UnixMicro(), a.samplingRate, a.blocksize)
	}

	if !a.current.PushSample(sample) {
		return false
	}

	if a.current.Full() {
		_, span := tracing.StartAggregatorSpan(context.Background(), a.parameterID, tracing.SampleCount(a.current.SampleCount()))
		a.sender.Send(a.current)
		span.End()
		a.current = nil

		if a.state == stateEnabledOneShot || a.disableAfterBlock {
			a.state = stateDisabled
			a.disableAfterBlock = false
		}
	}

	return true
}

// CurrentSampleCount returns the number of samples held in the block
// currently being filled, or 0 if none is in progress.
func (a *Aggregator) CurrentSampleCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return 0
	}
	return a.current.SampleCount()
}
