// Package membuf implements the zero-copy memory substrate shared by every
// other core subsystem: a statically sized pool of fixed-length frames and a
// reference-counted handle type that views them.
//
// A Pool allocates nothing after construction. Its backing storage is one
// contiguous []byte, sliced into equal frames; Allocate hands out a Handle
// that shares a refcount with every copy and sub-view derived from it, and
// the frame returns to the pool the instant that refcount reaches zero.
package membuf

import "sync"

// Pool is a statically sized collection of fixed-length frames.
//
// All frames share one backing allocation made at construction time; no
// further allocation occurs from Pool methods afterward.
type Pool struct {
	mu        sync.Mutex
	storage   []byte
	frameSize int
	numFrames int
	used      []bool
	refcounts []*int32
}

// NewPool allocates the backing storage for numFrames frames of frameSize
// bytes each and returns an empty, ready-to-use Pool.
func NewPool(frameSize, numFrames int) *Pool {
	if frameSize <= 0 || numFrames <= 0 {
		panic("membuf: frameSize and numFrames must be positive")
	}

	p := &Pool{
		storage:   make([]byte, frameSize*numFrames),
		frameSize: frameSize,
		numFrames: numFrames,
		used:      make([]bool, numFrames),
		refcounts: make([]*int32, numFrames),
	}
	for i := range p.refcounts {
		var rc int32
		p.refcounts[i] = &rc
	}
	return p
}

// FrameSize returns the fixed size, in bytes, of every frame in the pool.
func (p *Pool) FrameSize() int {
	return p.frameSize
}

// NumFrames returns the total number of frames the pool was constructed with.
func (p *Pool) NumFrames() int {
	return p.numFrames
}

// Allocate finds the first free frame, marks it owned with refcount 1, and
// returns a Handle spanning the whole frame. Returns ok=false iff the pool is
// exhausted; it never blocks and never allocates.
func (p *Pool) Allocate() (Handle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i < p.numFrames; i++ {
		if !p.used[i] {
			p.used[i] = true
			*p.refcounts[i] = 1
			return Handle{
				pool:   p,
				frame:  i,
				base:   0,
				length: p.frameSize,
				rc:     p.refcounts[i],
			}, true
		}
	}
	return Handle{}, false
}

// NumberOfFreeElements returns the count of frames not currently owned by any
// handle.
func (p *Pool) NumberOfFreeElements() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	free := 0
	for _, used := range p.used {
		if !used {
			free++
		}
	}
	return free
}

// release drops the frame's ownership. Called exactly once, by the handle
// whose copy/release bookkeeping observes the refcount crossing to zero.
func (p *Pool) release(frame int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.used[frame] = false
}

func (p *Pool) frameBytes(frame int) []byte {
	start := frame * p.frameSize
	return p.storage[start : start+p.frameSize]
}
