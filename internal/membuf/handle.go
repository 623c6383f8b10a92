package membuf

import "sync/atomic"

// Handle is an owning, refcounted, bounded view of one frame in a Pool.
//
// The zero Handle is invalid (IsValid reports false) and carries no frame
// reference; it is safe to hold and discard without calling Release.
type Handle struct {
	pool   *Pool
	frame  int
	base   int
	length int
	typeID uint16
	rc     *int32
}

// IsValid reports whether the handle references a live frame.
func (h Handle) IsValid() bool {
	return h.pool != nil && h.rc != nil
}

// Copy increments the shared refcount and returns a new Handle value with the
// same range. Both the original and the copy must eventually be Release'd.
func (h Handle) Copy() Handle {
	if !h.IsValid() {
		return Handle{}
	}
	atomic.AddInt32(h.rc, 1)
	return h
}

// Release decrements the shared refcount. When it crosses to zero the
// originating frame is returned to its pool. Calling Release on an invalid
// handle is a no-op.
func (h Handle) Release() {
	if !h.IsValid() {
		return
	}
	if atomic.AddInt32(h.rc, -1) == 0 {
		h.pool.release(h.frame)
	}
}

// Bytes returns the byte slice this handle views. Callers must not retain it
// beyond the handle's lifetime.
func (h Handle) Bytes() []byte {
	if !h.IsValid() {
		return nil
	}
	frame := h.pool.frameBytes(h.frame)
	return frame[h.base : h.base+h.length]
}

// At returns the byte at index i within the handle's range. It panics on an
// out-of-range index, matching slice semantics.
func (h Handle) At(i int) byte {
	return h.Bytes()[i]
}

// Len returns the number of bytes this handle's range spans.
func (h Handle) Len() int {
	return h.length
}

// Type returns the handle's 16-bit type tag, used by the software bus to
// label message payloads.
func (h Handle) Type() uint16 {
	return h.typeID
}

// SetType sets the handle's 16-bit type tag.
func (h *Handle) SetType(t uint16) {
	h.typeID = t
}

// SubSlice returns a child handle covering [offset, offset+length) of h's
// range. The child shares h's refcount (via an internal Copy), so either
// keeps the backing frame alive. Returns ok=false, zero Handle if the range
// is out of bounds or h is invalid.
func (h Handle) SubSlice(offset, length int) (Handle, bool) {
	if !h.IsValid() || offset < 0 || length < 0 || offset+length > h.length {
		return Handle{}, false
	}
	child := h.Copy()
	child.base = h.base + offset
	child.length = length
	return child, true
}

// SkipFirst returns a child handle with the first n bytes dropped.
func (h Handle) SkipFirst(n int) (Handle, bool) {
	if !h.IsValid() || n < 0 || n > h.length {
		return Handle{}, false
	}
	return h.SubSlice(n, h.length-n)
}

// First returns a child handle covering the first n bytes.
func (h Handle) First(n int) (Handle, bool) {
	if !h.IsValid() || n < 0 || n > h.length {
		return Handle{}, false
	}
	return h.SubSlice(0, n)
}

// Last returns a child handle covering the final n bytes.
func (h Handle) Last(n int) (Handle, bool) {
	if !h.IsValid() || n < 0 || n > h.length {
		return Handle{}, false
	}
	return h.SubSlice(h.length-n, n)
}

// AsConst wraps h in a ConstHandle, signaling read-only intent to callers.
// The conversion is zero-cost and does not touch the refcount.
func (h Handle) AsConst() ConstHandle {
	return ConstHandle{h: h}
}

// ConstHandle is a read-only view over a Handle. The restriction is a
// documented convention enforced by the accessors it exposes, not by the
// runtime: Unsafe() recovers the underlying mutable Handle at zero cost.
type ConstHandle struct {
	h Handle
}

// Bytes returns the handle's byte range. Callers must not write through it.
func (c ConstHandle) Bytes() []byte {
	return c.h.Bytes()
}

// At returns the byte at index i.
func (c ConstHandle) At(i int) byte {
	return c.h.At(i)
}

// Len returns the number of bytes in range.
func (c ConstHandle) Len() int {
	return c.h.Len()
}

// IsValid reports whether the underlying handle references a live frame.
func (c ConstHandle) IsValid() bool {
	return c.h.IsValid()
}

// Type returns the handle's 16-bit type tag.
func (c ConstHandle) Type() uint16 {
	return c.h.Type()
}

// Unsafe recovers the mutable Handle backing this const view.
func (c ConstHandle) Unsafe() Handle {
	return c.h
}
