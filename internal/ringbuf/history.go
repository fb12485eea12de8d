// Package ringbuf keeps the recent past of a multi-channel sample stream.
package ringbuf

import (
	"github.com/tphakala/go-samplerate/internal/simdops"
)

const (
	minCapacity     = 16
	mirrorFactor    = 2 // every slot is stored twice
	bytesPerFloat64 = 8
)

// History holds the most recent Capacity frames of a planar multi-channel
// stream. Frames are addressed by their absolute index in the stream; frames
// before the start of the stream read as zero.
//
// Each channel is stored twice back to back, so any run of up to Capacity
// consecutive frames is available as one contiguous slice and can be fed to a
// dot product without copying. Capacity is always a power of two.
//
// History is not safe for concurrent use.
type History[F simdops.Float] struct {
	data     [][]F
	mask     int64
	capacity int
	written  int64
}

// New creates a history for channels channels holding at least capacity frames.
func New[F simdops.Float](channels, capacity int) *History[F] {
	capacity = roundCapacity(capacity)
	h := &History[F]{
		data:     make([][]F, channels),
		mask:     int64(capacity - 1),
		capacity: capacity,
	}
	for c := range h.data {
		h.data[c] = make([]F, mirrorFactor*capacity)
	}
	return h
}

// SizeFor returns the number of bytes New[float64] would allocate.
func SizeFor(channels, capacity int) int64 {
	return int64(channels) * int64(mirrorFactor*roundCapacity(capacity)) * bytesPerFloat64
}

// Push appends one frame taken from an interleaved buffer. frame must hold at
// least one value per channel.
func (h *History[F]) Push(frame []F) {
	s := h.written & h.mask
	for c, d := range h.data {
		v := frame[c]
		d[s] = v
		d[s+int64(h.capacity)] = v
	}
	h.written++
}

// PushZero appends a silent frame.
func (h *History[F]) PushZero() {
	s := h.written & h.mask
	for _, d := range h.data {
		d[s] = 0
		d[s+int64(h.capacity)] = 0
	}
	h.written++
}

// Window returns frames [start, start+n) of channel ch as a contiguous slice.
// The caller must keep start >= Written()-Capacity() and n <= Capacity();
// frames at or past Written() hold stale data.
func (h *History[F]) Window(ch int, start int64, n int) []F {
	s := start & h.mask
	return h.data[ch][s : s+int64(n)]
}

// Written returns the number of frames pushed since creation or the last Clear.
func (h *History[F]) Written() int64 { return h.written }

// Capacity returns the number of frames retained.
func (h *History[F]) Capacity() int { return h.capacity }

// Clear forgets all frames.
func (h *History[F]) Clear() {
	for _, d := range h.data {
		clear(d)
	}
	h.written = 0
}

// Clone returns an independent copy.
func (h *History[F]) Clone() *History[F] {
	c := &History[F]{
		data:     make([][]F, len(h.data)),
		mask:     h.mask,
		capacity: h.capacity,
		written:  h.written,
	}
	for i, d := range h.data {
		c.data[i] = append([]F(nil), d...)
	}
	return c
}

// MemoryUsage returns the approximate size of the stored samples in bytes.
func (h *History[F]) MemoryUsage() int64 {
	var zero F
	size := int64(bytesPerFloat64)
	if _, ok := any(zero).(float32); ok {
		size /= 2
	}
	return int64(len(h.data)) * int64(mirrorFactor*h.capacity) * size
}

// roundCapacity rounds up to the next power of two, with a small floor.
func roundCapacity(capacity int) int {
	n := minCapacity
	for n < capacity {
		n <<= 1
	}
	return n
}
