package uart

import "sync/atomic"

// DefaultCapacity is the slot count of each direction's ring buffer. One
// slot stays unusable to tell empty from full without a counter, so a
// buffer holds at most DefaultCapacity-1 bytes.
const DefaultCapacity = 128

// RingBuffer is a fixed-capacity byte queue with wraparound head/tail
// indices. It is safe for exactly one producer and one consumer running in
// different execution contexts: each index is written by one side only and
// published with an atomic store after the slot it covers, so the peer
// never observes a slot before its byte is in place. Empty means
// head == tail; full means (head+1)%capacity == tail.
type RingBuffer struct {
	buf  []byte
	head atomic.Uint32 // next write position, advanced by the producer
	tail atomic.Uint32 // next read position, advanced by the consumer
}

// NewRingBuffer returns an empty buffer with the given number of slots.
// Capacities below 2 are rounded up to 2; a smaller ring cannot
// distinguish empty from full.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 2 {
		capacity = 2
	}
	return &RingBuffer{buf: make([]byte, capacity)}
}

// Size returns the total slot count, including the reserved slot.
func (rb *RingBuffer) Size() int { return len(rb.buf) }

// Used returns how many bytes are currently queued.
func (rb *RingBuffer) Used() int {
	n := uint32(len(rb.buf))
	return int((rb.head.Load() + n - rb.tail.Load()) % n)
}

// Put stores one byte and reports whether it fit. A full buffer rejects
// the byte with no mutation. Producer side only.
func (rb *RingBuffer) Put(b byte) bool {
	h := rb.head.Load()
	next := (h + 1) % uint32(len(rb.buf))
	if next == rb.tail.Load() {
		return false
	}
	rb.buf[h] = b       // 1) write data
	rb.head.Store(next) // 2) publish
	return true
}

// Get removes and returns the oldest byte. An empty buffer returns
// (0, false). Consumer side only.
func (rb *RingBuffer) Get() (byte, bool) {
	t := rb.tail.Load()
	if t == rb.head.Load() {
		return 0, false
	}
	b := rb.buf[t]                               // 1) read current element
	rb.tail.Store((t + 1) % uint32(len(rb.buf))) // 2) publish consumption
	return b, true
}

// Clear resets both indices to zero. Callers must ensure neither context
// is touching the buffer.
func (rb *RingBuffer) Clear() {
	rb.head.Store(0)
	rb.tail.Store(0)
}
