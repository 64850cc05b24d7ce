package uart

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingBufferAcceptsCapacityMinusOne(t *testing.T) {
	for _, capacity := range []int{2, 3, 5, 8, 128} {
		rb := NewRingBuffer(capacity)
		for i := 0; i < capacity-1; i++ {
			require.True(t, rb.Put(byte(i)), "capacity %d: put %d should fit", capacity, i)
		}
		require.False(t, rb.Put(0xFF), "capacity %d: buffer should be full", capacity)
		require.False(t, rb.Put(0xFE), "capacity %d: repeated put should keep failing", capacity)

		// One dequeue frees exactly one slot.
		b, ok := rb.Get()
		require.True(t, ok)
		require.Equal(t, byte(0), b)
		require.True(t, rb.Put(0xAA))
		require.False(t, rb.Put(0xBB))
	}
}

func TestRingBufferScenarioFullDrain(t *testing.T) {
	rb := NewRingBuffer(128)
	for i := 0; i < 127; i++ {
		require.True(t, rb.Put(byte(i)))
	}
	require.False(t, rb.Put(0x80))
	for i := 0; i < 127; i++ {
		b, ok := rb.Get()
		require.True(t, ok, "dequeue %d", i)
		require.Equal(t, byte(i), b, "dequeue %d out of order", i)
	}
	_, ok := rb.Get()
	require.False(t, ok, "drained buffer should be empty")
}

func TestRingBufferFreshAfterDrain(t *testing.T) {
	rb := NewRingBuffer(16)

	// Two full fill/drain cycles must behave identically; the second one
	// exercises wrapped indices.
	for cycle := 0; cycle < 2; cycle++ {
		for i := 0; i < 15; i++ {
			require.True(t, rb.Put(byte(cycle*16+i)), "cycle %d put %d", cycle, i)
		}
		require.False(t, rb.Put(0xFF))
		for i := 0; i < 15; i++ {
			b, ok := rb.Get()
			require.True(t, ok)
			require.Equal(t, byte(cycle*16+i), b)
		}
		_, ok := rb.Get()
		require.False(t, ok)
		require.Equal(t, 0, rb.Used())
	}
}

func TestRingBufferOrderWithFailedOps(t *testing.T) {
	rb := NewRingBuffer(4)

	require.True(t, rb.Put('a'))
	require.True(t, rb.Put('b'))
	require.True(t, rb.Put('c'))
	require.False(t, rb.Put('x')) // full, no mutation

	b, ok := rb.Get()
	require.True(t, ok)
	require.Equal(t, byte('a'), b)

	require.True(t, rb.Put('d'))
	require.False(t, rb.Put('y'))

	for _, want := range []byte{'b', 'c', 'd'} {
		b, ok = rb.Get()
		require.True(t, ok)
		require.Equal(t, want, b)
	}
	_, ok = rb.Get()
	require.False(t, ok)
	_, ok = rb.Get() // failed dequeue must not disturb state
	require.False(t, ok)
	require.True(t, rb.Put('e'))
}

func TestRingBufferUsedAndClear(t *testing.T) {
	rb := NewRingBuffer(8)
	require.Equal(t, 8, rb.Size())
	require.Equal(t, 0, rb.Used())
	rb.Put(1)
	rb.Put(2)
	require.Equal(t, 2, rb.Used())
	rb.Get()
	require.Equal(t, 1, rb.Used())
	rb.Clear()
	require.Equal(t, 0, rb.Used())
	_, ok := rb.Get()
	require.False(t, ok)
}

// Single producer and single consumer on separate goroutines: every byte
// that was successfully enqueued arrives exactly once, in order. The
// producer retries on full so nothing is dropped.
func TestRingBufferSPSCInterleaving(t *testing.T) {
	const total = 50000
	rb := NewRingBuffer(64)

	go func() {
		for i := 0; i < total; {
			if rb.Put(byte(i)) {
				i++
			} else {
				runtime.Gosched()
			}
		}
	}()

	got := make([]byte, 0, total)
	for len(got) < total {
		if b, ok := rb.Get(); ok {
			got = append(got, b)
		} else {
			runtime.Gosched()
		}
	}

	for i, b := range got {
		if b != byte(i) {
			t.Fatalf("byte %d: got %#02x want %#02x", i, b, byte(i))
		}
	}
	_, ok := rb.Get()
	require.False(t, ok)
}
