// Package uart implements an interrupt-driven serial driver: a pair of
// fixed-capacity ring buffers bridging the hardware's receive/transmit
// interrupts to a synchronous foreground program, without locks or a
// scheduler primitive. The inbound buffer is filled only by the receive
// interrupt and drained only by the foreground; the outbound buffer is
// filled only by the foreground and drained only by the transmit-ready
// interrupt. That single-producer/single-consumer split per buffer is the
// entire concurrency contract.
package uart

import (
	"sync/atomic"
	"time"
)

// Port abstracts the USART peripheral. The hardware clears its "receive
// data available" condition as a side effect of ReadRx and its "transmit
// ready" condition as a side effect of WriteTx, so the driver performs
// exactly one register access per event, never zero and never more.
type Port interface {
	// Configure programs the line format, arms the receive interrupt for
	// the device lifetime and leaves the transmit-ready interrupt disarmed.
	Configure(Config) error
	// ReadRx reads the receive data register once.
	ReadRx() byte
	// WriteTx writes the transmit data register once.
	WriteTx(byte)
	// EnableTxIRQ arms the transmit-ready interrupt. Idempotent.
	EnableTxIRQ()
	// DisableTxIRQ disarms the transmit-ready interrupt.
	DisableTxIRQ()
	// TxIRQEnabled reports whether the transmit-ready interrupt is armed.
	TxIRQEnabled() bool
}

// Stats holds diagnostic counters. Counting never changes enqueue or
// dequeue outcomes; dropped bytes stay dropped with no signal beyond this.
type Stats struct {
	RxBytes uint32 // bytes queued by receive events
	TxBytes uint32 // bytes handed to the transmit register
	RxDrops uint32 // inbound bytes lost to a full buffer
	TxDrops uint32 // outbound bytes lost to a full buffer
}

// Driver owns one ring buffer per direction and the transmit-interrupt
// arm/disarm protocol. Send and Receive belong to the foreground;
// OnRxEvent and OnTxReadyEvent belong to the interrupt handler. No third
// accessor may be introduced on either buffer.
type Driver struct {
	port Port
	rx   *RingBuffer
	tx   *RingBuffer

	rxBytes atomic.Uint32
	txBytes atomic.Uint32
	rxDrops atomic.Uint32
	txDrops atomic.Uint32
}

// New returns a driver over p with fresh buffers of DefaultCapacity.
func New(p Port) *Driver {
	return &Driver{
		port: p,
		rx:   NewRingBuffer(DefaultCapacity),
		tx:   NewRingBuffer(DefaultCapacity),
	}
}

// Configure applies defaults, validates the line format and programs the
// port. On return the receive interrupt is armed permanently and the
// transmit-ready interrupt is disarmed.
func (d *Driver) Configure(cfg Config) error {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return err
	}
	return d.port.Configure(cfg)
}

// Send queues one byte for transmission and returns immediately. A full
// outbound buffer drops the byte silently; the caller gets no error (the
// drop is visible only in Stats). Send always re-arms the transmit-ready
// interrupt afterwards, whether or not the byte fit. Foreground only.
func (d *Driver) Send(b byte) {
	if !d.tx.Put(b) {
		d.txDrops.Add(1)
	}
	d.port.EnableTxIRQ()
}

// Receive blocks until the inbound buffer yields a byte. There is no
// timeout and no cancellation; progress depends entirely on the receive
// interrupt filling the buffer. Each failed poll yields the processor
// with a zero sleep so the event source can run. Foreground only.
func (d *Driver) Receive() byte {
	for {
		if b, ok := d.rx.Get(); ok {
			return b
		}
		time.Sleep(0) // polite yield
	}
}

// TryReceive returns the next inbound byte without blocking.
func (d *Driver) TryReceive() (byte, bool) {
	return d.rx.Get()
}

// Buffered returns the number of bytes waiting in the inbound buffer.
func (d *Driver) Buffered() int { return d.rx.Used() }

// TxPending returns the number of bytes waiting in the outbound buffer.
func (d *Driver) TxPending() int { return d.tx.Used() }

// OnRxEvent services a "byte received" interrupt. It reads the data
// register exactly once (the read clears the hardware condition) and
// queues the byte; a full inbound buffer loses the byte with no retry and
// no backpressure to the peer. Interrupt context only.
func (d *Driver) OnRxEvent() {
	b := d.port.ReadRx()
	if d.rx.Put(b) {
		d.rxBytes.Add(1)
	} else {
		d.rxDrops.Add(1)
	}
}

// OnTxReadyEvent services a "transmitter ready" interrupt. A dequeued byte
// becomes exactly one data-register write (the write clears the ready
// condition). An empty outbound buffer disarms the transmit-ready
// interrupt instead, so the hardware stops signalling readiness with
// nothing to send. Interrupt context only.
func (d *Driver) OnTxReadyEvent() {
	b, ok := d.tx.Get()
	if !ok {
		d.port.DisableTxIRQ()
		return
	}
	d.port.WriteTx(b)
	d.txBytes.Add(1)
}

// Stats returns a snapshot of the diagnostic counters.
func (d *Driver) Stats() Stats {
	return Stats{
		RxBytes: d.rxBytes.Load(),
		TxBytes: d.txBytes.Load(),
		RxDrops: d.rxDrops.Load(),
		TxDrops: d.txDrops.Load(),
	}
}
