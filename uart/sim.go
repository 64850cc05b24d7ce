//go:build !stm32

package uart

// Host shim: an in-memory USART for unit tests and host tooling, close
// enough to the real peripheral that the driver cannot tell the
// difference. The mutex guards the simulated registers only; the driver's
// ring buffers stay lock-free.

import (
	"sync"

	"github.com/golang/glog"
)

// SimPort implements Port over simulated registers: a one-byte receive
// data register, a transmit log standing in for the wire, and the
// transmit-interrupt mask bit.
type SimPort struct {
	mu         sync.Mutex
	cfg        Config
	configured bool
	rxReg      byte
	rxReads    int
	txLog      []byte
	txWrites   int
	txIRQ      bool
	rxIRQ      bool
}

// NewSimPort returns an unconfigured simulated port.
func NewSimPort() *SimPort {
	return &SimPort{}
}

func (p *SimPort) Configure(cfg Config) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
	p.configured = true
	p.rxIRQ = true // receive interrupt stays armed for the device lifetime
	p.txIRQ = false
	return nil
}

func (p *SimPort) ReadRx() byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rxReads++
	return p.rxReg
}

func (p *SimPort) WriteTx(b byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.txLog = append(p.txLog, b)
	p.txWrites++
}

func (p *SimPort) EnableTxIRQ() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.txIRQ = true
}

func (p *SimPort) DisableTxIRQ() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.txIRQ = false
}

func (p *SimPort) TxIRQEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.txIRQ
}

// SetRx latches a byte into the receive data register, as the shift
// register would on a completed frame. Delivering the matching event is
// the caller's job (OnRxEvent, or Pump.Inject).
func (p *SimPort) SetRx(b byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rxReg = b
}

// TakeTx returns everything written to the transmit register since the
// last call and clears the log.
func (p *SimPort) TakeTx() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.txLog
	p.txLog = nil
	return out
}

// RxReads reports how many receive data-register reads occurred. Each
// receive event must account for exactly one.
func (p *SimPort) RxReads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rxReads
}

// TxWrites reports how many transmit data-register writes occurred. Each
// successful transmit-ready event must account for exactly one.
func (p *SimPort) TxWrites() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.txWrites
}

// RxIRQEnabled reports whether the receive interrupt is armed. Configure
// arms it for the device lifetime; nothing disarms it.
func (p *SimPort) RxIRQEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rxIRQ
}

// Line returns the configured format and whether Configure ran.
func (p *SimPort) Line() (Config, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg, p.configured
}

// Pump plays the interrupt subsystem for host programs. Every injected
// byte becomes one receive event; while the transmit-ready interrupt is
// armed, Drain keeps delivering transmit-ready events and collects what
// lands on the wire. The pump is the sole interrupt context: no other
// code may call the driver's event entry points while it is in use.
type Pump struct {
	Port *SimPort
	Drv  *Driver
}

// Inject delivers p to the driver, one receive event per byte.
func (pm *Pump) Inject(p []byte) {
	for _, b := range p {
		pm.Port.SetRx(b)
		pm.Drv.OnRxEvent()
	}
	glog.V(4).Infof("sim: injected %d bytes", len(p))
}

// Drain delivers transmit-ready events until the driver disarms the
// transmit interrupt, then returns everything written to the transmit
// register since the last Drain.
func (pm *Pump) Drain() []byte {
	for pm.Port.TxIRQEnabled() {
		pm.Drv.OnTxReadyEvent()
	}
	out := pm.Port.TakeTx()
	if len(out) > 0 {
		glog.V(4).Infof("sim: drained %d bytes", len(out))
	}
	return out
}
