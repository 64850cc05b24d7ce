// Package led controls the board's user LED: initialize the pin once,
// then switch it on or off. The device build drives the GPIO registers
// directly; hosts get a stateful stand-in.
package led

import "sync/atomic"

// Device is the LED boundary consumed by command handlers.
type Device interface {
	Init()
	On()
	Off()
}

// Sim records LED state for host builds and tests.
type Sim struct {
	lit atomic.Bool
}

// NewSim returns an LED stand-in, initially off.
func NewSim() *Sim {
	return &Sim{}
}

func (s *Sim) Init() { s.lit.Store(false) }
func (s *Sim) On()   { s.lit.Store(true) }
func (s *Sim) Off()  { s.lit.Store(false) }

// Lit reports whether the simulated LED is currently on.
func (s *Sim) Lit() bool { return s.lit.Load() }
