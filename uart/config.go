package uart

import "errors"

// Parity defines the parity setting used on the serial line.
type Parity uint8

const (
	// ParityNone disables parity generation and checking.
	ParityNone Parity = iota
	// ParityEven sets even parity (total number of 1 bits is even).
	ParityEven
	// ParityOdd sets odd parity (total number of 1 bits is odd).
	ParityOdd
)

var (
	ErrInvalidDataBits = errors.New("uart: data bits must be 8 or 9")
	ErrInvalidStopBits = errors.New("uart: stop bits must be 1 or 2")
)

// Config describes the line format, applied once at initialization and
// immutable thereafter. Zero-valued fields select the 19200 8N1 default.
// With 9 data bits the ninth bit carries the parity bit on the wire.
type Config struct {
	BaudRate uint32
	DataBits uint8 // 8 or 9
	Parity   Parity
	StopBits uint8 // 1 or 2
}

func (c Config) withDefaults() Config {
	if c.BaudRate == 0 {
		c.BaudRate = 19200
	}
	if c.DataBits == 0 {
		c.DataBits = 8
	}
	if c.StopBits == 0 {
		c.StopBits = 1
	}
	return c
}

func (c Config) validate() error {
	if c.DataBits != 8 && c.DataBits != 9 {
		return ErrInvalidDataBits
	}
	if c.StopBits != 1 && c.StopBits != 2 {
		return ErrInvalidStopBits
	}
	return nil
}
