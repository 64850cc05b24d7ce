// Package console provides putchar/getchar-style wrappers over the UART
// driver for text-oriented code. It adds no buffering of its own; blocking
// and drop-on-full behaviour come straight from the driver.
package console

import "github.com/openembed/tinygo-serialio/uart"

// Console adapts a uart.Driver to character and line oriented I/O.
type Console struct {
	d     *uart.Driver
	sawCR bool
}

// New returns a console over d.
func New(d *uart.Driver) *Console {
	return &Console{d: d}
}

// Put queues one byte for transmission and returns it. Fire and forget: a
// full transmit buffer drops the byte.
func (c *Console) Put(b byte) byte {
	c.d.Send(b)
	return b
}

// Get blocks until a byte arrives.
func (c *Console) Get() byte {
	return c.d.Receive()
}

// Write implements io.Writer. It never returns an error; bytes that do
// not fit the transmit buffer are dropped, matching Put.
func (c *Console) Write(p []byte) (int, error) {
	for _, b := range p {
		c.d.Send(b)
	}
	return len(p), nil
}

// WriteString queues s byte by byte.
func (c *Console) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		c.d.Send(s[i])
	}
}

// ReadLine blocks until a carriage return or line feed and returns the
// line without its terminator. A line feed directly following a carriage
// return is swallowed, so CRLF peers do not produce empty lines.
func (c *Console) ReadLine() string {
	var line []byte
	for {
		b := c.d.Receive()
		if b == '\n' && c.sawCR {
			c.sawCR = false
			continue
		}
		c.sawCR = b == '\r'
		if b == '\r' || b == '\n' {
			return string(line)
		}
		line = append(line, b)
	}
}
