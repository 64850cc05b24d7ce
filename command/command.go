// Package command implements the serial console's dispatcher: input lines
// are whitespace-normalized, then matched case-insensitively by prefix
// against an ordered handler table. The first matching entry wins;
// unmatched input reports an error on the console.
package command

import (
	"strings"

	"github.com/openembed/tinygo-serialio/console"
	"github.com/openembed/tinygo-serialio/led"
)

// Context is handed to command handlers. Commands holds the dispatcher's
// table so handlers like HELP can enumerate it.
type Context struct {
	Console  *console.Console
	LED      led.Device
	Commands []Command
}

// Command couples a name with its handler. Matching is by prefix on the
// normalized input, so "led on extra" still hits "LED ON".
type Command struct {
	Name string
	Help string
	Run  func(ctx *Context, input string)
}

// Dispatcher routes input lines to handlers. Table order is significant.
type Dispatcher struct {
	ctx  *Context
	cmds []Command
}

// NewDispatcher builds a dispatcher over cmds and publishes the table on
// ctx for handler use.
func NewDispatcher(ctx *Context, cmds []Command) *Dispatcher {
	ctx.Commands = cmds
	return &Dispatcher{ctx: ctx, cmds: cmds}
}

// Normalize collapses whitespace runs to single spaces and trims the
// ends, preserving word boundaries.
func Normalize(s string) string {
	var b strings.Builder
	inWord := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			if inWord {
				b.WriteByte(' ')
				inWord = false
			}
		default:
			b.WriteByte(s[i])
			inWord = true
		}
	}
	return strings.TrimSuffix(b.String(), " ")
}

// Process normalizes input and runs the first command whose name is a
// case-insensitive prefix of it.
func (d *Dispatcher) Process(input string) {
	line := Normalize(input)
	for i := range d.cmds {
		c := &d.cmds[i]
		if len(line) >= len(c.Name) && strings.EqualFold(line[:len(c.Name)], c.Name) {
			c.Run(d.ctx, line)
			return
		}
	}
	d.ctx.Console.WriteString("Unknown command(" + line + ")\r\n")
}

// Builtin returns the default command table for the serial console.
func Builtin() []Command {
	return []Command{
		{Name: "LED ON", Help: "turn the user LED on", Run: ledOn},
		{Name: "LED OFF", Help: "turn the user LED off", Run: ledOff},
		{Name: "ECHO", Help: "echo the rest of the line", Run: echo},
		{Name: "HELP", Help: "list available commands", Run: help},
	}
}

func ledOn(ctx *Context, _ string) {
	ctx.LED.On()
}

func ledOff(ctx *Context, _ string) {
	ctx.LED.Off()
}

func echo(ctx *Context, input string) {
	rest := strings.TrimPrefix(input[len("ECHO"):], " ")
	ctx.Console.WriteString(rest + "\r\n")
}

func help(ctx *Context, _ string) {
	for _, c := range ctx.Commands {
		ctx.Console.WriteString(c.Name + " - " + c.Help + "\r\n")
	}
}
