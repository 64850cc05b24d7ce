package command

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openembed/tinygo-serialio/console"
	"github.com/openembed/tinygo-serialio/led"
	"github.com/openembed/tinygo-serialio/uart"
)

type fixture struct {
	disp  *Dispatcher
	pump  *uart.Pump
	board *led.Sim
}

func newFixture(t *testing.T, cmds []Command) *fixture {
	t.Helper()
	port := uart.NewSimPort()
	d := uart.New(port)
	require.NoError(t, d.Configure(uart.Config{}))
	board := led.NewSim()
	board.Init()
	ctx := &Context{Console: console.New(d), LED: board}
	return &fixture{
		disp:  NewDispatcher(ctx, cmds),
		pump:  &uart.Pump{Port: port, Drv: d},
		board: board,
	}
}

func (f *fixture) output() string {
	return string(f.pump.Drain())
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"LED ON":            "LED ON",
		"  LED    ON  ":     "LED ON",
		"\tled\t\ton\r":     "led on",
		"":                  "",
		"   \t ":            "",
		"echo  a   b    c ": "echo a b c",
	}
	for in, want := range cases {
		require.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestDispatchLEDCommands(t *testing.T) {
	f := newFixture(t, Builtin())

	f.disp.Process("led on")
	require.True(t, f.board.Lit())

	f.disp.Process("  LED   OFF  ")
	require.False(t, f.board.Lit())

	// Prefix match: trailing text after the command name is accepted.
	f.disp.Process("Led On please")
	require.True(t, f.board.Lit())
	require.Empty(t, f.output())
}

func TestDispatchUnknownCommand(t *testing.T) {
	f := newFixture(t, Builtin())

	f.disp.Process("  blink   fast ")
	require.Equal(t, "Unknown command(blink fast)\r\n", f.output())
}

func TestDispatchEcho(t *testing.T) {
	f := newFixture(t, Builtin())

	f.disp.Process("echo Hello   World")
	require.Equal(t, "Hello World\r\n", f.output())

	f.disp.Process("ECHO")
	require.Equal(t, "\r\n", f.output())
}

func TestDispatchHelpListsTable(t *testing.T) {
	f := newFixture(t, Builtin())

	f.disp.Process("help")
	out := f.output()
	require.Contains(t, out, "LED ON - ")
	require.Contains(t, out, "LED OFF - ")
	require.Contains(t, out, "ECHO - ")
	require.Contains(t, out, "HELP - ")
}

func TestFirstMatchWins(t *testing.T) {
	var hit string
	table := []Command{
		{Name: "LED", Run: func(*Context, string) { hit = "LED" }},
		{Name: "LED ON", Run: func(*Context, string) { hit = "LED ON" }},
	}
	f := newFixture(t, table)

	// "LED" sits first and is a prefix of the input, so it shadows the
	// more specific entry. Table order decides.
	f.disp.Process("LED ON")
	require.Equal(t, "LED", hit)
}
