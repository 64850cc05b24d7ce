//go:build !stm32

// serialsh runs the full firmware loop (console, command dispatcher,
// simulated LED) against the simulated port and drops you into the role
// of its serial peer: whatever you "send" arrives at the device through
// receive interrupts, and whatever the device prints comes back out of
// its transmit register.
package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/openembed/tinygo-serialio/command"
	"github.com/openembed/tinygo-serialio/console"
	"github.com/openembed/tinygo-serialio/led"
	"github.com/openembed/tinygo-serialio/uart"
)

// settle is how long the peer waits after injecting a line before reading
// back, giving the foreground loop a chance to run.
const settle = 20 * time.Millisecond

func main() {
	flag.Parse()

	port := uart.NewSimPort()
	drv := uart.New(port)
	if err := drv.Configure(uart.Config{BaudRate: 19200, DataBits: 9, Parity: uart.ParityOdd}); err != nil {
		glog.Exitf("configure: %v", err)
	}
	pump := &uart.Pump{Port: port, Drv: drv}

	board := led.NewSim()
	board.Init()
	con := console.New(drv)
	disp := command.NewDispatcher(&command.Context{Console: con, LED: board}, command.Builtin())

	// The device's foreground program.
	go func() {
		con.WriteString("$$ Welcome to SerialIO!\r\n")
		for {
			disp.Process(con.ReadLine())
		}
	}()

	time.Sleep(settle)
	fmt.Print(string(pump.Drain())) // banner

	sh := ishell.New()
	sh.SetPrompt("uart> ")
	sh.Println("simulated serial peer; try: send led on")

	recv := func(c *ishell.Context) {
		if out := pump.Drain(); len(out) > 0 {
			c.Printf("%s", string(out))
		}
	}

	sh.AddCmd(&ishell.Cmd{
		Name: "send",
		Help: "send a line to the device and print its response",
		Func: func(c *ishell.Context) {
			pump.Inject([]byte(strings.Join(c.Args, " ") + "\r"))
			time.Sleep(settle)
			recv(c)
		},
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "recv",
		Help: "drain pending device output",
		Func: recv,
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "led",
		Help: "show the simulated LED state",
		Func: func(c *ishell.Context) {
			if board.Lit() {
				c.Println("LED: on")
			} else {
				c.Println("LED: off")
			}
		},
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "stats",
		Help: "driver byte and drop counters",
		Func: func(c *ishell.Context) {
			s := drv.Stats()
			c.Printf("rx=%d tx=%d rxDrops=%d txDrops=%d\n", s.RxBytes, s.TxBytes, s.RxDrops, s.TxDrops)
		},
	})

	sh.Run()
}
