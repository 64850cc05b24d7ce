//go:build stm32

package uart

// Register-level Port for USART2 on the STM32F0 series (PA2=TX, PA3=RX,
// alternate function 1). The receive interrupt (RXNEIE) is armed once in
// Configure and never cleared; the transmit-ready interrupt (TXEIE) is the
// arm bit the driver toggles. Reading RDR clears RXNE, writing TDR clears
// TXE, so each event costs exactly one register access.

import (
	"device/stm32"
	"runtime/interrupt"
)

// apbClockHz is the peripheral clock feeding USART2. The BRR divisor is
// apbClockHz / baud at 16x oversampling.
const apbClockHz = 24_000_000

// USART2 is the interrupt-driven driver bound to the on-chip USART2.
var (
	USART2     = New(usart2Port)
	usart2Port = &usart2{}
)

func init() {
	usart2Port.intr = interrupt.New(stm32.IRQ_USART2, handleUSART2)
}

// handleUSART2 services the shared USART2 interrupt line. TXE is only
// honoured while TXEIE is set: the flag itself is level-high whenever the
// transmit register is free, armed or not.
func handleUSART2(interrupt.Interrupt) {
	isr := stm32.USART2.ISR.Get()
	if isr&stm32.USART_ISR_RXNE != 0 {
		USART2.OnRxEvent()
	}
	if stm32.USART2.CR1.HasBits(stm32.USART_CR1_TXEIE) && isr&stm32.USART_ISR_TXE != 0 {
		USART2.OnTxReadyEvent()
	}
}

type usart2 struct {
	intr interrupt.Interrupt
}

func (p *usart2) Configure(cfg Config) error {
	// Clocks for GPIOA and USART2.
	stm32.RCC.AHBENR.SetBits(stm32.RCC_AHBENR_IOPAEN)
	stm32.RCC.APB1ENR.SetBits(stm32.RCC_APB1ENR_USART2EN)

	// PA2/PA3 to alternate function 1 (USART2 TX/RX).
	stm32.GPIOA.MODER.ReplaceBits(0x2, 0x3, 2*2)
	stm32.GPIOA.MODER.ReplaceBits(0x2, 0x3, 3*2)
	stm32.GPIOA.AFRL.ReplaceBits(0x1, 0xF, 2*4)
	stm32.GPIOA.AFRL.ReplaceBits(0x1, 0xF, 3*4)

	// 16x oversampling; BRR is then a plain clock/baud divisor.
	stm32.USART2.CR1.ClearBits(stm32.USART_CR1_OVER8)
	stm32.USART2.BRR.Set(apbClockHz / cfg.BaudRate)

	switch cfg.Parity {
	case ParityNone:
		stm32.USART2.CR1.ClearBits(stm32.USART_CR1_PCE)
	case ParityEven:
		stm32.USART2.CR1.SetBits(stm32.USART_CR1_PCE)
		stm32.USART2.CR1.ClearBits(stm32.USART_CR1_PS)
	case ParityOdd:
		stm32.USART2.CR1.SetBits(stm32.USART_CR1_PCE | stm32.USART_CR1_PS)
	}

	// Word length: M1:M0 = 00 for 8 bits, 01 for 9 bits.
	if cfg.DataBits == 9 {
		stm32.USART2.CR1.SetBits(stm32.USART_CR1_M0)
		stm32.USART2.CR1.ClearBits(stm32.USART_CR1_M1)
	} else {
		stm32.USART2.CR1.ClearBits(stm32.USART_CR1_M0 | stm32.USART_CR1_M1)
	}

	// Stop bits: CR2.STOP = 00 for 1, 10 for 2.
	if cfg.StopBits == 2 {
		stm32.USART2.CR2.ReplaceBits(0x2, 0x3, stm32.USART_CR2_STOP_Pos)
	} else {
		stm32.USART2.CR2.ReplaceBits(0x0, 0x3, stm32.USART_CR2_STOP_Pos)
	}

	// Enable transmitter, receiver and the peripheral, then arm the
	// receive interrupt for good. TXEIE stays clear until the first Send.
	stm32.USART2.CR1.SetBits(stm32.USART_CR1_TE | stm32.USART_CR1_RE | stm32.USART_CR1_UE)
	stm32.USART2.CR1.SetBits(stm32.USART_CR1_RXNEIE)

	p.intr.SetPriority(0x80)
	p.intr.Enable()
	return nil
}

func (p *usart2) ReadRx() byte {
	return byte(stm32.USART2.RDR.Get() & 0xFF)
}

func (p *usart2) WriteTx(b byte) {
	stm32.USART2.TDR.Set(uint32(b))
}

func (p *usart2) EnableTxIRQ() {
	stm32.USART2.CR1.SetBits(stm32.USART_CR1_TXEIE)
}

func (p *usart2) DisableTxIRQ() {
	stm32.USART2.CR1.ClearBits(stm32.USART_CR1_TXEIE)
}

func (p *usart2) TxIRQEnabled() bool {
	return stm32.USART2.CR1.HasBits(stm32.USART_CR1_TXEIE)
}
