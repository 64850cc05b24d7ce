//go:build stm32

package led

import "device/stm32"

// PA5 is the user LED pin on the Nucleo-F091RC.
type PA5 struct{}

func (PA5) Init() {
	stm32.RCC.AHBENR.SetBits(stm32.RCC_AHBENR_IOPAEN)
	// PA5 to general-purpose output (01).
	stm32.GPIOA.MODER.ReplaceBits(0x1, 0x3, 5*2)
}

func (PA5) On() {
	stm32.GPIOA.BSRR.Set(1 << 5)
}

func (PA5) Off() {
	stm32.GPIOA.BSRR.Set(1 << (5 + 16))
}
