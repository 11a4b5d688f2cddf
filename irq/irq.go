// Package irq defines the basic interfaces for working
// with a 6502 family interrupt. A receiver of interrupts (IRQ/NMI)
// will implement these interfaces to allow other components which generate
// them to easily raise state without cross coupling component logic.
// NOTE: Sender models a level triggered line which is sampled at instruction
// boundaries. Requester models a one shot edge which stays latched until
// serviced.
package irq

type Sender interface {
	// Raised indicates whether the interrupt is currently held high.
	Raised() bool
}

type Receiver interface {
	// Install takes the given sender and stores it for later checks in appropriate logic.
	Install(s Sender)
}

type Requester interface {
	// InterruptRequest latches a maskable interrupt.
	InterruptRequest()
	// NonMaskableInterruptRequest latches a non-maskable interrupt.
	NonMaskableInterruptRequest()
}
