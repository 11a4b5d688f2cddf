// Package cpu defines the 6502 architecture and provides
// the methods needed to run the CPU and interface with it
// for emulation.
//
// The core runs one instruction at a time. The whole effect of an instruction
// (address resolution, memory traffic, register/flag updates) happens on the
// first cycle and the remaining cycles are simply counted down. Callers drive
// it with Cycle (one clock) or ExecuteInstruction (to the next instruction boundary).
package cpu

import (
	"fmt"
	"log"

	"github.com/jmchacon/emu6502/irq"
	"github.com/jmchacon/emu6502/memory"
)

const (
	NMI_VECTOR   = uint16(0xFFFA)
	RESET_VECTOR = uint16(0xFFFC)
	IRQ_VECTOR   = uint16(0xFFFE)

	P_NEGATIVE  = uint8(0x80)
	P_OVERFLOW  = uint8(0x40)
	P_S1        = uint8(0x20) // Always written as 1 when pushed.
	P_B         = uint8(0x10) // Set in the pushed copy for BRK/PHP/IRQ/NMI. Never set live by them.
	P_DECIMAL   = uint8(0x8)
	P_INTERRUPT = uint8(0x4)
	P_ZERO      = uint8(0x2)
	P_CARRY     = uint8(0x1)

	// P_BREAK covers both bits PHP/PLP/BRK treat as the break flag.
	P_BREAK = P_B | P_S1

	STACK_PAGE = uint16(0x0100)

	// DEFAULT_PC is where New starts execution.
	DEFAULT_PC = uint16(0x0400)

	kBOOT_SP      = uint8(0xFD)
	kBOOT_STATUS  = P_S1 | P_INTERRUPT       // 0x24
	kRESET_STATE  = P_S1 | P_B | P_INTERRUPT // 0x34
	kRESET_CYCLES = uint8(8)
	kNMI_CYCLES   = uint8(8)
	kIRQ_CYCLES   = uint8(7)
)

// Options control optional behavior of the processor.
type Options struct {
	// DecimalMode enables BCD math in ADC/SBC (and ARR) when P_DECIMAL is set.
	// Without it D is still stored but the ALU is always binary (like the Ricoh 2A03).
	DecimalMode bool
	// NMOSDecimalFlags makes decimal ADC/SBC set N, V and Z the way NMOS silicon does
	// (from intermediate or binary values). By default they come from the BCD corrected result.
	NMOSDecimalFlags bool
	// IllegalOpcodes enables the undocumented opcodes. When disabled they
	// execute as no-ops (consuming their cycles) and log a diagnostic.
	IllegalOpcodes bool
	// Trace logs every instruction as it's dispatched.
	Trace bool
	// Logger receives diagnostics and trace output. If nil log.Default() is used.
	Logger *log.Logger
}

type Processor struct {
	A  uint8  // Accumulator register
	X  uint8  // X register
	Y  uint8  // Y register
	S  uint8  // Stack pointer
	P  uint8  // Processor status register
	PC uint16 // Program counter

	opts            Options
	remainingCycles uint8        // Cycles left in the current instruction/interrupt/reset.
	totalCycles     uint64       // Every cycle since creation.
	pendingNMI      bool         // Latched until serviced.
	pendingIRQ      bool         // Latched until serviced.
	irqSources      []irq.Sender // Level triggered IRQ lines sampled at instruction boundaries.
	halted          bool         // If stopped due to a halt instruction
	haltOpcode      uint8        // Opcode that caused the halt
}

// HaltOpcode represents an opcode which halts the CPU.
type HaltOpcode struct {
	Opcode uint8
}

// Error implements the interface for error types.
func (e HaltOpcode) Error() string {
	return fmt.Sprintf("HALT(0x%.2X) executed", e.Opcode)
}

// New returns a processor in the default boot state. PC is DEFAULT_PC, S is 0xFD
// and P has interrupts disabled. No reset sequence is run.
func New(opts Options) *Processor {
	return NewStart(DEFAULT_PC, opts)
}

// NewStart is like New but begins execution at pc.
func NewStart(pc uint16, opts Options) *Processor {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Processor{
		S:    kBOOT_SP,
		P:    kBOOT_STATUS,
		PC:   pc,
		opts: opts,
	}
}

// NewFromReset is like New but loads the starting PC from RESET_VECTOR.
func NewFromReset(bus memory.Bus, opts Options) *Processor {
	return NewStart(memory.ReadAddr(bus, RESET_VECTOR), opts)
}

// Options returns the options this processor was created with.
func (p *Processor) Options() Options {
	return p.opts
}

// SetProgramCounter moves execution to pc. Pending cycles are unaffected.
func (p *Processor) SetProgramCounter(pc uint16) {
	p.PC = pc
}

// Cycles returns the number of cycles run since creation.
func (p *Processor) Cycles() uint64 {
	return p.totalCycles
}

// RemainingCycles returns the cycles left before the next instruction boundary.
func (p *Processor) RemainingCycles() uint8 {
	return p.remainingCycles
}

// Halted returns true if a halt opcode has stopped the processor.
// Only Reset clears this.
func (p *Processor) Halted() bool {
	return p.halted
}

// Install implements the interface for irq.Receiver. The sender is polled
// at every instruction boundary and requests an IRQ only while raised.
func (p *Processor) Install(s irq.Sender) {
	p.irqSources = append(p.irqSources, s)
}

// InterruptRequest implements the interface for irq.Requester. The IRQ is
// serviced at the next instruction boundary where P_INTERRUPT is clear.
func (p *Processor) InterruptRequest() {
	p.pendingIRQ = true
}

// NonMaskableInterruptRequest implements the interface for irq.Requester.
// The NMI is serviced at the next instruction boundary.
func (p *Processor) NonMaskableInterruptRequest() {
	p.pendingNMI = true
}

// Reset runs the reset sequence. A/X/Y are cleared, S goes to 0xFD, P is set to
// its reset state and PC is loaded from RESET_VECTOR. Nothing is pushed. This takes
// 8 cycles which are consumed by subsequent calls to Cycle. Pending interrupts and
// any halt state are dropped.
func (p *Processor) Reset(bus memory.Bus) {
	p.A = 0
	p.X = 0
	p.Y = 0
	p.S = kBOOT_SP
	p.P = kRESET_STATE
	p.PC = memory.ReadAddr(bus, RESET_VECTOR)
	p.remainingCycles = kRESET_CYCLES
	p.pendingNMI = false
	p.pendingIRQ = false
	p.halted = false
	p.haltOpcode = 0
}

// Cycle runs one clock cycle. If the previous instruction has finished, pending
// interrupts are serviced (NMI first) or the next instruction is fetched and fully
// executed. Either way the cycle is then counted.
// The only error is HaltOpcode which is returned for every Cycle once a halt opcode
// has run (with illegal opcodes enabled). The processor doesn't advance while halted.
func (p *Processor) Cycle(bus memory.Bus) error {
	if p.halted {
		return HaltOpcode{p.haltOpcode}
	}
	if p.remainingCycles == 0 {
		// Installed lines are level triggered so they count only while held.
		irqLine := p.pendingIRQ
		for _, s := range p.irqSources {
			if s.Raised() {
				irqLine = true
			}
		}
		switch {
		case p.pendingNMI:
			p.interrupt(bus, NMI_VECTOR)
			p.pendingNMI = false
			p.remainingCycles = kNMI_CYCLES
		case irqLine && p.P&P_INTERRUPT == 0x00:
			p.interrupt(bus, IRQ_VECTOR)
			p.pendingIRQ = false
			p.remainingCycles = kIRQ_CYCLES
		default:
			p.dispatch(bus)
			if p.halted {
				p.totalCycles++
				return HaltOpcode{p.haltOpcode}
			}
		}
	}
	p.remainingCycles--
	p.totalCycles++
	return nil
}

// ExecuteInstruction runs cycles until the current instruction (or interrupt/reset
// sequence) completes. At least one cycle is always run so calling this at an
// instruction boundary runs exactly one instruction.
func (p *Processor) ExecuteInstruction(bus memory.Bus) error {
	if err := p.Cycle(bus); err != nil {
		return err
	}
	for p.remainingCycles != 0 {
		if err := p.Cycle(bus); err != nil {
			return err
		}
	}
	return nil
}

// dispatch fetches, decodes and runs one instruction. remainingCycles ends up as
// the table cost plus any extra cycles from page crossing or branching.
func (p *Processor) dispatch(bus memory.Bus) {
	pc := p.PC
	op := bus.Read(pc)
	p.PC++
	ins := &opcodes[op]

	execute := !ins.Illegal || p.opts.IllegalOpcodes
	if !execute {
		p.opts.Logger.Printf("illegal opcode %s (0x%.2X) at 0x%.4X ignored", ins.Name, op, pc)
	}
	if p.opts.Trace {
		p.trace(bus, pc, ins)
	}
	p.remainingCycles = 0
	ins.run(p, bus, execute)
	p.remainingCycles += ins.Cycles

	if p.halted {
		p.haltOpcode = op
		p.remainingCycles = 0
		p.opts.Logger.Printf("halt opcode 0x%.2X at 0x%.4X", op, pc)
	}
}

// interrupt pushes PC and P (with both break bits forced on in the pushed copy),
// disables interrupts and loads PC from the given vector. The live B bit is untouched.
func (p *Processor) interrupt(bus memory.Bus, vector uint16) {
	p.pushStack16(bus, p.PC)
	p.pushStack(bus, p.P|P_BREAK)
	p.P |= P_INTERRUPT
	p.PC = memory.ReadAddr(bus, vector)
}

func (p *Processor) pushStack(bus memory.Bus, val uint8) {
	bus.Write(STACK_PAGE+uint16(p.S), val)
	p.S--
}

func (p *Processor) popStack(bus memory.Bus) uint8 {
	p.S++
	return bus.Read(STACK_PAGE + uint16(p.S))
}

// pushStack16 pushes high byte then low byte so the value sits little endian in memory.
func (p *Processor) pushStack16(bus memory.Bus, val uint16) {
	p.pushStack(bus, uint8(val>>8))
	p.pushStack(bus, uint8(val&0xFF))
}

func (p *Processor) popStack16(bus memory.Bus) uint16 {
	lo := p.popStack(bus)
	hi := p.popStack(bus)
	return uint16(hi)<<8 | uint16(lo)
}
