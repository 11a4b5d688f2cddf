package cpu

import (
	"fmt"

	"github.com/jmchacon/emu6502/memory"
)

// Operand formats the operand of the instruction at pc (whose addressing mode
// is m) in assembler syntax. Relative targets are resolved to an address.
// The operand bytes are read again from the bus so this shouldn't be pointed
// at read sensitive devices.
func (m Mode) Operand(bus memory.Bus, pc uint16) string {
	var lo, hi uint8
	if m.Bytes() > 0 {
		lo = bus.Read(pc + 1)
	}
	if m.Bytes() > 1 {
		hi = bus.Read(pc + 2)
	}
	abs := uint16(hi)<<8 | uint16(lo)
	switch m {
	case MODE_ACCUMULATOR:
		return "A"
	case MODE_IMMEDIATE:
		return fmt.Sprintf("#$%.2X", lo)
	case MODE_ZP:
		return fmt.Sprintf("$%.2X", lo)
	case MODE_ZPX:
		return fmt.Sprintf("$%.2X,X", lo)
	case MODE_ZPY:
		return fmt.Sprintf("$%.2X,Y", lo)
	case MODE_INDIRECTX:
		return fmt.Sprintf("($%.2X,X)", lo)
	case MODE_INDIRECTY:
		return fmt.Sprintf("($%.2X),Y", lo)
	case MODE_ABSOLUTE:
		return fmt.Sprintf("$%.4X", abs)
	case MODE_ABSOLUTEX:
		return fmt.Sprintf("$%.4X,X", abs)
	case MODE_ABSOLUTEY:
		return fmt.Sprintf("$%.4X,Y", abs)
	case MODE_INDIRECT:
		return fmt.Sprintf("($%.4X)", abs)
	case MODE_RELATIVE:
		return fmt.Sprintf("$%.4X", pc+2+uint16(int8(lo)))
	}
	return ""
}

// trace logs the instruction at pc before it runs.
func (p *Processor) trace(bus memory.Bus, pc uint16, ins *Instruction) {
	p.opts.Logger.Printf("%.4X  %s %-9s A:%.2X X:%.2X Y:%.2X P:%.2X SP:%.2X CYC:%d", pc, ins.Name, ins.Mode.Operand(bus, pc), p.A, p.X, p.Y, p.P, p.S, p.totalCycles)
}
