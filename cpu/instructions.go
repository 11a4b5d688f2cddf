package cpu

import (
	"github.com/jmchacon/emu6502/memory"
)

// Documented instructions. Memory forms take the resolved address, implied and
// accumulator forms only the bus. Everything happens in one step and the
// dispatcher accounts for the cycles.

// iADC implements the ADC instruction and sets all associated flags.
func (p *Processor) iADC(bus memory.Bus, addr uint16) {
	p.adc(bus.Read(addr))
}

func (p *Processor) adc(arg uint8) {
	// Pull the carry bit out which thankfully is the low bit so can be
	// used directly.
	carry := p.P & P_CARRY

	if p.decimal() {
		// BCD details - http://6502.org/tutorials/decimal_mode.html
		// Also http://nesdev.com/6502_cpu.txt but it has errors
		aL := (p.A & 0x0F) + (arg & 0x0F) + carry
		// Low nibble fixup
		if aL >= 0x0A {
			aL = ((aL + 0x06) & 0x0F) + 0x10
		}
		sum := uint16(p.A&0xF0) + uint16(arg&0xF0) + uint16(aL)
		// High nibble fixup
		if sum >= 0xA0 {
			sum += 0x60
		}
		res := uint8(sum & 0xFF)
		p.carryCheck(sum)
		if p.opts.NMOSDecimalFlags {
			// NMOS sets N and V from the value before the high nibble fixup
			// and Z from the binary sum.
			seq := (p.A & 0xF0) + (arg & 0xF0) + aL
			p.overflowCheck(p.A, arg, seq)
			p.negativeCheck(seq)
			p.zeroCheck(p.A + arg + carry)
			p.A = res
			return
		}
		p.overflowCheck(p.A, arg, res)
		p.loadRegister(&p.A, res)
		return
	}

	sum := p.A + arg + carry
	p.overflowCheck(p.A, arg, sum)
	// Yes, could do bit checks here like the hardware but
	// just treating as uint16 math is simpler to code.
	p.carryCheck(uint16(p.A) + uint16(arg) + uint16(carry))
	p.loadRegister(&p.A, sum)
}

// iSBC implements the SBC instruction for both binary and BCD modes and sets all associated flags.
func (p *Processor) iSBC(bus memory.Bus, addr uint16) {
	p.sbc(bus.Read(addr))
}

func (p *Processor) sbc(arg uint8) {
	if p.decimal() {
		carry := p.P & P_CARRY

		// BCD details - http://6502.org/tutorials/decimal_mode.html
		aL := int8(p.A&0x0F) - int8(arg&0x0F) + int8(carry) - 1
		// Low nibble fixup
		if aL < 0 {
			aL = ((aL - 0x06) & 0x0F) - 0x10
		}
		sum := int16(p.A&0xF0) - int16(arg&0xF0) + int16(aL)
		// High nibble fixup
		if sum < 0x0000 {
			sum -= 0x60
		}
		res := uint8(sum & 0xFF)
		// No borrow out of the high digit means C stays set.
		p.setFlag(P_CARRY, sum >= 0)
		if p.opts.NMOSDecimalFlags {
			// N, V and Z all come from the binary math on NMOS.
			b := p.A + ^arg + carry
			p.overflowCheck(p.A, ^arg, b)
			p.negativeCheck(b)
			p.zeroCheck(b)
			p.A = res
			return
		}
		p.overflowCheck(p.A, ^arg, res)
		p.loadRegister(&p.A, res)
		return
	}

	// Otherwise binary mode is just ones complement the arg and ADC.
	p.adc(^arg)
}

// decimal returns true if ADC/SBC should do BCD math.
func (p *Processor) decimal() bool {
	return p.opts.DecimalMode && p.flag(P_DECIMAL)
}

func (p *Processor) iAND(bus memory.Bus, addr uint16) {
	p.loadRegister(&p.A, p.A&bus.Read(addr))
}

func (p *Processor) iORA(bus memory.Bus, addr uint16) {
	p.loadRegister(&p.A, p.A|bus.Read(addr))
}

func (p *Processor) iEOR(bus memory.Bus, addr uint16) {
	p.loadRegister(&p.A, p.A^bus.Read(addr))
}

// iBIT implements the BIT instruction for AND'ing against A
// and setting N/V based on the value.
func (p *Processor) iBIT(bus memory.Bus, addr uint16) {
	val := bus.Read(addr)
	p.zeroCheck(p.A & val)
	p.negativeCheck(val)
	// Copy V from bit 6
	p.setFlag(P_OVERFLOW, val&P_OVERFLOW != 0x00)
}

// compare implements the logic for all CMP/CPX/CPY instructions and
// sets flags accordingly from the results. The difference is returned
// for callers which need it.
func (p *Processor) compare(reg uint8, val uint8) uint8 {
	res := reg - val
	p.zeroCheck(res)
	p.negativeCheck(res)
	// A-M done as 2's complement addition by ones complement and add 1
	// This way we get valid sign extension and a carry bit test.
	p.carryCheck(uint16(reg) + uint16(^val) + uint16(1))
	return res
}

func (p *Processor) iCMP(bus memory.Bus, addr uint16) {
	p.compare(p.A, bus.Read(addr))
}

func (p *Processor) iCPX(bus memory.Bus, addr uint16) {
	p.compare(p.X, bus.Read(addr))
}

func (p *Processor) iCPY(bus memory.Bus, addr uint16) {
	p.compare(p.Y, bus.Read(addr))
}

// Shifts and rotates. The memory forms read once and write once and return
// the new value so the undocumented combined opcodes can reuse them.

func (p *Processor) asl(val uint8) uint8 {
	p.carryCheck(uint16(val) << 1)
	val <<= 1
	p.zeroCheck(val)
	p.negativeCheck(val)
	return val
}

func (p *Processor) lsr(val uint8) uint8 {
	// Get bit0 in a 16 bit value and then shift it up into
	// the carry position
	p.carryCheck(uint16(val&0x01) << 8)
	val >>= 1
	p.zeroCheck(val)
	p.negativeCheck(val)
	return val
}

func (p *Processor) rol(val uint8) uint8 {
	carry := p.P & P_CARRY
	p.carryCheck(uint16(val) << 1)
	val = val<<1 | carry
	p.zeroCheck(val)
	p.negativeCheck(val)
	return val
}

func (p *Processor) ror(val uint8) uint8 {
	carry := (p.P & P_CARRY) << 7
	p.carryCheck(uint16(val&0x01) << 8)
	val = val>>1 | carry
	p.zeroCheck(val)
	p.negativeCheck(val)
	return val
}

// rmw reads addr, applies op and writes the result back returning it.
func (p *Processor) rmw(bus memory.Bus, addr uint16, op func(uint8) uint8) uint8 {
	val := op(bus.Read(addr))
	bus.Write(addr, val)
	return val
}

func (p *Processor) iASL(bus memory.Bus, addr uint16) { p.rmw(bus, addr, p.asl) }
func (p *Processor) iLSR(bus memory.Bus, addr uint16) { p.rmw(bus, addr, p.lsr) }
func (p *Processor) iROL(bus memory.Bus, addr uint16) { p.rmw(bus, addr, p.rol) }
func (p *Processor) iROR(bus memory.Bus, addr uint16) { p.rmw(bus, addr, p.ror) }

func (p *Processor) iASLAcc(_ memory.Bus) { p.A = p.asl(p.A) }
func (p *Processor) iLSRAcc(_ memory.Bus) { p.A = p.lsr(p.A) }
func (p *Processor) iROLAcc(_ memory.Bus) { p.A = p.rol(p.A) }
func (p *Processor) iRORAcc(_ memory.Bus) { p.A = p.ror(p.A) }

// storeWithFlags stores the val to the given addr and also sets Z/N flags accordingly.
// Generally used to implement INC/DEC.
func (p *Processor) storeWithFlags(bus memory.Bus, addr uint16, val uint8) {
	p.zeroCheck(val)
	p.negativeCheck(val)
	bus.Write(addr, val)
}

func (p *Processor) iINC(bus memory.Bus, addr uint16) {
	p.storeWithFlags(bus, addr, bus.Read(addr)+1)
}

func (p *Processor) iDEC(bus memory.Bus, addr uint16) {
	p.storeWithFlags(bus, addr, bus.Read(addr)-1)
}

func (p *Processor) iINX(_ memory.Bus) { p.loadRegister(&p.X, p.X+1) }
func (p *Processor) iINY(_ memory.Bus) { p.loadRegister(&p.Y, p.Y+1) }
func (p *Processor) iDEX(_ memory.Bus) { p.loadRegister(&p.X, p.X-1) }
func (p *Processor) iDEY(_ memory.Bus) { p.loadRegister(&p.Y, p.Y-1) }

func (p *Processor) iLDA(bus memory.Bus, addr uint16) { p.loadRegister(&p.A, bus.Read(addr)) }
func (p *Processor) iLDX(bus memory.Bus, addr uint16) { p.loadRegister(&p.X, bus.Read(addr)) }
func (p *Processor) iLDY(bus memory.Bus, addr uint16) { p.loadRegister(&p.Y, bus.Read(addr)) }

func (p *Processor) iSTA(bus memory.Bus, addr uint16) { bus.Write(addr, p.A) }
func (p *Processor) iSTX(bus memory.Bus, addr uint16) { bus.Write(addr, p.X) }
func (p *Processor) iSTY(bus memory.Bus, addr uint16) { bus.Write(addr, p.Y) }

// Transfers. TXS is the only one which doesn't touch flags.
func (p *Processor) iTAX(_ memory.Bus) { p.loadRegister(&p.X, p.A) }
func (p *Processor) iTAY(_ memory.Bus) { p.loadRegister(&p.Y, p.A) }
func (p *Processor) iTXA(_ memory.Bus) { p.loadRegister(&p.A, p.X) }
func (p *Processor) iTYA(_ memory.Bus) { p.loadRegister(&p.A, p.Y) }
func (p *Processor) iTSX(_ memory.Bus) { p.loadRegister(&p.X, p.S) }
func (p *Processor) iTXS(_ memory.Bus) { p.S = p.X }

func (p *Processor) iCLC(_ memory.Bus) { p.P &^= P_CARRY }
func (p *Processor) iSEC(_ memory.Bus) { p.P |= P_CARRY }
func (p *Processor) iCLD(_ memory.Bus) { p.P &^= P_DECIMAL }
func (p *Processor) iSED(_ memory.Bus) { p.P |= P_DECIMAL }
func (p *Processor) iCLI(_ memory.Bus) { p.P &^= P_INTERRUPT }
func (p *Processor) iSEI(_ memory.Bus) { p.P |= P_INTERRUPT }
func (p *Processor) iCLV(_ memory.Bus) { p.P &^= P_OVERFLOW }

func (p *Processor) iNOP(_ memory.Bus) {}

// iNOPAddr covers the undocumented NOPs which carry an operand. The operand
// is decoded (and any page cross paid for) but never touched.
func (p *Processor) iNOPAddr(_ memory.Bus, _ uint16) {}

// iJMP implements the JMP instruction for both absolute and indirect modes since
// the resolver has already done the work.
func (p *Processor) iJMP(_ memory.Bus, addr uint16) {
	p.PC = addr
}

// iJSR implements the JSR instruction for jumping to a subroutine.
// NOTE: The PC pushed is the last byte of the JSR instruction, not the next
// instruction. RTS handles this by adding one to the popped PC value.
func (p *Processor) iJSR(bus memory.Bus, addr uint16) {
	p.pushStack16(bus, p.PC-1)
	p.PC = addr
}

// iRTS implements the RTS instruction and pops the PC off the stack adding one to it.
func (p *Processor) iRTS(bus memory.Bus) {
	p.PC = p.popStack16(bus) + 1
}

// iBRK implements the BRK instruction. The byte after BRK is skipped (so RTI returns
// past it), the break flag is set and P pushed before going through IRQ_VECTOR.
func (p *Processor) iBRK(bus memory.Bus) {
	p.pushStack16(bus, p.PC+1)
	p.P |= P_BREAK
	p.pushStack(bus, p.P)
	p.P |= P_INTERRUPT
	p.PC = memory.ReadAddr(bus, IRQ_VECTOR)
}

// iRTI implements the RTI instruction and pops P and then PC off the stack.
func (p *Processor) iRTI(bus memory.Bus) {
	p.iPLP(bus)
	p.PC = p.popStack16(bus)
}

func (p *Processor) iPHA(bus memory.Bus) {
	p.pushStack(bus, p.A)
}

func (p *Processor) iPLA(bus memory.Bus) {
	p.loadRegister(&p.A, p.popStack(bus))
}

// iPHP implements the PHP instruction. The pushed copy always has
// both break bits set but the live register isn't changed.
func (p *Processor) iPHP(bus memory.Bus) {
	p.pushStack(bus, p.P|P_BREAK)
}

// iPLP implements the PLP instruction. The break bits don't exist as real
// flags so they keep their current value.
func (p *Processor) iPLP(bus memory.Bus) {
	p.P = (p.P & P_BREAK) | (p.popStack(bus) &^ P_BREAK)
}

// branch moves PC by the signed offset if taken. Taken branches cost
// one more cycle or two if the destination is on another page.
func (p *Processor) branch(taken bool, offset uint8) {
	if !taken {
		return
	}
	dest := p.PC + uint16(int16(int8(offset)))
	p.remainingCycles += 1 + pageCross(p.PC, dest)
	p.PC = dest
}

func bcc(p *Processor) bool { return !p.flag(P_CARRY) }
func bcs(p *Processor) bool { return p.flag(P_CARRY) }
func bne(p *Processor) bool { return !p.flag(P_ZERO) }
func beq(p *Processor) bool { return p.flag(P_ZERO) }
func bpl(p *Processor) bool { return !p.flag(P_NEGATIVE) }
func bmi(p *Processor) bool { return p.flag(P_NEGATIVE) }
func bvc(p *Processor) bool { return !p.flag(P_OVERFLOW) }
func bvs(p *Processor) bool { return p.flag(P_OVERFLOW) }
