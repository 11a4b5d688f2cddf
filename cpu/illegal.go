package cpu

import (
	"github.com/jmchacon/emu6502/memory"
)

// Undocumented NMOS opcodes. Most are an RMW instruction glued to an ALU
// instruction since the decode ROM enables both at once.
// Good references: http://nesdev.com/6502_cpu.txt and http://www.oxyron.de/html/opcodes02.html

// iSLO implements the undocumented opcode for SLO. This does an ASL on the given address and then OR's it against A.
func (p *Processor) iSLO(bus memory.Bus, addr uint16) {
	v := p.rmw(bus, addr, p.asl)
	p.loadRegister(&p.A, p.A|v)
}

// iRLA implements the undocumented opcode for RLA. This does a ROL on the given address and then AND's it against A.
func (p *Processor) iRLA(bus memory.Bus, addr uint16) {
	v := p.rmw(bus, addr, p.rol)
	p.loadRegister(&p.A, p.A&v)
}

// iSRE implements the undocumented opcode for SRE. This does a LSR on the given address and then EOR's it against A.
func (p *Processor) iSRE(bus memory.Bus, addr uint16) {
	v := p.rmw(bus, addr, p.lsr)
	p.loadRegister(&p.A, p.A^v)
}

// iRRA implements the undocumented opcode for RRA. This does a ROR on the given address and then ADC's it
// against A using the carry the ROR produced.
func (p *Processor) iRRA(bus memory.Bus, addr uint16) {
	p.adc(p.rmw(bus, addr, p.ror))
}

// iSAX implements the undocumented opcode for SAX. Stores A AND X without touching flags.
func (p *Processor) iSAX(bus memory.Bus, addr uint16) {
	bus.Write(addr, p.A&p.X)
}

// iLAX implements the undocumented opcode for LAX. This loads A and X with the same value.
// The immediate form (0xAB) is unstable on hardware. This assumes the common case of a magic constant of 0xFF.
func (p *Processor) iLAX(bus memory.Bus, addr uint16) {
	v := bus.Read(addr)
	p.loadRegister(&p.A, v)
	p.loadRegister(&p.X, v)
}

// iDCP implements the undocumented opcode for DCP. This decrements the given address and then does a CMP with A.
func (p *Processor) iDCP(bus memory.Bus, addr uint16) {
	v := bus.Read(addr) - 1
	bus.Write(addr, v)
	p.compare(p.A, v)
}

// iISC implements the undocumented opcode for ISC. This increments the given address and then does an SBC.
func (p *Processor) iISC(bus memory.Bus, addr uint16) {
	v := bus.Read(addr) + 1
	bus.Write(addr, v)
	p.sbc(v)
}

// iANC implements the undocumented opcode for ANC. This does AND #i and then sets carry based on bit 7 (sign extend).
func (p *Processor) iANC(bus memory.Bus, addr uint16) {
	p.loadRegister(&p.A, p.A&bus.Read(addr))
	p.carryCheck(uint16(p.A) << 1)
}

// iALR implements the undocumented opcode for ALR. This does AND #i and then LSR.
func (p *Processor) iALR(bus memory.Bus, addr uint16) {
	p.A = p.lsr(p.A & bus.Read(addr))
}

// iARR implements the undocumented opcode for ARR. This does AND #i and then ROR except some flags are set differently.
// Implemented as described in http://nesdev.com/6502_cpu.txt
func (p *Processor) iARR(bus memory.Bus, addr uint16) {
	t := p.A & bus.Read(addr)
	p.A = p.ror(t)
	// Flags are different based on BCD or not (since the ALU acts different).
	if p.decimal() {
		// If bit 6 changed state between the AND result and the rotated value set V.
		p.setFlag(P_OVERFLOW, (t^p.A)&0x40 != 0x00)
		// Now do possible odd BCD fixups and set C
		ah := t >> 4
		al := t & 0x0F
		if (al + (al & 0x01)) > 5 {
			p.A = (p.A & 0xF0) | ((p.A + 6) & 0x0F)
		}
		if (ah + (ah & 0x01)) > 5 {
			p.P |= P_CARRY
			p.A += 0x60
		} else {
			p.P &^= P_CARRY
		}
		return
	}
	// C is bit 6
	p.carryCheck(uint16(p.A) << 2)
	// V is bit 5 ^ bit 6
	p.setFlag(P_OVERFLOW, ((p.A>>6)^(p.A>>5))&0x01 != 0x00)
}

// iXAA implements the undocumented opcode for XAA. This is TXA followed by AND #i.
// Hardware mixes in an unstable constant. This assumes 0xFF.
func (p *Processor) iXAA(bus memory.Bus, addr uint16) {
	p.loadRegister(&p.A, p.X&bus.Read(addr))
}

// iAXS implements the undocumented opcode for AXS. X = (A AND X) - arg with flags set as CMP would.
func (p *Processor) iAXS(bus memory.Bus, addr uint16) {
	p.X = p.compare(p.A&p.X, bus.Read(addr))
}

// highPlusOne is the value the SHx/AHX/TAS family AND against. The high byte of the
// effective (indexed) address plus one leaks onto the bus during the write.
func highPlusOne(addr uint16) uint8 {
	return uint8(addr>>8) + 1
}

// iAHX implements the undocumented opcode for AHX (also called SHA). Stores A AND X AND (H+1).
func (p *Processor) iAHX(bus memory.Bus, addr uint16) {
	bus.Write(addr, p.A&p.X&highPlusOne(addr))
}

// iSHY implements the undocumented opcode for SHY. Stores Y AND (H+1).
func (p *Processor) iSHY(bus memory.Bus, addr uint16) {
	bus.Write(addr, p.Y&highPlusOne(addr))
}

// iSHX implements the undocumented opcode for SHX. Stores X AND (H+1).
func (p *Processor) iSHX(bus memory.Bus, addr uint16) {
	bus.Write(addr, p.X&highPlusOne(addr))
}

// iTAS implements the undocumented opcode for TAS. S = A AND X and then does AHX.
func (p *Processor) iTAS(bus memory.Bus, addr uint16) {
	p.S = p.A & p.X
	p.iAHX(bus, addr)
}

// iLAS implements the undocumented opcode for LAS. A, X and S all get memory AND S.
func (p *Processor) iLAS(bus memory.Bus, addr uint16) {
	v := bus.Read(addr) & p.S
	p.S = v
	p.loadRegister(&p.X, v)
	p.loadRegister(&p.A, v)
}

// iKIL implements the halt opcodes. The processor stops until reset.
func (p *Processor) iKIL(_ memory.Bus) {
	p.halted = true
}
