package cpu

// zeroCheck sets the Z flag based on the register contents.
func (p *Processor) zeroCheck(reg uint8) {
	p.setFlag(P_ZERO, reg == 0)
}

// negativeCheck sets the N flag based on the register contents.
func (p *Processor) negativeCheck(reg uint8) {
	p.setFlag(P_NEGATIVE, reg&0x80 == 0x80)
}

// carryCheck sets the C flag if the result of an 8 bit ALU operation
// (passed as a 16 bit result) caused a carry out by generating a value >= 0x100.
// NOTE: normally this just means masking 0x100 but in some overflow cases for BCD
// math the value can be 0x200 here so it's still a carry.
func (p *Processor) carryCheck(res uint16) {
	p.setFlag(P_CARRY, res >= 0x100)
}

// overflowCheck sets the V flag if the result of the ALU operation
// caused a two's complement sign change.
// Taken from http://www.righto.com/2012/12/the-6502-overflow-flag-explained.html
func (p *Processor) overflowCheck(reg uint8, arg uint8, res uint8) {
	// If the originals signs differ from the end sign bit
	p.setFlag(P_OVERFLOW, (reg^res)&(arg^res)&0x80 != 0x00)
}

func (p *Processor) setFlag(flag uint8, on bool) {
	if on {
		p.P |= flag
		return
	}
	p.P &^= flag
}

func (p *Processor) flag(flag uint8) bool {
	return p.P&flag != 0x00
}

// loadRegister takes the val and inserts it into the register passed in. It then does
// Z and N checks against the new value.
func (p *Processor) loadRegister(reg *uint8, val uint8) {
	*reg = val
	p.zeroCheck(*reg)
	p.negativeCheck(*reg)
}
