package cpu

import (
	"github.com/jmchacon/emu6502/memory"
)

// Mode is an enumeration of the 6502 addressing modes.
type Mode int

const (
	MODE_IMPLIED     Mode = iota // No operand
	MODE_ACCUMULATOR             // Operates on A
	MODE_IMMEDIATE               // #i
	MODE_ZP                      // d
	MODE_ZPX                     // d,x
	MODE_ZPY                     // d,y
	MODE_INDIRECTX               // (d,x)
	MODE_INDIRECTY               // (d),y
	MODE_ABSOLUTE                // a
	MODE_ABSOLUTEX               // a,x
	MODE_ABSOLUTEY               // a,y
	MODE_INDIRECT                // (a)
	MODE_RELATIVE                // *+d
)

// Bytes returns the number of operand bytes following the opcode.
func (m Mode) Bytes() int {
	switch m {
	case MODE_IMPLIED, MODE_ACCUMULATOR:
		return 0
	case MODE_ABSOLUTE, MODE_ABSOLUTEX, MODE_ABSOLUTEY, MODE_INDIRECT:
		return 2
	}
	return 1
}

// Instruction describes one opcode.
type Instruction struct {
	Name    string // Mnemonic
	Mode    Mode   // Addressing mode
	Cycles  uint8  // Base cycle cost before page cross/branch penalties.
	Illegal bool   // Undocumented opcode gated by Options.IllegalOpcodes.

	// run resolves the operand and, if execute is true, applies the instruction.
	// With execute false only PC and cycle accounting happen.
	run func(p *Processor, bus memory.Bus, execute bool)
}

// Lookup returns the description of the given opcode.
func Lookup(op uint8) Instruction {
	return opcodes[op]
}

type impliedFunc func(p *Processor, bus memory.Bus)
type memoryFunc func(p *Processor, bus memory.Bus, addr uint16)
type branchFunc func(p *Processor) bool

// addressing pairs a resolver with the mode it implements. Const variants
// share a mode with their page cross sensitive counterpart.
type addressing struct {
	mode    Mode
	resolve resolver
}

var (
	imm  = addressing{MODE_IMMEDIATE, (*Processor).addrImmediate}
	zp   = addressing{MODE_ZP, (*Processor).addrZP}
	zpx  = addressing{MODE_ZPX, (*Processor).addrZPX}
	zpy  = addressing{MODE_ZPY, (*Processor).addrZPY}
	izx  = addressing{MODE_INDIRECTX, (*Processor).addrIndirectX}
	izy  = addressing{MODE_INDIRECTY, (*Processor).addrIndirectY}
	izyC = addressing{MODE_INDIRECTY, (*Processor).addrIndirectYConst}
	abs  = addressing{MODE_ABSOLUTE, (*Processor).addrAbsolute}
	abx  = addressing{MODE_ABSOLUTEX, (*Processor).addrAbsoluteX}
	abxC = addressing{MODE_ABSOLUTEX, (*Processor).addrAbsoluteXConst}
	aby  = addressing{MODE_ABSOLUTEY, (*Processor).addrAbsoluteY}
	abyC = addressing{MODE_ABSOLUTEY, (*Processor).addrAbsoluteYConst}
	ind  = addressing{MODE_INDIRECT, (*Processor).addrIndirect}
)

// imp builds an implied mode instruction.
func imp(name string, fn impliedFunc, cycles uint8) Instruction {
	return Instruction{
		Name:   name,
		Mode:   MODE_IMPLIED,
		Cycles: cycles,
		run: func(p *Processor, bus memory.Bus, execute bool) {
			if execute {
				fn(p, bus)
			}
		},
	}
}

// acc builds an accumulator mode instruction. These are always 2 cycles.
func acc(name string, fn impliedFunc) Instruction {
	i := imp(name, fn, 2)
	i.Mode = MODE_ACCUMULATOR
	return i
}

// mem builds an instruction which operates on a resolved address.
func mem(name string, a addressing, fn memoryFunc, cycles uint8) Instruction {
	return Instruction{
		Name:   name,
		Mode:   a.mode,
		Cycles: cycles,
		run: func(p *Processor, bus memory.Bus, execute bool) {
			addr, extra := a.resolve(p, bus)
			p.remainingCycles += extra
			if execute {
				fn(p, bus, addr)
			}
		},
	}
}

// rel builds a conditional branch. The base cost is 2 with branch() adding
// the taken/page cross penalties.
func rel(name string, cond branchFunc) Instruction {
	return Instruction{
		Name:   name,
		Mode:   MODE_RELATIVE,
		Cycles: 2,
		run: func(p *Processor, bus memory.Bus, _ bool) {
			p.branch(cond(p), p.addrRelative(bus))
		},
	}
}

func illegal(i Instruction) Instruction {
	i.Illegal = true
	return i
}

// kil builds a halt opcode. It's given 2 cycles so disabled it acts as a 1 byte NOP.
func kil() Instruction {
	return illegal(imp("KIL", (*Processor).iKIL, 2))
}

// opcodes is the decode table indexed by opcode.
var opcodes = [256]Instruction{
	0x00: imp("BRK", (*Processor).iBRK, 7),
	0x01: mem("ORA", izx, (*Processor).iORA, 6),
	0x02: kil(),
	0x03: illegal(mem("SLO", izx, (*Processor).iSLO, 8)),
	0x04: mem("NOP", zp, (*Processor).iNOPAddr, 3),
	0x05: mem("ORA", zp, (*Processor).iORA, 3),
	0x06: mem("ASL", zp, (*Processor).iASL, 5),
	0x07: illegal(mem("SLO", zp, (*Processor).iSLO, 5)),
	0x08: imp("PHP", (*Processor).iPHP, 3),
	0x09: mem("ORA", imm, (*Processor).iORA, 2),
	0x0A: acc("ASL", (*Processor).iASLAcc),
	0x0B: illegal(mem("ANC", imm, (*Processor).iANC, 2)),
	0x0C: mem("NOP", abs, (*Processor).iNOPAddr, 4),
	0x0D: mem("ORA", abs, (*Processor).iORA, 4),
	0x0E: mem("ASL", abs, (*Processor).iASL, 6),
	0x0F: illegal(mem("SLO", abs, (*Processor).iSLO, 6)),

	0x10: rel("BPL", bpl),
	0x11: mem("ORA", izy, (*Processor).iORA, 5),
	0x12: kil(),
	0x13: illegal(mem("SLO", izyC, (*Processor).iSLO, 8)),
	0x14: mem("NOP", zpx, (*Processor).iNOPAddr, 4),
	0x15: mem("ORA", zpx, (*Processor).iORA, 4),
	0x16: mem("ASL", zpx, (*Processor).iASL, 6),
	0x17: illegal(mem("SLO", zpx, (*Processor).iSLO, 6)),
	0x18: imp("CLC", (*Processor).iCLC, 2),
	0x19: mem("ORA", aby, (*Processor).iORA, 4),
	0x1A: imp("NOP", (*Processor).iNOP, 2),
	0x1B: illegal(mem("SLO", abyC, (*Processor).iSLO, 7)),
	0x1C: mem("NOP", abx, (*Processor).iNOPAddr, 4),
	0x1D: mem("ORA", abx, (*Processor).iORA, 4),
	0x1E: mem("ASL", abxC, (*Processor).iASL, 7),
	0x1F: illegal(mem("SLO", abxC, (*Processor).iSLO, 7)),

	0x20: mem("JSR", abs, (*Processor).iJSR, 6),
	0x21: mem("AND", izx, (*Processor).iAND, 6),
	0x22: kil(),
	0x23: illegal(mem("RLA", izx, (*Processor).iRLA, 8)),
	0x24: mem("BIT", zp, (*Processor).iBIT, 3),
	0x25: mem("AND", zp, (*Processor).iAND, 3),
	0x26: mem("ROL", zp, (*Processor).iROL, 5),
	0x27: illegal(mem("RLA", zp, (*Processor).iRLA, 5)),
	0x28: imp("PLP", (*Processor).iPLP, 4),
	0x29: mem("AND", imm, (*Processor).iAND, 2),
	0x2A: acc("ROL", (*Processor).iROLAcc),
	0x2B: illegal(mem("ANC", imm, (*Processor).iANC, 2)),
	0x2C: mem("BIT", abs, (*Processor).iBIT, 4),
	0x2D: mem("AND", abs, (*Processor).iAND, 4),
	0x2E: mem("ROL", abs, (*Processor).iROL, 6),
	0x2F: illegal(mem("RLA", abs, (*Processor).iRLA, 6)),

	0x30: rel("BMI", bmi),
	0x31: mem("AND", izy, (*Processor).iAND, 5),
	0x32: kil(),
	0x33: illegal(mem("RLA", izyC, (*Processor).iRLA, 8)),
	0x34: mem("NOP", zpx, (*Processor).iNOPAddr, 4),
	0x35: mem("AND", zpx, (*Processor).iAND, 4),
	0x36: mem("ROL", zpx, (*Processor).iROL, 6),
	0x37: illegal(mem("RLA", zpx, (*Processor).iRLA, 6)),
	0x38: imp("SEC", (*Processor).iSEC, 2),
	0x39: mem("AND", aby, (*Processor).iAND, 4),
	0x3A: imp("NOP", (*Processor).iNOP, 2),
	0x3B: illegal(mem("RLA", abyC, (*Processor).iRLA, 7)),
	0x3C: mem("NOP", abx, (*Processor).iNOPAddr, 4),
	0x3D: mem("AND", abx, (*Processor).iAND, 4),
	0x3E: mem("ROL", abxC, (*Processor).iROL, 7),
	0x3F: illegal(mem("RLA", abxC, (*Processor).iRLA, 7)),

	0x40: imp("RTI", (*Processor).iRTI, 6),
	0x41: mem("EOR", izx, (*Processor).iEOR, 6),
	0x42: kil(),
	0x43: illegal(mem("SRE", izx, (*Processor).iSRE, 8)),
	0x44: mem("NOP", zp, (*Processor).iNOPAddr, 3),
	0x45: mem("EOR", zp, (*Processor).iEOR, 3),
	0x46: mem("LSR", zp, (*Processor).iLSR, 5),
	0x47: illegal(mem("SRE", zp, (*Processor).iSRE, 5)),
	0x48: imp("PHA", (*Processor).iPHA, 3),
	0x49: mem("EOR", imm, (*Processor).iEOR, 2),
	0x4A: acc("LSR", (*Processor).iLSRAcc),
	0x4B: illegal(mem("ALR", imm, (*Processor).iALR, 2)),
	0x4C: mem("JMP", abs, (*Processor).iJMP, 3),
	0x4D: mem("EOR", abs, (*Processor).iEOR, 4),
	0x4E: mem("LSR", abs, (*Processor).iLSR, 6),
	0x4F: illegal(mem("SRE", abs, (*Processor).iSRE, 6)),

	0x50: rel("BVC", bvc),
	0x51: mem("EOR", izy, (*Processor).iEOR, 5),
	0x52: kil(),
	0x53: illegal(mem("SRE", izyC, (*Processor).iSRE, 8)),
	0x54: mem("NOP", zpx, (*Processor).iNOPAddr, 4),
	0x55: mem("EOR", zpx, (*Processor).iEOR, 4),
	0x56: mem("LSR", zpx, (*Processor).iLSR, 6),
	0x57: illegal(mem("SRE", zpx, (*Processor).iSRE, 6)),
	0x58: imp("CLI", (*Processor).iCLI, 2),
	0x59: mem("EOR", aby, (*Processor).iEOR, 4),
	0x5A: imp("NOP", (*Processor).iNOP, 2),
	0x5B: illegal(mem("SRE", abyC, (*Processor).iSRE, 7)),
	0x5C: mem("NOP", abx, (*Processor).iNOPAddr, 4),
	0x5D: mem("EOR", abx, (*Processor).iEOR, 4),
	0x5E: mem("LSR", abxC, (*Processor).iLSR, 7),
	0x5F: illegal(mem("SRE", abxC, (*Processor).iSRE, 7)),

	0x60: imp("RTS", (*Processor).iRTS, 6),
	0x61: mem("ADC", izx, (*Processor).iADC, 6),
	0x62: kil(),
	0x63: illegal(mem("RRA", izx, (*Processor).iRRA, 8)),
	0x64: mem("NOP", zp, (*Processor).iNOPAddr, 3),
	0x65: mem("ADC", zp, (*Processor).iADC, 3),
	0x66: mem("ROR", zp, (*Processor).iROR, 5),
	0x67: illegal(mem("RRA", zp, (*Processor).iRRA, 5)),
	0x68: imp("PLA", (*Processor).iPLA, 4),
	0x69: mem("ADC", imm, (*Processor).iADC, 2),
	0x6A: acc("ROR", (*Processor).iRORAcc),
	0x6B: illegal(mem("ARR", imm, (*Processor).iARR, 2)),
	0x6C: mem("JMP", ind, (*Processor).iJMP, 5),
	0x6D: mem("ADC", abs, (*Processor).iADC, 4),
	0x6E: mem("ROR", abs, (*Processor).iROR, 6),
	0x6F: illegal(mem("RRA", abs, (*Processor).iRRA, 6)),

	0x70: rel("BVS", bvs),
	0x71: mem("ADC", izy, (*Processor).iADC, 5),
	0x72: kil(),
	0x73: illegal(mem("RRA", izyC, (*Processor).iRRA, 8)),
	0x74: mem("NOP", zpx, (*Processor).iNOPAddr, 4),
	0x75: mem("ADC", zpx, (*Processor).iADC, 4),
	0x76: mem("ROR", zpx, (*Processor).iROR, 6),
	0x77: illegal(mem("RRA", zpx, (*Processor).iRRA, 6)),
	0x78: imp("SEI", (*Processor).iSEI, 2),
	0x79: mem("ADC", aby, (*Processor).iADC, 4),
	0x7A: imp("NOP", (*Processor).iNOP, 2),
	0x7B: illegal(mem("RRA", abyC, (*Processor).iRRA, 7)),
	0x7C: mem("NOP", abx, (*Processor).iNOPAddr, 4),
	0x7D: mem("ADC", abx, (*Processor).iADC, 4),
	0x7E: mem("ROR", abxC, (*Processor).iROR, 7),
	0x7F: illegal(mem("RRA", abxC, (*Processor).iRRA, 7)),

	0x80: mem("NOP", imm, (*Processor).iNOPAddr, 2),
	0x81: mem("STA", izx, (*Processor).iSTA, 6),
	0x82: mem("NOP", imm, (*Processor).iNOPAddr, 2),
	0x83: illegal(mem("SAX", izx, (*Processor).iSAX, 6)),
	0x84: mem("STY", zp, (*Processor).iSTY, 3),
	0x85: mem("STA", zp, (*Processor).iSTA, 3),
	0x86: mem("STX", zp, (*Processor).iSTX, 3),
	0x87: illegal(mem("SAX", zp, (*Processor).iSAX, 3)),
	0x88: imp("DEY", (*Processor).iDEY, 2),
	0x89: mem("NOP", imm, (*Processor).iNOPAddr, 2),
	0x8A: imp("TXA", (*Processor).iTXA, 2),
	0x8B: illegal(mem("XAA", imm, (*Processor).iXAA, 2)),
	0x8C: mem("STY", abs, (*Processor).iSTY, 4),
	0x8D: mem("STA", abs, (*Processor).iSTA, 4),
	0x8E: mem("STX", abs, (*Processor).iSTX, 4),
	0x8F: illegal(mem("SAX", abs, (*Processor).iSAX, 4)),

	0x90: rel("BCC", bcc),
	0x91: mem("STA", izyC, (*Processor).iSTA, 6),
	0x92: kil(),
	0x93: illegal(mem("AHX", izyC, (*Processor).iAHX, 6)),
	0x94: mem("STY", zpx, (*Processor).iSTY, 4),
	0x95: mem("STA", zpx, (*Processor).iSTA, 4),
	0x96: mem("STX", zpy, (*Processor).iSTX, 4),
	0x97: illegal(mem("SAX", zpy, (*Processor).iSAX, 4)),
	0x98: imp("TYA", (*Processor).iTYA, 2),
	0x99: mem("STA", abyC, (*Processor).iSTA, 5),
	0x9A: imp("TXS", (*Processor).iTXS, 2),
	0x9B: illegal(mem("TAS", abyC, (*Processor).iTAS, 5)),
	0x9C: illegal(mem("SHY", abxC, (*Processor).iSHY, 5)),
	0x9D: mem("STA", abxC, (*Processor).iSTA, 5),
	0x9E: illegal(mem("SHX", abyC, (*Processor).iSHX, 5)),
	0x9F: illegal(mem("AHX", abyC, (*Processor).iAHX, 5)),

	0xA0: mem("LDY", imm, (*Processor).iLDY, 2),
	0xA1: mem("LDA", izx, (*Processor).iLDA, 6),
	0xA2: mem("LDX", imm, (*Processor).iLDX, 2),
	0xA3: illegal(mem("LAX", izx, (*Processor).iLAX, 6)),
	0xA4: mem("LDY", zp, (*Processor).iLDY, 3),
	0xA5: mem("LDA", zp, (*Processor).iLDA, 3),
	0xA6: mem("LDX", zp, (*Processor).iLDX, 3),
	0xA7: illegal(mem("LAX", zp, (*Processor).iLAX, 3)),
	0xA8: imp("TAY", (*Processor).iTAY, 2),
	0xA9: mem("LDA", imm, (*Processor).iLDA, 2),
	0xAA: imp("TAX", (*Processor).iTAX, 2),
	0xAB: illegal(mem("LAX", imm, (*Processor).iLAX, 2)),
	0xAC: mem("LDY", abs, (*Processor).iLDY, 4),
	0xAD: mem("LDA", abs, (*Processor).iLDA, 4),
	0xAE: mem("LDX", abs, (*Processor).iLDX, 4),
	0xAF: illegal(mem("LAX", abs, (*Processor).iLAX, 4)),

	0xB0: rel("BCS", bcs),
	0xB1: mem("LDA", izy, (*Processor).iLDA, 5),
	0xB2: kil(),
	0xB3: illegal(mem("LAX", izy, (*Processor).iLAX, 5)),
	0xB4: mem("LDY", zpx, (*Processor).iLDY, 4),
	0xB5: mem("LDA", zpx, (*Processor).iLDA, 4),
	0xB6: mem("LDX", zpy, (*Processor).iLDX, 4),
	0xB7: illegal(mem("LAX", zpy, (*Processor).iLAX, 4)),
	0xB8: imp("CLV", (*Processor).iCLV, 2),
	0xB9: mem("LDA", aby, (*Processor).iLDA, 4),
	0xBA: imp("TSX", (*Processor).iTSX, 2),
	0xBB: illegal(mem("LAS", aby, (*Processor).iLAS, 4)),
	0xBC: mem("LDY", abx, (*Processor).iLDY, 4),
	0xBD: mem("LDA", abx, (*Processor).iLDA, 4),
	0xBE: mem("LDX", aby, (*Processor).iLDX, 4),
	0xBF: illegal(mem("LAX", aby, (*Processor).iLAX, 4)),

	0xC0: mem("CPY", imm, (*Processor).iCPY, 2),
	0xC1: mem("CMP", izx, (*Processor).iCMP, 6),
	0xC2: mem("NOP", imm, (*Processor).iNOPAddr, 2),
	0xC3: illegal(mem("DCP", izx, (*Processor).iDCP, 8)),
	0xC4: mem("CPY", zp, (*Processor).iCPY, 3),
	0xC5: mem("CMP", zp, (*Processor).iCMP, 3),
	0xC6: mem("DEC", zp, (*Processor).iDEC, 5),
	0xC7: illegal(mem("DCP", zp, (*Processor).iDCP, 5)),
	0xC8: imp("INY", (*Processor).iINY, 2),
	0xC9: mem("CMP", imm, (*Processor).iCMP, 2),
	0xCA: imp("DEX", (*Processor).iDEX, 2),
	0xCB: illegal(mem("AXS", imm, (*Processor).iAXS, 2)),
	0xCC: mem("CPY", abs, (*Processor).iCPY, 4),
	0xCD: mem("CMP", abs, (*Processor).iCMP, 4),
	0xCE: mem("DEC", abs, (*Processor).iDEC, 6),
	0xCF: illegal(mem("DCP", abs, (*Processor).iDCP, 6)),

	0xD0: rel("BNE", bne),
	0xD1: mem("CMP", izy, (*Processor).iCMP, 5),
	0xD2: kil(),
	0xD3: illegal(mem("DCP", izyC, (*Processor).iDCP, 8)),
	0xD4: mem("NOP", zpx, (*Processor).iNOPAddr, 4),
	0xD5: mem("CMP", zpx, (*Processor).iCMP, 4),
	0xD6: mem("DEC", zpx, (*Processor).iDEC, 6),
	0xD7: illegal(mem("DCP", zpx, (*Processor).iDCP, 6)),
	0xD8: imp("CLD", (*Processor).iCLD, 2),
	0xD9: mem("CMP", aby, (*Processor).iCMP, 4),
	0xDA: imp("NOP", (*Processor).iNOP, 2),
	0xDB: illegal(mem("DCP", abyC, (*Processor).iDCP, 7)),
	0xDC: mem("NOP", abx, (*Processor).iNOPAddr, 4),
	0xDD: mem("CMP", abx, (*Processor).iCMP, 4),
	0xDE: mem("DEC", abxC, (*Processor).iDEC, 7),
	0xDF: illegal(mem("DCP", abxC, (*Processor).iDCP, 7)),

	0xE0: mem("CPX", imm, (*Processor).iCPX, 2),
	0xE1: mem("SBC", izx, (*Processor).iSBC, 6),
	0xE2: mem("NOP", imm, (*Processor).iNOPAddr, 2),
	0xE3: illegal(mem("ISC", izx, (*Processor).iISC, 8)),
	0xE4: mem("CPX", zp, (*Processor).iCPX, 3),
	0xE5: mem("SBC", zp, (*Processor).iSBC, 3),
	0xE6: mem("INC", zp, (*Processor).iINC, 5),
	0xE7: illegal(mem("ISC", zp, (*Processor).iISC, 5)),
	0xE8: imp("INX", (*Processor).iINX, 2),
	0xE9: mem("SBC", imm, (*Processor).iSBC, 2),
	0xEA: imp("NOP", (*Processor).iNOP, 2),
	0xEB: mem("SBC", imm, (*Processor).iSBC, 2),
	0xEC: mem("CPX", abs, (*Processor).iCPX, 4),
	0xED: mem("SBC", abs, (*Processor).iSBC, 4),
	0xEE: mem("INC", abs, (*Processor).iINC, 6),
	0xEF: illegal(mem("ISC", abs, (*Processor).iISC, 6)),

	0xF0: rel("BEQ", beq),
	0xF1: mem("SBC", izy, (*Processor).iSBC, 5),
	0xF2: kil(),
	0xF3: illegal(mem("ISC", izyC, (*Processor).iISC, 8)),
	0xF4: mem("NOP", zpx, (*Processor).iNOPAddr, 4),
	0xF5: mem("SBC", zpx, (*Processor).iSBC, 4),
	0xF6: mem("INC", zpx, (*Processor).iINC, 6),
	0xF7: illegal(mem("ISC", zpx, (*Processor).iISC, 6)),
	0xF8: imp("SED", (*Processor).iSED, 2),
	0xF9: mem("SBC", aby, (*Processor).iSBC, 4),
	0xFA: imp("NOP", (*Processor).iNOP, 2),
	0xFB: illegal(mem("ISC", abyC, (*Processor).iISC, 7)),
	0xFC: mem("NOP", abx, (*Processor).iNOPAddr, 4),
	0xFD: mem("SBC", abx, (*Processor).iSBC, 4),
	0xFE: mem("INC", abxC, (*Processor).iINC, 7),
	0xFF: illegal(mem("ISC", abxC, (*Processor).iISC, 7)),
}
