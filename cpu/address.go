package cpu

import (
	"github.com/jmchacon/emu6502/memory"
)

// resolver computes the effective address for an instruction operand starting
// at PC, advances PC past the operand bytes and returns any extra cycles incurred
// (1 when an indexed access crosses a page, otherwise 0).
type resolver func(p *Processor, bus memory.Bus) (uint16, uint8)

// pageCross returns 1 if base and addr are on different pages.
func pageCross(base, addr uint16) uint8 {
	if base&0xFF00 != addr&0xFF00 {
		return 1
	}
	return 0
}

// addrImmediate implements immediate mode - #i
// The operand is the byte after the opcode so its address is returned.
func (p *Processor) addrImmediate(_ memory.Bus) (uint16, uint8) {
	addr := p.PC
	p.PC++
	return addr, 0
}

// addrZP implements Zero page mode - d
func (p *Processor) addrZP(bus memory.Bus) (uint16, uint8) {
	addr := uint16(bus.Read(p.PC))
	p.PC++
	return addr, 0
}

// addrZPX implements Zero page plus X mode - d,x
// The sum wraps within page 0.
func (p *Processor) addrZPX(bus memory.Bus) (uint16, uint8) {
	return p.addrZPXY(bus, p.X)
}

// addrZPY implements Zero page plus Y mode - d,y
// The sum wraps within page 0.
func (p *Processor) addrZPY(bus memory.Bus) (uint16, uint8) {
	return p.addrZPXY(bus, p.Y)
}

func (p *Processor) addrZPXY(bus memory.Bus, reg uint8) (uint16, uint8) {
	addr := uint16(bus.Read(p.PC) + reg)
	p.PC++
	return addr, 0
}

// addrIndirectX implements Zero page indirect plus X mode - (d,x)
// Both the index and the pointer fetch wrap within page 0.
func (p *Processor) addrIndirectX(bus memory.Bus) (uint16, uint8) {
	zp := bus.Read(p.PC) + p.X
	p.PC++
	lo := bus.Read(uint16(zp))
	hi := bus.Read(uint16(zp + 1))
	return uint16(hi)<<8 | uint16(lo), 0
}

// addrIndirectY implements Zero page indirect plus Y mode - (d),y
// A page cross from adding Y costs an extra cycle.
func (p *Processor) addrIndirectY(bus memory.Bus) (uint16, uint8) {
	base := p.indirectYBase(bus)
	addr := base + uint16(p.Y)
	return addr, pageCross(base, addr)
}

// addrIndirectYConst is addrIndirectY for store and RMW instructions which
// always pay for the page cross.
func (p *Processor) addrIndirectYConst(bus memory.Bus) (uint16, uint8) {
	return p.indirectYBase(bus) + uint16(p.Y), 0
}

func (p *Processor) indirectYBase(bus memory.Bus) uint16 {
	zp := bus.Read(p.PC)
	p.PC++
	lo := bus.Read(uint16(zp))
	hi := bus.Read(uint16(zp + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// addrAbsolute implements absolute mode - a
func (p *Processor) addrAbsolute(bus memory.Bus) (uint16, uint8) {
	addr := memory.ReadAddr(bus, p.PC)
	p.PC += 2
	return addr, 0
}

// addrAbsoluteX implements absolute plus X mode - a,x
// A page cross from adding X costs an extra cycle.
func (p *Processor) addrAbsoluteX(bus memory.Bus) (uint16, uint8) {
	return p.addrAbsoluteXY(bus, p.X)
}

// addrAbsoluteY implements absolute plus Y mode - a,y
// A page cross from adding Y costs an extra cycle.
func (p *Processor) addrAbsoluteY(bus memory.Bus) (uint16, uint8) {
	return p.addrAbsoluteXY(bus, p.Y)
}

func (p *Processor) addrAbsoluteXY(bus memory.Bus, reg uint8) (uint16, uint8) {
	base, _ := p.addrAbsolute(bus)
	addr := base + uint16(reg)
	return addr, pageCross(base, addr)
}

// addrAbsoluteXConst is addrAbsoluteX for store and RMW instructions which
// always pay for the page cross.
func (p *Processor) addrAbsoluteXConst(bus memory.Bus) (uint16, uint8) {
	base, _ := p.addrAbsolute(bus)
	return base + uint16(p.X), 0
}

// addrAbsoluteYConst is addrAbsoluteY for store and RMW instructions which
// always pay for the page cross.
func (p *Processor) addrAbsoluteYConst(bus memory.Bus) (uint16, uint8) {
	base, _ := p.addrAbsolute(bus)
	return base + uint16(p.Y), 0
}

// addrIndirect implements indirect mode - (a) which is only used by JMP.
// NMOS parts never carry into the high byte of the pointer when fetching the
// second byte so (0x10FF) reads 0x10FF and 0x1000.
func (p *Processor) addrIndirect(bus memory.Bus) (uint16, uint8) {
	ptr, _ := p.addrAbsolute(bus)
	lo := bus.Read(ptr)
	hi := bus.Read(ptr&0xFF00 | uint16(uint8(ptr)+1))
	return uint16(hi)<<8 | uint16(lo), 0
}

// addrRelative implements relative mode which is only used by branches.
// The returned offset is a signed displacement from the PC after the operand.
func (p *Processor) addrRelative(bus memory.Bus) uint8 {
	off := bus.Read(p.PC)
	p.PC++
	return off
}
