// Package memory defines the basic interfaces for working
// with a 6502 family memory map. Since each implementation
// that is emulated has specific mappings (including shadowed
// regions) this is defined as an interface. A simple flat 64k
// implementation is provided for tools and tests.
package memory

import (
	"fmt"
)

// Bus is the view of memory the CPU sees. The CPU never owns a Bus, it's
// handed one on each call that needs to touch memory.
type Bus interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM addresses this is simply a no-op without
	// any error.
	Write(addr uint16, val uint8)
}

// Bank is a Bus which can also be reset to a power on state.
type Bank interface {
	Bus
	// PowerOn performs power on reset of the memory. This is implementation specific as to
	// whether it's randomized or preset to all zeros.
	PowerOn()
}

// ReadAddr returns the little endian 16 bit value stored at addr and addr+1.
// The second read wraps from 0xFFFF to 0x0000.
func ReadAddr(b Bus, addr uint16) uint16 {
	return uint16(b.Read(addr)) | uint16(b.Read(addr+1))<<8
}

// SetAddr stores val little endian at addr and addr+1. Generally used to fill in vectors.
func SetAddr(b Bus, addr uint16, val uint16) {
	b.Write(addr, uint8(val&0xFF))
	b.Write(addr+1, uint8(val>>8))
}

// Flat is a 64k RAM bank with no mirroring or ROM regions.
type Flat struct {
	addr [65536]uint8
	// Fill is the value every location is set to on PowerOn.
	Fill uint8
}

// NewFlat returns a powered on Flat bank.
func NewFlat() *Flat {
	f := &Flat{}
	f.PowerOn()
	return f
}

// Read implements the interface for memory.Bus.
func (f *Flat) Read(addr uint16) uint8 {
	return f.addr[addr]
}

// Write implements the interface for memory.Bus.
func (f *Flat) Write(addr uint16, val uint8) {
	f.addr[addr] = val
}

// PowerOn implements the interface for memory.Bank.
func (f *Flat) PowerOn() {
	for i := range f.addr {
		f.addr[i] = f.Fill
	}
}

// Load copies b into memory starting at offset. It's an error for the
// image to run past 0xFFFF and nothing is written in that case.
func (f *Flat) Load(offset uint16, b []byte) error {
	if int(offset)+len(b) > len(f.addr) {
		return fmt.Errorf("image of %d bytes at 0x%.4X runs past end of memory", len(b), offset)
	}
	copy(f.addr[offset:], b)
	return nil
}

// LoadPRG loads a C64 style PRG image. The first 2 bytes are the little endian
// load address and the rest is copied there. The load address is returned.
func (f *Flat) LoadPRG(b []byte) (uint16, error) {
	if len(b) < 2 {
		return 0, fmt.Errorf("PRG image too short: %d bytes", len(b))
	}
	start := uint16(b[0]) | uint16(b[1])<<8
	if err := f.Load(start, b[2:]); err != nil {
		return 0, fmt.Errorf("can't load PRG: %w", err)
	}
	return start, nil
}
