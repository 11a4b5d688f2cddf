package main

import (
	"io"
	"log"

	port "github.com/jmchacon/emu6502/io"
	"github.com/jmchacon/emu6502/memory"
)

// consolePort maps a single byte console over another bus. Writes to addr go
// to out and reads come from in. Everything else passes through.
type consolePort struct {
	memory.Bus
	addr uint16
	in   port.Port8
	out  io.Writer
}

// Read implements the interface for memory.Bus.
func (c *consolePort) Read(addr uint16) uint8 {
	if addr == c.addr {
		return c.in.Input()
	}
	return c.Bus.Read(addr)
}

// Write implements the interface for memory.Bus.
func (c *consolePort) Write(addr uint16, val uint8) {
	if addr == c.addr {
		if _, err := c.out.Write([]byte{val}); err != nil {
			log.Printf("console write of 0x%.2X failed: %v", val, err)
		}
		return
	}
	c.Bus.Write(addr, val)
}
