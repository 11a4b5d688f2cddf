// convertprg takes a C64 style PRG file
// and converts it into a 64k bin image for
// running as a test cart.
// Execution starts at 0xD000 which will then JSR
// to the start PC given and spin once it returns.
// BRK/IRQ/NMI vectors will all point at 0xC000
// which simply infinite loops and 0xFFD2 (CHROUT)
// is a bare RTS.
//
// The output file is named after the input with .bin
// appended onto the end.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/jmchacon/emu6502/cpu"
	"github.com/jmchacon/emu6502/memory"
)

var (
	startPC = flag.Int("start_pc", -1, "PC value to start execution. If negative the PRG load address is used.")
)

const (
	kSPIN   = uint16(0xC000)
	kENTRY  = uint16(0xD000)
	kCHROUT = uint16(0xFFD2)
)

// build returns the image for the given PRG contents.
func build(prg []byte, start int) (*memory.Flat, uint16, error) {
	m := memory.NewFlat()
	addr, err := m.LoadPRG(prg)
	if err != nil {
		return nil, 0, err
	}
	pc := addr
	if start >= 0 {
		pc = uint16(start)
	}

	// JMP kSPIN
	m.Write(kSPIN, 0x4C)
	memory.SetAddr(m, kSPIN+1, kSPIN)

	// JSR <pc> then JMP to itself.
	m.Write(kENTRY, 0x20)
	memory.SetAddr(m, kENTRY+1, pc)
	m.Write(kENTRY+3, 0x4C)
	memory.SetAddr(m, kENTRY+4, kENTRY+3)

	m.Write(kCHROUT, 0x60) // RTS

	memory.SetAddr(m, cpu.NMI_VECTOR, kSPIN)
	memory.SetAddr(m, cpu.RESET_VECTOR, kENTRY)
	memory.SetAddr(m, cpu.IRQ_VECTOR, kSPIN)
	return m, addr, nil
}

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s --start_pc=XXXX <filename>", os.Args[0])
	}
	if *startPC > 65535 {
		log.Fatal("--start_pc out of range. Must be between 0-65535")
	}
	fn := flag.Args()[0]
	b, err := ioutil.ReadFile(fn)
	if err != nil {
		log.Fatalf("Can't open %s - %v", fn, err)
	}

	m, addr, err := build(b, *startPC)
	if err != nil {
		log.Fatalf("Can't convert %s - %v", fn, err)
	}
	fmt.Printf("Addr is 0x%.4X\n", addr)

	out := make([]byte, 0x10000)
	for i := range out {
		out[i] = m.Read(uint16(i))
	}
	outfn := fn + ".bin"
	if err := ioutil.WriteFile(outfn, out, 0644); err != nil {
		log.Fatalf("Can't write %q: %v", outfn, err)
	}
}
