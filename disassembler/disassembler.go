// disassembler takes a filename and load's it and then
// disassembles it to stdout starting at the first instruction.
// If the filename ends in .prg (case insensitive) it will assume
// this is a C64 program file and use the first 2 bytes as the load
// address.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmchacon/emu6502/disassemble"
	"github.com/jmchacon/emu6502/memory"
)

var (
	startPC = flag.Int("start_pc", -1, "PC value to start disassembling. If negative the load address is used.")
	offset  = flag.Int("offset", 0x0000, "Offset into RAM to start loading data. All other RAM will be zero'd out. Ignored for PRG files.")
	count   = flag.Int("count", -1, "Number of instructions to disassemble. If negative disassemble until the end of the loaded data.")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s [-start_pc <PC> -offset <offset>] <filename>", os.Args[0])
	}
	fn := flag.Args()[0]

	b, err := ioutil.ReadFile(fn)
	if err != nil {
		log.Fatalf("Can't open %s - %v", fn, err)
	}
	f := memory.NewFlat()
	load := uint16(*offset)
	if strings.ToLower(filepath.Ext(fn)) == ".prg" {
		fmt.Println("C64 program file")
		if load, err = f.LoadPRG(b); err != nil {
			log.Fatalf("Can't load %s - %v", fn, err)
		}
		b = b[2:]
	} else {
		if max := 65536 - *offset; len(b) > max {
			log.Printf("Length %d at offset %d too long, truncating to 64k", len(b), *offset)
			b = b[:max]
		}
		if err := f.Load(load, b); err != nil {
			log.Fatalf("Can't load %s - %v", fn, err)
		}
	}
	pc := load
	if *startPC >= 0 {
		pc = uint16(*startPC)
	}
	fmt.Printf("0x%.2X bytes at pc: %.4X\n", len(b), pc)

	// Can't base it on PC since it may rollover so just disassemble until we run out of buffer.
	end := int(load) + len(b) - int(pc)
	for cnt, n := 0, 0; cnt < end && (*count < 0 || n < *count); n++ {
		dis, off := disassemble.Step(pc, f)
		pc += uint16(off)
		cnt += off
		fmt.Printf("%s\n", dis)
	}
}
