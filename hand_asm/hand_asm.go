// hand_asm takes a filename and produces a bin file
// from parsing the output as a hand assembled file
// of the form:
//
// XXXX OP A1 A2
//
// Where XXXX is the address field and OP is the opcode
// A1,A2 are then optional params as needed.
package main

import (
	"flag"
	"io/ioutil"
	"log"
	"os"

	"github.com/jmchacon/emu6502/handasm"
	"github.com/jmchacon/emu6502/memory"
)

var (
	offset = flag.Int("offset", -1, "Offset to start writing assembled data. Everything prior is zero filled. If negative the first address in the listing is used.")
	image  = flag.Bool("image", false, "If set write a full 64k image with the program in place and the reset vector pointing at its start.")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 2 {
		log.Fatalf("Invalid command: %s <input> <output>", os.Args[0])
	}
	fn := flag.Args()[0]
	out := flag.Args()[1]

	f, err := os.Open(fn)
	if err != nil {
		log.Fatalf("Can't open %q for input - %v", fn, err)
	}
	defer f.Close()
	p, err := handasm.Parse(f)
	if err != nil {
		log.Fatalf("Can't process %q - %v", fn, err)
	}

	var output []byte
	switch {
	case *image:
		m := memory.NewFlat()
		if err := m.Load(p.Start, p.Data); err != nil {
			log.Fatalf("Can't build image: %v", err)
		}
		memory.SetAddr(m, 0xFFFC, p.Start)
		output = make([]byte, 0x10000)
		for i := range output {
			output[i] = m.Read(uint16(i))
		}
	default:
		start := int(p.Start)
		if *offset >= 0 {
			start = *offset
		}
		output = make([]byte, start, start+len(p.Data))
		output = append(output, p.Data...)
	}
	if err := ioutil.WriteFile(out, output, 0644); err != nil {
		log.Fatalf("Got error writing to %q - %v", out, err)
	}
}
