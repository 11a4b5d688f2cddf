// Package disassemble implements a disassembler for 6502 opcodes
// driven by the CPU decode table.
package disassemble

import (
	"fmt"
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/jmchacon/emu6502/cpu"
	"github.com/jmchacon/emu6502/memory"
)

// Step will take the given PC value and disassemble the instruction at that location
// returning a string for the disassembly and the bytes forward the PC should move to get to
// the next instruction. This does not interpret the instructions so LDA, JMP, LDA in memory
// will disassemble as that sequence and not follow the JMP.
// This always reads 2 bytes past the current PC so make sure those addresses are valid.
func Step(pc uint16, r memory.Bus) (string, int) {
	// Preread the operand bytes. Reads wrap past 0xFFFF like the CPU does.
	pc1 := r.Read(pc + 1)
	pc2 := r.Read(pc + 2)
	// Setup a 16 bit value so it can be added the the PC for branch offsets.
	// Sign extend it as needed.
	pc116 := uint16(int16(int8(pc1)))

	o := r.Read(pc)
	ins := cpu.Lookup(o)
	op := ins.Name
	mode := ins.Mode
	if o == 0x00 {
		// Ok, not really but the byte after BRK is skipped.
		mode = cpu.MODE_IMMEDIATE
	}

	out := fmt.Sprintf("%.4X %.2X ", pc, o)
	switch mode {
	case cpu.MODE_IMMEDIATE:
		out += fmt.Sprintf("%.2X      %s #%.2X       ", pc1, op, pc1)
	case cpu.MODE_ZP:
		out += fmt.Sprintf("%.2X      %s %.2X        ", pc1, op, pc1)
	case cpu.MODE_ZPX:
		out += fmt.Sprintf("%.2X      %s %.2X,X      ", pc1, op, pc1)
	case cpu.MODE_ZPY:
		out += fmt.Sprintf("%.2X      %s %.2X,Y      ", pc1, op, pc1)
	case cpu.MODE_INDIRECTX:
		out += fmt.Sprintf("%.2X      %s (%.2X,X)    ", pc1, op, pc1)
	case cpu.MODE_INDIRECTY:
		out += fmt.Sprintf("%.2X      %s (%.2X),Y    ", pc1, op, pc1)
	case cpu.MODE_ABSOLUTE:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X      ", pc1, pc2, op, pc2, pc1)
	case cpu.MODE_ABSOLUTEX:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,X    ", pc1, pc2, op, pc2, pc1)
	case cpu.MODE_ABSOLUTEY:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,Y    ", pc1, pc2, op, pc2, pc1)
	case cpu.MODE_INDIRECT:
		out += fmt.Sprintf("%.2X %.2X   %s (%.2X%.2X)    ", pc1, pc2, op, pc2, pc1)
	case cpu.MODE_IMPLIED:
		out += fmt.Sprintf("        %s           ", op)
	case cpu.MODE_ACCUMULATOR:
		out += fmt.Sprintf("        %s A         ", op)
	case cpu.MODE_RELATIVE:
		out += fmt.Sprintf("%.2X      %s %.2X (%.4X) ", pc1, op, pc1, pc+pc116+2)
	default:
		panic(fmt.Sprintf("Invalid mode: %d", mode))
	}
	return out, 1 + mode.Bytes()
}

// mnemonics maps every mnemonic to the opcodes which implement it.
var mnemonics = buildMnemonics()

func buildMnemonics() *prefixtree.Tree[[]uint8] {
	byName := make(map[string][]uint8)
	for op := 0; op < 256; op++ {
		n := cpu.Lookup(uint8(op)).Name
		byName[n] = append(byName[n], uint8(op))
	}
	t := prefixtree.New[[]uint8]()
	for n, ops := range byName {
		t.Add(n, ops)
	}
	return t
}

// Find returns the opcodes for the mnemonic uniquely identified by prefix
// (case insensitive). An ambiguous or unknown prefix is an error.
func Find(prefix string) (string, []uint8, error) {
	ops, err := mnemonics.FindValue(strings.ToUpper(prefix))
	if err != nil {
		return "", nil, fmt.Errorf("can't find mnemonic %q: %w", prefix, err)
	}
	return cpu.Lookup(ops[0]).Name, ops, nil
}
