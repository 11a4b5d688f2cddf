package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/jmchacon/emu6502/disassemble"
)

// A command is one monitor command. Any unambiguous prefix of the name selects it.
type command struct {
	name  string
	usage string
	fn    func(m *machine, args []string) error // nil for help and quit which the loop handles.
}

var commands = []command{
	{"step", "step [n] - execute n (default 1) instructions", cmdStep},
	{"run", "run [cycles] - run until halt, trap or the cycle limit", cmdRun},
	{"registers", "registers - print CPU state", cmdRegisters},
	{"memory", "memory <addr> [len] - hex dump len (default 16) bytes", cmdMemory},
	{"disassemble", "disassemble [addr] [n] - disassemble n (default 10) instructions", cmdDisassemble},
	{"write", "write <addr> <byte>... - store bytes", cmdWrite},
	{"pc", "pc <addr> - set the program counter", cmdPC},
	{"irq", "irq - latch an IRQ", cmdIRQ},
	{"nmi", "nmi - latch an NMI", cmdNMI},
	{"reset", "reset - run the reset sequence", cmdReset},
	{"opcodes", "opcodes <mnemonic> - list opcodes for a mnemonic", cmdOpcodes},
	{"help", "help - this text", nil},
	{"quit", "quit - exit the monitor", nil},
}

var commandTree = buildCommandTree()

func buildCommandTree() *prefixtree.Tree[*command] {
	t := prefixtree.New[*command]()
	for i := range commands {
		t.Add(commands[i].name, &commands[i])
	}
	return t
}

// monitor reads commands from in until EOF or quit. The prompt is only
// printed when interactive.
func (m *machine) monitor(in io.Reader, interactive bool) error {
	s := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(m.out, "* ")
		}
		if !s.Scan() {
			return s.Err()
		}
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		c, err := commandTree.FindValue(strings.ToLower(fields[0]))
		if err != nil {
			fmt.Fprintf(m.out, "%s: %v\n", fields[0], err)
			continue
		}
		switch c.name {
		case "quit":
			return nil
		case "help":
			for _, c := range commands {
				fmt.Fprintf(m.out, "  %s\n", c.usage)
			}
			continue
		}
		if err := c.fn(m, fields[1:]); err != nil {
			fmt.Fprintf(m.out, "%s: %v\n", c.name, err)
		}
	}
}

// parseNum parses a hex value with an optional $ or 0x prefix.
func parseNum(s string, bits int) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "$"), "0x")
	return strconv.ParseUint(s, 16, bits)
}

// argOr returns args[i] parsed or def if not present.
func argOr(args []string, i int, bits int, def uint64) (uint64, error) {
	if len(args) <= i {
		return def, nil
	}
	return parseNum(args[i], bits)
}

func cmdStep(m *machine, args []string) error {
	n, err := argOr(args, 0, 16, 1)
	if err != nil {
		return err
	}
	for i := uint64(0); i < n; i++ {
		dis, _ := disassemble.Step(m.cpu.PC, m.mem)
		fmt.Fprintln(m.out, strings.TrimSpace(dis))
		if err := m.cpu.ExecuteInstruction(m.bus); err != nil {
			return err
		}
	}
	m.printState()
	return nil
}

func cmdRun(m *machine, args []string) error {
	limit, err := argOr(args, 0, 64, 0)
	if err != nil {
		return err
	}
	err = m.run(limit)
	m.printState()
	return err
}

func cmdRegisters(m *machine, _ []string) error {
	m.printState()
	return nil
}

func cmdMemory(m *machine, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing address")
	}
	addr, err := parseNum(args[0], 16)
	if err != nil {
		return err
	}
	n, err := argOr(args, 1, 16, 16)
	if err != nil {
		return err
	}
	a := uint16(addr)
	for i := uint64(0); i < n; i++ {
		if i%16 == 0 {
			if i != 0 {
				fmt.Fprintln(m.out)
			}
			fmt.Fprintf(m.out, "%.4X:", a)
		}
		fmt.Fprintf(m.out, " %.2X", m.mem.Read(a))
		a++
	}
	fmt.Fprintln(m.out)
	return nil
}

func cmdDisassemble(m *machine, args []string) error {
	addr, err := argOr(args, 0, 16, uint64(m.cpu.PC))
	if err != nil {
		return err
	}
	n, err := argOr(args, 1, 16, 10)
	if err != nil {
		return err
	}
	pc := uint16(addr)
	for i := uint64(0); i < n; i++ {
		dis, off := disassemble.Step(pc, m.mem)
		fmt.Fprintln(m.out, strings.TrimSpace(dis))
		pc += uint16(off)
	}
	return nil
}

func cmdWrite(m *machine, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("need an address and at least one byte")
	}
	addr, err := parseNum(args[0], 16)
	if err != nil {
		return err
	}
	a := uint16(addr)
	for _, s := range args[1:] {
		v, err := parseNum(s, 8)
		if err != nil {
			return err
		}
		m.mem.Write(a, uint8(v))
		a++
	}
	return nil
}

func cmdPC(m *machine, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("need an address")
	}
	addr, err := parseNum(args[0], 16)
	if err != nil {
		return err
	}
	m.cpu.SetProgramCounter(uint16(addr))
	m.printState()
	return nil
}

func cmdIRQ(m *machine, _ []string) error {
	m.cpu.InterruptRequest()
	return nil
}

func cmdNMI(m *machine, _ []string) error {
	m.cpu.NonMaskableInterruptRequest()
	return nil
}

func cmdReset(m *machine, _ []string) error {
	m.cpu.Reset(m.bus)
	m.printState()
	return nil
}

func cmdOpcodes(m *machine, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("need a mnemonic")
	}
	name, ops, err := disassemble.Find(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "%s:", name)
	for _, op := range ops {
		fmt.Fprintf(m.out, " %.2X", op)
	}
	fmt.Fprintln(m.out)
	return nil
}
