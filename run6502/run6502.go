// run6502 loads a binary image into a flat 64k memory and runs it.
// By default it runs until the CPU halts, traps (an instruction which
// jumps or branches to itself) or the cycle limit is reached and then
// prints the final state. With --monitor it instead reads commands
// from stdin to step, run and inspect the machine.
//
// If the filename ends in .prg (case insensitive) the first 2 bytes are
// used as the load address.
//
// With --console=XXXX a byte wide console is mapped at that address.
// Writes print the byte to stdout and reads return the next byte of stdin
// (0x00 once it's exhausted).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmchacon/emu6502/cpu"
	port "github.com/jmchacon/emu6502/io"
	"github.com/jmchacon/emu6502/memory"
	"golang.org/x/term"
)

var (
	offset    = flag.Int("offset", 0x0000, "Offset into RAM to start loading data. All other RAM will be zero'd out. Ignored for PRG files.")
	startPC   = flag.Int("start_pc", -1, "PC value to start running at. If negative the reset vector is used if set, otherwise the load address.")
	decimal   = flag.Bool("decimal", true, "If set ADC/SBC honor the D flag.")
	nmosFlags = flag.Bool("nmos_decimal_flags", false, "If set decimal ADC/SBC set N/V/Z like NMOS silicon instead of from the corrected result.")
	illegal   = flag.Bool("illegal", true, "If set undocumented opcodes are enabled. Otherwise they act as NOPs.")
	trace     = flag.Bool("trace", false, "If set log every instruction executed.")
	maxCycles = flag.Uint64("max_cycles", 0, "If non-zero stop after this many cycles.")
	monitor   = flag.Bool("monitor", false, "If set read monitor commands from stdin instead of running.")
	console   = flag.Int("console", -1, "If non-negative map a console port at this address.")
)

// errTrap indicates an instruction which left PC where it started.
var errTrap = errors.New("trapped")

// errCycles indicates the cycle limit was reached.
var errCycles = errors.New("cycle limit reached")

type machine struct {
	cpu *cpu.Processor
	mem *memory.Flat
	// bus is what the CPU runs against. It's mem unless devices are mapped over it.
	bus       memory.Bus
	out       io.Writer
	maxCycles uint64
}

// run executes instructions until an error (halt, trap or limit). If limit is
// non-zero it's added to the current cycle count to form the stopping point.
func (m *machine) run(limit uint64) error {
	stop := m.maxCycles
	if limit != 0 {
		stop = m.cpu.Cycles() + limit
	}
	for {
		pc := m.cpu.PC
		// Reset leaves cycles pending without moving PC which isn't a trap.
		boundary := m.cpu.RemainingCycles() == 0
		if err := m.cpu.ExecuteInstruction(m.bus); err != nil {
			return err
		}
		if boundary && m.cpu.PC == pc {
			return fmt.Errorf("%w at 0x%.4X", errTrap, pc)
		}
		if stop != 0 && m.cpu.Cycles() >= stop {
			return errCycles
		}
	}
}

func (m *machine) printState() {
	c := m.cpu
	fmt.Fprintf(m.out, "PC:%.4X A:%.2X X:%.2X Y:%.2X P:%.2X SP:%.2X CYC:%d\n", c.PC, c.A, c.X, c.Y, c.P, c.S, c.Cycles())
}

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s [flags] <filename>", os.Args[0])
	}
	fn := flag.Args()[0]

	b, err := ioutil.ReadFile(fn)
	if err != nil {
		log.Fatalf("Can't open %s - %v", fn, err)
	}
	mem := memory.NewFlat()
	load := uint16(*offset)
	if strings.ToLower(filepath.Ext(fn)) == ".prg" {
		load, err = mem.LoadPRG(b)
	} else {
		err = mem.Load(load, b)
	}
	if err != nil {
		log.Fatalf("Can't load %s - %v", fn, err)
	}

	opts := cpu.Options{
		DecimalMode:      *decimal,
		NMOSDecimalFlags: *nmosFlags,
		IllegalOpcodes:   *illegal,
		Trace:            *trace,
		Logger:           log.New(os.Stderr, "", 0),
	}
	var c *cpu.Processor
	switch {
	case *startPC >= 0:
		c = cpu.NewStart(uint16(*startPC), opts)
	case memory.ReadAddr(mem, cpu.RESET_VECTOR) != 0x0000:
		c = cpu.NewFromReset(mem, opts)
	default:
		c = cpu.NewStart(load, opts)
	}
	m := &machine{
		cpu:       c,
		mem:       mem,
		bus:       mem,
		out:       os.Stdout,
		maxCycles: *maxCycles,
	}
	if *console >= 0 {
		if *console > 0xFFFF {
			log.Fatal("--console out of range. Must be between 0-65535")
		}
		if *monitor {
			log.Fatal("--console can't be combined with --monitor since both use stdin")
		}
		in, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("Can't read stdin for console: %v", err)
		}
		q := &port.Queue{}
		q.Push(in...)
		m.bus = &consolePort{Bus: mem, addr: uint16(*console), in: q, out: os.Stdout}
	}

	if *monitor {
		if err := m.monitor(os.Stdin, term.IsTerminal(int(os.Stdin.Fd()))); err != nil {
			log.Fatalf("Monitor error: %v", err)
		}
		return
	}

	err = m.run(0)
	m.printState()
	var h cpu.HaltOpcode
	switch {
	case errors.As(err, &h):
		fmt.Fprintf(m.out, "Halted: %v\n", err)
		os.Exit(1)
	default:
		fmt.Fprintf(m.out, "Stopped: %v\n", err)
	}
}
