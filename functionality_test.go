// Package functionality does basic end-end verification
// of the 6502 core with a simple memory map
package functionality

import (
	"errors"
	"io/ioutil"
	"log"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/jmchacon/emu6502/cpu"
	"github.com/jmchacon/emu6502/handasm"
	"github.com/jmchacon/emu6502/irq"
	"github.com/jmchacon/emu6502/memory"
)

const (
	RESET = uint16(0x1FFE)
	IRQ   = uint16(0xD000)
	NMI   = uint16(0xC000)
)

var quiet = log.New(ioutil.Discard, "", 0)

// setup returns memory filled with fill and with vectors pointing at RESET/IRQ/NMI.
func setup(fill uint8) *memory.Flat {
	r := &memory.Flat{Fill: fill}
	r.PowerOn()
	memory.SetAddr(r, cpu.RESET_VECTOR, RESET)
	memory.SetAddr(r, cpu.IRQ_VECTOR, IRQ)
	memory.SetAddr(r, cpu.NMI_VECTOR, NMI)
	return r
}

// assemble loads a hand assembled listing into r.
func assemble(t *testing.T, r *memory.Flat, listing string) *handasm.Program {
	t.Helper()
	p, err := handasm.Parse(strings.NewReader(listing))
	if err != nil {
		t.Fatalf("Can't assemble: %v", err)
	}
	if err := r.Load(p.Start, p.Data); err != nil {
		t.Fatalf("Can't load: %v", err)
	}
	return p
}

// TestNOPSled runs NOPs from the reset vector until the NMI vector bytes
// (set to a halt opcode) are executed.
func TestNOPSled(t *testing.T) {
	for _, halt := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		halt := halt
		t.Run(spew.Sprintf("0x%.2X", halt), func(t *testing.T) {
			t.Parallel()
			r := setup(0xEA)
			memory.SetAddr(r, cpu.NMI_VECTOR, uint16(halt)<<8|uint16(halt))
			canonical := *r
			c := cpu.NewFromReset(r, cpu.Options{IllegalOpcodes: true, Logger: quiet})
			if got, want := c.PC, RESET; got != want {
				t.Fatalf("Reset vector isn't correct. Got 0x%.4X, want 0x%.4X", got, want)
			}
			saved := *c
			var err error
			for err == nil {
				pc := c.PC
				if err = c.ExecuteInstruction(r); err != nil {
					break
				}
				// NOPs should be single PC increments only
				if c.PC != pc+1 {
					t.Fatalf("PC didn't increment by one. Got 0x%.4X and started with 0x%.4X", c.PC, pc)
				}
			}
			var h cpu.HaltOpcode
			if !errors.As(err, &h) {
				t.Fatalf("Didn't stop due to halt: %T - %v", err, err)
			}
			if got, want := h.Opcode, halt; got != want {
				t.Errorf("Halted on unexpected opcode. Got 0x%.2X want 0x%.2X", got, want)
			}
			// 2 cycles for each address between RESET and NMI_VECTOR plus the halt.
			if got, want := c.Cycles(), uint64(cpu.NMI_VECTOR-RESET)*2+1; got != want {
				t.Errorf("Invalid cycle count. Got %d want %d", got, want)
			}
			saved.PC = cpu.NMI_VECTOR + 1
			if diff := deep.Equal(c, &saved); diff != nil {
				t.Errorf("Registers changed: %v\nstate: %s", diff, spew.Sdump(c))
			}
			if *r != canonical {
				t.Errorf("Memory changed unexpectedly")
			}
		})
	}
}

// vectorWatch records when the CPU fetches the IRQ/BRK vector.
type vectorWatch struct {
	*memory.Flat
	fetched bool
}

func (v *vectorWatch) Read(addr uint16) uint8 {
	if addr == cpu.IRQ_VECTOR || addr == cpu.IRQ_VECTOR+1 {
		v.fetched = true
	}
	return v.Flat.Read(addr)
}

const countLoop = `Count location 0 up to 100 and BRK
0400 A9 00	LDA #00
0402 85 00	STA 00
0404 E6 00	INC 00
0406 A5 00	LDA 00
0408 C9 64	CMP #64
040A D0 F8	BNE 0404
040C 00 00	BRK
`

func TestCountLoop(t *testing.T) {
	r := setup(0x00)
	p := assemble(t, r, countLoop)
	bus := &vectorWatch{Flat: r}
	c := cpu.NewStart(p.Start, cpu.Options{Logger: quiet})
	for c.Cycles() < 5000 && !bus.fetched {
		if err := c.Cycle(bus); err != nil {
			t.Fatalf("Cycle error at 0x%.4X: %v", c.PC, err)
		}
	}
	if !bus.fetched {
		t.Fatalf("Never reached BRK\nstate: %s", spew.Sdump(c))
	}
	if got, want := r.Read(0x0000), uint8(100); got != want {
		t.Errorf("Bad count. Got %d want %d", got, want)
	}
	want := &cpu.Processor{
		A:  100,
		S:  0xFA,
		P:  cpu.P_S1 | cpu.P_B | cpu.P_INTERRUPT | cpu.P_ZERO | cpu.P_CARRY,
		PC: IRQ,
	}
	if diff := deep.Equal(c, want); diff != nil {
		t.Errorf("Bad final state: %v\nstate: %s", diff, spew.Sdump(c))
	}
	// LDA/STA, then 100 passes of INC/LDA/CMP/BNE (the last BNE not taken) and the first BRK cycle.
	if got, want := c.Cycles(), uint64(2+3+100*(5+3+2+3)-1+1); got != want {
		t.Errorf("Bad cycle count. Got %d want %d", got, want)
	}
}

const brkHandler = `Main program
0400 A2 01	LDX #01
0402 00 EA	BRK
0404 E8		INX
0405 4C 05 04	JMP 0405
`

const brkIRQ = `BRK handler
D000 A2 10	LDX #10
D002 40		RTI
`

func TestBRK(t *testing.T) {
	r := setup(0xEA)
	assemble(t, r, brkHandler)
	assemble(t, r, brkIRQ)
	c := cpu.NewStart(0x0400, cpu.Options{Logger: quiet})
	for i := 0; i < 5; i++ {
		if err := c.ExecuteInstruction(r); err != nil {
			t.Fatalf("Error at 0x%.4X: %v", c.PC, err)
		}
	}
	// Returned past the signature byte and ran INX.
	want := &cpu.Processor{X: 0x11, S: 0xFD, P: cpu.P_S1 | cpu.P_B | cpu.P_INTERRUPT, PC: 0x0405}
	if diff := deep.Equal(c, want); diff != nil {
		t.Errorf("Bad state: %v\nstate: %s", diff, spew.Sdump(c))
	}
}

// timer raises its IRQ line every period cycles until acknowledged by a read of ack.
type timer struct {
	*memory.Flat
	ack    uint16
	period int
	ticks  int
	raised bool
}

func (t *timer) Raised() bool {
	return t.raised
}

func (t *timer) Read(addr uint16) uint8 {
	if addr == t.ack {
		t.raised = false
	}
	return t.Flat.Read(addr)
}

func (t *timer) tick() {
	t.ticks++
	if t.ticks%t.period == 0 {
		t.raised = true
	}
}

const timerMain = `Enable interrupts and spin
0400 58		CLI
0401 4C 01 04	JMP 0401
`

const timerIRQ = `Ack the timer and count
D000 AD 00 80	LDA 8000
D003 E6 10	INC 10
D005 40		RTI
`

func TestTimerIRQ(t *testing.T) {
	r := setup(0x00)
	assemble(t, r, timerMain)
	assemble(t, r, timerIRQ)
	dev := &timer{Flat: r, ack: 0x8000, period: 100}
	c := cpu.NewStart(0x0400, cpu.Options{Logger: quiet})
	var recv irq.Receiver = c
	recv.Install(dev)
	for i := 0; i < 1000; i++ {
		dev.tick()
		if err := c.Cycle(dev); err != nil {
			t.Fatalf("Cycle error at 0x%.4X: %v", c.PC, err)
		}
	}
	// The 10th raise happens on the last tick and isn't serviced yet.
	if got, want := r.Read(0x0010), uint8(9); got != want {
		t.Errorf("Bad interrupt count. Got %d want %d\nstate: %s", got, want, spew.Sdump(c))
	}
}

func TestNMIRequester(t *testing.T) {
	r := setup(0x00)
	assemble(t, r, timerMain)
	assemble(t, r, `NMI handler
C000 E6 20	INC 20
C002 40		RTI
`)
	c := cpu.NewStart(0x0400, cpu.Options{Logger: quiet})
	var req irq.Requester = c
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if err := c.ExecuteInstruction(r); err != nil {
				t.Fatalf("Error at 0x%.4X: %v", c.PC, err)
			}
		}
		// Masked IRQs don't matter to an NMI.
		c.P |= cpu.P_INTERRUPT
		req.NonMaskableInterruptRequest()
	}
	for j := 0; j < 4; j++ {
		if err := c.ExecuteInstruction(r); err != nil {
			t.Fatalf("Error at 0x%.4X: %v", c.PC, err)
		}
	}
	if got, want := r.Read(0x0020), uint8(3); got != want {
		t.Errorf("Bad NMI count. Got %d want %d\nstate: %s", got, want, spew.Sdump(c))
	}
}

func TestADCFromBoot(t *testing.T) {
	r := setup(0x00)
	assemble(t, r, `ADC $0200 from a zero PC
0000 6D 00 02	ADC 0200
0200 10
`)
	c := cpu.NewStart(0x0000, cpu.Options{Logger: quiet})
	c.A = 0x09
	c.P |= cpu.P_CARRY
	if err := c.ExecuteInstruction(r); err != nil {
		t.Fatalf("Error: %v", err)
	}
	want := &cpu.Processor{A: 0x1A, S: 0xFD, P: cpu.P_S1 | cpu.P_INTERRUPT, PC: 0x0003}
	if diff := deep.Equal(c, want); diff != nil {
		t.Errorf("Bad state: %v\nstate: %s", diff, spew.Sdump(c))
	}
	if got, want := c.Cycles(), uint64(4); got != want {
		t.Errorf("Bad cycles. Got %d want %d", got, want)
	}
}
