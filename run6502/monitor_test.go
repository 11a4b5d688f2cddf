package main

import (
	"bytes"
	"errors"
	"io/ioutil"
	"log"
	"strings"
	"testing"

	"github.com/jmchacon/emu6502/cpu"
	"github.com/jmchacon/emu6502/memory"
)

// countdown: LDX #3, DEX, BNE *-1, JMP *
var countdown = []byte{0xA2, 0x03, 0xCA, 0xD0, 0xFD, 0x4C, 0x05, 0x04}

func newMachine(t *testing.T, prog []byte) (*machine, *bytes.Buffer) {
	t.Helper()
	mem := memory.NewFlat()
	if err := mem.Load(0x0400, prog); err != nil {
		t.Fatalf("Can't load: %v", err)
	}
	out := &bytes.Buffer{}
	return &machine{
		cpu: cpu.New(cpu.Options{Logger: log.New(ioutil.Discard, "", 0)}),
		mem: mem,
		bus: mem,
		out: out,
	}, out
}

func TestRun(t *testing.T) {
	m, _ := newMachine(t, countdown)
	err := m.run(0)
	if !errors.Is(err, errTrap) {
		t.Fatalf("Didn't trap. Got %v", err)
	}
	if got, want := m.cpu.X, uint8(0x00); got != want {
		t.Errorf("Bad X. Got 0x%.2X want 0x%.2X", got, want)
	}
	if got, want := m.cpu.PC, uint16(0x0405); got != want {
		t.Errorf("Bad PC. Got 0x%.4X want 0x%.4X", got, want)
	}
}

func TestRunLimit(t *testing.T) {
	// JMP $0400 never traps since PC changes only across instructions.
	m, _ := newMachine(t, []byte{0xEA, 0x4C, 0x00, 0x04})
	m.maxCycles = 100
	if err := m.run(0); !errors.Is(err, errCycles) {
		t.Fatalf("Didn't hit cycle limit. Got %v", err)
	}
	if got := m.cpu.Cycles(); got < 100 || got > 103 {
		t.Errorf("Bad cycle count. Got %d want 100-102", got)
	}
}

func TestMonitor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "step by prefix",
			input: "st 2\nreg\n",
			want:  []string{"LDX #03", "DEX", "PC:0403 A:00 X:02"},
		},
		{
			name:  "run to trap",
			input: "run\n",
			want:  []string{"trapped at 0x0405", "X:00"},
		},
		{
			name:  "memory and write",
			input: "w 2000 de ad\nm $2000 2\n",
			want:  []string{"2000: DE AD"},
		},
		{
			name:  "disassemble",
			input: "dis 0400 1\n",
			want:  []string{"0400 A2 03      LDX #03"},
		},
		{
			name:  "ambiguous",
			input: "re\n",
			want:  []string{"re: "},
		},
		{
			name:  "opcodes",
			input: "op jm\n",
			want:  []string{"JMP: 4C 6C"},
		},
		{
			name:  "pc and quit",
			input: "pc 0402\nquit\nregisters\n",
			want:  []string{"PC:0402"},
		},
		{
			name:  "help",
			input: "help\n",
			want:  []string{"step [n]", "quit - exit"},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			m, out := newMachine(t, countdown)
			if err := m.monitor(strings.NewReader(test.input), false); err != nil {
				t.Fatalf("%s: monitor error: %v", test.name, err)
			}
			for _, w := range test.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("%s: output missing %q. Got:\n%s", test.name, w, out.String())
				}
			}
		})
	}
}

func TestMonitorInterrupts(t *testing.T) {
	m, _ := newMachine(t, countdown)
	memory.SetAddr(m.mem, cpu.NMI_VECTOR, 0x3000)
	memory.SetAddr(m.mem, cpu.RESET_VECTOR, 0x4000)
	if err := m.monitor(strings.NewReader("nmi\nstep\n"), false); err != nil {
		t.Fatalf("monitor error: %v", err)
	}
	if got, want := m.cpu.PC, uint16(0x3000); got != want {
		t.Errorf("NMI not taken. PC got 0x%.4X want 0x%.4X", got, want)
	}
	if err := m.monitor(strings.NewReader("reset\n"), false); err != nil {
		t.Fatalf("monitor error: %v", err)
	}
	if got, want := m.cpu.PC, uint16(0x4000); got != want {
		t.Errorf("Reset not taken. PC got 0x%.4X want 0x%.4X", got, want)
	}
}
