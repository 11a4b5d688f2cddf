// Package handasm parses hand assembled listings into binary images.
// A listing line looks like:
//
//	XXXX OP A1 A2	comment
//
// Where XXXX is the address field and OP is the opcode. A1 and A2 are
// then optional params as needed. Anything after a tab or a (*) marker
// is a comment. Lines not starting with a 4 digit hex address are ignored
// so plain text can surround the code.
package handasm

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var lineRE = regexp.MustCompile(`^([0-9A-F]{4})(\s|$)`)

// Program is an assembled image which belongs at Start.
type Program struct {
	Start uint16
	Data  []byte
}

// End returns the address one past the last byte of the program.
func (p *Program) End() int {
	return int(p.Start) + len(p.Data)
}

// Parse reads a listing and returns the image it describes. Addresses must
// increase. Any gap between lines is zero filled.
func Parse(r io.Reader) (*Program, error) {
	var p *Program
	scanner := bufio.NewScanner(r)
	l := 0
	for scanner.Scan() {
		t := scanner.Text()
		l++
		m := lineRE.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		a, err := strconv.ParseUint(m[1], 16, 16)
		if err != nil {
			return nil, fmt.Errorf("line %d %q: bad address - %v", l, t, err)
		}
		addr := uint16(a)
		rest := t[len(m[1]):]
		if i := strings.Index(rest, "\t"); i != -1 {
			rest = rest[:i]
		}
		if i := strings.Index(rest, "(*)"); i != -1 {
			rest = rest[:i]
		}
		// Should be 1-3 tokens
		toks := strings.Fields(rest)
		if len(toks) == 0 {
			continue
		}
		if len(toks) > 3 {
			return nil, fmt.Errorf("line %d %q: too many bytes", l, t)
		}

		if p == nil {
			p = &Program{Start: addr}
		}
		switch {
		case int(addr) < p.End():
			return nil, fmt.Errorf("line %d %q: address 0x%.4X overlaps previous line ending at 0x%.4X", l, t, addr, p.End())
		case int(addr) > p.End():
			p.Data = append(p.Data, make([]byte, int(addr)-p.End())...)
		}
		for _, v := range toks {
			b, err := strconv.ParseUint(v, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("line %d %q: %v", l, t, err)
			}
			p.Data = append(p.Data, byte(b))
		}
		if p.End() > 0x10000 {
			return nil, fmt.Errorf("line %d %q: runs past end of memory", l, t)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("no code found in %d lines", l)
	}
	return p, nil
}
