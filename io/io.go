// Package io defines the basic interfaces for working
// with a 6502 family based I/O port (generally bi-directional)
// along with a simple buffered implementation which memory
// mapped devices can read from.
package io

// Port8 defines an 8 bit I/O port
type Port8 interface {
	// Input will return the current value being set on the given input port.
	Input() uint8
}

// Queue is a Port8 fed from a buffer. Each Input consumes one byte
// and once empty Input returns 0x00.
type Queue struct {
	buf []uint8
}

// Push appends b to the data waiting to be read.
func (q *Queue) Push(b ...uint8) {
	q.buf = append(q.buf, b...)
}

// Len returns the number of bytes left to read.
func (q *Queue) Len() int {
	return len(q.buf)
}

// Input implements the interface for io.Port8.
func (q *Queue) Input() uint8 {
	if len(q.buf) == 0 {
		return 0x00
	}
	v := q.buf[0]
	q.buf = q.buf[1:]
	return v
}
