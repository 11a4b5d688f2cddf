package io

import (
	"testing"

	"github.com/go-test/deep"
)

func TestQueue(t *testing.T) {
	q := &Queue{}
	var p Port8 = q
	if got, want := p.Input(), uint8(0x00); got != want {
		t.Errorf("Empty queue returned 0x%.2X want 0x%.2X", got, want)
	}
	q.Push('h', 'i')
	q.Push('!')
	if got, want := q.Len(), 3; got != want {
		t.Errorf("Bad length. Got %d want %d", got, want)
	}
	var got []uint8
	for i := 0; i < 4; i++ {
		got = append(got, p.Input())
	}
	if diff := deep.Equal(got, []uint8{'h', 'i', '!', 0x00}); diff != nil {
		t.Errorf("Bad input sequence: %v", diff)
	}
	if q.Len() != 0 {
		t.Errorf("Queue not drained: %d left", q.Len())
	}
}
