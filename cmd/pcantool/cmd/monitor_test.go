package cmd

import (
	"testing"

	"github.com/roffe/pcanbus"
)

func TestMonitorOnFrames(t *testing.T) {
	m := newMonitor(&session{})
	m.filter.Set([]uint32{0x7E8})

	m.onFrames([]pcanbus.Frame{{ID: 0x7E0}, {ID: 0x7E8}, {ID: 0x123}})
	m.onFrames([]pcanbus.Frame{{ID: 0x7E0}})

	if m.hidden != 3 {
		t.Errorf("hidden = %d, want 3", m.hidden)
	}
	if got := len(m.batches); got != 1 {
		t.Fatalf("queued batches = %d, want 1", got)
	}
	batch := <-m.batches
	if len(batch) != 1 || batch[0].ID != 0x7E8 {
		t.Errorf("batch = %v, want only 0x7E8", batch)
	}
}

func TestMonitorOnFramesFullQueue(t *testing.T) {
	m := newMonitor(&session{})
	for i := 0; i < cap(m.batches)+5; i++ {
		m.onFrames([]pcanbus.Frame{{ID: uint32(i)}})
	}
	if got := len(m.batches); got != cap(m.batches) {
		t.Errorf("queued batches = %d, want %d", got, cap(m.batches))
	}
	if m.dropped != 5 {
		t.Errorf("dropped = %d, want 5", m.dropped)
	}
	if m.hidden != 0 {
		t.Errorf("hidden = %d, want 0 with an empty filter", m.hidden)
	}
}
