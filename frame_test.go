package pcanbus

import (
	"strings"
	"testing"
)

func TestFrameIsValid(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  bool
	}{
		{"empty standard", NewFrame(0x0, nil), true},
		{"max standard id", NewFrame(0x7FF, []byte{1}), true},
		{"standard id overflow", NewFrame(0x800, nil), false},
		{"max extended id", NewExtendedFrame(0x1FFFFFFF, nil), true},
		{"extended id overflow", NewExtendedFrame(0x20000000, nil), false},
		{"eight bytes", NewFrame(0x1, make([]byte, 8)), true},
		{"nine bytes", NewFrame(0x1, make([]byte, 9)), false},
		{"fd twelve bytes", NewFrame(0x1, make([]byte, 12)), true},
		{"fd sixty four bytes", NewFrame(0x1, make([]byte, 64)), true},
		{"fd thirteen bytes", NewFrame(0x1, make([]byte, 13)), false},
		{"fd sixty five bytes", NewFrame(0x1, make([]byte, 65)), false},
		{"remote request", NewRemoteRequest(0x7DF, false), true},
		{"remote request fd length", Frame{ID: 0x1, Kind: RemoteRequestFrame, Payload: make([]byte, 12)}, false},
		{"invalid kind", Frame{ID: 0x1, Kind: InvalidFrame}, false},
		{"error frame", Frame{ID: 0x1, Kind: ErrorFrame}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.frame.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewFrameCopiesData(t *testing.T) {
	data := []byte{1, 2, 3}
	f := NewFrame(0x100, data)
	data[0] = 0xFF
	if f.Payload[0] != 1 {
		t.Error("NewFrame shares the caller's slice")
	}
	if f.DLC() != 3 {
		t.Errorf("DLC() = %d, want 3", f.DLC())
	}
}

func TestFrameString(t *testing.T) {
	f := NewFrame(0x7E8, []byte{0x41, 0x00, 0x42})
	f.TimeStamp = TimeStamp{Seconds: 12, Microseconds: 34}
	s := f.String()
	for _, want := range []string{"12.000034", "<d>", "0x7E8", "41 00 42", "01000001", "A·B"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
	if ext := NewExtendedFrame(0x18DAF110, nil).String(); !strings.Contains(ext, "0x18DAF110") {
		t.Errorf("extended String() = %q", ext)
	}
	if rtr := NewRemoteRequest(0x1, false).String(); !strings.Contains(rtr, "<r>") {
		t.Errorf("remote String() = %q", rtr)
	}
}
