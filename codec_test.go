package pcanbus

import (
	"bytes"
	"testing"

	"github.com/roffe/pcanbus/pkg/pcan"
)

func TestEncodeFrame(t *testing.T) {
	tests := []struct {
		name    string
		frame   Frame
		msgType pcan.TPCANMessageType
		length  uint8
		data    [8]byte
	}{
		{"standard", NewFrame(0x7E8, []byte{0x02, 0x10, 0x92}), pcan.PCAN_MESSAGE_STANDARD, 3, [8]byte{0x02, 0x10, 0x92}},
		{"extended", NewExtendedFrame(0x18DAF110, []byte{1, 2, 3, 4, 5, 6, 7, 8}), pcan.PCAN_MESSAGE_EXTENDED, 8, [8]byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"remote request", NewRemoteRequest(0x123, false), pcan.PCAN_MESSAGE_RTR, 0, [8]byte{}},
		{"extended remote request", NewRemoteRequest(0x123456, true), pcan.PCAN_MESSAGE_EXTENDED | pcan.PCAN_MESSAGE_RTR, 0, [8]byte{}},
		{"empty", NewFrame(0x1, nil), pcan.PCAN_MESSAGE_STANDARD, 0, [8]byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := encodeFrame(tt.frame)
			if msg.ID != tt.frame.ID {
				t.Errorf("ID = 0x%X, want 0x%X", msg.ID, tt.frame.ID)
			}
			if msg.MSGTYPE != tt.msgType {
				t.Errorf("MSGTYPE = 0x%X, want 0x%X", msg.MSGTYPE, tt.msgType)
			}
			if msg.LEN != tt.length {
				t.Errorf("LEN = %d, want %d", msg.LEN, tt.length)
			}
			if msg.DATA != tt.data {
				t.Errorf("DATA = % X, want % X", msg.DATA, tt.data)
			}
		})
	}
}

func TestRemoteRequestWithLength(t *testing.T) {
	f := Frame{ID: 0x10, Kind: RemoteRequestFrame, Payload: []byte{0xFF, 0xFF}}
	msg := encodeFrame(f)
	if msg.LEN != 2 {
		t.Errorf("LEN = %d, want 2", msg.LEN)
	}
	if msg.DATA != ([8]byte{}) {
		t.Errorf("remote request copied data: % X", msg.DATA)
	}
}

func TestDecodeFrame(t *testing.T) {
	msg := pcan.TPCANMsg{
		ID:      0x18DAF110,
		MSGTYPE: pcan.PCAN_MESSAGE_EXTENDED,
		LEN:     4,
		DATA:    [8]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x11, 0x22},
	}
	ts := pcan.TPCANTimestamp{Millis: 123456, Micros: 789}
	f := decodeFrame(msg, ts)

	if f.ID != msg.ID || !f.Extended || f.Kind != DataFrame {
		t.Errorf("decoded %+v", f)
	}
	if !bytes.Equal(f.Payload, []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("payload = % X", f.Payload)
	}
	if f.TimeStamp.Seconds != 123 || f.TimeStamp.Microseconds != 789 {
		t.Errorf("timestamp = %s, want 123.000789", f.TimeStamp)
	}
}

func TestDecodeClampsLength(t *testing.T) {
	f := decodeFrame(pcan.TPCANMsg{ID: 0x1, LEN: 15}, pcan.TPCANTimestamp{})
	if len(f.Payload) != 8 {
		t.Errorf("len(payload) = %d, want 8", len(f.Payload))
	}
}

func TestDecodeRemoteRequest(t *testing.T) {
	f := decodeFrame(pcan.TPCANMsg{ID: 0x7DF, MSGTYPE: pcan.PCAN_MESSAGE_RTR}, pcan.TPCANTimestamp{})
	if f.Kind != RemoteRequestFrame || f.Extended {
		t.Errorf("decoded %+v, want standard remote request", f)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	frames := []Frame{
		NewFrame(0x000, nil),
		NewFrame(0x7FF, []byte{0x55}),
		NewExtendedFrame(0x1FFFFFFF, []byte{1, 2, 3, 4, 5, 6, 7, 8}),
		NewExtendedFrame(0x123, []byte{9, 8, 7}),
		NewRemoteRequest(0x7DF, false),
		NewRemoteRequest(0x18DB33F1, true),
	}
	for _, in := range frames {
		out := decodeFrame(encodeFrame(in), pcan.TPCANTimestamp{})
		if out.ID != in.ID || out.Extended != in.Extended || out.Kind != in.Kind || !bytes.Equal(out.Payload, in.Payload) {
			t.Errorf("round trip %v -> %v", in, out)
		}
	}
}
