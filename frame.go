package pcanbus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// FrameKind tells what a frame carries on the bus.
type FrameKind int

const (
	DataFrame FrameKind = iota
	RemoteRequestFrame
	ErrorFrame
	UnknownFrame
	InvalidFrame
)

func (k FrameKind) String() string {
	switch k {
	case DataFrame:
		return "data"
	case RemoteRequestFrame:
		return "remote"
	case ErrorFrame:
		return "error"
	case UnknownFrame:
		return "unknown"
	default:
		return "invalid"
	}
}

// TimeStamp is the receive time reported by the driver.
type TimeStamp struct {
	Seconds      int64
	Microseconds int64
}

func (ts TimeStamp) String() string {
	return fmt.Sprintf("%d.%06d", ts.Seconds, ts.Microseconds)
}

const (
	maxStandardID = 0x7FF
	maxExtendedID = 0x1FFFFFFF

	// MaxClassicPayload is the data length limit of a classic CAN frame.
	MaxClassicPayload = 8
	maxFDPayload      = 64
)

// Frame is a CAN message. Frames are plain values.
type Frame struct {
	ID        uint32
	Payload   []byte
	Kind      FrameKind
	Extended  bool
	TimeStamp TimeStamp
}

// NewFrame creates a standard data frame and copies the data slice.
func NewFrame(identifier uint32, data []byte) Frame {
	d := make([]byte, len(data))
	copy(d, data)
	return Frame{
		ID:      identifier,
		Payload: d,
		Kind:    DataFrame,
	}
}

// NewExtendedFrame creates a 29-bit data frame and copies the data slice.
func NewExtendedFrame(identifier uint32, data []byte) Frame {
	f := NewFrame(identifier, data)
	f.Extended = true
	return f
}

// NewRemoteRequest creates a remote request frame for identifier.
func NewRemoteRequest(identifier uint32, extended bool) Frame {
	return Frame{
		ID:       identifier,
		Kind:     RemoteRequestFrame,
		Extended: extended,
	}
}

// DLC returns the length of the payload.
func (f Frame) DLC() int {
	return len(f.Payload)
}

// IsValid reports whether the identifier fits the addressing mode and the
// payload has a length CAN or CAN FD can carry.
func (f Frame) IsValid() bool {
	if f.Kind == InvalidFrame {
		return false
	}
	if f.Extended {
		if f.ID > maxExtendedID {
			return false
		}
	} else if f.ID > maxStandardID {
		return false
	}
	n := len(f.Payload)
	if n <= MaxClassicPayload {
		return true
	}
	if f.Kind == RemoteRequestFrame {
		return false
	}
	switch n {
	case 12, 16, 20, 24, 32, 48, maxFDPayload:
		return true
	}
	return false
}

var (
	blue  = color.New(color.FgBlue).SprintfFunc()
	red   = color.New(color.FgRed).SprintfFunc()
	green = color.New(color.FgGreen).SprintfFunc()
)

func (f Frame) kindTag() string {
	switch f.Kind {
	case DataFrame:
		return "<d> || "
	case RemoteRequestFrame:
		return "<r> || "
	case ErrorFrame:
		return "<e> || "
	default:
		return "<?> || "
	}
}

func (f Frame) idString() string {
	if f.Extended {
		return fmt.Sprintf("0x%08X", f.ID)
	}
	return fmt.Sprintf("0x%03X", f.ID)
}

func (f Frame) String() string {
	var out strings.Builder
	out.WriteString(f.TimeStamp.String() + " ")
	out.WriteString(f.kindTag())
	out.WriteString(f.idString() + " || ")
	out.WriteString(strconv.Itoa(len(f.Payload)) + " || ")
	out.WriteString(fmt.Sprintf("%-23s", hexView(f.Payload)))
	out.WriteString(" || ")
	out.WriteString(fmt.Sprintf("%-71s", binView(f.Payload)))
	out.WriteString(" || ")
	out.WriteString(onlyPrintable(f.Payload))
	return out.String()
}

func (f Frame) ColorString() string {
	var out strings.Builder
	out.WriteString(f.TimeStamp.String() + " ")
	out.WriteString(f.kindTag())
	out.WriteString(green("%s", f.idString()) + " || ")
	out.WriteString(strconv.Itoa(len(f.Payload)) + " || ")
	out.WriteString(fmt.Sprintf("%-23s", hexView(f.Payload)))
	out.WriteString(" || ")
	out.WriteString(red("%-71s", binView(f.Payload)))
	out.WriteString(" || ")
	out.WriteString(blue("%s", onlyPrintable(f.Payload)))
	return out.String()
}

func hexView(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

func binView(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%08b", b)
	}
	return strings.Join(parts, " ")
}

func onlyPrintable(data []byte) string {
	var out strings.Builder
	for _, b := range data {
		if b < 32 || b > 126 {
			out.WriteString("·")
		} else {
			out.WriteByte(b)
		}
	}
	return out.String()
}
