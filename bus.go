package pcanbus

import "strconv"

// State is the connection state of a device.
type State int

const (
	UnconnectedState State = iota
	ConnectingState
	ConnectedState
	ClosingState
)

func (s State) String() string {
	switch s {
	case UnconnectedState:
		return "unconnected"
	case ConnectingState:
		return "connecting"
	case ConnectedState:
		return "connected"
	case ClosingState:
		return "closing"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// ConfigKey names a device configuration parameter.
type ConfigKey int

const (
	RawFilterKey ConfigKey = iota
	ErrorFilterKey
	LoopbackKey
	ReceiveOwnKey
	BitRateKey
	CanFdKey
	DataBitRateKey
	UserKey ConfigKey = 30
)

func (k ConfigKey) String() string {
	switch k {
	case RawFilterKey:
		return "RawFilterKey"
	case ErrorFilterKey:
		return "ErrorFilterKey"
	case LoopbackKey:
		return "LoopbackKey"
	case ReceiveOwnKey:
		return "ReceiveOwnKey"
	case BitRateKey:
		return "BitRateKey"
	case CanFdKey:
		return "CanFdKey"
	case DataBitRateKey:
		return "DataBitRateKey"
	}
	if k >= UserKey {
		return "UserKey+" + strconv.Itoa(int(k-UserKey))
	}
	return strconv.Itoa(int(k))
}

// Bus is the generic device contract a backend drives: the frame queues,
// the configuration store, the state machine and the error channel.
type Bus interface {
	HasOutgoingFrames() bool
	// DequeueOutgoingFrame removes the oldest outgoing frame. ok is false
	// when the queue is empty.
	DequeueOutgoingFrame() (frame Frame, ok bool)
	EnqueueOutgoingFrame(Frame)
	EnqueueReceivedFrames([]Frame)

	ConfigurationParameter(ConfigKey) (value interface{}, ok bool)
	ConfigurationKeys() []ConfigKey
	// SetConfigurationParameter stores value without validation. A nil
	// value removes the key.
	SetConfigurationParameter(ConfigKey, interface{})

	SetError(message string, kind ErrorKind)
	SetState(State)
	State() State
	FramesWritten(count int)
}
