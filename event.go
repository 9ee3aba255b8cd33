package pcanbus

import "fmt"

type EventType int

func (et EventType) String() string {
	switch et {
	case EventTypeError:
		return "ERROR"
	case EventTypeWarning:
		return "WARN"
	case EventTypeInfo:
		return "INFO"
	case EventTypeDebug:
		return "DEBUG"
	case EventTypeState:
		return "STATE"
	case EventTypeFramesWritten:
		return "WRITTEN"
	case EventTypeFramesReceived:
		return "RECEIVED"
	default:
		return "UNKNOWN"
	}
}

const (
	EventTypeError EventType = iota
	EventTypeWarning
	EventTypeInfo
	EventTypeDebug
	EventTypeState
	EventTypeFramesWritten
	EventTypeFramesReceived
)

// Event is a notification published by a Device.
type Event struct {
	Type    EventType
	Details string
	Kind    ErrorKind // EventTypeError only
	State   State     // EventTypeState only
	Count   int       // frames written or received
}

func (e Event) String() string {
	return fmt.Sprintf("[%s] %s", e.Type.String(), e.Details)
}
