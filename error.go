package pcanbus

import (
	"errors"

	"github.com/roffe/pcanbus/pkg/pcan"
)

// ErrorKind classifies errors reported by a backend.
type ErrorKind int

const (
	NoError ErrorKind = iota
	ReadError
	WriteError
	ConnectionError
	ConfigurationError
	UnknownError
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "NoError"
	case ReadError:
		return "ReadError"
	case WriteError:
		return "WriteError"
	case ConnectionError:
		return "ConnectionError"
	case ConfigurationError:
		return "ConfigurationError"
	default:
		return "UnknownError"
	}
}

// BusError is the value recorded by Bus.SetError.
type BusError struct {
	Kind    ErrorKind
	Message string
}

func (e *BusError) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// IsKind reports whether err is a BusError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var be *BusError
	return errors.As(err, &be) && be.Kind == kind
}

var (
	// ErrNotConnected is returned by WriteFrame when the device is not in
	// the connected state. It is not reported on the bus.
	ErrNotConnected = errors.New("device is not connected")

	ErrLibraryNotFound = pcan.ErrLibraryNotFound
	ErrNilLoop         = errors.New("adapter config has no event loop")
)
