package pcanbus

import "github.com/roffe/pcanbus/pkg/pcan"

// Driver is the synchronous PCAN-Basic surface a Backend depends on.
// *pcan.Library implements it; tests substitute a simulated driver.
type Driver interface {
	Initialize(ch pcan.TPCANHandle, rate pcan.TPCANBaudrate) error
	Uninitialize(ch pcan.TPCANHandle) error
	// NewReceiveEvent creates the OS object the driver signals on receive.
	NewReceiveEvent() (pcan.ReceiveEvent, error)
	// SetReceiveEvent registers ev for ch; nil unregisters.
	SetReceiveEvent(ch pcan.TPCANHandle, ev pcan.ReceiveEvent) error
	// Read polls one message. An empty queue is PCAN_ERROR_QRCVEMPTY.
	Read(ch pcan.TPCANHandle) (pcan.TPCANMsg, pcan.TPCANTimestamp, error)
	Write(ch pcan.TPCANHandle, msg *pcan.TPCANMsg) error
	ErrorText(code pcan.TPCANStatus) (string, error)
}

var _ Driver = (*pcan.Library)(nil)
