package pcan

import (
	"errors"
	"fmt"
)

// ErrLibraryNotFound is returned by Load when no PCAN-Basic runtime could be bound.
var ErrLibraryNotFound = errors.New("the PCAN runtime library is not found")

var statusNames = map[TPCANStatus]string{
	PCAN_ERROR_OK:           "no error",
	PCAN_ERROR_XMTFULL:      "transmit buffer in CAN controller is full",
	PCAN_ERROR_OVERRUN:      "CAN controller was read too late",
	PCAN_ERROR_BUSLIGHT:     "bus error: an error counter reached the 'light' limit",
	PCAN_ERROR_BUSHEAVY:     "bus error: an error counter reached the 'heavy' limit",
	PCAN_ERROR_BUSOFF:       "bus error: the CAN controller is in bus-off state",
	PCAN_ERROR_QRCVEMPTY:    "receive queue is empty",
	PCAN_ERROR_QOVERRUN:     "receive queue was read too late",
	PCAN_ERROR_QXMTFULL:     "transmit queue is full",
	PCAN_ERROR_REGTEST:      "controller register test failed",
	PCAN_ERROR_NODRIVER:     "driver not loaded",
	PCAN_ERROR_HWINUSE:      "hardware already in use by a net",
	PCAN_ERROR_NETINUSE:     "a client is already connected to the net",
	PCAN_ERROR_ILLHW:        "invalid hardware handle",
	PCAN_ERROR_ILLNET:       "invalid net handle",
	PCAN_ERROR_ILLCLIENT:    "invalid client handle",
	PCAN_ERROR_RESOURCE:     "cannot create resource",
	PCAN_ERROR_ILLPARAMTYPE: "invalid parameter",
	PCAN_ERROR_ILLPARAMVAL:  "invalid parameter value",
	PCAN_ERROR_UNKNOWN:      "unknown error",
	PCAN_ERROR_ILLDATA:      "invalid data, function, or action",
	PCAN_ERROR_BUSPASSIVE:   "bus error: the CAN controller is error passive",
	PCAN_ERROR_ILLMODE:      "driver object in wrong state for operation",
	PCAN_ERROR_CAUTION:      "operation succeeded but irregularities were registered",
	PCAN_ERROR_INITIALIZE:   "channel is not initialized",
	PCAN_ERROR_ILLOPERATION: "invalid operation",
}

// PCANError carries a non-OK status returned by the driver.
type PCANError struct {
	Code TPCANStatus
}

func (e PCANError) Error() string {
	if name, ok := statusNames[e.Code]; ok {
		return fmt.Sprintf("pcan: %s (0x%05X)", name, uint32(e.Code))
	}
	return fmt.Sprintf("pcan: status 0x%05X", uint32(e.Code))
}

func checkStatus(st TPCANStatus) error {
	if st != PCAN_ERROR_OK {
		return PCANError{Code: st}
	}
	return nil
}

// StatusOf extracts the driver status from err. ok is false when err
// does not carry a PCANError.
func StatusOf(err error) (code TPCANStatus, ok bool) {
	var perr PCANError
	if errors.As(err, &perr) {
		return perr.Code, true
	}
	return PCAN_ERROR_OK, false
}

// IsStatus reports whether err carries the given driver status.
func IsStatus(err error, code TPCANStatus) bool {
	st, ok := StatusOf(err)
	return ok && st == code
}
