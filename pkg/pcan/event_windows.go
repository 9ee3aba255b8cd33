package pcan

import (
	"context"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	waitTimeout = 0x00000102
	// waitSlice bounds how long Wait sits in WaitForSingleObject before
	// looking at its context again.
	waitSlice = 10 // ms
)

// rxEvent is an auto-reset Win32 event handed to the driver through
// PCAN_RECEIVE_EVENT. The driver calls SetEvent whenever a frame is queued.
type rxEvent struct {
	handle windows.Handle
}

// NewReceiveEvent creates an unnamed, auto-reset, initially non-signaled event.
func (l *Library) NewReceiveEvent() (ReceiveEvent, error) {
	h, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("CreateEvent failed: %w", err)
	}
	return &rxEvent{handle: h}, nil
}

// SetReceiveEvent registers ev for ch. A nil ev passes a zeroed value,
// which tells the driver to stop signaling.
func (l *Library) SetReceiveEvent(ch TPCANHandle, ev ReceiveEvent) error {
	var value uintptr
	if ev != nil {
		e, ok := ev.(*rxEvent)
		if !ok {
			return fmt.Errorf("pcan: unsupported receive event %T", ev)
		}
		value = uintptr(e.handle)
	}
	return l.SetValue(ch, PCAN_RECEIVE_EVENT, unsafe.Pointer(&value), uint32(unsafe.Sizeof(value)))
}

func (e *rxEvent) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.handle == 0 {
			return fmt.Errorf("receive event is closed")
		}
		res, err := windows.WaitForSingleObject(e.handle, waitSlice)
		if err != nil {
			return fmt.Errorf("WaitForSingleObject failed: %w", err)
		}
		switch res {
		case windows.WAIT_OBJECT_0:
			return nil
		case waitTimeout:
			continue
		default:
			return fmt.Errorf("unexpected wait result 0x%X", res)
		}
	}
}

func (e *rxEvent) Close() error {
	if e.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(e.handle)
	e.handle = 0
	if err != nil {
		return fmt.Errorf("CloseHandle failed: %w", err)
	}
	return nil
}
