//go:build linux || darwin

package pcan

import (
	"context"
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// pollSlice bounds how long Wait sits in poll(2) before looking at its
// context again.
const pollSlice = 10 // ms

// rxEvent wraps the descriptor the Unix runtime exposes through
// PCAN_RECEIVE_EVENT. The driver owns it; it becomes readable while the
// receive queue holds frames.
type rxEvent struct {
	fd int32
}

func (l *Library) NewReceiveEvent() (ReceiveEvent, error) {
	return &rxEvent{fd: -1}, nil
}

// SetReceiveEvent binds ev to the channel descriptor. Passing nil is a
// no-op here: the descriptor is released by Uninitialize.
func (l *Library) SetReceiveEvent(ch TPCANHandle, ev ReceiveEvent) error {
	if ev == nil {
		return nil
	}
	e, ok := ev.(*rxEvent)
	if !ok {
		return fmt.Errorf("pcan: unsupported receive event %T", ev)
	}
	var fd int32
	if err := l.GetValue(ch, PCAN_RECEIVE_EVENT, unsafe.Pointer(&fd), uint32(unsafe.Sizeof(fd))); err != nil {
		return err
	}
	e.fd = fd
	return nil
}

func (e *rxEvent) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.fd < 0 {
			return errors.New("receive event is not registered")
		}
		fds := []unix.PollFd{{Fd: e.fd, Events: unix.POLLIN}}
		n, err := unix.Poll(fds, pollSlice)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return fmt.Errorf("poll failed: %w", err)
		}
		if n == 0 {
			continue
		}
		// a hung up descriptor may also report POLLIN on every poll
		if fds[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
			return fmt.Errorf("receive descriptor failed: revents 0x%X", fds[0].Revents)
		}
		if fds[0].Revents&unix.POLLIN != 0 {
			return nil
		}
	}
}

func (e *rxEvent) Close() error {
	e.fd = -1
	return nil
}
