package pcan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"
)

// ReceiveEvent is the OS object the driver signals when frames are queued
// in its receive FIFO.
type ReceiveEvent interface {
	// Wait blocks until the event is signaled or ctx is done.
	Wait(ctx context.Context) error
	Close() error
}

// Library is a bound PCAN-Basic runtime. All calls are synchronous.
type Library struct {
	path string

	initialize   func(ch TPCANHandle, rate TPCANBaudrate, hwType TPCANType, ioPort uint32, interrupt uint16) TPCANStatus
	uninitialize func(ch TPCANHandle) TPCANStatus
	read         func(ch TPCANHandle, msg *TPCANMsg, ts *TPCANTimestamp) TPCANStatus
	write        func(ch TPCANHandle, msg *TPCANMsg) TPCANStatus
	getValue     func(ch TPCANHandle, param TPCANParameter, buf unsafe.Pointer, length uint32) TPCANStatus
	setValue     func(ch TPCANHandle, param TPCANParameter, buf unsafe.Pointer, length uint32) TPCANStatus
	getErrorText func(code TPCANStatus, language uint16, buf *byte) TPCANStatus
}

var probe struct {
	once sync.Once
	lib  *Library
	err  error
}

// Load binds the PCAN-Basic runtime. The lookup runs once per process and
// its outcome, successful or not, is returned to every later caller.
func Load() (*Library, error) {
	probe.once.Do(func() {
		probe.lib, probe.err = load(libraryCandidates())
	})
	return probe.lib, probe.err
}

// CanCreate reports whether the runtime library is available on this host.
func CanCreate() (bool, error) {
	if _, err := Load(); err != nil {
		return false, err
	}
	return true, nil
}

func load(candidates []string) (*Library, error) {
	var failures []string
	for _, path := range candidates {
		lib, err := openLibrary(path)
		if err == nil {
			return lib, nil
		}
		failures = append(failures, fmt.Sprintf("%s: %v", path, err))
	}
	if len(failures) == 0 {
		return nil, ErrLibraryNotFound
	}
	return nil, fmt.Errorf("%w (%s)", ErrLibraryNotFound, strings.Join(failures, "; "))
}

// libraryCandidates lists the paths tried in order. PCAN_DLL_PATH may name
// the library file itself or the directory holding it.
func libraryCandidates() []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if path == "" {
			return
		}
		if _, exists := seen[path]; exists {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	if env := os.Getenv("PCAN_DLL_PATH"); env != "" {
		if fi, err := os.Stat(env); err == nil && fi.IsDir() {
			for _, name := range libraryNames {
				add(filepath.Join(env, name))
			}
		} else {
			add(env)
		}
	}
	for _, name := range libraryNames {
		add(name)
	}
	return out
}

// Path returns the location the runtime was loaded from.
func (l *Library) Path() string {
	return l.path
}

// Initialize connects and activates a channel at the given bit rate code.
func (l *Library) Initialize(ch TPCANHandle, rate TPCANBaudrate) error {
	return checkStatus(l.initialize(ch, rate, 0, 0, 0))
}

// Uninitialize disconnects a channel and frees driver resources.
func (l *Library) Uninitialize(ch TPCANHandle) error {
	return checkStatus(l.uninitialize(ch))
}

// Read dequeues one classic frame. An empty receive queue is reported as
// PCAN_ERROR_QRCVEMPTY.
func (l *Library) Read(ch TPCANHandle) (TPCANMsg, TPCANTimestamp, error) {
	var msg TPCANMsg
	var ts TPCANTimestamp
	err := checkStatus(l.read(ch, &msg, &ts))
	return msg, ts, err
}

// Write enqueues one classic frame for transmission.
func (l *Library) Write(ch TPCANHandle, msg *TPCANMsg) error {
	return checkStatus(l.write(ch, msg))
}

// GetValue reads a parameter into buf, which must hold length bytes.
func (l *Library) GetValue(ch TPCANHandle, param TPCANParameter, buf unsafe.Pointer, length uint32) error {
	return checkStatus(l.getValue(ch, param, buf, length))
}

// SetValue writes a parameter from buf, which must hold length bytes.
func (l *Library) SetValue(ch TPCANHandle, param TPCANParameter, buf unsafe.Pointer, length uint32) error {
	return checkStatus(l.setValue(ch, param, buf, length))
}

// ErrorText asks the driver for the English description of code.
func (l *Library) ErrorText(code TPCANStatus) (string, error) {
	buf := make([]byte, MAX_LENGTH_ERROR_TEXT)
	if err := checkStatus(l.getErrorText(code, 0, &buf[0])); err != nil {
		return "", err
	}
	return cString(buf), nil
}

// ChannelCondition queries whether ch can be connected.
func (l *Library) ChannelCondition(ch TPCANHandle) (ChannelCondition, error) {
	var condition ChannelCondition
	if err := l.GetValue(ch, PCAN_CHANNEL_CONDITION, unsafe.Pointer(&condition), uint32(unsafe.Sizeof(condition))); err != nil {
		return PCAN_CHANNEL_UNAVAILABLE, err
	}
	return condition, nil
}

// HardwareName returns the device name of ch.
func (l *Library) HardwareName(ch TPCANHandle) (string, error) {
	var name [MAX_LENGTH_HARDWARE_NAME]byte
	if err := l.GetValue(ch, PCAN_HARDWARE_NAME, unsafe.Pointer(&name[0]), MAX_LENGTH_HARDWARE_NAME); err != nil {
		return "", err
	}
	return cString(name[:]), nil
}

// APIVersion returns the version string of the loaded runtime.
func (l *Library) APIVersion() (string, error) {
	var version [MAX_LENGTH_VERSION_STRING]byte
	if err := l.GetValue(PCAN_NONEBUS, PCAN_API_VERSION, unsafe.Pointer(&version[0]), MAX_LENGTH_VERSION_STRING); err != nil {
		return "", err
	}
	return cString(version[:]), nil
}

func cString(b []byte) string {
	for i, v := range b {
		if v == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
