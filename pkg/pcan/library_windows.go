package pcan

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var libraryNames = []string{"PCANBasic.dll"}

func openLibrary(path string) (*Library, error) {
	dll := windows.NewLazyDLL(path)
	if err := dll.Load(); err != nil {
		return nil, err
	}

	procs := make(map[string]*windows.LazyProc)
	for _, name := range []string{
		"CAN_Initialize",
		"CAN_Uninitialize",
		"CAN_Read",
		"CAN_Write",
		"CAN_GetValue",
		"CAN_SetValue",
		"CAN_GetErrorText",
	} {
		proc := dll.NewProc(name)
		if err := proc.Find(); err != nil {
			return nil, fmt.Errorf("resolve %s: %w", name, err)
		}
		procs[name] = proc
	}

	lib := &Library{path: path}
	lib.initialize = func(ch TPCANHandle, rate TPCANBaudrate, hwType TPCANType, ioPort uint32, interrupt uint16) TPCANStatus {
		r1, _, _ := procs["CAN_Initialize"].Call(uintptr(ch), uintptr(rate), uintptr(hwType), uintptr(ioPort), uintptr(interrupt))
		return TPCANStatus(r1)
	}
	lib.uninitialize = func(ch TPCANHandle) TPCANStatus {
		r1, _, _ := procs["CAN_Uninitialize"].Call(uintptr(ch))
		return TPCANStatus(r1)
	}
	lib.read = func(ch TPCANHandle, msg *TPCANMsg, ts *TPCANTimestamp) TPCANStatus {
		r1, _, _ := procs["CAN_Read"].Call(uintptr(ch), uintptr(unsafe.Pointer(msg)), uintptr(unsafe.Pointer(ts)))
		return TPCANStatus(r1)
	}
	lib.write = func(ch TPCANHandle, msg *TPCANMsg) TPCANStatus {
		r1, _, _ := procs["CAN_Write"].Call(uintptr(ch), uintptr(unsafe.Pointer(msg)))
		return TPCANStatus(r1)
	}
	lib.getValue = func(ch TPCANHandle, param TPCANParameter, buf unsafe.Pointer, length uint32) TPCANStatus {
		r1, _, _ := procs["CAN_GetValue"].Call(uintptr(ch), uintptr(param), uintptr(buf), uintptr(length))
		return TPCANStatus(r1)
	}
	lib.setValue = func(ch TPCANHandle, param TPCANParameter, buf unsafe.Pointer, length uint32) TPCANStatus {
		r1, _, _ := procs["CAN_SetValue"].Call(uintptr(ch), uintptr(param), uintptr(buf), uintptr(length))
		return TPCANStatus(r1)
	}
	lib.getErrorText = func(code TPCANStatus, language uint16, buf *byte) TPCANStatus {
		r1, _, _ := procs["CAN_GetErrorText"].Call(uintptr(code), uintptr(language), uintptr(unsafe.Pointer(buf)))
		return TPCANStatus(r1)
	}
	return lib, nil
}
