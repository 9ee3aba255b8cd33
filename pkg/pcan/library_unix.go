//go:build linux || darwin

package pcan

import (
	"fmt"
	"runtime"

	"github.com/ebitengine/purego"
)

var libraryNames = func() []string {
	if runtime.GOOS == "darwin" {
		return []string{"libPCBUSB.dylib", "/usr/local/lib/libPCBUSB.dylib"}
	}
	return []string{"libpcanbasic.so", "/usr/lib/libpcanbasic.so", "/usr/local/lib/libpcanbasic.so"}
}()

func openLibrary(path string) (*Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}

	lib := &Library{path: path}
	for name, fptr := range map[string]interface{}{
		"CAN_Initialize":   &lib.initialize,
		"CAN_Uninitialize": &lib.uninitialize,
		"CAN_Read":         &lib.read,
		"CAN_Write":        &lib.write,
		"CAN_GetValue":     &lib.getValue,
		"CAN_SetValue":     &lib.setValue,
		"CAN_GetErrorText": &lib.getErrorText,
	} {
		sym, err := purego.Dlsym(handle, name)
		if err != nil {
			_ = purego.Dlclose(handle)
			return nil, fmt.Errorf("resolve %s: %w", name, err)
		}
		purego.RegisterFunc(fptr, sym)
	}
	return lib, nil
}
