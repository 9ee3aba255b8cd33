//go:build !windows && !linux && !darwin

package pcan

var libraryNames []string

func openLibrary(string) (*Library, error) {
	return nil, ErrLibraryNotFound
}

func (l *Library) NewReceiveEvent() (ReceiveEvent, error) {
	return nil, ErrLibraryNotFound
}

func (l *Library) SetReceiveEvent(TPCANHandle, ReceiveEvent) error {
	return ErrLibraryNotFound
}
