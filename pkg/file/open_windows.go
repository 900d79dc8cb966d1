//go:build windows

package file

import (
	"os"

	"github.com/brickingsoft/faio/pkg/aio"
	"golang.org/x/sys/windows"
)

// Open opens name with FILE_FLAG_OVERLAPPED set (required for a handle to
// participate in IOCP-driven completion) and attaches it to svc.
func Open(svc *aio.Service, name string, flag int, perm os.FileMode) (*File, error) {
	access, creation := translateFlag(flag)

	pathPtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}

	handle, err := windows.CreateFile(
		pathPtr,
		access,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		creation,
		windows.FILE_FLAG_OVERLAPPED,
		0,
	)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}

	f := &File{
		name:   name,
		handle: uintptr(handle),
		closer: func() error {
			return windows.CloseHandle(handle)
		},
	}
	if err := f.Attach(svc); err != nil {
		_ = windows.CloseHandle(handle)
		return nil, err
	}
	return f, nil
}

func translateFlag(flag int) (access uint32, creation uint32) {
	switch {
	case flag&os.O_RDWR != 0:
		access = windows.GENERIC_READ | windows.GENERIC_WRITE
	case flag&os.O_WRONLY != 0:
		access = windows.GENERIC_WRITE
	default:
		access = windows.GENERIC_READ
	}

	switch {
	case flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0:
		creation = windows.CREATE_NEW
	case flag&os.O_CREATE != 0 && flag&os.O_TRUNC != 0:
		creation = windows.CREATE_ALWAYS
	case flag&os.O_CREATE != 0:
		creation = windows.OPEN_ALWAYS
	case flag&os.O_TRUNC != 0:
		creation = windows.TRUNCATE_EXISTING
	default:
		creation = windows.OPEN_EXISTING
	}
	return
}
