//go:build windows

package file

import (
	"os"

	"golang.org/x/sys/windows"
)

// Length returns the file's current size.
func (f *File) Length() (int64, error) {
	var size int64
	if err := windows.GetFileSizeEx(windows.Handle(f.handle), &size); err != nil {
		return 0, &os.PathError{Op: "GetFileSizeEx", Path: f.name, Err: err}
	}
	return size, nil
}

// Truncate resizes the file to newSize by moving the file pointer there and
// calling SetEndOfFile, avoiding new physical allocation where supported.
func (f *File) Truncate(newSize int64) error {
	h := windows.Handle(f.handle)
	if _, err := windows.Seek(h, newSize, windows.FILE_BEGIN); err != nil {
		return &os.PathError{Op: "SetFilePointerEx", Path: f.name, Err: err}
	}
	if err := windows.SetEndOfFile(h); err != nil {
		return &os.PathError{Op: "SetEndOfFile", Path: f.name, Err: err}
	}
	return nil
}
