//go:build unix

package file

import (
	"os"

	"golang.org/x/sys/unix"
)

// Length returns the file's current size.
func (f *File) Length() (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(f.fd, &st); err != nil {
		return 0, &os.PathError{Op: "fstat", Path: f.name, Err: err}
	}
	return st.Size, nil
}

// Truncate resizes the file to newSize, avoiding new physical allocation
// where the filesystem supports it (sparse extension).
func (f *File) Truncate(newSize int64) error {
	if err := unix.Ftruncate(f.fd, newSize); err != nil {
		return &os.PathError{Op: "ftruncate", Path: f.name, Err: err}
	}
	return nil
}
