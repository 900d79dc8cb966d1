//go:build unix

package file

import (
	"os"

	"github.com/brickingsoft/faio/pkg/aio"
	"golang.org/x/sys/unix"
)

// Open opens name and attaches the resulting descriptor to svc. flag and
// perm are passed straight to the underlying open(2), same as os.OpenFile.
func Open(svc *aio.Service, name string, flag int, perm os.FileMode) (*File, error) {
	fd, err := unix.Open(name, flag, uint32(perm))
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	f := &File{
		name: name,
		fd:   fd,
		closer: func() error {
			return unix.Close(fd)
		},
	}
	if err := f.Attach(svc); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	return f, nil
}
