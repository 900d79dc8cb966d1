//go:build linux

package file

import (
	"golang.org/x/sys/unix"

	"github.com/brickingsoft/faio/pkg/aio"
	"github.com/brickingsoft/faio/pkg/sys"
)

// Clone duplicates f's descriptor with the close-on-exec flag set and
// attaches the duplicate to svc as an independent handle: closing one side
// never closes the other's descriptor. Useful for giving a second Service a
// cursor onto the same underlying file without the two handles racing over
// a single fd's close.
func (f *File) Clone(svc *aio.Service) (*File, error) {
	newFd, _, err := sys.DupCloseOnExec(f.fd)
	if err != nil {
		return nil, err
	}
	nf := &File{
		name: f.name,
		fd:   newFd,
		closer: func() error {
			return unix.Close(newFd)
		},
	}
	if attachErr := nf.Attach(svc); attachErr != nil {
		_ = unix.Close(newFd)
		return nil, attachErr
	}
	return nf, nil
}
