package file

import (
	"context"
	"time"

	"github.com/brickingsoft/faio/pkg/aio"
	"github.com/brickingsoft/faio/pkg/semaphores"
)

// ReadAtBlocking is for callers that are not the Service's owning
// goroutine and have no run loop of their own to drive: it posts the read
// onto the owner via Service.Post and blocks the calling goroutine until
// the completion callback fires or deadline elapses, whichever is first.
func (f *File) ReadAtBlocking(off int64, buf []byte, deadline time.Duration) (n int, err error) {
	return f.submitBlocking(deadline, func(cb aio.CompletionFunc) {
		f.service.Post(func(s *aio.Service) {
			if _, postErr := f.ReadAt(off, buf, cb); postErr != nil {
				cb(0, postErr)
			}
		})
	})
}

// WriteAtBlocking is the WriteAt counterpart of ReadAtBlocking.
func (f *File) WriteAtBlocking(off int64, buf []byte, deadline time.Duration) (n int, err error) {
	return f.submitBlocking(deadline, func(cb aio.CompletionFunc) {
		f.service.Post(func(s *aio.Service) {
			if _, postErr := f.WriteAt(off, buf, cb); postErr != nil {
				cb(0, postErr)
			}
		})
	})
}

func (f *File) submitBlocking(deadline time.Duration, submit func(aio.CompletionFunc)) (n int, err error) {
	sh, shErr := semaphores.New(deadline)
	if shErr != nil {
		return 0, shErr
	}
	defer func() { _ = sh.Close() }()

	submit(func(completedN int, completedErr error) {
		n = completedN
		err = completedErr
		sh.Signal()
	})

	ctx, cancel := context.WithTimeout(context.Background(), deadline)
	defer cancel()
	if waitErr := sh.Wait(ctx); waitErr != nil {
		return n, waitErr
	}
	return n, err
}
