// Package file provides an asynchronous file handle that submits its
// reads and writes through an attached aio.Service. Everything about the
// handle's own lifecycle — opening, path resolution, length tracking,
// closing the descriptor — lives here; the Service it attaches to never
// sees any of that, only the descriptor/handle and the buffers it submits.
package file

import (
	"context"

	"github.com/brickingsoft/faio/pkg/aio"
	"github.com/brickingsoft/rxp/async"
)

// File is an open file bound to exactly one aio.Service. It implements
// aio.Attachment so that binding happens through the Service's own
// Associate step (IOCP registration on Windows, a no-op elsewhere).
type File struct {
	name    string
	fd      int
	handle  uintptr
	service *aio.Service
	closer  func() error
}

// Attach binds f to s. Called once, right after Open, from the goroutine
// that owns s.
func (f *File) Attach(s *aio.Service) error {
	f.service = s
	return s.Associate(f.handle)
}

// Name returns the path f was opened from.
func (f *File) Name() string { return f.name }

// Close releases the underlying OS descriptor. It does not touch the
// Service; in-flight operations against f must be cancelled by the caller
// first.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer()
}

// ReadAt submits an asynchronous read of len(buf) bytes starting at off.
// cb runs on the owning thread exactly once, per aio.Service's contract.
func (f *File) ReadAt(off int64, buf []byte, cb aio.CompletionFunc) (*aio.Request, error) {
	return f.service.SubmitRead(f.fd, f.handle, off, buf, cb)
}

// WriteAt submits an asynchronous write of buf starting at off.
func (f *File) WriteAt(off int64, buf []byte, cb aio.CompletionFunc) (*aio.Request, error) {
	return f.service.SubmitWrite(f.fd, f.handle, off, buf, cb)
}

// ReadFuture is the async.Future convenience form of ReadAt, for callers
// that already drive the owning Service's RunUntil loop and want to chain
// completions with OnComplete instead of writing a raw CompletionFunc.
func (f *File) ReadFuture(ctx context.Context, off int64, buf []byte, options ...async.Option) (future async.Future[int]) {
	promise, promiseErr := async.Make[int](ctx, options...)
	if promiseErr != nil {
		return async.FailedImmediately[int](ctx, promiseErr)
	}
	if _, err := f.ReadAt(off, buf, func(n int, err error) {
		if err != nil {
			promise.Fail(err)
			return
		}
		promise.Succeed(n)
	}); err != nil {
		promise.Fail(err)
	}
	return promise.Future()
}

// WriteFuture is the async.Future convenience form of WriteAt.
func (f *File) WriteFuture(ctx context.Context, off int64, buf []byte, options ...async.Option) (future async.Future[int]) {
	promise, promiseErr := async.Make[int](ctx, options...)
	if promiseErr != nil {
		return async.FailedImmediately[int](ctx, promiseErr)
	}
	if _, err := f.WriteAt(off, buf, func(n int, err error) {
		if err != nil {
			promise.Fail(err)
			return
		}
		promise.Succeed(n)
	}); err != nil {
		promise.Fail(err)
	}
	return promise.Future()
}
