//go:build windows

package aio

import (
	"os"
	"runtime"
	"time"
	"unsafe"

	"github.com/brickingsoft/errors"
	"golang.org/x/sys/windows"
)

const wakeCompletionKey = ^uintptr(0)

// windowsOp carries a pending Request's OVERLAPPED. The embedded
// windows.Overlapped must stay the struct's first field: GetQueuedCompletionStatus
// hands back a *windows.Overlapped that we cast straight back to
// *windowsOp, the same trick the teacher's pkg/aio/operator_windows.go uses.
type windowsOp struct {
	overlapped windows.Overlapped
	req        *Request
}

type iocpBackend struct {
	port windows.Handle
}

func newBackend(s *Service, capacity int) (backend, error) {
	port, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 1)
	if err != nil {
		return nil, errors.New(
			"create io completion port failed",
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithWrap(os.NewSyscallError("iocp_create_io_completion_port", err)),
		)
	}
	return &iocpBackend{port: port}, nil
}

func (b *iocpBackend) close() error {
	return windows.CloseHandle(b.port)
}

func (b *iocpBackend) associate(handle uintptr) error {
	if _, err := windows.CreateIoCompletionPort(windows.Handle(handle), b.port, 0, 0); err != nil {
		return errors.New(
			"associate handle with io completion port failed",
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithWrap(os.NewSyscallError("iocp_create_io_completion_port", err)),
		)
	}
	return nil
}

func (b *iocpBackend) submit(req *Request) error {
	op := &windowsOp{req: req}
	op.overlapped.Offset = uint32(req.offset)
	op.overlapped.OffsetHigh = uint32(req.offset >> 32)
	req.backendData = op

	handle := windows.Handle(req.handle)
	var done uint32
	var err error
	if req.write {
		err = windows.WriteFile(handle, req.buf, &done, (*windows.Overlapped)(&op.overlapped))
	} else {
		err = windows.ReadFile(handle, req.buf, &done, (*windows.Overlapped)(&op.overlapped))
	}
	if err != nil && err != windows.ERROR_IO_PENDING {
		return newOpError(ErrUnexpectedEvent, errMetaOpSubmit, os.NewSyscallError("iocp_read_write_file", err))
	}
	return nil
}

func (b *iocpBackend) cancel(req *Request) error {
	op, ok := req.backendData.(*windowsOp)
	if !ok || op == nil {
		return nil
	}
	handle := windows.Handle(req.handle)
	if err := windows.CancelIoEx(handle, (*windows.Overlapped)(&op.overlapped)); err != nil && err != windows.ERROR_NOT_FOUND {
		return newOpError(ErrUnexpectedEvent, errMetaOpCancel, os.NewSyscallError("iocp_cancel_io_ex", err))
	}
	return nil
}

func (b *iocpBackend) wake() {
	_ = windows.PostQueuedCompletionStatus(b.port, 0, wakeCompletionKey, nil)
}

func (b *iocpBackend) waitOne(s *Service, timeout time.Duration, hasTimeout bool) (bool, error) {
	ms := uint32(windows.INFINITE)
	if hasTimeout {
		ms = millis(timeout)
	}

	var qty uint32
	var key uintptr
	var overlapped *windows.Overlapped
	err := windows.GetQueuedCompletionStatus(b.port, &qty, &key, &overlapped, ms)

	if overlapped == nil {
		if err == windows.WAIT_TIMEOUT {
			return false, nil
		}
		if key == wakeCompletionKey {
			return true, nil
		}
		return false, newOpError(ErrUnexpectedEvent, errMetaOpWait, os.NewSyscallError("iocp_get_queued_completion_status", err))
	}

	if key == wakeCompletionKey {
		return true, nil
	}

	op := (*windowsOp)(unsafe.Pointer(overlapped))
	req := op.req

	var cbErr error
	if err != nil {
		cbErr = newOpError(ErrUnexpectedEvent, errMetaOpWait, os.NewSyscallError("iocp_get_queued_completion_status", err))
	}
	if req.cancelled {
		cbErr = newError(ErrCancelled, "operation cancelled", cbErr)
	}
	if req.callback != nil {
		req.callback(int(qty), cbErr)
	}
	s.work.add(-1)
	runtime.KeepAlive(op)
	return true, nil
}
