//go:build darwin || freebsd || netbsd || openbsd

package aio

import (
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

func init() {
	wakeSignal = unix.SIGUSR1
}

// sigevent mirrors struct sigevent. aio_sigevent.notify is left SIGEV_NONE
// (0): completion is observed exclusively by polling aio_error/aio_return
// from aio_suspend, never by a per-request signal — component G's wake
// signal is process-global and only ever used to interrupt aio_suspend
// itself, grounded on segmentio-parquet-go's file_darwin.go.
type sigevent struct {
	notify           int32
	signo            int32
	value            uintptr
	notifyFunction   uintptr
	notifyAttributes uintptr
}

// aiocb mirrors the BSD-family struct aiocb. Field packing historically
// traces back to 4.4BSD and is shared near-verbatim across
// darwin/freebsd/netbsd/openbsd; this is the literal POSIX-AIO backend
// spec.md's component D describes for the non-Linux POSIX family.
type aiocb struct {
	filedes   int32
	offset    int64
	buf       *byte
	nbytes    int64
	reqprio   int32
	sigevent  sigevent
	lioOpcode int32
}

const (
	lioNop   = 0
	lioRead  = 1
	lioWrite = 2
)

func aioRead(cb *aiocb) syscall.Errno {
	_, _, errno := syscall.Syscall(syscall.SYS_AIO_READ, uintptr(unsafe.Pointer(cb)), 0, 0)
	return errno
}

func aioWrite(cb *aiocb) syscall.Errno {
	_, _, errno := syscall.Syscall(syscall.SYS_AIO_WRITE, uintptr(unsafe.Pointer(cb)), 0, 0)
	return errno
}

func aioReturn(cb *aiocb) (int, syscall.Errno) {
	ret, _, errno := syscall.Syscall(syscall.SYS_AIO_RETURN, uintptr(unsafe.Pointer(cb)), 0, 0)
	return int(ret), errno
}

func aioError(cb *aiocb) syscall.Errno {
	_, _, errno := syscall.Syscall(syscall.SYS_AIO_ERROR, uintptr(unsafe.Pointer(cb)), 0, 0)
	return errno
}

func aioCancel(filedes int32, cb *aiocb) syscall.Errno {
	_, _, errno := syscall.Syscall(syscall.SYS_AIO_CANCEL, uintptr(filedes), uintptr(unsafe.Pointer(cb)), 0)
	return errno
}

func aioSuspend(list []*aiocb, timeout *unix.Timespec) syscall.Errno {
	if len(list) == 0 {
		return 0
	}
	_, _, errno := syscall.Syscall(syscall.SYS_AIO_SUSPEND,
		uintptr(unsafe.Pointer(&list[0])), uintptr(len(list)), uintptr(unsafe.Pointer(timeout)))
	return errno
}

type aioBackend struct {
	mu      sync.Mutex
	pending map[*aiocb]*Request
	pid     int

	// waiting and pendingWake stand in for the sigmask block/unblock
	// discipline backend_linux.go uses: there is no single portable
	// Sigset_t layout across darwin/freebsd/netbsd/openbsd to build one
	// generically, and wake() already has to broadcast process-wide here
	// (no per-thread tgkill on this family), so the race wake()/waitOne()
	// would otherwise have is closed with two atomics instead of a mask.
	waiting     atomic.Bool
	pendingWake atomic.Bool
}

func newBackend(s *Service, capacity int) (backend, error) {
	ensureSignalHandlerInstalled()
	return &aioBackend{
		pending: make(map[*aiocb]*Request),
		pid:     unix.Getpid(),
	}, nil
}

func (b *aioBackend) close() error { return nil }

func (b *aioBackend) associate(handle uintptr) error { return nil }

func (b *aioBackend) submit(req *Request) error {
	cb := &aiocb{
		filedes: int32(req.fd),
		offset:  req.offset,
		nbytes:  int64(len(req.buf)),
	}
	if len(req.buf) > 0 {
		cb.buf = &req.buf[0]
	}
	req.backendData = cb

	b.mu.Lock()
	b.pending[cb] = req
	b.mu.Unlock()

	var errno syscall.Errno
	if req.write {
		errno = aioWrite(cb)
	} else {
		errno = aioRead(cb)
	}
	if errno != 0 {
		b.mu.Lock()
		delete(b.pending, cb)
		b.mu.Unlock()
		return newOpError(ErrUnexpectedEvent, errMetaOpSubmit, os.NewSyscallError("aio_read/aio_write", errno))
	}
	return nil
}

func (b *aioBackend) cancel(req *Request) error {
	cb, ok := req.backendData.(*aiocb)
	if !ok {
		return nil
	}
	if errno := aioCancel(cb.filedes, cb); errno != 0 && errno != syscall.EINVAL {
		return newOpError(ErrUnexpectedEvent, errMetaOpCancel, os.NewSyscallError("aio_cancel", errno))
	}
	return nil
}

// wake delivers the interruption signal to the process, unless the owner
// hasn't yet committed to aio_suspend: there is no portable, unfabricated
// way from Go to target a single OS thread by tid on the BSD/Darwin family
// (no tgkill equivalent), so a process-wide kill is the only option, and a
// signal raised before waitOne calls aio_suspend would otherwise be lost
// rather than interrupting it. waiting/pendingWake substitute for the
// sigmask block/unblock discipline backend_linux.go uses around
// io_getevents, since Sigset_t's layout isn't uniform across
// darwin/freebsd/netbsd/openbsd and can't be built generically here.
func (b *aioBackend) wake() {
	if b.waiting.Load() {
		_ = syscall.Kill(b.pid, syscall.Signal(interruptionSignal()))
		return
	}
	b.pendingWake.Store(true)
}

func (b *aioBackend) waitOne(s *Service, timeout time.Duration, hasTimeout bool) (bool, error) {
	if b.pendingWake.CompareAndSwap(true, false) {
		return true, nil
	}

	b.mu.Lock()
	list := make([]*aiocb, 0, len(b.pending))
	for cb := range b.pending {
		list = append(list, cb)
	}
	b.mu.Unlock()

	var ts *unix.Timespec
	if hasTimeout {
		spec := unix.NsecToTimespec(timeout.Nanoseconds())
		ts = &spec
	}

	b.waiting.Store(true)
	if b.pendingWake.CompareAndSwap(true, false) {
		b.waiting.Store(false)
		return true, nil
	}
	errno := aioSuspend(list, ts)
	b.waiting.Store(false)

	if errno != 0 {
		if errno == syscall.EINTR {
			return true, nil
		}
		if errno == syscall.EAGAIN {
			return false, nil
		}
		return false, newOpError(ErrUnexpectedEvent, errMetaOpWait, os.NewSyscallError("aio_suspend", errno))
	}

	for _, cb := range list {
		if aioError(cb) == syscall.EINPROGRESS {
			continue
		}
		n, errno := aioReturn(cb)

		b.mu.Lock()
		req, ok := b.pending[cb]
		if ok {
			delete(b.pending, cb)
		}
		b.mu.Unlock()
		if !ok {
			continue
		}

		var cbErr error
		if errno != 0 {
			cbErr = newOpError(ErrUnexpectedEvent, errMetaOpWait, os.NewSyscallError("aio_return", errno))
		}
		if req.cancelled {
			cbErr = newError(ErrCancelled, "operation cancelled", cbErr)
		}
		if req.callback != nil {
			req.callback(n, cbErr)
		}
		s.work.add(-1)
		return true, nil
	}
	return true, nil
}
