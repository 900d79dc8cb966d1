//go:build linux

package aio

import (
	"os"
	"sync"
	"time"
	"unsafe"

	"github.com/brickingsoft/faio/pkg/kernel"
	"golang.org/x/sys/unix"
)

func init() {
	wakeSignal = unix.Signal(unix.SIGRTMIN() + 2)
}

// iocb mirrors struct iocb from linux/aio_abi.h. Linux native AIO is this
// package's embodiment of spec.md's POSIX-AIO backend variant on Linux: its
// io_getevents call is EINTR-interruptible exactly like aio_suspend, which
// is what component G's signal-driven wake depends on.
type iocb struct {
	data       uint64
	key        uint32
	rwFlags    uint32
	opcode     uint16
	reqPrio    int16
	fildes     uint32
	buf        uint64
	nbytes     uint64
	offset     int64
	reserved2  uint64
	flags      uint32
	resfd      uint32
}

// ioEvent mirrors struct io_event.
type ioEvent struct {
	data uint64
	obj  uint64
	res  int64
	res2 int64
}

const (
	iocbCmdPread  = 0
	iocbCmdPwrite = 1
)

const aioCapacity = 128

type aioBackend struct {
	ctxID uintptr

	mu      sync.Mutex
	pending map[uint64]*Request
	nextID  uint64

	tgid int
	tid  int
}

func newBackend(s *Service, capacity int) (backend, error) {
	ensureSignalHandlerInstalled()

	if ok, err := kernel.Check(2, 6); err == nil && !ok {
		return nil, newOpError(ErrNotSupported, errMetaOpStart, nil)
	}

	if capacity <= 0 {
		capacity = aioCapacity
	}

	var ctxID uintptr
	if _, _, errno := unix.Syscall(unix.SYS_IO_SETUP, uintptr(capacity), uintptr(unsafe.Pointer(&ctxID)), 0); errno != 0 {
		return nil, newOpError(ErrResourceExhausted, errMetaOpStart, os.NewSyscallError("io_setup", errno))
	}

	// Runs on the goroutine New() just locked to this OS thread: the
	// interruption signal starts masked so a Post()'s wake arriving
	// outside waitOne is held pending rather than delivered mid-flight.
	blockWakeSignal()

	return &aioBackend{
		ctxID:   ctxID,
		pending: make(map[uint64]*Request),
		tgid:    unix.Getpid(),
		tid:     unix.Gettid(),
	}, nil
}

func (b *aioBackend) close() error {
	_, _, errno := unix.Syscall(unix.SYS_IO_DESTROY, b.ctxID, 0, 0)
	if errno != 0 {
		return os.NewSyscallError("io_destroy", errno)
	}
	return nil
}

func (b *aioBackend) associate(handle uintptr) error { return nil }

func (b *aioBackend) submit(req *Request) error {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.pending[id] = req
	b.mu.Unlock()
	req.backendData = id

	cb := &iocb{
		data:   id,
		fildes: uint32(req.fd),
		nbytes: uint64(len(req.buf)),
		offset: req.offset,
	}
	if len(req.buf) > 0 {
		cb.buf = uint64(uintptr(unsafe.Pointer(&req.buf[0])))
	}
	if req.write {
		cb.opcode = iocbCmdPwrite
	} else {
		cb.opcode = iocbCmdPread
	}

	cbps := [1]*iocb{cb}
	if _, _, errno := unix.Syscall(unix.SYS_IO_SUBMIT, b.ctxID, 1, uintptr(unsafe.Pointer(&cbps[0]))); errno != 0 {
		b.mu.Lock()
		delete(b.pending, id)
		b.mu.Unlock()
		return newOpError(ErrUnexpectedEvent, errMetaOpSubmit, os.NewSyscallError("io_submit", errno))
	}
	return nil
}

func (b *aioBackend) cancel(req *Request) error {
	id, ok := req.backendData.(uint64)
	if !ok {
		return nil
	}
	cb := &iocb{data: id, fildes: uint32(req.fd)}
	var result ioEvent
	_, _, errno := unix.Syscall(unix.SYS_IO_CANCEL, b.ctxID, uintptr(unsafe.Pointer(cb)), uintptr(unsafe.Pointer(&result)))
	if errno != 0 && errno != unix.EINVAL {
		return newOpError(ErrUnexpectedEvent, errMetaOpCancel, os.NewSyscallError("io_cancel", errno))
	}
	return nil
}

func (b *aioBackend) wake() {
	_ = unix.Tgkill(b.tgid, b.tid, unix.Signal(interruptionSignal()))
}

func (b *aioBackend) waitOne(s *Service, timeout time.Duration, hasTimeout bool) (bool, error) {
	var events [1]ioEvent
	var ts *unix.Timespec
	if hasTimeout {
		spec := unix.NsecToTimespec(timeout.Nanoseconds())
		ts = &spec
	}

	unblockWakeSignal()
	n, _, errno := unix.Syscall6(unix.SYS_IO_GETEVENTS, b.ctxID, 0, 1,
		uintptr(unsafe.Pointer(&events[0])), uintptr(unsafe.Pointer(ts)), 0)
	blockWakeSignal()
	if errno != 0 {
		if errno == unix.EINTR {
			return true, nil
		}
		return false, newOpError(ErrUnexpectedEvent, errMetaOpWait, os.NewSyscallError("io_getevents", errno))
	}
	if n == 0 {
		if hasTimeout {
			return false, nil
		}
		return true, nil
	}

	ev := events[0]
	b.mu.Lock()
	req, ok := b.pending[ev.data]
	if ok {
		delete(b.pending, ev.data)
	}
	b.mu.Unlock()
	if !ok {
		return true, nil
	}

	var cbErr error
	transferred := 0
	if ev.res < 0 {
		cbErr = newOpError(ErrUnexpectedEvent, errMetaOpWait, os.NewSyscallError("io_getevents", unix.Errno(-ev.res)))
	} else {
		transferred = int(ev.res)
	}
	if req.cancelled {
		cbErr = newError(ErrCancelled, "operation cancelled", cbErr)
	}
	if req.callback != nil {
		req.callback(transferred, cbErr)
	}
	s.work.add(-1)
	return true, nil
}
