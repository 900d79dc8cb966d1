package aio

import (
	"runtime"

	"github.com/brickingsoft/faio/pkg/threadpin"
)

// Options configures Service construction (spec.md §6: "instantiated with
// no arguments" — every field here defaults to the spec's zero-config
// behavior; Options only ever narrows or tunes it).
type Options struct {
	// ThreadPin, if non-nil, applies threadpin.Pin(*ThreadPin) on top of
	// the unconditional runtime.LockOSThread New already does for every
	// Service: CPU affinity and scheduling priority for the owning thread.
	ThreadPin *threadpin.Options

	// Capacity hints the backend's preferred in-flight-request capacity
	// (Linux native AIO's io_setup nr_events; ignored elsewhere, since IOCP
	// and the BSD aiocb family have no equivalent fixed-size context to
	// size up front). Rounded up to the next power of two. Zero uses the
	// backend's own default.
	Capacity int
}

// Option mutates Options during New, returning an error for invalid input
// rather than panicking, matching the functional-options convention used
// throughout this pack (pkg/concurrent, pkg/maxprocs).
type Option func(*Options) error

// WithThreadPin sets Options.ThreadPin.
func WithThreadPin(opts threadpin.Options) Option {
	return func(o *Options) error {
		o.ThreadPin = &opts
		return nil
	}
}

// WithCapacity sets Options.Capacity.
func WithCapacity(n int) Option {
	return func(o *Options) error {
		if n < 0 {
			return newError(ErrInvalidArgument, "negative capacity", nil)
		}
		o.Capacity = n
		return nil
	}
}

// Service is a non-movable, non-copyable, single-owner asynchronous file
// I/O multiplexer (spec.md §3). It is bound at construction to the
// goroutine/OS thread that called New and must only be driven — RunUntil,
// Run — from that same thread; any other goroutine may only Post.
type Service struct {
	_ noCopy

	ownerGoroutine uint64

	posts   postQueue
	work    workCounter
	backend backend
	interrupt interruptState

	closed bool
}

// New constructs a Service bound to the calling goroutine. On POSIX it
// installs the process-wide interruption signal handler if it isn't
// installed yet (spec.md §4.5, §6).
func New(opts ...Option) (*Service, error) {
	var options Options
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return nil, newError(ErrInvalidArgument, "invalid option", err)
		}
	}

	// The owning goroutine is locked to its OS thread unconditionally: the
	// Linux backend's wake() (Tgkill) targets the OS thread captured at
	// newBackend time, whose signal mask that backend also manages, and a
	// Post made while the owner is genuinely parked in waitOne must reach
	// that exact thread. Without LockOSThread the Go scheduler is free to
	// migrate the owning goroutine between waitOne calls, stranding the wake
	// signal on a thread nothing is blocked on. The BSD/Darwin wake (Kill)
	// signals the whole process and the Windows wake posts to the completion
	// port; neither names a thread. ThreadPin adds CPU affinity and scheduling priority on top of this
	// baseline; it never replaces it.
	runtime.LockOSThread()
	if options.ThreadPin != nil {
		if err := threadpin.Pin(*options.ThreadPin); err != nil {
			return nil, newOpError(ErrInvalidArgument, errMetaOpStart, err)
		}
	}

	s := &Service{
		ownerGoroutine: goroutineID(),
	}

	capacity := 0
	if options.Capacity > 0 {
		capacity = RoundupPow2(options.Capacity)
	}

	b, err := newBackend(s, capacity)
	if err != nil {
		return nil, newOpError(ErrResourceExhausted, errMetaOpStart, err)
	}
	s.backend = b

	runtime.SetFinalizer(s, (*Service).Close)
	return s, nil
}

// Close releases the backend's OS resources. It must be called from the
// owning goroutine, same as RunUntil.
func (s *Service) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	runtime.SetFinalizer(s, nil)
	return s.backend.close()
}

// isOwner reports whether the calling goroutine constructed this Service.
func (s *Service) isOwner() bool {
	return goroutineID() == s.ownerGoroutine
}

// Post enqueues f to run on the owning thread. Safe to call from any
// goroutine; never blocks on running callables (spec.md §4.1).
func (s *Service) Post(f func(*Service)) {
	if s.posts.post(s, f) {
		s.backend.wake()
	}
}

// submit hands req to the backend and bumps the work counter; called by
// file.File through the exported Submit* helpers below.
func (s *Service) submit(req *Request) error {
	req.service = s
	s.work.add(1)
	if err := s.backend.submit(req); err != nil {
		s.work.add(-1)
		return err
	}
	return nil
}

// Associate registers a newly opened file's handle/descriptor with the
// Service ahead of its first Submit*. file.File calls this from its
// Attach method (the aio.Attachment contract).
func (s *Service) Associate(handle uintptr) error {
	return s.backend.associate(handle)
}

// Cancel best-effort cancels req through the backend (spec.md §5). The
// completion callback still fires exactly once. Like Post, it wakes the
// owner if the need-signal flag shows it may be blocked waiting.
func (s *Service) Cancel(req *Request) error {
	req.cancelled = true
	err := s.backend.cancel(req)
	if s.interrupt.takeNeedSignal() {
		s.backend.wake()
	}
	return err
}

// SubmitRead submits an asynchronous read of len(buf) bytes at offset from
// fd (POSIX) or handle (Windows), invoking cb exactly once on completion.
func (s *Service) SubmitRead(fd int, handle uintptr, offset int64, buf []byte, cb CompletionFunc) (*Request, error) {
	req := &Request{fd: fd, handle: handle, offset: offset, buf: buf, write: false, callback: cb}
	if err := s.submit(req); err != nil {
		return nil, err
	}
	return req, nil
}

// SubmitWrite submits an asynchronous write of buf at offset to fd
// (POSIX) or handle (Windows), invoking cb exactly once on completion.
func (s *Service) SubmitWrite(fd int, handle uintptr, offset int64, buf []byte, cb CompletionFunc) (*Request, error) {
	req := &Request{fd: fd, handle: handle, offset: offset, buf: buf, write: true, callback: cb}
	if err := s.submit(req); err != nil {
		return nil, err
	}
	return req, nil
}

// UsingKqueue reports whether this Service's backend is driven by kqueue
// (spec.md §6). faio's BSD/Darwin backend uses POSIX AIO (aio_suspend), not
// kqueue, so this is always false; the method exists for API parity with
// the platforms/backends where it matters.
func (s *Service) UsingKqueue() bool {
	return false
}

// DisableKqueue is a no-op on this backend: there is no kqueue path to
// disable. Present for API parity with spec.md §6.
func (s *Service) DisableKqueue() {}

// InterruptionSignal returns the OS signal number currently used to
// interrupt a blocked completion wait on POSIX (spec.md §4.5, §6). Always 0
// on Windows, which has no equivalent concept.
func (s *Service) InterruptionSignal() int {
	return interruptionSignalForPlatform()
}

// SetInterruptionSignal changes the signal used to interrupt a blocked
// completion wait, restoring the previous signal's default OS disposition,
// and returns the number that was active beforehand. sig == 0 restores the
// platform default. A no-op returning (0, nil) on Windows.
func (s *Service) SetInterruptionSignal(sig int) (int, error) {
	return setInterruptionSignalForPlatform(sig)
}
