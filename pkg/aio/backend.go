package aio

import "time"

// newBackend constructs the platform backend for s. Exactly one
// implementation is compiled in per platform: backend_windows.go,
// backend_linux.go, backend_bsd.go.
//
//	func newBackend(s *Service, capacity int) (backend, error)

// backend is the completion-backend contract from spec.md §4.4: one
// implementation per platform (backend_windows.go for IOCP,
// backend_linux.go and backend_bsd.go for the two POSIX-AIO flavors), all
// satisfying the same interface so Service never sees a platform type.
//
// Both variants guarantee at-most-once completion dispatch per request and
// preserve submission order per handle only where the kernel itself does.
type backend interface {
	// close releases the backend's OS resources (port handle, aio context,
	// signal registration). Called once, from the owning thread, when the
	// Service is discarded.
	close() error

	// submit registers req with the kernel and returns once the operation
	// has been accepted (not completed).
	submit(req *Request) error

	// cancel best-effort cancels req. The completion callback still fires
	// exactly once, either with the operation's real result or
	// ErrCancelled.
	cancel(req *Request) error

	// waitOne blocks for at most timeout (ignored if hasTimeout is false)
	// waiting for one completion or a wake. It returns true if a
	// completion or wake was observed, and false with a nil error if the
	// deadline elapsed first; RunUntil turns that false into ErrTimedOut.
	waitOne(s *Service, timeout time.Duration, hasTimeout bool) (bool, error)

	// wake fires the platform interruption primitive unconditionally; the
	// caller has already consulted the need-signal flag.
	wake()

	// associate registers handle with the backend ahead of its first
	// submit. On Windows this is the IOCP sub-association
	// (CreateIoCompletionPort with the existing port); on POSIX it is a
	// no-op, since aio_read/aio_write/io_submit take the descriptor
	// directly on every call.
	associate(handle uintptr) error
}
