package aio

// CompletionFunc is invoked exactly once per Request, on the owning thread,
// with the transferred byte count and either nil, ErrCancelled, or a
// wrapped OS error (spec.md §3, §5 cancellation exactness).
type CompletionFunc func(n int, err error)

// Request is a single submitted asynchronous file operation. It is created
// on submission, pinned for the duration of the kernel operation (never
// copied — always referenced through its pointer), and owned by the
// submitting handle, not the Service: the Service only ever holds a
// non-owning reference to it while the operation is in flight (spec.md §3).
//
// fd/handle are both present rather than build-tag split because a Request
// crosses aio's exported surface: file.File constructs one without needing
// its own per-platform build tags. Only the field the active backend cares
// about is ever populated.
type Request struct {
	service  *Service
	fd       int     // POSIX file descriptor
	handle   uintptr // Windows file HANDLE
	buf      []byte
	offset   int64
	write    bool
	callback CompletionFunc

	cancelled bool

	// backendData is opaque per-backend bookkeeping: a *windowsOp wrapping
	// the windows.Overlapped on Windows, the *aiocb submitted for it on
	// BSD/Darwin, the uint64 id keying the backend's pending map on Linux. Only the
	// backend that submitted the Request ever reads or writes it.
	backendData any
}

// Cancelled reports whether Cancel was called on this Request before its
// completion was observed. The completion callback still fires exactly
// once regardless.
func (r *Request) Cancelled() bool { return r.cancelled }

// Attachment is the contract spec.md §4.6 describes between an async
// handle and the Service it opens against: the handle registers itself at
// open time and routes every operation through the Service it was attached
// to. It is implemented by file.File; aio itself only depends on this
// interface so platform registration (IOCP association, logical-only on
// POSIX) can happen without aio importing the handle package.
type Attachment interface {
	// Attach binds the handle's underlying file descriptor/handle to s. On
	// Windows this associates the OS handle with s's completion port; on
	// POSIX it is purely bookkeeping.
	Attach(s *Service) error
}
