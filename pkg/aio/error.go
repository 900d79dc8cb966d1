package aio

import (
	"github.com/brickingsoft/errors"
)

// Error kinds from the service's taxonomy (spec.md §7). Each is a sentinel
// defined once and wrapped with op/context metadata at the call site,
// following the teacher's own pkg/aio/error.go convention.
var (
	ErrTimedOut          = errors.Define("run_until timed out")
	ErrNotSupported      = errors.Define("run_until called from non-owning thread")
	ErrInvalidArgument   = errors.Define("malformed deadline")
	ErrCancelled         = errors.Define("operation cancelled")
	ErrResourceExhausted = errors.Define("backend resource exhausted")
	ErrUnexpectedEvent   = errors.Define("unexpected completion event")
	ErrClosed            = errors.Define("service closed")
)

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "aio"
)

const (
	errMetaOpKey      = "op"
	errMetaOpStart    = "start"
	errMetaOpWait     = "wait"
	errMetaOpSubmit   = "submit"
	errMetaOpCancel   = "cancel"
	errMetaOpSignal   = "signal"
	errMetaOpRunUntil = "run_until"
)

func newError(kind error, msg string, wrapped error) error {
	if wrapped == nil {
		return errors.New(
			msg,
			errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
			errors.WithWrap(kind),
		)
	}
	return errors.New(
		msg,
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithWrap(kind),
		errors.WithWrap(wrapped),
	)
}

func newOpError(kind error, op string, wrapped error) error {
	return errors.New(
		op+" failed",
		errors.WithMeta(errMetaPkgKey, errMetaPkgVal),
		errors.WithMeta(errMetaOpKey, op),
		errors.WithWrap(kind),
		errors.WithWrap(wrapped),
	)
}

// IsTimedOut reports whether err is, or wraps, ErrTimedOut.
func IsTimedOut(err error) bool { return errors.Is(err, ErrTimedOut) }

// IsNotSupported reports whether err is, or wraps, ErrNotSupported.
func IsNotSupported(err error) bool { return errors.Is(err, ErrNotSupported) }

// IsInvalidArgument reports whether err is, or wraps, ErrInvalidArgument.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsCancelled reports whether err is, or wraps, ErrCancelled.
func IsCancelled(err error) bool { return errors.Is(err, ErrCancelled) }
