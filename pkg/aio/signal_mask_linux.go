//go:build linux

package aio

import "golang.org/x/sys/unix"

// sigsetOf builds a Sigset_t containing exactly sig, for PthreadSigmask.
// x/sys/unix has no cross-arch helper for this on Linux; Sigset_t is a
// fixed [16]uint64 word array on every Linux arch this module targets, so
// word/bit arithmetic is portable across amd64/arm64/etc.
func sigsetOf(sig unix.Signal) unix.Sigset_t {
	var set unix.Sigset_t
	bit := uint(sig) - 1
	set.Val[bit/64] |= 1 << (bit % 64)
	return set
}

// blockWakeSignal masks the currently-active interruption signal on the
// calling (owning) thread. Called once when the backend is constructed and
// again immediately after every blocking io_getevents call returns, so a
// wake delivered between RunUntil calls is held pending rather than
// interrupting unrelated code running on the same thread.
func blockWakeSignal() {
	set := sigsetOf(unix.Signal(interruptionSignal()))
	_ = unix.PthreadSigmask(unix.SIG_BLOCK, &set, nil)
}

// unblockWakeSignal lifts the mask immediately before entering the
// blocking io_getevents call: a wake() sent while it was blocked is
// already pending and is delivered here, causing the immediately
// following syscall to observe EINTR instead of blocking past a Post that
// raced ahead of it.
func unblockWakeSignal() {
	set := sigsetOf(unix.Signal(interruptionSignal()))
	_ = unix.PthreadSigmask(unix.SIG_UNBLOCK, &set, nil)
}
