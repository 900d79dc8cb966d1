//go:build unix

package aio

import (
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"
)

// wakeSignal is the signal number whichever backend_linux.go/backend_bsd.go
// is compiled in picks as this platform's default interruption signal
// (spec.md §4.5, component G): SIGRTMIN+2 on Linux, SIGUSR1 on BSD/Darwin.
// It never changes after the owning backend's init() sets it; sig == 0 on
// SetInterruptionSignal always means "go back to this value."
var wakeSignal unix.Signal

var (
	signalMu     sync.Mutex
	currentSig   unix.Signal
	currentCh    chan os.Signal
	handlerReady bool
)

// ensureSignalHandlerInstalled registers the process-wide handler for the
// platform default signal the first time any backend is constructed.
// Every Service in the process shares this one registration, since
// os/signal allows only one disposition per signal number; a later
// SetInterruptionSignal call replaces it for everyone.
func ensureSignalHandlerInstalled() {
	signalMu.Lock()
	defer signalMu.Unlock()
	if handlerReady {
		return
	}
	installSignalLocked(wakeSignal)
	handlerReady = true
}

// installSignalLocked registers a Go-level handler for sig so its default
// disposition (process termination, for most real-time and user signals)
// never fires, then drains the channel forever: delivery's only purpose is
// the EINTR it causes in the blocked syscall on the target thread, not the
// notification itself. Must be called with signalMu held.
func installSignalLocked(sig unix.Signal) {
	ch := make(chan os.Signal, 8)
	signal.Notify(ch, sig)
	currentSig = sig
	currentCh = ch
	go func() {
		for range ch {
		}
	}()
}

// interruptionSignal returns the signal number currently used to interrupt
// a blocked waitOne call.
func interruptionSignal() int {
	signalMu.Lock()
	defer signalMu.Unlock()
	return int(currentSig)
}

// setInterruptionSignal swaps the active interruption signal to sig,
// restoring the previously-active signal number's default OS disposition
// (signal.Stop + signal.Reset) before installing the new one, and returns
// the number that was active. sig == 0 restores the platform default
// captured in wakeSignal.
func setInterruptionSignal(sig int) (previous int, err error) {
	target := wakeSignal
	if sig != 0 {
		if sig < 1 || sig > 64 {
			return 0, newError(ErrInvalidArgument, "signal number out of range", nil)
		}
		target = unix.Signal(sig)
	}

	signalMu.Lock()
	defer signalMu.Unlock()
	previous = int(currentSig)
	if target == currentSig {
		return previous, nil
	}
	if currentCh != nil {
		signal.Stop(currentCh)
		signal.Reset(currentSig)
	}
	installSignalLocked(target)
	return previous, nil
}

// interruptionSignalForPlatform backs Service.InterruptionSignal on POSIX.
func interruptionSignalForPlatform() int {
	return interruptionSignal()
}

// setInterruptionSignalForPlatform backs Service.SetInterruptionSignal on
// POSIX.
func setInterruptionSignalForPlatform(sig int) (int, error) {
	return setInterruptionSignal(sig)
}
