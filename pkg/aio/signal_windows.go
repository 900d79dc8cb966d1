//go:build windows

package aio

// interruptionSignalForPlatform backs Service.InterruptionSignal on
// Windows, which has no POSIX signal concept: IOCP wakes are delivered
// through PostQueuedCompletionStatus, not a signal number.
func interruptionSignalForPlatform() int {
	return 0
}

// setInterruptionSignalForPlatform backs Service.SetInterruptionSignal on
// Windows: always a no-op.
func setInterruptionSignalForPlatform(sig int) (int, error) {
	return 0, nil
}
