package aio

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID extracts the calling goroutine's id from its own stack trace
// header ("goroutine 123 [running]:"). Combined with runtime.LockOSThread
// at Service construction, this gives a portable, syscall-free way to
// enforce spec.md §8's thread-affinity invariant on every platform: the
// goroutine that built the Service is pinned to its OS thread for the
// Service's lifetime, so "same goroutine" and "same OS thread" coincide.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		if id, err := strconv.ParseUint(string(b[:i]), 10, 64); err == nil {
			return id
		}
	}
	return 0
}
