// Package threadpin pins a Service's owning goroutine to its OS thread and,
// optionally, to a CPU and scheduling priority. A Service already depends
// on staying put — RunUntil enforces single-owner-thread affinity — so
// making that thread sticky and prioritized is a direct extension of the
// same requirement, not a new one.
package threadpin

import (
	"runtime"
)

// Options configures Pin. The zero value locks the calling goroutine to
// its OS thread, pins it to CPU 0 (Linux only) and applies the Idle
// priority; a negative CPUIndex leaves CPU affinity untouched.
type Options struct {
	// CPUIndex pins the thread to CPU (CPUIndex % runtime.NumCPU()).
	// Negative skips CPU pinning. Linux-only; a no-op elsewhere.
	CPUIndex int

	// Priority raises (or lowers) the scheduling priority of the owning
	// thread's process.
	Priority Priority
}

// Pin locks the calling goroutine to its OS thread and applies the
// requested affinity/priority. Intended to be called once, from the
// goroutine about to construct an aio.Service, before aio.New.
func Pin(opts Options) error {
	runtime.LockOSThread()

	if opts.CPUIndex >= 0 {
		if err := setCPUAffinity(opts.CPUIndex); err != nil {
			return err
		}
	}
	return setPriority(opts.Priority)
}
