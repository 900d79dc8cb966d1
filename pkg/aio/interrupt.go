package aio

import "sync/atomic"

// interruptState is the need-signal flag from spec.md §4.5: set by the
// owner immediately before it blocks in the backend's wait, cleared
// immediately after it wakes. Producers (Post, Cancel) atomically
// read-and-clear it; a true result means the owner may be blocked and must
// be woken. This avoids firing a wake for every post when the owner is
// already running user code.
type interruptState struct {
	needSignal atomic.Bool
}

// arm is called by the owner right before entering the blocking wait.
func (i *interruptState) arm() {
	i.needSignal.Store(true)
}

// disarm is called by the owner right after waking, whatever the cause.
func (i *interruptState) disarm() {
	i.needSignal.Store(false)
}

// takeNeedSignal atomically reads and clears the flag; the caller fires the
// platform wake iff this returns true.
func (i *interruptState) takeNeedSignal() bool {
	return i.needSignal.Swap(false)
}
