package aio

// noCopy marks a Service as non-copyable: kernel control blocks submitted
// through it (OVERLAPPED, aiocb, iocb) are pinned at the Service's address
// for the lifetime of the operation, so the Service itself must never move.
// Embed by value; `go vet` flags any accidental copy of the containing
// struct.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
