package aio

import "sync/atomic"

// workCounter tracks outstanding posts plus in-flight I/Os (spec.md §4.2).
// Cross-thread producers (Post) use Add, which has release semantics on the
// underlying atomic; the owning thread's Load has acquire semantics, so the
// owner reliably observes the counter reach zero after the last
// cross-thread decrement.
type workCounter struct {
	n atomic.Int64
}

func (w *workCounter) add(delta int64) int64 {
	return w.n.Add(delta)
}

func (w *workCounter) load() int64 {
	return w.n.Load()
}
