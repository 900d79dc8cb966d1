package aio

import (
	"sync"

	"github.com/brickingsoft/faio/pkg/concurrent"
)

// postEntry is spec.md §3's post entry: { service-back-pointer, callable }.
// owner doubles as the valid bit — nulling it (under the post lock, only
// after the callable has run) marks the entry consumed without popping it;
// popping happens lazily from the front on the next call.
type postEntry struct {
	owner    *Service
	executor concurrent.Executor
}

// postQueue is a thread-safe FIFO of one-shot callables plus a wake
// primitive (spec.md §4.1). It never blocks on running callables: post()
// only ever holds the lock long enough to append, and reads the wake flag
// after releasing it;
// dispatch drops the lock before invoking the callable so a callable that
// itself calls post() cannot deadlock or need a reentrant lock.
type postQueue struct {
	mu      sync.Mutex
	entries []*postEntry
}

// post enqueues f bound to s, bumps the work counter, and returns whether
// the caller must fire the wake primitive (the need-signal flag was set,
// meaning the owner may be blocked waiting).
func (q *postQueue) post(s *Service, f func(*Service)) bool {
	entry := &postEntry{
		owner:    s,
		executor: concurrent.FuncExecutor(func() { f(s) }),
	}
	s.work.add(1)
	q.mu.Lock()
	q.entries = append(q.entries, entry)
	q.mu.Unlock()
	return s.interrupt.takeNeedSignal()
}

// dispatchOne compacts any already-consumed prefix, pops and runs the front
// entry outside the lock, then marks it consumed and decrements the work
// counter. It reports whether it did any work and recovers/returns a panic
// value from the callable so the caller can re-panic after state is
// restored (spec.md §7, Open Question (a)).
func (q *postQueue) dispatchOne(s *Service) (did bool, recovered any) {
	q.mu.Lock()
	for len(q.entries) > 0 && q.entries[0].owner == nil {
		q.entries = q.entries[1:]
	}
	if len(q.entries) == 0 {
		q.mu.Unlock()
		return false, nil
	}
	entry := q.entries[0]
	q.mu.Unlock()

	func() {
		defer func() {
			recovered = recover()
		}()
		entry.executor.Run()
	}()

	q.mu.Lock()
	entry.owner = nil
	for len(q.entries) > 0 && q.entries[0].owner == nil {
		q.entries = q.entries[1:]
	}
	q.mu.Unlock()

	s.work.add(-1)
	return true, recovered
}
