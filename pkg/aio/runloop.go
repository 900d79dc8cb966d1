package aio

import "time"

// Run is RunUntil(Never): it processes at most one post or completion with
// no deadline. Call it in a loop until it returns false to drain every
// pending post and in-flight I/O.
func (s *Service) Run() (bool, error) {
	return s.RunUntil(Never)
}

// RunUntil is the single entry point driving the Service (spec.md §4.3). It
// must be called from the goroutine that constructed the Service; every
// other caller gets ErrNotSupported. It returns false, nil once the work
// counter (pending posts + in-flight I/Os) reaches zero, and true, nil
// after processing one post or completion while work remains. A deadline
// that elapses before either happens returns false, ErrTimedOut.
func (s *Service) RunUntil(d Deadline) (bool, error) {
	if !s.isOwner() {
		return false, newOpError(ErrNotSupported, errMetaOpRunUntil, nil)
	}
	if s.closed {
		return false, newOpError(ErrClosed, errMetaOpRunUntil, nil)
	}
	if err := d.validate(); err != nil {
		return false, err
	}

	if s.work.load() == 0 {
		return false, nil
	}

	if did, recovered := s.posts.dispatchOne(s); did {
		if recovered != nil {
			panic(recovered)
		}
		return s.work.load() > 0, nil
	}

	now := time.Now()
	deadlineAt, has := d.absolute(now)
	timeout, hasTimeout := remaining(deadlineAt, has, now)

	s.interrupt.arm()
	woke, err := s.backend.waitOne(s, timeout, hasTimeout)
	s.interrupt.disarm()
	if err != nil {
		return false, err
	}
	if !woke {
		return false, newOpError(ErrTimedOut, errMetaOpRunUntil, nil)
	}

	if _, recovered := s.posts.dispatchOne(s); recovered != nil {
		panic(recovered)
	}
	return s.work.load() > 0, nil
}
