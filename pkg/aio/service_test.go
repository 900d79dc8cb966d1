package aio_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brickingsoft/faio/pkg/aio"
)

func TestNewClose(t *testing.T) {
	svc, err := aio.New()
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRunUntilEmpty(t *testing.T) {
	svc, err := aio.New()
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	more, err := svc.RunUntil(aio.Immediate)
	if err != nil {
		t.Fatal(err)
	}
	if more {
		t.Fatal("expected no pending work on a freshly constructed Service")
	}
}

func TestPostRunsOnOwner(t *testing.T) {
	svc, err := aio.New()
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	var ran bool
	svc.Post(func(*aio.Service) { ran = true })

	if _, err := svc.RunUntil(aio.Never); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Fatal("posted callable did not run")
	}
}

func TestPostFromOtherGoroutines(t *testing.T) {
	svc, err := aio.New()
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	const n = 1000
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			svc.Post(func(*aio.Service) { count.Add(1) })
		}()
	}
	wg.Wait()

	for {
		more, err := svc.RunUntil(aio.Never)
		if err != nil {
			t.Fatal(err)
		}
		if !more {
			break
		}
	}

	if got := count.Load(); got != n {
		t.Fatalf("got %d completed posts, want %d", got, n)
	}
}

func TestPostReentrant(t *testing.T) {
	svc, err := aio.New()
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	var runs int
	var post func(*aio.Service)
	post = func(s *aio.Service) {
		runs++
		if runs < 3 {
			s.Post(post)
		}
	}
	svc.Post(post)

	for {
		more, err := svc.RunUntil(aio.Never)
		if err != nil {
			t.Fatal(err)
		}
		if !more {
			break
		}
	}

	if runs != 3 {
		t.Fatalf("got %d runs, want 3", runs)
	}
}

func TestRunUntilRejectsNonOwner(t *testing.T) {
	svc, err := aio.New()
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	errs := make(chan error, 1)
	go func() {
		_, err := svc.RunUntil(aio.Immediate)
		errs <- err
	}()

	err = <-errs
	if !aio.IsNotSupported(err) {
		t.Fatalf("got %v, want ErrNotSupported", err)
	}
}

func TestDeadlineValidation(t *testing.T) {
	svc, err := aio.New()
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	svc.Post(func(*aio.Service) {})

	_, err = svc.RunUntil(aio.Deadline{Nanoseconds: uint32(time.Second.Nanoseconds())})
	if !aio.IsInvalidArgument(err) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}
