package file_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brickingsoft/faio/pkg/aio"
	"github.com/brickingsoft/faio/pkg/file"
)

// TestReadWriteBlocking exercises ReadAtBlocking/WriteAtBlocking from a
// goroutine that is not the Service's owner: the owner instead runs a
// background RunUntil loop, the same split a real multi-goroutine program
// would use.
func TestReadWriteBlocking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocking.dat")

	ready := make(chan *aio.Service, 1)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc, newErr := aio.New()
		if newErr != nil {
			t.Log("New:", newErr)
			close(ready)
			return
		}
		defer func() { _ = svc.Close() }()
		ready <- svc
		for {
			select {
			case <-stop:
				return
			default:
			}
			more, runErr := svc.RunUntil(aio.Never)
			if runErr != nil {
				t.Log("RunUntil:", runErr)
				return
			}
			if !more {
				time.Sleep(time.Millisecond)
			}
		}
	}()
	svc, ok := <-ready
	if !ok {
		t.Fatal("aio.New failed on the owner goroutine")
	}
	f, err := file.Open(svc, path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		close(stop)
		<-done
		t.Fatal(err)
	}
	defer func() {
		close(stop)
		<-done
		_ = f.Close()
	}()

	want := []byte("blocking round trip")
	if _, err := f.WriteAtBlocking(0, want, time.Second); err != nil {
		t.Fatal(err)
	}

	got := make([]byte, len(want))
	if _, err := f.ReadAtBlocking(0, got, time.Second); err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}
