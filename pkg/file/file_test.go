package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brickingsoft/faio/pkg/aio"
	"github.com/brickingsoft/faio/pkg/file"
)

func TestReadWriteRoundTrip(t *testing.T) {
	svc, err := aio.New()
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	path := filepath.Join(t.TempDir(), "roundtrip.dat")

	f, err := file.Open(svc, path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want := []byte("asynchronous file io multiplexer")

	var wroteErr error
	var wrote int
	if _, err := f.WriteAt(0, want, func(n int, err error) {
		wrote, wroteErr = n, err
	}); err != nil {
		t.Fatal(err)
	}
	for {
		more, err := svc.RunUntil(aio.Never)
		if err != nil {
			t.Fatal(err)
		}
		if !more {
			break
		}
	}
	if wroteErr != nil {
		t.Fatal(wroteErr)
	}
	if wrote != len(want) {
		t.Fatalf("wrote %d bytes, want %d", wrote, len(want))
	}

	got := make([]byte, len(want))
	var readErr error
	var read int
	if _, err := f.ReadAt(0, got, func(n int, err error) {
		read, readErr = n, err
	}); err != nil {
		t.Fatal(err)
	}
	for {
		more, err := svc.RunUntil(aio.Never)
		if err != nil {
			t.Fatal(err)
		}
		if !more {
			break
		}
	}
	if readErr != nil {
		t.Fatal(readErr)
	}
	if read != len(want) {
		t.Fatalf("read %d bytes, want %d", read, len(want))
	}
	if string(got) != string(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCancelBeforeRun(t *testing.T) {
	svc, err := aio.New()
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	path := filepath.Join(t.TempDir(), "cancel.dat")
	f, err := file.Open(svc, path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	buf := make([]byte, 4096)
	var cbErr error
	req, err := f.ReadAt(0, buf, func(_ int, err error) {
		cbErr = err
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Cancel(req); err != nil {
		t.Fatal(err)
	}

	for {
		more, err := svc.RunUntil(aio.Never)
		if err != nil {
			t.Fatal(err)
		}
		if !more {
			break
		}
	}

	if !req.Cancelled() {
		t.Fatal("Request.Cancelled() false after Cancel")
	}
	if cbErr != nil && !aio.IsCancelled(cbErr) {
		t.Fatalf("completion error %v is neither nil nor ErrCancelled", cbErr)
	}
}
