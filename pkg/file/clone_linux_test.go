//go:build linux

package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brickingsoft/faio/pkg/aio"
	"github.com/brickingsoft/faio/pkg/file"
)

func TestClone(t *testing.T) {
	svc, err := aio.New()
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	path := filepath.Join(t.TempDir(), "clone.dat")
	f, err := file.Open(svc, path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		t.Fatal(err)
	}

	clone, err := f.Clone(svc)
	if err != nil {
		t.Fatal(err)
	}

	want := []byte("cloned handle, independent descriptor")
	var wroteErr error
	if _, err := f.WriteAt(0, want, func(_ int, err error) { wroteErr = err }); err != nil {
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

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got := make([]byte, len(want))
	var readErr error
	if _, err := clone.ReadAt(0, got, func(_ int, err error) { readErr = err }); err != nil {
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
	if string(got) != string(want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	if err := clone.Close(); err != nil {
		t.Fatal(err)
	}
}
