// Command faiocat copies one file to another through a single faio
// Service, demonstrating the owning-thread model end to end: one
// goroutine opens both handles, submits chained read/write requests, and
// drains them with Service.RunUntil until the copy is done.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/brickingsoft/faio/pkg/aio"
	"github.com/brickingsoft/faio/pkg/file"
	"github.com/brickingsoft/faio/pkg/maxprocs"
	"github.com/brickingsoft/faio/pkg/threadpin"
	"github.com/spf13/pflag"
)

const copyBufSize = 64 * 1024

func main() {
	var (
		pin      = pflag.Bool("pin", false, "apply threadpin options to the owning thread: CPU affinity from -cpu and the Idle priority (the thread is locked to its OS thread either way)")
		cpu      = pflag.Int("cpu", -1, "CPU index to pin the owning thread to (requires -pin, Linux only)")
		capacity = pflag.Int("capacity", 0, "backend queue depth hint (0 lets the platform choose)")
	)
	pflag.Parse()

	if pflag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: faiocat [flags] <src> <dst>")
		pflag.PrintDefaults()
		os.Exit(2)
	}
	src, dst := pflag.Arg(0), pflag.Arg(1)

	undoMaxProcs, err := maxprocs.Enable()
	if err != nil {
		log.Fatalf("faiocat: GOMAXPROCS tuning: %v", err)
	}
	defer undoMaxProcs()

	if err := run(src, dst, *pin, *cpu, *capacity); err != nil {
		log.Fatalf("faiocat: %v", err)
	}
}

func run(srcPath, dstPath string, pin bool, cpu, capacity int) error {
	opts := []aio.Option{aio.WithCapacity(capacity)}
	if pin {
		opts = append(opts, aio.WithThreadPin(threadpin.Options{CPUIndex: cpu}))
	}
	svc, err := aio.New(opts...)
	if err != nil {
		return fmt.Errorf("new service: %w", err)
	}
	shared := file.NewSharedService(svc)

	in, err := file.Open(shared.Service(), srcPath, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcPath, err)
	}
	out, err := file.Open(shared.Service(), dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		_ = in.Close()
		return fmt.Errorf("open %s: %w", dstPath, err)
	}

	var copyErr error
	var offset int64
	buf := make([]byte, copyBufSize)

	var step func()
	step = func() {
		if _, readErr := in.ReadAt(offset, buf, func(n int, rerr error) {
			if rerr != nil {
				copyErr = fmt.Errorf("read at %d: %w", offset, rerr)
				return
			}
			if n == 0 {
				return
			}
			if _, writeErr := out.WriteAt(offset, buf[:n], func(wn int, werr error) {
				if werr != nil {
					copyErr = fmt.Errorf("write at %d: %w", offset, werr)
					return
				}
				offset += int64(wn)
				step()
			}); writeErr != nil {
				copyErr = fmt.Errorf("submit write at %d: %w", offset, writeErr)
			}
		}); readErr != nil {
			copyErr = fmt.Errorf("submit read at %d: %w", offset, readErr)
		}
	}
	step()

	for {
		more, runErr := svc.RunUntil(aio.Never)
		if runErr != nil {
			copyErr = runErr
		}
		if copyErr != nil {
			break
		}
		if !more {
			break
		}
	}

	closeErr := out.Close()
	_ = in.Close()
	_ = shared.Close()
	_ = shared.Close()
	if copyErr != nil {
		return copyErr
	}
	if closeErr != nil {
		return closeErr
	}
	log.Printf("faiocat: copied %d bytes from %s to %s", offset, srcPath, dstPath)
	return nil
}
