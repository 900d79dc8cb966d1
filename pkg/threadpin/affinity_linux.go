//go:build linux

package threadpin

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

func setCPUAffinity(index int) error {
	var mask unix.CPUSet
	mask.Zero()
	mask.Set(index % runtime.NumCPU())
	if err := unix.SchedSetaffinity(0, &mask); err != nil {
		return fmt.Errorf("SchedSetaffinity: %w, %v", err, mask)
	}
	return nil
}
