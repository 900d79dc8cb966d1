//go:build unix

package threadpin

import (
	"os"

	"golang.org/x/sys/unix"
)

func setPriority(level Priority) error {
	n := 0
	switch level {
	case Realtime:
		n = -19
	case High:
		n = -15
	case Normal:
		n = 0
	case Idle:
		n = 15
	}
	return unix.Setpriority(unix.PRIO_PROCESS, os.Getpid(), n)
}
