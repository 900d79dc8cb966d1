//go:build windows

package threadpin

import "golang.org/x/sys/windows"

func setPriority(level Priority) error {
	n := uint32(windows.NORMAL_PRIORITY_CLASS)
	switch level {
	case Realtime:
		n = windows.REALTIME_PRIORITY_CLASS
	case High:
		n = windows.HIGH_PRIORITY_CLASS
	case Normal:
		n = windows.NORMAL_PRIORITY_CLASS
	case Idle:
		n = windows.IDLE_PRIORITY_CLASS
	}
	return windows.SetPriorityClass(windows.CurrentProcess(), n)
}
