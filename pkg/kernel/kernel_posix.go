//go:build !linux

package kernel

import "syscall"

// Get is unsupported outside Linux: Windows and the BSD/Darwin family have
// no equivalent of Linux's feature-gated native AIO behavior that a caller
// would need a kernel version to reason about.
func Get() (Version, error) {
	return Version{}, syscall.EINVAL
}
