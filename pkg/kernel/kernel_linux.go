//go:build linux

package kernel

import (
	"bytes"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

var (
	cached     Version
	cachedErr  error
	versionOnce sync.Once
)

func parseKernelVersion(release string) (major, minor, patch int, flavor string, err error) {
	var partial string
	parsed, _ := fmt.Sscanf(release, "%d.%d%s", &major, &minor, &partial)
	if parsed < 2 {
		err = fmt.Errorf("kernel: cannot parse release %q", release)
		return
	}
	if n, _ := fmt.Sscanf(partial, ".%d%s", &patch, &flavor); n < 1 {
		flavor = partial
	}
	return
}

// Get returns the running kernel's version, parsed from uname(2) once and
// cached for the process's lifetime.
func Get() (Version, error) {
	versionOnce.Do(func() {
		uts := unix.Utsname{}
		if err := unix.Uname(&uts); err != nil {
			cachedErr = err
			return
		}
		release := string(uts.Release[:bytes.IndexByte(uts.Release[:], 0)])
		major, minor, patch, flavor, err := parseKernelVersion(release)
		if err != nil {
			cachedErr = err
			return
		}
		cached = Version{Major: major, Minor: minor, Patch: patch, Flavor: flavor}
	})
	return cached, cachedErr
}
