// Package kernel probes the host kernel's version so a backend can decide
// at startup whether a feature it wants (IOCB_FLAG_RESFD, a particular
// io_submit behavior) is actually available, instead of discovering the
// gap via an ambiguous ENOSYS at the first submit.
package kernel

// Version is a parsed kernel release (major.minor.patch-flavor on Linux).
type Version struct {
	Major  int
	Minor  int
	Patch  int
	Flavor string
}

// Compare orders a and b by Major, then Minor, then Patch.
func Compare(a, b Version) int {
	if a.Major != b.Major {
		if a.Major > b.Major {
			return 1
		}
		return -1
	}
	if a.Minor != b.Minor {
		if a.Minor > b.Minor {
			return 1
		}
		return -1
	}
	if a.Patch != b.Patch {
		if a.Patch > b.Patch {
			return 1
		}
		return -1
	}
	return 0
}

// Check reports whether the host kernel is at least major.minor.
func Check(major, minor int) (bool, error) {
	v, err := Get()
	if err != nil {
		return false, err
	}
	return Compare(v, Version{Major: major, Minor: minor}) >= 0, nil
}
