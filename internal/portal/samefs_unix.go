//go:build !windows

package portal

import "golang.org/x/sys/unix"

// sameFilesystem reports whether a and b live on the same device, the
// precondition os.Rename needs to be atomic rather than falling back to
// a cross-device copy-then-delete (which would briefly expose a
// partially-renamed tree and violate I1).
func sameFilesystem(a, b string) (bool, error) {
	var sa, sb unix.Stat_t
	if err := unix.Stat(a, &sa); err != nil {
		return false, err
	}
	if err := unix.Stat(b, &sb); err != nil {
		return false, err
	}
	return sa.Dev == sb.Dev, nil
}
