//go:build darwin

package java

import "golang.org/x/sys/unix"

// translated reports whether the process runs under Rosetta 2
func translated() bool {
	v, err := unix.SysctlUint32("sysctl.proc_translated")
	if err != nil {
		return false
	}
	return v == 1
}
