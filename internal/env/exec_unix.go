//go:build !windows

package env

import (
	"os"

	"golang.org/x/sys/unix"
)

// IsExecutable reports whether the current user may execute path
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}
