//go:build windows

package env

import (
	"os"
	"path/filepath"
	"strings"
)

// IsExecutable reports whether path is a regular .exe file
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return strings.EqualFold(filepath.Ext(path), ".exe")
}
