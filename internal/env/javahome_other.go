//go:build !windows

package env

import "os"

// GetJavaHome returns the JAVA_HOME of the current environment
func GetJavaHome() (string, error) {
	if value := os.Getenv("JAVA_HOME"); value != "" {
		return value, nil
	}
	return "", ErrJavaHomeNotSet
}
