//go:build windows

package env

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows/registry"
)

var systemEnvRegPath = `System\CurrentControlSet\Control\Session Manager\Environment`

// GetJavaHome returns JAVA_HOME, preferring the system environment in the
// registry over the value inherited by this process
func GetJavaHome() (string, error) {
	if value, err := registryJavaHome(); err == nil && value != "" {
		return value, nil
	}
	if value := os.Getenv("JAVA_HOME"); value != "" {
		return value, nil
	}
	return "", ErrJavaHomeNotSet
}

func registryJavaHome() (string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, systemEnvRegPath, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	value, _, err := key.GetStringValue("JAVA_HOME")
	if err != nil {
		return "", fmt.Errorf("failed to read JAVA_HOME: %w", err)
	}
	return registry.ExpandString(value)
}
