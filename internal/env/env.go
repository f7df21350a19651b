// Package env reads the parts of the host environment jfind depends on.
package env

import "errors"

// ErrJavaHomeNotSet is returned when no JAVA_HOME is configured
var ErrJavaHomeNotSet = errors.New("JAVA_HOME not set")
