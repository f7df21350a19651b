//go:build !darwin

package java

func translated() bool { return false }
