// Package exepath resolves paths relative to the running executable rather
// than the working directory.
package exepath

import (
	"path/filepath"
)

// Executable returns the absolute path of the running binary.
func Executable() (string, error) {
	return executable()
}

// Dir returns the directory containing the running binary.
func Dir() (string, error) {
	p, err := Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(p), nil
}

// Combine joins p onto base. An absolute p replaces base. The result is
// cleaned; nothing is checked for existence.
func Combine(base, p string) string {
	if p == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
