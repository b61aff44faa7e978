// Package path provides section name validation.
//
// A section's namespace is the name of its directory, and every content
// file name starts with it. Names must be usable as a single path component
// on every platform, so both slash kinds are rejected.
package path

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalid indicates the provided section name is invalid.
var ErrInvalid = errors.New("invalid section name")

// Namespace validates a section name and returns it unchanged.
func Namespace(name string) (string, error) {
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalid, name)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalid, name)
	}
	return name, nil
}

// SectionName returns the namespace of the section directory dir.
// Relative paths such as "." resolve against the working directory.
func SectionName(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return Namespace(filepath.Base(abs))
}

// Matches reports whether dir is named after namespace. A section whose
// directory is named differently fails the prefix and manifest checks.
func Matches(dir, namespace string) bool {
	name, err := SectionName(dir)
	return err == nil && name == namespace
}
