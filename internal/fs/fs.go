// Package fs holds the filesystem and environment helpers cppfmt relies on.
package fs

import (
	"path/filepath"
)

// CanonicalPath returns path made absolute with every symlink resolved.
// The path must exist.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// PathSet answers membership questions for paths that may be spelled
// differently: relative or absolute, or reached through a symlink.
type PathSet map[string]struct{}

// NewPathSet builds a set from paths. Paths that cannot be resolved, such as
// files that no longer exist, are left out.
func NewPathSet(paths []string) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		if cp, err := CanonicalPath(p); err == nil {
			s[cp] = struct{}{}
		}
	}
	return s
}

// Contains reports whether path resolves to a member of the set.
func (s PathSet) Contains(path string) bool {
	cp, err := CanonicalPath(path)
	if err != nil {
		return false
	}
	_, ok := s[cp]
	return ok
}
