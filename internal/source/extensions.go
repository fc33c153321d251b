// Package source discovers the C++ sources cppfmt should format.
package source

import (
	"strings"
)

// Extensions is an ordered set of filename suffixes. Matching is a
// case-sensitive suffix test on the base name.
type Extensions []string

// DefaultExtensions returns the built-in suffixes. A new slice is returned on
// every call.
func DefaultExtensions() Extensions {
	return Extensions{".cpp", ".hpp", ".h"}
}

// NewExtensions copies list into an Extensions value, rejecting an empty list
// and empty suffixes. An empty suffix would match every file.
func NewExtensions(list []string) (Extensions, error) {
	if len(list) == 0 {
		return nil, &NoExtensionsError{}
	}
	exts := make(Extensions, 0, len(list))
	for i, e := range list {
		if e == "" {
			return nil, &EmptyExtensionError{Index: i}
		}
		exts = append(exts, e)
	}
	return exts, nil
}

// Match reports whether name ends with any of the suffixes.
func (e Extensions) Match(name string) bool {
	for _, ext := range e {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Glob renders the set the way a shell user would type it, e.g. "*.cpp|*.h".
func (e Extensions) Glob() string {
	if len(e) == 0 {
		return ""
	}
	return "*" + strings.Join(e, "|*")
}
