package source

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/monochromegane/go-gitignore"
)

// Finder walks a directory tree and collects the regular files whose names
// match its extension set.
type Finder struct {
	extensions Extensions
	ignore     gitignore.IgnoreMatcher
	logger     *slog.Logger
}

// NewFinder creates a Finder for the given extensions. The slice is copied.
func NewFinder(exts Extensions) *Finder {
	return &Finder{
		extensions: append(Extensions(nil), exts...),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Discover is a convenience wrapper around NewFinder(exts).Find(root).
func Discover(root string, exts Extensions) ([]string, error) {
	return NewFinder(exts).Find(root)
}

// SetIgnoreMatcher makes the Finder skip entries the matcher ignores.
// A nil matcher disables ignore handling.
func (f *Finder) SetIgnoreMatcher(m gitignore.IgnoreMatcher) {
	f.ignore = m
}

// SetLogger sets the logger used for debug output.
func (f *Finder) SetLogger(l *slog.Logger) {
	if l != nil {
		f.logger = l.With("component", "finder")
	}
}

// Extensions returns a copy of the Finder's extension set.
func (f *Finder) Extensions() Extensions {
	return append(Extensions(nil), f.extensions...)
}

// Find returns every matching regular file under root. Directories are visited
// depth-first from a LIFO frontier, so the order of the result follows the
// traversal and is not stable across platforms. Symlinks and special files are
// skipped. root must be an existing directory.
func (f *Finder) Find(root string) ([]string, error) {
	frontier := []string{root}
	var found []string

	for len(frontier) > 0 {
		dir := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, &ListDirError{Dir: dir, Wrapped: err}
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			switch {
			case entry.IsDir():
				if f.ignored(path, true) {
					continue
				}
				frontier = append(frontier, path)
			case entry.Type().IsRegular():
				if !f.extensions.Match(entry.Name()) || f.ignored(path, false) {
					continue
				}
				found = append(found, path)
			default:
				f.logger.Debug("skipping non-regular entry", "path", path, "mode", entry.Type().String())
			}
		}
	}

	return found, nil
}

func (f *Finder) ignored(path string, isDir bool) bool {
	if f.ignore == nil || !f.ignore.Match(path, isDir) {
		return false
	}
	f.logger.Debug("ignored by .gitignore", "path", path)
	return true
}

// Accepts reports whether a single file path would be collected by Find,
// judged on its name and the ignore rules. It does not touch the filesystem.
func (f *Finder) Accepts(path string) bool {
	return f.extensions.Match(filepath.Base(path)) && !f.ignored(path, false)
}
