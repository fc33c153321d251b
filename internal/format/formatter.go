// Package format runs an external code formatter over a list of files and
// records the outcome of every invocation.
package format

import (
	"context"
	"io"
)

// DefaultBinary is the formatter executable used when none is configured.
const DefaultBinary = "clang-format"

// DefaultStyle is the style passed to the formatter when none is configured.
const DefaultStyle = "google"

// Formatter formats a single file in place.
type Formatter interface {
	// Format rewrites path using the given style. The style is passed to the
	// underlying tool unmodified.
	Format(ctx context.Context, path, style string) error
}

// Reporter defines the interface for writing a dispatch summary.
type Reporter interface {
	Write(w io.Writer, report *Report) error
}
