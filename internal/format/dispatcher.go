package format

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Dispatcher feeds a work list to a Formatter, one file at a time.
type Dispatcher struct {
	formatter Formatter
	logger    *slog.Logger
	now       func() time.Time
}

// NewDispatcher creates a Dispatcher. A nil logger discards output.
func NewDispatcher(f Formatter, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		formatter: f,
		logger:    logger,
		now:       time.Now,
	}
}

// Dispatch formats every path with style, strictly sequentially and in the
// given order. A failing file is recorded and the next one is attempted.
// Only cancellation of ctx stops the run early; the partial report is
// returned together with ctx.Err().
func (d *Dispatcher) Dispatch(ctx context.Context, paths []string, style string) (*Report, error) {
	report := NewReport(style)
	report.StartTime = d.now()
	defer func() { report.EndTime = d.now() }()

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		d.logger.Info(fmt.Sprintf("🔄 Formatting: %s...", path), "file", path, "style", style)
		start := d.now()
		err := withPath(path, d.formatter.Format(ctx, path, style))
		res := Result{Path: path, Err: err, Duration: d.now().Sub(start)}
		report.Add(res)

		if err != nil {
			d.logger.Warn("formatting failed", "file", path, "error", err)
		}
	}

	return report, nil
}

// withPath makes sure a failure names the file it happened on.
func withPath(path string, err error) error {
	if err == nil {
		return nil
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) {
		return err
	}
	return &FileError{Path: path, Wrapped: err}
}
