package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/fatih/color"
)

// LogEnvVar names a file that receives a JSON debug log of every run.
const LogEnvVar = "CPPFMT_LOG_FILE"

// setupLogger returns a logger writing human-readable lines to stderr and,
// when logPath is set, JSON records at debug level to that file. If the file
// cannot be opened the console logger is still returned along with the error.
func setupLogger(stderr io.Writer, level *slog.LevelVar, logPath string, colour bool) (*slog.Logger, io.Closer, error) {
	console := newConsoleHandler(stderr, level, colour)
	if logPath == "" {
		return slog.New(console), nil, nil
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(console), nil, err
	}
	file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})

	return slog.New(&teeHandler{handlers: []slog.Handler{file, console}}), f, nil
}

// teeHandler passes each record to every handler that accepts its level.
type teeHandler struct {
	handlers []slog.Handler
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

//nolint:gocritic // slog.Record is passed by value in the interface
func (t *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range t.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t *teeHandler) each(fn func(slog.Handler) slog.Handler) *teeHandler {
	out := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		out[i] = fn(h)
	}
	return &teeHandler{handlers: out}
}

// consoleHandler prints the message alone, prefixed for warnings and errors.
// Error attributes are always appended; other attributes only at debug level.
type consoleHandler struct {
	mu     *sync.Mutex // shared by clones so lines never interleave
	w      io.Writer
	level  *slog.LevelVar
	attrs  []slog.Attr
	errTag *color.Color
	wrnTag *color.Color
}

func newConsoleHandler(w io.Writer, level *slog.LevelVar, colour bool) *consoleHandler {
	errTag := color.New(color.FgRed, color.Bold)
	wrnTag := color.New(color.FgYellow)
	if colour {
		errTag.EnableColor()
		wrnTag.EnableColor()
	} else {
		errTag.DisableColor()
		wrnTag.DisableColor()
	}
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level, errTag: errTag, wrnTag: wrnTag}
}

func (c *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level.Level()
}

//nolint:gocritic // slog.Record is passed by value in the interface
func (c *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var line bytes.Buffer
	switch {
	case record.Level >= slog.LevelError:
		line.WriteString(c.errTag.Sprint("Error:") + " ")
	case record.Level >= slog.LevelWarn:
		line.WriteString(c.wrnTag.Sprint("Warning:") + " ")
	}
	line.WriteString(record.Message)

	debug := c.level.Level() <= slog.LevelDebug
	appendAttr := func(a slog.Attr) bool {
		switch {
		case a.Key == "error" || a.Key == "err":
			fmt.Fprintf(&line, ": %v", a.Value)
		case debug:
			fmt.Fprintf(&line, " %s=%v", a.Key, a.Value)
		}
		return true
	}
	for _, a := range c.attrs {
		appendAttr(a)
	}
	record.Attrs(appendAttr)
	line.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.w.Write(line.Bytes())
	return err
}

func (c *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *c
	clone.attrs = append(append([]slog.Attr(nil), c.attrs...), attrs...)
	return &clone
}

// WithGroup is a no-op: console lines are flat.
func (c *consoleHandler) WithGroup(_ string) slog.Handler {
	return c
}
