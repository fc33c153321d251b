package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"

	"github.com/andyballingall/cppfmt/internal/format"
	"github.com/andyballingall/cppfmt/internal/fs"
	"github.com/andyballingall/cppfmt/internal/repo"
	"github.com/andyballingall/cppfmt/internal/report"
	"github.com/andyballingall/cppfmt/internal/source"
)

// FormatOptions describes one run over a source tree.
type FormatOptions struct {
	Root        string
	Style       string
	Since       repo.Revision // only files changed since this revision; empty means all
	DryRun      bool
	Output      report.Output
	Verbose     bool
	UseColour   bool
	FailOnError bool
}

// Manager defines the business logic behind the cppfmt command.
type Manager interface {
	FormatTree(ctx context.Context, opts FormatOptions) error
	WatchTree(ctx context.Context, opts FormatOptions, readyChan chan<- struct{}) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) FormatTree(ctx context.Context, opts FormatOptions) error {
	return l.check().FormatTree(ctx, opts)
}

func (l *LazyManager) WatchTree(ctx context.Context, opts FormatOptions, readyChan chan<- struct{}) error {
	return l.check().WatchTree(ctx, opts, readyChan)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger         *slog.Logger
	finder         *source.Finder
	formatter      format.Formatter
	gitter         repo.Gitter
	reporterWriter io.Writer

	flight singleflight.Group
}

func NewCLIManager(
	l *slog.Logger,
	f *source.Finder,
	fm format.Formatter,
	g repo.Gitter,
) *CLIManager {
	return &CLIManager{
		logger:         l,
		finder:         f,
		formatter:      fm,
		gitter:         g,
		reporterWriter: os.Stdout,
	}
}

// SetReporterWriter sets where summaries and dry-run listings are written.
func (m *CLIManager) SetReporterWriter(w io.Writer) {
	m.reporterWriter = w
}

// FormatTree discovers the sources under opts.Root and formats each of them.
func (m *CLIManager) FormatTree(ctx context.Context, opts FormatOptions) error {
	abs, _ := filepath.Abs(opts.Root)
	m.logger.Debug("formatting tree", "root", opts.Root, "abs", abs, "style", opts.Style,
		"since", opts.Since, "dryRun", opts.DryRun, "failOnError", opts.FailOnError)

	files, err := m.discover(ctx, opts)
	if err != nil {
		return err
	}

	if opts.DryRun {
		for _, f := range files {
			fmt.Fprintln(m.reporterWriter, f)
		}
		m.logger.Info(fmt.Sprintf("%d files would be formatted", len(files)))
		return nil
	}

	m.logger.Info(fmt.Sprintf("ℹ️ Info: formatting '%s' files with --style=%s...",
		m.finder.Extensions().Glob(), opts.Style))

	rep, err := format.NewDispatcher(m.formatter, m.logger).Dispatch(ctx, files, opts.Style)
	reporter := report.New(opts.Output, opts.Verbose, opts.UseColour)
	if wErr := reporter.Write(m.reporterWriter, rep); wErr != nil {
		m.logger.Error("Failed to write report", "error", wErr)
	}
	if err != nil {
		return err
	}

	if opts.FailOnError {
		if fErr := rep.Err(); fErr != nil {
			return &FormatFailuresError{Failed: len(rep.Failed()), Total: len(rep.Results), Wrapped: fErr}
		}
	}
	return nil
}

func (m *CLIManager) discover(ctx context.Context, opts FormatOptions) ([]string, error) {
	files, err := m.finder.Find(opts.Root)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("discovered files", "count", len(files))

	if opts.Since == "" {
		return files, nil
	}
	return m.onlyChanged(ctx, opts.Root, opts.Since, files)
}

// onlyChanged keeps the files git reports as changed since rev. Paths are
// compared in canonical form because git reports them from the repository root.
func (m *CLIManager) onlyChanged(ctx context.Context, root string, rev repo.Revision, files []string) ([]string, error) {
	changed, err := m.gitter.ChangedFiles(ctx, root, rev)
	if err != nil {
		return nil, err
	}

	set := fs.NewPathSet(changed)
	var kept []string
	for _, f := range files {
		if set.Contains(f) {
			kept = append(kept, f)
		}
	}
	m.logger.Debug("narrowed to changed files", "since", rev, "changed", len(changed), "kept", len(kept))
	return kept, nil
}

// WatchTree formats the tree once and then reformats each source file as it
// changes, until ctx is cancelled.
// If you want to know when the watcher is ready to start listening to changes,
// pass a non-nil readyChan to be notified.
func (m *CLIManager) WatchTree(ctx context.Context, opts FormatOptions, readyChan chan<- struct{}) error {
	m.logger.Debug("watching tree", "root", opts.Root, "style", opts.Style)

	if err := m.FormatTree(ctx, opts); err != nil {
		var failures *FormatFailuresError
		if !errors.As(err, &failures) {
			return err
		}
		m.logger.Warn("initial pass had failures", "error", err)
	}
	if opts.DryRun {
		return nil
	}

	watcher := source.NewWatcher(opts.Root, m.finder, m.logger)

	callback := func(path string) {
		_, _, _ = m.flight.Do(path, func() (interface{}, error) {
			m.formatChanged(ctx, watcher, path, opts.Style)
			return nil, nil
		})
	}

	// Forward watcher Ready signal if caller wants notification
	if readyChan != nil {
		go func() {
			select {
			case <-watcher.Ready:
			case <-ctx.Done():
				return
			}
			select {
			case readyChan <- struct{}{}:
			case <-ctx.Done():
			}
		}()
	}

	return watcher.Watch(ctx, callback)
}

func (m *CLIManager) formatChanged(ctx context.Context, w *source.Watcher, path, style string) {
	defer w.Settled(path)

	m.logger.Info(fmt.Sprintf("🔄 Formatting: %s...", path), "file", path, "style", style)
	if err := m.formatter.Format(ctx, path, style); err != nil {
		m.logger.Error("Formatting failed", "error", err)
	}
}
