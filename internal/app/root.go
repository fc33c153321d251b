package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/andyballingall/cppfmt/internal/config"
	"github.com/andyballingall/cppfmt/internal/format"
	"github.com/andyballingall/cppfmt/internal/fs"
	"github.com/andyballingall/cppfmt/internal/repo"
	"github.com/andyballingall/cppfmt/internal/report"
	"github.com/andyballingall/cppfmt/internal/source"
	"github.com/andyballingall/cppfmt/internal/validator"
)

// Version is the current version of cppfmt, set at build time.
var Version = "dev"

var LongDescription = `
cppfmt finds every C++ source file under a directory and runs clang-format on
each one in place. Files are formatted one at a time; a file that fails to
format is reported and the rest are still processed.

Settings can be kept in a .cppfmt.yml file at the root of the tree. Flags given
on the command line take precedence over the file.
`

const examples = `  cppfmt --path ./src
  cppfmt -p ./src --style llvm --ext .cc --ext .hh
  cppfmt -p . --since main --fail-on-error
  cppfmt -p . --watch`

// settings are the values a run uses once flags and config are merged.
type settings struct {
	style       string
	extensions  source.Extensions
	formatter   string
	failOnError bool
	gitignore   bool
}

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stderr io.Writer, env fs.EnvProvider) *cobra.Command {
	var debug bool
	var noColour bool
	rootPath := newPathValue("dir")
	configPath := newPathValue("file")
	var style string
	var extensions []string
	var formatterBinary string
	var useGitignore bool
	var since string
	var dryRun bool
	var watch bool
	var failOnError bool
	var verbose bool
	output := outputValue(report.Text)

	var resolved settings
	var logCloser io.Closer
	closeLog := func() {
		if logCloser != nil {
			_ = logCloser.Close()
			logCloser = nil
		}
	}

	rootCmd := &cobra.Command{
		Use:           "cppfmt --path <dir>",
		Short:         "Format every C++ source file in a directory tree with clang-format",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		Example:       examples,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				ll.Set(slog.LevelDebug)
			}

			// 1. The root must be valid before anything else happens
			root := rootPath.String()
			if err := fs.RequireDir(root); err != nil {
				return err
			}

			// 2. Merge config and flags
			loader, err := config.NewLoader(validator.NewSanthoshCompiler(), env)
			if err != nil {
				return fmt.Errorf("config schema initialisation failed: %w", err)
			}
			cfg, err := loader.Discover(configPath.String(), root)
			if err != nil {
				return err
			}
			resolved, err = resolveSettings(cmd, cfg, style, extensions, formatterBinary, failOnError, useGitignore)
			if err != nil {
				return err
			}

			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				return nil
			}

			// 3. Setup Logging
			logger, closer, err := setupLogger(stderr, ll, env.Get(LogEnvVar), !noColour)
			logCloser = closer
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}
			if cfg.Path != "" {
				logger.Debug("loaded config", "path", cfg.Path)
			}

			// 4. Build Dependencies
			finder := source.NewFinder(resolved.extensions)
			finder.SetLogger(logger)
			if resolved.gitignore {
				matcher, gErr := source.LoadGitignore(root)
				if gErr != nil {
					closeLog()
					return gErr
				}
				finder.SetIgnoreMatcher(matcher)
			}
			formatter := format.NewCLIFormatter(resolved.formatter, cmd.OutOrStdout(), stderr)

			// 5. Hydrate the Lazy Wrapper
			realMgr := NewCLIManager(logger, finder, formatter, repo.NewCLIGitter())
			realMgr.SetReporterWriter(cmd.OutOrStdout())
			lazy.SetInner(realMgr)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// PostRun hooks are skipped when RunE fails
			defer closeLog()

			opts := FormatOptions{
				Root:        rootPath.String(),
				Style:       resolved.style,
				Since:       repo.Revision(since),
				DryRun:      dryRun,
				Output:      report.Output(output),
				Verbose:     verbose,
				UseColour:   !noColour,
				FailOnError: resolved.failOnError,
			}

			if watch {
				err := lazy.WatchTree(cmd.Context(), opts, nil)
				if errors.Is(err, context.Canceled) {
					cmd.PrintErrln("Interrupted by user")
					return nil
				}
				return err
			}

			err := lazy.FormatTree(cmd.Context(), opts)
			if errors.Is(err, context.Canceled) {
				cmd.PrintErrln("Interrupted by user")
			}
			return err
		},
	}

	f := rootCmd.Flags()
	f.VarP(rootPath, "path", "p", "root directory to format (required)")
	f.StringVarP(&style, "style", "s", format.DefaultStyle, "style passed to the formatter")
	f.StringSliceVarP(&extensions, "ext", "e", source.DefaultExtensions(),
		"file extension to format (repeatable)")
	f.StringVar(&formatterBinary, "formatter", format.DefaultBinary, "formatter binary to run")
	f.Var(configPath, "config", "config file (default: $"+config.ConfigEnvVar+" or <path>/"+config.ConfigFile+")")
	f.BoolVar(&useGitignore, "gitignore", false, "skip files and directories matched by <path>/.gitignore")
	f.StringVar(&since, "since", "", "only format files changed since this git revision")
	f.BoolVarP(&dryRun, "dry-run", "n", false, "list the files that would be formatted and exit")
	f.BoolVarP(&watch, "watch", "w", false, "keep running and reformat files as they change")
	f.BoolVar(&failOnError, "fail-on-error", false, "exit with an error if any file fails to format")
	f.VarP(&output, "output", "o", "summary format")
	f.BoolVarP(&verbose, "verbose", "v", false, "list successfully formatted files in the summary")
	_ = rootCmd.MarkFlagRequired("path")

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColour", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColour")

	return rootCmd
}

// resolveSettings starts from cfg and applies every flag the user set explicitly.
func resolveSettings(
	cmd *cobra.Command,
	cfg *config.Config,
	style string,
	extensions []string,
	formatterBinary string,
	failOnError bool,
	useGitignore bool,
) (settings, error) {
	s := settings{
		style:       cfg.Style,
		formatter:   cfg.Formatter,
		failOnError: cfg.FailOnError,
		gitignore:   cfg.RespectGitignore,
	}
	merged := *cfg

	flags := cmd.Flags()
	if flags.Changed("style") {
		s.style = style
	}
	if flags.Changed("ext") {
		merged.Extensions = extensions
	}
	if flags.Changed("formatter") {
		s.formatter = formatterBinary
	}
	if flags.Changed("fail-on-error") {
		s.failOnError = failOnError
	}
	if flags.Changed("gitignore") {
		s.gitignore = useGitignore
	}

	exts, err := merged.ExtensionSet()
	if err != nil {
		return settings{}, err
	}
	s.extensions = exts
	return s, nil
}
