package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dshills/splitdiff/internal/config"
	"github.com/dshills/splitdiff/internal/diff"
	"github.com/dshills/splitdiff/internal/gitdiff"
	"github.com/dshills/splitdiff/internal/outname"
	"github.com/dshills/splitdiff/internal/redact"
	"github.com/dshills/splitdiff/internal/render"
	"github.com/dshills/splitdiff/internal/source"
	"github.com/dshills/splitdiff/internal/ui"
	"github.com/dshills/splitdiff/internal/writer"
)

type splitFlags struct {
	outDir      string
	gitDir      string
	base        string
	clipboard   bool
	dryRun      bool
	redact      bool
	stat        bool
	quiet       bool
	verbose     bool
	maxAttempts int
	configPath  string

	// Test seams; nil means the real thing.
	input  io.Reader
	fs     afero.Fs
	stdout io.Writer
}

func newSplitCmd() *cobra.Command {
	f := &splitFlags{}

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Read a combined diff and write one .diff file per changed file",
		Long: `Read a combined unified diff from stdin, the clipboard, or a git working
tree, and write each file's section to its own .diff file. Names derive
from the changed file's path; collisions get -1, -2, ... suffixes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.outDir, "out", "o", "", "Output directory (default: current directory)")
	flags.StringVar(&f.gitDir, "git", "", "Take the diff from the git working tree at this path")
	flags.StringVar(&f.base, "base", "", "Base ref for --git (default: origin/HEAD)")
	flags.BoolVar(&f.clipboard, "clipboard", false, "Take the diff from the system clipboard")
	flags.BoolVarP(&f.dryRun, "dry-run", "n", false, "Resolve output names but write nothing")
	flags.BoolVar(&f.redact, "redact", false, "Mask secret-looking values in the written files")
	flags.BoolVar(&f.stat, "stat", false, "Print a per-file statistics table")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "Only log errors")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Log at debug level")
	flags.IntVar(&f.maxAttempts, "max-attempts", 0, "Candidate names tried per file before giving up")
	flags.StringVar(&f.configPath, "config", "", "Config file (default: .splitdiff.yaml if present)")

	return cmd
}

func runSplit(f *splitFlags) error {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return exitError(1, "failed to load config: %v", err)
	}
	mergeFlags(&cfg, f)
	log := newLogger(logLevel(cfg, f))

	text, err := acquire(f, cfg, log)
	if err != nil {
		return exitError(3, "failed to read diff: %v", err)
	}

	patches, err := diff.Split(text)
	if err != nil {
		return exitError(2, "failed to parse diff: %v", err)
	}
	log.Debugf("parsed %d patch section(s)", len(patches))

	if f.redact {
		log.Debug("masking secret-looking values")
		for i := range patches {
			patches[i].Contents = redact.Scrub(patches[i].Contents)
		}
	}

	fs := f.fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if !f.dryRun {
		if err := fs.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return exitError(1, "failed to create output directory: %v", err)
		}
	}

	w := &writer.Writer{
		Alloc:  outname.New(fs, cfg.OutDir, cfg.MaxAttempts),
		Log:    log,
		DryRun: f.dryRun,
	}
	rep, err := w.WriteAll(patches)
	if err != nil {
		return exitError(1, "%v", err)
	}

	out := f.stdout
	if out == nil {
		out = os.Stdout
	}
	if f.stat {
		render.StatTable(out, rep)
	} else if !f.quiet {
		fmt.Fprint(out, render.Summary(rep))
	}
	if !f.quiet {
		if f.dryRun {
			ui.Warning("dry run: nothing written")
		} else {
			ui.Success("split %d file(s) into %s", len(rep.Files), cfg.OutDir)
		}
	}
	return nil
}

// acquire picks the input source: --clipboard, then --git, then piped stdin.
func acquire(f *splitFlags, cfg config.Config, log *logrus.Logger) (string, error) {
	var (
		text string
		err  error
	)
	switch {
	case f.clipboard:
		log.Debug("reading diff from clipboard")
		text, err = source.Clipboard()
	case f.gitDir != "":
		log.Debugf("diffing git tree %s against %s", f.gitDir, cfg.Base)
		text, err = gitdiff.Diff(context.Background(), f.gitDir, cfg.Base)
	default:
		in := f.input
		if in == nil {
			if !source.Piped() {
				return "", errors.New("no piped input: pipe a diff on stdin or pass --git or --clipboard")
			}
			in = os.Stdin
		}
		log.Debug("reading diff from stdin")
		text, err = source.ReadAll(in)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", source.ErrEmpty
	}
	return text, nil
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefaultFile()
}

// mergeFlags overlays the flags a user set on top of the configured values.
func mergeFlags(cfg *config.Config, f *splitFlags) {
	if f.outDir != "" {
		cfg.OutDir = f.outDir
	}
	if f.base != "" {
		cfg.Base = f.base
	}
	if f.maxAttempts > 0 {
		cfg.MaxAttempts = f.maxAttempts
	}
}

// logLevel resolves the run's log level: --quiet and --verbose win, then the
// SPLITDIFF_LOG environment variable, then the configured level.
func logLevel(cfg config.Config, f *splitFlags) string {
	switch {
	case f.quiet:
		return "error"
	case f.verbose:
		return "debug"
	}
	if lvl := os.Getenv("SPLITDIFF_LOG"); lvl != "" {
		return lvl
	}
	return cfg.LogLevel
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
