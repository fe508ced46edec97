package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"moonlint/internal/checker"
	"moonlint/internal/config"
	"moonlint/internal/diag"
	"moonlint/internal/diagfmt"
	"moonlint/internal/driver"
	"moonlint/internal/fix"
	"moonlint/internal/observ"
	"moonlint/internal/source"
	"moonlint/internal/stdlib"
	"moonlint/internal/trace"
	"moonlint/internal/ui"
	"moonlint/internal/version"
)

type checkOptions struct {
	configPath    string
	pattern       string
	jobs          int
	displayStyle  string
	quiet         bool
	noSummary     bool
	allowWarnings bool
	fix           bool
	cache         bool
	ui            string
	timings       bool
}

func newCheckCmd(numCPU int) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Lint Lua files",
		Long:  `Lint the given files and directories (default: the current directory)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default: nearest moonlint.toml)")
	flags.StringVar(&opts.pattern, "pattern", driver.DefaultPattern, "glob selecting files inside directories")
	flags.IntVar(&opts.jobs, "num-threads", numCPU, "number of files checked in parallel")
	flags.StringVar(&opts.displayStyle, "display-style", "rich", "output style (rich|quiet|json|sarif)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "same as --display-style=quiet")
	flags.BoolVarP(&opts.noSummary, "no-summary", "n", false, "do not print the results summary")
	flags.BoolVarP(&opts.allowWarnings, "allow-warnings", "a", false, "exit successfully when only warnings are found")
	flags.BoolVar(&opts.fix, "fix", false, "apply safe automatic fixes")
	flags.BoolVar(&opts.cache, "cache", false, "reuse results of unchanged files")
	flags.StringVar(&opts.ui, "ui", "auto", "progress display (auto|on|off)")
	flags.BoolVar(&opts.timings, "timings", false, "print phase timings to stderr")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *checkOptions) error {
	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}
	defer cleanup()
	defer trace.DumpOnPanic(tracer)

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}
	defer stopProfiling()

	style, ok := diagfmt.ParseStyle(opts.displayStyle)
	if !ok {
		return &exitError{code: exitConfig, err: fmt.Errorf("invalid --display-style %q", opts.displayStyle)}
	}
	if opts.quiet {
		style = diagfmt.StyleQuiet
	}
	if opts.jobs < 1 {
		return &exitError{code: exitConfig, err: fmt.Errorf("invalid --num-threads %d (expected at least 1)", opts.jobs)}
	}
	mode, err := readUIMode(opts.ui)
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}
	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}

	timer := observ.NewTimer()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	var (
		cfg *config.File
		chk *checker.Checker
	)
	err = timer.Measure("config", func() error {
		span := trace.Begin(tracer, trace.ScopePhase, "config", 0)
		defer span.End("")
		cfg, chk, err = loadChecker(opts.configPath, tracer)
		return err
	})
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	var files []string
	err = timer.Measure("discover", func() error {
		discovery := driver.Discovery{Pattern: opts.pattern, Exclude: cfg.Exclude, Base: cfg.Dir()}
		files, err = discovery.Discover(paths)
		return err
	})
	if err != nil {
		return &exitError{code: exitConfig, err: err}
	}

	driverOpts := driver.Options{
		Jobs:        opts.jobs,
		Fingerprint: cfg.Fingerprint(),
		Tracer:      tracer,
	}
	if opts.cache {
		cache, err := driver.OpenDiskCache("moonlint")
		if err != nil {
			fmt.Fprintf(stderr, "warning: cache disabled: %v\n", err)
		} else {
			driverOpts.Cache = cache
		}
	}

	var waitUI func() error
	if style == diagfmt.StyleRich && len(files) > 1 && shouldUseTUI(mode) {
		driverOpts.Observer, waitUI = ui.Run("checking", files, os.Stderr)
	}

	var res *driver.Result
	checkErr := timer.Measure("check", func() error {
		var err error
		res, err = driver.Check(cmd.Context(), files, chk, driverOpts)
		return err
	})
	if waitUI != nil {
		if err := waitUI(); err != nil {
			fmt.Fprintf(stderr, "warning: progress display: %v\n", err)
		}
	}
	if checkErr != nil {
		return &exitError{code: exitLint, err: checkErr}
	}

	for _, fr := range res.IOErrors() {
		fmt.Fprintf(stderr, "error: %s: %v\n", fr.Path, fr.Err)
	}

	diagnostics := res.Diagnostics()
	if opts.fix {
		diagnostics = applyFixes(stderr, res, diagnostics)
	}

	reportIdx := timer.Begin("report")
	if err := render(stdout, style, diagnostics, res.FileSet, colored); err != nil {
		return &exitError{code: exitLint, err: err}
	}
	counts := countDiagnostics(diagnostics)
	if !opts.noSummary && (style == diagfmt.StyleRich || style == diagfmt.StyleQuiet) {
		if style == diagfmt.StyleRich && len(diagnostics) > 0 {
			fmt.Fprintln(stdout)
		}
		diagfmt.Summary(stdout, counts, colored)
	}
	timer.End(reportIdx, "")

	if opts.timings {
		timer.WriteSummary(stderr)
	}

	if failed(counts, len(res.IOErrors()), opts.allowWarnings) {
		return &exitError{code: exitLint}
	}
	return nil
}

// loadChecker resolves the configuration file, its standard library and the
// rule set. Every failure here is a configuration error.
func loadChecker(path string, tracer trace.Tracer) (*config.File, *checker.Checker, error) {
	var (
		cfg *config.File
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, nil, err
	}

	lib, err := stdlib.Loader{Dir: cfg.Dir()}.Load(cfg.Std)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load standard library: %w", err)
	}

	chk, err := checker.New(cfg.Checker(), lib, checker.WithTracer(tracer))
	if err != nil {
		return nil, nil, err
	}
	return cfg, chk, nil
}

func applyFixes(stderr io.Writer, res *driver.Result, diagnostics []diag.Diagnostic) []diag.Diagnostic {
	applied, err := fix.Apply(res.FileSet, diagnostics, fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if errors.Is(err, fix.ErrNoFixes) {
		return diagnostics
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	files := make([]string, 0, len(applied.FileChanges))
	for _, ch := range applied.FileChanges {
		files = append(files, ch.Path)
	}
	if len(applied.Applied) > 0 {
		fmt.Fprintf(stderr, "fixed %d issue(s) in %s\n", len(applied.Applied), strings.Join(files, ", "))
	}
	return applied.Remaining(diagnostics)
}

func render(w io.Writer, style diagfmt.Style, diagnostics []diag.Diagnostic, fs *source.FileSet, colored bool) error {
	switch style {
	case diagfmt.StyleQuiet:
		diagfmt.Quiet(w, diagnostics, fs)
	case diagfmt.StyleJSON:
		return diagfmt.JSON(w, diagnostics, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeFixes:     true,
		})
	case diagfmt.StyleSarif:
		return diagfmt.Sarif(w, diagnostics, fs, diagfmt.SarifRunMeta{
			ToolName:       "moonlint",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	default:
		diagfmt.Pretty(w, diagnostics, fs, diagfmt.PrettyOpts{
			Color:     colored,
			PathMode:  diagfmt.PathModeRelative,
			ShowNotes: true,
		})
	}
	return nil
}

func countDiagnostics(diagnostics []diag.Diagnostic) diagfmt.Counts {
	var c diagfmt.Counts
	for _, d := range diagnostics {
		switch {
		case d.Code == diag.ParseError:
			c.ParseErrors++
		case d.Severity == diag.SevError:
			c.Errors++
		case d.Severity == diag.SevWarning:
			c.Warnings++
		}
	}
	return c
}

// failed decides the exit status of a finished check.
func failed(c diagfmt.Counts, ioErrors int, allowWarnings bool) bool {
	if c.Errors > 0 || c.ParseErrors > 0 || ioErrors > 0 {
		return true
	}
	return c.Warnings > 0 && !allowWarnings
}
